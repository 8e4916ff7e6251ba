package employee

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/hrstreamline/hrstreamline-backend-go/internal/domain/auth"
	"github.com/hrstreamline/hrstreamline-backend-go/internal/domain/employee"
)

type EmployeeServiceImpl struct {
	employees employee.EmployeeRepository
	loc       *time.Location
	now       func() time.Time
}

// NewEmployeeService returns a service that dates terminations by the
// calendar day in loc.
func NewEmployeeService(employees employee.EmployeeRepository, loc *time.Location) *EmployeeServiceImpl {
	if loc == nil {
		loc = time.Local
	}
	return &EmployeeServiceImpl{employees: employees, loc: loc, now: time.Now}
}

// GetMyProfile implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetMyProfile(ctx context.Context, claims auth.Claims) (employee.EmployeeResponse, error) {
	emp, err := s.employees.GetByID(ctx, claims.EmployeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.EmployeeResponse{}, employee.ErrEmployeeProfileAbsent
		}
		return employee.EmployeeResponse{}, err
	}
	return employee.NewEmployeeResponse(emp), nil
}

// UpdateMyProfile implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateMyProfile(ctx context.Context, claims auth.Claims, req employee.UpdateProfileRequest) (employee.EmployeeResponse, error) {
	if err := s.employees.UpdateProfile(ctx, claims.EmployeeID, req); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.EmployeeResponse{}, employee.ErrEmployeeProfileAbsent
		}
		return employee.EmployeeResponse{}, err
	}
	return s.GetMyProfile(ctx, claims)
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, claims auth.Claims) ([]employee.EmployeeResponse, error) {
	var filter employee.ListFilter
	switch {
	case claims.IsHRAdmin():
	case claims.IsManager():
		department := claims.Department
		filter.Department = &department
	default:
		return nil, employee.ErrAccessDenied
	}

	emps, err := s.employees.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := make([]employee.EmployeeResponse, 0, len(emps))
	for _, e := range emps {
		resp = append(resp, employee.NewEmployeeResponse(e))
	}
	return resp, nil
}

// GetEmployee implements employee.EmployeeService. Unknown ids are reported
// before access is checked.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, claims auth.Claims, id int64) (employee.EmployeeResponse, error) {
	emp, err := s.employees.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if !claims.IsHRAdmin() && !(claims.IsManager() && sameDepartment(claims, emp)) {
		return employee.EmployeeResponse{}, employee.ErrAccessDenied
	}
	return employee.NewEmployeeResponse(emp), nil
}

// UpdateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, claims auth.Claims, id int64, req employee.UpdateAssignmentRequest) (employee.EmployeeResponse, error) {
	if _, err := s.employees.GetByID(ctx, id); err != nil {
		return employee.EmployeeResponse{}, err
	}
	if !claims.IsHRAdmin() {
		return employee.EmployeeResponse{}, employee.ErrAccessDenied
	}

	if err := s.employees.UpdateAssignment(ctx, id, req); err != nil {
		return employee.EmployeeResponse{}, err
	}

	updated, err := s.employees.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	slog.Info("Employee assignment updated", "emp_id", id, "by", claims.EmployeeID)
	return employee.NewEmployeeResponse(updated), nil
}

// TerminateEmployee implements employee.EmployeeService. The end date is today.
func (s *EmployeeServiceImpl) TerminateEmployee(ctx context.Context, claims auth.Claims, id int64) (employee.EmployeeResponse, error) {
	emp, err := s.employees.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if !claims.IsHRAdmin() {
		return employee.EmployeeResponse{}, employee.ErrAccessDenied
	}
	if emp.Status == employee.StatusTerminated {
		return employee.EmployeeResponse{}, employee.ErrAlreadyTerminated
	}

	now := s.now().In(s.loc)
	endDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if err := s.employees.Terminate(ctx, id, endDate); err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp.Status = employee.StatusTerminated
	emp.EndDate = &endDate
	slog.Info("Employee terminated", "emp_id", id, "by", claims.EmployeeID)
	return employee.NewEmployeeResponse(emp), nil
}

func sameDepartment(claims auth.Claims, emp employee.Employee) bool {
	return emp.Department != nil && *emp.Department == claims.Department
}
