package attendance

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/hrstreamline/hrstreamline-backend-go/internal/domain/attendance"
	"github.com/hrstreamline/hrstreamline-backend-go/internal/domain/auth"
	"github.com/hrstreamline/hrstreamline-backend-go/internal/domain/employee"
)

type AttendanceServiceImpl struct {
	attendance attendance.AttendanceRepository
	employees  employee.EmployeeRepository
	loc        *time.Location
	now        func() time.Time
}

// NewAttendanceService returns a service whose working day is the calendar
// day in loc.
func NewAttendanceService(repo attendance.AttendanceRepository, employees employee.EmployeeRepository, loc *time.Location) *AttendanceServiceImpl {
	if loc == nil {
		loc = time.Local
	}
	return &AttendanceServiceImpl{
		attendance: repo,
		employees:  employees,
		loc:        loc,
		now:        time.Now,
	}
}

func (s *AttendanceServiceImpl) today(now time.Time) time.Time {
	local := now.In(s.loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// ClockIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ClockIn(ctx context.Context, claims auth.Claims) (attendance.AttendanceResponse, error) {
	now := s.now()
	date := s.today(now)

	_, err := s.attendance.GetByEmployeeAndDate(ctx, claims.EmployeeID, date)
	if err == nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyClockedIn
	}
	if !errors.Is(err, attendance.ErrAttendanceNotFound) {
		return attendance.AttendanceResponse{}, err
	}

	created, err := s.attendance.Create(ctx, attendance.Attendance{
		EmployeeID:  claims.EmployeeID,
		Date:        date,
		ClockInTime: &now,
		Status:      attendance.StatusPresent,
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	slog.Info("Clocked in", "emp_id", claims.EmployeeID, "date", date.Format("2006-01-02"))
	return attendance.NewAttendanceResponse(created), nil
}

// ClockOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ClockOut(ctx context.Context, claims auth.Claims) (attendance.AttendanceResponse, error) {
	now := s.now()

	record, err := s.attendance.GetByEmployeeAndDate(ctx, claims.EmployeeID, s.today(now))
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrCannotClockOut
		}
		return attendance.AttendanceResponse{}, err
	}
	if record.IsClockedOut() || record.ClockInTime == nil {
		return attendance.AttendanceResponse{}, attendance.ErrCannotClockOut
	}

	hours := attendance.WorkedHours(*record.ClockInTime, now)
	if err := s.attendance.UpdateClockOut(ctx, record.ID, now, hours); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	record.ClockOutTime = &now
	record.TotalHours = hours

	slog.Info("Clocked out", "emp_id", claims.EmployeeID, "total_hours", hours.String())
	return attendance.NewAttendanceResponse(record), nil
}

// ListMine implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListMine(ctx context.Context, claims auth.Claims, filter attendance.Filter) ([]attendance.AttendanceResponse, error) {
	filter.EmployeeIDs = []int64{claims.EmployeeID}
	return s.list(ctx, filter)
}

// ListDepartment implements attendance.AttendanceService. Only managers may
// list their department.
func (s *AttendanceServiceImpl) ListDepartment(ctx context.Context, claims auth.Claims, filter attendance.Filter) ([]attendance.AttendanceResponse, error) {
	if !claims.IsManager() {
		return nil, employee.ErrAccessDenied
	}

	ids, err := s.employees.IDsByDepartment(ctx, claims.Department)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []int64{}
	}
	filter.EmployeeIDs = ids
	return s.list(ctx, filter)
}

// ListAll implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListAll(ctx context.Context, claims auth.Claims, filter attendance.Filter) ([]attendance.AttendanceResponse, error) {
	if !claims.IsHRAdmin() {
		return nil, employee.ErrAccessDenied
	}
	filter.EmployeeIDs = nil
	return s.list(ctx, filter)
}

// ListEmployee implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListEmployee(ctx context.Context, claims auth.Claims, employeeID int64, filter attendance.Filter) ([]attendance.AttendanceResponse, error) {
	if !claims.IsHRAdmin() {
		return nil, employee.ErrAccessDenied
	}
	if _, err := s.employees.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}
	filter.EmployeeIDs = []int64{employeeID}
	return s.list(ctx, filter)
}

func (s *AttendanceServiceImpl) list(ctx context.Context, filter attendance.Filter) ([]attendance.AttendanceResponse, error) {
	records, err := s.attendance.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := make([]attendance.AttendanceResponse, 0, len(records))
	for _, r := range records {
		resp = append(resp, attendance.NewAttendanceResponse(r))
	}
	return resp, nil
}
