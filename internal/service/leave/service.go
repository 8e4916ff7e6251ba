package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hrstreamline/hrstreamline-backend-go/internal/domain/auth"
	"github.com/hrstreamline/hrstreamline-backend-go/internal/domain/employee"
	"github.com/hrstreamline/hrstreamline-backend-go/internal/domain/leave"
	"github.com/shopspring/decimal"
)

type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type LeaveServiceImpl struct {
	tx        Transactor
	requests  leave.LeaveRequestRepository
	employees employee.EmployeeRepository
	now       func() time.Time
}

func NewLeaveService(tx Transactor, requests leave.LeaveRequestRepository, employees employee.EmployeeRepository) *LeaveServiceImpl {
	return &LeaveServiceImpl{
		tx:        tx,
		requests:  requests,
		employees: employees,
		now:       time.Now,
	}
}

// CreateLeaveRequest implements leave.LeaveService. The requested days count
// both ends and must be covered by the current balance.
func (s *LeaveServiceImpl) CreateLeaveRequest(ctx context.Context, claims auth.Claims, req leave.CreateLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	start, end, err := req.ParseDates()
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	days := leave.InclusiveDays(start, end)

	emp, err := s.employees.GetByID(ctx, claims.EmployeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return leave.LeaveRequestResponse{}, leave.ErrInsufficientBalance
		}
		return leave.LeaveRequestResponse{}, err
	}
	if emp.Balance().LessThan(decimal.NewFromInt(int64(days))) {
		return leave.LeaveRequestResponse{}, leave.ErrInsufficientBalance
	}

	created, err := s.requests.Create(ctx, leave.LeaveRequest{
		EmployeeID:    emp.ID,
		LeaveType:     leave.LeaveType(req.LeaveType),
		StartDate:     start,
		EndDate:       end,
		DaysRequested: days,
		Reason:        req.Reason,
		Status:        leave.LeaveRequestStatusPending,
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	slog.Info("Leave request submitted", "id", created.ID, "emp_id", emp.ID, "days", days)
	return leave.NewLeaveRequestResponse(created), nil
}

// ListMyLeaveRequests implements leave.LeaveService.
func (s *LeaveServiceImpl) ListMyLeaveRequests(ctx context.Context, claims auth.Claims) ([]leave.LeaveRequestResponse, error) {
	requests, err := s.requests.ListByEmployee(ctx, claims.EmployeeID)
	if err != nil {
		return nil, err
	}
	return toResponses(requests), nil
}

// ListPendingLeaveRequests implements leave.LeaveService. Managers see their
// department, admins see everything.
func (s *LeaveServiceImpl) ListPendingLeaveRequests(ctx context.Context, claims auth.Claims) ([]leave.LeaveRequestResponse, error) {
	var department *string
	switch {
	case claims.IsManager():
		d := claims.Department
		department = &d
	case claims.IsAdmin():
	default:
		return nil, leave.ErrNotAuthorized
	}

	requests, err := s.requests.ListPending(ctx, department)
	if err != nil {
		return nil, err
	}
	return toResponses(requests), nil
}

// ApproveLeaveRequest implements leave.LeaveService. The requestor's balance
// is reduced by the requested days in the same transaction.
func (s *LeaveServiceImpl) ApproveLeaveRequest(ctx context.Context, claims auth.Claims, id int64) (leave.LeaveRequestResponse, error) {
	return s.process(ctx, claims, id, func(ctx context.Context, lr leave.LeaveRequest) error {
		err := s.requests.Process(ctx, id, leave.ProcessDecision{
			Status:     leave.LeaveRequestStatusApproved,
			ApprovedBy: claims.EmployeeID,
			ApprovedAt: s.now(),
		})
		if err != nil {
			return err
		}
		return s.employees.AdjustLeaveBalance(ctx, lr.EmployeeID, decimal.NewFromInt(int64(-lr.DaysRequested)))
	})
}

// RejectLeaveRequest implements leave.LeaveService.
func (s *LeaveServiceImpl) RejectLeaveRequest(ctx context.Context, claims auth.Claims, id int64, req leave.RejectLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	return s.process(ctx, claims, id, func(ctx context.Context, lr leave.LeaveRequest) error {
		return s.requests.Process(ctx, id, leave.ProcessDecision{
			Status:          leave.LeaveRequestStatusRejected,
			ApprovedBy:      claims.EmployeeID,
			ApprovedAt:      s.now(),
			RejectionReason: req.RejectionReason,
		})
	})
}

func (s *LeaveServiceImpl) process(ctx context.Context, claims auth.Claims, id int64, apply func(ctx context.Context, lr leave.LeaveRequest) error) (leave.LeaveRequestResponse, error) {
	var result leave.LeaveRequest
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		lr, err := s.requests.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if !lr.IsPending() {
			return leave.ErrLeaveRequestAlreadyProcessed
		}
		if err := authorizeDecision(claims, lr); err != nil {
			return err
		}

		if err := apply(ctx, lr); err != nil {
			return err
		}

		result, err = s.requests.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	slog.Info("Leave request processed", "id", id, "status", result.Status, "by", claims.EmployeeID)
	return leave.NewLeaveRequestResponse(result), nil
}

// authorizeDecision lets managers decide for their own department and admins
// decide for other admins.
func authorizeDecision(claims auth.Claims, lr leave.LeaveRequest) error {
	switch {
	case claims.IsManager():
		if lr.EmployeeDepartment == nil || *lr.EmployeeDepartment != claims.Department {
			return fmt.Errorf("%w: managers can only process requests from their department", leave.ErrNotAuthorized)
		}
	case claims.IsAdmin():
		if lr.EmployeeRank == nil || *lr.EmployeeRank != auth.RankAdmin {
			return fmt.Errorf("%w: admins can only process requests from other admins", leave.ErrNotAuthorized)
		}
	default:
		return leave.ErrNotAuthorized
	}
	return nil
}

// GetLeaveBalance implements leave.LeaveService. An unset balance is zero.
func (s *LeaveServiceImpl) GetLeaveBalance(ctx context.Context, claims auth.Claims) (leave.LeaveBalanceResponse, error) {
	emp, err := s.employees.GetByID(ctx, claims.EmployeeID)
	if err != nil {
		return leave.LeaveBalanceResponse{}, err
	}
	return leave.LeaveBalanceResponse{LeaveBalance: emp.Balance()}, nil
}

func toResponses(requests []leave.LeaveRequest) []leave.LeaveRequestResponse {
	resp := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, r := range requests {
		resp = append(resp, leave.NewLeaveRequestResponse(r))
	}
	return resp
}
