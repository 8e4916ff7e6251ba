package leave

import (
	"context"
	"time"
)

// LeaveRequestRepository - interface for leave_requests table
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id int64) (LeaveRequest, error)
	ListByEmployee(ctx context.Context, employeeID int64) ([]LeaveRequest, error)
	ListPending(ctx context.Context, department *string) ([]LeaveRequest, error)
	Process(ctx context.Context, id int64, decision ProcessDecision) error

	// LatestApprovedEndDates returns, per employee, the end date of the
	// approved request that ends last. Employees without one are absent.
	LatestApprovedEndDates(ctx context.Context, employeeIDs []int64) (map[int64]time.Time, error)
}
