package employee

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type EmployeeRepository interface {
	GetByID(ctx context.Context, id int64) (Employee, error)
	GetByAuthID(ctx context.Context, authID int64) (Employee, error)
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	List(ctx context.Context, filter ListFilter) ([]Employee, error)
	IDsByDepartment(ctx context.Context, department string) ([]int64, error)
	UpdateProfile(ctx context.Context, id int64, req UpdateProfileRequest) error
	UpdateAssignment(ctx context.Context, id int64, req UpdateAssignmentRequest) error
	Terminate(ctx context.Context, id int64, endDate time.Time) error
	AdjustLeaveBalance(ctx context.Context, id int64, delta decimal.Decimal) error

	// Batch access used by the leave jobs
	ListActive(ctx context.Context) ([]Employee, error)
	ListByWorkStatus(ctx context.Context, status WorkStatus) ([]Employee, error)
	UpdateLeaveBalances(ctx context.Context, updates []BalanceUpdate) error
	UpdateWorkStatus(ctx context.Context, ids []int64, status WorkStatus) error
	LockForBatch(ctx context.Context) error
}
