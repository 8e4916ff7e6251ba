package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hrstreamline/hrstreamline-backend-go/internal/domain/employee"
	"github.com/hrstreamline/hrstreamline-backend-go/internal/pkg/metrics"
)

const (
	JobMonthlyAccrual      = "tasks.accrual.monthly_accrual"
	JobEndLeaveStatusCheck = "tasks.leave.end_leave_status_check"
)

// The reconciliation job matches and writes these lower-case literals, not
// the title-case values the REST layer stores.
const (
	reconcileOnLeave  employee.WorkStatus = "on leave"
	reconcileInOffice employee.WorkStatus = "in office"
)

type employeeBatchStore interface {
	LockForBatch(ctx context.Context) error
	ListActive(ctx context.Context) ([]employee.Employee, error)
	ListByWorkStatus(ctx context.Context, status employee.WorkStatus) ([]employee.Employee, error)
	UpdateLeaveBalances(ctx context.Context, updates []employee.BalanceUpdate) error
	UpdateWorkStatus(ctx context.Context, ids []int64, status employee.WorkStatus) error
}

type approvedLeaveStore interface {
	LatestApprovedEndDates(ctx context.Context, employeeIDs []int64) (map[int64]time.Time, error)
}

// Transactor runs fn inside one serializable transaction.
type Transactor interface {
	WithinSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// LeaveJobs holds the monthly accrual and the leave-end reconciliation. Each
// run reads its rows, evaluates them in memory and writes all changes in a
// single transaction guarded by a shared advisory lock.
type LeaveJobs struct {
	employees employeeBatchStore
	leaves    approvedLeaveStore
	tx        Transactor
	metrics   *metrics.Collection
	location  *time.Location
	now       func() time.Time
}

func NewLeaveJobs(
	employees employeeBatchStore,
	leaves approvedLeaveStore,
	tx Transactor,
	m *metrics.Collection,
	location *time.Location,
) *LeaveJobs {
	if location == nil {
		location = time.Local
	}
	return &LeaveJobs{
		employees: employees,
		leaves:    leaves,
		tx:        tx,
		metrics:   m,
		location:  location,
		now:       time.Now,
	}
}

func (j *LeaveJobs) RegisterJobs(scheduler *Scheduler, accrualSpec, leaveStatusSpec string) error {
	if err := scheduler.AddJob(JobMonthlyAccrual, accrualSpec, j.MonthlyAccrual); err != nil {
		return err
	}
	return scheduler.AddJob(JobEndLeaveStatusCheck, leaveStatusSpec, j.EndLeaveStatusCheck)
}

// today is the current calendar date in the job location, as midnight UTC.
func (j *LeaveJobs) today() time.Time {
	return dateOnly(j.now().In(j.location))
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// MonthlyAccrual raises every active employee's leave balance to two days per
// month worked. Balances already at or above that floor are left alone.
func (j *LeaveJobs) MonthlyAccrual(ctx context.Context) error {
	slog.Info("Cron: Starting monthly leave accrual job")
	today := j.today()

	var scanned, updated int
	err := j.tx.WithinSerializable(ctx, func(ctx context.Context) error {
		if err := j.employees.LockForBatch(ctx); err != nil {
			return fmt.Errorf("failed to acquire batch lock: %w", err)
		}

		employees, err := j.employees.ListActive(ctx)
		if err != nil {
			return fmt.Errorf("failed to list active employees: %w", err)
		}
		scanned = len(employees)

		updates := make([]employee.BalanceUpdate, 0, len(employees))
		for _, emp := range employees {
			balance, changed := emp.AccruedBalance(today)
			if !changed {
				continue
			}
			updates = append(updates, employee.BalanceUpdate{EmployeeID: emp.ID, Balance: balance})
		}

		if len(updates) == 0 {
			return nil
		}
		if err := j.employees.UpdateLeaveBalances(ctx, updates); err != nil {
			return fmt.Errorf("failed to update leave balances: %w", err)
		}
		updated = len(updates)
		return nil
	})
	if err != nil {
		return err
	}

	j.metrics.AddLeaveBalancesAccrued(updated)
	slog.Info("Cron: Monthly leave accrual completed", "date", today.Format("2006-01-02"), "scanned", scanned, "updated", updated)
	return nil
}

// EndLeaveStatusCheck returns employees to the office once the latest leave
// approved for them has ended before today.
func (j *LeaveJobs) EndLeaveStatusCheck(ctx context.Context) error {
	slog.Info("Cron: Starting end-of-leave status check job")
	today := j.today()

	var scanned, updated int
	err := j.tx.WithinSerializable(ctx, func(ctx context.Context) error {
		if err := j.employees.LockForBatch(ctx); err != nil {
			return fmt.Errorf("failed to acquire batch lock: %w", err)
		}

		onLeave, err := j.employees.ListByWorkStatus(ctx, reconcileOnLeave)
		if err != nil {
			return fmt.Errorf("failed to list employees on leave: %w", err)
		}
		scanned = len(onLeave)
		if len(onLeave) == 0 {
			return nil
		}

		ids := make([]int64, 0, len(onLeave))
		for _, emp := range onLeave {
			ids = append(ids, emp.ID)
		}

		latestEnd, err := j.leaves.LatestApprovedEndDates(ctx, ids)
		if err != nil {
			return fmt.Errorf("failed to load approved leave: %w", err)
		}

		returning := make([]int64, 0, len(ids))
		for _, id := range ids {
			end, ok := latestEnd[id]
			if !ok {
				continue
			}
			if dateOnly(end).Before(today) {
				returning = append(returning, id)
			}
		}

		if len(returning) == 0 {
			return nil
		}
		if err := j.employees.UpdateWorkStatus(ctx, returning, reconcileInOffice); err != nil {
			return fmt.Errorf("failed to update work status: %w", err)
		}
		updated = len(returning)
		return nil
	})
	if err != nil {
		return err
	}

	j.metrics.AddLeaveStatusesReset(updated)
	slog.Info("Cron: End-of-leave status check completed", "date", today.Format("2006-01-02"), "scanned", scanned, "updated", updated)
	return nil
}
