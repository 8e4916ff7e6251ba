package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hrstreamline/hrstreamline-backend-go/internal/domain/leave"
	"github.com/hrstreamline/hrstreamline-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const leaveRequestSelect = `
	SELECT lr.id, lr.employee_id, lr.leave_type, lr.start_date, lr.end_date, lr.days_requested,
		lr.reason, lr.status, lr.approved_by, lr.approved_at, lr.rejection_reason,
		e.first_name || ' ' || e.last_name, e.emp_department, e.emp_rank
	FROM leave_requests lr
	INNER JOIN employee e ON lr.employee_id = e.id
`

type leaveRequestRepositoryImpl struct {
	db database.Querier
}

func NewLeaveRequestRepository(db database.Querier) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var lr leave.LeaveRequest
	err := row.Scan(
		&lr.ID,
		&lr.EmployeeID,
		&lr.LeaveType,
		&lr.StartDate,
		&lr.EndDate,
		&lr.DaysRequested,
		&lr.Reason,
		&lr.Status,
		&lr.ApprovedBy,
		&lr.ApprovedAt,
		&lr.RejectionReason,
		&lr.EmployeeName,
		&lr.EmployeeDepartment,
		&lr.EmployeeRank,
	)
	return lr, err
}

func (r *leaveRequestRepositoryImpl) queryLeaveRequests(ctx context.Context, query string, args ...interface{}) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, lr)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (employee_id, leave_type, start_date, end_date, days_requested, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := q.QueryRow(ctx, query,
		request.EmployeeID, request.LeaveType, request.StartDate, request.EndDate,
		request.DaysRequested, request.Reason, request.Status,
	).Scan(&request.ID)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return request, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id int64) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	lr, err := scanLeaveRequest(q.QueryRow(ctx, leaveRequestSelect+` WHERE lr.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request with id %d: %w", id, err)
	}
	return lr, nil
}

// ListByEmployee implements leave.LeaveRequestRepository. Newest start date
// first.
func (r *leaveRequestRepositoryImpl) ListByEmployee(ctx context.Context, employeeID int64) ([]leave.LeaveRequest, error) {
	return r.queryLeaveRequests(ctx,
		leaveRequestSelect+` WHERE lr.employee_id = $1 ORDER BY lr.start_date DESC, lr.id DESC`,
		employeeID,
	)
}

// ListPending implements leave.LeaveRequestRepository. A nil department lists
// every pending request.
func (r *leaveRequestRepositoryImpl) ListPending(ctx context.Context, department *string) ([]leave.LeaveRequest, error) {
	if department != nil {
		return r.queryLeaveRequests(ctx,
			leaveRequestSelect+` WHERE lr.status = $1 AND e.emp_department = $2 ORDER BY lr.start_date DESC, lr.id DESC`,
			leave.LeaveRequestStatusPending, *department,
		)
	}
	return r.queryLeaveRequests(ctx,
		leaveRequestSelect+` WHERE lr.status = $1 ORDER BY lr.start_date DESC, lr.id DESC`,
		leave.LeaveRequestStatusPending,
	)
}

// Process implements leave.LeaveRequestRepository. Only pending requests are
// updated.
func (r *leaveRequestRepositoryImpl) Process(ctx context.Context, id int64, decision leave.ProcessDecision) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $1, approved_by = $2, approved_at = $3, rejection_reason = $4
		WHERE id = $5 AND status = $6
	`

	tag, err := q.Exec(ctx, query,
		decision.Status, decision.ApprovedBy, decision.ApprovedAt, decision.RejectionReason,
		id, leave.LeaveRequestStatusPending,
	)
	if err != nil {
		return fmt.Errorf("failed to update leave request with id %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveRequestAlreadyProcessed
	}
	return nil
}

// LatestApprovedEndDates implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) LatestApprovedEndDates(ctx context.Context, employeeIDs []int64) (map[int64]time.Time, error) {
	result := make(map[int64]time.Time, len(employeeIDs))
	if len(employeeIDs) == 0 {
		return result, nil
	}
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT DISTINCT ON (employee_id) employee_id, end_date
		FROM leave_requests
		WHERE status = $1 AND employee_id = ANY($2)
		ORDER BY employee_id, end_date DESC
	`

	rows, err := q.Query(ctx, query, leave.LeaveRequestStatusApproved, employeeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query approved leave: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			employeeID int64
			endDate    time.Time
		)
		if err := rows.Scan(&employeeID, &endDate); err != nil {
			return nil, err
		}
		result[employeeID] = endDate
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
