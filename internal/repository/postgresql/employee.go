package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hrstreamline/hrstreamline-backend-go/internal/domain/employee"
	"github.com/hrstreamline/hrstreamline-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// leaveJobsLockKey is the advisory lock shared by the leave batch jobs.
const leaveJobsLockKey int64 = 0x4852_4c45_4156_45

const employeeSelect = `
	SELECT e.id, e.auth_id, e.first_name, e.last_name, e.phone_no, e.gender, e.address, e.country,
		e.emp_department, e.emp_team, e.emp_position, e.emp_rank, e.emp_leave_balance,
		e.emp_start_date, e.emp_end_date, e.emp_status, e.emp_work_status, a.email
	FROM employee e
	JOIN auth a ON a.id = e.auth_id
`

type employeeRepositoryImpl struct {
	db database.Querier
}

func NewEmployeeRepository(db database.Querier) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID, &emp.AuthID, &emp.FirstName, &emp.LastName, &emp.PhoneNo, &emp.Gender,
		&emp.Address, &emp.Country, &emp.Department, &emp.Team, &emp.Position, &emp.Rank,
		&emp.LeaveBalance, &emp.StartDate, &emp.EndDate, &emp.Status, &emp.WorkStatus, &emp.Email,
	)
	return emp, err
}

func (e *employeeRepositoryImpl) queryEmployees(ctx context.Context, query string, args ...interface{}) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id int64) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	emp, err := scanEmployee(q.QueryRow(ctx, employeeSelect+` WHERE e.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee with id %d: %w", id, err)
	}
	return emp, nil
}

// GetByAuthID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByAuthID(ctx context.Context, authID int64) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	emp, err := scanEmployee(q.QueryRow(ctx, employeeSelect+` WHERE e.auth_id = $1`, authID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeProfileAbsent
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee for auth id %d: %w", authID, err)
	}
	return emp, nil
}

// Create implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		INSERT INTO employee (
			auth_id, first_name, last_name, phone_no, gender, address, country,
			emp_department, emp_team, emp_position, emp_rank, emp_leave_balance,
			emp_start_date, emp_status, emp_work_status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id
	`

	err := q.QueryRow(ctx, query,
		newEmployee.AuthID, newEmployee.FirstName, newEmployee.LastName, newEmployee.PhoneNo,
		newEmployee.Gender, newEmployee.Address, newEmployee.Country, newEmployee.Department,
		newEmployee.Team, newEmployee.Position, newEmployee.Rank, newEmployee.LeaveBalance,
		newEmployee.StartDate, newEmployee.Status, newEmployee.WorkStatus,
	).Scan(&newEmployee.ID)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return newEmployee, nil
}

// List implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) List(ctx context.Context, filter employee.ListFilter) ([]employee.Employee, error) {
	if filter.Department != nil {
		return e.queryEmployees(ctx, employeeSelect+` WHERE e.emp_department = $1 ORDER BY e.id`, *filter.Department)
	}
	return e.queryEmployees(ctx, employeeSelect+` ORDER BY e.id`)
}

// IDsByDepartment implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) IDsByDepartment(ctx context.Context, department string) ([]int64, error) {
	q := GetQuerier(ctx, e.db)

	rows, err := q.Query(ctx, `SELECT id FROM employee WHERE emp_department = $1 ORDER BY id`, department)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// UpdateProfile implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) UpdateProfile(ctx context.Context, id int64, req employee.UpdateProfileRequest) error {
	updates := map[string]*string{
		"first_name": req.FirstName,
		"last_name":  req.LastName,
		"phone_no":   req.PhoneNo,
		"gender":     req.Gender,
		"address":    req.Address,
		"country":    req.Country,
	}
	return e.updateColumns(ctx, id, []string{"first_name", "last_name", "phone_no", "gender", "address", "country"}, updates)
}

// UpdateAssignment implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) UpdateAssignment(ctx context.Context, id int64, req employee.UpdateAssignmentRequest) error {
	updates := map[string]*string{
		"emp_department": req.Department,
		"emp_team":       req.Team,
		"emp_position":   req.Position,
		"emp_rank":       req.Rank,
	}
	return e.updateColumns(ctx, id, []string{"emp_department", "emp_team", "emp_position", "emp_rank"}, updates)
}

// updateColumns sets the non-nil values among columns, in the given order.
func (e *employeeRepositoryImpl) updateColumns(ctx context.Context, id int64, columns []string, values map[string]*string) error {
	q := GetQuerier(ctx, e.db)

	var setClauses []string
	var args []interface{}
	argIdx := 1
	for _, col := range columns {
		v := values[col]
		if v == nil {
			continue
		}
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", col, argIdx))
		args = append(args, *v)
		argIdx++
	}

	if len(setClauses) == 0 {
		return nil
	}

	query := fmt.Sprintf("UPDATE employee SET %s WHERE id = $%d", strings.Join(setClauses, ", "), argIdx)
	args = append(args, id)

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update employee with id %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// Terminate implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Terminate(ctx context.Context, id int64, endDate time.Time) error {
	q := GetQuerier(ctx, e.db)

	tag, err := q.Exec(ctx,
		`UPDATE employee SET emp_status = $1, emp_end_date = $2 WHERE id = $3`,
		employee.StatusTerminated, endDate, id,
	)
	if err != nil {
		return fmt.Errorf("failed to terminate employee with id %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// AdjustLeaveBalance implements employee.EmployeeRepository. A NULL balance
// counts as zero.
func (e *employeeRepositoryImpl) AdjustLeaveBalance(ctx context.Context, id int64, delta decimal.Decimal) error {
	q := GetQuerier(ctx, e.db)

	tag, err := q.Exec(ctx,
		`UPDATE employee SET emp_leave_balance = COALESCE(emp_leave_balance, 0) + $1 WHERE id = $2`,
		delta, id,
	)
	if err != nil {
		return fmt.Errorf("failed to adjust leave balance for employee with id %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// ListActive implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ListActive(ctx context.Context) ([]employee.Employee, error) {
	return e.queryEmployees(ctx, employeeSelect+` WHERE e.emp_status = $1 ORDER BY e.id`, employee.StatusActive)
}

// ListByWorkStatus implements employee.EmployeeRepository. The match is exact
// and case sensitive.
func (e *employeeRepositoryImpl) ListByWorkStatus(ctx context.Context, status employee.WorkStatus) ([]employee.Employee, error) {
	return e.queryEmployees(ctx, employeeSelect+` WHERE e.emp_work_status = $1 ORDER BY e.id`, status)
}

// UpdateLeaveBalances implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) UpdateLeaveBalances(ctx context.Context, updates []employee.BalanceUpdate) error {
	if len(updates) == 0 {
		return nil
	}
	q := GetQuerier(ctx, e.db)

	ids := make([]int64, len(updates))
	balances := make([]string, len(updates))
	for i, u := range updates {
		ids[i] = u.EmployeeID
		balances[i] = u.Balance.String()
	}

	query := `
		UPDATE employee AS e
		SET emp_leave_balance = v.balance::numeric
		FROM unnest($1::bigint[], $2::text[]) AS v(id, balance)
		WHERE e.id = v.id
	`

	tag, err := q.Exec(ctx, query, ids, balances)
	if err != nil {
		return fmt.Errorf("failed to update leave balances: %w", err)
	}
	if tag.RowsAffected() != int64(len(updates)) {
		return fmt.Errorf("leave balance update touched %d of %d employees", tag.RowsAffected(), len(updates))
	}
	return nil
}

// UpdateWorkStatus implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) UpdateWorkStatus(ctx context.Context, ids []int64, status employee.WorkStatus) error {
	if len(ids) == 0 {
		return nil
	}
	q := GetQuerier(ctx, e.db)

	_, err := q.Exec(ctx, `UPDATE employee SET emp_work_status = $1 WHERE id = ANY($2)`, status, ids)
	if err != nil {
		return fmt.Errorf("failed to update work status: %w", err)
	}
	return nil
}

// LockForBatch implements employee.EmployeeRepository. It must run inside a
// transaction; the lock is released on commit or rollback.
func (e *employeeRepositoryImpl) LockForBatch(ctx context.Context) error {
	q := GetQuerier(ctx, e.db)

	if _, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, leaveJobsLockKey); err != nil {
		return fmt.Errorf("failed to acquire advisory lock: %w", err)
	}
	return nil
}
