package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hrstreamline/hrstreamline-backend-go/internal/domain/attendance"
	"github.com/hrstreamline/hrstreamline-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

type attendanceRepository struct {
	db database.Querier
}

func NewAttendanceRepository(db database.Querier) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID, &att.EmployeeID, &att.Date, &att.ClockInTime, &att.ClockOutTime, &att.TotalHours, &att.Status,
	)
	return att, err
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance (employee_id, date, clock_in_time, total_hours, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := q.QueryRow(ctx, query, att.EmployeeID, att.Date, att.ClockInTime, att.TotalHours, att.Status).Scan(&att.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return attendance.Attendance{}, attendance.ErrAlreadyClockedIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}
	return att, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID int64, date time.Time) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, employee_id, date, clock_in_time, clock_out_time, total_hours, status
		FROM attendance
		WHERE employee_id = $1 AND date = $2
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	return att, nil
}

// UpdateClockOut implements attendance.AttendanceRepository. Records that were
// already clocked out are left untouched.
func (a *attendanceRepository) UpdateClockOut(ctx context.Context, id int64, clockOut time.Time, totalHours decimal.Decimal) error {
	q := GetQuerier(ctx, a.db)

	tag, err := q.Exec(ctx,
		`UPDATE attendance SET clock_out_time = $1, total_hours = $2 WHERE id = $3 AND clock_out_time IS NULL`,
		clockOut, totalHours, id,
	)
	if err != nil {
		return fmt.Errorf("failed to clock out attendance with id %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrCannotClockOut
	}
	return nil
}

// List implements attendance.AttendanceRepository. Newest date first.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.Filter) ([]attendance.Attendance, error) {
	if filter.EmployeeIDs != nil && len(filter.EmployeeIDs) == 0 {
		return []attendance.Attendance{}, nil
	}
	q := GetQuerier(ctx, a.db)

	baseWhere := "WHERE TRUE"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeIDs != nil {
		baseWhere += fmt.Sprintf(" AND employee_id = ANY($%d)", argIdx)
		args = append(args, filter.EmployeeIDs)
		argIdx++
	}
	if filter.Year != nil {
		baseWhere += fmt.Sprintf(" AND EXTRACT(YEAR FROM date) = $%d", argIdx)
		args = append(args, *filter.Year)
		argIdx++
	}
	if filter.Month != nil {
		baseWhere += fmt.Sprintf(" AND EXTRACT(MONTH FROM date) = $%d", argIdx)
		args = append(args, *filter.Month)
		argIdx++
	}
	if filter.Day != nil {
		baseWhere += fmt.Sprintf(" AND EXTRACT(DAY FROM date) = $%d", argIdx)
		args = append(args, *filter.Day)
	}

	query := fmt.Sprintf(`
		SELECT id, employee_id, date, clock_in_time, clock_out_time, total_hours, status
		FROM attendance
		%s
		ORDER BY date DESC, id DESC
	`, baseWhere)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]attendance.Attendance, 0)
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, att)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
