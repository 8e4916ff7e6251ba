package postgresql

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/hrstreamline/hrstreamline-backend-go/internal/domain/attendance"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttendanceRepository_ListBuildsFilters(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAttendanceRepository(mock)
	year, month := 2024, 7

	mock.ExpectQuery(regexp.QuoteMeta("WHERE TRUE AND employee_id = ANY($1) AND EXTRACT(YEAR FROM date) = $2 AND EXTRACT(MONTH FROM date) = $3")).
		WithArgs([]int64{4, 5}, 2024, 7).
		WillReturnRows(pgxmock.NewRows([]string{"id"}))

	records, err := repo.List(context.Background(), attendance.Filter{EmployeeIDs: []int64{4, 5}, Year: &year, Month: &month})
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepository_ListEmptyDepartment(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAttendanceRepository(mock)

	records, err := repo.List(context.Background(), attendance.Filter{EmployeeIDs: []int64{}})
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepository_CreateDuplicateDay(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAttendanceRepository(mock)
	now := time.Date(2024, 7, 1, 8, 0, 0, 0, time.UTC)
	day := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO attendance")).
		WithArgs(int64(3), day, &now, pgxmock.AnyArg(), attendance.StatusPresent).
		WillReturnError(&pgconn.PgError{Code: uniqueViolation})

	_, err = repo.Create(context.Background(), attendance.Attendance{
		EmployeeID:  3,
		Date:        day,
		ClockInTime: &now,
		Status:      attendance.StatusPresent,
	})
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedIn)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepository_UpdateClockOutTwice(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAttendanceRepository(mock)
	out := time.Date(2024, 7, 1, 17, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta("WHERE id = $3 AND clock_out_time IS NULL")).
		WithArgs(out, pgxmock.AnyArg(), int64(1)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err = repo.UpdateClockOut(context.Background(), 1, out, attendance.WorkedHours(out.Add(-8*time.Hour), out))
	assert.ErrorIs(t, err, attendance.ErrCannotClockOut)
	assert.NoError(t, mock.ExpectationsWereMet())
}
