package attendance

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type AttendanceRepository interface {
	Create(ctx context.Context, a Attendance) (Attendance, error)
	GetByEmployeeAndDate(ctx context.Context, employeeID int64, date time.Time) (Attendance, error)
	UpdateClockOut(ctx context.Context, id int64, clockOut time.Time, totalHours decimal.Decimal) error
	List(ctx context.Context, filter Filter) ([]Attendance, error)
}
