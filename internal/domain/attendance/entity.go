package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPresent Status = "Present"
	StatusAbsent  Status = "Absent"
	StatusLate    Status = "Late"
	StatusHalfDay Status = "Half Day"
)

// Attendance is one employee-day. There is at most one per employee per date.
type Attendance struct {
	ID           int64
	EmployeeID   int64
	Date         time.Time
	ClockInTime  *time.Time
	ClockOutTime *time.Time
	TotalHours   decimal.Decimal
	Status       Status
}

func (a Attendance) IsClockedOut() bool {
	return a.ClockOutTime != nil
}

// WorkedHours returns the hours between clock-in and out rounded to two
// decimal places.
func WorkedHours(in, out time.Time) decimal.Decimal {
	return decimal.NewFromFloat(out.Sub(in).Hours()).Round(2)
}
