package attendance

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Filter narrows attendance listings. A nil EmployeeIDs means all employees;
// an empty non-nil slice matches nothing.
type Filter struct {
	EmployeeIDs []int64
	Year        *int
	Month       *int
	Day         *int
}

// ParseDateFilter reads the optional year, month and day query values.
func ParseDateFilter(year, month, day string) (Filter, error) {
	var f Filter
	parse := func(raw string, min, max int) (*int, error) {
		if raw == "" {
			return nil, nil
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v < min || v > max {
			return nil, ErrInvalidFilter
		}
		return &v, nil
	}

	var err error
	if f.Year, err = parse(year, 1, 9999); err != nil {
		return f, err
	}
	if f.Month, err = parse(month, 1, 12); err != nil {
		return f, err
	}
	if f.Day, err = parse(day, 1, 31); err != nil {
		return f, err
	}
	return f, nil
}

type AttendanceResponse struct {
	ID           int64           `json:"id"`
	EmployeeID   int64           `json:"employee_id"`
	Date         string          `json:"date"`
	ClockInTime  *string         `json:"clock_in_time"`
	ClockOutTime *string         `json:"clock_out_time"`
	TotalHours   decimal.Decimal `json:"total_hours"`
	Status       string          `json:"status"`
}

func NewAttendanceResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:         a.ID,
		EmployeeID: a.EmployeeID,
		Date:       a.Date.Format("2006-01-02"),
		TotalHours: a.TotalHours,
		Status:     string(a.Status),
	}
	if a.ClockInTime != nil {
		s := a.ClockInTime.Format(time.RFC3339)
		resp.ClockInTime = &s
	}
	if a.ClockOutTime != nil {
		s := a.ClockOutTime.Format(time.RFC3339)
		resp.ClockOutTime = &s
	}
	return resp
}
