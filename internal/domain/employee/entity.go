package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID           int64
	AuthID       int64
	FirstName    string
	LastName     string
	PhoneNo      *string
	Gender       *string
	Address      *string
	Country      *string
	Department   *string
	Team         *string
	Position     *string
	Rank         *string
	LeaveBalance *decimal.Decimal
	StartDate    *time.Time
	EndDate      *time.Time
	Status       EmploymentStatus
	WorkStatus   WorkStatus

	// DTO / Join
	Email string
}

type EmploymentStatus string

const (
	StatusActive     EmploymentStatus = "Active"
	StatusTerminated EmploymentStatus = "Terminated"
)

// WorkStatus is stored as free text. The REST layer writes title-case values
// while the leave-end reconciliation job matches its own lower-case literals.
type WorkStatus string

const (
	WorkStatusInOffice WorkStatus = "In office"
	WorkStatusOnLeave  WorkStatus = "On leave"
)

func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

func (e Employee) IsActive() bool {
	return e.Status == StatusActive
}

// Balance returns the leave balance, treating an unset balance as zero.
func (e Employee) Balance() decimal.Decimal {
	if e.LeaveBalance == nil {
		return decimal.Zero
	}
	return *e.LeaveBalance
}

// AccrualDaysPerMonth is the number of leave days earned per month of tenure.
const AccrualDaysPerMonth = 2

// MonthsWorked counts calendar-month boundaries between start and today. Day
// of month is ignored and the result is not clamped, so a future start date
// yields zero or a negative count.
func MonthsWorked(start, today time.Time) int {
	return (today.Year()-start.Year())*12 + int(today.Month()) - int(start.Month())
}

// ExpectedLeaveBalance is the accrual floor for an employee who started on start.
func ExpectedLeaveBalance(start, today time.Time) decimal.Decimal {
	return decimal.NewFromInt(int64(MonthsWorked(start, today) * AccrualDaysPerMonth))
}

// AccruedBalance reports the balance the employee should hold as of today and
// whether it differs from the stored one. Only active employees with a start
// date accrue, and an existing balance is never lowered.
func (e Employee) AccruedBalance(today time.Time) (decimal.Decimal, bool) {
	if !e.IsActive() || e.StartDate == nil {
		return decimal.Decimal{}, false
	}

	expected := ExpectedLeaveBalance(*e.StartDate, today)
	if e.LeaveBalance == nil || e.LeaveBalance.LessThan(expected) {
		return expected, true
	}
	return *e.LeaveBalance, false
}

// BalanceUpdate is one row of a bulk leave-balance write.
type BalanceUpdate struct {
	EmployeeID int64
	Balance    decimal.Decimal
}
