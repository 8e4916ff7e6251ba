package leave

import "time"

type LeaveType string

const (
	LeaveTypeAnnual    LeaveType = "Annual"
	LeaveTypeSick      LeaveType = "Sick"
	LeaveTypePersonal  LeaveType = "Personal"
	LeaveTypeEmergency LeaveType = "Emergency"
)

var LeaveTypes = []string{
	string(LeaveTypeAnnual),
	string(LeaveTypeSick),
	string(LeaveTypePersonal),
	string(LeaveTypeEmergency),
}

type LeaveRequestStatus string

const (
	LeaveRequestStatusPending  LeaveRequestStatus = "Pending"
	LeaveRequestStatusApproved LeaveRequestStatus = "Approved"
	LeaveRequestStatusRejected LeaveRequestStatus = "Rejected"
)

// LeaveRequest entity
type LeaveRequest struct {
	ID              int64
	EmployeeID      int64
	LeaveType       LeaveType
	StartDate       time.Time
	EndDate         time.Time
	DaysRequested   int
	Reason          *string
	Status          LeaveRequestStatus
	ApprovedBy      *int64
	ApprovedAt      *time.Time
	RejectionReason *string

	// Relationships (for responses and access checks)
	EmployeeName       *string
	EmployeeDepartment *string
	EmployeeRank       *string
}

func (r LeaveRequest) IsPending() bool {
	return r.Status == LeaveRequestStatusPending
}

// InclusiveDays counts calendar days from start to end, both included.
func InclusiveDays(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int(e.Sub(s).Hours()/24) + 1
}

// ProcessDecision is the outcome applied by an approver.
type ProcessDecision struct {
	Status          LeaveRequestStatus
	ApprovedBy      int64
	ApprovedAt      time.Time
	RejectionReason *string
}
