package leave

import "errors"

var (
	ErrLeaveRequestNotFound         = errors.New("leave request not found")
	ErrInsufficientBalance          = errors.New("insufficient leave balance")
	ErrLeaveRequestAlreadyProcessed = errors.New("leave request is not pending")
	ErrInvalidDateRange             = errors.New("end date must be on or after start date")
	ErrInvalidDateFormat            = errors.New("invalid date format, use YYYY-MM-DD")
	ErrNotAuthorized                = errors.New("not authorized to process this leave request")
)
