package attendance

import "errors"

var (
	ErrAlreadyClockedIn   = errors.New("already clocked in today")
	ErrCannotClockOut     = errors.New("cannot clock out, either not clocked in or already clocked out")
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrInvalidFilter      = errors.New("invalid year, month or day filter")
)
