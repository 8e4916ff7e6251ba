package employee

import "errors"

var (
	ErrEmployeeNotFound      = errors.New("employee not found")
	ErrEmployeeProfileAbsent = errors.New("employee profile not found")
	ErrAccessDenied          = errors.New("access denied")
	ErrAlreadyTerminated     = errors.New("employee is already terminated")
)
