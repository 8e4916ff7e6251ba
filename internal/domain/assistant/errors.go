package assistant

import "errors"

var (
	ErrEmptyQuestion    = errors.New("question is required")
	ErrUnsafeQuery      = errors.New("query contains potentially dangerous operations")
	ErrNotReadOnlyQuery = errors.New("only SELECT queries are allowed")
	ErrDisabled         = errors.New("assistant is disabled")
)
