package auth

import "time"

// Credential is a login identity. Each credential owns exactly one employee
// record.
type Credential struct {
	ID           int64
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
