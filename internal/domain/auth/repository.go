package auth

import "context"

type CredentialRepository interface {
	GetByEmail(ctx context.Context, email string) (Credential, error)
	Create(ctx context.Context, email, passwordHash string) (Credential, error)
}
