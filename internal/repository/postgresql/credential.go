package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/hrstreamline/hrstreamline-backend-go/internal/domain/auth"
	"github.com/hrstreamline/hrstreamline-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

type credentialRepositoryImpl struct {
	db database.Querier
}

func NewCredentialRepository(db database.Querier) auth.CredentialRepository {
	return &credentialRepositoryImpl{db: db}
}

// GetByEmail implements auth.CredentialRepository.
func (c *credentialRepositoryImpl) GetByEmail(ctx context.Context, email string) (auth.Credential, error) {
	q := GetQuerier(ctx, c.db)

	var cred auth.Credential
	err := q.QueryRow(ctx,
		`SELECT id, email, password_hash, created_at FROM auth WHERE email = $1`,
		email,
	).Scan(&cred.ID, &cred.Email, &cred.PasswordHash, &cred.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.Credential{}, auth.ErrUserNotFound
		}
		return auth.Credential{}, fmt.Errorf("failed to get credential: %w", err)
	}
	return cred, nil
}

// Create implements auth.CredentialRepository.
func (c *credentialRepositoryImpl) Create(ctx context.Context, email, passwordHash string) (auth.Credential, error) {
	q := GetQuerier(ctx, c.db)

	cred := auth.Credential{Email: email, PasswordHash: passwordHash}
	err := q.QueryRow(ctx,
		`INSERT INTO auth (email, password_hash) VALUES ($1, $2) RETURNING id, created_at`,
		email, passwordHash,
	).Scan(&cred.ID, &cred.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return auth.Credential{}, auth.ErrUserAlreadyExists
		}
		return auth.Credential{}, fmt.Errorf("failed to create credential: %w", err)
	}
	return cred, nil
}
