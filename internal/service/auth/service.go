package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hrstreamline/hrstreamline-backend-go/internal/domain/auth"
	"github.com/hrstreamline/hrstreamline-backend-go/internal/domain/employee"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

const tokenTypeBearer = "Bearer"

type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type TokenService interface {
	GenerateAccessToken(claims auth.Claims) (token string, expiresAt int64, err error)
	RevokeToken(tokenID string, expiresAt int64)
}

type AuthServiceImpl struct {
	tx          Transactor
	credentials auth.CredentialRepository
	employees   employee.EmployeeRepository
	tokens      TokenService
	loc         *time.Location
	now         func() time.Time
}

// NewAuthService returns the auth service. New employees start on the
// calendar day in loc.
func NewAuthService(tx Transactor, credentials auth.CredentialRepository, employees employee.EmployeeRepository, tokens TokenService, loc *time.Location) *AuthServiceImpl {
	if loc == nil {
		loc = time.Local
	}
	return &AuthServiceImpl{
		tx:          tx,
		credentials: credentials,
		employees:   employees,
		tokens:      tokens,
		loc:         loc,
		now:         time.Now,
	}
}

func (a *AuthServiceImpl) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Register implements auth.AuthService. The credential and its employee row
// are created together.
func (a *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (auth.RegisterResponse, error) {
	email := strings.TrimSpace(req.Email)

	_, err := a.credentials.GetByEmail(ctx, email)
	if err == nil {
		return auth.RegisterResponse{}, auth.ErrUserAlreadyExists
	}
	if !errors.Is(err, auth.ErrUserNotFound) {
		return auth.RegisterResponse{}, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := a.hashPassword(req.Password)
	if err != nil {
		return auth.RegisterResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	today := a.now().In(a.loc)
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	zero := decimal.Zero

	var resp auth.RegisterResponse
	err = a.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		cred, err := a.credentials.Create(ctx, email, hash)
		if err != nil {
			return err
		}

		emp, err := a.employees.Create(ctx, employee.Employee{
			AuthID:       cred.ID,
			FirstName:    strings.TrimSpace(req.FirstName),
			LastName:     strings.TrimSpace(req.LastName),
			PhoneNo:      req.PhoneNo,
			Gender:       req.Gender,
			Address:      req.Address,
			Country:      req.Country,
			LeaveBalance: &zero,
			StartDate:    &today,
			Status:       employee.StatusActive,
			WorkStatus:   employee.WorkStatusInOffice,
		})
		if err != nil {
			return err
		}

		resp = auth.RegisterResponse{AuthID: cred.ID, EmployeeID: emp.ID, Email: cred.Email}
		return nil
	})
	if err != nil {
		return auth.RegisterResponse{}, err
	}

	slog.Info("User registered", "auth_id", resp.AuthID, "emp_id", resp.EmployeeID)
	return resp, nil
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	cred, err := a.credentials.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	emp, err := a.employees.GetByAuthID(ctx, cred.ID)
	if err != nil {
		return auth.TokenResponse{}, err
	}
	if emp.Status == employee.StatusTerminated {
		return auth.TokenResponse{}, auth.ErrAccountTerminated
	}

	token, expiresAt, err := a.tokens.GenerateAccessToken(auth.Claims{
		AuthID:     cred.ID,
		EmployeeID: emp.ID,
		Rank:       deref(emp.Rank),
		Department: deref(emp.Department),
		FullName:   emp.FullName(),
		Status:     string(emp.Status),
	})
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return auth.TokenResponse{
		AccessToken: token,
		TokenType:   tokenTypeBearer,
		ExpiresAt:   expiresAt,
	}, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, claims auth.Claims) error {
	if claims.TokenID == "" {
		return auth.ErrInvalidToken
	}
	a.tokens.RevokeToken(claims.TokenID, claims.ExpiresAt)
	slog.Info("Access token revoked", "auth_id", claims.AuthID)
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
