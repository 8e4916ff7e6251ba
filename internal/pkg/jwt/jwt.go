package jwt

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/hrstreamline/hrstreamline-backend-go/internal/domain/auth"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const TokenTypeAccess = "access"

var errMissingClaim = errors.New("missing claim")

type Service interface {
	GenerateAccessToken(claims auth.Claims) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
	RevokeToken(tokenID string, expiresAt int64)
	IsTokenRevoked(tokenID string) bool
	PruneExpired(now time.Time) int
}

// JWTService signs HS256 access tokens and keeps the process-wide set of
// revoked token ids. Each revoked id is remembered until its token expires.
type JWTService struct {
	secretKey                 string
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
	revokedTokens             map[string]int64
	mu                        sync.RWMutex
	now                       func() time.Time
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) *JWTService {
	return &JWTService{
		secretKey:                 secretKey,
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		revokedTokens:             make(map[string]int64),
		now:                       time.Now,
	}
}

func (j *JWTService) GenerateAccessToken(claims auth.Claims) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = j.now().Add(expDuration).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"auth_id":        claims.AuthID,
		"emp_id":         claims.EmployeeID,
		"emp_rank":       claims.Rank,
		"emp_department": claims.Department,
		"full_name":      claims.FullName,
		"emp_status":     claims.Status,
		"type":           TokenTypeAccess,
		"jti":            uuid.NewString(),
		"exp":            expiresAt,
	})
	return tokenString, expiresAt, err
}

func (j *JWTService) RevokeToken(tokenID string, expiresAt int64) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.revokedTokens[tokenID] = expiresAt
}

func (j *JWTService) IsTokenRevoked(tokenID string) bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	_, revoked := j.revokedTokens[tokenID]
	return revoked
}

// PruneExpired forgets revoked ids whose tokens have expired by now and
// returns how many were removed.
func (j *JWTService) PruneExpired(now time.Time) int {
	j.mu.Lock()
	defer j.mu.Unlock()

	removed := 0
	for id, exp := range j.revokedTokens {
		if exp <= now.Unix() {
			delete(j.revokedTokens, id)
			removed++
		}
	}
	return removed
}

// ClaimsFromMap builds typed claims from a verified token's claim map.
func ClaimsFromMap(m map[string]interface{}) (auth.Claims, error) {
	var c auth.Claims
	var err error

	if c.AuthID, err = int64Claim(m, "auth_id"); err != nil {
		return auth.Claims{}, err
	}
	if c.EmployeeID, err = int64Claim(m, "emp_id"); err != nil {
		return auth.Claims{}, err
	}
	c.Rank, _ = m["emp_rank"].(string)
	c.Department, _ = m["emp_department"].(string)
	c.FullName, _ = m["full_name"].(string)
	c.Status, _ = m["emp_status"].(string)

	jti, ok := m["jti"].(string)
	if !ok || jti == "" {
		return auth.Claims{}, fmt.Errorf("jti: %w", errMissingClaim)
	}
	c.TokenID = jti

	switch exp := m["exp"].(type) {
	case time.Time:
		c.ExpiresAt = exp.Unix()
	default:
		if c.ExpiresAt, err = int64Claim(m, "exp"); err != nil {
			return auth.Claims{}, err
		}
	}

	return c, nil
}

func int64Claim(m map[string]interface{}, key string) (int64, error) {
	switch v := m[key].(type) {
	case float64:
		return int64(v), nil
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case json.Number:
		return v.Int64()
	case nil:
		return 0, fmt.Errorf("%s: %w", key, errMissingClaim)
	default:
		return 0, fmt.Errorf("%s: unexpected type %T", key, v)
	}
}
