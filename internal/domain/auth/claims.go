package auth

import "context"

const (
	RankAdmin   = "admin"
	RankManager = "manager"

	DepartmentHumanResource = "Human Resource"
)

// Claims is the authenticated caller as carried by an access token.
type Claims struct {
	AuthID     int64
	EmployeeID int64
	Rank       string
	Department string
	FullName   string
	Status     string
	TokenID    string
	ExpiresAt  int64
}

// IsHRAdmin reports whether the caller is an admin of the Human Resource
// department.
func (c Claims) IsHRAdmin() bool {
	return c.Rank == RankAdmin && c.Department == DepartmentHumanResource
}

func (c Claims) IsAdmin() bool {
	return c.Rank == RankAdmin
}

func (c Claims) IsManager() bool {
	return c.Rank == RankManager
}

type claimsContextKey struct{}

func WithClaims(ctx context.Context, claims Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey{}, claims)
}

// ClaimsFromContext returns the claims stored by the auth middleware.
func ClaimsFromContext(ctx context.Context) (Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey{}).(Claims)
	return claims, ok
}
