package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/hrstreamline/hrstreamline-backend-go/internal/domain/auth"
	"github.com/hrstreamline/hrstreamline-backend-go/internal/handler/http/response"
	"github.com/hrstreamline/hrstreamline-backend-go/internal/pkg/jwt"
)

// RevocationChecker reports whether a token id has been logged out.
type RevocationChecker interface {
	IsTokenRevoked(tokenID string) bool
}

// AuthRequired rejects requests without a valid, unrevoked access token and
// stores the caller's claims in the request context.
func AuthRequired(revoked RevocationChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, raw, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			tokenType, ok := raw["type"].(string)
			if tokenType != jwt.TokenTypeAccess || !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			claims, err := jwt.ClaimsFromMap(raw)
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			if revoked.IsTokenRevoked(claims.TokenID) {
				response.HandleError(w, auth.ErrTokenRevoked)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithClaims(r.Context(), claims)))
		}
		return http.HandlerFunc(hfn)
	}
}
