package middleware

import (
	"net/http"

	"github.com/hrstreamline/hrstreamline-backend-go/internal/domain/auth"
	"github.com/hrstreamline/hrstreamline-backend-go/internal/handler/http/response"
)

// RequireHRAdmin requires rank admin in the Human Resource department.
func RequireHRAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := auth.ClaimsFromContext(r.Context())
		if !ok {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		if !claims.IsHRAdmin() {
			response.HandleError(w, auth.ErrForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireManager requires rank manager.
func RequireManager(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := auth.ClaimsFromContext(r.Context())
		if !ok {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		if !claims.IsManager() {
			response.HandleError(w, auth.ErrForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}
