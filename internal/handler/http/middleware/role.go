package middleware

import (
	"fmt"
	"net/http"

	"github.com/elmansy-mostafa/Salary-Calculation/internal/domain/user"
	"github.com/elmansy-mostafa/Salary-Calculation/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// RequirePermission checks if user has specific permission
func RequirePermission(permission user.Permission) func(http.Handler) http.Handler {
	return RequireAnyPermission(permission)
}

// RequireAnyPermission lets the request through when the caller's role holds
// at least one of permissions.
func RequireAnyPermission(permissions ...user.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s'", permissions[0]))
				return
			}

			roleStr, ok := claims["role"].(string)
			if !ok {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s'", permissions[0]))
				return
			}

			role := user.Role(roleStr)
			for _, p := range permissions {
				if user.HasPermission(role, p) {
					next.ServeHTTP(w, r)
					return
				}
			}
			response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s', but user role is '%s'", permissions[0], role))
		})
	}
}
