package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/elmansy-mostafa/Salary-Calculation/internal/domain/auth"
	"github.com/elmansy-mostafa/Salary-Calculation/internal/domain/user"
	"github.com/elmansy-mostafa/Salary-Calculation/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// Principal is the authenticated caller as described by its access token.
type Principal struct {
	UserID     string
	EmployeeID string
	Role       user.Role
}

func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())

			if errors.Is(err, jwtauth.ErrExpired) {
				response.HandleError(w, auth.ErrTokenExpired)
				return
			}
			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}
			tokenType, ok := claims["type"].(string)
			if tokenType != "access" || !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}

// PrincipalFromContext reads the caller from the verified token in ctx.
func PrincipalFromContext(ctx context.Context) (Principal, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Principal{}, auth.ErrInvalidToken
	}

	userID, _ := claims["user_id"].(string)
	role, _ := claims["role"].(string)
	if userID == "" || role == "" {
		return Principal{}, auth.ErrMissingClaim
	}
	employeeID, _ := claims["employee_id"].(string)

	return Principal{
		UserID:     userID,
		EmployeeID: employeeID,
		Role:       user.Role(role),
	}, nil
}
