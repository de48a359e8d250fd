package http

import (
	"net/http"

	"github.com/elmansy-mostafa/Salary-Calculation/internal/domain/employee"
	"github.com/elmansy-mostafa/Salary-Calculation/internal/domain/user"
	"github.com/elmansy-mostafa/Salary-Calculation/internal/handler/http/middleware"
)

// authorizeEmployee allows callers holding viewAll, and otherwise only the
// employee the token belongs to.
func authorizeEmployee(r *http.Request, employeeID string, viewAll user.Permission) error {
	principal, err := middleware.PrincipalFromContext(r.Context())
	if err != nil {
		return err
	}

	if user.HasPermission(principal.Role, viewAll) {
		return nil
	}
	if principal.EmployeeID != "" && principal.EmployeeID == employeeID {
		return nil
	}
	return employee.ErrUnauthorized
}

// hasPermission reports whether the caller's role grants perm.
func hasPermission(r *http.Request, perm user.Permission) bool {
	principal, err := middleware.PrincipalFromContext(r.Context())
	if err != nil {
		return false
	}
	return user.HasPermission(principal.Role, perm)
}
