package response

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/elmansy-mostafa/Salary-Calculation/internal/domain/auth"
	"github.com/elmansy-mostafa/Salary-Calculation/internal/domain/dailyreport"
	"github.com/elmansy-mostafa/Salary-Calculation/internal/domain/employee"
	"github.com/elmansy-mostafa/Salary-Calculation/internal/domain/master/payscale"
	"github.com/elmansy-mostafa/Salary-Calculation/internal/domain/payroll"
	"github.com/elmansy-mostafa/Salary-Calculation/internal/domain/user"
	"github.com/elmansy-mostafa/Salary-Calculation/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrMissingClaim):
		Unauthorized(w, err.Error())
	case errors.Is(err, user.ErrInsufficientPermissions),
		errors.Is(err, employee.ErrUnauthorized):
		Forbidden(w, err.Error())

	// Not found
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, payscale.ErrPayScaleNotFound):
		NotFound(w, "Pay scale not found")
	case errors.Is(err, dailyreport.ErrDailyReportNotFound):
		NotFound(w, "Daily report not found")

	// Conflicts
	case errors.Is(err, dailyreport.ErrDuplicateDailyReport):
		Conflict(w, err.Error())

	// Salary engine errors
	case errors.Is(err, payroll.ErrInconsistentData):
		ConflictWithCode(w, "INCONSISTENT_DATA", err.Error())
	case errors.Is(err, payroll.ErrUnknownTier):
		ConflictWithCode(w, "UNKNOWN_TIER", err.Error())
	case errors.Is(err, dailyreport.ErrEmptyUpdate):
		BadRequest(w, err.Error(), nil)

	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusServiceUnavailable, "REQUEST_CANCELED", "Request was canceled before it completed", nil)

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
