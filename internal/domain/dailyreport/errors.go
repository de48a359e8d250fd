package dailyreport

import (
	"errors"
	"fmt"

	"github.com/elmansy-mostafa/Salary-Calculation/internal/pkg/validator"
)

var (
	ErrInvalidRecord        = errors.New("invalid daily report")
	ErrDailyReportNotFound  = errors.New("daily report not found")
	ErrDuplicateDailyReport = errors.New("daily report already exists for this employee and date")
	ErrEmptyUpdate          = errors.New("at least one field must be provided")
	ErrInvalidDateRange     = errors.New("start date must be before end date")
)

// RecordError describes a daily report that failed normalization. It matches
// both ErrInvalidRecord and validator.ValidationErrors.
type RecordError struct {
	EmployeeID string
	Date       string
	Violations validator.ValidationErrors
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("invalid daily report for employee %q on %q: %s", e.EmployeeID, e.Date, e.Violations.Error())
}

func (e *RecordError) Unwrap() []error {
	return []error{ErrInvalidRecord, e.Violations}
}

var (
	errDateRequired = errors.New("date is required")
	errDateFormat   = errors.New("date must be in YYYY-MM-DD or RFC3339 format")
)
