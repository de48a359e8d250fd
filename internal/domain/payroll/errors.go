package payroll

import (
	"errors"
	"fmt"
	"time"

	"github.com/elmansy-mostafa/Salary-Calculation/internal/domain/employee"
)

var (
	ErrInconsistentData = errors.New("inconsistent daily report data")
	ErrUnknownTier      = errors.New("tier is not configured in pay scale")
	ErrInvalidPeriod    = errors.New("invalid salary period")
	ErrTooManyEmployees = errors.New("too many employees in batch")
)

// InconsistentDataError means the record set handed to the aggregator cannot
// be trusted, for example two reports on the same date.
type InconsistentDataError struct {
	EmployeeID string
	Date       time.Time
	Reason     string
}

func (e *InconsistentDataError) Error() string {
	return fmt.Sprintf("inconsistent data for employee %q on %s: %s", e.EmployeeID, e.Date.Format("2006-01-02"), e.Reason)
}

func (e *InconsistentDataError) Unwrap() error { return ErrInconsistentData }

type UnknownTierError struct {
	EmployeeID string
	Tier       employee.Tier
	PayScaleID string
}

func (e *UnknownTierError) Error() string {
	return fmt.Sprintf("tier %q of employee %q is not configured in pay scale %q", e.Tier, e.EmployeeID, e.PayScaleID)
}

func (e *UnknownTierError) Unwrap() error { return ErrUnknownTier }
