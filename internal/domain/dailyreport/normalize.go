package dailyreport

import (
	"strings"
	"time"

	"github.com/elmansy-mostafa/Salary-Calculation/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

var maxWorkingHours = decimal.NewFromInt(24)

// Normalize validates raw and converts it into a DailyRecord. Every violated
// field is reported in a single *RecordError. IsSaturday is derived from the
// date; a caller-supplied flag is ignored.
func Normalize(raw RawDailyReport) (DailyRecord, error) {
	var errs validator.ValidationErrors

	employeeID := strings.TrimSpace(raw.EmployeeID)
	if employeeID == "" {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	date, err := ParseDate(raw.Date)
	if err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: err.Error(),
		})
	}

	if raw.WorkingHours.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "working_hours",
			Message: "working_hours must not be negative",
		})
	} else if raw.WorkingHours.GreaterThan(maxWorkingHours) {
		errs = append(errs, validator.ValidationError{
			Field:   "working_hours",
			Message: "working_hours must not exceed 24",
		})
	}

	if raw.QualifiedAppointments < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "qualified_appointments",
			Message: "qualified_appointments must not be negative",
		})
	}
	if raw.UnqualifiedAppointments < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "unqualified_appointments",
			Message: "unqualified_appointments must not be negative",
		})
	}

	for _, amount := range []struct {
		field string
		value decimal.Decimal
	}{
		{"spiffs", raw.Spiffs},
		{"kpi", raw.KPIRaw},
		{"butter_up", raw.ButterUpRaw},
		{"deduction_amount", raw.DeductionAmount},
		{"allowance_value", raw.AllowanceValue},
	} {
		if amount.value.IsNegative() {
			errs = append(errs, validator.ValidationError{
				Field:   amount.field,
				Message: amount.field + " must not be negative",
			})
		}
	}

	reason := strings.TrimSpace(raw.DeductionReason)
	if raw.DeductionAmount.IsPositive() && reason == "" {
		errs = append(errs, validator.ValidationError{
			Field:   "deduction_reason",
			Message: "deduction_reason is required when deduction_amount is greater than 0",
		})
	}

	if len(errs) > 0 {
		return DailyRecord{}, &RecordError{
			EmployeeID: employeeID,
			Date:       raw.Date,
			Violations: errs,
		}
	}

	return DailyRecord{
		EmployeeID:              employeeID,
		Date:                    date,
		QualifiedAppointments:   raw.QualifiedAppointments,
		UnqualifiedAppointments: raw.UnqualifiedAppointments,
		Spiffs:                  raw.Spiffs,
		KPIRaw:                  raw.KPIRaw,
		ButterUpRaw:             raw.ButterUpRaw,
		DeductionAmount:         raw.DeductionAmount,
		DeductionReason:         reason,
		AllowanceType:           strings.ToLower(strings.TrimSpace(raw.AllowanceType)),
		AllowanceValue:          raw.AllowanceValue,
		IsPresent:               raw.IsPresent,
		IsSaturday:              date.Weekday() == time.Saturday,
		WorkingHours:            raw.WorkingHours,
	}, nil
}

// ParseDate accepts YYYY-MM-DD or an RFC3339 timestamp and returns the
// calendar day it names, as UTC midnight. Timestamps keep the day of their
// own offset.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errDateRequired
	}
	if d, ok := validator.IsValidDate(s); ok {
		return d, nil
	}
	if t, ok := validator.IsValidDateTime(s); ok {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, errDateFormat
}

// ApplyPatch merges the non-nil fields of patch into r and re-runs the
// merged result through Normalize. Identity fields (ID, employee, date,
// CreatedAt) are preserved.
func ApplyPatch(r DailyRecord, patch UpdateDailyReportRequest) (DailyRecord, error) {
	if patch.IsEmpty() {
		return DailyRecord{}, ErrEmptyUpdate
	}

	raw := r.ToRaw()
	if patch.QualifiedAppointments != nil {
		raw.QualifiedAppointments = *patch.QualifiedAppointments
	}
	if patch.UnqualifiedAppointments != nil {
		raw.UnqualifiedAppointments = *patch.UnqualifiedAppointments
	}
	if patch.Spiffs != nil {
		raw.Spiffs = *patch.Spiffs
	}
	if patch.KPIRaw != nil {
		raw.KPIRaw = *patch.KPIRaw
	}
	if patch.ButterUpRaw != nil {
		raw.ButterUpRaw = *patch.ButterUpRaw
	}
	if patch.DeductionAmount != nil {
		raw.DeductionAmount = *patch.DeductionAmount
	}
	if patch.DeductionReason != nil {
		raw.DeductionReason = *patch.DeductionReason
	}
	if patch.AllowanceType != nil {
		raw.AllowanceType = *patch.AllowanceType
	}
	if patch.AllowanceValue != nil {
		raw.AllowanceValue = *patch.AllowanceValue
	}
	if patch.IsPresent != nil {
		raw.IsPresent = *patch.IsPresent
	}
	if patch.WorkingHours != nil {
		raw.WorkingHours = *patch.WorkingHours
	}

	merged, err := Normalize(raw)
	if err != nil {
		return DailyRecord{}, err
	}
	merged.ID = r.ID
	merged.CreatedAt = r.CreatedAt
	merged.UpdatedAt = r.UpdatedAt
	return merged, nil
}
