package dailyreport

import (
	"time"

	"github.com/elmansy-mostafa/Salary-Calculation/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// UpdateDailyReportRequest is a typed partial update. Nil fields are left
// untouched; employee and date identify the record and cannot change.
type UpdateDailyReportRequest struct {
	QualifiedAppointments   *int             `json:"qualified_appointments,omitempty"`
	UnqualifiedAppointments *int             `json:"unqualified_appointments,omitempty"`
	Spiffs                  *decimal.Decimal `json:"spiffs,omitempty"`
	KPIRaw                  *decimal.Decimal `json:"kpi,omitempty"`
	ButterUpRaw             *decimal.Decimal `json:"butter_up,omitempty"`
	DeductionAmount         *decimal.Decimal `json:"deduction_amount,omitempty"`
	DeductionReason         *string          `json:"deduction_reason,omitempty"`
	AllowanceType           *string          `json:"allowance_type,omitempty"`
	AllowanceValue          *decimal.Decimal `json:"allowance_value,omitempty"`
	IsPresent               *bool            `json:"is_present,omitempty"`
	WorkingHours            *decimal.Decimal `json:"working_hours,omitempty"`
}

func (r UpdateDailyReportRequest) IsEmpty() bool {
	return r.QualifiedAppointments == nil &&
		r.UnqualifiedAppointments == nil &&
		r.Spiffs == nil &&
		r.KPIRaw == nil &&
		r.ButterUpRaw == nil &&
		r.DeductionAmount == nil &&
		r.DeductionReason == nil &&
		r.AllowanceType == nil &&
		r.AllowanceValue == nil &&
		r.IsPresent == nil &&
		r.WorkingHours == nil
}

type ListDailyReportsRequest struct {
	EmployeeID string
	StartDate  string
	EndDate    string
}

// Validate checks the request and returns the parsed half-open range.
func (r *ListDailyReportsRequest) Validate() (time.Time, time.Time, error) {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	start, okStart := validator.IsValidDate(r.StartDate)
	if !okStart {
		errs = append(errs, validator.ValidationError{
			Field:   "start",
			Message: "start must be in YYYY-MM-DD format",
		})
	}
	end, okEnd := validator.IsValidDate(r.EndDate)
	if !okEnd {
		errs = append(errs, validator.ValidationError{
			Field:   "end",
			Message: "end must be in YYYY-MM-DD format",
		})
	}
	if okStart && okEnd && !start.Before(end) {
		errs = append(errs, validator.ValidationError{
			Field:   "end",
			Message: ErrInvalidDateRange.Error(),
		})
	}

	if len(errs) > 0 {
		return time.Time{}, time.Time{}, errs
	}
	return start, end, nil
}

type DailyReportResponse struct {
	ID                      string          `json:"id"`
	EmployeeID              string          `json:"employee_id"`
	Date                    string          `json:"date"`
	QualifiedAppointments   int             `json:"qualified_appointments"`
	UnqualifiedAppointments int             `json:"unqualified_appointments"`
	Spiffs                  decimal.Decimal `json:"spiffs"`
	KPIRaw                  decimal.Decimal `json:"kpi"`
	ButterUpRaw             decimal.Decimal `json:"butter_up"`
	DeductionAmount         decimal.Decimal `json:"deduction_amount"`
	DeductionReason         string          `json:"deduction_reason,omitempty"`
	AllowanceType           string          `json:"allowance_type,omitempty"`
	AllowanceValue          decimal.Decimal `json:"allowance_value"`
	IsPresent               bool            `json:"is_present"`
	IsSaturday              bool            `json:"is_saturday"`
	WorkingHours            decimal.Decimal `json:"working_hours"`
	CreatedAt               time.Time       `json:"created_at"`
	UpdatedAt               time.Time       `json:"updated_at"`
}

func NewDailyReportResponse(r DailyRecord) DailyReportResponse {
	return DailyReportResponse{
		ID:                      r.ID,
		EmployeeID:              r.EmployeeID,
		Date:                    r.DateString(),
		QualifiedAppointments:   r.QualifiedAppointments,
		UnqualifiedAppointments: r.UnqualifiedAppointments,
		Spiffs:                  r.Spiffs,
		KPIRaw:                  r.KPIRaw,
		ButterUpRaw:             r.ButterUpRaw,
		DeductionAmount:         r.DeductionAmount,
		DeductionReason:         r.DeductionReason,
		AllowanceType:           r.AllowanceType,
		AllowanceValue:          r.AllowanceValue,
		IsPresent:               r.IsPresent,
		IsSaturday:              r.IsSaturday,
		WorkingHours:            r.WorkingHours,
		CreatedAt:               r.CreatedAt,
		UpdatedAt:               r.UpdatedAt,
	}
}
