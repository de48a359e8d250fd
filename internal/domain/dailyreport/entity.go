package dailyreport

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the canonical calendar-date format for daily reports.
const DateLayout = "2006-01-02"

// RawDailyReport is a daily report as collaborators supply it: the date is a
// string and any is_saturday flag is advisory. Normalize turns it into a
// DailyRecord.
type RawDailyReport struct {
	EmployeeID              string          `json:"employee_id"`
	Date                    string          `json:"date"`
	QualifiedAppointments   int             `json:"qualified_appointments"`
	UnqualifiedAppointments int             `json:"unqualified_appointments"`
	Spiffs                  decimal.Decimal `json:"spiffs"`
	KPIRaw                  decimal.Decimal `json:"kpi"`
	ButterUpRaw             decimal.Decimal `json:"butter_up"`
	DeductionAmount         decimal.Decimal `json:"deduction_amount"`
	DeductionReason         string          `json:"deduction_reason"`
	AllowanceType           string          `json:"allowance_type"`
	AllowanceValue          decimal.Decimal `json:"allowance_value"`
	IsPresent               bool            `json:"is_present"`
	IsSaturday              *bool           `json:"is_saturday,omitempty"`
	WorkingHours            decimal.Decimal `json:"working_hours"`
}

// DailyRecord is one validated day of attendance and performance for one
// employee. Date is always UTC midnight.
type DailyRecord struct {
	ID                      string
	EmployeeID              string
	Date                    time.Time
	QualifiedAppointments   int
	UnqualifiedAppointments int
	Spiffs                  decimal.Decimal
	KPIRaw                  decimal.Decimal
	ButterUpRaw             decimal.Decimal
	DeductionAmount         decimal.Decimal
	DeductionReason         string
	AllowanceType           string
	AllowanceValue          decimal.Decimal
	IsPresent               bool
	IsSaturday              bool
	WorkingHours            decimal.Decimal
	CreatedAt               time.Time
	UpdatedAt               time.Time

	// StoredDate is the persisted date text when a store could not parse it.
	// Date is zero in that case.
	StoredDate string
}

// DateString is Date in DateLayout, or the unparsed stored text.
func (r DailyRecord) DateString() string {
	if r.Date.IsZero() && r.StoredDate != "" {
		return r.StoredDate
	}
	return r.Date.Format(DateLayout)
}

// ToRaw returns r in its wire shape so stored rows can be re-checked by
// Normalize before they reach the salary engine.
func (r DailyRecord) ToRaw() RawDailyReport {
	saturday := r.IsSaturday
	return RawDailyReport{
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
		IsSaturday:              &saturday,
		WorkingHours:            r.WorkingHours,
	}
}
