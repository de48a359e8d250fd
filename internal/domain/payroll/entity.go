package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// Period is a half-open date range [Start, End).
type Period struct {
	Start time.Time
	End   time.Time
}

// MonthOf returns the calendar month containing t, in UTC.
func MonthOf(t time.Time) Period {
	t = t.UTC()
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return Period{Start: start, End: start.AddDate(0, 1, 0)}
}

func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

// Bucket is the attendance bucket a single daily record falls into.
type Bucket string

const (
	BucketNone       Bucket = "none"
	BucketAbsence    Bucket = "absence"
	BucketSaturday   Bucket = "saturday"
	BucketShortHours Bucket = "short_hours"
	BucketOvertime   Bucket = "overtime"
)

// Category groups line items. CategoryOrder is the order they are listed in.
type Category string

const (
	CategoryAbsence     Category = "absence"
	CategoryShortHours  Category = "short_hours"
	CategoryOvertime    Category = "overtime"
	CategorySaturday    Category = "saturday"
	CategoryPerformance Category = "performance"
	CategoryDeduction   Category = "deduction"
)

var CategoryOrder = []Category{
	CategoryAbsence,
	CategoryShortHours,
	CategoryOvertime,
	CategorySaturday,
	CategoryPerformance,
	CategoryDeduction,
}

// LineItem is one dated audit entry. Quantity is days for absences, hours
// for the hour buckets, qualified appointments for performance and the
// amount for deductions.
type LineItem struct {
	Category Category
	Date     time.Time
	Quantity decimal.Decimal
	Text     string
}

// PeriodSummary holds the additive totals of one employee's records over a
// period. No rates are applied.
type PeriodSummary struct {
	EmployeeID              string
	Period                  Period
	RecordCount             int
	PresentDays             int
	AbsentDays              int
	ShortDays               int
	DeficitHours            decimal.Decimal
	OvertimeDays            int
	SurplusHours            decimal.Decimal
	SaturdayDays            int
	SaturdayHours           decimal.Decimal
	QualifiedAppointments   int
	UnqualifiedAppointments int
	Spiffs                  decimal.Decimal
	KPIRaw                  decimal.Decimal
	ButterUpRaw             decimal.Decimal
	ManualDeductions        decimal.Decimal
	AllowanceValue          decimal.Decimal
	LineItems               []LineItem
}

// SalaryBreakdown is the computed salary for one employee and period.
type SalaryBreakdown struct {
	EmployeeID            string
	PayScaleID            string
	PayScaleVersion       int
	Period                Period
	BasicSalary           decimal.Decimal
	AbsenceDeduction      decimal.Decimal
	ShortHoursDeduction   decimal.Decimal
	OvertimePay           decimal.Decimal
	SaturdayPay           decimal.Decimal
	KPIBonus              decimal.Decimal
	KPIQualified          bool
	KPIThreshold          int
	SpiffBonus            decimal.Decimal
	ButterUpBonus         decimal.Decimal
	AllowanceTotal        decimal.Decimal
	ManualDeductionsTotal decimal.Decimal
	TotalSalary           decimal.Decimal
	Summary               PeriodSummary
	LineItems             []LineItem
}
