package payroll

import (
	"time"

	"github.com/elmansy-mostafa/Salary-Calculation/internal/domain/dailyreport"
	"github.com/elmansy-mostafa/Salary-Calculation/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// MaxBatchEmployees caps a single batch calculation.
const MaxBatchEmployees = 500

type CalculateSalaryRequest struct {
	EmployeeID string `json:"employee_id"`
	PayScaleID string `json:"pay_scale_id,omitempty"`
	// Month (YYYY-MM) or StartDate/EndDate (YYYY-MM-DD, end exclusive).
	// When all are empty the current calendar month is used.
	Month     string `json:"month,omitempty"`
	StartDate string `json:"start,omitempty"`
	EndDate   string `json:"end,omitempty"`
}

// Validate checks the request and resolves its period relative to now.
func (r *CalculateSalaryRequest) Validate(now time.Time) (Period, error) {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	period, periodErrs := resolvePeriod(r.Month, r.StartDate, r.EndDate, now)
	errs = append(errs, periodErrs...)

	if len(errs) > 0 {
		return Period{}, errs
	}
	return period, nil
}

type BatchCalculateRequest struct {
	EmployeeIDs []string `json:"employee_ids"`
	PayScaleID  string   `json:"pay_scale_id,omitempty"`
	Month       string   `json:"month,omitempty"`
	StartDate   string   `json:"start,omitempty"`
	EndDate     string   `json:"end,omitempty"`
}

func (r *BatchCalculateRequest) Validate(now time.Time) (Period, error) {
	var errs validator.ValidationErrors

	if len(r.EmployeeIDs) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_ids",
			Message: "at least one employee_id is required",
		})
	}
	if len(r.EmployeeIDs) > MaxBatchEmployees {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_ids",
			Message: ErrTooManyEmployees.Error(),
		})
	}
	seen := make(map[string]bool, len(r.EmployeeIDs))
	for _, id := range r.EmployeeIDs {
		if validator.IsEmpty(id) {
			errs = append(errs, validator.ValidationError{
				Field:   "employee_ids",
				Message: "employee_ids must not contain empty values",
			})
			break
		}
		if seen[id] {
			errs = append(errs, validator.ValidationError{
				Field:   "employee_ids",
				Message: "employee_ids must not contain duplicates",
			})
			break
		}
		seen[id] = true
	}

	period, periodErrs := resolvePeriod(r.Month, r.StartDate, r.EndDate, now)
	errs = append(errs, periodErrs...)

	if len(errs) > 0 {
		return Period{}, errs
	}
	return period, nil
}

func resolvePeriod(month, start, end string, now time.Time) (Period, validator.ValidationErrors) {
	var errs validator.ValidationErrors

	switch {
	case month != "" && (start != "" || end != ""):
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month cannot be combined with start/end",
		})
	case month != "":
		m, ok := validator.IsValidMonth(month)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "month",
				Message: "month must be in YYYY-MM format",
			})
			break
		}
		return MonthOf(m), nil
	case start == "" && end == "":
		return MonthOf(now), nil
	case start == "" || end == "":
		errs = append(errs, validator.ValidationError{
			Field:   "start",
			Message: "start and end must be provided together",
		})
	default:
		s, okStart := validator.IsValidDate(start)
		if !okStart {
			errs = append(errs, validator.ValidationError{
				Field:   "start",
				Message: "start must be in YYYY-MM-DD format",
			})
		}
		e, okEnd := validator.IsValidDate(end)
		if !okEnd {
			errs = append(errs, validator.ValidationError{
				Field:   "end",
				Message: "end must be in YYYY-MM-DD format",
			})
		}
		if okStart && okEnd {
			if !s.Before(e) {
				errs = append(errs, validator.ValidationError{
					Field:   "end",
					Message: "end must be after start",
				})
				break
			}
			return Period{Start: s, End: e}, nil
		}
	}

	return Period{}, errs
}

type SalaryResponse struct {
	Breakdown BreakdownResponse `json:"breakdown"`
	Skipped   []SkippedRecord   `json:"skipped,omitempty"`
}

// SkippedRecord reports a daily report that failed validation and was left
// out of the calculation.
type SkippedRecord struct {
	EmployeeID string            `json:"employee_id"`
	Date       string            `json:"date"`
	Violations map[string]string `json:"violations"`
}

func NewSkippedRecord(e *dailyreport.RecordError) SkippedRecord {
	return SkippedRecord{
		EmployeeID: e.EmployeeID,
		Date:       e.Date,
		Violations: e.Violations.ToMap(),
	}
}

type BreakdownResponse struct {
	EmployeeID            string             `json:"employee_id"`
	PayScaleID            string             `json:"pay_scale_id"`
	PayScaleVersion       int                `json:"pay_scale_version"`
	PeriodStart           string             `json:"period_start"`
	PeriodEnd             string             `json:"period_end"`
	BasicSalary           decimal.Decimal    `json:"basic_salary"`
	AbsenceDeduction      decimal.Decimal    `json:"absence_deduction"`
	ShortHoursDeduction   decimal.Decimal    `json:"short_hours_deduction"`
	OvertimePay           decimal.Decimal    `json:"overtime_pay"`
	SaturdayPay           decimal.Decimal    `json:"saturday_pay"`
	KPIBonus              decimal.Decimal    `json:"kpi_bonus"`
	KPIQualified          bool               `json:"kpi_qualified"`
	KPIThreshold          int                `json:"kpi_threshold"`
	SpiffBonus            decimal.Decimal    `json:"spiff_bonus"`
	ButterUpBonus         decimal.Decimal    `json:"butter_up_bonus"`
	AllowanceTotal        decimal.Decimal    `json:"allowance_total"`
	ManualDeductionsTotal decimal.Decimal    `json:"manual_deductions_total"`
	TotalSalary           decimal.Decimal    `json:"total_salary"`
	Attendance            AttendanceResponse `json:"attendance"`
	LineItems             []LineItemResponse `json:"line_items"`
}

type AttendanceResponse struct {
	RecordCount           int             `json:"record_count"`
	PresentDays           int             `json:"present_days"`
	AbsentDays            int             `json:"absent_days"`
	ShortDays             int             `json:"short_days"`
	DeficitHours          decimal.Decimal `json:"deficit_hours"`
	OvertimeDays          int             `json:"overtime_days"`
	SurplusHours          decimal.Decimal `json:"surplus_hours"`
	SaturdayDays          int             `json:"saturday_days"`
	SaturdayHours         decimal.Decimal `json:"saturday_hours"`
	QualifiedAppointments int             `json:"qualified_appointments"`
}

type LineItemResponse struct {
	Category Category        `json:"category"`
	Date     string          `json:"date"`
	Quantity decimal.Decimal `json:"quantity"`
	Text     string          `json:"text"`
}

func NewBreakdownResponse(b SalaryBreakdown) BreakdownResponse {
	items := make([]LineItemResponse, 0, len(b.LineItems))
	for _, li := range b.LineItems {
		items = append(items, LineItemResponse{
			Category: li.Category,
			Date:     li.Date.Format(dailyreport.DateLayout),
			Quantity: li.Quantity,
			Text:     li.Text,
		})
	}

	s := b.Summary
	return BreakdownResponse{
		EmployeeID:            b.EmployeeID,
		PayScaleID:            b.PayScaleID,
		PayScaleVersion:       b.PayScaleVersion,
		PeriodStart:           b.Period.Start.Format(dailyreport.DateLayout),
		PeriodEnd:             b.Period.End.Format(dailyreport.DateLayout),
		BasicSalary:           b.BasicSalary,
		AbsenceDeduction:      b.AbsenceDeduction,
		ShortHoursDeduction:   b.ShortHoursDeduction,
		OvertimePay:           b.OvertimePay,
		SaturdayPay:           b.SaturdayPay,
		KPIBonus:              b.KPIBonus,
		KPIQualified:          b.KPIQualified,
		KPIThreshold:          b.KPIThreshold,
		SpiffBonus:            b.SpiffBonus,
		ButterUpBonus:         b.ButterUpBonus,
		AllowanceTotal:        b.AllowanceTotal,
		ManualDeductionsTotal: b.ManualDeductionsTotal,
		TotalSalary:           b.TotalSalary,
		Attendance: AttendanceResponse{
			RecordCount:           s.RecordCount,
			PresentDays:           s.PresentDays,
			AbsentDays:            s.AbsentDays,
			ShortDays:             s.ShortDays,
			DeficitHours:          s.DeficitHours,
			OvertimeDays:          s.OvertimeDays,
			SurplusHours:          s.SurplusHours,
			SaturdayDays:          s.SaturdayDays,
			SaturdayHours:         s.SaturdayHours,
			QualifiedAppointments: s.QualifiedAppointments,
		},
		LineItems: items,
	}
}

type BatchSalaryResponse struct {
	PeriodStart string           `json:"period_start"`
	PeriodEnd   string           `json:"period_end"`
	Results     []SalaryResponse `json:"results"`
	Failures    []BatchFailure   `json:"failures,omitempty"`
}

type BatchFailure struct {
	EmployeeID string `json:"employee_id"`
	Error      string `json:"error"`
}
