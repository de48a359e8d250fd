package payroll

import (
	"github.com/elmansy-mostafa/Salary-Calculation/internal/domain/employee"
	"github.com/elmansy-mostafa/Salary-Calculation/internal/domain/master/payscale"
	"github.com/elmansy-mostafa/Salary-Calculation/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

var (
	// ProrationDays is the flat month length used for absence deductions,
	// whatever the calendar length of the period.
	ProrationDays = decimal.NewFromInt(30)

	extraHoursFactor = decimal.NewFromInt(2)
)

// Compute applies scale to summary for the given employee and returns the
// salary breakdown. Each component is rounded to cents before it is summed.
// It is pure: the same inputs always produce the same breakdown.
func Compute(profile employee.Employee, scale payscale.PayScale, summary payroll.PeriodSummary) (payroll.SalaryBreakdown, error) {
	tier := profile.Tier
	if !scale.HasTier(tier) {
		return payroll.SalaryBreakdown{}, &payroll.UnknownTierError{
			EmployeeID: profile.ID,
			Tier:       tier,
			PayScaleID: scale.ID,
		}
	}

	basic := scale.BaseSalaryByTier[tier]
	hourPrice := scale.HourPriceByTier[tier]
	threshold, _ := scale.ThresholdFor(profile.IsAppointmentSetter, tier)

	absence := basic.Mul(decimal.NewFromInt(int64(summary.AbsentDays))).Div(ProrationDays)
	short := summary.DeficitHours.Mul(hourPrice)
	overtime := summary.SurplusHours.Mul(hourPrice).Mul(extraHoursFactor)
	saturday := summary.SaturdayHours.Mul(hourPrice).Mul(extraHoursFactor)

	kpiQualified := summary.QualifiedAppointments >= threshold
	kpi := decimal.Zero
	if kpiQualified {
		kpi = summary.KPIRaw.Mul(scale.KPIMultiplier)
	}

	spiff := summary.Spiffs.Mul(scale.SpiffMultiplier)
	butterUp := summary.ButterUpRaw.Mul(scale.ButterUpMultiplier)
	// A scale without a travel rate pays no allowance.
	allowance := decimal.NewFromInt(int64(summary.PresentDays)).Mul(scale.AllowanceRateByType[payscale.AllowanceTravel])

	b := payroll.SalaryBreakdown{
		EmployeeID:            profile.ID,
		PayScaleID:            scale.ID,
		PayScaleVersion:       scale.Version,
		Period:                summary.Period,
		BasicSalary:           cents(basic),
		AbsenceDeduction:      cents(absence),
		ShortHoursDeduction:   cents(short),
		OvertimePay:           cents(overtime),
		SaturdayPay:           cents(saturday),
		KPIBonus:              cents(kpi),
		KPIQualified:          kpiQualified,
		KPIThreshold:          threshold,
		SpiffBonus:            cents(spiff),
		ButterUpBonus:         cents(butterUp),
		AllowanceTotal:        cents(allowance),
		ManualDeductionsTotal: cents(summary.ManualDeductions),
		Summary:               summary,
		LineItems:             append([]payroll.LineItem(nil), summary.LineItems...),
	}

	b.TotalSalary = b.BasicSalary.
		Sub(b.AbsenceDeduction).
		Sub(b.ShortHoursDeduction).
		Add(b.OvertimePay).
		Add(b.SaturdayPay).
		Add(b.KPIBonus).
		Add(b.SpiffBonus).
		Add(b.ButterUpBonus).
		Add(b.AllowanceTotal).
		Sub(b.ManualDeductionsTotal)

	return b, nil
}

func cents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
