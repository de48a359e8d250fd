package payroll

import (
	"fmt"
	"sort"

	"github.com/elmansy-mostafa/Salary-Calculation/internal/domain/dailyreport"
	"github.com/elmansy-mostafa/Salary-Calculation/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// StandardDayHours is the required length of a regular working day.
var StandardDayHours = decimal.NewFromInt(9)

// Classify returns the single attendance bucket r contributes to. Absence
// wins over everything, a worked Saturday is never overtime or short, and a
// present weekday with 0 or exactly 9 hours lands in no bucket.
func Classify(r dailyreport.DailyRecord) payroll.Bucket {
	hours := r.WorkingHours
	switch {
	case !r.IsPresent:
		return payroll.BucketAbsence
	case r.IsSaturday && hours.IsPositive():
		return payroll.BucketSaturday
	case hours.IsPositive() && hours.LessThan(StandardDayHours):
		return payroll.BucketShortHours
	case hours.GreaterThan(StandardDayHours):
		return payroll.BucketOvertime
	}
	return payroll.BucketNone
}

// Aggregate folds one employee's validated records for period into a
// PeriodSummary. records may be in any order. A record for another
// employee, outside the period, or sharing a date with another record is
// reported as *payroll.InconsistentDataError.
func Aggregate(employeeID string, period payroll.Period, records []dailyreport.DailyRecord) (payroll.PeriodSummary, error) {
	sorted := make([]dailyreport.DailyRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	summary := payroll.PeriodSummary{
		EmployeeID:       employeeID,
		Period:           period,
		RecordCount:      len(sorted),
		DeficitHours:     decimal.Zero,
		SurplusHours:     decimal.Zero,
		SaturdayHours:    decimal.Zero,
		Spiffs:           decimal.Zero,
		KPIRaw:           decimal.Zero,
		ButterUpRaw:      decimal.Zero,
		ManualDeductions: decimal.Zero,
		AllowanceValue:   decimal.Zero,
	}
	items := make(map[payroll.Category][]payroll.LineItem, len(payroll.CategoryOrder))

	for i, r := range sorted {
		if r.EmployeeID != employeeID {
			return payroll.PeriodSummary{}, &payroll.InconsistentDataError{
				EmployeeID: employeeID,
				Date:       r.Date,
				Reason:     fmt.Sprintf("record belongs to employee %q", r.EmployeeID),
			}
		}
		if !period.Contains(r.Date) {
			return payroll.PeriodSummary{}, &payroll.InconsistentDataError{
				EmployeeID: employeeID,
				Date:       r.Date,
				Reason:     "record is outside the requested period",
			}
		}
		if i > 0 && r.Date.Equal(sorted[i-1].Date) {
			return payroll.PeriodSummary{}, &payroll.InconsistentDataError{
				EmployeeID: employeeID,
				Date:       r.Date,
				Reason:     "more than one daily report for the same date",
			}
		}

		day := r.Date.Format(dailyreport.DateLayout)
		hours := r.WorkingHours

		if r.IsPresent {
			summary.PresentDays++
		}

		switch Classify(r) {
		case payroll.BucketAbsence:
			summary.AbsentDays++
			items[payroll.CategoryAbsence] = append(items[payroll.CategoryAbsence], payroll.LineItem{
				Category: payroll.CategoryAbsence,
				Date:     r.Date,
				Quantity: decimal.NewFromInt(1),
				Text:     fmt.Sprintf("%s: absent", day),
			})
		case payroll.BucketSaturday:
			summary.SaturdayDays++
			summary.SaturdayHours = summary.SaturdayHours.Add(hours)
			items[payroll.CategorySaturday] = append(items[payroll.CategorySaturday], payroll.LineItem{
				Category: payroll.CategorySaturday,
				Date:     r.Date,
				Quantity: hours,
				Text:     fmt.Sprintf("%s: Saturday, %s hrs (double pay)", day, hours),
			})
		case payroll.BucketShortHours:
			deficit := StandardDayHours.Sub(hours)
			summary.ShortDays++
			summary.DeficitHours = summary.DeficitHours.Add(deficit)
			items[payroll.CategoryShortHours] = append(items[payroll.CategoryShortHours], payroll.LineItem{
				Category: payroll.CategoryShortHours,
				Date:     r.Date,
				Quantity: deficit,
				Text:     fmt.Sprintf("%s: worked %s hrs, %s hrs short", day, hours, deficit),
			})
		case payroll.BucketOvertime:
			surplus := hours.Sub(StandardDayHours)
			summary.OvertimeDays++
			summary.SurplusHours = summary.SurplusHours.Add(surplus)
			items[payroll.CategoryOvertime] = append(items[payroll.CategoryOvertime], payroll.LineItem{
				Category: payroll.CategoryOvertime,
				Date:     r.Date,
				Quantity: surplus,
				Text:     fmt.Sprintf("%s: worked %s hrs, %s hrs overtime (double pay)", day, hours, surplus),
			})
		}

		summary.QualifiedAppointments += r.QualifiedAppointments
		summary.UnqualifiedAppointments += r.UnqualifiedAppointments
		summary.Spiffs = summary.Spiffs.Add(r.Spiffs)
		summary.KPIRaw = summary.KPIRaw.Add(r.KPIRaw)
		summary.ButterUpRaw = summary.ButterUpRaw.Add(r.ButterUpRaw)
		summary.ManualDeductions = summary.ManualDeductions.Add(r.DeductionAmount)
		summary.AllowanceValue = summary.AllowanceValue.Add(r.AllowanceValue)

		if hasPerformance(r) {
			items[payroll.CategoryPerformance] = append(items[payroll.CategoryPerformance], payroll.LineItem{
				Category: payroll.CategoryPerformance,
				Date:     r.Date,
				Quantity: decimal.NewFromInt(int64(r.QualifiedAppointments)),
				Text: fmt.Sprintf("%s: %d qualified / %d unqualified appointments, kpi %s, spiffs %s, butter-up %s",
					day, r.QualifiedAppointments, r.UnqualifiedAppointments, r.KPIRaw, r.Spiffs, r.ButterUpRaw),
			})
		}
		if r.DeductionAmount.IsPositive() {
			items[payroll.CategoryDeduction] = append(items[payroll.CategoryDeduction], payroll.LineItem{
				Category: payroll.CategoryDeduction,
				Date:     r.Date,
				Quantity: r.DeductionAmount,
				Text:     fmt.Sprintf("%s: deduction %s (%s)", day, r.DeductionAmount, r.DeductionReason),
			})
		}
	}

	// Records were visited in date order, so each category is already sorted.
	for _, c := range payroll.CategoryOrder {
		summary.LineItems = append(summary.LineItems, items[c]...)
	}

	return summary, nil
}

func hasPerformance(r dailyreport.DailyRecord) bool {
	return r.QualifiedAppointments > 0 ||
		r.UnqualifiedAppointments > 0 ||
		r.KPIRaw.IsPositive() ||
		r.Spiffs.IsPositive() ||
		r.ButterUpRaw.IsPositive()
}
