package payroll

import (
	"testing"
	"time"

	"github.com/elmansy-mostafa/Salary-Calculation/internal/domain/dailyreport"
	"github.com/elmansy-mostafa/Salary-Calculation/internal/domain/employee"
	"github.com/elmansy-mostafa/Salary-Calculation/internal/domain/master/payscale"
	"github.com/elmansy-mostafa/Salary-Calculation/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testEmployeeID = "emp-1"

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(dailyreport.DateLayout, s)
	require.NoError(t, err)
	return d
}

// record builds a normalized record for testEmployeeID.
func record(t *testing.T, date string, present bool, hours string) dailyreport.DailyRecord {
	t.Helper()
	d := day(t, date)
	return dailyreport.DailyRecord{
		EmployeeID:   testEmployeeID,
		Date:         d,
		IsPresent:    present,
		IsSaturday:   d.Weekday() == time.Saturday,
		WorkingHours: dec(hours),
	}
}

func may2024(t *testing.T) payroll.Period {
	return payroll.MonthOf(day(t, "2024-05-15"))
}

// fixtureScale mirrors the production rate table.
func fixtureScale() payscale.PayScale {
	return payscale.PayScale{
		ID:      "default",
		Name:    "Default",
		Version: 1,
		BaseSalaryByTier: map[employee.Tier]decimal.Decimal{
			employee.TierA: dec("15000"),
			employee.TierB: dec("12000"),
			employee.TierC: dec("9000"),
		},
		HourPriceByTier: map[employee.Tier]decimal.Decimal{
			employee.TierA: dec("55.55"),
			employee.TierB: dec("44.44"),
			employee.TierC: dec("33.33"),
		},
		SpiffMultiplier:    dec("35.66"),
		KPIMultiplier:      dec("2000"),
		ButterUpMultiplier: dec("500"),
		AllowanceRateByType: map[string]decimal.Decimal{
			"travel": dec("300"),
			"food":   dec("150"),
		},
		SetterThresholdByTier:  map[employee.Tier]int{employee.TierA: 6, employee.TierB: 4, employee.TierC: 3},
		FronterThresholdByTier: map[employee.Tier]int{employee.TierA: 9, employee.TierB: 8, employee.TierC: 7},
	}
}

// simpleScale has round numbers: tier A hour price 50, KPI multiplier 2.
func simpleScale() payscale.PayScale {
	p := fixtureScale()
	p.BaseSalaryByTier[employee.TierA] = dec("15000")
	p.HourPriceByTier[employee.TierA] = dec("50")
	p.KPIMultiplier = dec("2")
	return p
}

func setterA() employee.Employee {
	return employee.Employee{ID: testEmployeeID, Name: "Sam Setter", Tier: employee.TierA, IsAppointmentSetter: true}
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "want %s, got %s %v", want, got, msgAndArgs)
}
