package payroll

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/elmansy-mostafa/Salary-Calculation/internal/domain/dailyreport"
	"github.com/elmansy-mostafa/Salary-Calculation/internal/domain/payroll"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name    string
		date    string
		present bool
		hours   string
		want    payroll.Bucket
	}{
		{"absent weekday", "2024-05-06", false, "0", payroll.BucketAbsence},
		{"absent with hours", "2024-05-06", false, "5", payroll.BucketAbsence},
		{"absent saturday", "2024-05-04", false, "0", payroll.BucketAbsence},
		{"short day", "2024-05-06", true, "7", payroll.BucketShortHours},
		{"barely short", "2024-05-06", true, "8.99", payroll.BucketShortHours},
		{"exact day", "2024-05-06", true, "9", payroll.BucketNone},
		{"overtime", "2024-05-06", true, "11", payroll.BucketOvertime},
		{"present zero hours", "2024-05-06", true, "0", payroll.BucketNone},
		{"saturday long", "2024-05-04", true, "11", payroll.BucketSaturday},
		{"saturday short", "2024-05-04", true, "3", payroll.BucketSaturday},
		{"saturday zero", "2024-05-04", true, "0", payroll.BucketNone},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, Classify(record(t, c.date, c.present, c.hours)))
		})
	}
}

func TestAggregate_EmptyPeriod(t *testing.T) {
	summary, err := Aggregate(testEmployeeID, may2024(t), nil)
	require.NoError(t, err)

	assert.Equal(t, 0, summary.RecordCount)
	assert.Equal(t, 0, summary.PresentDays)
	assert.Equal(t, 0, summary.AbsentDays)
	assertDecimal(t, "0", summary.DeficitHours)
	assertDecimal(t, "0", summary.SurplusHours)
	assertDecimal(t, "0", summary.SaturdayHours)
	assert.Empty(t, summary.LineItems)
}

func TestAggregate_ShortDayCountsDeficit(t *testing.T) {
	summary, err := Aggregate(testEmployeeID, may2024(t), []dailyreport.DailyRecord{
		record(t, "2024-05-06", true, "7"),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.ShortDays)
	assertDecimal(t, "2", summary.DeficitHours)
	assert.Equal(t, 0, summary.OvertimeDays)
	assert.Equal(t, 1, summary.PresentDays)
}

func TestAggregate_SaturdayNeverOvertime(t *testing.T) {
	summary, err := Aggregate(testEmployeeID, may2024(t), []dailyreport.DailyRecord{
		record(t, "2024-05-04", true, "11"),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.SaturdayDays)
	assertDecimal(t, "11", summary.SaturdayHours)
	assert.Equal(t, 0, summary.OvertimeDays)
	assertDecimal(t, "0", summary.SurplusHours)
}

func TestAggregate_BucketExclusivity(t *testing.T) {
	records := []dailyreport.DailyRecord{
		record(t, "2024-05-01", false, "0"),
		record(t, "2024-05-02", true, "6"),
		record(t, "2024-05-03", true, "12"),
		record(t, "2024-05-04", true, "10"),
		record(t, "2024-05-06", true, "9"),
		record(t, "2024-05-07", true, "0"),
		record(t, "2024-05-08", false, "10"),
		record(t, "2024-05-11", false, "0"),
	}

	summary, err := Aggregate(testEmployeeID, may2024(t), records)
	require.NoError(t, err)

	counts := map[payroll.Bucket]int{}
	for _, r := range records {
		counts[Classify(r)]++
	}

	assert.Equal(t, counts[payroll.BucketAbsence], summary.AbsentDays)
	assert.Equal(t, counts[payroll.BucketShortHours], summary.ShortDays)
	assert.Equal(t, counts[payroll.BucketOvertime], summary.OvertimeDays)
	assert.Equal(t, counts[payroll.BucketSaturday], summary.SaturdayDays)
	assert.Equal(t, len(records),
		summary.AbsentDays+summary.ShortDays+summary.OvertimeDays+summary.SaturdayDays+counts[payroll.BucketNone])

	assert.Equal(t, 3, summary.AbsentDays)
	assert.Equal(t, 5, summary.PresentDays)
	assertDecimal(t, "3", summary.DeficitHours)
	assertDecimal(t, "3", summary.SurplusHours)
	assertDecimal(t, "10", summary.SaturdayHours)
}

func TestAggregate_RawTotalsIgnoreBuckets(t *testing.T) {
	absent := record(t, "2024-05-06", false, "0")
	absent.QualifiedAppointments = 2
	absent.KPIRaw = dec("10")
	absent.DeductionAmount = dec("25")
	absent.DeductionReason = "no show"

	sat := record(t, "2024-05-04", true, "4")
	sat.Spiffs = dec("3")
	sat.ButterUpRaw = dec("1")
	sat.UnqualifiedAppointments = 5
	sat.AllowanceValue = dec("20")

	summary, err := Aggregate(testEmployeeID, may2024(t), []dailyreport.DailyRecord{absent, sat})
	require.NoError(t, err)

	assert.Equal(t, 2, summary.QualifiedAppointments)
	assert.Equal(t, 5, summary.UnqualifiedAppointments)
	assertDecimal(t, "10", summary.KPIRaw)
	assertDecimal(t, "3", summary.Spiffs)
	assertDecimal(t, "1", summary.ButterUpRaw)
	assertDecimal(t, "25", summary.ManualDeductions)
	assertDecimal(t, "20", summary.AllowanceValue)
}

func TestAggregate_DuplicateDate(t *testing.T) {
	_, err := Aggregate(testEmployeeID, may2024(t), []dailyreport.DailyRecord{
		record(t, "2024-05-06", true, "9"),
		record(t, "2024-05-07", true, "9"),
		record(t, "2024-05-06", true, "7"),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, payroll.ErrInconsistentData))

	var inconsistent *payroll.InconsistentDataError
	require.True(t, errors.As(err, &inconsistent))
	assert.Equal(t, testEmployeeID, inconsistent.EmployeeID)
	assert.Equal(t, day(t, "2024-05-06"), inconsistent.Date)
}

func TestAggregate_RejectsForeignAndOutOfPeriodRecords(t *testing.T) {
	foreign := record(t, "2024-05-06", true, "9")
	foreign.EmployeeID = "emp-2"

	_, err := Aggregate(testEmployeeID, may2024(t), []dailyreport.DailyRecord{foreign})
	assert.True(t, errors.Is(err, payroll.ErrInconsistentData))

	_, err = Aggregate(testEmployeeID, may2024(t), []dailyreport.DailyRecord{
		record(t, "2024-06-01", true, "9"),
	})
	assert.True(t, errors.Is(err, payroll.ErrInconsistentData))
}

func TestAggregate_LineItemOrdering(t *testing.T) {
	deduction := record(t, "2024-05-02", true, "9")
	deduction.DeductionAmount = dec("50")
	deduction.DeductionReason = "late arrival"

	perf := record(t, "2024-05-01", true, "10")
	perf.QualifiedAppointments = 3
	perf.KPIRaw = dec("1.5")

	records := []dailyreport.DailyRecord{
		record(t, "2024-05-20", false, "0"),
		deduction,
		record(t, "2024-05-11", true, "6"),
		record(t, "2024-05-09", true, "4"),
		perf,
		record(t, "2024-05-03", false, "0"),
		record(t, "2024-05-08", true, "7.5"),
	}

	summary, err := Aggregate(testEmployeeID, may2024(t), records)
	require.NoError(t, err)

	var got []string
	for _, li := range summary.LineItems {
		got = append(got, li.Text)
	}
	assert.Equal(t, []string{
		"2024-05-03: absent",
		"2024-05-20: absent",
		"2024-05-08: worked 7.5 hrs, 1.5 hrs short",
		"2024-05-09: worked 4 hrs, 5 hrs short",
		"2024-05-01: worked 10 hrs, 1 hrs overtime (double pay)",
		"2024-05-11: Saturday, 6 hrs (double pay)",
		"2024-05-01: 3 qualified / 0 unqualified appointments, kpi 1.5, spiffs 0, butter-up 0",
		"2024-05-02: deduction 50 (late arrival)",
	}, got)
}

func TestAggregate_LineItemRoundTrip(t *testing.T) {
	records := []dailyreport.DailyRecord{
		record(t, "2024-05-01", false, "0"),
		record(t, "2024-05-02", true, "6"),
		record(t, "2024-05-03", true, "12"),
		record(t, "2024-05-04", true, "10"),
		record(t, "2024-05-06", true, "9"),
		record(t, "2024-05-07", true, "8"),
		record(t, "2024-05-13", false, "0"),
		record(t, "2024-05-14", true, "9.5"),
	}
	period := may2024(t)

	summary, err := Aggregate(testEmployeeID, period, records)
	require.NoError(t, err)

	byDate := map[string]dailyreport.DailyRecord{}
	for _, r := range records {
		byDate[r.Date.Format(dailyreport.DateLayout)] = r
	}

	replay := func(category payroll.Category) payroll.PeriodSummary {
		var subset []dailyreport.DailyRecord
		for _, li := range summary.LineItems {
			if li.Category == category {
				subset = append(subset, byDate[li.Date.Format(dailyreport.DateLayout)])
			}
		}
		s, err := Aggregate(testEmployeeID, period, subset)
		require.NoError(t, err)
		return s
	}

	absences := replay(payroll.CategoryAbsence)
	assert.Equal(t, summary.AbsentDays, absences.AbsentDays)

	short := replay(payroll.CategoryShortHours)
	assert.Equal(t, summary.ShortDays, short.ShortDays)
	assert.True(t, summary.DeficitHours.Equal(short.DeficitHours))

	overtime := replay(payroll.CategoryOvertime)
	assert.Equal(t, summary.OvertimeDays, overtime.OvertimeDays)
	assert.True(t, summary.SurplusHours.Equal(overtime.SurplusHours))

	saturdays := replay(payroll.CategorySaturday)
	assert.Equal(t, summary.SaturdayDays, saturdays.SaturdayDays)
	assert.True(t, summary.SaturdayHours.Equal(saturdays.SaturdayHours))
}

func TestAggregate_OrderIndependent(t *testing.T) {
	records := []dailyreport.DailyRecord{
		record(t, "2024-05-01", false, "0"),
		record(t, "2024-05-02", true, "6"),
		record(t, "2024-05-03", true, "12"),
		record(t, "2024-05-04", true, "10"),
		record(t, "2024-05-06", true, "9"),
	}
	want, err := Aggregate(testEmployeeID, may2024(t), records)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		shuffled := append([]dailyreport.DailyRecord(nil), records...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		got, err := Aggregate(testEmployeeID, may2024(t), shuffled)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}
