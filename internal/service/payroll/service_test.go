package payroll

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/elmansy-mostafa/Salary-Calculation/internal/domain/dailyreport"
	"github.com/elmansy-mostafa/Salary-Calculation/internal/domain/employee"
	"github.com/elmansy-mostafa/Salary-Calculation/internal/domain/master/payscale"
	"github.com/elmansy-mostafa/Salary-Calculation/internal/domain/payroll"
	"github.com/elmansy-mostafa/Salary-Calculation/internal/pkg/validator"
	"github.com/elmansy-mostafa/Salary-Calculation/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type serviceFixture struct {
	employees employee.EmployeeRepository
	scales    payscale.PayScaleRepository
	reports   dailyreport.DailyReportRepository
	cache     *memory.BreakdownCache
	service   payroll.PayrollService
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()
	ctx := context.Background()

	f := &serviceFixture{
		employees: memory.NewEmployeeRepository(),
		scales:    memory.NewPayScaleRepository(),
		reports:   memory.NewDailyReportRepository(),
		cache:     memory.NewBreakdownCache(time.Minute),
	}

	_, err := f.scales.Upsert(ctx, fixtureScale())
	require.NoError(t, err)
	_, err = f.employees.Upsert(ctx, employee.Employee{ID: testEmployeeID, Name: "Sam Setter", Tier: employee.TierB, IsAppointmentSetter: true})
	require.NoError(t, err)

	clock := func() time.Time { return time.Date(2024, 5, 17, 10, 30, 0, 0, time.UTC) }
	f.service = NewPayrollService(f.employees, f.scales, f.reports, "default",
		WithCache(f.cache),
		WithClock(clock),
		WithBatchConcurrency(2),
	)
	return f
}

func (f *serviceFixture) addReport(t *testing.T, r dailyreport.DailyRecord) {
	t.Helper()
	_, err := f.reports.Create(context.Background(), r)
	require.NoError(t, err)
}

func TestPayrollService_Calculate_DefaultsToCurrentMonth(t *testing.T) {
	f := newServiceFixture(t)
	f.addReport(t, record(t, "2024-05-06", false, "0"))
	f.addReport(t, record(t, "2024-04-30", false, "0"))

	resp, err := f.service.Calculate(context.Background(), payroll.CalculateSalaryRequest{EmployeeID: testEmployeeID})
	require.NoError(t, err)

	b := resp.Breakdown
	assert.Equal(t, "2024-05-01", b.PeriodStart)
	assert.Equal(t, "2024-06-01", b.PeriodEnd)
	assert.Equal(t, 1, b.Attendance.AbsentDays)
	assertDecimal(t, "400", b.AbsenceDeduction)
	assertDecimal(t, "11600", b.TotalSalary)
	assert.Len(t, b.LineItems, 1)
	assert.Equal(t, "2024-05-06: absent", b.LineItems[0].Text)
}

func TestPayrollService_Calculate_ExplicitMonth(t *testing.T) {
	f := newServiceFixture(t)
	f.addReport(t, record(t, "2024-04-30", false, "0"))

	resp, err := f.service.Calculate(context.Background(), payroll.CalculateSalaryRequest{
		EmployeeID: testEmployeeID,
		Month:      "2024-04",
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-04-01", resp.Breakdown.PeriodStart)
	assert.Equal(t, 1, resp.Breakdown.Attendance.AbsentDays)
}

func TestPayrollService_Calculate_SkipsInvalidRecords(t *testing.T) {
	f := newServiceFixture(t)
	f.addReport(t, record(t, "2024-05-06", true, "7"))

	broken := record(t, "2024-05-07", true, "-3")
	broken.DeductionAmount = dec("20")
	f.addReport(t, broken)

	resp, err := f.service.Calculate(context.Background(), payroll.CalculateSalaryRequest{EmployeeID: testEmployeeID})
	require.NoError(t, err)

	require.Len(t, resp.Skipped, 1)
	assert.Equal(t, "2024-05-07", resp.Skipped[0].Date)
	assert.Contains(t, resp.Skipped[0].Violations, "working_hours")
	assert.Contains(t, resp.Skipped[0].Violations, "deduction_reason")

	assert.Equal(t, 1, resp.Breakdown.Attendance.RecordCount)
	assertDecimal(t, "88.88", resp.Breakdown.ShortHoursDeduction)
	assertDecimal(t, "0", resp.Breakdown.ManualDeductionsTotal)
}

func TestPayrollService_Calculate_NotFound(t *testing.T) {
	f := newServiceFixture(t)

	_, err := f.service.Calculate(context.Background(), payroll.CalculateSalaryRequest{EmployeeID: "nobody"})
	assert.True(t, errors.Is(err, employee.ErrEmployeeNotFound))

	_, err = f.service.Calculate(context.Background(), payroll.CalculateSalaryRequest{EmployeeID: testEmployeeID, PayScaleID: "missing"})
	assert.True(t, errors.Is(err, payscale.ErrPayScaleNotFound))
}

func TestPayrollService_Calculate_ValidationError(t *testing.T) {
	f := newServiceFixture(t)

	_, err := f.service.Calculate(context.Background(), payroll.CalculateSalaryRequest{
		EmployeeID: testEmployeeID,
		StartDate:  "2024-05-10",
		EndDate:    "2024-05-01",
	})
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Contains(t, verrs.ToMap(), "end")
}

func TestPayrollService_Calculate_UsesCacheUntilScaleChanges(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	f.addReport(t, record(t, "2024-05-06", false, "0"))

	req := payroll.CalculateSalaryRequest{EmployeeID: testEmployeeID}
	first, err := f.service.Calculate(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 1, f.cache.Len())

	// Removing the report behind the cache's back still serves the cached result.
	require.NoError(t, f.reports.Delete(ctx, testEmployeeID, day(t, "2024-05-06")))
	cached, err := f.service.Calculate(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, first, cached)

	// A new pay scale version is a different cache key.
	scale := fixtureScale()
	scale.BaseSalaryByTier[employee.TierB] = dec("13000")
	_, err = f.scales.Upsert(ctx, scale)
	require.NoError(t, err)

	fresh, err := f.service.Calculate(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 2, fresh.Breakdown.PayScaleVersion)
	assert.Equal(t, 0, fresh.Breakdown.Attendance.AbsentDays)
	assertDecimal(t, "13000", fresh.Breakdown.TotalSalary)
}

// racingReportRepo stores a report and invalidates the cache right after the
// first range read returns, the way a concurrent write would.
type racingReportRepo struct {
	dailyreport.DailyReportRepository
	cache   *memory.BreakdownCache
	pending *dailyreport.DailyRecord
}

func (r *racingReportRepo) FindByEmployeeAndRange(ctx context.Context, employeeID string, start, end time.Time) ([]dailyreport.DailyRecord, error) {
	records, err := r.DailyReportRepository.FindByEmployeeAndRange(ctx, employeeID, start, end)
	if err != nil || r.pending == nil {
		return records, err
	}
	rec := *r.pending
	r.pending = nil
	if _, err := r.DailyReportRepository.Create(ctx, rec); err != nil {
		return nil, err
	}
	if err := r.cache.InvalidateEmployee(ctx, rec.EmployeeID); err != nil {
		return nil, err
	}
	return records, nil
}

func TestPayrollService_Calculate_WriteDuringCalculationIsNotCached(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	absent := record(t, "2024-05-06", false, "0")
	racing := &racingReportRepo{DailyReportRepository: f.reports, cache: f.cache, pending: &absent}
	clock := func() time.Time { return time.Date(2024, 5, 17, 10, 30, 0, 0, time.UTC) }
	svc := NewPayrollService(f.employees, f.scales, racing, "default", WithCache(f.cache), WithClock(clock))

	req := payroll.CalculateSalaryRequest{EmployeeID: testEmployeeID, Month: "2024-05"}

	first, err := svc.Calculate(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 0, first.Breakdown.Attendance.AbsentDays, "computed from the data read before the write")

	second, err := svc.Calculate(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 1, second.Breakdown.Attendance.AbsentDays)
	assertDecimal(t, "400", second.Breakdown.AbsenceDeduction)

	third, err := svc.Calculate(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, second, third, "the fresh result is cached")
}

func TestPayrollService_Calculate_InvalidationChangesKey(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	req := payroll.CalculateSalaryRequest{EmployeeID: testEmployeeID}

	_, err := f.service.Calculate(ctx, req)
	require.NoError(t, err)

	f.addReport(t, record(t, "2024-05-06", false, "0"))
	require.NoError(t, f.cache.InvalidateEmployee(ctx, testEmployeeID))

	resp, err := f.service.Calculate(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Breakdown.Attendance.AbsentDays)

	gen, err := f.cache.Generation(ctx, testEmployeeID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), gen)
}

type duplicateReportRepo struct {
	dailyreport.DailyReportRepository
	records []dailyreport.DailyRecord
}

func (r duplicateReportRepo) FindByEmployeeAndRange(context.Context, string, time.Time, time.Time) ([]dailyreport.DailyRecord, error) {
	return r.records, nil
}

func TestPayrollService_Calculate_SkipsUnparseableStoredDate(t *testing.T) {
	f := newServiceFixture(t)
	repo := duplicateReportRepo{records: []dailyreport.DailyRecord{
		record(t, "2024-05-06", false, "0"),
		{ID: "bad", EmployeeID: testEmployeeID, StoredDate: "2024-05-7", IsPresent: true, WorkingHours: dec("8")},
	}}
	svc := NewPayrollService(f.employees, f.scales, repo, "default",
		WithClock(func() time.Time { return time.Date(2024, 5, 17, 0, 0, 0, 0, time.UTC) }),
	)

	resp, err := svc.Calculate(context.Background(), payroll.CalculateSalaryRequest{EmployeeID: testEmployeeID})
	require.NoError(t, err)

	require.Len(t, resp.Skipped, 1)
	assert.Equal(t, "2024-05-7", resp.Skipped[0].Date)
	assert.Contains(t, resp.Skipped[0].Violations, "date")
	assert.Equal(t, 1, resp.Breakdown.Attendance.RecordCount)
	assert.Equal(t, 1, resp.Breakdown.Attendance.AbsentDays)
}

func TestPayrollService_Calculate_InconsistentDataIsFatal(t *testing.T) {
	f := newServiceFixture(t)
	repo := duplicateReportRepo{records: []dailyreport.DailyRecord{
		record(t, "2024-05-06", true, "9"),
		record(t, "2024-05-06", false, "0"),
	}}
	svc := NewPayrollService(f.employees, f.scales, repo, "default",
		WithClock(func() time.Time { return time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC) }),
	)

	_, err := svc.Calculate(context.Background(), payroll.CalculateSalaryRequest{EmployeeID: testEmployeeID})
	require.Error(t, err)
	assert.True(t, errors.Is(err, payroll.ErrInconsistentData))
}

func TestPayrollService_CalculateBatch(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	_, err := f.employees.Upsert(ctx, employee.Employee{ID: "emp-2", Name: "Fran Fronter", Tier: employee.TierA})
	require.NoError(t, err)
	_, err = f.employees.Upsert(ctx, employee.Employee{ID: "emp-3", Name: "Unranked", Tier: "Z"})
	require.NoError(t, err)
	f.addReport(t, record(t, "2024-05-06", false, "0"))

	resp, err := f.service.CalculateBatch(ctx, payroll.BatchCalculateRequest{
		EmployeeIDs: []string{"emp-2", "ghost", testEmployeeID, "emp-3"},
		Month:       "2024-05",
	})
	require.NoError(t, err)

	assert.Equal(t, "2024-05-01", resp.PeriodStart)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "emp-2", resp.Results[0].Breakdown.EmployeeID)
	assertDecimal(t, "15000", resp.Results[0].Breakdown.TotalSalary)
	assert.Equal(t, testEmployeeID, resp.Results[1].Breakdown.EmployeeID)
	assertDecimal(t, "11600", resp.Results[1].Breakdown.TotalSalary)

	require.Len(t, resp.Failures, 2)
	assert.Equal(t, "ghost", resp.Failures[0].EmployeeID)
	assert.Equal(t, employee.ErrEmployeeNotFound.Error(), resp.Failures[0].Error)
	assert.Equal(t, "emp-3", resp.Failures[1].EmployeeID)
}

func TestPayrollService_CalculateBatch_UnknownPayScale(t *testing.T) {
	f := newServiceFixture(t)

	_, err := f.service.CalculateBatch(context.Background(), payroll.BatchCalculateRequest{
		EmployeeIDs: []string{testEmployeeID},
		PayScaleID:  "missing",
	})
	assert.True(t, errors.Is(err, payscale.ErrPayScaleNotFound))
}

func TestPayrollService_CalculateBatch_CanceledContext(t *testing.T) {
	f := newServiceFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := NewPayrollService(f.employees, f.scales, cancelingReportRepo{}, "default")
	_, err := svc.CalculateBatch(ctx, payroll.BatchCalculateRequest{EmployeeIDs: []string{testEmployeeID}})
	assert.ErrorIs(t, err, context.Canceled)
}

type cancelingReportRepo struct {
	dailyreport.DailyReportRepository
}

func (cancelingReportRepo) FindByEmployeeAndRange(ctx context.Context, _ string, _, _ time.Time) ([]dailyreport.DailyRecord, error) {
	return nil, ctx.Err()
}
