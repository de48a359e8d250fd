package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/elmansy-mostafa/Salary-Calculation/internal/domain/dailyreport"
	"github.com/elmansy-mostafa/Salary-Calculation/internal/domain/employee"
	"github.com/elmansy-mostafa/Salary-Calculation/internal/domain/master/payscale"
	"github.com/elmansy-mostafa/Salary-Calculation/internal/domain/payroll"
	"golang.org/x/sync/errgroup"
)

const defaultBatchConcurrency = 8

type PayrollServiceImpl struct {
	employeeRepo      employee.EmployeeRepository
	payScaleRepo      payscale.PayScaleRepository
	dailyReportRepo   dailyreport.DailyReportRepository
	cache             payroll.BreakdownCache
	defaultPayScaleID string
	batchConcurrency  int
	now               func() time.Time
}

type Option func(*PayrollServiceImpl)

// WithCache enables caching of computed breakdowns.
func WithCache(cache payroll.BreakdownCache) Option {
	return func(s *PayrollServiceImpl) {
		s.cache = cache
	}
}

// WithBatchConcurrency bounds how many employees a batch computes at once.
func WithBatchConcurrency(n int) Option {
	return func(s *PayrollServiceImpl) {
		if n > 0 {
			s.batchConcurrency = n
		}
	}
}

// WithClock overrides the clock used to resolve the default period.
func WithClock(now func() time.Time) Option {
	return func(s *PayrollServiceImpl) {
		s.now = now
	}
}

func NewPayrollService(
	employeeRepo employee.EmployeeRepository,
	payScaleRepo payscale.PayScaleRepository,
	dailyReportRepo dailyreport.DailyReportRepository,
	defaultPayScaleID string,
	opts ...Option,
) payroll.PayrollService {
	s := &PayrollServiceImpl{
		employeeRepo:      employeeRepo,
		payScaleRepo:      payScaleRepo,
		dailyReportRepo:   dailyReportRepo,
		defaultPayScaleID: defaultPayScaleID,
		batchConcurrency:  defaultBatchConcurrency,
		now:               time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ========== SINGLE EMPLOYEE ==========

func (s *PayrollServiceImpl) Calculate(ctx context.Context, req payroll.CalculateSalaryRequest) (payroll.SalaryResponse, error) {
	period, err := req.Validate(s.now())
	if err != nil {
		return payroll.SalaryResponse{}, err
	}

	scale, err := s.payScaleRepo.GetByID(ctx, s.payScaleID(req.PayScaleID))
	if err != nil {
		return payroll.SalaryResponse{}, err
	}

	return s.calculate(ctx, req.EmployeeID, scale, period)
}

// ========== BATCH ==========

func (s *PayrollServiceImpl) CalculateBatch(ctx context.Context, req payroll.BatchCalculateRequest) (payroll.BatchSalaryResponse, error) {
	period, err := req.Validate(s.now())
	if err != nil {
		return payroll.BatchSalaryResponse{}, err
	}

	// Every employee in the batch is paid against the same table.
	scale, err := s.payScaleRepo.GetByID(ctx, s.payScaleID(req.PayScaleID))
	if err != nil {
		return payroll.BatchSalaryResponse{}, err
	}

	results := make([]*payroll.SalaryResponse, len(req.EmployeeIDs))
	failures := make([]error, len(req.EmployeeIDs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.batchConcurrency)
	for i, employeeID := range req.EmployeeIDs {
		i, employeeID := i, employeeID
		g.Go(func() error {
			resp, err := s.calculate(gctx, employeeID, scale, period)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				failures[i] = err
				return nil
			}
			results[i] = &resp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return payroll.BatchSalaryResponse{}, err
	}

	out := payroll.BatchSalaryResponse{
		PeriodStart: period.Start.Format(dailyreport.DateLayout),
		PeriodEnd:   period.End.Format(dailyreport.DateLayout),
		Results:     make([]payroll.SalaryResponse, 0, len(req.EmployeeIDs)),
	}
	for i, employeeID := range req.EmployeeIDs {
		if failures[i] != nil {
			out.Failures = append(out.Failures, payroll.BatchFailure{
				EmployeeID: employeeID,
				Error:      failures[i].Error(),
			})
			continue
		}
		out.Results = append(out.Results, *results[i])
	}

	slog.Info("batch salary calculated",
		"pay_scale_id", scale.ID,
		"period_start", out.PeriodStart,
		"employees", len(req.EmployeeIDs),
		"failures", len(out.Failures),
	)

	return out, nil
}

// ========== HELPERS ==========

func (s *PayrollServiceImpl) calculate(ctx context.Context, employeeID string, scale payscale.PayScale, period payroll.Period) (payroll.SalaryResponse, error) {
	// The generation is read before any input so a concurrent write bumps it
	// past the key this result is stored under.
	cache := s.cache
	var gen int64
	if cache != nil {
		g, err := cache.Generation(ctx, employeeID)
		if err != nil {
			slog.Warn("breakdown cache generation read failed, bypassing cache", "employee_id", employeeID, "error", err)
			cache = nil
		}
		gen = g
	}

	profile, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return payroll.SalaryResponse{}, err
	}

	key := CacheKey(employeeID, gen, scale, period)
	if cache != nil {
		cached, ok, err := cache.Get(ctx, key)
		if err != nil {
			slog.Warn("breakdown cache read failed", "key", key, "error", err)
		} else if ok {
			return cached, nil
		}
	}

	stored, err := s.dailyReportRepo.FindByEmployeeAndRange(ctx, employeeID, period.Start, period.End)
	if err != nil {
		return payroll.SalaryResponse{}, fmt.Errorf("failed to load daily reports: %w", err)
	}

	records, skipped := normalizeRecords(stored)
	for _, sk := range skipped {
		slog.Warn("skipping invalid daily report",
			"employee_id", sk.EmployeeID,
			"date", sk.Date,
			"violations", sk.Violations,
		)
	}

	summary, err := Aggregate(employeeID, period, records)
	if err != nil {
		return payroll.SalaryResponse{}, err
	}

	breakdown, err := Compute(profile, scale, summary)
	if err != nil {
		return payroll.SalaryResponse{}, err
	}

	resp := payroll.SalaryResponse{
		Breakdown: payroll.NewBreakdownResponse(breakdown),
		Skipped:   skipped,
	}

	if cache != nil {
		if err := cache.Set(ctx, key, employeeID, resp); err != nil {
			slog.Warn("breakdown cache write failed", "key", key, "error", err)
		}
	}

	slog.Debug("salary calculated",
		"employee_id", employeeID,
		"pay_scale_id", scale.ID,
		"period_start", resp.Breakdown.PeriodStart,
		"total_salary", resp.Breakdown.TotalSalary.String(),
		"skipped", len(skipped),
	)

	return resp, nil
}

func (s *PayrollServiceImpl) payScaleID(requested string) string {
	if requested != "" {
		return requested
	}
	return s.defaultPayScaleID
}

// normalizeRecords re-validates stored reports. Invalid ones are dropped and
// returned as diagnostics; the rest keep their stored identity.
func normalizeRecords(stored []dailyreport.DailyRecord) ([]dailyreport.DailyRecord, []payroll.SkippedRecord) {
	records := make([]dailyreport.DailyRecord, 0, len(stored))
	var skipped []payroll.SkippedRecord

	for _, r := range stored {
		rec, err := dailyreport.Normalize(r.ToRaw())
		if err != nil {
			var recErr *dailyreport.RecordError
			if errors.As(err, &recErr) {
				skipped = append(skipped, payroll.NewSkippedRecord(recErr))
				continue
			}
			skipped = append(skipped, payroll.SkippedRecord{
				EmployeeID: r.EmployeeID,
				Date:       r.DateString(),
				Violations: map[string]string{"record": err.Error()},
			})
			continue
		}
		rec.ID = r.ID
		rec.CreatedAt = r.CreatedAt
		rec.UpdatedAt = r.UpdatedAt
		records = append(records, rec)
	}

	return records, skipped
}

// CacheKey identifies a breakdown by employee and its cache generation, pay
// scale version and period.
func CacheKey(employeeID string, gen int64, scale payscale.PayScale, period payroll.Period) string {
	return fmt.Sprintf("salary:%s:g%d:%s:v%d:%s:%s",
		employeeID,
		gen,
		scale.ID,
		scale.Version,
		period.Start.Format(dailyreport.DateLayout),
		period.End.Format(dailyreport.DateLayout),
	)
}
