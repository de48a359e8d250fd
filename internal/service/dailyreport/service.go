package dailyreport

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/elmansy-mostafa/Salary-Calculation/internal/domain/dailyreport"
	"github.com/elmansy-mostafa/Salary-Calculation/internal/domain/employee"
	"github.com/elmansy-mostafa/Salary-Calculation/internal/domain/payroll"
	"github.com/elmansy-mostafa/Salary-Calculation/internal/pkg/validator"
	"github.com/google/uuid"
)

type dailyReportServiceImpl struct {
	dailyReportRepo dailyreport.DailyReportRepository
	employeeRepo    employee.EmployeeRepository
	cache           payroll.BreakdownCache
}

// NewDailyReportService wires the report store. cache may be nil; when set,
// every write drops the employee's cached salary breakdowns.
func NewDailyReportService(
	dailyReportRepo dailyreport.DailyReportRepository,
	employeeRepo employee.EmployeeRepository,
	cache payroll.BreakdownCache,
) dailyreport.DailyReportService {
	return &dailyReportServiceImpl{
		dailyReportRepo: dailyReportRepo,
		employeeRepo:    employeeRepo,
		cache:           cache,
	}
}

func (s *dailyReportServiceImpl) Create(ctx context.Context, req dailyreport.RawDailyReport) (dailyreport.DailyReportResponse, error) {
	rec, err := dailyreport.Normalize(req)
	if err != nil {
		return dailyreport.DailyReportResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, rec.EmployeeID); err != nil {
		return dailyreport.DailyReportResponse{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return dailyreport.DailyReportResponse{}, fmt.Errorf("failed to generate daily report id: %w", err)
	}
	rec.ID = id.String()

	created, err := s.dailyReportRepo.Create(ctx, rec)
	if err != nil {
		return dailyreport.DailyReportResponse{}, err
	}

	s.invalidate(ctx, created.EmployeeID)
	return dailyreport.NewDailyReportResponse(created), nil
}

func (s *dailyReportServiceImpl) Get(ctx context.Context, employeeID string, date string) (dailyreport.DailyReportResponse, error) {
	d, err := parseKey(employeeID, date)
	if err != nil {
		return dailyreport.DailyReportResponse{}, err
	}

	rec, err := s.dailyReportRepo.GetByEmployeeDate(ctx, employeeID, d)
	if err != nil {
		return dailyreport.DailyReportResponse{}, err
	}
	return dailyreport.NewDailyReportResponse(rec), nil
}

func (s *dailyReportServiceImpl) Update(ctx context.Context, employeeID string, date string, req dailyreport.UpdateDailyReportRequest) (dailyreport.DailyReportResponse, error) {
	d, err := parseKey(employeeID, date)
	if err != nil {
		return dailyreport.DailyReportResponse{}, err
	}

	existing, err := s.dailyReportRepo.GetByEmployeeDate(ctx, employeeID, d)
	if err != nil {
		return dailyreport.DailyReportResponse{}, err
	}

	merged, err := dailyreport.ApplyPatch(existing, req)
	if err != nil {
		return dailyreport.DailyReportResponse{}, err
	}

	updated, err := s.dailyReportRepo.Update(ctx, merged)
	if err != nil {
		return dailyreport.DailyReportResponse{}, err
	}

	s.invalidate(ctx, employeeID)
	return dailyreport.NewDailyReportResponse(updated), nil
}

func (s *dailyReportServiceImpl) Delete(ctx context.Context, employeeID string, date string) error {
	d, err := parseKey(employeeID, date)
	if err != nil {
		return err
	}

	if err := s.dailyReportRepo.Delete(ctx, employeeID, d); err != nil {
		return err
	}

	s.invalidate(ctx, employeeID)
	return nil
}

func (s *dailyReportServiceImpl) List(ctx context.Context, req dailyreport.ListDailyReportsRequest) ([]dailyreport.DailyReportResponse, error) {
	start, end, err := req.Validate()
	if err != nil {
		return nil, err
	}

	records, err := s.dailyReportRepo.FindByEmployeeAndRange(ctx, req.EmployeeID, start, end)
	if err != nil {
		return nil, err
	}

	responses := make([]dailyreport.DailyReportResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, dailyreport.NewDailyReportResponse(rec))
	}
	return responses, nil
}

func (s *dailyReportServiceImpl) invalidate(ctx context.Context, employeeID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateEmployee(ctx, employeeID); err != nil {
		slog.Warn("failed to invalidate cached breakdowns", "employee_id", employeeID, "error", err)
	}
}

func parseKey(employeeID string, date string) (time.Time, error) {
	var errs validator.ValidationErrors
	if validator.IsEmpty(employeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	parsed, ok := validator.IsValidDate(date)
	if !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}
	if len(errs) > 0 {
		return time.Time{}, errs
	}
	return parsed, nil
}
