package employee

import (
	"context"
	"log/slog"

	"github.com/elmansy-mostafa/Salary-Calculation/internal/domain/employee"
	"github.com/elmansy-mostafa/Salary-Calculation/internal/domain/payroll"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	cache        payroll.BreakdownCache
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository, cache payroll.BreakdownCache) employee.EmployeeService {
	return &EmployeeServiceImpl{
		employeeRepo: employeeRepo,
		cache:        cache,
	}
}

func (s *EmployeeServiceImpl) Get(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	e, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.NewEmployeeResponse(e), nil
}

func (s *EmployeeServiceImpl) List(ctx context.Context) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, employee.NewEmployeeResponse(e))
	}
	return responses, nil
}

// Upsert creates or replaces a profile. A tier or role change alters the
// salary, so cached breakdowns for the employee are dropped.
func (s *EmployeeServiceImpl) Upsert(ctx context.Context, req employee.UpsertEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	saved, err := s.employeeRepo.Upsert(ctx, req.ToEntity())
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if s.cache != nil {
		if err := s.cache.InvalidateEmployee(ctx, saved.ID); err != nil {
			slog.Warn("failed to invalidate cached breakdowns", "employee_id", saved.ID, "error", err)
		}
	}

	slog.Info("employee profile saved", "employee_id", saved.ID, "tier", saved.Tier)
	return employee.NewEmployeeResponse(saved), nil
}
