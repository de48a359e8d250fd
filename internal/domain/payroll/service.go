package payroll

import "context"

type PayrollService interface {
	Calculate(ctx context.Context, req CalculateSalaryRequest) (SalaryResponse, error)
	CalculateBatch(ctx context.Context, req BatchCalculateRequest) (BatchSalaryResponse, error)
}
