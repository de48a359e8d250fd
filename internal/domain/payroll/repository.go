package payroll

import "context"

// BreakdownCache stores computed salary responses. Implementations must
// treat a miss as (zero, false, nil).
//
// Generation returns a per-employee counter that InvalidateEmployee bumps.
// Callers read it before loading inputs and fold it into the cache key, so a
// result computed from data that was replaced mid-flight is stored under a
// key nobody asks for again.
type BreakdownCache interface {
	Get(ctx context.Context, key string) (SalaryResponse, bool, error)
	Set(ctx context.Context, key string, employeeID string, value SalaryResponse) error
	Generation(ctx context.Context, employeeID string) (int64, error)
	InvalidateEmployee(ctx context.Context, employeeID string) error
}
