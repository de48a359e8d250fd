package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	Upsert(ctx context.Context, e Employee) (Employee, error)
	List(ctx context.Context) ([]Employee, error)
}
