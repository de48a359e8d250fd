package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/elmansy-mostafa/Salary-Calculation/internal/domain/employee"
)

type employeeRepository struct {
	mu        sync.RWMutex
	employees map[string]employee.Employee
}

func NewEmployeeRepository() employee.EmployeeRepository {
	return &employeeRepository{
		employees: make(map[string]employee.Employee),
	}
}

func (r *employeeRepository) GetByID(_ context.Context, id string) (employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *employeeRepository) Upsert(_ context.Context, e employee.Employee) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ts := now()
	if existing, ok := r.employees[e.ID]; ok {
		e.CreatedAt = existing.CreatedAt
	} else {
		e.CreatedAt = ts
	}
	e.UpdatedAt = ts
	r.employees[e.ID] = e
	return e, nil
}

func (r *employeeRepository) List(_ context.Context) ([]employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]employee.Employee, 0, len(r.employees))
	for _, e := range r.employees {
		result = append(result, e)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}
