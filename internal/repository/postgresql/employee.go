package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/elmansy-mostafa/Salary-Calculation/internal/domain/employee"
	"github.com/elmansy-mostafa/Salary-Calculation/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `id, name, tier, is_appointment_setter, is_full_time, is_onsite, has_insurance,
		position, start_date, created_at, updated_at`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID, &e.Name, &e.Tier, &e.IsAppointmentSetter, &e.IsFullTime, &e.IsOnsite, &e.HasInsurance,
		&e.Position, &e.StartDate, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	e, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee with id %s: %w", id, err)
	}
	return e, nil
}

// Upsert implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Upsert(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (
			id, name, tier, is_appointment_setter, is_full_time, is_onsite, has_insurance, position, start_date
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			tier = EXCLUDED.tier,
			is_appointment_setter = EXCLUDED.is_appointment_setter,
			is_full_time = EXCLUDED.is_full_time,
			is_onsite = EXCLUDED.is_onsite,
			has_insurance = EXCLUDED.has_insurance,
			position = EXCLUDED.position,
			start_date = EXCLUDED.start_date,
			updated_at = NOW()
		RETURNING ` + employeeColumns

	saved, err := scanEmployee(q.QueryRow(ctx, query,
		e.ID, e.Name, e.Tier, e.IsAppointmentSetter, e.IsFullTime, e.IsOnsite, e.HasInsurance,
		e.Position, e.StartDate,
	))
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to upsert employee with id %s: %w", e.ID, err)
	}
	return saved, nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees ORDER BY id`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	employees := make([]employee.Employee, 0)
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}
