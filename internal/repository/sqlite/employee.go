package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/elmansy-mostafa/Salary-Calculation/internal/domain/dailyreport"
	"github.com/elmansy-mostafa/Salary-Calculation/internal/domain/employee"
)

type employeeRepository struct {
	db *sql.DB
}

func NewEmployeeRepository(s *Store) employee.EmployeeRepository {
	return &employeeRepository{db: s.db}
}

const employeeColumns = `id, name, tier, is_appointment_setter, is_full_time, is_onsite, has_insurance,
	position, start_date, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row rowScanner) (employee.Employee, error) {
	var (
		e                    employee.Employee
		position, startDate  sql.NullString
		createdAt, updatedAt string
	)
	err := row.Scan(
		&e.ID, &e.Name, &e.Tier, &e.IsAppointmentSetter, &e.IsFullTime, &e.IsOnsite, &e.HasInsurance,
		&position, &startDate, &createdAt, &updatedAt,
	)
	if err != nil {
		return employee.Employee{}, err
	}
	if position.Valid {
		e.Position = &position.String
	}
	if startDate.Valid {
		if t, err := time.Parse(dailyreport.DateLayout, startDate.String); err == nil {
			e.StartDate = &t
		}
	}
	e.CreatedAt = parseTime(createdAt)
	e.UpdatedAt = parseTime(updatedAt)
	return e, nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = ?`, id)
	e, err := scanEmployee(row)
	if errors.Is(err, sql.ErrNoRows) {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to get employee with id %s: %w", id, err)
	}
	return e, nil
}

func (r *employeeRepository) Upsert(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	now := formatTime(time.Now())

	var startDate sql.NullString
	if e.StartDate != nil {
		startDate = sql.NullString{String: e.StartDate.Format(dailyreport.DateLayout), Valid: true}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO employees (
			id, name, tier, is_appointment_setter, is_full_time, is_onsite, has_insurance,
			position, start_date, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			tier = excluded.tier,
			is_appointment_setter = excluded.is_appointment_setter,
			is_full_time = excluded.is_full_time,
			is_onsite = excluded.is_onsite,
			has_insurance = excluded.has_insurance,
			position = excluded.position,
			start_date = excluded.start_date,
			updated_at = excluded.updated_at`,
		e.ID, e.Name, string(e.Tier), e.IsAppointmentSetter, e.IsFullTime, e.IsOnsite, e.HasInsurance,
		e.Position, startDate, now, now,
	)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to upsert employee with id %s: %w", e.ID, err)
	}
	return r.GetByID(ctx, e.ID)
}

func (r *employeeRepository) List(ctx context.Context) ([]employee.Employee, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+employeeColumns+` FROM employees ORDER BY id`)
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
	return employees, rows.Err()
}
