package postgresql

import (
	"context"
	"fmt"

	"github.com/elmansy-mostafa/Salary-Calculation/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		tier TEXT NOT NULL,
		is_appointment_setter BOOLEAN NOT NULL DEFAULT FALSE,
		is_full_time BOOLEAN NOT NULL DEFAULT TRUE,
		is_onsite BOOLEAN NOT NULL DEFAULT TRUE,
		has_insurance BOOLEAN NOT NULL DEFAULT FALSE,
		position TEXT,
		start_date DATE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS pay_scales (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		version INTEGER NOT NULL DEFAULT 1,
		base_salary_by_tier JSONB NOT NULL,
		hour_price_by_tier JSONB NOT NULL,
		spiff_multiplier NUMERIC(14,4) NOT NULL,
		kpi_multiplier NUMERIC(14,4) NOT NULL,
		butter_up_multiplier NUMERIC(14,4) NOT NULL,
		allowance_rate_by_type JSONB NOT NULL,
		setter_threshold_by_tier JSONB NOT NULL,
		fronter_threshold_by_tier JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS daily_reports (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL REFERENCES employees(id) ON DELETE CASCADE,
		work_date DATE NOT NULL,
		qualified_appointments INTEGER NOT NULL DEFAULT 0,
		unqualified_appointments INTEGER NOT NULL DEFAULT 0,
		spiffs NUMERIC(14,4) NOT NULL DEFAULT 0,
		kpi NUMERIC(14,4) NOT NULL DEFAULT 0,
		butter_up NUMERIC(14,4) NOT NULL DEFAULT 0,
		deduction_amount NUMERIC(14,2) NOT NULL DEFAULT 0,
		deduction_reason TEXT NOT NULL DEFAULT '',
		allowance_type TEXT NOT NULL DEFAULT '',
		allowance_value NUMERIC(14,2) NOT NULL DEFAULT 0,
		is_present BOOLEAN NOT NULL,
		is_saturday BOOLEAN NOT NULL DEFAULT FALSE,
		working_hours NUMERIC(5,2) NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS daily_reports_employee_date_idx ON daily_reports (employee_id, work_date)`,
}

// EnsureSchema creates the tables the repositories in this package use.
func EnsureSchema(ctx context.Context, db *database.DB) error {
	return WithTransaction(ctx, db, func(tx pgx.Tx) error {
		for _, stmt := range schema {
			if _, err := tx.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("failed to apply schema: %w", err)
			}
		}
		return nil
	})
}
