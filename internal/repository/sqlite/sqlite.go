/*
Package sqlite provides SQLite-backed repositories for single-node
deployments and local development.

TABLES:

	employees:     payroll profile per employee
	pay_scales:    rate tables, rate maps stored as JSON text
	daily_reports: one row per employee per calendar day

ENCODING:

	Money and hours are stored as decimal strings so no precision is lost.
	work_date is stored as YYYY-MM-DD and timestamps as RFC3339 in UTC, which
	keeps lexical and chronological order identical for range queries.

USAGE:

	store, err := sqlite.New("./data/salary.db")
	if err != nil {
		return err
	}
	defer store.Close()

	employees := sqlite.NewEmployeeRepository(store)
*/
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/elmansy-mostafa/Salary-Calculation/internal/pkg/database"
	"github.com/mattn/go-sqlite3"
)

// Store owns the database handle shared by the repositories.
type Store struct {
	db *sql.DB
}

// New opens the database at path and migrates the schema. Use ":memory:"
// for an in-memory database.
func New(path string) (*Store, error) {
	db, err := database.NewSQLiteDB(path)
	if err != nil {
		return nil, err
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		tier TEXT NOT NULL,
		is_appointment_setter INTEGER NOT NULL DEFAULT 0,
		is_full_time INTEGER NOT NULL DEFAULT 1,
		is_onsite INTEGER NOT NULL DEFAULT 1,
		has_insurance INTEGER NOT NULL DEFAULT 0,
		position TEXT,
		start_date TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS pay_scales (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		version INTEGER NOT NULL DEFAULT 1,
		base_salary_by_tier TEXT NOT NULL,
		hour_price_by_tier TEXT NOT NULL,
		spiff_multiplier TEXT NOT NULL,
		kpi_multiplier TEXT NOT NULL,
		butter_up_multiplier TEXT NOT NULL,
		allowance_rate_by_type TEXT NOT NULL,
		setter_threshold_by_tier TEXT NOT NULL,
		fronter_threshold_by_tier TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS daily_reports (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL REFERENCES employees(id) ON DELETE CASCADE,
		work_date TEXT NOT NULL,
		qualified_appointments INTEGER NOT NULL DEFAULT 0,
		unqualified_appointments INTEGER NOT NULL DEFAULT 0,
		spiffs TEXT NOT NULL DEFAULT '0',
		kpi TEXT NOT NULL DEFAULT '0',
		butter_up TEXT NOT NULL DEFAULT '0',
		deduction_amount TEXT NOT NULL DEFAULT '0',
		deduction_reason TEXT NOT NULL DEFAULT '',
		allowance_type TEXT NOT NULL DEFAULT '',
		allowance_value TEXT NOT NULL DEFAULT '0',
		is_present INTEGER NOT NULL,
		is_saturday INTEGER NOT NULL DEFAULT 0,
		working_hours TEXT NOT NULL DEFAULT '0',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	-- One report per employee per day
	CREATE UNIQUE INDEX IF NOT EXISTS idx_daily_reports_employee_date
		ON daily_reports(employee_id, work_date);
	`

	_, err := s.db.Exec(schema)
	return err
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}
