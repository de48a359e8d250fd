package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/elmansy-mostafa/Salary-Calculation/internal/domain/dailyreport"
	"github.com/elmansy-mostafa/Salary-Calculation/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type dailyReportRepositoryImpl struct {
	db *database.DB
}

func NewDailyReportRepository(db *database.DB) dailyreport.DailyReportRepository {
	return &dailyReportRepositoryImpl{db: db}
}

const dailyReportColumns = `id, employee_id, work_date, qualified_appointments, unqualified_appointments,
		spiffs, kpi, butter_up, deduction_amount, deduction_reason, allowance_type, allowance_value,
		is_present, is_saturday, working_hours, created_at, updated_at`

func scanDailyReport(row pgx.Row) (dailyreport.DailyRecord, error) {
	var r dailyreport.DailyRecord
	err := row.Scan(
		&r.ID, &r.EmployeeID, &r.Date, &r.QualifiedAppointments, &r.UnqualifiedAppointments,
		&r.Spiffs, &r.KPIRaw, &r.ButterUpRaw, &r.DeductionAmount, &r.DeductionReason,
		&r.AllowanceType, &r.AllowanceValue, &r.IsPresent, &r.IsSaturday, &r.WorkingHours,
		&r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return dailyreport.DailyRecord{}, err
	}
	r.Date = time.Date(r.Date.Year(), r.Date.Month(), r.Date.Day(), 0, 0, 0, 0, time.UTC)
	return r, nil
}

// Create implements dailyreport.DailyReportRepository.
func (r *dailyReportRepositoryImpl) Create(ctx context.Context, rec dailyreport.DailyRecord) (dailyreport.DailyRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO daily_reports (
			id, employee_id, work_date, qualified_appointments, unqualified_appointments,
			spiffs, kpi, butter_up, deduction_amount, deduction_reason, allowance_type, allowance_value,
			is_present, is_saturday, working_hours
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING ` + dailyReportColumns

	created, err := scanDailyReport(q.QueryRow(ctx, query,
		rec.ID, rec.EmployeeID, rec.Date, rec.QualifiedAppointments, rec.UnqualifiedAppointments,
		rec.Spiffs, rec.KPIRaw, rec.ButterUpRaw, rec.DeductionAmount, rec.DeductionReason,
		rec.AllowanceType, rec.AllowanceValue, rec.IsPresent, rec.IsSaturday, rec.WorkingHours,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return dailyreport.DailyRecord{}, dailyreport.ErrDuplicateDailyReport
		}
		return dailyreport.DailyRecord{}, fmt.Errorf("failed to create daily report: %w", err)
	}
	return created, nil
}

// GetByEmployeeDate implements dailyreport.DailyReportRepository.
func (r *dailyReportRepositoryImpl) GetByEmployeeDate(ctx context.Context, employeeID string, date time.Time) (dailyreport.DailyRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + dailyReportColumns + ` FROM daily_reports WHERE employee_id = $1 AND work_date = $2`

	rec, err := scanDailyReport(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dailyreport.DailyRecord{}, dailyreport.ErrDailyReportNotFound
		}
		return dailyreport.DailyRecord{}, fmt.Errorf("failed to get daily report: %w", err)
	}
	return rec, nil
}

// Update implements dailyreport.DailyReportRepository.
func (r *dailyReportRepositoryImpl) Update(ctx context.Context, rec dailyreport.DailyRecord) (dailyreport.DailyRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE daily_reports SET
			qualified_appointments = $3,
			unqualified_appointments = $4,
			spiffs = $5,
			kpi = $6,
			butter_up = $7,
			deduction_amount = $8,
			deduction_reason = $9,
			allowance_type = $10,
			allowance_value = $11,
			is_present = $12,
			is_saturday = $13,
			working_hours = $14,
			updated_at = NOW()
		WHERE employee_id = $1 AND work_date = $2
		RETURNING ` + dailyReportColumns

	updated, err := scanDailyReport(q.QueryRow(ctx, query,
		rec.EmployeeID, rec.Date, rec.QualifiedAppointments, rec.UnqualifiedAppointments,
		rec.Spiffs, rec.KPIRaw, rec.ButterUpRaw, rec.DeductionAmount, rec.DeductionReason,
		rec.AllowanceType, rec.AllowanceValue, rec.IsPresent, rec.IsSaturday, rec.WorkingHours,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dailyreport.DailyRecord{}, dailyreport.ErrDailyReportNotFound
		}
		return dailyreport.DailyRecord{}, fmt.Errorf("failed to update daily report: %w", err)
	}
	return updated, nil
}

// Delete implements dailyreport.DailyReportRepository.
func (r *dailyReportRepositoryImpl) Delete(ctx context.Context, employeeID string, date time.Time) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM daily_reports WHERE employee_id = $1 AND work_date = $2`, employeeID, date)
	if err != nil {
		return fmt.Errorf("failed to delete daily report: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return dailyreport.ErrDailyReportNotFound
	}
	return nil
}

// FindByEmployeeAndRange implements dailyreport.DailyReportRepository.
func (r *dailyReportRepositoryImpl) FindByEmployeeAndRange(ctx context.Context, employeeID string, start, end time.Time) ([]dailyreport.DailyRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + dailyReportColumns + `
		FROM daily_reports
		WHERE employee_id = $1 AND work_date >= $2 AND work_date < $3
		ORDER BY work_date`

	rows, err := q.Query(ctx, query, employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily reports: %w", err)
	}
	defer rows.Close()

	var records []dailyreport.DailyRecord
	for rows.Next() {
		rec, err := scanDailyReport(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan daily report: %w", err)
		}
		records = append(records, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
