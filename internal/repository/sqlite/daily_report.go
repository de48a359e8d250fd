package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/elmansy-mostafa/Salary-Calculation/internal/domain/dailyreport"
)

type dailyReportRepository struct {
	db *sql.DB
}

func NewDailyReportRepository(s *Store) dailyreport.DailyReportRepository {
	return &dailyReportRepository{db: s.db}
}

const dailyReportColumns = `id, employee_id, work_date, qualified_appointments, unqualified_appointments,
	spiffs, kpi, butter_up, deduction_amount, deduction_reason, allowance_type, allowance_value,
	is_present, is_saturday, working_hours, created_at, updated_at`

func scanDailyReport(row rowScanner) (dailyreport.DailyRecord, error) {
	var (
		r                              dailyreport.DailyRecord
		workDate, createdAt, updatedAt string
	)
	err := row.Scan(
		&r.ID, &r.EmployeeID, &workDate, &r.QualifiedAppointments, &r.UnqualifiedAppointments,
		&r.Spiffs, &r.KPIRaw, &r.ButterUpRaw, &r.DeductionAmount, &r.DeductionReason,
		&r.AllowanceType, &r.AllowanceValue, &r.IsPresent, &r.IsSaturday, &r.WorkingHours,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return dailyreport.DailyRecord{}, err
	}
	// A malformed date is handed on as text; Normalize reports it as a
	// violation of that one record.
	if r.Date, err = time.Parse(dailyreport.DateLayout, workDate); err != nil {
		r.StoredDate = workDate
	}
	r.CreatedAt = parseTime(createdAt)
	r.UpdatedAt = parseTime(updatedAt)
	return r, nil
}

func (r *dailyReportRepository) Create(ctx context.Context, rec dailyreport.DailyRecord) (dailyreport.DailyRecord, error) {
	now := formatTime(time.Now())
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO daily_reports (
			id, employee_id, work_date, qualified_appointments, unqualified_appointments,
			spiffs, kpi, butter_up, deduction_amount, deduction_reason, allowance_type, allowance_value,
			is_present, is_saturday, working_hours, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.EmployeeID, rec.Date.Format(dailyreport.DateLayout),
		rec.QualifiedAppointments, rec.UnqualifiedAppointments,
		rec.Spiffs.String(), rec.KPIRaw.String(), rec.ButterUpRaw.String(),
		rec.DeductionAmount.String(), rec.DeductionReason, rec.AllowanceType, rec.AllowanceValue.String(),
		rec.IsPresent, rec.IsSaturday, rec.WorkingHours.String(), now, now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return dailyreport.DailyRecord{}, dailyreport.ErrDuplicateDailyReport
		}
		return dailyreport.DailyRecord{}, fmt.Errorf("failed to create daily report: %w", err)
	}
	return r.GetByEmployeeDate(ctx, rec.EmployeeID, rec.Date)
}

func (r *dailyReportRepository) GetByEmployeeDate(ctx context.Context, employeeID string, date time.Time) (dailyreport.DailyRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+dailyReportColumns+` FROM daily_reports WHERE employee_id = ? AND work_date = ?`,
		employeeID, date.Format(dailyreport.DateLayout))
	rec, err := scanDailyReport(row)
	if errors.Is(err, sql.ErrNoRows) {
		return dailyreport.DailyRecord{}, dailyreport.ErrDailyReportNotFound
	}
	if err != nil {
		return dailyreport.DailyRecord{}, fmt.Errorf("failed to get daily report: %w", err)
	}
	return rec, nil
}

func (r *dailyReportRepository) Update(ctx context.Context, rec dailyreport.DailyRecord) (dailyreport.DailyRecord, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE daily_reports SET
			qualified_appointments = ?,
			unqualified_appointments = ?,
			spiffs = ?,
			kpi = ?,
			butter_up = ?,
			deduction_amount = ?,
			deduction_reason = ?,
			allowance_type = ?,
			allowance_value = ?,
			is_present = ?,
			is_saturday = ?,
			working_hours = ?,
			updated_at = ?
		WHERE employee_id = ? AND work_date = ?`,
		rec.QualifiedAppointments, rec.UnqualifiedAppointments,
		rec.Spiffs.String(), rec.KPIRaw.String(), rec.ButterUpRaw.String(),
		rec.DeductionAmount.String(), rec.DeductionReason, rec.AllowanceType, rec.AllowanceValue.String(),
		rec.IsPresent, rec.IsSaturday, rec.WorkingHours.String(), formatTime(time.Now()),
		rec.EmployeeID, rec.Date.Format(dailyreport.DateLayout),
	)
	if err != nil {
		return dailyreport.DailyRecord{}, fmt.Errorf("failed to update daily report: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return dailyreport.DailyRecord{}, dailyreport.ErrDailyReportNotFound
	}
	return r.GetByEmployeeDate(ctx, rec.EmployeeID, rec.Date)
}

func (r *dailyReportRepository) Delete(ctx context.Context, employeeID string, date time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM daily_reports WHERE employee_id = ? AND work_date = ?`,
		employeeID, date.Format(dailyreport.DateLayout))
	if err != nil {
		return fmt.Errorf("failed to delete daily report: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return dailyreport.ErrDailyReportNotFound
	}
	return nil
}

func (r *dailyReportRepository) FindByEmployeeAndRange(ctx context.Context, employeeID string, start, end time.Time) ([]dailyreport.DailyRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+dailyReportColumns+`
		FROM daily_reports
		WHERE employee_id = ? AND work_date >= ? AND work_date < ?
		ORDER BY work_date`,
		employeeID, start.Format(dailyreport.DateLayout), end.Format(dailyreport.DateLayout))
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
	return records, rows.Err()
}
