package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/elmansy-mostafa/Salary-Calculation/internal/domain/master/payscale"
)

type payScaleRepository struct {
	db *sql.DB
}

func NewPayScaleRepository(s *Store) payscale.PayScaleRepository {
	return &payScaleRepository{db: s.db}
}

const payScaleColumns = `id, name, version, base_salary_by_tier, hour_price_by_tier,
	spiff_multiplier, kpi_multiplier, butter_up_multiplier, allowance_rate_by_type,
	setter_threshold_by_tier, fronter_threshold_by_tier, created_at, updated_at`

func scanPayScale(row rowScanner) (payscale.PayScale, error) {
	var (
		p                                 payscale.PayScale
		baseJSON, hourJSON, allowanceJSON string
		setterJSON, fronterJSON           string
		createdAt, updatedAt              string
	)
	err := row.Scan(
		&p.ID, &p.Name, &p.Version, &baseJSON, &hourJSON,
		&p.SpiffMultiplier, &p.KPIMultiplier, &p.ButterUpMultiplier, &allowanceJSON,
		&setterJSON, &fronterJSON, &createdAt, &updatedAt,
	)
	if err != nil {
		return payscale.PayScale{}, err
	}

	tables := []struct {
		raw    string
		target any
	}{
		{baseJSON, &p.BaseSalaryByTier},
		{hourJSON, &p.HourPriceByTier},
		{allowanceJSON, &p.AllowanceRateByType},
		{setterJSON, &p.SetterThresholdByTier},
		{fronterJSON, &p.FronterThresholdByTier},
	}
	for _, t := range tables {
		if err := json.Unmarshal([]byte(t.raw), t.target); err != nil {
			return payscale.PayScale{}, fmt.Errorf("failed to decode pay scale %s: %w", p.ID, err)
		}
	}

	p.CreatedAt = parseTime(createdAt)
	p.UpdatedAt = parseTime(updatedAt)
	return p, nil
}

func (r *payScaleRepository) GetByID(ctx context.Context, id string) (payscale.PayScale, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+payScaleColumns+` FROM pay_scales WHERE id = ?`, id)
	p, err := scanPayScale(row)
	if errors.Is(err, sql.ErrNoRows) {
		return payscale.PayScale{}, payscale.ErrPayScaleNotFound
	}
	if err != nil {
		return payscale.PayScale{}, fmt.Errorf("failed to get pay scale with id %s: %w", id, err)
	}
	return p, nil
}

func (r *payScaleRepository) Upsert(ctx context.Context, p payscale.PayScale) (payscale.PayScale, error) {
	encoded := make([]string, 0, 5)
	for _, table := range []any{
		p.BaseSalaryByTier,
		p.HourPriceByTier,
		p.AllowanceRateByType,
		p.SetterThresholdByTier,
		p.FronterThresholdByTier,
	} {
		b, err := json.Marshal(table)
		if err != nil {
			return payscale.PayScale{}, fmt.Errorf("failed to encode pay scale %s: %w", p.ID, err)
		}
		encoded = append(encoded, string(b))
	}

	now := formatTime(time.Now())
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pay_scales (
			id, name, version, base_salary_by_tier, hour_price_by_tier,
			spiff_multiplier, kpi_multiplier, butter_up_multiplier, allowance_rate_by_type,
			setter_threshold_by_tier, fronter_threshold_by_tier, created_at, updated_at
		) VALUES (?, ?, 1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			version = pay_scales.version + 1,
			base_salary_by_tier = excluded.base_salary_by_tier,
			hour_price_by_tier = excluded.hour_price_by_tier,
			spiff_multiplier = excluded.spiff_multiplier,
			kpi_multiplier = excluded.kpi_multiplier,
			butter_up_multiplier = excluded.butter_up_multiplier,
			allowance_rate_by_type = excluded.allowance_rate_by_type,
			setter_threshold_by_tier = excluded.setter_threshold_by_tier,
			fronter_threshold_by_tier = excluded.fronter_threshold_by_tier,
			updated_at = excluded.updated_at`,
		p.ID, p.Name, encoded[0], encoded[1],
		p.SpiffMultiplier.String(), p.KPIMultiplier.String(), p.ButterUpMultiplier.String(), encoded[2],
		encoded[3], encoded[4], now, now,
	)
	if err != nil {
		return payscale.PayScale{}, fmt.Errorf("failed to upsert pay scale with id %s: %w", p.ID, err)
	}
	return r.GetByID(ctx, p.ID)
}

func (r *payScaleRepository) List(ctx context.Context) ([]payscale.PayScale, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+payScaleColumns+` FROM pay_scales ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list pay scales: %w", err)
	}
	defer rows.Close()

	scales := make([]payscale.PayScale, 0)
	for rows.Next() {
		p, err := scanPayScale(rows)
		if err != nil {
			return nil, err
		}
		scales = append(scales, p)
	}
	return scales, rows.Err()
}
