package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/elmansy-mostafa/Salary-Calculation/internal/domain/master/payscale"
	"github.com/elmansy-mostafa/Salary-Calculation/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type payScaleRepositoryImpl struct {
	db *database.DB
}

func NewPayScaleRepository(db *database.DB) payscale.PayScaleRepository {
	return &payScaleRepositoryImpl{db: db}
}

// The per-tier and per-type tables are stored as JSONB objects.
const payScaleColumns = `id, name, version, base_salary_by_tier, hour_price_by_tier,
		spiff_multiplier, kpi_multiplier, butter_up_multiplier, allowance_rate_by_type,
		setter_threshold_by_tier, fronter_threshold_by_tier, created_at, updated_at`

func scanPayScale(row pgx.Row) (payscale.PayScale, error) {
	var p payscale.PayScale
	err := row.Scan(
		&p.ID, &p.Name, &p.Version, &p.BaseSalaryByTier, &p.HourPriceByTier,
		&p.SpiffMultiplier, &p.KPIMultiplier, &p.ButterUpMultiplier, &p.AllowanceRateByType,
		&p.SetterThresholdByTier, &p.FronterThresholdByTier, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

// GetByID implements payscale.PayScaleRepository.
func (r *payScaleRepositoryImpl) GetByID(ctx context.Context, id string) (payscale.PayScale, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payScaleColumns + ` FROM pay_scales WHERE id = $1`

	p, err := scanPayScale(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payscale.PayScale{}, payscale.ErrPayScaleNotFound
		}
		return payscale.PayScale{}, fmt.Errorf("failed to get pay scale with id %s: %w", id, err)
	}
	return p, nil
}

// Upsert implements payscale.PayScaleRepository.
func (r *payScaleRepositoryImpl) Upsert(ctx context.Context, p payscale.PayScale) (payscale.PayScale, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO pay_scales (
			id, name, version, base_salary_by_tier, hour_price_by_tier,
			spiff_multiplier, kpi_multiplier, butter_up_multiplier, allowance_rate_by_type,
			setter_threshold_by_tier, fronter_threshold_by_tier
		) VALUES ($1, $2, 1, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			version = pay_scales.version + 1,
			base_salary_by_tier = EXCLUDED.base_salary_by_tier,
			hour_price_by_tier = EXCLUDED.hour_price_by_tier,
			spiff_multiplier = EXCLUDED.spiff_multiplier,
			kpi_multiplier = EXCLUDED.kpi_multiplier,
			butter_up_multiplier = EXCLUDED.butter_up_multiplier,
			allowance_rate_by_type = EXCLUDED.allowance_rate_by_type,
			setter_threshold_by_tier = EXCLUDED.setter_threshold_by_tier,
			fronter_threshold_by_tier = EXCLUDED.fronter_threshold_by_tier,
			updated_at = NOW()
		RETURNING ` + payScaleColumns

	saved, err := scanPayScale(q.QueryRow(ctx, query,
		p.ID, p.Name, p.BaseSalaryByTier, p.HourPriceByTier,
		p.SpiffMultiplier, p.KPIMultiplier, p.ButterUpMultiplier, p.AllowanceRateByType,
		p.SetterThresholdByTier, p.FronterThresholdByTier,
	))
	if err != nil {
		return payscale.PayScale{}, fmt.Errorf("failed to upsert pay scale with id %s: %w", p.ID, err)
	}
	return saved, nil
}

// List implements payscale.PayScaleRepository.
func (r *payScaleRepositoryImpl) List(ctx context.Context) ([]payscale.PayScale, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+payScaleColumns+` FROM pay_scales ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list pay scales: %w", err)
	}
	defer rows.Close()

	scales := make([]payscale.PayScale, 0)
	for rows.Next() {
		p, err := scanPayScale(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pay scale: %w", err)
		}
		scales = append(scales, p)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return scales, nil
}
