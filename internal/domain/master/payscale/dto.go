package payscale

import (
	"time"

	"github.com/elmansy-mostafa/Salary-Calculation/internal/domain/employee"
	"github.com/elmansy-mostafa/Salary-Calculation/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type UpsertPayScaleRequest struct {
	ID                     string                     `json:"-"`
	Name                   string                     `json:"name"`
	BaseSalaryByTier       map[string]decimal.Decimal `json:"base_salary_by_tier"`
	HourPriceByTier        map[string]decimal.Decimal `json:"hour_price_by_tier"`
	SpiffMultiplier        decimal.Decimal            `json:"spiff_multiplier"`
	KPIMultiplier          decimal.Decimal            `json:"kpi_multiplier"`
	ButterUpMultiplier     decimal.Decimal            `json:"butter_up_multiplier"`
	AllowanceRateByType    map[string]decimal.Decimal `json:"allowance_rate_by_type"`
	SetterThresholdByTier  map[string]int             `json:"setter_threshold_by_tier"`
	FronterThresholdByTier map[string]int             `json:"fronter_threshold_by_tier"`
}

func (r *UpsertPayScaleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if len(r.Name) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 100 characters",
		})
	}
	for _, field := range []struct {
		name string
		keys []string
	}{
		{"base_salary_by_tier", decimalKeys(r.BaseSalaryByTier)},
		{"hour_price_by_tier", decimalKeys(r.HourPriceByTier)},
		{"setter_threshold_by_tier", intKeys(r.SetterThresholdByTier)},
		{"fronter_threshold_by_tier", intKeys(r.FronterThresholdByTier)},
	} {
		for _, k := range field.keys {
			if !employee.Tier(k).Valid() {
				errs = append(errs, validator.ValidationError{
					Field:   field.name + "." + k,
					Message: employee.ErrInvalidTier.Error(),
				})
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}

	// Table-level invariants are shared with the entity.
	return r.ToEntity().Validate()
}

func (r *UpsertPayScaleRequest) ToEntity() PayScale {
	p := PayScale{
		ID:                     r.ID,
		Name:                   r.Name,
		BaseSalaryByTier:       make(map[employee.Tier]decimal.Decimal, len(r.BaseSalaryByTier)),
		HourPriceByTier:        make(map[employee.Tier]decimal.Decimal, len(r.HourPriceByTier)),
		SpiffMultiplier:        r.SpiffMultiplier,
		KPIMultiplier:          r.KPIMultiplier,
		ButterUpMultiplier:     r.ButterUpMultiplier,
		AllowanceRateByType:    make(map[string]decimal.Decimal, len(r.AllowanceRateByType)),
		SetterThresholdByTier:  make(map[employee.Tier]int, len(r.SetterThresholdByTier)),
		FronterThresholdByTier: make(map[employee.Tier]int, len(r.FronterThresholdByTier)),
	}
	for k, v := range r.BaseSalaryByTier {
		p.BaseSalaryByTier[employee.Tier(k)] = v
	}
	for k, v := range r.HourPriceByTier {
		p.HourPriceByTier[employee.Tier(k)] = v
	}
	for k, v := range r.AllowanceRateByType {
		p.AllowanceRateByType[k] = v
	}
	for k, v := range r.SetterThresholdByTier {
		p.SetterThresholdByTier[employee.Tier(k)] = v
	}
	for k, v := range r.FronterThresholdByTier {
		p.FronterThresholdByTier[employee.Tier(k)] = v
	}
	return p
}

func decimalKeys(m map[string]decimal.Decimal) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func intKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

type PayScaleResponse struct {
	ID                     string                            `json:"id"`
	Name                   string                            `json:"name"`
	Version                int                               `json:"version"`
	BaseSalaryByTier       map[employee.Tier]decimal.Decimal `json:"base_salary_by_tier"`
	HourPriceByTier        map[employee.Tier]decimal.Decimal `json:"hour_price_by_tier"`
	SpiffMultiplier        decimal.Decimal                   `json:"spiff_multiplier"`
	KPIMultiplier          decimal.Decimal                   `json:"kpi_multiplier"`
	ButterUpMultiplier     decimal.Decimal                   `json:"butter_up_multiplier"`
	AllowanceRateByType    map[string]decimal.Decimal        `json:"allowance_rate_by_type"`
	SetterThresholdByTier  map[employee.Tier]int             `json:"setter_threshold_by_tier"`
	FronterThresholdByTier map[employee.Tier]int             `json:"fronter_threshold_by_tier"`
	CreatedAt              time.Time                         `json:"created_at"`
	UpdatedAt              time.Time                         `json:"updated_at"`
}

func NewPayScaleResponse(p PayScale) PayScaleResponse {
	return PayScaleResponse{
		ID:                     p.ID,
		Name:                   p.Name,
		Version:                p.Version,
		BaseSalaryByTier:       p.BaseSalaryByTier,
		HourPriceByTier:        p.HourPriceByTier,
		SpiffMultiplier:        p.SpiffMultiplier,
		KPIMultiplier:          p.KPIMultiplier,
		ButterUpMultiplier:     p.ButterUpMultiplier,
		AllowanceRateByType:    p.AllowanceRateByType,
		SetterThresholdByTier:  p.SetterThresholdByTier,
		FronterThresholdByTier: p.FronterThresholdByTier,
		CreatedAt:              p.CreatedAt,
		UpdatedAt:              p.UpdatedAt,
	}
}
