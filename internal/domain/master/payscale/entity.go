package payscale

import (
	"time"

	"github.com/elmansy-mostafa/Salary-Calculation/internal/domain/employee"
	"github.com/shopspring/decimal"
)

// AllowanceTravel is the allowance type paid per present day.
const AllowanceTravel = "travel"

// PayScale is a tenant's rate table ("static values"). Version is bumped on
// every write so cached breakdowns computed against an older table are never
// served.
type PayScale struct {
	ID                     string
	Name                   string
	Version                int
	BaseSalaryByTier       map[employee.Tier]decimal.Decimal
	HourPriceByTier        map[employee.Tier]decimal.Decimal
	SpiffMultiplier        decimal.Decimal
	KPIMultiplier          decimal.Decimal
	ButterUpMultiplier     decimal.Decimal
	AllowanceRateByType    map[string]decimal.Decimal
	SetterThresholdByTier  map[employee.Tier]int
	FronterThresholdByTier map[employee.Tier]int
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// ThresholdFor returns the monthly qualified-appointment threshold for the
// given role and tier.
func (p PayScale) ThresholdFor(isSetter bool, tier employee.Tier) (int, bool) {
	table := p.FronterThresholdByTier
	if isSetter {
		table = p.SetterThresholdByTier
	}
	v, ok := table[tier]
	return v, ok
}

// HasTier reports whether every per-tier table carries tier.
func (p PayScale) HasTier(tier employee.Tier) bool {
	if _, ok := p.BaseSalaryByTier[tier]; !ok {
		return false
	}
	if _, ok := p.HourPriceByTier[tier]; !ok {
		return false
	}
	if _, ok := p.SetterThresholdByTier[tier]; !ok {
		return false
	}
	if _, ok := p.FronterThresholdByTier[tier]; !ok {
		return false
	}
	return true
}

// Validate checks the invariants every stored pay scale must hold: all
// per-tier tables share the full tier set and no rate is negative.
func (p PayScale) Validate() error {
	var errs ValidationErrors

	for _, tier := range employee.Tiers {
		if v, ok := p.BaseSalaryByTier[tier]; !ok {
			errs = append(errs, tableError("base_salary_by_tier", tier, "missing"))
		} else if v.IsNegative() {
			errs = append(errs, tableError("base_salary_by_tier", tier, "must not be negative"))
		}
		if v, ok := p.HourPriceByTier[tier]; !ok {
			errs = append(errs, tableError("hour_price_by_tier", tier, "missing"))
		} else if v.IsNegative() {
			errs = append(errs, tableError("hour_price_by_tier", tier, "must not be negative"))
		}
		if v, ok := p.SetterThresholdByTier[tier]; !ok {
			errs = append(errs, tableError("setter_threshold_by_tier", tier, "missing"))
		} else if v < 0 {
			errs = append(errs, tableError("setter_threshold_by_tier", tier, "must not be negative"))
		}
		if v, ok := p.FronterThresholdByTier[tier]; !ok {
			errs = append(errs, tableError("fronter_threshold_by_tier", tier, "missing"))
		} else if v < 0 {
			errs = append(errs, tableError("fronter_threshold_by_tier", tier, "must not be negative"))
		}
	}

	extra := func(field string, n int) {
		if n > len(employee.Tiers) {
			errs = append(errs, ValidationError{Field: field, Message: "contains unknown tiers"})
		}
	}
	extra("base_salary_by_tier", len(p.BaseSalaryByTier))
	extra("hour_price_by_tier", len(p.HourPriceByTier))
	extra("setter_threshold_by_tier", len(p.SetterThresholdByTier))
	extra("fronter_threshold_by_tier", len(p.FronterThresholdByTier))

	if p.SpiffMultiplier.IsNegative() {
		errs = append(errs, ValidationError{Field: "spiff_multiplier", Message: "must not be negative"})
	}
	if p.KPIMultiplier.IsNegative() {
		errs = append(errs, ValidationError{Field: "kpi_multiplier", Message: "must not be negative"})
	}
	if p.ButterUpMultiplier.IsNegative() {
		errs = append(errs, ValidationError{Field: "butter_up_multiplier", Message: "must not be negative"})
	}
	for k, v := range p.AllowanceRateByType {
		if v.IsNegative() {
			errs = append(errs, ValidationError{Field: "allowance_rate_by_type." + k, Message: "must not be negative"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func tableError(field string, tier employee.Tier, msg string) ValidationError {
	return ValidationError{Field: field + "." + string(tier), Message: msg}
}
