package memory

import (
	"context"
	"maps"
	"sort"
	"sync"

	"github.com/elmansy-mostafa/Salary-Calculation/internal/domain/master/payscale"
)

type payScaleRepository struct {
	mu     sync.RWMutex
	scales map[string]payscale.PayScale
}

func NewPayScaleRepository() payscale.PayScaleRepository {
	return &payScaleRepository{
		scales: make(map[string]payscale.PayScale),
	}
}

func (r *payScaleRepository) GetByID(_ context.Context, id string) (payscale.PayScale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.scales[id]
	if !ok {
		return payscale.PayScale{}, payscale.ErrPayScaleNotFound
	}
	return clonePayScale(p), nil
}

func (r *payScaleRepository) Upsert(_ context.Context, p payscale.PayScale) (payscale.PayScale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ts := now()
	p = clonePayScale(p)
	if existing, ok := r.scales[p.ID]; ok {
		p.Version = existing.Version + 1
		p.CreatedAt = existing.CreatedAt
	} else {
		p.Version = 1
		p.CreatedAt = ts
	}
	p.UpdatedAt = ts
	r.scales[p.ID] = p
	return clonePayScale(p), nil
}

func (r *payScaleRepository) List(_ context.Context) ([]payscale.PayScale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]payscale.PayScale, 0, len(r.scales))
	for _, p := range r.scales {
		result = append(result, clonePayScale(p))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// clonePayScale copies the rate maps so callers cannot mutate stored state.
func clonePayScale(p payscale.PayScale) payscale.PayScale {
	p.BaseSalaryByTier = maps.Clone(p.BaseSalaryByTier)
	p.HourPriceByTier = maps.Clone(p.HourPriceByTier)
	p.AllowanceRateByType = maps.Clone(p.AllowanceRateByType)
	p.SetterThresholdByTier = maps.Clone(p.SetterThresholdByTier)
	p.FronterThresholdByTier = maps.Clone(p.FronterThresholdByTier)
	return p
}
