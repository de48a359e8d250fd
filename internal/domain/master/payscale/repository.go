package payscale

import "context"

type PayScaleRepository interface {
	GetByID(ctx context.Context, id string) (PayScale, error)
	// Upsert stores p and returns it with Version incremented.
	Upsert(ctx context.Context, p PayScale) (PayScale, error)
	List(ctx context.Context) ([]PayScale, error)
}
