package master

import (
	"context"
	"log/slog"

	"github.com/elmansy-mostafa/Salary-Calculation/internal/domain/master/payscale"
)

type MasterService interface {
	// Pay scale operations
	GetPayScale(ctx context.Context, id string) (payscale.PayScaleResponse, error)
	ListPayScales(ctx context.Context) ([]payscale.PayScaleResponse, error)
	UpsertPayScale(ctx context.Context, req payscale.UpsertPayScaleRequest) (payscale.PayScaleResponse, error)
}

type masterServiceImpl struct {
	payScaleRepo payscale.PayScaleRepository
}

func NewMasterService(payScaleRepo payscale.PayScaleRepository) MasterService {
	return &masterServiceImpl{
		payScaleRepo: payScaleRepo,
	}
}

// ==================== PAY SCALE OPERATIONS ====================

func (s *masterServiceImpl) GetPayScale(ctx context.Context, id string) (payscale.PayScaleResponse, error) {
	p, err := s.payScaleRepo.GetByID(ctx, id)
	if err != nil {
		return payscale.PayScaleResponse{}, err
	}
	return payscale.NewPayScaleResponse(p), nil
}

func (s *masterServiceImpl) ListPayScales(ctx context.Context) ([]payscale.PayScaleResponse, error) {
	scales, err := s.payScaleRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]payscale.PayScaleResponse, 0, len(scales))
	for _, p := range scales {
		responses = append(responses, payscale.NewPayScaleResponse(p))
	}
	return responses, nil
}

// UpsertPayScale stores a new version of the table. Breakdown cache keys carry
// the version, so no explicit invalidation is needed.
func (s *masterServiceImpl) UpsertPayScale(ctx context.Context, req payscale.UpsertPayScaleRequest) (payscale.PayScaleResponse, error) {
	if err := req.Validate(); err != nil {
		return payscale.PayScaleResponse{}, err
	}

	saved, err := s.payScaleRepo.Upsert(ctx, req.ToEntity())
	if err != nil {
		return payscale.PayScaleResponse{}, err
	}

	slog.Info("pay scale saved", "pay_scale_id", saved.ID, "version", saved.Version)
	return payscale.NewPayScaleResponse(saved), nil
}
