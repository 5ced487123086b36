package promotion

import (
	"context"

	"restaurante-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context) ([]*Promotion, error)
	Get(ctx context.Context, id uint) (*Promotion, error)
	Create(ctx context.Context, req SavePromotionRequest) (*Promotion, error)
	Update(ctx context.Context, id uint, req SavePromotionRequest) (*Promotion, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]*Promotion, error) {
	return s.repo.List(ctx)
}

func (s *service) Get(ctx context.Context, id uint) (*Promotion, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Create(ctx context.Context, req SavePromotionRequest) (*Promotion, error) {
	if err := req.Validate(); err != nil {
		logger.FromCtx(ctx).Warn("invalid promotion input",
			zap.String("layer", "service"),
			zap.String("method", "Create"),
			zap.Error(err),
		)
		return nil, err
	}

	p, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	logger.FromCtx(ctx).Info("promotion created", zap.Uint("promotion_id", p.ID))
	return p, nil
}

func (s *service) Update(ctx context.Context, id uint, req SavePromotionRequest) (*Promotion, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, req)
}

func (s *service) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}
