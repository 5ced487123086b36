package expense

import (
	"context"

	"restaurante-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context) ([]*Expense, error)
	Get(ctx context.Context, id uint) (*Expense, error)
	Create(ctx context.Context, req SaveExpenseRequest) (*Expense, error)
	Update(ctx context.Context, id uint, req SaveExpenseRequest) (*Expense, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]*Expense, error) {
	return s.repo.List(ctx)
}

func (s *service) Get(ctx context.Context, id uint) (*Expense, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Create(ctx context.Context, req SaveExpenseRequest) (*Expense, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Create"),
	)

	if err := req.Validate(); err != nil {
		log.Warn("invalid expense input", zap.Error(err))
		return nil, err
	}

	e, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	log.Info("expense recorded",
		zap.Uint("expense_id", e.ID),
		zap.String("amount", e.Amount.StringFixed(2)),
	)
	return e, nil
}

func (s *service) Update(ctx context.Context, id uint, req SaveExpenseRequest) (*Expense, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, req)
}

func (s *service) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}
