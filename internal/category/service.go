package category

import (
	"context"

	"restaurante-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context) ([]*Category, error)
	Get(ctx context.Context, id uint) (*Category, error)
	Create(ctx context.Context, req SaveCategoryRequest) (*Category, error)
	Update(ctx context.Context, id uint, req SaveCategoryRequest) (*Category, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]*Category, error) {
	return s.repo.List(ctx)
}

func (s *service) Get(ctx context.Context, id uint) (*Category, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Create(ctx context.Context, req SaveCategoryRequest) (*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Create"),
	)

	if err := req.Validate(); err != nil {
		log.Warn("invalid category input", zap.Error(err))
		return nil, err
	}

	exists, err := s.repo.ExistsByName(ctx, req.Name, 0)
	if err != nil {
		log.Error("failed to check category name", zap.Error(err))
		return nil, err
	}
	if exists {
		return nil, ErrCategoryExists
	}

	return s.repo.Create(ctx, req.Name)
}

func (s *service) Update(ctx context.Context, id uint, req SaveCategoryRequest) (*Category, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByName(ctx, req.Name, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrCategoryExists
	}

	return s.repo.Update(ctx, id, req.Name)
}

// Delete refuses while any product, available or not, still references the category.
func (s *service) Delete(ctx context.Context, id uint) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Delete"),
		zap.Uint("category_id", id),
	)

	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c.ProductCount > 0 {
		log.Warn("category delete blocked", zap.Int("product_count", c.ProductCount))
		return ErrCategoryHasProducts
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	log.Info("category deleted")
	return nil
}
