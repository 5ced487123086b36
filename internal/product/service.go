package product

import (
	"context"
	"time"

	"restaurante-be/internal/logger"
	"restaurante-be/internal/pricing"

	"go.uber.org/zap"
)

const FeaturedLimit = 6

type Service interface {
	AdminList(ctx context.Context) ([]*Product, error)
	Menu(ctx context.Context, categoryID *uint, now time.Time) ([]*MenuItem, error)
	Featured(ctx context.Context, now time.Time) ([]*MenuItem, error)
	Get(ctx context.Context, id uint) (*Product, error)
	CheckAvailability(ctx context.Context, id uint, now time.Time) (*AvailabilityStatus, error)

	Create(ctx context.Context, req SaveProductRequest) (*Product, error)
	Update(ctx context.Context, id uint, req SaveProductRequest) (*Product, error)
	Delete(ctx context.Context, id uint) (disabled bool, err error)
	ToggleAvailability(ctx context.Context, id uint) (*Product, error)

	AddAvailability(ctx context.Context, productID uint, req AddAvailabilityRequest) (*Availability, error)
	DeleteAvailability(ctx context.Context, id uint) error
	AddIngredient(ctx context.Context, productID uint, req AddIngredientRequest) (*Ingredient, error)
	DeleteIngredient(ctx context.Context, id uint) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) AdminList(ctx context.Context) ([]*Product, error) {
	return s.repo.List(ctx, ListFilter{})
}

func (s *service) attachRelations(ctx context.Context, products []*Product) error {
	if len(products) == 0 {
		return nil
	}

	ids := make([]uint, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}

	avails, err := s.repo.ListAvailabilities(ctx, ids)
	if err != nil {
		return err
	}
	ingredients, err := s.repo.ListIngredients(ctx, ids)
	if err != nil {
		return err
	}

	for _, p := range products {
		p.Availabilities = avails[p.ID]
		p.Ingredients = ingredients[p.ID]
	}
	return nil
}

// availableNow keeps enabled products whose availability rules match now,
// stopping once limit items are collected (0 = no limit).
func (s *service) availableNow(ctx context.Context, filter ListFilter, now time.Time, limit int) ([]*MenuItem, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "availableNow"),
	)
	start := time.Now()

	filter.OnlyAvailable = true
	products, err := s.repo.List(ctx, filter)
	if err != nil {
		log.Error("failed to list products", zap.Error(err))
		return nil, err
	}
	if err := s.attachRelations(ctx, products); err != nil {
		log.Error("failed to load product relations", zap.Error(err))
		return nil, err
	}

	slot := pricing.SlotAt(now)
	items := []*MenuItem{}
	for _, p := range products {
		avail := pricing.Resolve(p.Windows(), slot)
		if !avail.Available {
			continue
		}
		items = append(items, ToMenuItem(p, avail))
		if limit > 0 && len(items) == limit {
			break
		}
	}

	log.Debug("menu computed",
		zap.String("day", slot.Day),
		zap.String("time", slot.Time),
		zap.Int("count", len(items)),
		zap.Duration("duration", time.Since(start)),
	)
	return items, nil
}

func (s *service) Menu(ctx context.Context, categoryID *uint, now time.Time) ([]*MenuItem, error) {
	return s.availableNow(ctx, ListFilter{CategoryID: categoryID}, now, 0)
}

func (s *service) Featured(ctx context.Context, now time.Time) ([]*MenuItem, error) {
	return s.availableNow(ctx, ListFilter{}, now, FeaturedLimit)
}

// Get returns the product with its availability rules and ingredient options.
func (s *service) Get(ctx context.Context, id uint) (*Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.attachRelations(ctx, []*Product{p}); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) CheckAvailability(ctx context.Context, id uint, now time.Time) (*AvailabilityStatus, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToAvailabilityStatus(pricing.Resolve(p.Windows(), pricing.SlotAt(now))), nil
}

func (s *service) Create(ctx context.Context, req SaveProductRequest) (*Product, error) {
	if err := req.Validate(); err != nil {
		logger.FromCtx(ctx).Warn("invalid product input",
			zap.String("layer", "service"),
			zap.Error(err),
		)
		return nil, err
	}
	return s.repo.Create(ctx, req)
}

func (s *service) Update(ctx context.Context, id uint, req SaveProductRequest) (*Product, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, req)
}

// Delete removes a product, or only disables it when orders reference it.
func (s *service) Delete(ctx context.Context, id uint) (bool, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Delete"),
		zap.Uint("product_id", id),
	)

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return false, err
	}

	hasOrders, err := s.repo.HasOrders(ctx, id)
	if err != nil {
		log.Error("failed to check order history", zap.Error(err))
		return false, err
	}

	if hasOrders {
		if err := s.repo.SetAvailable(ctx, id, false); err != nil {
			return false, err
		}
		log.Info("product has order history, disabled instead of deleted")
		return true, nil
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return false, err
	}
	log.Info("product deleted")
	return false, nil
}

func (s *service) ToggleAvailability(ctx context.Context, id uint) (*Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SetAvailable(ctx, id, !p.IsAvailable); err != nil {
		return nil, err
	}
	p.IsAvailable = !p.IsAvailable
	return p, nil
}

func (s *service) AddAvailability(ctx context.Context, productID uint, req AddAvailabilityRequest) (*Availability, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.repo.AddAvailability(ctx, productID, req)
}

func (s *service) DeleteAvailability(ctx context.Context, id uint) error {
	return s.repo.DeleteAvailability(ctx, id)
}

func (s *service) AddIngredient(ctx context.Context, productID uint, req AddIngredientRequest) (*Ingredient, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.repo.AddIngredient(ctx, productID, req)
}

func (s *service) DeleteIngredient(ctx context.Context, id uint) error {
	return s.repo.DeleteIngredient(ctx, id)
}
