package cart

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"restaurante-be/internal/logger"
	"restaurante-be/internal/pricing"
	"restaurante-be/internal/product"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Catalog is the product lookup the cart prices against.
type Catalog interface {
	Get(ctx context.Context, id uint) (*product.Product, error)
}

type Service interface {
	Add(ctx context.Context, c *Cart, req AddItemRequest, now time.Time) (*Line, error)
	// Quote reprices every line of c against the catalog at now and returns
	// the result as a new cart. c itself is left untouched.
	Quote(ctx context.Context, c *Cart, now time.Time) (*Cart, error)
	Update(ctx context.Context, c *Cart, key string, qty int) error
	Remove(ctx context.Context, c *Cart, key string) error
}

type service struct {
	catalog Catalog
}

func NewService(catalog Catalog) Service {
	return &service{catalog: catalog}
}

// Add prices the product at now (local time) and merges it into c.
func (s *service) Add(ctx context.Context, c *Cart, req AddItemRequest, now time.Time) (*Line, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Add"),
		zap.Uint("product_id", req.ProductID),
	)

	if err := req.Validate(); err != nil {
		log.Warn("invalid cart input", zap.Error(err))
		return nil, err
	}

	priced, err := s.price(ctx, log, req.ProductID, req.IngredientIDs, req.Quantity, now)
	if err != nil {
		return nil, err
	}
	line := c.Add(priced)

	log.Debug("product added to cart",
		zap.String("key", line.Key),
		zap.Int("quantity", line.Quantity),
	)
	return line, nil
}

func (s *service) Quote(ctx context.Context, c *Cart, now time.Time) (*Cart, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Quote"),
	)

	quoted := New()
	for _, l := range c.Lines {
		priced, err := s.price(ctx, log.With(zap.Uint("product_id", l.ProductID)), l.ProductID, l.IngredientIDs, l.Quantity, now)
		if errors.Is(err, ErrProductUnavailable) || errors.Is(err, ErrProductNotFound) {
			return nil, fmt.Errorf("%w: %s", err, l.ProductName)
		}
		if err != nil {
			return nil, err
		}
		quoted.Add(priced)
	}
	return quoted, nil
}

// price builds a line for productID from the catalog as it stands at now.
// Ingredient ids that do not belong to the product are ignored.
func (s *service) price(
	ctx context.Context,
	log *zap.Logger,
	productID uint,
	ingredientIDs []uint,
	qty int,
	now time.Time,
) (*Line, error) {
	p, err := s.catalog.Get(ctx, productID)
	if errors.Is(err, product.ErrProductNotFound) {
		log.Warn("product no longer exists")
		return nil, ErrProductNotFound
	}
	if err != nil {
		log.Error("failed to load product", zap.Error(err))
		return nil, err
	}

	if !p.IsAvailable {
		log.Warn("product disabled")
		return nil, ErrProductUnavailable
	}

	avail := pricing.Resolve(p.Windows(), pricing.SlotAt(now))
	if !avail.Available {
		log.Warn("product outside its availability window",
			zap.String("day", avail.Slot.Day),
			zap.String("time", avail.Slot.Time),
		)
		return nil, ErrProductUnavailable
	}

	var (
		ids         []uint
		names       []string
		adjustments []decimal.Decimal
	)
	for _, ing := range p.Ingredients {
		if slices.Contains(ingredientIDs, ing.ID) {
			ids = append(ids, ing.ID)
			names = append(names, ing.Name)
			adjustments = append(adjustments, ing.PriceAdjustment)
		}
	}

	priced := pricing.Line{
		BasePrice:              p.Price,
		AvailabilityAdjustment: avail.PriceAdjustment,
		IngredientAdjustments:  adjustments,
		Quantity:               qty,
	}

	slices.Sort(ids)
	if names == nil {
		names = []string{}
	}
	return &Line{
		Key:                    Key(p.ID, ids),
		ProductID:              p.ID,
		ProductName:            p.Name,
		Quantity:               qty,
		BasePrice:              priced.BasePrice,
		AvailabilityAdjustment: priced.AvailabilityAdjustment,
		IngredientAdjustment:   priced.IngredientAdjustment(),
		UnitPrice:              priced.UnitPrice(),
		IngredientIDs:          ids,
		IngredientNames:        names,
	}, nil
}

func (s *service) Update(ctx context.Context, c *Cart, key string, qty int) error {
	if err := c.SetQuantity(key, qty); err != nil {
		logger.FromCtx(ctx).Warn("cart update rejected",
			zap.String("layer", "service"),
			zap.String("key", key),
			zap.Int("quantity", qty),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (s *service) Remove(ctx context.Context, c *Cart, key string) error {
	return c.Remove(key)
}
