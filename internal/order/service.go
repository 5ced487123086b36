package order

import (
	"context"
	"errors"
	"time"

	"restaurante-be/internal/cart"
	"restaurante-be/internal/coupon"
	"restaurante-be/internal/logger"
	"restaurante-be/internal/metrics"
	"restaurante-be/internal/pricing"
	"restaurante-be/internal/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CouponEvaluator prices a coupon code against a subtotal.
type CouponEvaluator interface {
	Evaluate(ctx context.Context, code string, subtotal decimal.Decimal, now time.Time) (pricing.CouponResult, error)
}

type Service interface {
	// PlaceOrder reprices c at now (local time), turns it into an order and
	// empties it. c is left as is when any line is no longer orderable.
	PlaceOrder(ctx context.Context, userID uint, c *cart.Cart, req PlaceOrderRequest, now time.Time) (*Order, error)
	Get(ctx context.Context, id uint) (*Order, error)
	GetForUser(ctx context.Context, userID, id uint) (*Order, error)
	History(ctx context.Context, userID uint) ([]*Order, error)
	AdminList(ctx context.Context, filter AdminFilter, now time.Time) (*AdminList, error)
	UpdateStatus(ctx context.Context, id uint, req UpdateStatusRequest) (*Order, error)
	Repeat(ctx context.Context, userID, id uint, c *cart.Cart, now time.Time) (*RepeatResult, error)
}

type service struct {
	repo    Repository
	coupons CouponEvaluator
	carts   cart.Service
}

func NewService(repo Repository, coupons CouponEvaluator, carts cart.Service) Service {
	return &service{repo: repo, coupons: coupons, carts: carts}
}

func (s *service) PlaceOrder(
	ctx context.Context,
	userID uint,
	c *cart.Cart,
	req PlaceOrderRequest,
	now time.Time,
) (*Order, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "PlaceOrder"),
		zap.Uint("user_id", userID),
	)

	start := time.Now()

	if c == nil || c.IsEmpty() {
		log.Warn("checkout with empty cart")
		return nil, cart.ErrEmptyCart
	}

	if err := req.Validate(); err != nil {
		log.Warn("invalid checkout input", zap.Error(err))
		return nil, err
	}

	quoted, err := s.carts.Quote(ctx, c, now)
	if err != nil {
		log.Warn("cart no longer orderable", zap.Error(err))
		metrics.OrdersFailed.Inc()
		return nil, err
	}

	subtotal := quoted.Subtotal()
	o := &Order{
		UserID:          userID,
		TotalAmount:     subtotal,
		DiscountAmount:  decimal.Zero,
		Status:          StatusReceived,
		PaymentMethod:   req.PaymentMethod,
		DeliveryType:    req.DeliveryType,
		DeliveryAddress: req.DeliveryAddress,
		Notes:           req.Notes,
		EstimatedTime:   DefaultEstimatedMinutes,
		CreatedAt:       now.UTC(),
		Items:           itemsFromCart(quoted),
	}

	if req.CouponCode != "" {
		res, err := s.coupons.Evaluate(ctx, req.CouponCode, subtotal, now)
		if err != nil {
			metrics.OrdersFailed.Inc()
			return nil, err
		}
		if res.Valid {
			o.CouponCode = utils.StrPtr(coupon.NormalizeCode(req.CouponCode))
			o.DiscountAmount = res.Discount
			o.TotalAmount = res.NewTotal
		} else {
			log.Info("coupon ignored at checkout",
				zap.String("code", req.CouponCode),
				zap.String("reason", res.Message),
			)
		}
	}

	err = s.repo.CreateOrderTx(ctx, o)
	if errors.Is(err, ErrCouponUnavailable) {
		metrics.CouponRaceRetries.Inc()
		log.Warn("coupon consumed concurrently, placing order at full price")

		o.CouponCode = nil
		o.DiscountAmount = decimal.Zero
		o.TotalAmount = subtotal
		err = s.repo.CreateOrderTx(ctx, o)
	}
	if err != nil {
		metrics.OrdersFailed.Inc()
		log.Error("failed to persist order", zap.Error(err))
		return nil, err
	}

	metrics.OrdersPlaced.Inc()
	if o.CouponCode != nil {
		metrics.CouponsRedeemed.Inc()
	}
	o.StatusLabel = o.Status.Label()
	c.Clear()

	log.Info("order placed",
		zap.Uint("order_id", o.ID),
		zap.String("total", o.TotalAmount.StringFixed(2)),
		zap.String("coupon", utils.PtrString(o.CouponCode)),
		zap.Duration("duration", time.Since(start)),
	)
	return o, nil
}

func itemsFromCart(c *cart.Cart) []Item {
	items := make([]Item, 0, len(c.Lines))
	for _, l := range c.Lines {
		ids := make([]int64, len(l.IngredientIDs))
		for i, id := range l.IngredientIDs {
			ids[i] = int64(id)
		}
		names := l.IngredientNames
		if names == nil {
			names = []string{}
		}
		items = append(items, Item{
			ProductID:       l.ProductID,
			ProductName:     l.ProductName,
			Quantity:        l.Quantity,
			UnitPrice:       l.UnitPrice,
			IngredientIDs:   ids,
			IngredientNames: names,
		})
	}
	return items
}

func (s *service) Get(ctx context.Context, id uint) (*Order, error) {
	return s.repo.GetByID(ctx, id)
}

// GetForUser hides other customers' orders behind ErrOrderNotFound.
func (s *service) GetForUser(ctx context.Context, userID, id uint) (*Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		logger.FromCtx(ctx).Warn("order requested by non-owner",
			zap.String("layer", "service"),
			zap.Uint("order_id", id),
			zap.Uint("owner_id", o.UserID),
		)
		return nil, ErrOrderNotFound
	}
	return o, nil
}

func (s *service) History(ctx context.Context, userID uint) ([]*Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) AdminList(ctx context.Context, filter AdminFilter, now time.Time) (*AdminList, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	q := filter.Resolve(now)
	orders, err := s.repo.ListAdmin(ctx, q)
	if err != nil {
		return nil, err
	}
	summary, err := s.repo.Summary(ctx, q)
	if err != nil {
		return nil, err
	}
	return &AdminList{Orders: orders, Summary: summary}, nil
}

func (s *service) UpdateStatus(ctx context.Context, id uint, req UpdateStatusRequest) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateStatus"),
		zap.Uint("order_id", id),
		zap.String("to", string(req.Status)),
	)

	if !req.Status.Valid() {
		log.Warn("unknown status")
		return nil, ErrInvalidStatus
	}

	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !o.Status.CanTransitionTo(req.Status) {
		log.Warn("transition rejected", zap.String("from", string(o.Status)))
		return nil, ErrInvalidTransition
	}

	if err := s.repo.UpdateStatus(ctx, id, o.Status, req.Status); err != nil {
		return nil, err
	}

	log.Info("order status updated",
		zap.String("from", string(o.Status)),
		zap.Bool("closed", req.Status.Terminal()),
	)
	o.Status = req.Status
	o.StatusLabel = o.Status.Label()
	return o, nil
}

// Repeat replaces c's contents with the products of a past order that can
// be ordered right now, with their original add-ons where still offered.
func (s *service) Repeat(ctx context.Context, userID, id uint, c *cart.Cart, now time.Time) (*RepeatResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Repeat"),
		zap.Uint("order_id", id),
	)

	o, err := s.GetForUser(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	c.Clear()
	res := &RepeatResult{Added: []string{}, Skipped: []string{}}

	for _, it := range o.Items {
		ids := make([]uint, len(it.IngredientIDs))
		for i, v := range it.IngredientIDs {
			ids[i] = uint(v)
		}

		_, err := s.carts.Add(ctx, c, cart.AddItemRequest{
			ProductID:     it.ProductID,
			Quantity:      it.Quantity,
			IngredientIDs: ids,
		}, now)
		switch {
		case errors.Is(err, cart.ErrProductUnavailable), errors.Is(err, cart.ErrProductNotFound):
			res.Skipped = append(res.Skipped, it.ProductName)
		case err != nil:
			log.Error("failed to refill cart", zap.Error(err))
			return nil, err
		default:
			res.Added = append(res.Added, it.ProductName)
		}
	}

	log.Info("order repeated",
		zap.Int("added", len(res.Added)),
		zap.Int("skipped", len(res.Skipped)),
	)
	return res, nil
}
