package coupon

import (
	"context"
	"errors"
	"time"

	"restaurante-be/internal/logger"
	"restaurante-be/internal/metrics"
	"restaurante-be/internal/pricing"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context) ([]*Coupon, error)
	Get(ctx context.Context, id uint) (*Coupon, error)
	Create(ctx context.Context, req SaveCouponRequest) (*Coupon, error)
	Update(ctx context.Context, id uint, req SaveCouponRequest) (*Coupon, error)
	Delete(ctx context.Context, id uint) error

	// Evaluate prices code against subtotal at now, in the restaurant's
	// local time. Unknown codes evaluate as invalid, not as an error.
	Evaluate(ctx context.Context, code string, subtotal decimal.Decimal, now time.Time) (pricing.CouponResult, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]*Coupon, error) {
	return s.repo.List(ctx)
}

func (s *service) Get(ctx context.Context, id uint) (*Coupon, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Create(ctx context.Context, req SaveCouponRequest) (*Coupon, error) {
	if err := req.Validate(); err != nil {
		logger.FromCtx(ctx).Warn("invalid coupon input",
			zap.String("layer", "service"),
			zap.String("method", "Create"),
			zap.Error(err),
		)
		return nil, err
	}
	return s.repo.Create(ctx, req)
}

func (s *service) Update(ctx context.Context, id uint, req SaveCouponRequest) (*Coupon, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, req)
}

func (s *service) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) Evaluate(ctx context.Context, code string, subtotal decimal.Decimal, now time.Time) (pricing.CouponResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Evaluate"),
	)

	code = NormalizeCode(code)
	var terms *pricing.CouponTerms
	if code != "" {
		c, err := s.repo.GetByCode(ctx, code)
		switch {
		case errors.Is(err, ErrCouponNotFound):
		case err != nil:
			log.Error("failed to load coupon", zap.Error(err))
			return pricing.CouponResult{}, err
		default:
			terms = c.Terms()
		}
	}

	res := pricing.EvaluateCoupon(terms, subtotal, now)
	if !res.Valid {
		metrics.CouponsRejected.Inc()
		log.Warn("coupon rejected",
			zap.String("code", code),
			zap.String("subtotal", subtotal.StringFixed(2)),
			zap.NamedError("reason", res.Reason),
		)
		return res, nil
	}

	log.Debug("coupon accepted",
		zap.String("code", code),
		zap.String("discount", res.Discount.StringFixed(2)),
	)
	return res, nil
}
