package coupon

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"restaurante-be/internal/db"
	"restaurante-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context) ([]*Coupon, error)
	GetByID(ctx context.Context, id uint) (*Coupon, error)
	GetByCode(ctx context.Context, code string) (*Coupon, error)
	Create(ctx context.Context, req SaveCouponRequest) (*Coupon, error)
	Update(ctx context.Context, id uint, req SaveCouponRequest) (*Coupon, error)
	Delete(ctx context.Context, id uint) error
}

// Execer is satisfied by both *sql.DB and *sql.Tx.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Redeem consumes one use of an active coupon. It reports false when the
// coupon is gone, inactive or already exhausted, so callers can drop it
// from the order instead of over-redeeming.
func Redeem(ctx context.Context, exec Execer, code string) (bool, error) {
	res, err := exec.ExecContext(ctx, `
		UPDATE coupons
		SET used_count = used_count + 1
		WHERE code = $1 AND is_active = TRUE AND used_count < usage_limit`,
		code,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const selectCoupon = `
	SELECT id, code, discount_type, discount_value, min_order_value,
		usage_limit, used_count, start_date, end_date, is_active, created_at
	FROM coupons
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCoupon(row rowScanner) (*Coupon, error) {
	var (
		c          Coupon
		start, end sql.NullTime
	)
	err := row.Scan(
		&c.ID, &c.Code, &c.DiscountType, &c.DiscountValue, &c.MinOrderValue,
		&c.UsageLimit, &c.UsedCount, &start, &end, &c.IsActive, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.StartDate = nullTimePtr(start)
	c.EndDate = nullTimePtr(end)
	return &c, nil
}

func nullTimePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	return &t.Time
}

func (r *repository) List(ctx context.Context) ([]*Coupon, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "List"),
	)

	rows, err := r.db.QueryContext(ctx, selectCoupon+` ORDER BY created_at DESC, id DESC`)
	if err != nil {
		log.Error("failed to query coupons", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	coupons := []*Coupon{}
	for rows.Next() {
		c, err := scanCoupon(rows)
		if err != nil {
			log.Error("failed to scan coupon row", zap.Error(err))
			return nil, err
		}
		coupons = append(coupons, c)
	}
	return coupons, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Coupon, error) {
	c, err := scanCoupon(r.db.QueryRowContext(ctx, selectCoupon+` WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCouponNotFound
	}
	return c, err
}

func (r *repository) GetByCode(ctx context.Context, code string) (*Coupon, error) {
	c, err := scanCoupon(r.db.QueryRowContext(ctx, selectCoupon+` WHERE code = $1`, code))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCouponNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("failed to get coupon by code",
			zap.String("layer", "repository"),
			zap.String("code", code),
			zap.Error(err),
		)
		return nil, err
	}
	return c, nil
}

func (r *repository) Create(ctx context.Context, req SaveCouponRequest) (*Coupon, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.String("code", req.Code),
	)

	var id uint
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO coupons (code, discount_type, discount_value, min_order_value,
			usage_limit, start_date, end_date, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		req.Code, req.DiscountType, req.DiscountValue, req.MinOrderValue,
		req.UsageLimit, req.start, req.end, req.active(),
	).Scan(&id)
	if err != nil {
		if db.IsUniqueViolation(err) {
			log.Warn("duplicate coupon code")
			return nil, ErrCouponExists
		}
		log.Error("failed to insert coupon", zap.Error(err))
		return nil, err
	}

	log.Info("coupon created", zap.Uint("coupon_id", id))
	return r.GetByID(ctx, id)
}

// Update leaves used_count untouched.
func (r *repository) Update(ctx context.Context, id uint, req SaveCouponRequest) (*Coupon, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE coupons
		SET code = $1, discount_type = $2, discount_value = $3, min_order_value = $4,
			usage_limit = $5, start_date = $6, end_date = $7, is_active = $8
		WHERE id = $9`,
		req.Code, req.DiscountType, req.DiscountValue, req.MinOrderValue,
		req.UsageLimit, req.start, req.end, req.active(), id,
	)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, ErrCouponExists
		}
		logger.FromCtx(ctx).Error("failed to update coupon", zap.Uint("coupon_id", id), zap.Error(err))
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrCouponNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM coupons WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCouponNotFound
	}
	return nil
}
