package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"restaurante-be/internal/coupon"
	"restaurante-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	CreateOrderTx(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id uint) (*Order, error)
	ListByUser(ctx context.Context, userID uint) ([]*Order, error)
	ListAdmin(ctx context.Context, q Query) ([]*Order, error)
	Summary(ctx context.Context, q Query) (*Summary, error)
	UpdateStatus(ctx context.Context, id uint, from, to Status) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// CreateOrderTx writes the order, its items and the coupon redemption in one
// transaction. It fails with ErrCouponUnavailable, writing nothing, when the
// coupon was used up in the meantime.
func (r *repository) CreateOrderTx(ctx context.Context, o *Order) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateOrderTx"),
		zap.Uint("user_id", o.UserID),
		zap.Int("item_count", len(o.Items)),
	)

	log.Debug("starting order transaction")

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return err
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				log.Error("failed to rollback transaction", zap.Error(rbErr))
			}
		}
	}()

	if o.CouponCode != nil {
		ok, err := coupon.Redeem(ctx, tx, *o.CouponCode)
		if err != nil {
			log.Error("failed to redeem coupon", zap.Error(err))
			return err
		}
		if !ok {
			log.Warn("coupon exhausted before commit", zap.String("code", *o.CouponCode))
			return ErrCouponUnavailable
		}
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (
			user_id, total_amount, discount_amount, coupon_code, status,
			payment_method, delivery_type, delivery_address, notes,
			estimated_time, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`,
		o.UserID, o.TotalAmount, o.DiscountAmount, o.CouponCode, o.Status,
		o.PaymentMethod, o.DeliveryType, nullIfEmpty(o.DeliveryAddress), nullIfEmpty(o.Notes),
		o.EstimatedTime, o.CreatedAt,
	).Scan(&o.ID)
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return err
	}

	for i := range o.Items {
		item := &o.Items[i]
		item.OrderID = o.ID
		err = tx.QueryRowContext(ctx, `
			INSERT INTO order_items (
				order_id, product_id, product_name, quantity, unit_price,
				ingredient_ids, ingredient_names
			) VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id`,
			o.ID, item.ProductID, item.ProductName, item.Quantity, item.UnitPrice,
			pq.Array(item.IngredientIDs), pq.Array(item.IngredientNames),
		).Scan(&item.ID)
		if err != nil {
			log.Error("failed to insert order item",
				zap.Int("item_index", i),
				zap.Uint("product_id", item.ProductID),
				zap.Error(err),
			)
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit order transaction", zap.Error(err))
		return err
	}
	committed = true

	log.Info("order created", zap.Uint("order_id", o.ID))
	return nil
}

func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

const selectOrder = `
	SELECT o.id, o.user_id, u.username, o.total_amount, o.discount_amount, o.coupon_code,
		o.status, o.payment_method, o.delivery_type, COALESCE(o.delivery_address, ''),
		COALESCE(o.notes, ''), o.estimated_time, o.created_at
	FROM orders o
	JOIN users u ON u.id = o.user_id
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*Order, error) {
	var (
		o    Order
		code sql.NullString
	)
	err := row.Scan(
		&o.ID, &o.UserID, &o.Username, &o.TotalAmount, &o.DiscountAmount, &code,
		&o.Status, &o.PaymentMethod, &o.DeliveryType, &o.DeliveryAddress,
		&o.Notes, &o.EstimatedTime, &o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if code.Valid {
		o.CouponCode = &code.String
	}
	o.StatusLabel = o.Status.Label()
	o.Items = []Item{}
	return &o, nil
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx, selectOrder+` WHERE o.id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("failed to get order",
			zap.String("layer", "repository"),
			zap.Uint("order_id", id),
			zap.Error(err),
		)
		return nil, err
	}

	if err := r.attachItems(ctx, []*Order{o}); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uint) ([]*Order, error) {
	return r.list(ctx, selectOrder+` WHERE o.user_id = $1 ORDER BY o.created_at DESC, o.id DESC`, userID)
}

func buildWhere(q Query) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if q.Status != "" {
		args = append(args, q.Status)
		conds = append(conds, fmt.Sprintf("o.status = $%d", len(args)))
	}
	if q.Since != nil {
		args = append(args, *q.Since)
		conds = append(conds, fmt.Sprintf("o.created_at >= $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *repository) ListAdmin(ctx context.Context, q Query) ([]*Order, error) {
	where, args := buildWhere(q)
	return r.list(ctx, selectOrder+where+` ORDER BY o.created_at DESC, o.id DESC`, args...)
}

func (r *repository) list(ctx context.Context, query string, args ...any) ([]*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "list"),
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	orders := []*Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			log.Error("failed to scan order row", zap.Error(err))
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repository) attachItems(ctx context.Context, orders []*Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]int64, len(orders))
	byID := make(map[uint]*Order, len(orders))
	for i, o := range orders {
		ids[i] = int64(o.ID)
		byID[o.ID] = o
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, product_id, product_name, quantity, unit_price,
			ingredient_ids, ingredient_names
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY order_id, id`,
		pq.Array(ids),
	)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to query order items", zap.Error(err))
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var it Item
		err := rows.Scan(
			&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.Quantity, &it.UnitPrice,
			pq.Array(&it.IngredientIDs), pq.Array(&it.IngredientNames),
		)
		if err != nil {
			return err
		}
		if it.IngredientNames == nil {
			it.IngredientNames = []string{}
		}
		if o, ok := byID[it.OrderID]; ok {
			o.Items = append(o.Items, it)
		}
	}
	return rows.Err()
}

// Summary counts every matching order, but revenue leaves cancelled ones out.
func (r *repository) Summary(ctx context.Context, q Query) (*Summary, error) {
	where, args := buildWhere(q)

	var s Summary
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
			COALESCE(SUM(o.total_amount) FILTER (WHERE o.status <> 'cancelado'), 0),
			COUNT(*) FILTER (WHERE o.status IN ('recebido', 'em_preparo'))
		FROM orders o`+where,
		args...,
	).Scan(&s.Count, &s.Revenue, &s.Pending)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to summarize orders",
			zap.String("layer", "repository"),
			zap.Error(err),
		)
		return nil, err
	}
	return &s, nil
}

// UpdateStatus only applies when the order is still in from.
func (r *repository) UpdateStatus(ctx context.Context, id uint, from, to Status) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status = $1 WHERE id = $2 AND status = $3`,
		to, id, from,
	)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to update order status",
			zap.String("layer", "repository"),
			zap.Uint("order_id", id),
			zap.Error(err),
		)
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrStatusChanged
	}
	return nil
}
