package report

import (
	"context"
	"database/sql"
	"time"

	"restaurante-be/internal/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Repository interface {
	// OrderTotals counts non-cancelled orders created in [from, to] and sums
	// their totals. A nil to leaves the range open.
	OrderTotals(ctx context.Context, from time.Time, to *time.Time) (int, decimal.Decimal, error)
	PendingCount(ctx context.Context) (int, error)
	TopProducts(ctx context.Context, limit int) ([]TopProduct, error)
	// ProductMargins returns the gross margin and the product cost of items
	// sold in non-cancelled orders since from. Missing costs count as zero.
	ProductMargins(ctx context.Context, from time.Time) (profit, cost decimal.Decimal, err error)
	// ExpensesSince sums expenses dated on or after the YYYY-MM-DD date from.
	ExpensesSince(ctx context.Context, from string) (decimal.Decimal, error)
	RecentOrders(ctx context.Context, limit int) ([]RecentOrder, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) log(ctx context.Context, method string) *zap.Logger {
	return logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", method),
	)
}

func (r *repository) OrderTotals(ctx context.Context, from time.Time, to *time.Time) (int, decimal.Decimal, error) {
	var (
		count int
		sum   decimal.Decimal
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(total_amount), 0)
		FROM orders
		WHERE status <> 'cancelado'
			AND created_at >= $1
			AND ($2::timestamptz IS NULL OR created_at <= $2)`,
		from, to,
	).Scan(&count, &sum)
	if err != nil {
		r.log(ctx, "OrderTotals").Error("failed to total orders", zap.Error(err))
		return 0, decimal.Zero, err
	}
	return count, sum, nil
}

func (r *repository) PendingCount(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM orders WHERE status IN ('recebido', 'em_preparo')`,
	).Scan(&n)
	return n, err
}

func (r *repository) TopProducts(ctx context.Context, limit int) ([]TopProduct, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT p.id, p.name, SUM(oi.quantity) AS total_sold
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		GROUP BY p.id, p.name
		ORDER BY total_sold DESC, p.id ASC
		LIMIT $1`,
		limit,
	)
	if err != nil {
		r.log(ctx, "TopProducts").Error("failed to query top products", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	top := []TopProduct{}
	for rows.Next() {
		var t TopProduct
		if err := rows.Scan(&t.ProductID, &t.Name, &t.TotalSold); err != nil {
			return nil, err
		}
		top = append(top, t)
	}
	return top, rows.Err()
}

func (r *repository) ProductMargins(ctx context.Context, from time.Time) (decimal.Decimal, decimal.Decimal, error) {
	var profit, cost decimal.Decimal
	err := r.db.QueryRowContext(ctx, `
		SELECT
			COALESCE(SUM((oi.unit_price - COALESCE(p.cost, 0)) * oi.quantity), 0),
			COALESCE(SUM(COALESCE(p.cost, 0) * oi.quantity), 0)
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		JOIN orders o ON o.id = oi.order_id
		WHERE o.created_at >= $1 AND o.status <> 'cancelado'`,
		from,
	).Scan(&profit, &cost)
	if err != nil {
		r.log(ctx, "ProductMargins").Error("failed to compute margins", zap.Error(err))
		return decimal.Zero, decimal.Zero, err
	}
	return profit, cost, nil
}

func (r *repository) ExpensesSince(ctx context.Context, from string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE date >= $1::date`,
		from,
	).Scan(&sum)
	if err != nil {
		r.log(ctx, "ExpensesSince").Error("failed to sum expenses", zap.Error(err))
		return decimal.Zero, err
	}
	return sum, nil
}

func (r *repository) RecentOrders(ctx context.Context, limit int) ([]RecentOrder, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT o.id, u.username, o.total_amount, o.status, o.created_at
		FROM orders o
		JOIN users u ON u.id = o.user_id
		ORDER BY o.created_at DESC, o.id DESC
		LIMIT $1`,
		limit,
	)
	if err != nil {
		r.log(ctx, "RecentOrders").Error("failed to query recent orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	recent := []RecentOrder{}
	for rows.Next() {
		var o RecentOrder
		if err := rows.Scan(&o.ID, &o.Username, &o.TotalAmount, &o.Status, &o.CreatedAt); err != nil {
			return nil, err
		}
		recent = append(recent, o)
	}
	return recent, rows.Err()
}
