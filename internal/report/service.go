package report

import (
	"context"
	"time"

	"restaurante-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	Dashboard(ctx context.Context, now time.Time) (*Dashboard, error)
}

type service struct {
	repo Repository
	loc  *time.Location
}

func NewService(repo Repository, loc *time.Location) Service {
	if loc == nil {
		loc = time.UTC
	}
	return &service{repo: repo, loc: loc}
}

// Dashboard recomputes every figure from the database on each call.
func (s *service) Dashboard(ctx context.Context, now time.Time) (*Dashboard, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Dashboard"),
	)

	start := time.Now()
	w := WindowsAt(now, s.loc)
	d := &Dashboard{GeneratedAt: now.UTC()}

	var err error
	if d.OrdersToday, d.SalesToday, err = s.repo.OrderTotals(ctx, w.TodayStart, &w.TodayEnd); err != nil {
		return nil, err
	}
	if d.OrdersWeek, _, err = s.repo.OrderTotals(ctx, w.WeekStart, nil); err != nil {
		return nil, err
	}
	if _, d.SalesMonth, err = s.repo.OrderTotals(ctx, w.MonthStart, nil); err != nil {
		return nil, err
	}
	if d.PendingOrders, err = s.repo.PendingCount(ctx); err != nil {
		log.Error("failed to count pending orders", zap.Error(err))
		return nil, err
	}
	if d.TopProducts, err = s.repo.TopProducts(ctx, topProductsLimit); err != nil {
		return nil, err
	}
	if d.EstimatedProfit, d.EstimatedProductCost, err = s.repo.ProductMargins(ctx, w.MonthStart); err != nil {
		return nil, err
	}
	if d.MonthlyExpenses, err = s.repo.ExpensesSince(ctx, w.MonthStartDate); err != nil {
		return nil, err
	}
	if d.RecentOrders, err = s.repo.RecentOrders(ctx, recentOrdersLimit); err != nil {
		return nil, err
	}

	d.FinalBalance = d.SalesMonth.Sub(d.MonthlyExpenses).Sub(d.EstimatedProductCost)

	log.Info("dashboard computed", zap.Duration("duration", time.Since(start)))
	return d, nil
}
