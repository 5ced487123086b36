package report

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	topProductsLimit  = 5
	recentOrdersLimit = 10
)

// Windows are the dashboard's reporting boundaries, in UTC.
type Windows struct {
	TodayStart time.Time
	TodayEnd   time.Time
	WeekStart  time.Time
	MonthStart time.Time

	// MonthStartDate is MonthStart's local calendar date, for DATE columns.
	MonthStartDate string
}

// WindowsAt computes the boundaries for now on the restaurant's local
// calendar: today runs midnight to 23:59:59.999999 local, week and month
// trail now by 7 and 30 days.
func WindowsAt(now time.Time, loc *time.Location) Windows {
	local := now.In(loc)
	y, m, d := local.Date()

	return Windows{
		TodayStart: time.Date(y, m, d, 0, 0, 0, 0, loc).UTC(),
		TodayEnd:   time.Date(y, m, d, 23, 59, 59, 999999000, loc).UTC(),
		WeekStart:  local.AddDate(0, 0, -7).UTC(),
		MonthStart: local.AddDate(0, 0, -30).UTC(),

		MonthStartDate: local.AddDate(0, 0, -30).Format(time.DateOnly),
	}
}

type TopProduct struct {
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
	TotalSold int    `json:"total_sold"`
}

type RecentOrder struct {
	ID          uint            `json:"id"`
	Username    string          `json:"username"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
}

type Dashboard struct {
	OrdersToday          int             `json:"orders_today"`
	SalesToday           decimal.Decimal `json:"sales_today"`
	OrdersWeek           int             `json:"orders_week"`
	SalesMonth           decimal.Decimal `json:"sales_month"`
	PendingOrders        int             `json:"pending_orders"`
	TopProducts          []TopProduct    `json:"top_products"`
	EstimatedProfit      decimal.Decimal `json:"estimated_profit"`
	EstimatedProductCost decimal.Decimal `json:"estimated_product_cost"`
	MonthlyExpenses      decimal.Decimal `json:"monthly_expenses"`
	FinalBalance         decimal.Decimal `json:"final_balance"`
	RecentOrders         []RecentOrder   `json:"recent_orders"`
	GeneratedAt          time.Time       `json:"generated_at"`
}
