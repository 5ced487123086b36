package pricing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

func (t DiscountType) Valid() bool {
	return t == DiscountPercentage || t == DiscountFixed
}

// CouponTerms is the subset of a coupon needed to price an order.
type CouponTerms struct {
	Code          string
	DiscountType  DiscountType
	DiscountValue decimal.Decimal
	MinOrderValue decimal.Decimal
	UsageLimit    int
	UsedCount     int
	IsActive      bool
	StartDate     *time.Time
	EndDate       *time.Time
}

type CouponResult struct {
	Valid    bool
	Discount decimal.Decimal
	NewTotal decimal.Decimal
	Message  string
	Reason   error
}

func reject(reason error, msg string, subtotal decimal.Decimal) CouponResult {
	return CouponResult{
		Valid:    false,
		Discount: decimal.Zero,
		NewTotal: subtotal,
		Message:  msg,
		Reason:   reason,
	}
}

// EvaluateCoupon checks c against subtotal at now (local time). A nil c is an
// unknown code. The discount never exceeds the subtotal.
func EvaluateCoupon(c *CouponTerms, subtotal decimal.Decimal, now time.Time) CouponResult {
	if c == nil || !c.IsActive {
		return reject(ErrCouponInvalid, ErrCouponInvalid.Error(), subtotal)
	}

	if !withinPeriod(c.StartDate, c.EndDate, now) {
		return reject(ErrCouponOutOfPeriod, ErrCouponOutOfPeriod.Error(), subtotal)
	}

	if c.UsedCount >= c.UsageLimit {
		return reject(ErrCouponExhausted, ErrCouponExhausted.Error(), subtotal)
	}

	if subtotal.LessThan(c.MinOrderValue) {
		return reject(ErrCouponBelowMinimum,
			fmt.Sprintf("Valor mínimo do pedido: %s", BRL(c.MinOrderValue)), subtotal)
	}

	discount := c.DiscountValue
	if c.DiscountType == DiscountPercentage {
		discount = subtotal.Mul(c.DiscountValue).Div(decimal.NewFromInt(100))
	}
	if discount.GreaterThan(subtotal) {
		discount = subtotal
	}
	if discount.IsNegative() {
		discount = decimal.Zero
	}

	return CouponResult{
		Valid:    true,
		Discount: discount,
		NewTotal: subtotal.Sub(discount),
		Message:  fmt.Sprintf("Cupom aplicado! Desconto de %s", BRL(discount)),
	}
}

// withinPeriod compares calendar dates, both bounds inclusive.
func withinPeriod(start, end *time.Time, now time.Time) bool {
	today := now.Format(time.DateOnly)
	if start != nil && today < start.Format(time.DateOnly) {
		return false
	}
	if end != nil && today > end.Format(time.DateOnly) {
		return false
	}
	return true
}
