package coupon

import (
	"strings"
	"time"

	"restaurante-be/internal/pricing"

	"github.com/shopspring/decimal"
)

type Coupon struct {
	ID            uint                 `json:"id"`
	Code          string               `json:"code"`
	DiscountType  pricing.DiscountType `json:"discount_type"`
	DiscountValue decimal.Decimal      `json:"discount_value"`
	MinOrderValue decimal.Decimal      `json:"min_order_value"`
	UsageLimit    int                  `json:"usage_limit"`
	UsedCount     int                  `json:"used_count"`
	StartDate     *time.Time           `json:"start_date"`
	EndDate       *time.Time           `json:"end_date"`
	IsActive      bool                 `json:"is_active"`
	CreatedAt     time.Time            `json:"created_at"`
}

func (c *Coupon) Terms() *pricing.CouponTerms {
	return &pricing.CouponTerms{
		Code:          c.Code,
		DiscountType:  c.DiscountType,
		DiscountValue: c.DiscountValue,
		MinOrderValue: c.MinOrderValue,
		UsageLimit:    c.UsageLimit,
		UsedCount:     c.UsedCount,
		IsActive:      c.IsActive,
		StartDate:     c.StartDate,
		EndDate:       c.EndDate,
	}
}

// NormalizeCode makes lookups insensitive to surrounding blanks and case.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

type SaveCouponRequest struct {
	Code          string               `json:"code"`
	DiscountType  pricing.DiscountType `json:"discount_type"`
	DiscountValue decimal.Decimal      `json:"discount_value"`
	MinOrderValue decimal.Decimal      `json:"min_order_value"`
	UsageLimit    int                  `json:"usage_limit"`
	StartDate     string               `json:"start_date"`
	EndDate       string               `json:"end_date"`
	IsActive      *bool                `json:"is_active"`

	start, end *time.Time
}

func parseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, ErrInvalidDate
	}
	return &t, nil
}

func (r *SaveCouponRequest) Validate() error {
	r.Code = NormalizeCode(r.Code)
	switch {
	case r.Code == "":
		return ErrCodeRequired
	case len(r.Code) > 50:
		return ErrCodeTooLong
	case !r.DiscountType.Valid():
		return ErrInvalidDiscountType
	case !r.DiscountValue.IsPositive():
		return ErrInvalidDiscount
	case r.DiscountType == pricing.DiscountPercentage && r.DiscountValue.GreaterThan(decimal.NewFromInt(100)):
		return ErrPercentageTooHigh
	case r.MinOrderValue.IsNegative():
		return ErrNegativeMinimum
	case r.UsageLimit < 1:
		return ErrInvalidUsageLimit
	}

	var err error
	if r.start, err = parseDate(r.StartDate); err != nil {
		return err
	}
	if r.end, err = parseDate(r.EndDate); err != nil {
		return err
	}
	if r.start != nil && r.end != nil && r.end.Before(*r.start) {
		return ErrInvalidPeriod
	}
	return nil
}

func (r *SaveCouponRequest) active() bool {
	return r.IsActive == nil || *r.IsActive
}

// Validation is the answer to a customer checking a code against a cart.
type Validation struct {
	Valid    bool             `json:"valid"`
	Discount *decimal.Decimal `json:"discount,omitempty"`
	NewTotal *decimal.Decimal `json:"new_total,omitempty"`
	Message  string           `json:"message"`
}

func ToValidation(res pricing.CouponResult) *Validation {
	v := &Validation{Valid: res.Valid, Message: res.Message}
	if res.Valid {
		v.Discount = &res.Discount
		v.NewTotal = &res.NewTotal
	}
	return v
}
