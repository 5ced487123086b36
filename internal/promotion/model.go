package promotion

import (
	"strings"
	"time"

	"restaurante-be/internal/pricing"

	"github.com/shopspring/decimal"
)

type Promotion struct {
	ID            uint                 `json:"id"`
	Name          string               `json:"name"`
	Description   string               `json:"description"`
	DiscountType  pricing.DiscountType `json:"discount_type"`
	DiscountValue decimal.Decimal      `json:"discount_value"`
	StartDate     time.Time            `json:"start_date"`
	EndDate       time.Time            `json:"end_date"`
	IsActive      bool                 `json:"is_active"`
}

// Running reports whether the promotion is active and today (in now's
// location) falls inside its date range, both ends inclusive.
func (p *Promotion) Running(now time.Time) bool {
	if !p.IsActive {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return !today.Before(p.StartDate) && !today.After(p.EndDate)
}

type SavePromotionRequest struct {
	Name          string               `json:"name"`
	Description   string               `json:"description"`
	DiscountType  pricing.DiscountType `json:"discount_type"`
	DiscountValue decimal.Decimal      `json:"discount_value"`
	StartDate     string               `json:"start_date"`
	EndDate       string               `json:"end_date"`
	IsActive      *bool                `json:"is_active"`

	start, end time.Time
}

func (r *SavePromotionRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)

	switch {
	case r.Name == "":
		return ErrNameRequired
	case len(r.Name) > 100:
		return ErrNameTooLong
	case !r.DiscountType.Valid():
		return ErrInvalidDiscountType
	case !r.DiscountValue.IsPositive():
		return ErrInvalidDiscount
	case r.DiscountType == pricing.DiscountPercentage && r.DiscountValue.GreaterThan(decimal.NewFromInt(100)):
		return ErrPercentageTooHigh
	case strings.TrimSpace(r.StartDate) == "" || strings.TrimSpace(r.EndDate) == "":
		return ErrDatesRequired
	}

	var err error
	if r.start, err = time.Parse(time.DateOnly, strings.TrimSpace(r.StartDate)); err != nil {
		return ErrInvalidDate
	}
	if r.end, err = time.Parse(time.DateOnly, strings.TrimSpace(r.EndDate)); err != nil {
		return ErrInvalidDate
	}
	if r.end.Before(r.start) {
		return ErrInvalidPeriod
	}
	return nil
}

func (r *SavePromotionRequest) active() bool {
	return r.IsActive == nil || *r.IsActive
}
