package product

import (
	"strings"
	"time"

	"restaurante-be/internal/pricing"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID           uint                `json:"id"`
	Name         string              `json:"name"`
	Description  string              `json:"description"`
	Price        decimal.Decimal     `json:"price"`
	Cost         decimal.NullDecimal `json:"cost"`
	ImageURL     string              `json:"image_url"`
	IsAvailable  bool                `json:"is_available"`
	CategoryID   uint                `json:"category_id"`
	CategoryName string              `json:"category_name"`
	HasSales     bool                `json:"has_sales"`
	CreatedAt    time.Time           `json:"created_at"`

	Availabilities []Availability `json:"availabilities,omitempty"`
	Ingredients    []Ingredient   `json:"ingredients,omitempty"`
}

// Windows returns the availability rules in stored order.
func (p *Product) Windows() []pricing.Window {
	windows := make([]pricing.Window, 0, len(p.Availabilities))
	for _, a := range p.Availabilities {
		windows = append(windows, a.Window())
	}
	return windows
}

type Availability struct {
	ID              uint            `json:"id"`
	ProductID       uint            `json:"product_id"`
	DayOfWeek       string          `json:"day_of_week"`
	TimeOfDay       string          `json:"time_of_day"`
	PriceAdjustment decimal.Decimal `json:"price_adjustment"`
}

func (a Availability) Window() pricing.Window {
	return pricing.Window{
		ID:              a.ID,
		DayOfWeek:       a.DayOfWeek,
		TimeOfDay:       a.TimeOfDay,
		PriceAdjustment: a.PriceAdjustment,
	}
}

type Ingredient struct {
	ID              uint            `json:"id"`
	ProductID       uint            `json:"product_id"`
	Name            string          `json:"name"`
	PriceAdjustment decimal.Decimal `json:"price_adjustment"`
	IsRemovable     bool            `json:"is_removable"`
}

// AvailabilityStatus answers "can this be ordered right now, and at what adjustment".
type AvailabilityStatus struct {
	IsAvailable     bool            `json:"is_available"`
	PriceAdjustment decimal.Decimal `json:"price_adjustment"`
	CurrentDay      string          `json:"current_day"`
	CurrentTime     string          `json:"current_time"`
}

type ListFilter struct {
	CategoryID    *uint
	OnlyAvailable bool
	Limit         int
}

type SaveProductRequest struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Price       decimal.Decimal     `json:"price"`
	Cost        decimal.NullDecimal `json:"cost"`
	ImageURL    string              `json:"image_url"`
	CategoryID  uint                `json:"category_id"`
}

func (r *SaveProductRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	switch {
	case r.Name == "":
		return ErrNameRequired
	case len(r.Name) > 100:
		return ErrNameTooLong
	case r.Price.IsNegative():
		return ErrNegativePrice
	case r.Cost.Valid && r.Cost.Decimal.IsNegative():
		return ErrNegativeCost
	case r.CategoryID == 0:
		return ErrCategoryRequired
	}
	return nil
}

type AddAvailabilityRequest struct {
	DayOfWeek       string          `json:"day_of_week"`
	TimeOfDay       string          `json:"time_of_day"`
	PriceAdjustment decimal.Decimal `json:"price_adjustment"`
}

func (r *AddAvailabilityRequest) Validate() error {
	if !pricing.ValidDay(r.DayOfWeek) {
		return ErrInvalidDay
	}
	if !pricing.ValidTimeOfDay(r.TimeOfDay) {
		return ErrInvalidTimeOfDay
	}
	return nil
}

type AddIngredientRequest struct {
	Name            string          `json:"name"`
	PriceAdjustment decimal.Decimal `json:"price_adjustment"`
	IsRemovable     bool            `json:"is_removable"`
}

func (r *AddIngredientRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return ErrNameRequired
	}
	if len(r.Name) > 100 {
		return ErrNameTooLong
	}
	return nil
}
