package product

import (
	"restaurante-be/internal/pricing"

	"github.com/shopspring/decimal"
)

// MenuItem is a product as a customer sees it at a given moment.
type MenuItem struct {
	ID              uint            `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	ImageURL        string          `json:"image_url"`
	CategoryID      uint            `json:"category_id"`
	CategoryName    string          `json:"category_name"`
	BasePrice       decimal.Decimal `json:"base_price"`
	PriceAdjustment decimal.Decimal `json:"price_adjustment"`
	CurrentPrice    decimal.Decimal `json:"current_price"`
	Ingredients     []Ingredient    `json:"ingredients"`
}

func ToMenuItem(p *Product, avail pricing.Availability) *MenuItem {
	ingredients := p.Ingredients
	if ingredients == nil {
		ingredients = []Ingredient{}
	}
	return &MenuItem{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		ImageURL:        p.ImageURL,
		CategoryID:      p.CategoryID,
		CategoryName:    p.CategoryName,
		BasePrice:       p.Price,
		PriceAdjustment: avail.PriceAdjustment,
		CurrentPrice:    p.Price.Add(avail.PriceAdjustment),
		Ingredients:     ingredients,
	}
}

func ToAvailabilityStatus(avail pricing.Availability) *AvailabilityStatus {
	return &AvailabilityStatus{
		IsAvailable:     avail.Available,
		PriceAdjustment: avail.PriceAdjustment,
		CurrentDay:      avail.Slot.Day,
		CurrentTime:     avail.Slot.Time,
	}
}
