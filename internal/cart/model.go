package cart

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"restaurante-be/internal/pricing"

	"github.com/shopspring/decimal"
)

const MaxQuantity = 99

type Line struct {
	Key                    string          `json:"key"`
	ProductID              uint            `json:"product_id"`
	ProductName            string          `json:"product_name"`
	Quantity               int             `json:"quantity"`
	BasePrice              decimal.Decimal `json:"base_price"`
	AvailabilityAdjustment decimal.Decimal `json:"price_adjustment"`
	IngredientAdjustment   decimal.Decimal `json:"ingredient_adjustment"`
	UnitPrice              decimal.Decimal `json:"unit_price"`
	IngredientIDs          []uint          `json:"ingredient_ids"`
	IngredientNames        []string        `json:"ingredient_names"`
}

func (l *Line) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart keeps lines in insertion order.
type Cart struct {
	Lines []*Line `json:"lines"`
}

func New() *Cart {
	return &Cart{Lines: []*Line{}}
}

// Key identifies a product with one specific set of add-ons.
func Key(productID uint, ingredientIDs []uint) string {
	ids := slices.Clone(ingredientIDs)
	slices.Sort(ids)
	ids = slices.Compact(ids)

	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatUint(uint64(id), 10)
	}
	return fmt.Sprintf("%d_%s", productID, strings.Join(parts, "-"))
}

func (c *Cart) find(key string) int {
	return slices.IndexFunc(c.Lines, func(l *Line) bool { return l.Key == key })
}

// Add merges l into an existing line with the same key, keeping the
// existing line's prices.
func (c *Cart) Add(l *Line) *Line {
	if i := c.find(l.Key); i >= 0 {
		c.Lines[i].Quantity = min(c.Lines[i].Quantity+l.Quantity, MaxQuantity)
		return c.Lines[i]
	}
	c.Lines = append(c.Lines, l)
	return l
}

// SetQuantity updates a line; zero or less removes it.
func (c *Cart) SetQuantity(key string, qty int) error {
	i := c.find(key)
	if i < 0 {
		return ErrLineNotFound
	}
	if qty <= 0 {
		c.Lines = slices.Delete(c.Lines, i, i+1)
		return nil
	}
	if qty > MaxQuantity {
		return ErrInvalidQuantity
	}
	c.Lines[i].Quantity = qty
	return nil
}

func (c *Cart) Remove(key string) error {
	i := c.find(key)
	if i < 0 {
		return ErrLineNotFound
	}
	c.Lines = slices.Delete(c.Lines, i, i+1)
	return nil
}

func (c *Cart) Clear() {
	c.Lines = []*Line{}
}

func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

func (c *Cart) ItemCount() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

func (c *Cart) PricingLines() []pricing.Line {
	lines := make([]pricing.Line, len(c.Lines))
	for i, l := range c.Lines {
		lines[i] = pricing.Line{
			BasePrice:              l.BasePrice,
			AvailabilityAdjustment: l.AvailabilityAdjustment,
			IngredientAdjustments:  []decimal.Decimal{l.IngredientAdjustment},
			Quantity:               l.Quantity,
		}
	}
	return lines
}

func (c *Cart) Subtotal() decimal.Decimal {
	return pricing.Subtotal(c.PricingLines())
}

type AddItemRequest struct {
	ProductID     uint   `json:"product_id"`
	Quantity      int    `json:"quantity"`
	IngredientIDs []uint `json:"ingredient_ids"`
}

func (r *AddItemRequest) Validate() error {
	if r.ProductID == 0 {
		return ErrProductRequired
	}
	if r.Quantity == 0 {
		r.Quantity = 1
	}
	if r.Quantity < 1 || r.Quantity > MaxQuantity {
		return ErrInvalidQuantity
	}
	return nil
}

type UpdateItemRequest struct {
	Quantity int `json:"quantity"`
}
