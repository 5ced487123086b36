package pricing

import "github.com/shopspring/decimal"

// Line is the priced view of one cart or order line.
type Line struct {
	BasePrice              decimal.Decimal
	AvailabilityAdjustment decimal.Decimal
	IngredientAdjustments  []decimal.Decimal
	Quantity               int
}

func (l Line) IngredientAdjustment() decimal.Decimal {
	sum := decimal.Zero
	for _, adj := range l.IngredientAdjustments {
		sum = sum.Add(adj)
	}
	return sum
}

func (l Line) UnitPrice() decimal.Decimal {
	return l.BasePrice.Add(l.AvailabilityAdjustment).Add(l.IngredientAdjustment())
}

func (l Line) Total() decimal.Decimal {
	return l.UnitPrice().Mul(decimal.NewFromInt(int64(l.Quantity)))
}

func Subtotal(lines []Line) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.Total())
	}
	return sum
}

// BRL formats an amount the way notices show it, e.g. "R$ 30.00".
func BRL(d decimal.Decimal) string {
	return "R$ " + d.StringFixed(2)
}
