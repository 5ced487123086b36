package order

import (
	"restaurante-be/internal/cart"

	"github.com/shopspring/decimal"
)

type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

var (
	paymentOptions = []Option{
		{Value: string(PaymentCash), Label: "Dinheiro"},
		{Value: string(PaymentCard), Label: "Cartão"},
		{Value: string(PaymentPix), Label: "PIX"},
	}
	deliveryOptions = []Option{
		{Value: string(DeliveryHome), Label: "Entrega"},
		{Value: string(DeliveryPickup), Label: "Retirada no local"},
	}
)

// Checkout is what a customer reviews before placing the order.
type Checkout struct {
	Cart             *cart.View `json:"cart"`
	PaymentMethods   []Option   `json:"payment_methods"`
	DeliveryTypes    []Option   `json:"delivery_types"`
	EstimatedMinutes int        `json:"estimated_minutes"`
}

func ToCheckout(c *cart.Cart) (*Checkout, error) {
	if c == nil || c.IsEmpty() {
		return nil, cart.ErrEmptyCart
	}
	return &Checkout{
		Cart:             cart.ToView(c),
		PaymentMethods:   paymentOptions,
		DeliveryTypes:    deliveryOptions,
		EstimatedMinutes: DefaultEstimatedMinutes,
	}, nil
}

// ItemsSubtotal is the pre-discount value of the order's frozen items.
func (o *Order) ItemsSubtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range o.Items {
		sum = sum.Add(it.Total())
	}
	return sum
}
