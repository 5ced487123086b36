package order

import (
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusReceived       Status = "recebido"
	StatusPreparing      Status = "em_preparo"
	StatusReady          Status = "pronto"
	StatusOutForDelivery Status = "saiu_para_entrega"
	StatusDelivered      Status = "entregue"
	StatusCancelled      Status = "cancelado"
)

var transitions = map[Status][]Status{
	StatusReceived:       {StatusPreparing, StatusCancelled},
	StatusPreparing:      {StatusReady, StatusCancelled},
	StatusReady:          {StatusOutForDelivery, StatusDelivered, StatusCancelled},
	StatusOutForDelivery: {StatusDelivered, StatusCancelled},
	StatusDelivered:      {},
	StatusCancelled:      {},
}

var statusLabels = map[Status]string{
	StatusReceived:       "Recebido",
	StatusPreparing:      "Em preparo",
	StatusReady:          "Pronto",
	StatusOutForDelivery: "Saiu para entrega",
	StatusDelivered:      "Entregue",
	StatusCancelled:      "Cancelado",
}

func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

func (s Status) Terminal() bool {
	return s.Valid() && len(transitions[s]) == 0
}

func (s Status) CanTransitionTo(next Status) bool {
	return slices.Contains(transitions[s], next)
}

func (s Status) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "dinheiro"
	PaymentCard PaymentMethod = "cartao"
	PaymentPix  PaymentMethod = "pix"
)

func (p PaymentMethod) Valid() bool {
	return p == PaymentCash || p == PaymentCard || p == PaymentPix
}

type DeliveryType string

const (
	DeliveryHome   DeliveryType = "entrega"
	DeliveryPickup DeliveryType = "retirada"
)

func (d DeliveryType) Valid() bool {
	return d == DeliveryHome || d == DeliveryPickup
}

const DefaultEstimatedMinutes = 30

type Order struct {
	ID              uint            `json:"id"`
	UserID          uint            `json:"user_id"`
	Username        string          `json:"username,omitempty"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	CouponCode      *string         `json:"coupon_code"`
	Status          Status          `json:"status"`
	StatusLabel     string          `json:"status_label"`
	PaymentMethod   PaymentMethod   `json:"payment_method"`
	DeliveryType    DeliveryType    `json:"delivery_type"`
	DeliveryAddress string          `json:"delivery_address,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	EstimatedTime   int             `json:"estimated_time"`
	CreatedAt       time.Time       `json:"created_at"`
	Items           []Item          `json:"items"`
}

type Item struct {
	ID              uint            `json:"id"`
	OrderID         uint            `json:"order_id"`
	ProductID       uint            `json:"product_id"`
	ProductName     string          `json:"product_name"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	IngredientIDs   []int64         `json:"-"`
	IngredientNames []string        `json:"ingredient_names"`
}

func (i Item) Total() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type PlaceOrderRequest struct {
	PaymentMethod   PaymentMethod `json:"payment_method"`
	DeliveryType    DeliveryType  `json:"delivery_type"`
	DeliveryAddress string        `json:"delivery_address"`
	CouponCode      string        `json:"coupon_code"`
	Notes           string        `json:"notes"`
}

func (r *PlaceOrderRequest) Validate() error {
	r.DeliveryAddress = strings.TrimSpace(r.DeliveryAddress)
	r.CouponCode = strings.TrimSpace(r.CouponCode)
	r.Notes = strings.TrimSpace(r.Notes)

	switch {
	case !r.PaymentMethod.Valid():
		return ErrInvalidPaymentMethod
	case !r.DeliveryType.Valid():
		return ErrInvalidDeliveryType
	case r.DeliveryType == DeliveryHome && r.DeliveryAddress == "":
		return ErrAddressRequired
	case len(r.Notes) > 500:
		return ErrNotesTooLong
	}

	if r.DeliveryType == DeliveryPickup {
		r.DeliveryAddress = ""
	}
	return nil
}

type UpdateStatusRequest struct {
	Status Status `json:"status"`
}

// Period names accepted by the admin order list.
const (
	PeriodAll   = ""
	PeriodToday = "today"
	PeriodWeek  = "week"
	PeriodMonth = "month"
)

type AdminFilter struct {
	Status Status
	Period string
}

func (f *AdminFilter) Validate() error {
	if f.Status != "" && !f.Status.Valid() {
		return ErrInvalidStatus
	}
	switch f.Period {
	case PeriodAll, PeriodToday, PeriodWeek, PeriodMonth:
		return nil
	}
	return ErrInvalidPeriod
}

// Query is an AdminFilter resolved against a clock.
type Query struct {
	Status Status
	Since  *time.Time
}

type Summary struct {
	Count   int             `json:"count"`
	Revenue decimal.Decimal `json:"revenue"`
	Pending int             `json:"pending"`
}

type AdminList struct {
	Orders  []*Order `json:"orders"`
	Summary *Summary `json:"summary"`
}

// RepeatResult reports which products of an old order made it back into the cart.
type RepeatResult struct {
	Added   []string `json:"added"`
	Skipped []string `json:"skipped"`
}
