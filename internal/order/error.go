package order

import "errors"

var (
	// -- Validation & Input --
	ErrInvalidPaymentMethod = errors.New("payment method must be dinheiro, cartao or pix")
	ErrInvalidDeliveryType  = errors.New("delivery type must be entrega or retirada")
	ErrAddressRequired      = errors.New("delivery address is required for entrega")
	ErrNotesTooLong         = errors.New("notes must be at most 500 characters")
	ErrInvalidStatus        = errors.New("unknown order status")
	ErrInvalidPeriod        = errors.New("period must be today, week or month")
	ErrInvalidTransition    = errors.New("status transition not allowed")

	// -- State --
	ErrOrderNotFound     = errors.New("order not found")
	ErrStatusChanged     = errors.New("order status changed concurrently")
	ErrCouponUnavailable = errors.New("coupon no longer redeemable")
)
