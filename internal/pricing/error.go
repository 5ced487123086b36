package pricing

import "errors"

var (
	ErrCouponInvalid      = errors.New("Cupom inválido")
	ErrCouponOutOfPeriod  = errors.New("Cupom expirado")
	ErrCouponExhausted    = errors.New("Cupom esgotado")
	ErrCouponBelowMinimum = errors.New("valor mínimo do pedido não atingido")
)
