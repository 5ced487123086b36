package cart

import "errors"

var (
	// -- Validation & Input --
	ErrProductRequired    = errors.New("product is required")
	ErrInvalidQuantity    = errors.New("quantity must be between 1 and 99")
	ErrProductNotFound    = errors.New("Produto não encontrado")
	ErrProductUnavailable = errors.New("Produto indisponível no momento")

	// -- State --
	ErrLineNotFound = errors.New("cart item not found")
	ErrEmptyCart    = errors.New("Seu carrinho está vazio")
)
