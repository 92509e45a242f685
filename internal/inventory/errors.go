package inventory

import "errors"

// Store failures. The messages are shown to the user as is.
var (
	ErrNotFound          = errors.New("Produto não encontrado.")
	ErrInvalidQuantity   = errors.New("Informe uma quantidade inteira positiva.")
	ErrOutOfStock        = errors.New("Produto indisponível para compra.")
	ErrInsufficientStock = errors.New("Quantidade em estoque insuficiente.")
)
