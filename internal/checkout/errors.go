package checkout

import "errors"

var (
	ErrEmptyCart           = errors.New("cart is empty, nothing to checkout")
	ErrSessionNotFound     = errors.New("checkout session not found")
	ErrShippingIncomplete  = errors.New("required shipping fields are empty")
	IllegalTransitionError = errors.New("illegal transition of checkout step")
)
