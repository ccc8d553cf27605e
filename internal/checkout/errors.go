package checkout

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyCart          = errors.New("cart is empty, nothing to checkout")
	ErrCheckoutInProgress = errors.New("checkout already in progress for this cart")
	ErrIllegalTransition  = errors.New("illegal transition of checkout state")
	ErrUnknownMethod      = errors.New("unsupported payment method")
)

// InsufficientStockError names the first line whose quantity exceeds stock.
type InsufficientStockError struct {
	ProductID string
	Name      string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: %d available, %d requested", e.Name, e.Available, e.Requested)
}
