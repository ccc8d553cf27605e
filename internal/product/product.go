package product

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog record. Quantity is the remaining sellable stock.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Category    *string         `json:"category,omitempty"`
	Quantity    int             `json:"quantity"`
	CreatedAt   time.Time       `json:"createdAt"`
}

var ErrInvalidProduct = errors.New("invalid product")

// Validate rejects records that cannot be sold: no name or a negative price.
func (p Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.Join(ErrInvalidProduct, errors.New("name is required"))
	}
	if p.Price.IsNegative() {
		return errors.Join(ErrInvalidProduct, errors.New("price must be >= 0"))
	}
	return nil
}

// InStock reports whether at least one unit can be sold.
func (p Product) InStock() bool {
	return p.Quantity > 0
}
