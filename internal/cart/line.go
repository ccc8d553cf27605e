package cart

import "github.com/shopspring/decimal"

// Item is what callers hand to AddItem: the product fields copied into a line.
type Item struct {
	ID    string
	Name  string
	Price decimal.Decimal
	Image string
}

// Line is one product in the cart. A nil MaxQuantity means unbounded.
type Line struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Quantity    int             `json:"quantity"`
	MaxQuantity *int            `json:"maxQuantity,omitempty"`
}

// Subtotal is price × quantity.
func (l Line) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

func (l Line) clamp(q int) int {
	if l.MaxQuantity != nil && q > *l.MaxQuantity {
		q = *l.MaxQuantity
	}
	if q < 0 {
		q = 0
	}
	return q
}

// Max is a convenience for building a bounded maxQuantity.
func Max(n int) *int {
	return &n
}
