package offer

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Offer is a discounted listing shown on the special offers page.
type Offer struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price"`
	DiscountedPrice decimal.Decimal `json:"discountedPrice"`
	Quantity        int             `json:"quantity"`
	Image           string          `json:"image"`
	CreatedAt       time.Time       `json:"createdAt"`
}

var ErrInvalidOffer = errors.New("invalid offer")

func (o Offer) Validate() error {
	switch {
	case strings.TrimSpace(o.Name) == "":
		return errors.Join(ErrInvalidOffer, errors.New("name is required"))
	case o.Price.IsNegative() || o.DiscountedPrice.IsNegative():
		return errors.Join(ErrInvalidOffer, errors.New("prices must be >= 0"))
	case o.DiscountedPrice.GreaterThan(o.Price):
		return errors.Join(ErrInvalidOffer, errors.New("discountedPrice must not exceed price"))
	case o.Quantity < 0:
		return errors.Join(ErrInvalidOffer, errors.New("quantity must be >= 0"))
	}
	return nil
}

// Savings is the amount taken off the regular price.
func (o Offer) Savings() decimal.Decimal {
	return o.Price.Sub(o.DiscountedPrice)
}
