package checkout

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/wichananm65/mitrro-backend/internal/cart"
	"github.com/wichananm65/mitrro-backend/internal/order"
	"github.com/wichananm65/mitrro-backend/internal/payment"
)

// Outcome is what a strategy reports after dispatch. Completed means the
// checkout is finished; otherwise Widget tells the client how to pay.
type Outcome struct {
	Completed bool
	Widget    *WidgetConfig
}

// WidgetConfig is everything the hosted payment widget needs.
type WidgetConfig struct {
	KeyID          string  `json:"keyId"`
	GatewayOrderID string  `json:"gatewayOrderId"`
	Amount         int64   `json:"amount"`
	Currency       string  `json:"currency"`
	OrderID        string  `json:"orderId"`
	Prefill        Prefill `json:"prefill"`
}

type Prefill struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Contact string `json:"contact"`
}

// Strategy settles payment for an order that already exists with its items.
type Strategy interface {
	Method() order.PaymentMethod
	Dispatch(ctx context.Context, o order.Order, lines []cart.Line, customer Customer) (Outcome, error)
}

// CashOnDelivery takes stock out of the catalog and finishes immediately;
// the order stays pending/pending until an admin moves it.
type CashOnDelivery struct {
	stock  Stock
	logger zerolog.Logger
}

func NewCashOnDelivery(stock Stock, logger zerolog.Logger) *CashOnDelivery {
	return &CashOnDelivery{stock: stock, logger: logger}
}

func (s *CashOnDelivery) Method() order.PaymentMethod {
	return order.MethodCashOnDelivery
}

// Dispatch decrements stock line by line. A failure stops at that line and
// earlier decrements are kept.
func (s *CashOnDelivery) Dispatch(ctx context.Context, o order.Order, lines []cart.Line, _ Customer) (Outcome, error) {
	for _, l := range lines {
		remaining, err := s.stock.DecrementStock(ctx, l.ID, l.Quantity)
		if err != nil {
			s.logger.Error().Err(err).Str("order_id", o.ID).Str("product_id", l.ID).Msg("stock decrement failed")
			return Outcome{}, fmt.Errorf("decrement stock: %w", err)
		}
		s.logger.Debug().Str("product_id", l.ID).Int("remaining", remaining).Msg("stock decremented")
	}
	return Outcome{Completed: true}, nil
}

// GatewayPayment opens a payment with the external gateway and hands the
// widget configuration back; completion arrives later through Confirm.
type GatewayPayment struct {
	gateway  payment.Gateway
	orders   Orders
	keyID    string
	currency string
	logger   zerolog.Logger
}

func NewGatewayPayment(gateway payment.Gateway, orders Orders, keyID, currency string, logger zerolog.Logger) *GatewayPayment {
	return &GatewayPayment{gateway: gateway, orders: orders, keyID: keyID, currency: currency, logger: logger}
}

func (s *GatewayPayment) Method() order.PaymentMethod {
	return order.MethodGateway
}

func (s *GatewayPayment) Dispatch(ctx context.Context, o order.Order, _ []cart.Line, customer Customer) (Outcome, error) {
	gw, err := s.gateway.CreateOrder(ctx, payment.OrderRequest{
		Amount:   payment.MinorUnits(o.TotalAmount),
		Currency: s.currency,
		Receipt:  o.ID,
		Notes:    map[string]string{"order_id": o.ID},
	})
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", o.ID).Msg("gateway order creation failed")
		return Outcome{}, fmt.Errorf("create gateway order: %w", err)
	}
	if err := s.orders.AttachGatewayOrder(ctx, o.ID, gw.ID); err != nil {
		s.logger.Error().Err(err).Str("order_id", o.ID).Str("gateway_order_id", gw.ID).Msg("attach gateway order failed")
		return Outcome{}, fmt.Errorf("attach gateway order: %w", err)
	}
	return Outcome{Widget: &WidgetConfig{
		KeyID:          s.keyID,
		GatewayOrderID: gw.ID,
		Amount:         gw.Amount,
		Currency:       gw.Currency,
		OrderID:        o.ID,
		Prefill: Prefill{
			Name:    customer.Name,
			Email:   customer.Email,
			Contact: customer.Phone,
		},
	}}, nil
}
