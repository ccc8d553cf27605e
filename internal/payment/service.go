package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/wichananm65/mitrro-backend/internal/order"
)

var (
	ErrMissingFields    = errors.New("missing required fields")
	ErrInvalidSignature = errors.New("invalid signature")
	ErrInvalidAmount    = errors.New("amount must be greater than 0")
)

// Orders is the part of the order service payments touch.
type Orders interface {
	Create(ctx context.Context, o order.Order) (order.Order, error)
	AttachGatewayOrder(ctx context.Context, orderID, gatewayOrderID string) error
	MarkPaid(ctx context.Context, gatewayOrderID, paymentID string) (order.Order, error)
}

// Confirmation is what the payment widget hands back on success.
type Confirmation struct {
	PaymentID      string `json:"paymentId"`
	GatewayOrderID string `json:"gatewayOrderId"`
	Signature      string `json:"signature"`
}

// Verifier checks gateway signatures and settles the matching order.
type Verifier struct {
	secret string
	orders Orders
}

func NewVerifier(secret string, orders Orders) *Verifier {
	return &Verifier{secret: secret, orders: orders}
}

// Verify marks the order paid/confirmed only when the signature matches.
// On any error the order is left as it was.
func (v *Verifier) Verify(ctx context.Context, in Confirmation) (order.Order, error) {
	in.PaymentID = strings.TrimSpace(in.PaymentID)
	in.GatewayOrderID = strings.TrimSpace(in.GatewayOrderID)
	in.Signature = strings.TrimSpace(in.Signature)
	if in.PaymentID == "" || in.GatewayOrderID == "" || in.Signature == "" {
		return order.Order{}, ErrMissingFields
	}
	if !ValidSignature(v.secret, in.GatewayOrderID, in.PaymentID, in.Signature) {
		return order.Order{}, ErrInvalidSignature
	}
	return v.orders.MarkPaid(ctx, in.GatewayOrderID, in.PaymentID)
}

// Buyer identifies who is paying; it is echoed to the widget as prefill.
type Buyer struct {
	UserID          string
	Name            string
	Email           string
	Phone           string
	ShippingAddress string
}

// Intent is a pending gateway payment tied to a stored order.
type Intent struct {
	OrderID        string `json:"orderId"`
	GatewayOrderID string `json:"gatewayOrderId"`
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	KeyID          string `json:"keyId"`
}

// Service opens gateway payments for callers that only know an amount.
type Service struct {
	gateway  Gateway
	orders   Orders
	keyID    string
	currency string
	logger   zerolog.Logger
}

func NewService(gateway Gateway, orders Orders, keyID, currency string, logger zerolog.Logger) *Service {
	return &Service{gateway: gateway, orders: orders, keyID: keyID, currency: currency, logger: logger}
}

// Open creates the gateway order first and then records a pending order
// that references it.
func (s *Service) Open(ctx context.Context, amount decimal.Decimal, buyer Buyer) (Intent, error) {
	if !amount.IsPositive() {
		return Intent{}, ErrInvalidAmount
	}
	gw, err := s.gateway.CreateOrder(ctx, OrderRequest{
		Amount:   MinorUnits(amount),
		Currency: s.currency,
		Notes:    buyerNotes(buyer),
	})
	if err != nil {
		return Intent{}, fmt.Errorf("create gateway order: %w", err)
	}

	var userID *string
	if buyer.UserID != "" {
		userID = &buyer.UserID
	}
	created, err := s.orders.Create(ctx, order.Order{
		UserID:          userID,
		CustomerName:    buyer.Name,
		CustomerEmail:   buyer.Email,
		CustomerPhone:   buyer.Phone,
		ShippingAddress: buyer.ShippingAddress,
		TotalAmount:     amount,
		PaymentMethod:   order.MethodGateway,
	})
	if err != nil {
		return Intent{}, fmt.Errorf("record order: %w", err)
	}
	if err := s.orders.AttachGatewayOrder(ctx, created.ID, gw.ID); err != nil {
		s.logger.Error().Err(err).Str("order_id", created.ID).Str("gateway_order_id", gw.ID).Msg("attach gateway order")
		return Intent{}, fmt.Errorf("attach gateway order: %w", err)
	}
	return Intent{
		OrderID:        created.ID,
		GatewayOrderID: gw.ID,
		Amount:         gw.Amount,
		Currency:       gw.Currency,
		KeyID:          s.keyID,
	}, nil
}

func buyerNotes(b Buyer) map[string]string {
	notes := map[string]string{}
	if b.Name != "" {
		notes["customer_name"] = b.Name
	}
	if b.Email != "" {
		notes["customer_email"] = b.Email
	}
	if len(notes) == 0 {
		return nil
	}
	return notes
}
