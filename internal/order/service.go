package order

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus = errors.New("invalid order status")
	ErrInvalidOrder  = errors.New("invalid order")
)

// Service provides business logic for orders.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

// Create stores a new order as pending/pending with a fresh id.
func (s *Service) Create(ctx context.Context, o Order) (Order, error) {
	if !o.PaymentMethod.Valid() {
		return Order{}, errors.Join(ErrInvalidOrder, errors.New("unknown payment method"))
	}
	if o.TotalAmount.IsNegative() {
		return Order{}, errors.Join(ErrInvalidOrder, errors.New("total must be >= 0"))
	}
	if o.UserID != nil && *o.UserID == "" {
		o.UserID = nil
	}
	now := time.Now().UTC()
	o.ID = uuid.NewString()
	o.Status = StatusPending
	o.PaymentStatus = PaymentPending
	o.GatewayOrderID = nil
	o.PaymentID = nil
	o.CreatedAt = now
	o.UpdatedAt = now
	return s.repo.Create(ctx, o)
}

// AddItems snapshots lines onto an existing order.
func (s *Service) AddItems(ctx context.Context, orderID string, items []Item) ([]Item, error) {
	out := make([]Item, len(items))
	for i, it := range items {
		it.ID = uuid.NewString()
		it.OrderID = orderID
		out[i] = it
	}
	if err := s.repo.AddItems(ctx, orderID, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) AttachGatewayOrder(ctx context.Context, orderID, gatewayOrderID string) error {
	return s.repo.AttachGatewayOrder(ctx, orderID, gatewayOrderID)
}

func (s *Service) MarkPaid(ctx context.Context, gatewayOrderID, paymentID string) (Order, error) {
	return s.repo.MarkPaid(ctx, gatewayOrderID, paymentID)
}

func (s *Service) UpdateStatus(ctx context.Context, id string, status Status) (Order, error) {
	if !status.Valid() {
		return Order{}, ErrInvalidStatus
	}
	if _, err := uuid.Parse(id); err != nil {
		return Order{}, ErrNotFound
	}
	return s.repo.UpdateStatus(ctx, id, status)
}

func (s *Service) GetByID(ctx context.Context, id string) (Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Order{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Order, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	return s.repo.ListByUser(ctx, userID)
}
