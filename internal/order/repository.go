package order

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"
)

var (
	ErrNotFound = errors.New("order not found")
)

// Repository defines persistence operations for orders.
type Repository interface {
	Create(ctx context.Context, o Order) (Order, error)
	AddItems(ctx context.Context, orderID string, items []Item) error
	AttachGatewayOrder(ctx context.Context, orderID, gatewayOrderID string) error
	// MarkPaid flips the order holding gatewayOrderID to paid/confirmed.
	MarkPaid(ctx context.Context, gatewayOrderID, paymentID string) (Order, error)
	UpdateStatus(ctx context.Context, id string, status Status) (Order, error)
	GetByID(ctx context.Context, id string) (Order, error)
	// List returns every order newest first, items included.
	List(ctx context.Context) ([]Order, error)
	ListByUser(ctx context.Context, userID string) ([]Order, error)
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu     sync.RWMutex
	orders map[string]Order
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{orders: make(map[string]Order)}
}

func (r *InMemoryRepository) Create(_ context.Context, o Order) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o.Items = []Item{}
	r.orders[o.ID] = o
	return o, nil
}

func (r *InMemoryRepository) AddItems(_ context.Context, orderID string, items []Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[orderID]
	if !ok {
		return ErrNotFound
	}
	o.Items = append(o.Items, items...)
	r.orders[orderID] = o
	return nil
}

func (r *InMemoryRepository) AttachGatewayOrder(_ context.Context, orderID, gatewayOrderID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[orderID]
	if !ok {
		return ErrNotFound
	}
	o.GatewayOrderID = &gatewayOrderID
	o.UpdatedAt = time.Now().UTC()
	r.orders[orderID] = o
	return nil
}

func (r *InMemoryRepository) MarkPaid(_ context.Context, gatewayOrderID, paymentID string) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, o := range r.orders {
		if o.GatewayOrderID == nil || *o.GatewayOrderID != gatewayOrderID {
			continue
		}
		o.PaymentStatus = PaymentPaid
		o.Status = StatusConfirmed
		o.PaymentID = &paymentID
		o.UpdatedAt = time.Now().UTC()
		r.orders[id] = o
		return o, nil
	}
	return Order{}, ErrNotFound
}

func (r *InMemoryRepository) UpdateStatus(_ context.Context, id string, status Status) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return Order{}, ErrNotFound
	}
	o.Status = status
	o.UpdatedAt = time.Now().UTC()
	r.orders[id] = o
	return o, nil
}

func (r *InMemoryRepository) GetByID(_ context.Context, id string) (Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.orders[id]
	if !ok {
		return Order{}, ErrNotFound
	}
	return o, nil
}

func (r *InMemoryRepository) List(_ context.Context) ([]Order, error) {
	return r.filter(func(Order) bool { return true }), nil
}

func (r *InMemoryRepository) ListByUser(_ context.Context, userID string) ([]Order, error) {
	return r.filter(func(o Order) bool { return o.UserID != nil && *o.UserID == userID }), nil
}

func (r *InMemoryRepository) filter(keep func(Order) bool) []Order {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Order, 0, len(r.orders))
	for _, o := range r.orders {
		if keep(o) {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}
