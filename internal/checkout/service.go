package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/wichananm65/mitrro-backend/internal/cart"
	"github.com/wichananm65/mitrro-backend/internal/order"
	"github.com/wichananm65/mitrro-backend/internal/payment"
	"github.com/wichananm65/mitrro-backend/internal/product"
	"github.com/wichananm65/mitrro-backend/internal/validate"
)

// Cart is the view of a cart store checkout needs.
type Cart interface {
	Snapshot() cart.Snapshot
	Clear(ctx context.Context)
}

type Stock interface {
	Stock(ctx context.Context, productID string) (int, error)
	DecrementStock(ctx context.Context, productID string, qty int) (int, error)
}

type Orders interface {
	Create(ctx context.Context, o order.Order) (order.Order, error)
	AddItems(ctx context.Context, orderID string, items []order.Item) ([]order.Item, error)
	AttachGatewayOrder(ctx context.Context, orderID, gatewayOrderID string) error
}

type Verifier interface {
	Verify(ctx context.Context, in payment.Confirmation) (order.Order, error)
}

// Customer is the checkout form.
type Customer struct {
	Name    string `json:"customerName" validate:"required"`
	Email   string `json:"customerEmail" validate:"required,email"`
	Phone   string `json:"customerPhone" validate:"required"`
	Address string `json:"shippingAddress" validate:"required"`
}

type Request struct {
	Customer
	PaymentMethod order.PaymentMethod `json:"paymentMethod" validate:"required,oneof=cash_on_delivery gateway"`
	UserID        string              `json:"-"`
}

type Result struct {
	State   State         `json:"state"`
	Order   order.Order   `json:"order"`
	Payment *WidgetConfig `json:"payment,omitempty"`
}

// Service runs checkouts. One cart can have only one checkout in flight.
type Service struct {
	stock      Stock
	orders     Orders
	verifier   Verifier
	strategies map[order.PaymentMethod]Strategy
	logger     zerolog.Logger

	mu       sync.Mutex
	inFlight map[Cart]struct{}
}

func NewService(stock Stock, orders Orders, verifier Verifier, logger zerolog.Logger, strategies ...Strategy) *Service {
	s := &Service{
		stock:      stock,
		orders:     orders,
		verifier:   verifier,
		strategies: make(map[order.PaymentMethod]Strategy, len(strategies)),
		logger:     logger,
		inFlight:   make(map[Cart]struct{}),
	}
	for _, st := range strategies {
		s.strategies[st.Method()] = st
	}
	return s
}

func (s *Service) acquire(c Cart) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[c]; busy {
		return false
	}
	s.inFlight[c] = struct{}{}
	return true
}

func (s *Service) release(c Cart) {
	s.mu.Lock()
	delete(s.inFlight, c)
	s.mu.Unlock()
}

// run tracks the state of one attempt.
type run struct {
	state  State
	logger zerolog.Logger
}

func (r *run) to(next State) error {
	if !CanTransitionTo(r.state, next) {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, r.state, next)
	}
	r.logger.Debug().Str("from", r.state.String()).Str("to", next.String()).Msg("checkout transition")
	r.state = next
	return nil
}

func (r *run) fail(err error) (Result, error) {
	if !r.state.IsTerminal() {
		r.state = StateFailed
	}
	r.logger.Warn().Err(err).Msg("checkout failed")
	return Result{State: r.state}, err
}

// Checkout validates the form and stock, writes the order and its items, and
// hands payment to the strategy for the chosen method. The cart is cleared
// only when the strategy finishes; on failure nothing is rolled back.
func (s *Service) Checkout(ctx context.Context, c Cart, req Request) (Result, error) {
	if !s.acquire(c) {
		return Result{State: StateIdle}, ErrCheckoutInProgress
	}
	defer s.release(c)

	r := &run{state: StateIdle, logger: s.logger}

	if err := validate.Struct(req); err != nil {
		return r.fail(err)
	}
	strategy, ok := s.strategies[req.PaymentMethod]
	if !ok {
		return r.fail(ErrUnknownMethod)
	}
	snap := c.Snapshot()
	lines := billableLines(snap.Items)
	if len(lines) == 0 {
		return r.fail(ErrEmptyCart)
	}

	if err := r.to(StateValidatingStock); err != nil {
		return r.fail(err)
	}
	if err := s.checkStock(ctx, lines); err != nil {
		return r.fail(err)
	}

	if err := r.to(StateCreatingOrder); err != nil {
		return r.fail(err)
	}
	o, err := s.createOrder(ctx, req, snap, lines)
	if err != nil {
		return r.fail(err)
	}
	r.logger = r.logger.With().Str("order_id", o.ID).Logger()

	if err := r.to(StateDispatchingPayment); err != nil {
		return r.fail(err)
	}
	outcome, err := strategy.Dispatch(ctx, o, lines, req.Customer)
	if err != nil {
		res, err := r.fail(err)
		res.Order = o
		return res, err
	}
	if !outcome.Completed {
		r.logger.Info().Str("method", string(req.PaymentMethod)).Msg("awaiting payment confirmation")
		return Result{State: r.state, Order: o, Payment: outcome.Widget}, nil
	}

	if err := r.to(StateSucceeded); err != nil {
		return r.fail(err)
	}
	c.Clear(ctx)
	r.logger.Info().Str("method", string(req.PaymentMethod)).Msg("checkout completed")
	return Result{State: r.state, Order: o}, nil
}

// Confirm settles a gateway checkout from the widget callback. The cart is
// cleared only when the signature checks out.
func (s *Service) Confirm(ctx context.Context, c Cart, in payment.Confirmation) (order.Order, error) {
	o, err := s.verifier.Verify(ctx, in)
	if err != nil {
		s.logger.Warn().Err(err).Str("gateway_order_id", in.GatewayOrderID).Msg("payment confirmation rejected")
		return order.Order{}, err
	}
	c.Clear(ctx)
	s.logger.Info().Str("order_id", o.ID).Msg("checkout completed")
	return o, nil
}

// checkStock reads stock one line at a time and stops at the first shortfall.
func (s *Service) checkStock(ctx context.Context, lines []cart.Line) error {
	for _, l := range lines {
		available, err := s.stock.Stock(ctx, l.ID)
		if errors.Is(err, product.ErrNotFound) {
			available, err = 0, nil
		}
		if err != nil {
			return fmt.Errorf("read stock for %s: %w", l.ID, err)
		}
		if l.Quantity > available {
			return &InsufficientStockError{ProductID: l.ID, Name: l.Name, Available: available, Requested: l.Quantity}
		}
	}
	return nil
}

func (s *Service) createOrder(ctx context.Context, req Request, snap cart.Snapshot, lines []cart.Line) (order.Order, error) {
	var userID *string
	if req.UserID != "" {
		userID = &req.UserID
	}
	o, err := s.orders.Create(ctx, order.Order{
		UserID:          userID,
		CustomerName:    req.Name,
		CustomerEmail:   req.Email,
		CustomerPhone:   req.Phone,
		ShippingAddress: req.Address,
		TotalAmount:     snap.TotalPrice,
		PaymentMethod:   req.PaymentMethod,
	})
	if err != nil {
		return order.Order{}, fmt.Errorf("create order: %w", err)
	}

	items := make([]order.Item, 0, len(lines))
	for _, l := range lines {
		items = append(items, order.Item{
			ProductID:   l.ID,
			ProductName: l.Name,
			Quantity:    l.Quantity,
			Price:       l.Price,
		})
	}
	saved, err := s.orders.AddItems(ctx, o.ID, items)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", o.ID).Msg("order items insert failed")
		return order.Order{}, fmt.Errorf("create order items: %w", err)
	}
	o.Items = saved
	return o, nil
}

// billableLines drops zero-quantity lines; they are kept in the cart but
// are not ordered.
func billableLines(lines []cart.Line) []cart.Line {
	out := make([]cart.Line, 0, len(lines))
	for _, l := range lines {
		if l.Quantity > 0 {
			out = append(out, l)
		}
	}
	return out
}
