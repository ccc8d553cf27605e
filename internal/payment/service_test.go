package payment

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wichananm65/mitrro-backend/internal/order"
)

const testSecret = "test-secret"

type fakeGateway struct {
	orders []OrderRequest
	err    error
}

func (f *fakeGateway) CreateOrder(_ context.Context, req OrderRequest) (GatewayOrder, error) {
	f.orders = append(f.orders, req)
	if f.err != nil {
		return GatewayOrder{}, f.err
	}
	return GatewayOrder{ID: "order_G1", Amount: req.Amount, Currency: req.Currency}, nil
}

func TestOpen_RecordsPendingGatewayOrder(t *testing.T) {
	ctx := context.Background()
	orders := order.NewService(order.NewInMemoryRepository())
	gw := &fakeGateway{}
	svc := NewService(gw, orders, "rzp_key", "INR", zerolog.Nop())

	intent, err := svc.Open(ctx, decimal.NewFromInt(200), Buyer{Name: "Asha", Email: "asha@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "order_G1", intent.GatewayOrderID)
	assert.Equal(t, int64(20000), intent.Amount)
	assert.Equal(t, "rzp_key", intent.KeyID)

	stored, err := orders.GetByID(ctx, intent.OrderID)
	require.NoError(t, err)
	assert.Equal(t, order.MethodGateway, stored.PaymentMethod)
	assert.Equal(t, order.PaymentPending, stored.PaymentStatus)
	require.NotNil(t, stored.GatewayOrderID)
	assert.Equal(t, "order_G1", *stored.GatewayOrderID)
}

func TestOpen_Failures(t *testing.T) {
	orders := order.NewService(order.NewInMemoryRepository())
	gw := &fakeGateway{err: errors.New("boom")}
	svc := NewService(gw, orders, "rzp_key", "INR", zerolog.Nop())

	_, err := svc.Open(context.Background(), decimal.Zero, Buyer{})
	assert.ErrorIs(t, err, ErrInvalidAmount)
	assert.Empty(t, gw.orders)

	_, err = svc.Open(context.Background(), decimal.NewFromInt(5), Buyer{})
	require.Error(t, err)
	all, _ := orders.List(context.Background())
	assert.Empty(t, all, "no order is recorded when the gateway fails")
}

func TestVerify(t *testing.T) {
	ctx := context.Background()
	orders := order.NewService(order.NewInMemoryRepository())
	created, err := orders.Create(ctx, order.Order{CustomerName: "Asha", TotalAmount: decimal.NewFromInt(200), PaymentMethod: order.MethodGateway})
	require.NoError(t, err)
	require.NoError(t, orders.AttachGatewayOrder(ctx, created.ID, "order_G1"))
	v := NewVerifier(testSecret, orders)

	_, err = v.Verify(ctx, Confirmation{PaymentID: "pay_1", GatewayOrderID: "order_G1"})
	assert.ErrorIs(t, err, ErrMissingFields)

	_, err = v.Verify(ctx, Confirmation{PaymentID: "pay_1", GatewayOrderID: "order_G1", Signature: Sign(testSecret, "order_G1", "pay_1")[1:] + "0"})
	assert.ErrorIs(t, err, ErrInvalidSignature)
	untouched, _ := orders.GetByID(ctx, created.ID)
	assert.Equal(t, order.PaymentPending, untouched.PaymentStatus)
	assert.Equal(t, order.StatusPending, untouched.Status)

	paid, err := v.Verify(ctx, Confirmation{PaymentID: "pay_1", GatewayOrderID: "order_G1", Signature: Sign(testSecret, "order_G1", "pay_1")})
	require.NoError(t, err)
	assert.Equal(t, order.PaymentPaid, paid.PaymentStatus)
	assert.Equal(t, order.StatusConfirmed, paid.Status)
}
