package payment

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/wichananm65/mitrro-backend/internal/order"
)

func makeAppWithPaymentHandler(t *testing.T) (*fiber.App, *order.Service) {
	t.Helper()
	orders := order.NewService(order.NewInMemoryRepository())
	h := NewHandler(NewService(&fakeGateway{}, orders, "rzp_key", "INR", zerolog.Nop()), NewVerifier(testSecret, orders))
	app := fiber.New()
	h.RegisterPublicRoutes(app)
	return app, orders
}

func post(t *testing.T, app *fiber.App, path, body string) (int, string) {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	b, _ := io.ReadAll(res.Body)
	return res.StatusCode, string(b)
}

func TestPaymentRoutes_CreateOrder(t *testing.T) {
	app, _ := makeAppWithPaymentHandler(t)

	status, body := post(t, app, "/api/v1/payments/orders", `{"amount":"200","customerName":"Asha","customerEmail":"asha@example.com"}`)
	if status != fiber.StatusOK || !strings.Contains(body, `"gatewayOrderId":"order_G1"`) || !strings.Contains(body, `"amount":20000`) {
		t.Fatalf("unexpected response %d %s", status, body)
	}

	status, body = post(t, app, "/api/v1/payments/orders", `{"customerName":"Asha"}`)
	if status != fiber.StatusBadRequest || !strings.Contains(body, "amount is required") {
		t.Fatalf("expected 400 without amount, got %d %s", status, body)
	}

	status, _ = post(t, app, "/api/v1/payments/orders", `{"amount":"10","customerEmail":"not-an-email"}`)
	if status != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for bad email, got %d", status)
	}
}

func TestPaymentRoutes_Verify(t *testing.T) {
	app, orders := makeAppWithPaymentHandler(t)
	ctx := context.Background()
	created, _ := orders.Create(ctx, order.Order{CustomerName: "Asha", TotalAmount: decimal.NewFromInt(200), PaymentMethod: order.MethodGateway})
	_ = orders.AttachGatewayOrder(ctx, created.ID, "order_G9")

	status, body := post(t, app, "/api/v1/payments/verify", `{"paymentId":"pay_9","gatewayOrderId":"order_G9"}`)
	if status != fiber.StatusBadRequest || !strings.Contains(body, `"success":false`) {
		t.Fatalf("expected 400 for missing signature, got %d %s", status, body)
	}

	status, body = post(t, app, "/api/v1/payments/verify", `{"paymentId":"pay_9","gatewayOrderId":"order_G9","signature":"deadbeef"}`)
	if status != fiber.StatusBadRequest || !strings.Contains(body, "invalid signature") {
		t.Fatalf("expected 400 for tampered signature, got %d %s", status, body)
	}

	sig := Sign(testSecret, "order_G9", "pay_9")
	status, body = post(t, app, "/api/v1/payments/verify", `{"paymentId":"pay_9","gatewayOrderId":"order_G9","signature":"`+sig+`"}`)
	if status != fiber.StatusOK || !strings.Contains(body, `"success":true`) || !strings.Contains(body, `"paymentStatus":"paid"`) {
		t.Fatalf("expected verified order, got %d %s", status, body)
	}

	unknown := Sign(testSecret, "order_X", "pay_9")
	status, _ = post(t, app, "/api/v1/payments/verify", `{"paymentId":"pay_9","gatewayOrderId":"order_X","signature":"`+unknown+`"}`)
	if status != fiber.StatusNotFound {
		t.Fatalf("expected 404 for unknown gateway order, got %d", status)
	}
}
