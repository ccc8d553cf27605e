package order

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

func makeAppWithOrderHandler(h *Handler) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if v := c.Get("X-User-ID"); v != "" {
			c.Locals("user", &jwt.Token{Claims: jwt.MapClaims{"sub": v}})
		}
		return c.Next()
	})
	h.RegisterProtectedRoutes(app)
	h.RegisterAdminRoutes(app.Group("/api/v1/admin"))
	return app
}

func TestOrderRoutes(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewInMemoryRepository())
	mine, _ := svc.Create(ctx, newOrder("user-7"))
	_, _ = svc.Create(ctx, newOrder("user-8"))
	app := makeAppWithOrderHandler(NewHandler(svc))

	res, _ := app.Test(httptest.NewRequest("GET", "/api/v1/orders", nil))
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 without user, got %d", res.StatusCode)
	}

	req := httptest.NewRequest("GET", "/api/v1/orders", nil)
	req.Header.Set("X-User-ID", "user-7")
	res2, _ := app.Test(req)
	if res2.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res2.StatusCode)
	}
	b, _ := io.ReadAll(res2.Body)
	if !strings.Contains(string(b), mine.ID) || strings.Count(string(b), `"customerName"`) != 1 {
		t.Fatalf("expected only the caller's order, got %s", string(b))
	}

	res3, _ := app.Test(httptest.NewRequest("GET", "/api/v1/admin/orders", nil))
	b3, _ := io.ReadAll(res3.Body)
	if strings.Count(string(b3), `"customerName"`) != 2 {
		t.Fatalf("expected both orders for admin, got %s", string(b3))
	}

	patch := httptest.NewRequest("PATCH", "/api/v1/admin/orders/"+mine.ID+"/status", strings.NewReader(`{"status":"completed"}`))
	patch.Header.Set("Content-Type", "application/json")
	res4, _ := app.Test(patch)
	if res4.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for status update, got %d", res4.StatusCode)
	}
	b4, _ := io.ReadAll(res4.Body)
	if !strings.Contains(string(b4), `"status":"completed"`) {
		t.Fatalf("unexpected body %s", string(b4))
	}

	bad := httptest.NewRequest("PATCH", "/api/v1/admin/orders/"+mine.ID+"/status", strings.NewReader(`{"status":"lost"}`))
	bad.Header.Set("Content-Type", "application/json")
	res5, _ := app.Test(bad)
	if res5.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for unknown status, got %d", res5.StatusCode)
	}

	missing := httptest.NewRequest("PATCH", "/api/v1/admin/orders/6a1d8a0e-4b1c-4d5e-9f00-000000000000/status", strings.NewReader(`{"status":"canceled"}`))
	missing.Header.Set("Content-Type", "application/json")
	res6, _ := app.Test(missing)
	if res6.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", res6.StatusCode)
	}
}
