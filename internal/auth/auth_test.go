package auth

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

const testSecret = "test-secret"

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return tok
}

func whoAmI(c *fiber.Ctx) error {
	id, err := GetUserIDFromCtx(c)
	if err != nil {
		return c.SendString("guest")
	}
	return c.SendString(id)
}

func TestNew_RejectsMissingToken(t *testing.T) {
	app := fiber.New()
	app.Use(New(testSecret))
	app.Get("/me", whoAmI)

	res, _ := app.Test(httptest.NewRequest("GET", "/me", nil))
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", res.StatusCode)
	}

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+signed(t, jwt.MapClaims{"sub": "u-1", "exp": time.Now().Add(time.Hour).Unix()}))
	res2, _ := app.Test(req)
	if res2.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 with token, got %d", res2.StatusCode)
	}
	b, _ := io.ReadAll(res2.Body)
	if string(b) != "u-1" {
		t.Fatalf("expected subject u-1, got %q", string(b))
	}
}

func TestOptional_GuestAndUser(t *testing.T) {
	app := fiber.New()
	app.Use(Optional(testSecret))
	app.Get("/me", whoAmI)

	res, _ := app.Test(httptest.NewRequest("GET", "/me", nil))
	b, _ := io.ReadAll(res.Body)
	if res.StatusCode != fiber.StatusOK || string(b) != "guest" {
		t.Fatalf("expected guest pass-through, got %d %q", res.StatusCode, string(b))
	}

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+signed(t, jwt.MapClaims{"user_id": "legacy-7"}))
	res2, _ := app.Test(req)
	b2, _ := io.ReadAll(res2.Body)
	if string(b2) != "legacy-7" {
		t.Fatalf("expected user_id claim to be used, got %q", string(b2))
	}

	bad := httptest.NewRequest("GET", "/me", nil)
	bad.Header.Set("Authorization", "Bearer not.a.jwt")
	res3, _ := app.Test(bad)
	if res3.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 for malformed token, got %d", res3.StatusCode)
	}
}

func TestRequireAdmin(t *testing.T) {
	app := fiber.New()
	app.Use(New(testSecret), RequireAdmin())
	app.Get("/admin", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	user := httptest.NewRequest("GET", "/admin", nil)
	user.Header.Set("Authorization", "Bearer "+signed(t, jwt.MapClaims{"sub": "u-1", "role": "authenticated"}))
	res, _ := app.Test(user)
	if res.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", res.StatusCode)
	}

	admin := httptest.NewRequest("GET", "/admin", nil)
	admin.Header.Set("Authorization", "Bearer "+signed(t, jwt.MapClaims{"sub": "a-1", "role": RoleAdmin}))
	res2, _ := app.Test(admin)
	if res2.StatusCode != fiber.StatusNoContent {
		t.Fatalf("expected 204 for admin, got %d", res2.StatusCode)
	}
}
