package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v2"
	"github.com/golang-jwt/jwt/v4"
)

// ContextKey is where the verified *jwt.Token is stored in fiber locals.
const ContextKey = "user"

// RoleAdmin is the value of the "role" claim that unlocks admin routes.
const RoleAdmin = "admin"

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid token")
)

// New returns middleware that rejects requests without a valid HS256 bearer token.
func New(secret string) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:    []byte(secret),
		SigningMethod: "HS256",
		ContextKey:    ContextKey,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
		},
	})
}

// Optional parses a bearer token when one is sent. Guests pass through with
// no token in locals; a malformed or expired token is still rejected.
func Optional(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
		if raw == "" {
			return c.Next()
		}
		token, err := ParseBearer(raw, secret)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": err.Error()})
		}
		c.Locals(ContextKey, token)
		return c.Next()
	}
}

// ParseBearer validates an "Authorization: Bearer <jwt>" header value.
func ParseBearer(header, secret string) (*jwt.Token, error) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, ErrInvalidToken
	}
	token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return token, nil
}

// RequireAdmin must run after New; it answers 403 unless the role claim is admin.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := claimsFromCtx(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
		}
		if role, _ := claims["role"].(string); role != RoleAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "admin access required"})
		}
		return c.Next()
	}
}

// GetUserIDFromCtx returns the subject of the verified token.
func GetUserIDFromCtx(c *fiber.Ctx) (string, error) {
	claims, ok := claimsFromCtx(c)
	if !ok {
		return "", ErrUnauthorized
	}
	for _, key := range []string{"sub", "user_id"} {
		if v, ok := claims[key].(string); ok && strings.TrimSpace(v) != "" {
			return v, nil
		}
	}
	return "", ErrUnauthorized
}

// OptionalUserID is GetUserIDFromCtx for routes that also serve guests.
func OptionalUserID(c *fiber.Ctx) string {
	id, err := GetUserIDFromCtx(c)
	if err != nil {
		return ""
	}
	return id
}

func claimsFromCtx(c *fiber.Ctx) (jwt.MapClaims, bool) {
	token, ok := c.Locals(ContextKey).(*jwt.Token)
	if !ok || token == nil {
		return nil, false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	return claims, ok
}
