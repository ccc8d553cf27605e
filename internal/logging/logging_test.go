package logging

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_LevelFallback(t *testing.T) {
	var buf bytes.Buffer
	logger := newWithWriter(&buf, "not-a-level")
	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())

	logger = newWithWriter(&buf, "debug")
	assert.Equal(t, zerolog.DebugLevel, logger.GetLevel())
}

func TestMiddleware_LogsRequest(t *testing.T) {
	var buf bytes.Buffer
	logger := newWithWriter(&buf, "info")

	app := fiber.New()
	app.Use(Middleware(logger))
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusTeapot).SendString("pong")
	})

	res, err := app.Test(httptest.NewRequest("GET", "/ping?x=1", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTeapot, res.StatusCode)

	line := strings.TrimSpace(buf.String())
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &entry))
	assert.Equal(t, "GET", entry["method"])
	assert.Equal(t, "/ping?x=1", entry["url"])
	assert.EqualValues(t, fiber.StatusTeapot, entry["status"])
	assert.Equal(t, "request", entry["message"])
}
