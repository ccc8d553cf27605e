package review

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeApp() *fiber.App {
	h := NewHandler(NewService(NewInMemoryRepository()))
	app := fiber.New()
	h.RegisterPublicRoutes(app)
	h.RegisterAdminRoutes(app.Group("/api/v1/admin"))
	return app
}

func listApproved(t *testing.T, app *fiber.App) []Review {
	t.Helper()
	res, err := app.Test(httptest.NewRequest("GET", "/api/v1/reviews", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, res.StatusCode)
	var out []Review
	require.NoError(t, json.NewDecoder(res.Body).Decode(&out))
	return out
}

func TestReviewLifecycle(t *testing.T) {
	app := makeApp()

	req := httptest.NewRequest("POST", "/api/v1/reviews", strings.NewReader(`{"customerName":" Asha ","rating":5,"comment":"Fast delivery","approved":true}`))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, res.StatusCode)

	var created Review
	require.NoError(t, json.NewDecoder(res.Body).Decode(&created))
	assert.Equal(t, "Asha", created.CustomerName)
	assert.False(t, created.Approved, "submitted reviews wait for moderation")
	assert.Empty(t, listApproved(t, app))

	res, err = app.Test(httptest.NewRequest("PATCH", "/api/v1/admin/reviews/"+created.ID+"/approve", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, res.StatusCode)

	got := listApproved(t, app)
	require.Len(t, got, 1)
	assert.Equal(t, created.ID, got[0].ID)
}

func TestSubmitReview_Invalid(t *testing.T) {
	app := makeApp()
	for _, body := range []string{
		`{"customerName":"Ravi","rating":0,"comment":"ok"}`,
		`{"customerName":"Ravi","rating":6,"comment":"ok"}`,
		`{"customerName":"  ","rating":4,"comment":"ok"}`,
		`{"customerName":"Ravi","rating":4,"comment":""}`,
	} {
		req := httptest.NewRequest("POST", "/api/v1/reviews", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		res, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, res.StatusCode, body)
	}
}

func TestApproveReview_NotFound(t *testing.T) {
	app := makeApp()
	for _, id := range []string{"nope", "3f0c7b8e-1111-4222-8333-944455556666"} {
		res, err := app.Test(httptest.NewRequest("PATCH", "/api/v1/admin/reviews/"+id+"/approve", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, res.StatusCode)
	}
}
