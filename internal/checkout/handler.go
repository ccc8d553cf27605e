package checkout

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/mitrro-backend/internal/auth"
	"github.com/wichananm65/mitrro-backend/internal/cart"
	"github.com/wichananm65/mitrro-backend/internal/order"
	"github.com/wichananm65/mitrro-backend/internal/payment"
	"github.com/wichananm65/mitrro-backend/internal/validate"
)

type Handler struct {
	service  *Service
	sessions *cart.Sessions
}

func NewHandler(service *Service, sessions *cart.Sessions) *Handler {
	return &Handler{service: service, sessions: sessions}
}

// RegisterPublicRoutes registers checkout for guests and signed-in users; a
// bearer token, when sent, attaches the order to that user.
func (h *Handler) RegisterPublicRoutes(r fiber.Router) {
	r.Post("/api/v1/checkout", h.checkout)
	r.Post("/api/v1/checkout/confirm", h.confirm)
}

func (h *Handler) checkout(c *fiber.Ctx) error {
	payload := new(Request)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	payload.UserID = auth.OptionalUserID(c)

	store := h.sessions.Get(c.UserContext(), cart.ResolveSession(c))
	result, err := h.service.Checkout(c.UserContext(), store, *payload)
	if err != nil {
		var stockErr *InsufficientStockError
		var formErr *validate.Error
		switch {
		case errors.As(err, &formErr):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		case errors.As(err, &stockErr):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message":   err.Error(),
				"productId": stockErr.ProductID,
				"available": stockErr.Available,
				"requested": stockErr.Requested,
			})
		case errors.Is(err, ErrEmptyCart), errors.Is(err, ErrUnknownMethod):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		case errors.Is(err, ErrCheckoutInProgress):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": err.Error()})
		case errors.Is(err, payment.ErrGatewayUnavailable):
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"message": err.Error(), "orderId": result.Order.ID})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error(), "orderId": result.Order.ID})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

func (h *Handler) confirm(c *fiber.Ctx) error {
	payload := new(payment.Confirmation)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	store := h.sessions.Get(c.UserContext(), cart.ResolveSession(c))
	o, err := h.service.Confirm(c.UserContext(), store, *payload)
	if err != nil {
		switch {
		case errors.Is(err, payment.ErrMissingFields), errors.Is(err, payment.ErrInvalidSignature):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		case errors.Is(err, order.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(fiber.Map{"state": StateSucceeded, "order": o})
}
