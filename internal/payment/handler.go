package payment

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/wichananm65/mitrro-backend/internal/auth"
	"github.com/wichananm65/mitrro-backend/internal/order"
	"github.com/wichananm65/mitrro-backend/internal/validate"
)

type Handler struct {
	service  *Service
	verifier *Verifier
}

func NewHandler(service *Service, verifier *Verifier) *Handler {
	return &Handler{service: service, verifier: verifier}
}

func (h *Handler) RegisterPublicRoutes(r fiber.Router) {
	r.Post("/api/v1/payments/orders", h.createOrder)
	r.Post("/api/v1/payments/verify", h.verify)
}

type createOrderRequest struct {
	Amount          decimal.Decimal `json:"amount"`
	CustomerName    string          `json:"customerName"`
	CustomerEmail   string          `json:"customerEmail" validate:"omitempty,email"`
	CustomerPhone   string          `json:"customerPhone"`
	ShippingAddress string          `json:"shippingAddress"`
}

func (h *Handler) createOrder(c *fiber.Ctx) error {
	payload := new(createOrderRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if err := validate.Struct(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	intent, err := h.service.Open(c.UserContext(), payload.Amount, Buyer{
		UserID:          auth.OptionalUserID(c),
		Name:            payload.CustomerName,
		Email:           payload.CustomerEmail,
		Phone:           payload.CustomerPhone,
		ShippingAddress: payload.ShippingAddress,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidAmount):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "amount is required"})
		case errors.Is(err, ErrGatewayUnavailable):
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"message": err.Error()})
		case errors.Is(err, ErrGatewayRejected):
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(intent)
}

func (h *Handler) verify(c *fiber.Ctx) error {
	payload := new(Confirmation)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	o, err := h.verifier.Verify(c.UserContext(), *payload)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingFields), errors.Is(err, ErrInvalidSignature):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
		case errors.Is(err, order.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "order not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
		}
	}
	return c.JSON(fiber.Map{"success": true, "order": o})
}
