package order

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/mitrro-backend/internal/auth"
)

// Handler exposes order history to customers and order management to admins.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterProtectedRoutes(r fiber.Router) {
	r.Get("/api/v1/orders", h.getMyOrders)
}

// RegisterAdminRoutes expects r to be the admin group.
func (h *Handler) RegisterAdminRoutes(r fiber.Router) {
	r.Get("/orders", h.listOrders)
	r.Patch("/orders/:id/status", h.updateStatus)
}

func (h *Handler) getMyOrders(c *fiber.Ctx) error {
	userID, err := auth.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	orders, err := h.service.ListByUser(c.UserContext(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(orders)
}

func (h *Handler) listOrders(c *fiber.Ctx) error {
	orders, err := h.service.List(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(orders)
}

type statusRequest struct {
	Status Status `json:"status"`
}

func (h *Handler) updateStatus(c *fiber.Ctx) error {
	payload := new(statusRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	updated, err := h.service.UpdateStatus(c.UserContext(), c.Params("id"), payload.Status)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidStatus):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "status must be one of pending, confirmed, processing, completed, canceled"})
		case errors.Is(err, ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(updated)
}
