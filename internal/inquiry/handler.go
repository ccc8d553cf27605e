package inquiry

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/mitrro-backend/internal/validate"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(r fiber.Router) {
	r.Post("/api/v1/brand-inquiries", h.submit)
}

// RegisterAdminRoutes expects r to be the admin group.
func (h *Handler) RegisterAdminRoutes(r fiber.Router) {
	r.Get("/brand-inquiries", h.list)
}

func (h *Handler) submit(c *fiber.Ctx) error {
	var form Form
	if err := c.BodyParser(&form); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "invalid request body"})
	}
	created, err := h.service.Submit(c.UserContext(), form)
	if err != nil {
		var verr *validate.Error
		if errors.As(err, &verr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": verr.Error(), "details": verr.Details})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "failed to submit inquiry"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "inquiry": created})
}

func (h *Handler) list(c *fiber.Ctx) error {
	items, err := h.service.List(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(items)
}
