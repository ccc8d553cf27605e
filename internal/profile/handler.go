package profile

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/mitrro-backend/internal/auth"
	"github.com/wichananm65/mitrro-backend/internal/validate"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterProtectedRoutes(r fiber.Router) {
	r.Get("/api/v1/profile", h.getProfile)
	// PUT and PATCH both replace the editable fields
	r.Put("/api/v1/profile", h.updateProfile)
	r.Patch("/api/v1/profile", h.updateProfile)
}

// RegisterAdminRoutes expects r to be the admin group.
func (h *Handler) RegisterAdminRoutes(r fiber.Router) {
	r.Get("/profiles", h.listProfiles)
}

func (h *Handler) getProfile(c *fiber.Ctx) error {
	userID, err := auth.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	p, err := h.service.Get(c.UserContext(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "profile not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(p)
}

func (h *Handler) updateProfile(c *fiber.Ctx) error {
	userID, err := auth.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	payload := new(Update)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	p, err := h.service.Save(c.UserContext(), userID, *payload)
	if err != nil {
		var verr *validate.Error
		if errors.As(err, &verr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "validation failed", "details": verr.Details})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(p)
}

func (h *Handler) listProfiles(c *fiber.Ctx) error {
	items, err := h.service.List(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(items)
}
