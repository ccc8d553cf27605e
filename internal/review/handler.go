package review

import (
	"errors"
	"strconv"

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
	r.Get("/api/v1/reviews", h.listReviews)
	r.Post("/api/v1/reviews", h.submitReview)
}

// RegisterAdminRoutes expects r to be the admin group.
func (h *Handler) RegisterAdminRoutes(r fiber.Router) {
	r.Patch("/reviews/:id/approve", h.approveReview)
}

func (h *Handler) listReviews(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit"))
	reviews, err := h.service.ListApproved(c.UserContext(), limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(reviews)
}

func (h *Handler) submitReview(c *fiber.Ctx) error {
	var rv Review
	if err := c.BodyParser(&rv); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	created, err := h.service.Submit(c.UserContext(), rv)
	if err != nil {
		var verr *validate.Error
		if errors.As(err, &verr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "validation failed", "details": verr.Details})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) approveReview(c *fiber.Ctx) error {
	rv, err := h.service.Approve(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "review not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(rv)
}
