package wishlist

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/mitrro-backend/internal/auth"
)

// Handler serves the signed-in user's wishlist.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterProtectedRoutes(r fiber.Router) {
	r.Get("/api/v1/wishlist", h.getWishlist)
	r.Post("/api/v1/wishlist", h.addProduct)
	r.Delete("/api/v1/wishlist/:productId", h.removeProduct)
}

type wishlistRequest struct {
	ProductID string `json:"productId"`
}

func (h *Handler) getWishlist(c *fiber.Ctx) error {
	userID, err := auth.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	products, err := h.service.Products(c.UserContext(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(products)
}

func (h *Handler) addProduct(c *fiber.Ctx) error {
	payload := new(wishlistRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid productId"})
	}
	userID, err := auth.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	if err := h.service.Add(c.UserContext(), userID, payload.ProductID); err != nil {
		switch {
		case errors.Is(err, ErrProductNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		case errors.Is(err, ErrAlreadyListed):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "product already in wishlist"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"productId": payload.ProductID})
}

func (h *Handler) removeProduct(c *fiber.Ctx) error {
	userID, err := auth.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	productID := c.Params("productId")
	if err := h.service.Remove(c.UserContext(), userID, productID); err != nil {
		if errors.Is(err, ErrNotListed) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not in wishlist"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
