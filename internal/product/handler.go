package product

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(r fiber.Router) {
	r.Get("/api/v1/products", h.getProducts)
	r.Get("/api/v1/products/:id", h.getProduct)
}

// RegisterAdminRoutes expects r to be the admin group (already role-guarded).
func (h *Handler) RegisterAdminRoutes(r fiber.Router) {
	r.Post("/products", h.createProduct)
	r.Put("/products/:id/stock", h.setStock)
}

func (h *Handler) getProducts(c *fiber.Ctx) error {
	products, err := h.service.List(c.UserContext(), c.Query("category"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(products)
}

func (h *Handler) getProduct(c *fiber.Ctx) error {
	p, err := h.service.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(p)
}

type createProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Category    *string         `json:"category,omitempty"`
	Quantity    int             `json:"quantity"`
}

func (h *Handler) createProduct(c *fiber.Ctx) error {
	payload := new(createProductRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	created, err := h.service.Create(c.UserContext(), Product{
		Name:        payload.Name,
		Description: payload.Description,
		Price:       payload.Price,
		Image:       payload.Image,
		Category:    payload.Category,
		Quantity:    payload.Quantity,
	})
	if err != nil {
		if errors.Is(err, ErrInvalidProduct) || errors.Is(err, ErrInvalidQuantity) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

type stockRequest struct {
	Quantity *int `json:"quantity"`
}

func (h *Handler) setStock(c *fiber.Ctx) error {
	payload := new(stockRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.Quantity == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "quantity is required"})
	}

	id := c.Params("id")
	if err := h.service.SetStock(c.UserContext(), id, *payload.Quantity); err != nil {
		switch {
		case errors.Is(err, ErrInvalidQuantity):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		case errors.Is(err, ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(fiber.Map{"id": id, "quantity": *payload.Quantity})
}
