package cart

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/wichananm65/mitrro-backend/internal/product"
)

const (
	SessionHeader = "X-Cart-Session"
	SessionCookie = "cart_session"
)

// Catalog is the slice of the product service the cart needs.
type Catalog interface {
	GetByID(ctx context.Context, id string) (product.Product, error)
}

type Handler struct {
	sessions *Sessions
	catalog  Catalog
}

func NewHandler(sessions *Sessions, catalog Catalog) *Handler {
	return &Handler{sessions: sessions, catalog: catalog}
}

// RegisterPublicRoutes registers the cart API. Carts belong to a session, not
// a user, so no token is needed.
func (h *Handler) RegisterPublicRoutes(r fiber.Router) {
	r.Get("/api/v1/cart", h.getCart)
	r.Delete("/api/v1/cart", h.clearCart)
	r.Post("/api/v1/cart/items", h.addItem)
	r.Patch("/api/v1/cart/items/:id", h.updateQuantity)
	r.Delete("/api/v1/cart/items/:id", h.removeItem)
	r.Post("/api/v1/cart/open", h.openCart)
	r.Post("/api/v1/cart/close", h.closeCart)
	r.Delete("/api/v1/cart/session", h.discardSession)
}

// ResolveSession returns the caller's cart session id from the header or
// cookie. When neither carries a valid id a new one is issued on the response.
func ResolveSession(c *fiber.Ctx) string {
	if id := existingSession(c); id != "" {
		return id
	}
	id := uuid.NewString()
	c.Set(SessionHeader, id)
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return id
}

func existingSession(c *fiber.Ctx) string {
	for _, v := range []string{c.Get(SessionHeader), c.Cookies(SessionCookie)} {
		if _, err := uuid.Parse(v); err == nil {
			return v
		}
	}
	return ""
}

func (h *Handler) store(c *fiber.Ctx) *Store {
	return h.sessions.Get(c.UserContext(), ResolveSession(c))
}

func (h *Handler) getCart(c *fiber.Ctx) error {
	return c.JSON(h.store(c).Snapshot())
}

type addItemRequest struct {
	ID string `json:"id"`
}

func (h *Handler) addItem(c *fiber.Ctx) error {
	payload := new(addItemRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.ID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "id is required"})
	}

	p, err := h.catalog.GetByID(c.UserContext(), payload.ID)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	st := h.store(c)
	st.AddItem(c.UserContext(), Item{ID: p.ID, Name: p.Name, Price: p.Price, Image: p.Image}, Max(p.Quantity))
	return c.JSON(st.Snapshot())
}

type quantityRequest struct {
	Quantity *int `json:"quantity"`
}

func (h *Handler) updateQuantity(c *fiber.Ctx) error {
	payload := new(quantityRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.Quantity == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "quantity is required"})
	}
	st := h.store(c)
	st.UpdateQuantity(c.UserContext(), c.Params("id"), *payload.Quantity)
	return c.JSON(st.Snapshot())
}

func (h *Handler) removeItem(c *fiber.Ctx) error {
	st := h.store(c)
	st.RemoveItem(c.UserContext(), c.Params("id"))
	return c.JSON(st.Snapshot())
}

func (h *Handler) clearCart(c *fiber.Ctx) error {
	st := h.store(c)
	st.Clear(c.UserContext())
	return c.JSON(st.Snapshot())
}

func (h *Handler) openCart(c *fiber.Ctx) error {
	st := h.store(c)
	st.Open()
	return c.JSON(st.Snapshot())
}

func (h *Handler) closeCart(c *fiber.Ctx) error {
	st := h.store(c)
	st.Close()
	return c.JSON(st.Snapshot())
}

func (h *Handler) discardSession(c *fiber.Ctx) error {
	if id := existingSession(c); id != "" {
		h.sessions.Discard(id)
	}
	c.ClearCookie(SessionCookie)
	return c.SendStatus(fiber.StatusNoContent)
}
