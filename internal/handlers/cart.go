package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/example/merchstore/internal/cart"
	"github.com/example/merchstore/internal/catalog"
)

// CartHandler exposes the session cart.
type CartHandler struct {
	sessions *Sessions
}

// NewCartHandler constructs CartHandler.
func NewCartHandler(sessions *Sessions) *CartHandler {
	return &CartHandler{sessions: sessions}
}

func cartResponse(c *fiber.Ctx, status int, cr *cart.Cart) error {
	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"items":      cr.Items(),
			"total":      cr.Total(),
			"item_count": cr.ItemCount(),
		},
	})
}

// GetCart returns the cart with its total and item count.
func (h *CartHandler) GetCart(c *fiber.Ctx) error {
	session, err := h.sessions.Open(c)
	if err != nil {
		return err
	}
	return cartResponse(c, fiber.StatusOK, session.Cart)
}

type addItemRequest struct {
	ProductID int    `json:"product_id" validate:"required,gt=0"`
	Size      string `json:"size" validate:"required"`
}

// AddItem adds one unit of a catalog product in a size.
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	var req addItemRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	product, ok := catalog.Find(req.ProductID)
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "product not found")
	}
	if !product.HasSize(req.Size) {
		return fiber.NewError(fiber.StatusBadRequest, "size is not available for this product")
	}

	session, err := h.sessions.Open(c)
	if err != nil {
		return err
	}

	item := cart.Item{
		ProductID: product.ID,
		Name:      product.Name,
		UnitPrice: product.Price,
		Image:     product.Image,
		Size:      req.Size,
	}
	// Persist failures are logged by the cart; the shopper still gets the new state.
	_ = session.Cart.Add(c.UserContext(), item)

	return cartResponse(c, fiber.StatusOK, session.Cart)
}

type updateItemRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

// UpdateItem sets the quantity of a line. Zero or less removes it.
func (h *CartHandler) UpdateItem(c *fiber.Ctx) error {
	productID, size, err := lineParams(c)
	if err != nil {
		return err
	}

	var req updateItemRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	session, err := h.sessions.Open(c)
	if err != nil {
		return err
	}
	_ = session.Cart.UpdateQuantity(c.UserContext(), productID, size, *req.Quantity)

	return cartResponse(c, fiber.StatusOK, session.Cart)
}

// RemoveItem deletes a line. Removing a missing line is not an error.
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	productID, size, err := lineParams(c)
	if err != nil {
		return err
	}

	session, err := h.sessions.Open(c)
	if err != nil {
		return err
	}
	_ = session.Cart.Remove(c.UserContext(), productID, size)

	return cartResponse(c, fiber.StatusOK, session.Cart)
}

// ClearCart empties the cart.
func (h *CartHandler) ClearCart(c *fiber.Ctx) error {
	session, err := h.sessions.Open(c)
	if err != nil {
		return err
	}
	_ = session.Cart.Clear(c.UserContext())

	return cartResponse(c, fiber.StatusOK, session.Cart)
}

func lineParams(c *fiber.Ctx) (int, string, error) {
	productID, err := strconv.Atoi(c.Params("productId"))
	if err != nil {
		return 0, "", fiber.NewError(fiber.StatusBadRequest, "invalid product id")
	}
	size := c.Params("size")
	if size == "" {
		return 0, "", fiber.NewError(fiber.StatusBadRequest, "size is required")
	}
	return productID, size, nil
}
