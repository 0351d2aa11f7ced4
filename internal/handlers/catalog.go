package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/example/merchstore/internal/catalog"
)

// CatalogHandler serves the product catalog.
type CatalogHandler struct{}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler() *CatalogHandler {
	return &CatalogHandler{}
}

// ListProducts returns every product, optionally filtered by ?category=.
func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	products := catalog.All()
	if category := c.Query("category"); category != "" {
		filtered := products[:0]
		for _, p := range products {
			if p.Category == category {
				filtered = append(filtered, p)
			}
		}
		products = filtered
	}

	return c.JSON(fiber.Map{"success": true, "data": products})
}

// GetProduct returns a single product.
func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	product, ok := catalog.Find(id)
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "product not found")
	}

	return c.JSON(fiber.Map{"success": true, "data": product})
}
