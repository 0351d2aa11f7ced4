package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/merchstore/internal/export"
	"github.com/example/merchstore/internal/middleware"
	"github.com/example/merchstore/internal/orders"
)

// OrderHandler serves the confirmation view of a session.
type OrderHandler struct {
	sessions *Sessions
	log      *orders.Log
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(sessions *Sessions, log *orders.Log) *OrderHandler {
	return &OrderHandler{sessions: sessions, log: log}
}

func (h *OrderHandler) lastOrder(c *fiber.Ctx) (orders.Record, error) {
	id, ok := middleware.GetIdentity(c)
	if !ok {
		return orders.Record{}, fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	rec, found := h.log.Last(c.UserContext(), h.sessions.Store(id.SessionID))
	if !found {
		return orders.Record{}, fiber.NewError(fiber.StatusNotFound, "no order placed yet")
	}
	return rec, nil
}

// LastOrder returns the most recent order placed in this session.
func (h *OrderHandler) LastOrder(c *fiber.Ctx) error {
	rec, err := h.lastOrder(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": rec})
}

// LastOrderCSV downloads the most recent order as order_<number>.csv.
func (h *OrderHandler) LastOrderCSV(c *fiber.Ctx) error {
	rec, err := h.lastOrder(c)
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Attachment(export.OrderFilename(rec))
	return c.Send(export.OrderCSV(rec))
}
