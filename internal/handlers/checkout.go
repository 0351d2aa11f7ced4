package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/example/merchstore/internal/checkout"
	"github.com/example/merchstore/internal/orders"
)

// CheckoutHandler places orders.
type CheckoutHandler struct {
	sessions *Sessions
	service  *checkout.Service
}

// NewCheckoutHandler constructs CheckoutHandler.
func NewCheckoutHandler(sessions *Sessions, service *checkout.Service) *CheckoutHandler {
	return &CheckoutHandler{sessions: sessions, service: service}
}

type checkoutRequest struct {
	FullName        string `json:"full_name"`
	WhatsappPhone   string `json:"whatsapp_phone"`
	DeliveryAddress string `json:"delivery_address"`
	OwnerName       string `json:"owner_name"`
	PromoCode       string `json:"promo_code"`
}

// Checkout turns the session cart into an order. The response is sent as soon
// as the order is logged; remote delivery continues in the background.
func (h *CheckoutHandler) Checkout(c *fiber.Ctx) error {
	var req checkoutRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	session, err := h.sessions.Open(c)
	if err != nil {
		return err
	}

	receipt, err := h.service.Submit(c.UserContext(), session, orders.Customer{
		FullName:        req.FullName,
		WhatsappPhone:   req.WhatsappPhone,
		DeliveryAddress: req.DeliveryAddress,
		OwnerName:       req.OwnerName,
		PromoCode:       req.PromoCode,
	})
	switch {
	case errors.Is(err, orders.ErrMissingCustomerField):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, checkout.ErrEmptyCart):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case err != nil:
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"order":   receipt.Order,
			"outcome": receipt.Outcome(),
			"sinks":   h.service.Sinks(),
			"csv_url": "/api/orders/last/csv",
		},
	})
}
