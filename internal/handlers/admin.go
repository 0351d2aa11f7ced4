package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/example/merchstore/internal/export"
	"github.com/example/merchstore/internal/logger"
	"github.com/example/merchstore/internal/orders"
	"github.com/example/merchstore/internal/services"
	"github.com/example/merchstore/internal/utils"
)

// AdminHandler manages admin-only endpoints.
type AdminHandler struct {
	orders  *orders.Log
	webhook *services.SheetsWebhook
	now     func() time.Time
	log     logger.Logger
}

// NewAdminHandler constructs AdminHandler. webhook may be unconfigured.
func NewAdminHandler(orderLog *orders.Log, webhook *services.SheetsWebhook, now func() time.Time, log logger.Logger) *AdminHandler {
	if now == nil {
		now = time.Now
	}
	return &AdminHandler{orders: orderLog, webhook: webhook, now: now, log: log}
}

// ListOrders returns the order log oldest first, paginated with ?page&limit.
func (h *AdminHandler) ListOrders(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	all := h.orders.ListAll(c.UserContext())

	var revenue float64
	for _, rec := range all {
		revenue += rec.Total
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    utils.Paginate(all, pg),
		"summary": fiber.Map{
			"total_orders":  len(all),
			"total_revenue": revenue,
		},
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    len(all),
		},
	})
}

// TodayOrders returns the orders of the current sequencing day.
func (h *AdminHandler) TodayOrders(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    h.orders.Today(c.UserContext()),
	})
}

// ExportOrders downloads the whole log as ?format=csv (default) or xlsx.
func (h *AdminHandler) ExportOrders(c *fiber.Ctx) error {
	all := h.orders.ListAll(c.UserContext())

	switch format := c.Query("format", "csv"); format {
	case "csv":
		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		c.Attachment(export.BulkFilename(h.now(), "csv"))
		return c.Send(export.OrdersCSV(all))
	case "xlsx":
		body, err := export.OrdersXLSX(all)
		if err != nil {
			return err
		}
		c.Set(fiber.HeaderContentType, export.XLSXContentType)
		c.Attachment(export.BulkFilename(h.now(), "xlsx"))
		return c.Send(body)
	default:
		return fiber.NewError(fiber.StatusBadRequest, "unsupported export format")
	}
}

// ClearOrders empties the all-time order log. Daily numbering is unaffected.
func (h *AdminHandler) ClearOrders(c *fiber.Ctx) error {
	if err := h.orders.ClearAll(c.UserContext()); err != nil {
		return err
	}
	h.log.Info("order log cleared by admin")

	return c.JSON(fiber.Map{"success": true})
}

// TestSheets sends a TEST- order to the spreadsheet webhook.
func (h *AdminHandler) TestSheets(c *fiber.Ctx) error {
	if h.webhook == nil || !h.webhook.Enabled() {
		return fiber.NewError(fiber.StatusServiceUnavailable, services.ErrWebhookNotConfigured.Error())
	}

	rec, err := h.webhook.Ping(c.UserContext(), h.now())
	if err != nil {
		h.log.Warn("sheets test submission failed", logger.Error(err))
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	}

	return c.JSON(fiber.Map{"success": true, "data": rec})
}

// SheetOrders returns the rows the spreadsheet webhook reports.
func (h *AdminHandler) SheetOrders(c *fiber.Ctx) error {
	if h.webhook == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, services.ErrWebhookNotConfigured.Error())
	}

	rows, err := h.webhook.FetchOrders(c.UserContext())
	if errors.Is(err, services.ErrWebhookNotConfigured) {
		return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
	}
	if err != nil {
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	}

	return c.JSON(fiber.Map{"success": true, "data": rows})
}
