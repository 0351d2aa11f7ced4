package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/example/merchstore/internal/export"
	"github.com/example/merchstore/internal/orders"
)

// Values the spreadsheet expects when optional fields are blank.
const (
	webhookOwnerFallback = "Не указано"
	webhookPromoFallback = "Нет"
	webhookStatusNew     = "Новый"
)

// ErrWebhookNotConfigured is returned by admin helpers when no URL is set.
var ErrWebhookNotConfigured = errors.New("sheets webhook URL is not configured")

// SheetsWebhook posts orders to the spreadsheet web app as form fields.
// The response body is never read; a non-2xx status counts as a failure.
type SheetsWebhook struct {
	url    string
	client *http.Client
}

// NewSheetsWebhook creates a SheetsWebhook for endpoint.
func NewSheetsWebhook(endpoint string, timeout time.Duration) *SheetsWebhook {
	return &SheetsWebhook{
		url:    strings.TrimSpace(endpoint),
		client: &http.Client{Timeout: timeout},
	}
}

// Enabled reports whether an endpoint is configured.
func (w *SheetsWebhook) Enabled() bool {
	return w.url != ""
}

// Name identifies the sink in checkout receipts.
func (w *SheetsWebhook) Name() string { return "sheets_webhook" }

// WebhookForm returns the form fields submitted for rec.
func WebhookForm(rec orders.Record) url.Values {
	owner := rec.Customer.OwnerName
	if owner == "" {
		owner = webhookOwnerFallback
	}
	promo := rec.Customer.PromoCode
	if promo == "" {
		promo = webhookPromoFallback
	}

	form := url.Values{}
	form.Set("orderNumber", rec.OrderNumber)
	form.Set("orderDate", rec.OrderDate)
	form.Set("orderTime", rec.OrderTime)
	form.Set("customerName", rec.Customer.FullName)
	form.Set("whatsappPhone", export.PhonePrefix+rec.Customer.WhatsappPhone)
	form.Set("deliveryAddress", export.FlattenAddress(rec.Customer.DeliveryAddress))
	form.Set("ownerName", owner)
	form.Set("promoCode", promo)
	form.Set("items", rec.ItemsSummary())
	form.Set("total", orders.FormatAmount(rec.Total)+"₸")
	form.Set("status", webhookStatusNew)
	return form
}

// Submit posts rec. It does not retry.
func (w *SheetsWebhook) Submit(ctx context.Context, rec orders.Record) error {
	if !w.Enabled() {
		return ErrWebhookNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, strings.NewReader(WebhookForm(rec).Encode()))
	if err != nil {
		return fmt.Errorf("create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("post order %s: %w", rec.OrderNumber, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}

// Ping submits a throwaway TEST- order so an admin can check the sheet wiring.
func (w *SheetsWebhook) Ping(ctx context.Context, now time.Time) (orders.Record, error) {
	rec := orders.Record{
		OrderNumber: "TEST-" + strconv.FormatInt(now.UnixMilli(), 10),
		OrderDate:   now.Format(orders.DateLayout),
		OrderTime:   now.Format(orders.TimeLayout),
		Items: []orders.LineItem{
			{Name: "Тестовый товар", Size: "M", Quantity: 1, UnitPrice: 100, LineTotal: 100},
		},
		Total: 100,
		Customer: orders.Customer{
			FullName:        "Тестовый Заказ",
			DeliveryAddress: "Тестовый адрес для проверки",
			OwnerName:       "Тест",
			PromoCode:       "TEST",
		},
	}
	return rec, w.Submit(ctx, rec)
}

// FetchOrders reads the rows the spreadsheet web app returns for
// ?action=getOrders, one map per row keyed by column header.
func (w *SheetsWebhook) FetchOrders(ctx context.Context) ([]map[string]interface{}, error) {
	if !w.Enabled() {
		return nil, ErrWebhookNotConfigured
	}

	endpoint, err := url.Parse(w.url)
	if err != nil {
		return nil, fmt.Errorf("parse webhook URL: %w", err)
	}
	query := endpoint.Query()
	query.Set("action", "getOrders")
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch sheet orders: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	rows := []map[string]interface{}{}
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decode sheet orders: %w", err)
	}
	return rows, nil
}
