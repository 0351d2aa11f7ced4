package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/example/merchstore/internal/export"
	"github.com/example/merchstore/internal/logger"
	"github.com/example/merchstore/internal/orders"
)

const defaultTelegramAPI = "https://api.telegram.org"

// TelegramService sends new-order notifications to the admin chat.
type TelegramService struct {
	botToken    string
	adminChatID string
	apiBase     string
	client      *http.Client
	log         logger.Logger
}

// NewTelegramService creates a new TelegramService.
func NewTelegramService(botToken, adminChatID string, timeout time.Duration, log logger.Logger) *TelegramService {
	return &TelegramService{
		botToken:    botToken,
		adminChatID: adminChatID,
		apiBase:     defaultTelegramAPI,
		client:      &http.Client{Timeout: timeout},
		log:         log.With(logger.String("component", "telegram")),
	}
}

// WithAPIBase points the service at another Bot API host.
func (s *TelegramService) WithAPIBase(base string) *TelegramService {
	s.apiBase = strings.TrimRight(base, "/")
	return s
}

// Enabled reports whether both the bot token and the admin chat are set.
func (s *TelegramService) Enabled() bool {
	return s.botToken != "" && s.adminChatID != ""
}

type telegramMessage struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// SendMessage sends an HTML message to chatID.
func (s *TelegramService) SendMessage(ctx context.Context, chatID, text string) error {
	if s.botToken == "" {
		s.log.Debug("bot token not configured, message skipped")
		return nil
	}

	body, err := json.Marshal(telegramMessage{
		ChatID:    chatID,
		Text:      text,
		ParseMode: "HTML",
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", s.apiBase, s.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram returned status %d", resp.StatusCode)
	}
	return nil
}

// Name identifies the sink in checkout receipts.
func (s *TelegramService) Name() string { return "telegram" }

// Submit sends the new-order notification for rec to the admin chat.
func (s *TelegramService) Submit(ctx context.Context, rec orders.Record) error {
	if s.adminChatID == "" {
		return nil
	}
	return s.SendMessage(ctx, s.adminChatID, FormatOrderMessage(rec))
}

// FormatPrice renders amount with space-separated thousands followed by symbol,
// e.g. FormatPrice(15600, "₸") == "15 600₸".
func FormatPrice(amount float64, symbol string) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	whole, frac, _ := strings.Cut(orders.FormatAmount(amount), ".")

	var result strings.Builder
	result.WriteString(sign)
	length := len(whole)
	for i, digit := range whole {
		if i > 0 && (length-i)%3 == 0 {
			result.WriteString(" ")
		}
		result.WriteRune(digit)
	}
	if frac != "" {
		result.WriteString("." + frac)
	}
	return result.String() + symbol
}

// FormatOrderMessage builds the admin notification text for rec.
func FormatOrderMessage(rec orders.Record) string {
	esc := html.EscapeString

	var items strings.Builder
	for i, item := range rec.Items {
		if i > 0 {
			items.WriteString("\n")
		}
		fmt.Fprintf(&items, "• %s (%s) x%d = %s",
			esc(item.Name), esc(item.Size), item.Quantity, FormatPrice(item.LineTotal, "₸"))
	}

	var b strings.Builder
	b.WriteString("🛍️ <b>НОВЫЙ ЗАКАЗ</b>\n\n")
	fmt.Fprintf(&b, "📦 <b>Заказ:</b> %s\n", esc(rec.OrderNumber))
	fmt.Fprintf(&b, "📅 <b>Дата:</b> %s %s\n\n", rec.OrderDate, rec.OrderTime)
	fmt.Fprintf(&b, "👤 <b>Получатель:</b> %s\n", esc(rec.Customer.FullName))
	fmt.Fprintf(&b, "📱 <b>WhatsApp:</b> %s\n", esc(export.PhonePrefix+rec.Customer.WhatsappPhone))
	fmt.Fprintf(&b, "📍 <b>Адрес:</b> %s\n", esc(rec.Customer.DeliveryAddress))
	if rec.Customer.OwnerName != "" {
		fmt.Fprintf(&b, "🎁 <b>Рахмет лист:</b> %s\n", esc(rec.Customer.OwnerName))
	}
	if rec.Customer.PromoCode != "" {
		fmt.Fprintf(&b, "🎟️ <b>Промокод:</b> %s\n", esc(rec.Customer.PromoCode))
	}
	fmt.Fprintf(&b, "\n📋 <b>Товары:</b>\n%s\n\n", items.String())
	fmt.Fprintf(&b, "💰 <b>Общая сумма:</b> %s", FormatPrice(rec.Total, "₸"))

	return b.String()
}
