package export

import (
	"bytes"
	"strings"
	"time"

	"github.com/example/merchstore/internal/orders"
)

const utf8BOM = "\ufeff"

// Headers is the fixed column order of every order export.
var Headers = []string{
	"Номер заказа",
	"Дата",
	"Время",
	"ФИО получателя",
	"WhatsApp",
	"Адрес доставки",
	"Имя владельца",
	"Промокод",
	"Товары",
	"Общая сумма",
}

// PhonePrefix is prepended to the locally entered WhatsApp number.
const PhonePrefix = "+7"

// Row returns the export columns for rec, in Headers order.
func Row(rec orders.Record) []string {
	return []string{
		rec.OrderNumber,
		rec.OrderDate,
		rec.OrderTime,
		rec.Customer.FullName,
		PhonePrefix + rec.Customer.WhatsappPhone,
		FlattenAddress(rec.Customer.DeliveryAddress),
		rec.Customer.OwnerName,
		rec.Customer.PromoCode,
		rec.ItemsSummary(),
		orders.FormatAmount(rec.Total) + "₸",
	}
}

// FlattenAddress replaces line breaks in a free-text address with spaces.
func FlattenAddress(address string) string {
	address = strings.ReplaceAll(address, "\r\n", " ")
	return strings.ReplaceAll(address, "\n", " ")
}

// OrderCSV renders a single order as a BOM-prefixed CSV with a header row.
func OrderCSV(rec orders.Record) []byte {
	return OrdersCSV([]orders.Record{rec})
}

// OrdersCSV renders a header row followed by one row per record. Every field
// is double-quoted and rows are separated by "\n".
func OrdersCSV(records []orders.Record) []byte {
	var buf bytes.Buffer
	buf.WriteString(utf8BOM)
	writeRow(&buf, Headers)
	for _, rec := range records {
		buf.WriteByte('\n')
		writeRow(&buf, Row(rec))
	}
	return buf.Bytes()
}

func writeRow(buf *bytes.Buffer, fields []string) {
	for i, field := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('"')
		buf.WriteString(strings.ReplaceAll(field, `"`, `""`))
		buf.WriteByte('"')
	}
}

// OrderFilename is the download name of a single-order export.
func OrderFilename(rec orders.Record) string {
	return "order_" + rec.OrderNumber + ".csv"
}

// BulkFilename is the download name of an admin export made at now, e.g.
// orders_2026-10-16.csv. The date is taken in UTC.
func BulkFilename(now time.Time, ext string) string {
	return "orders_" + now.UTC().Format("2006-01-02") + "." + ext
}
