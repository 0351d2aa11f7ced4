package orders

import (
	"strconv"
	"time"

	"github.com/example/merchstore/internal/cart"
)

// Date and time layouts of OrderDate / OrderTime (dd.mm.yyyy, 24h clock).
const (
	DateLayout = "02.01.2006"
	TimeLayout = "15:04:05"
)

// Assemble snapshots the cart into an order record numbered number.
// now should already be in the store's timezone.
func Assemble(items []cart.Item, number int, now time.Time, customer Customer) Record {
	lines := make([]LineItem, 0, len(items))
	for _, item := range items {
		lines = append(lines, LineItem{
			Name:      item.Name,
			Size:      item.Size,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			LineTotal: item.UnitPrice * float64(item.Quantity),
		})
	}

	return Record{
		OrderNumber: strconv.Itoa(number),
		OrderDate:   now.Format(DateLayout),
		OrderTime:   now.Format(TimeLayout),
		Items:       lines,
		Total:       cart.Total(items),
		Customer:    customer,
	}
}

// FormatAmount renders an amount with the shortest exact decimal form,
// so 1300 becomes "1300" and 1300.5 "1300.5".
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
