package orders

import (
	"context"
	"fmt"

	"github.com/example/merchstore/internal/logger"
	"github.com/example/merchstore/internal/storage"
)

// Log is the local order log. The all-time and daily lists live in the shop
// store; the confirmation slot (lastOrder) lives in the customer's session.
type Log struct {
	shop storage.Store
	log  logger.Logger
}

// NewLog constructs a Log over the shop store.
func NewLog(shop storage.Store, log logger.Logger) *Log {
	return &Log{shop: shop, log: log}
}

// Append pushes rec onto orders and todayOrders and stores it as lastOrder in
// confirmation. The three writes are independent: a failure part-way leaves
// the earlier writes in place and is returned to the caller.
func (l *Log) Append(ctx context.Context, rec Record, confirmation storage.Store) error {
	var all []Record
	storage.LoadJSON(ctx, l.log, l.shop, storage.KeyOrders, &all)
	all = append(all, rec)
	if err := storage.SaveJSON(ctx, l.shop, storage.KeyOrders, all); err != nil {
		return fmt.Errorf("append orders: %w", err)
	}

	var todays []Record
	storage.LoadJSON(ctx, l.log, l.shop, storage.KeyTodayOrders, &todays)
	todays = append(todays, rec)
	if err := storage.SaveJSON(ctx, l.shop, storage.KeyTodayOrders, todays); err != nil {
		return fmt.Errorf("append todayOrders: %w", err)
	}

	if err := storage.SaveJSON(ctx, confirmation, storage.KeyLastOrder, rec); err != nil {
		return fmt.Errorf("store lastOrder: %w", err)
	}
	return nil
}

// ListAll returns every logged order, oldest first.
func (l *Log) ListAll(ctx context.Context) []Record {
	all := []Record{}
	storage.LoadJSON(ctx, l.log, l.shop, storage.KeyOrders, &all)
	return all
}

// Today returns the orders of the current sequencing day.
func (l *Log) Today(ctx context.Context) []Record {
	todays := []Record{}
	storage.LoadJSON(ctx, l.log, l.shop, storage.KeyTodayOrders, &todays)
	return todays
}

// ClearAll empties the all-time list only. todayOrders and lastOrderDate are
// left alone, so the daily numbering continues where it was.
func (l *Log) ClearAll(ctx context.Context) error {
	return l.shop.Delete(ctx, storage.KeyOrders)
}

// Last returns the order stored for the confirmation view of a session.
func (l *Log) Last(ctx context.Context, confirmation storage.Store) (Record, bool) {
	var rec Record
	ok := storage.LoadJSON(ctx, l.log, confirmation, storage.KeyLastOrder, &rec)
	return rec, ok
}
