package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/example/merchstore/internal/logger"
	"github.com/example/merchstore/internal/storage"
)

// DayLayout is how lastOrderDate is stored, e.g. "Fri Oct 16 2026".
const DayLayout = "Mon Jan 02 2006"

// Sequencer hands out the per-day order number for a submission at now.
//
// Implementations are not required to be atomic: two callers that read the
// same state may receive the same number.
type Sequencer interface {
	Next(ctx context.Context, now time.Time) (int, error)
}

// DailySequencer numbers orders 1, 2, 3... within a calendar day using the
// lastOrderDate and todayOrders keys of the shop store.
type DailySequencer struct {
	store storage.Store
	log   logger.Logger
}

// NewDailySequencer constructs a DailySequencer over the shop store.
func NewDailySequencer(store storage.Store, log logger.Logger) *DailySequencer {
	return &DailySequencer{store: store, log: log}
}

// Next returns len(todayOrders)+1 when lastOrderDate is today. Otherwise it
// records today as lastOrderDate, resets todayOrders and returns 1.
func (s *DailySequencer) Next(ctx context.Context, now time.Time) (int, error) {
	today := now.Format(DayLayout)

	last, ok, err := s.store.Get(ctx, storage.KeyLastOrderDate)
	if err != nil {
		s.log.Warn("read lastOrderDate failed, starting a new day", logger.Error(err))
		ok = false
	}

	if ok && last == today {
		var todays []Record
		storage.LoadJSON(ctx, s.log, s.store, storage.KeyTodayOrders, &todays)
		return len(todays) + 1, nil
	}

	if err := s.store.Set(ctx, storage.KeyLastOrderDate, today); err != nil {
		return 0, fmt.Errorf("persist lastOrderDate: %w", err)
	}
	if err := storage.SaveJSON(ctx, s.store, storage.KeyTodayOrders, []Record{}); err != nil {
		return 0, fmt.Errorf("reset todayOrders: %w", err)
	}

	s.log.Info("order counter reset for new day",
		logger.String("previous", last),
		logger.String("today", today),
	)
	return 1, nil
}
