package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/example/merchstore/internal/cart"
	"github.com/example/merchstore/internal/logger"
	"github.com/example/merchstore/internal/orders"
	"github.com/example/merchstore/internal/storage"
)

// ErrEmptyCart is returned when a session checks out with nothing in the cart.
var ErrEmptyCart = errors.New("cart is empty")

// Sink receives every placed order after it has been logged locally.
type Sink interface {
	Name() string
	Submit(ctx context.Context, rec orders.Record) error
}

// Session is the per-customer state a checkout reads and writes.
type Session struct {
	ID    string
	Store storage.Store
	Cart  *cart.Cart
}

// Service places orders.
type Service struct {
	sequencer orders.Sequencer
	log       *orders.Log
	sinks     []Sink
	now       func() time.Time
	location  *time.Location
	timeout   time.Duration
	logger    logger.Logger

	// mu serializes numbering and logging within this process. Separate
	// processes sharing a store can still hand out the same number.
	mu sync.Mutex
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLocation sets the timezone order dates are taken in.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) { s.location = loc }
}

// WithRemoteTimeout bounds each sink submission.
func WithRemoteTimeout(d time.Duration) Option {
	return func(s *Service) { s.timeout = d }
}

// NewService constructs a Service. sinks may be empty.
func NewService(sequencer orders.Sequencer, orderLog *orders.Log, sinks []Sink, log logger.Logger, opts ...Option) *Service {
	s := &Service{
		sequencer: sequencer,
		log:       orderLog,
		sinks:     sinks,
		now:       time.Now,
		location:  time.Local,
		timeout:   15 * time.Second,
		logger:    log.With(logger.String("component", "checkout")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit places an order for the session's cart. It returns once the order is
// in the local log and the cart is cleared; remote sinks run afterwards and
// report through the receipt.
func (s *Service) Submit(ctx context.Context, session Session, customer orders.Customer) (*Receipt, error) {
	if err := customer.Validate(); err != nil {
		return nil, err
	}
	if session.Cart == nil || session.Cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	rec, err := s.commit(ctx, session, customer)
	if err != nil {
		return nil, err
	}

	// A failed clear leaves the cart populated but the order is placed.
	if err := session.Cart.Clear(ctx); err != nil {
		s.logger.Warn("clear cart after checkout",
			logger.String("session_id", session.ID),
			logger.String("order_number", rec.OrderNumber),
			logger.Error(err),
		)
	}

	receipt := newReceipt(rec)
	go s.fanOut(receipt)

	s.logger.Info("order placed",
		logger.String("session_id", session.ID),
		logger.String("order_number", rec.OrderNumber),
		logger.String("order_date", rec.OrderDate),
		logger.Float64("total", rec.Total),
	)
	return receipt, nil
}

func (s *Service) commit(ctx context.Context, session Session, customer orders.Customer) (orders.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().In(s.location)
	number, err := s.sequencer.Next(ctx, now)
	if err != nil {
		return orders.Record{}, fmt.Errorf("next order number: %w", err)
	}

	rec := orders.Assemble(session.Cart.Items(), number, now, customer)
	if err := s.log.Append(ctx, rec, session.Store); err != nil {
		return orders.Record{}, fmt.Errorf("log order %s: %w", rec.OrderNumber, err)
	}
	return rec, nil
}

// fanOut runs detached from the request so a client hanging up does not
// cancel delivery.
func (s *Service) fanOut(receipt *Receipt) {
	var wg sync.WaitGroup
	for _, sink := range s.sinks {
		wg.Add(1)
		go func(sink Sink) {
			defer wg.Done()
			s.deliver(receipt, sink)
		}(sink)
	}
	wg.Wait()
	receipt.finish(len(s.sinks))
}

func (s *Service) deliver(receipt *Receipt, sink Sink) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	result := SinkResult{Sink: sink.Name()}
	defer func() {
		if r := recover(); r != nil {
			result.Error = fmt.Sprintf("panic: %v", r)
			s.logger.Error("order sink panicked",
				logger.String("sink", result.Sink),
				logger.String("order_number", receipt.Order.OrderNumber),
				logger.Any("panic", r),
			)
			receipt.record(result)
		}
	}()

	if err := sink.Submit(ctx, receipt.Order); err != nil {
		result.Error = err.Error()
		s.logger.Warn("order sink failed",
			logger.String("sink", result.Sink),
			logger.String("order_number", receipt.Order.OrderNumber),
			logger.Error(err),
		)
	} else {
		s.logger.Debug("order delivered",
			logger.String("sink", result.Sink),
			logger.String("order_number", receipt.Order.OrderNumber),
		)
	}
	receipt.record(result)
}

// Sinks returns the names of the configured sinks.
func (s *Service) Sinks() []string {
	names := make([]string, 0, len(s.sinks))
	for _, sink := range s.sinks {
		names = append(names, sink.Name())
	}
	return names
}
