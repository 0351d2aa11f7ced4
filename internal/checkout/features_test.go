package checkout

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/cucumber/godog"

	"github.com/example/merchstore/internal/cart"
	"github.com/example/merchstore/internal/logger"
	"github.com/example/merchstore/internal/orders"
	"github.com/example/merchstore/internal/storage"
)

type checkoutTestContext struct {
	backend *storage.MemoryBackend
	shop    storage.Store
	log     *orders.Log
	session Session
	webhook *fakeSink
	now     time.Time

	receipt *Receipt
	numbers []string
	err     error
}

func (c *checkoutTestContext) reset() {
	c.backend = storage.NewMemoryBackend()
	c.shop = c.backend.Namespace(storage.ShopNamespace)
	c.log = orders.NewLog(c.shop, logger.Nop())
	c.webhook = &fakeSink{name: "sheets_webhook"}
	c.receipt = nil
	c.numbers = nil
	c.err = nil
	c.newSession()
}

func (c *checkoutTestContext) newSession() {
	store := c.backend.Namespace("session")
	c.session = Session{ID: "session", Store: store, Cart: cart.Load(context.Background(), logger.Nop(), store)}
}

func (c *checkoutTestContext) service() *Service {
	return NewService(
		orders.NewDailySequencer(c.shop, logger.Nop()),
		c.log,
		[]Sink{c.webhook},
		logger.Nop(),
		WithClock(func() time.Time { return c.now }),
		WithLocation(time.UTC),
	)
}

func (c *checkoutTestContext) todayIs(date string) error {
	day, err := time.Parse(orders.DateLayout, date)
	if err != nil {
		return err
	}
	c.now = day.Add(14*time.Hour + 30*time.Minute)
	return nil
}

func (c *checkoutTestContext) theRemoteWebhookAcceptsOrders() error {
	c.webhook.err = nil
	return nil
}

func (c *checkoutTestContext) theRemoteWebhookIsUnreachable() error {
	c.webhook.err = errors.New("dial tcp: connection refused")
	return nil
}

func (c *checkoutTestContext) iAddProductToTheCartTimes(id int, size string, times int) error {
	for i := 0; i < times; i++ {
		item := cart.Item{ProductID: id, Name: "Product", UnitPrice: 1000, Size: size}
		if err := c.session.Cart.Add(context.Background(), item); err != nil {
			return err
		}
	}
	return nil
}

func (c *checkoutTestContext) myCartContains(id int, size string, price float64, qty int) error {
	ctx := context.Background()
	item := cart.Item{ProductID: id, Name: fmt.Sprintf("Product %d", id), UnitPrice: price, Size: size}
	if err := c.session.Cart.Add(ctx, item); err != nil {
		return err
	}
	return c.session.Cart.UpdateQuantity(ctx, id, size, qty)
}

func (c *checkoutTestContext) iSetTheQuantity(id int, size string, qty int) error {
	return c.session.Cart.UpdateQuantity(context.Background(), id, size, qty)
}

func (c *checkoutTestContext) iRemoveFromTheCart(id int, size string) error {
	return c.session.Cart.Remove(context.Background(), id, size)
}

func (c *checkoutTestContext) theCartHasLines(n int) error {
	if got := len(c.session.Cart.Items()); got != n {
		return fmt.Errorf("expected %d cart lines, got %d", n, got)
	}
	return nil
}

func (c *checkoutTestContext) theLineHasQuantity(id int, size string, qty int) error {
	for _, item := range c.session.Cart.Items() {
		if item.ProductID == id && item.Size == size {
			if item.Quantity != qty {
				return fmt.Errorf("expected quantity %d, got %d", qty, item.Quantity)
			}
			return nil
		}
	}
	return fmt.Errorf("no line for product %d size %s", id, size)
}

func (c *checkoutTestContext) theCartIsEmpty() error {
	if !c.session.Cart.IsEmpty() {
		return fmt.Errorf("expected empty cart, got %d lines", len(c.session.Cart.Items()))
	}
	return nil
}

func (c *checkoutTestContext) theCartTotalIs(total float64) error {
	if got := c.session.Cart.Total(); got != total {
		return fmt.Errorf("expected cart total %v, got %v", total, got)
	}
	return nil
}

func (c *checkoutTestContext) iCheckOutAs(name, phone, address string) error {
	c.receipt, c.err = c.service().Submit(context.Background(), c.session, orders.Customer{
		FullName:        name,
		WhatsappPhone:   phone,
		DeliveryAddress: address,
	})
	if c.err == nil {
		c.numbers = append(c.numbers, c.receipt.Order.OrderNumber)
	}
	return c.err
}

func (c *checkoutTestContext) iPlaceOrders(n int) error {
	for i := 0; i < n; i++ {
		if err := c.myCartContains(1, "M", 1300, 1); err != nil {
			return err
		}
		if err := c.iCheckOutAs("Aruzhan Sadykova", "7011234567", "Almaty"); err != nil {
			return err
		}
	}
	return nil
}

func (c *checkoutTestContext) theDateAdvancesTo(date string) error {
	return c.todayIs(date)
}

func (c *checkoutTestContext) theAdminClearsAllOrders() error {
	return c.log.ClearAll(context.Background())
}

func (c *checkoutTestContext) theOrderNumberIs(number string) error {
	if c.receipt == nil {
		return errors.New("no order was placed")
	}
	if c.receipt.Order.OrderNumber != number {
		return fmt.Errorf("expected order number %s, got %s", number, c.receipt.Order.OrderNumber)
	}
	return nil
}

func (c *checkoutTestContext) theOrderTotalIs(total float64) error {
	if c.receipt == nil {
		return errors.New("no order was placed")
	}
	if c.receipt.Order.Total != total {
		return fmt.Errorf("expected order total %v, got %v", total, c.receipt.Order.Total)
	}
	return nil
}

func (c *checkoutTestContext) theOrderNumbersAre(list string) error {
	want := strings.Split(list, ",")
	if !reflect.DeepEqual(want, c.numbers) {
		return fmt.Errorf("expected order numbers %v, got %v", want, c.numbers)
	}
	return nil
}

func (c *checkoutTestContext) theOrderLogHolds(n int) error {
	if got := len(c.log.ListAll(context.Background())); got != n {
		return fmt.Errorf("expected %d logged orders, got %d", n, got)
	}
	return nil
}

func (c *checkoutTestContext) todaysOrdersHold(n int) error {
	if got := len(c.log.Today(context.Background())); got != n {
		return fmt.Errorf("expected %d orders today, got %d", n, got)
	}
	return nil
}

func (c *checkoutTestContext) theLastOrderEqualsThePlacedOrder() error {
	last, ok := c.log.Last(context.Background(), c.session.Store)
	if !ok {
		return errors.New("lastOrder is not stored")
	}
	if !reflect.DeepEqual(last, c.receipt.Order) {
		return fmt.Errorf("lastOrder %+v differs from placed order %+v", last, c.receipt.Order)
	}
	return nil
}

func (c *checkoutTestContext) theRemoteOutcomeIs(outcome string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if got := c.receipt.Wait(ctx); string(got) != outcome {
		return fmt.Errorf("expected outcome %s, got %s", outcome, got)
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &checkoutTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^today is "([^"]*)"$`, tc.todayIs)
	ctx.Step(`^the remote webhook accepts orders$`, tc.theRemoteWebhookAcceptsOrders)
	ctx.Step(`^the remote webhook is unreachable$`, tc.theRemoteWebhookIsUnreachable)
	ctx.Step(`^my cart contains product (\d+) size "([^"]*)" at (\d+) x (\d+)$`, tc.myCartContains)

	// When steps
	ctx.Step(`^I add product (\d+) in size "([^"]*)" to the cart (\d+) times$`, tc.iAddProductToTheCartTimes)
	ctx.Step(`^I set the quantity of product (\d+) size "([^"]*)" to (-?\d+)$`, tc.iSetTheQuantity)
	ctx.Step(`^I remove product (\d+) size "([^"]*)" from the cart$`, tc.iRemoveFromTheCart)
	ctx.Step(`^I check out as "([^"]*)" with phone "([^"]*)" and address "([^"]*)"$`, tc.iCheckOutAs)
	ctx.Step(`^I place (\d+) orders$`, tc.iPlaceOrders)
	ctx.Step(`^the date advances to "([^"]*)"$`, tc.theDateAdvancesTo)
	ctx.Step(`^the admin clears all orders$`, tc.theAdminClearsAllOrders)

	// Then steps
	ctx.Step(`^the cart has (\d+) lines?$`, tc.theCartHasLines)
	ctx.Step(`^the line for product (\d+) size "([^"]*)" has quantity (\d+)$`, tc.theLineHasQuantity)
	ctx.Step(`^the cart is empty$`, tc.theCartIsEmpty)
	ctx.Step(`^the cart total is (\d+)$`, tc.theCartTotalIs)
	ctx.Step(`^the order number is "([^"]*)"$`, tc.theOrderNumberIs)
	ctx.Step(`^the order total is (\d+)$`, tc.theOrderTotalIs)
	ctx.Step(`^the order numbers are "([^"]*)"$`, tc.theOrderNumbersAre)
	ctx.Step(`^the order log holds (\d+) orders?$`, tc.theOrderLogHolds)
	ctx.Step(`^today's orders hold (\d+) orders?$`, tc.todaysOrdersHold)
	ctx.Step(`^the last order equals the placed order$`, tc.theLastOrderEqualsThePlacedOrder)
	ctx.Step(`^the remote outcome is "([^"]*)"$`, tc.theRemoteOutcomeIs)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"../../features/checkout.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
