package cart

import (
	"context"
	"sync"

	"github.com/example/merchstore/internal/logger"
	"github.com/example/merchstore/internal/storage"
)

// Item is one cart line. (ProductID, Size) identifies it.
type Item struct {
	ProductID int     `json:"id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"price"`
	Image     string  `json:"image"`
	Size      string  `json:"size"`
	Quantity  int     `json:"quantity"`
}

// Key returns the uniqueness key of the item.
func (i Item) Key() Key {
	return Key{ProductID: i.ProductID, Size: i.Size}
}

// Key identifies a cart line.
type Key struct {
	ProductID int
	Size      string
}

// Cart is a session's shopping cart mirrored to its store under storage.KeyCart.
// Every mutation persists the full item list before returning.
type Cart struct {
	mu    sync.Mutex
	items []Item
	store storage.Store
	log   logger.Logger
}

// Load restores the cart from store. A missing or corrupt value yields an
// empty cart.
func Load(ctx context.Context, log logger.Logger, store storage.Store) *Cart {
	var items []Item
	storage.LoadJSON(ctx, log, store, storage.KeyCart, &items)

	return &Cart{
		items: Reduce(nil, Action{Type: ActionLoad, Items: items}),
		store: store,
		log:   log,
	}
}

// Add puts one unit of item into the cart. The item's own Quantity is ignored:
// a new line starts at 1 and an existing line grows by 1.
func (c *Cart) Add(ctx context.Context, item Item) error {
	return c.dispatch(ctx, Action{Type: ActionAdd, Item: item})
}

// Remove deletes the line for (productID, size). Unknown lines are ignored.
func (c *Cart) Remove(ctx context.Context, productID int, size string) error {
	return c.dispatch(ctx, Action{Type: ActionRemove, Key: Key{ProductID: productID, Size: size}})
}

// UpdateQuantity sets the quantity of a line; zero or less removes it.
// There is no upper bound.
func (c *Cart) UpdateQuantity(ctx context.Context, productID int, size string, quantity int) error {
	return c.dispatch(ctx, Action{
		Type:     ActionUpdate,
		Key:      Key{ProductID: productID, Size: size},
		Quantity: quantity,
	})
}

// Clear empties the cart.
func (c *Cart) Clear(ctx context.Context) error {
	return c.dispatch(ctx, Action{Type: ActionClear})
}

// Items returns a copy of the cart lines in insertion order.
func (c *Cart) Items() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Total is Σ unitPrice × quantity.
func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Total(c.items)
}

// ItemCount is Σ quantity.
func (c *Cart) ItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := 0
	for _, item := range c.items {
		count += item.Quantity
	}
	return count
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items) == 0
}

func (c *Cart) dispatch(ctx context.Context, action Action) error {
	c.mu.Lock()
	c.items = Reduce(c.items, action)
	snapshot := make([]Item, len(c.items))
	copy(snapshot, c.items)
	c.mu.Unlock()

	if err := storage.SaveJSON(ctx, c.store, storage.KeyCart, snapshot); err != nil {
		c.log.Error("persist cart", logger.String("action", string(action.Type)), logger.Error(err))
		return err
	}
	return nil
}

// Total sums unitPrice × quantity over items.
func Total(items []Item) float64 {
	var total float64
	for _, item := range items {
		total += item.UnitPrice * float64(item.Quantity)
	}
	return total
}
