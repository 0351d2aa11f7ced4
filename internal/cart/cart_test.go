package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/merchstore/internal/logger"
	"github.com/example/merchstore/internal/storage"
)

func newCart(t *testing.T) (*Cart, storage.Store) {
	t.Helper()
	store := storage.NewMemoryBackend().Namespace("session")
	return Load(context.Background(), logger.Nop(), store), store
}

func tee(id int, size string, price float64) Item {
	return Item{ProductID: id, Name: "Tee", UnitPrice: price, Image: "/img.png", Size: size}
}

func TestAdd_SameKeyIncrementsSingleLine(t *testing.T) {
	ctx := context.Background()
	c, _ := newCart(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, c.Add(ctx, tee(1, "M", 1300)))
	}

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestAdd_IgnoresIncomingQuantity(t *testing.T) {
	ctx := context.Background()
	c, _ := newCart(t)

	item := tee(1, "M", 1300)
	item.Quantity = 7
	require.NoError(t, c.Add(ctx, item))

	assert.Equal(t, 1, c.Items()[0].Quantity)
}

func TestAdd_DifferentSizesAreSeparateLines(t *testing.T) {
	ctx := context.Background()
	c, _ := newCart(t)

	require.NoError(t, c.Add(ctx, tee(1, "M", 1300)))
	require.NoError(t, c.Add(ctx, tee(1, "L", 1300)))
	require.NoError(t, c.Add(ctx, tee(2, "M", 15000)))

	items := c.Items()
	require.Len(t, items, 3)
	assert.Equal(t, Key{ProductID: 1, Size: "M"}, items[0].Key())
	assert.Equal(t, Key{ProductID: 1, Size: "L"}, items[1].Key())
	assert.Equal(t, Key{ProductID: 2, Size: "M"}, items[2].Key())
}

func TestUpdateQuantity_NonPositiveRemoves(t *testing.T) {
	for _, q := range []int{0, -1} {
		ctx := context.Background()
		c, _ := newCart(t)
		require.NoError(t, c.Add(ctx, tee(1, "M", 1300)))

		require.NoError(t, c.UpdateQuantity(ctx, 1, "M", q))
		assert.Empty(t, c.Items(), "quantity %d", q)
	}
}

func TestUpdateQuantity_SetsValueWithoutUpperBound(t *testing.T) {
	ctx := context.Background()
	c, _ := newCart(t)
	require.NoError(t, c.Add(ctx, tee(1, "M", 1300)))

	require.NoError(t, c.UpdateQuantity(ctx, 1, "M", 1000))
	assert.Equal(t, 1000, c.Items()[0].Quantity)

	require.NoError(t, c.UpdateQuantity(ctx, 9, "XS", 3))
	assert.Len(t, c.Items(), 1)
}

func TestRemove_UnknownKeyIsNoop(t *testing.T) {
	ctx := context.Background()
	c, _ := newCart(t)
	require.NoError(t, c.Add(ctx, tee(1, "M", 1300)))

	assert.NoError(t, c.Remove(ctx, 42, "XL"))
	assert.Len(t, c.Items(), 1)
}

func TestTotalsAndCount(t *testing.T) {
	ctx := context.Background()
	c, _ := newCart(t)

	assert.Equal(t, 0.0, c.Total())
	assert.Equal(t, 0, c.ItemCount())

	require.NoError(t, c.Add(ctx, tee(1, "M", 1300)))
	require.NoError(t, c.Add(ctx, tee(1, "M", 1300)))
	require.NoError(t, c.Add(ctx, tee(3, "L", 13000)))

	assert.Equal(t, 15600.0, c.Total())
	assert.Equal(t, 3, c.ItemCount())
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	c, _ := newCart(t)
	require.NoError(t, c.Add(ctx, tee(1, "M", 1300)))

	require.NoError(t, c.Clear(ctx))
	assert.True(t, c.IsEmpty())
}

func TestPersistence_RestoresAcrossLoads(t *testing.T) {
	ctx := context.Background()
	c, store := newCart(t)
	require.NoError(t, c.Add(ctx, tee(1, "M", 1300)))
	require.NoError(t, c.Add(ctx, tee(1, "M", 1300)))

	restored := Load(ctx, logger.Nop(), store)
	items := restored.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 1300.0, items[0].UnitPrice)
}

func TestLoad_CorruptValueFallsBackToEmpty(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryBackend().Namespace("session")
	require.NoError(t, store.Set(ctx, storage.KeyCart, "not-json"))

	c := Load(ctx, logger.Nop(), store)
	assert.True(t, c.IsEmpty())
	assert.NotNil(t, c.Items())
}

func TestLoad_TypeMismatchFallsBackToEmpty(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryBackend().Namespace("session")
	stored := `[{"id":1,"name":"Tee","price":1300,"size":"M","quantity":2},{"id":"oops","size":"L"}]`
	require.NoError(t, store.Set(ctx, storage.KeyCart, stored))

	c := Load(ctx, logger.Nop(), store)
	assert.True(t, c.IsEmpty())
	assert.Zero(t, c.Total())
	assert.Zero(t, c.ItemCount())
}

type failingStore struct{ storage.Store }

func (failingStore) Set(context.Context, string, string) error { return errors.New("disk full") }

func TestMutation_ReturnsPersistenceError(t *testing.T) {
	ctx := context.Background()
	store := failingStore{Store: storage.NewMemoryBackend().Namespace("session")}
	c := Load(ctx, logger.Nop(), store)

	err := c.Add(ctx, tee(1, "M", 1300))
	assert.Error(t, err)
	assert.Len(t, c.Items(), 1)
}

func TestReduce_UpdateToNonPositiveRemovesLine(t *testing.T) {
	in := []Item{
		{ProductID: 1, Size: "M", Quantity: 3},
		{ProductID: 2, Size: "L", Quantity: 1},
	}

	for _, qty := range []int{0, -2} {
		out := Reduce(in, Action{Type: ActionUpdate, Key: Key{ProductID: 1, Size: "M"}, Quantity: qty})
		assert.Equal(t, []Item{{ProductID: 2, Size: "L", Quantity: 1}}, out)
	}
	assert.Len(t, in, 2)
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	in := []Item{{ProductID: 1, Size: "M", Quantity: 1}}

	out := Reduce(in, Action{Type: ActionAdd, Item: Item{ProductID: 1, Size: "M"}})

	assert.Equal(t, 1, in[0].Quantity)
	assert.Equal(t, 2, out[0].Quantity)
}
