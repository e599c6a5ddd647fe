package cart

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prakritistore/cart-service/internal/models"
	"github.com/prakritistore/cart-service/internal/storage"
)

func newTestStore(t *testing.T) (*Store, storage.KV) {
	t.Helper()
	kv, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	return NewStore(context.Background(), kv), kv
}

func tulsiDrops() models.CartItem {
	return models.CartItem{
		ID:    "tulsi-drops",
		Name:  "Tulsi Drops",
		Price: decimal.NewFromInt(10),
	}
}

func ashwagandha() models.CartItem {
	return models.CartItem{
		ID:    "ashwagandha-caps",
		Name:  "Ashwagandha Capsules",
		Price: decimal.NewFromInt(5),
	}
}

func TestAddMergesOnRepeat(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, tulsiDrops()))
	require.NoError(t, s.Add(ctx, tulsiDrops()))

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 2, s.ItemCount())
}

func TestAddSeedsQuantityOnFirstInsertOnly(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	p := tulsiDrops()
	p.Quantity = 3
	require.NoError(t, s.Add(ctx, p))
	require.Equal(t, 3, s.Items()[0].Quantity)

	// Repeat add increments by one regardless of the payload quantity.
	p.Quantity = 5
	require.NoError(t, s.Add(ctx, p))
	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 4, items[0].Quantity)
}

func TestAddDefaultsQuantityToOne(t *testing.T) {
	s, _ := newTestStore(t)

	require.NoError(t, s.Add(context.Background(), tulsiDrops()))
	assert.Equal(t, 1, s.Items()[0].Quantity)
}

func TestAddRequiresID(t *testing.T) {
	s, _ := newTestStore(t)
	assert.Error(t, s.Add(context.Background(), models.CartItem{Name: "nameless"}))
}

func TestUpdateQuantityFloor(t *testing.T) {
	for _, qty := range []int{0, -1, -10} {
		s, _ := newTestStore(t)
		ctx := context.Background()
		require.NoError(t, s.Add(ctx, tulsiDrops()))

		require.NoError(t, s.Update(ctx, "tulsi-drops", qty))
		assert.Empty(t, s.Items(), "quantity %d should remove the item", qty)
	}
}

func TestUpdateSetsExactQuantity(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Add(ctx, tulsiDrops()))

	require.NoError(t, s.Update(ctx, "tulsi-drops", 7))
	assert.Equal(t, 7, s.Items()[0].Quantity)
}

func TestUpdateUnknownIDIsNoOp(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Add(ctx, tulsiDrops()))

	require.NoError(t, s.Update(ctx, "no-such-product", 4))
	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestRemoveAbsentIsNoOp(t *testing.T) {
	s, _ := newTestStore(t)
	assert.NoError(t, s.Remove(context.Background(), "never-added"))
}

func TestPersistenceRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)

	s := NewStore(ctx, kv)
	require.NoError(t, s.Add(ctx, tulsiDrops()))
	require.NoError(t, s.Add(ctx, ashwagandha()))
	require.NoError(t, s.Update(ctx, "tulsi-drops", 2))

	// A fresh store over the same backend must see the identical list.
	reloaded := NewStore(ctx, kv)
	assert.Equal(t, s.Items(), reloaded.Items())
	assert.True(t, s.Subtotal().Equal(reloaded.Subtotal()))
}

func TestCorruptStorageDegradesToEmpty(t *testing.T) {
	ctx := context.Background()
	kv, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, kv.Set(ctx, storage.KeyCart, []byte("{not json[")))

	s := NewStore(ctx, kv)
	assert.Empty(t, s.Items())
	assert.Equal(t, 0, s.ItemCount())
	assert.True(t, s.Subtotal().IsZero())
}

func TestSubtotalMonotonicity(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	before := s.Subtotal()
	require.NoError(t, s.Add(ctx, tulsiDrops()))
	afterAdd := s.Subtotal()
	assert.True(t, afterAdd.GreaterThanOrEqual(before), "adding must never decrease the subtotal")

	require.NoError(t, s.Add(ctx, ashwagandha()))
	assert.True(t, s.Subtotal().GreaterThanOrEqual(afterAdd))

	beforeRemove := s.Subtotal()
	require.NoError(t, s.Remove(ctx, "tulsi-drops"))
	assert.True(t, s.Subtotal().LessThanOrEqual(beforeRemove), "removing must never increase the subtotal")
}

func TestClearCart(t *testing.T) {
	ctx := context.Background()
	kv, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	s := NewStore(ctx, kv)
	require.NoError(t, s.Add(ctx, tulsiDrops()))
	require.NoError(t, s.Add(ctx, ashwagandha()))

	require.NoError(t, s.Clear(ctx))
	assert.Empty(t, s.Items())
	assert.Equal(t, 0, s.ItemCount())
	assert.True(t, s.Subtotal().IsZero())

	// Persisted state reflects the empty list, not just memory.
	data, err := kv.Get(ctx, storage.KeyCart)
	require.NoError(t, err)
	var persisted []models.CartItem
	require.NoError(t, json.Unmarshal(data, &persisted))
	assert.Empty(t, persisted)
}

func TestObserversNotifiedOnMutation(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	var snaps []Snapshot
	unsubscribe := s.Subscribe(func(snap Snapshot) { snaps = append(snaps, snap) })

	require.NoError(t, s.Add(ctx, tulsiDrops()))
	require.Len(t, snaps, 1)
	assert.Equal(t, 1, snaps[0].ItemCount)

	unsubscribe()
	require.NoError(t, s.Add(ctx, tulsiDrops()))
	assert.Len(t, snaps, 1, "unsubscribed observer must not fire")
}
