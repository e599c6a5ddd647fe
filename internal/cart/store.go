package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/prakritistore/cart-service/internal/models"
	"github.com/prakritistore/cart-service/internal/storage"
)

// Snapshot is what observers receive after every successful mutation.
type Snapshot struct {
	Items     []models.CartItem
	ItemCount int
	Subtotal  decimal.Decimal
}

// Store is the single source of truth for the basket: an ordered item list,
// unique by product id, persisted in full after every mutation. All screens
// and clients bind to this one behavior instead of keeping their own copy.
type Store struct {
	mu        sync.Mutex
	kv        storage.KV
	items     []models.CartItem
	observers map[int]func(Snapshot)
	nextObs   int
}

// NewStore rehydrates the cart from storage. Missing or corrupt data
// degrades to an empty cart, never an error.
func NewStore(ctx context.Context, kv storage.KV) *Store {
	s := &Store{kv: kv, observers: make(map[int]func(Snapshot))}

	data, err := kv.Get(ctx, storage.KeyCart)
	if err != nil {
		if !errors.Is(err, storage.ErrNoKey) {
			slog.Warn("cart: load failed, starting empty", "error", err)
		}
		return s
	}
	var items []models.CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		slog.Warn("cart: persisted data corrupt, starting empty", "error", err)
		return s
	}
	s.items = items
	return s
}

// Add merges a product into the cart. A product already present gets its
// quantity bumped by one per call; a new product is inserted with the
// quantity carried on the payload (at least 1). Product detail screens pass
// an explicit quantity, product cards pass zero; both behave consistently
// under this rule.
func (s *Store) Add(ctx context.Context, product models.CartItem) error {
	if product.ID == "" {
		return fmt.Errorf("cart: product id required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.copyItems()
	found := false
	for i := range next {
		if next[i].ID == product.ID {
			next[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		if product.Quantity < 1 {
			product.Quantity = 1
		}
		next = append(next, product)
	}
	return s.commit(ctx, next)
}

// Remove deletes the entry with the given id. Removing an id that is not in
// the cart is a no-op, not an error.
func (s *Store) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]models.CartItem, 0, len(s.items))
	for _, it := range s.items {
		if it.ID != id {
			next = append(next, it)
		}
	}
	if len(next) == len(s.items) {
		return nil
	}
	return s.commit(ctx, next)
}

// Update sets an entry's quantity to exactly qty. A quantity of zero or
// below removes the entry; an unknown id is a silent no-op.
func (s *Store) Update(ctx context.Context, id string, qty int) error {
	if qty <= 0 {
		return s.Remove(ctx, id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.copyItems()
	for i := range next {
		if next[i].ID == id {
			next[i].Quantity = qty
			return s.commit(ctx, next)
		}
	}
	return nil
}

// Clear empties the cart unconditionally.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit(ctx, []models.CartItem{})
}

// Items returns a copy of the current item list in insertion order.
func (s *Store) Items() []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyItems()
}

// ItemCount is the sum of quantities across all entries.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, it := range s.items {
		count += it.Quantity
	}
	return count
}

// Subtotal is the sum of line totals, recomputed on every read.
func (s *Store) Subtotal() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return subtotal(s.items)
}

// Subscribe registers an observer called after every successful mutation.
// The callback runs with the store lock held and must not call back into
// the store. The returned function unsubscribes it.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.observers, id)
	}
}

// commit persists the candidate item list and, only on success, makes it the
// in-memory state. Memory and storage therefore never disagree after a
// mutation returns. Callers hold s.mu.
func (s *Store) commit(ctx context.Context, next []models.CartItem) error {
	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("cart: encode: %w", err)
	}
	if err := s.kv.Set(ctx, storage.KeyCart, data); err != nil {
		return fmt.Errorf("cart: persist: %w", err)
	}
	s.items = next

	snap := Snapshot{Items: append([]models.CartItem(nil), next...), Subtotal: subtotal(next)}
	for _, it := range next {
		snap.ItemCount += it.Quantity
	}
	for _, fn := range s.observers {
		fn(snap)
	}
	return nil
}

func (s *Store) copyItems() []models.CartItem {
	return append([]models.CartItem(nil), s.items...)
}

func subtotal(items []models.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.LineTotal())
	}
	return total
}
