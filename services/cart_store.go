package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sync"

	"junglepets/catalog"
	"junglepets/models"
	"junglepets/storage"

	"go.uber.org/zap"
)

// CartStore owns the ordered collection of cart line items. Like the user
// store it rewrites the whole collection on every mutation and serializes
// its read-modify-write cycles.
type CartStore struct {
	mu      sync.Mutex
	backend storage.Backend
	catalog *catalog.Catalog
}

func NewCartStore(backend storage.Backend, cat *catalog.Catalog) *CartStore {
	return &CartStore{
		backend: backend,
		catalog: cat,
	}
}

// Load returns the persisted cart, or an empty cart when the slot is
// missing or corrupt.
func (s *CartStore) Load(ctx context.Context) []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadItems(ctx)
}

// AddItem resolves productID against the catalog and either increments the
// existing line's quantity or appends a new line with quantity 1. Product
// name, price and image are copied at add time, so later catalog changes
// do not affect lines already in the cart. Unknown products are a no-op.
func (s *CartStore) AddItem(ctx context.Context, productID int) error {
	product, ok := s.catalog.Find(productID)
	if !ok {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.loadItems(ctx)
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity++
			return s.saveItems(ctx, items)
		}
	}

	items = append(items, models.CartItem{
		ProductID: product.ID,
		Name:      product.Name,
		UnitPrice: product.UnitPrice,
		Image:     product.Image,
		Quantity:  1,
	})
	return s.saveItems(ctx, items)
}

// RemoveItem deletes the matching line. Absent lines are a silent no-op.
func (s *CartStore) RemoveItem(ctx context.Context, productID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeLocked(ctx, productID)
}

// SetQuantity sets the matching line's quantity to n. A quantity of zero
// or less removes the line instead; an absent line is a no-op.
func (s *CartStore) SetQuantity(ctx context.Context, productID, n int) error {
	if n <= 0 {
		return s.RemoveItem(ctx, productID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.loadItems(ctx)
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity = n
			return s.saveItems(ctx, items)
		}
	}
	return nil
}

// Totals sums quantities and amount due over the cart, rounded to cents.
func (s *CartStore) Totals(ctx context.Context) models.CartTotals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return totals(s.loadItems(ctx))
}

// Checkout returns the amount due, then clears the cart and persists the
// empty state. There is no payment backend; this is a local reset.
func (s *CartStore) Checkout(ctx context.Context) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	due := totals(s.loadItems(ctx)).AmountDue
	if err := s.saveItems(ctx, []models.CartItem{}); err != nil {
		return 0, err
	}
	return due, nil
}

func (s *CartStore) removeLocked(ctx context.Context, productID int) error {
	items := s.loadItems(ctx)
	kept := items[:0]
	for _, item := range items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(items) {
		return nil
	}
	return s.saveItems(ctx, kept)
}

func totals(items []models.CartItem) models.CartTotals {
	t := models.CartTotals{}
	for _, item := range items {
		t.ItemCount += item.Quantity
		t.AmountDue += item.UnitPrice * float64(item.Quantity)
	}
	t.AmountDue = math.Round(t.AmountDue*100) / 100
	return t
}

// loadItems reads the cart slot, degrading to empty on a missing or
// unparseable slot. Caller holds s.mu.
func (s *CartStore) loadItems(ctx context.Context) []models.CartItem {
	data, err := s.backend.Get(ctx, storage.SlotCart)
	if err != nil {
		return []models.CartItem{}
	}

	var items []models.CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		zap.L().Warn("Corrupt cart slot, treating as empty", zap.Error(err))
		return []models.CartItem{}
	}
	if items == nil {
		items = []models.CartItem{}
	}
	return items
}

// saveItems rewrites the whole cart. Caller holds s.mu.
func (s *CartStore) saveItems(ctx context.Context, items []models.CartItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	return s.backend.Set(ctx, storage.SlotCart, data)
}
