// Package cart manages the cart lines of one owner and turns them into an
// order at checkout. Every quantity written to the store is clamped to
// [1, 99]; a failed write is followed by a resync so the local snapshot
// never drifts from the store for long.
package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/iliyamo/lawshop/internal/logger"
	"github.com/iliyamo/lawshop/internal/model"
)

var (
	// ErrLineNotFound means the line is not in the current snapshot.
	ErrLineNotFound = errors.New("cart: selected item is no longer available")
	// ErrInvalidQuantity is returned for non-numeric quantity edits.
	ErrInvalidQuantity = errors.New("cart: quantity must be a number")
)

// Store is the cart collection.
type Store interface {
	List(ctx context.Context, owner model.ID) ([]model.CartItem, error)
	FindByService(ctx context.Context, owner, serviceID model.ID) ([]model.CartItem, error)
	Create(ctx context.Context, item model.CartItem) (model.CartItem, error)
	UpdateQuantity(ctx context.Context, id model.ID, quantity int) (model.CartItem, error)
	Delete(ctx context.Context, id model.ID) error
}

// Cart is one owner's view of the cart collection.
type Cart struct {
	store Store
	owner model.ID

	mu    sync.Mutex
	items []model.CartItem
}

// New returns a cart for owner. An empty owner is the shared cart.
func New(store Store, owner model.ID) *Cart {
	return &Cart{store: store, owner: owner}
}

// Refresh reloads the lines from the store. On failure the snapshot is
// emptied and the error returned.
func (c *Cart) Refresh(ctx context.Context) ([]model.CartItem, error) {
	items, err := c.store.List(ctx, c.owner)
	if err != nil {
		logger.Error(ctx, "cart load failed", err, zap.String("owner", c.owner.String()))
		c.replace(nil)
		return []model.CartItem{}, fmt.Errorf("load cart: %w", err)
	}
	for i := range items {
		items[i].Quantity = normalize(items[i].Quantity)
	}
	c.replace(items)
	return c.Items(), nil
}

// Items returns a copy of the current snapshot.
func (c *Cart) Items() []model.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// Totals summarizes the current snapshot.
func (c *Cart) Totals() Totals { return ComputeTotals(c.Items()) }

// Line returns the snapshot line with id.
func (c *Cart) Line(id model.ID) (model.CartItem, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, it := range c.items {
		if it.ID == id {
			return it, true
		}
	}
	return model.CartItem{}, false
}

// Add puts svc in the cart. The store is asked for an existing line first:
// an existing line grows by delta (clamped), otherwise a new line with
// quantity 1 is created from the service's current title, price, currency
// and image.
func (c *Cart) Add(ctx context.Context, svc model.Service, delta int) (model.CartItem, error) {
	if delta < 1 {
		delta = 1
	}
	existing, err := c.store.FindByService(ctx, c.owner, svc.ID)
	if err != nil {
		logger.Error(ctx, "cart lookup failed", err, zap.String("service_id", svc.ID.String()))
		return model.CartItem{}, fmt.Errorf("add to cart: %w", err)
	}

	if len(existing) > 0 {
		line := existing[0]
		qty := Clamp(normalize(line.Quantity) + delta)
		if _, err := c.store.UpdateQuantity(ctx, line.ID, qty); err != nil {
			logger.Error(ctx, "cart quantity update failed", err, zap.String("line_id", line.ID.String()))
			return model.CartItem{}, fmt.Errorf("add to cart: %w", err)
		}
		line.Quantity = qty
		c.upsert(line)
		return line, nil
	}

	created, err := c.store.Create(ctx, model.CartItem{
		ServiceID: svc.ID,
		Title:     svc.Title,
		Price:     svc.Price,
		Currency:  svc.Currency,
		Image:     svc.Image,
		Quantity:  1,
		OwnerID:   c.owner,
	})
	if err != nil {
		logger.Error(ctx, "cart line create failed", err, zap.String("service_id", svc.ID.String()))
		return model.CartItem{}, fmt.Errorf("add to cart: %w", err)
	}
	created.Quantity = normalize(created.Quantity)
	c.upsert(created)
	return created, nil
}

// SetQuantity writes a clamped quantity. When the write fails the cart is
// resynced from the store and the write error returned.
func (c *Cart) SetQuantity(ctx context.Context, lineID model.ID, quantity int) (model.CartItem, error) {
	qty := Clamp(quantity)
	if _, err := c.store.UpdateQuantity(ctx, lineID, qty); err != nil {
		logger.Error(ctx, "cart quantity update failed", err, zap.String("line_id", lineID.String()))
		if _, rerr := c.Refresh(ctx); rerr != nil {
			logger.Warn(ctx, "cart resync failed", zap.Error(rerr))
		}
		return model.CartItem{}, fmt.Errorf("update quantity: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ID == lineID {
			c.items[i].Quantity = qty
			return c.items[i], nil
		}
	}
	return model.CartItem{ID: lineID, Quantity: qty}, nil
}

// Step moves a line's quantity by delta (normally +1 or -1).
func (c *Cart) Step(ctx context.Context, lineID model.ID, delta int) (model.CartItem, error) {
	line, ok := c.Line(lineID)
	if !ok {
		return model.CartItem{}, ErrLineNotFound
	}
	return c.SetQuantity(ctx, lineID, line.Quantity+delta)
}

// Edit applies a typed quantity. Non-numeric input leaves the store alone
// and returns the last known-good quantity with ErrInvalidQuantity.
func (c *Cart) Edit(ctx context.Context, lineID model.ID, input string) (int, error) {
	line, ok := c.Line(lineID)
	if !ok {
		return 0, ErrLineNotFound
	}
	qty, ok := ParseQuantity(input)
	if !ok {
		return line.Quantity, ErrInvalidQuantity
	}
	updated, err := c.SetQuantity(ctx, lineID, qty)
	if err != nil {
		return line.Quantity, err
	}
	return updated.Quantity, nil
}

// Remove deletes one line.
func (c *Cart) Remove(ctx context.Context, lineID model.ID) error {
	if err := c.store.Delete(ctx, lineID); err != nil {
		logger.Error(ctx, "cart line delete failed", err, zap.String("line_id", lineID.String()))
		return fmt.Errorf("remove from cart: %w", err)
	}
	c.drop(map[model.ID]bool{lineID: true})
	return nil
}

func (c *Cart) replace(items []model.CartItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = items
}

func (c *Cart) upsert(line model.CartItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ID == line.ID {
			c.items[i] = line
			return
		}
	}
	c.items = append(c.items, line)
}

func (c *Cart) drop(ids map[model.ID]bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	kept := c.items[:0]
	for _, it := range c.items {
		if !ids[it.ID] {
			kept = append(kept, it)
		}
	}
	c.items = kept
}
