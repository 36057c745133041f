package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/iliyamo/lawshop/internal/logger"
	"github.com/iliyamo/lawshop/internal/model"
)

var (
	ErrEmptyCart      = errors.New("cart: cart is empty")
	ErrSignInRequired = errors.New("cart: sign in to complete your purchase")
	ErrOrderNotPlaced = errors.New("cart: order could not be placed")
	// ErrCleanupIncomplete means the order exists but some lines are still
	// in the cart; the cart has been resynced.
	ErrCleanupIncomplete = errors.New("cart: order placed but the cart could not be fully cleared")
)

// OrderStore persists orders.
type OrderStore interface {
	Create(ctx context.Context, o model.Order) (model.Order, error)
}

// Notifier is told about every stored order. Failures are logged only.
type Notifier interface {
	OrderPlaced(ctx context.Context, o model.Order) error
}

// Checkout turns a cart into an order.
type Checkout struct {
	Orders   OrderStore
	Notifier Notifier
	Now      func() time.Time
	Suffix   func() string
}

func NewCheckout(orders OrderStore, n Notifier) *Checkout {
	return &Checkout{Orders: orders, Notifier: n, Now: time.Now, Suffix: RandomSuffix}
}

// Receipt is what a checkout produced.
type Receipt struct {
	Order       model.Order `json:"order"`
	Totals      string      `json:"totals"`
	FailedLines []model.ID  `json:"failedLines,omitempty"`
}

// Run places an order for the cart's current lines and then empties the
// cart. Nothing is sent to the store when the cart is empty or there is no
// signed-in user. When the order cannot be stored no line is deleted. Line
// deletions run concurrently; all of them are awaited and any failure is
// reported as ErrCleanupIncomplete together with the stored order.
func (co *Checkout) Run(ctx context.Context, c *Cart, user *model.User) (Receipt, error) {
	snapshot := c.Items()
	if len(snapshot) == 0 {
		return Receipt{}, ErrEmptyCart
	}
	if user == nil || user.ID.IsZero() {
		return Receipt{}, ErrSignInRequired
	}

	now, suffix := time.Now, RandomSuffix
	if co.Now != nil {
		now = co.Now
	}
	if co.Suffix != nil {
		suffix = co.Suffix
	}
	order := BuildOrder(snapshot, user.ID, now(), suffix())

	stored, err := co.Orders.Create(ctx, order)
	if err != nil {
		logger.Error(ctx, "order create failed", err, zap.String("user_id", user.ID.String()))
		return Receipt{}, fmt.Errorf("%w: %w", ErrOrderNotPlaced, err)
	}
	if stored.OrderNumber == "" {
		id := stored.ID
		stored = order
		stored.ID = id
	}
	receipt := Receipt{Order: stored, Totals: ComputeTotals(snapshot).String()}

	if co.Notifier != nil {
		if err := co.Notifier.OrderPlaced(ctx, stored); err != nil {
			logger.Warn(ctx, "order notification failed", zap.String("order", stored.OrderNumber), zap.Error(err))
		}
	}

	var (
		g      errgroup.Group
		mu     sync.Mutex
		failed []model.ID
	)
	for _, line := range snapshot {
		g.Go(func() error {
			if err := c.store.Delete(ctx, line.ID); err != nil {
				mu.Lock()
				failed = append(failed, line.ID)
				mu.Unlock()
				return err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Error(ctx, "cart cleanup after checkout failed", err,
			zap.String("order", stored.OrderNumber), zap.Int("failed_lines", len(failed)))
		if _, rerr := c.Refresh(ctx); rerr != nil {
			logger.Warn(ctx, "cart resync failed", zap.Error(rerr))
		}
		receipt.FailedLines = failed
		return receipt, ErrCleanupIncomplete
	}

	ids := make(map[model.ID]bool, len(snapshot))
	for _, line := range snapshot {
		ids[line.ID] = true
	}
	c.drop(ids)
	logger.Info(ctx, "order placed", zap.String("order", stored.OrderNumber), zap.Int("units", stored.ItemCount))
	return receipt, nil
}
