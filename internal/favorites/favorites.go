// Package favorites manages a visitor's bookmarked services. At most one
// favorite exists per service and owner.
package favorites

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/iliyamo/lawshop/internal/cart"
	"github.com/iliyamo/lawshop/internal/logger"
	"github.com/iliyamo/lawshop/internal/model"
)

// ErrNotFound means the favorite is not in the owner's list.
var ErrNotFound = errors.New("favorites: selected favorite could not be found")

type Store interface {
	List(ctx context.Context, owner model.ID) ([]model.Favorite, error)
	FindByService(ctx context.Context, owner, serviceID model.ID) ([]model.Favorite, error)
	Create(ctx context.Context, f model.Favorite) (model.Favorite, error)
	Delete(ctx context.Context, id model.ID) error
}

type List struct {
	store Store
	owner model.ID
}

// New returns the favorites of owner; an empty owner is the shared list.
func New(store Store, owner model.ID) *List { return &List{store: store, owner: owner} }

func (l *List) Items(ctx context.Context) ([]model.Favorite, error) {
	items, err := l.store.List(ctx, l.owner)
	if err != nil {
		logger.Error(ctx, "favorites load failed", err)
		return nil, fmt.Errorf("load favorites: %w", err)
	}
	return items, nil
}

// Add bookmarks svc unless it already is. added is false for a duplicate.
func (l *List) Add(ctx context.Context, svc model.Service) (fav model.Favorite, added bool, err error) {
	existing, err := l.store.FindByService(ctx, l.owner, svc.ID)
	if err != nil {
		return model.Favorite{}, false, fmt.Errorf("add favorite: %w", err)
	}
	if len(existing) > 0 {
		return existing[0], false, nil
	}
	fav, err = l.store.Create(ctx, model.Favorite{
		ServiceID: svc.ID,
		Title:     svc.Title,
		Price:     svc.Price,
		Currency:  svc.Currency,
		Image:     svc.Image,
		Category:  svc.Category,
		OwnerID:   l.owner,
	})
	if err != nil {
		logger.Error(ctx, "favorite create failed", err, zap.String("service_id", svc.ID.String()))
		return model.Favorite{}, false, fmt.Errorf("add favorite: %w", err)
	}
	return fav, true, nil
}

// Remove deletes the favorite with id.
func (l *List) Remove(ctx context.Context, id model.ID) error {
	if err := l.store.Delete(ctx, id); err != nil {
		logger.Error(ctx, "favorite delete failed", err, zap.String("favorite_id", id.String()))
		return fmt.Errorf("remove favorite: %w", err)
	}
	return nil
}

// Toggle adds svc when it is not a favorite and removes it otherwise.
// It reports whether svc is a favorite afterwards.
func (l *List) Toggle(ctx context.Context, svc model.Service) (bool, error) {
	existing, err := l.store.FindByService(ctx, l.owner, svc.ID)
	if err != nil {
		return false, fmt.Errorf("toggle favorite: %w", err)
	}
	if len(existing) == 0 {
		_, _, err := l.Add(ctx, svc)
		return err == nil, err
	}
	for _, f := range existing {
		if err := l.Remove(ctx, f.ID); err != nil {
			return true, err
		}
	}
	return false, nil
}

// find looks id up in the owner's list.
func (l *List) find(ctx context.Context, id model.ID) (model.Favorite, error) {
	items, err := l.Items(ctx)
	if err != nil {
		return model.Favorite{}, err
	}
	for _, f := range items {
		if f.ID == id {
			return f, nil
		}
	}
	return model.Favorite{}, ErrNotFound
}

// MoveToCart adds the favorite's service to c. The favorite stays.
func (l *List) MoveToCart(ctx context.Context, id model.ID, c *cart.Cart) (model.CartItem, error) {
	f, err := l.find(ctx, id)
	if err != nil {
		return model.CartItem{}, err
	}
	return c.Add(ctx, model.Service{
		ID:       f.ServiceID,
		Title:    f.Title,
		Price:    f.Price,
		Currency: f.Currency,
		Image:    f.Image,
	}, 1)
}
