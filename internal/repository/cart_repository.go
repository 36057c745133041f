package repository

import (
	"context"
	"net/url"

	"github.com/iliyamo/lawshop/internal/model"
	"github.com/iliyamo/lawshop/internal/store"
)

const cartCollection = "cart"

// CartRepo stores cart lines. An empty owner addresses the shared cart,
// the lines without an ownerId; a non-empty owner restricts every read to
// that owner's lines.
type CartRepo struct{ Store *store.Client }

func NewCartRepo(c *store.Client) *CartRepo { return &CartRepo{Store: c} }

func ownerQuery(owner model.ID) url.Values {
	q := url.Values{}
	if !owner.IsZero() {
		q.Set("ownerId", owner.String())
	}
	return q
}

// scoped drops owned records from a shared (empty owner) read. The store
// cannot filter on a missing field, so this runs client-side.
func scoped[T any](items []T, owner model.ID, ownerOf func(T) model.ID) []T {
	if !owner.IsZero() {
		return items
	}
	out := items[:0]
	for _, it := range items {
		if ownerOf(it).IsZero() {
			out = append(out, it)
		}
	}
	return out
}

func cartOwner(it model.CartItem) model.ID { return it.OwnerID }

func (r *CartRepo) List(ctx context.Context, owner model.ID) ([]model.CartItem, error) {
	items, _, err := store.List[model.CartItem](ctx, r.Store, cartCollection, ownerQuery(owner))
	return scoped(items, owner, cartOwner), err
}

// FindByService returns the owner's lines for one service; normally zero or one.
func (r *CartRepo) FindByService(ctx context.Context, owner, serviceID model.ID) ([]model.CartItem, error) {
	q := ownerQuery(owner)
	q.Set("serviceId", serviceID.String())
	items, _, err := store.List[model.CartItem](ctx, r.Store, cartCollection, q)
	return scoped(items, owner, cartOwner), err
}

func (r *CartRepo) Get(ctx context.Context, id model.ID) (model.CartItem, error) {
	return store.Get[model.CartItem](ctx, r.Store, cartCollection, id.String())
}

func (r *CartRepo) Create(ctx context.Context, item model.CartItem) (model.CartItem, error) {
	item.ID = ""
	return store.Create[model.CartItem](ctx, r.Store, cartCollection, item)
}

func (r *CartRepo) UpdateQuantity(ctx context.Context, id model.ID, quantity int) (model.CartItem, error) {
	return store.Patch[model.CartItem](ctx, r.Store, cartCollection, id.String(), map[string]int{"quantity": quantity})
}

func (r *CartRepo) Delete(ctx context.Context, id model.ID) error {
	return store.Delete(ctx, r.Store, cartCollection, id.String())
}
