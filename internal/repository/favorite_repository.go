package repository

import (
	"context"

	"github.com/iliyamo/lawshop/internal/model"
	"github.com/iliyamo/lawshop/internal/store"
)

const favoritesCollection = "favorites"

// FavoriteRepo follows the same owner scoping as CartRepo.
type FavoriteRepo struct{ Store *store.Client }

func favoriteOwner(f model.Favorite) model.ID { return f.OwnerID }

func NewFavoriteRepo(c *store.Client) *FavoriteRepo { return &FavoriteRepo{Store: c} }

func (r *FavoriteRepo) List(ctx context.Context, owner model.ID) ([]model.Favorite, error) {
	items, _, err := store.List[model.Favorite](ctx, r.Store, favoritesCollection, ownerQuery(owner))
	return scoped(items, owner, favoriteOwner), err
}

func (r *FavoriteRepo) FindByService(ctx context.Context, owner, serviceID model.ID) ([]model.Favorite, error) {
	q := ownerQuery(owner)
	q.Set("serviceId", serviceID.String())
	items, _, err := store.List[model.Favorite](ctx, r.Store, favoritesCollection, q)
	return scoped(items, owner, favoriteOwner), err
}

func (r *FavoriteRepo) Get(ctx context.Context, id model.ID) (model.Favorite, error) {
	return store.Get[model.Favorite](ctx, r.Store, favoritesCollection, id.String())
}

func (r *FavoriteRepo) Create(ctx context.Context, f model.Favorite) (model.Favorite, error) {
	f.ID = ""
	return store.Create[model.Favorite](ctx, r.Store, favoritesCollection, f)
}

func (r *FavoriteRepo) Delete(ctx context.Context, id model.ID) error {
	return store.Delete(ctx, r.Store, favoritesCollection, id.String())
}
