package repository

import (
	"context"
	"net/url"

	"github.com/iliyamo/lawshop/internal/model"
	"github.com/iliyamo/lawshop/internal/store"
)

const servicesCollection = "services"

// ServiceRepo reads and writes catalog entries.
type ServiceRepo struct{ Store *store.Client }

func NewServiceRepo(c *store.Client) *ServiceRepo { return &ServiceRepo{Store: c} }

// Search runs a catalog query and returns one page plus the unpaged total.
func (r *ServiceRepo) Search(ctx context.Context, q url.Values) ([]model.Service, int, error) {
	return store.List[model.Service](ctx, r.Store, servicesCollection, q)
}

// All returns the full, unfiltered catalog.
func (r *ServiceRepo) All(ctx context.Context) ([]model.Service, error) {
	items, _, err := store.List[model.Service](ctx, r.Store, servicesCollection, nil)
	return items, err
}

// AllSorted returns the full catalog ordered by field.
func (r *ServiceRepo) AllSorted(ctx context.Context, field string) ([]model.Service, error) {
	items, _, err := store.List[model.Service](ctx, r.Store, servicesCollection, url.Values{"_sort": {field}, "_order": {"asc"}})
	return items, err
}

func (r *ServiceRepo) GetByID(ctx context.Context, id model.ID) (model.Service, error) {
	return store.Get[model.Service](ctx, r.Store, servicesCollection, id.String())
}

func (r *ServiceRepo) Create(ctx context.Context, s model.Service) (model.Service, error) {
	s.ID = ""
	return store.Create[model.Service](ctx, r.Store, servicesCollection, s)
}

// Replace overwrites the whole document, the store's PUT semantics.
func (r *ServiceRepo) Replace(ctx context.Context, id model.ID, s model.Service) (model.Service, error) {
	s.ID = id
	return store.Replace[model.Service](ctx, r.Store, servicesCollection, id.String(), s)
}

func (r *ServiceRepo) Delete(ctx context.Context, id model.ID) error {
	return store.Delete(ctx, r.Store, servicesCollection, id.String())
}
