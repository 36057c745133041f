package repository

import (
	"context"
	"net/url"

	"github.com/iliyamo/lawshop/internal/model"
	"github.com/iliyamo/lawshop/internal/store"
)

const ordersCollection = "orders"

type OrderRepo struct{ Store *store.Client }

func NewOrderRepo(c *store.Client) *OrderRepo { return &OrderRepo{Store: c} }

func (r *OrderRepo) Create(ctx context.Context, o model.Order) (model.Order, error) {
	o.ID = ""
	return store.Create[model.Order](ctx, r.Store, ordersCollection, o)
}

// ListByUser returns the user's orders, newest first.
func (r *OrderRepo) ListByUser(ctx context.Context, userID model.ID) ([]model.Order, error) {
	q := url.Values{"userId": {userID.String()}, "_sort": {"createdAt"}, "_order": {"desc"}}
	orders, _, err := store.List[model.Order](ctx, r.Store, ordersCollection, q)
	return orders, err
}
