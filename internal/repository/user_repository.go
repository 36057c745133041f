package repository

import (
	"context"
	"net/url"
	"strings"

	"github.com/iliyamo/lawshop/internal/model"
	"github.com/iliyamo/lawshop/internal/store"
)

const usersCollection = "users"

// UserRepo looks users up by the lowercase copies of email and nickname the
// registration flow writes, so lookups are case-insensitive without relying
// on store-side collation.
type UserRepo struct{ Store *store.Client }

func NewUserRepo(c *store.Client) *UserRepo { return &UserRepo{Store: c} }

func (r *UserRepo) findBy(ctx context.Context, field, value string) ([]model.User, error) {
	q := url.Values{field: {strings.ToLower(strings.TrimSpace(value))}}
	users, _, err := store.List[model.User](ctx, r.Store, usersCollection, q)
	return users, err
}

// FindByEmail returns every user whose emailLower matches email.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) ([]model.User, error) {
	return r.findBy(ctx, "emailLower", email)
}

// FindByNickname returns every user whose nicknameLower matches nickname.
func (r *UserRepo) FindByNickname(ctx context.Context, nickname string) ([]model.User, error) {
	return r.findBy(ctx, "nicknameLower", nickname)
}

func (r *UserRepo) GetByID(ctx context.Context, id model.ID) (model.User, error) {
	return store.Get[model.User](ctx, r.Store, usersCollection, id.String())
}

func (r *UserRepo) All(ctx context.Context) ([]model.User, error) {
	users, _, err := store.List[model.User](ctx, r.Store, usersCollection, nil)
	return users, err
}

func (r *UserRepo) Create(ctx context.Context, u model.User) (model.User, error) {
	u.ID = ""
	return store.Create[model.User](ctx, r.Store, usersCollection, u)
}

// Patch merges fields into the user document and returns the stored result.
func (r *UserRepo) Patch(ctx context.Context, id model.ID, fields map[string]any) (model.User, error) {
	return store.Patch[model.User](ctx, r.Store, usersCollection, id.String(), fields)
}
