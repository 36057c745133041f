package handler

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/lawshop/internal/admin"
	"github.com/iliyamo/lawshop/internal/middleware"
	"github.com/iliyamo/lawshop/internal/model"
	"github.com/iliyamo/lawshop/internal/store"
)

type userGetter interface {
	GetByID(ctx context.Context, id model.ID) (model.User, error)
}

// currentUser loads the caller's user record. The role on the record, not
// the one in the token, is what domain gates check. A token whose user no
// longer exists counts as no identity.
func currentUser(c echo.Context, users userGetter) (*model.User, error) {
	id := middleware.UserID(c)
	if id == "" {
		return nil, admin.ErrAuthRequired
	}
	u, err := users.GetByID(c.Request().Context(), model.ID(id))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, admin.ErrAuthRequired
		}
		return nil, err
	}
	u = u.Public()
	return &u, nil
}
