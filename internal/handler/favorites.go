package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/lawshop/internal/cart"
	"github.com/iliyamo/lawshop/internal/favorites"
	"github.com/iliyamo/lawshop/internal/middleware"
	"github.com/iliyamo/lawshop/internal/model"
	"github.com/iliyamo/lawshop/internal/repository"
)

// FavoritesHandler serves the signed-in user's bookmarks.
type FavoritesHandler struct {
	Favorites *repository.FavoriteRepo
	Services  *repository.ServiceRepo
	Carts     *repository.CartRepo
}

func NewFavoritesHandler(favs *repository.FavoriteRepo, services *repository.ServiceRepo, carts *repository.CartRepo) *FavoritesHandler {
	return &FavoritesHandler{Favorites: favs, Services: services, Carts: carts}
}

type favoriteReq struct {
	ServiceID model.ID `json:"serviceId"`
}

func (h *FavoritesHandler) list(c echo.Context) *favorites.List {
	return favorites.New(h.Favorites, model.ID(middleware.UserID(c)))
}

func (h *FavoritesHandler) service(c echo.Context) (model.Service, error) {
	var req favoriteReq
	if err := c.Bind(&req); err != nil || req.ServiceID.IsZero() {
		return model.Service{}, errBadBody
	}
	return h.Services.GetByID(c.Request().Context(), req.ServiceID)
}

func (h *FavoritesHandler) List(c echo.Context) error {
	items, err := h.list(c).Items(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Add bookmarks a service; 201 when it was added, 200 when it already was.
func (h *FavoritesHandler) Add(c echo.Context) error {
	svc, err := h.service(c)
	if err != nil {
		return writeError(c, err)
	}
	fav, added, err := h.list(c).Add(c.Request().Context(), svc)
	if err != nil {
		return writeError(c, err)
	}
	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	return c.JSON(status, echo.Map{"favorite": fav, "added": added})
}

func (h *FavoritesHandler) Toggle(c echo.Context) error {
	svc, err := h.service(c)
	if err != nil {
		return writeError(c, err)
	}
	on, err := h.list(c).Toggle(c.Request().Context(), svc)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"serviceId": svc.ID, "favorite": on})
}

// owned checks that id is in the caller's list.
func (h *FavoritesHandler) owned(c echo.Context, l *favorites.List, id model.ID) error {
	items, err := l.Items(c.Request().Context())
	if err != nil {
		return err
	}
	for _, f := range items {
		if f.ID == id {
			return nil
		}
	}
	return favorites.ErrNotFound
}

func (h *FavoritesHandler) Remove(c echo.Context) error {
	id, _ := pathID(c, "id")
	l := h.list(c)
	if err := h.owned(c, l, id); err != nil {
		return writeError(c, err)
	}
	if err := l.Remove(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ToCart adds the favorite's service to the caller's cart.
func (h *FavoritesHandler) ToCart(c echo.Context) error {
	id, _ := pathID(c, "id")
	ctx := c.Request().Context()
	crt := cart.New(h.Carts, model.ID(middleware.UserID(c)))
	if _, err := crt.Refresh(ctx); err != nil {
		return writeError(c, err)
	}
	line, err := h.list(c).MoveToCart(ctx, id, crt)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"line": line, "cart": viewOf(crt)})
}
