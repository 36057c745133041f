package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/lawshop/internal/cart"
	"github.com/iliyamo/lawshop/internal/middleware"
	"github.com/iliyamo/lawshop/internal/model"
	"github.com/iliyamo/lawshop/internal/repository"
)

// CartHandler serves the signed-in user's cart. Lines are scoped to the
// token subject.
type CartHandler struct {
	Carts    *repository.CartRepo
	Services *repository.ServiceRepo
	Users    *repository.UserRepo
	Orders   *cart.Checkout
}

func NewCartHandler(carts *repository.CartRepo, services *repository.ServiceRepo, users *repository.UserRepo, checkout *cart.Checkout) *CartHandler {
	return &CartHandler{Carts: carts, Services: services, Users: users, Orders: checkout}
}

type addReq struct {
	ServiceID model.ID `json:"serviceId"`
	Quantity  int      `json:"quantity"`
}

type stepReq struct {
	Delta int `json:"delta"`
}

// quantityReq accepts the quantity as a number or as the raw text of the
// input box.
type quantityReq struct {
	Quantity json.RawMessage `json:"quantity"`
}

func (r quantityReq) text() string {
	return strings.Trim(strings.TrimSpace(string(r.Quantity)), `"`)
}

type cartView struct {
	Items            []model.CartItem   `json:"items"`
	Totals           string             `json:"totals"`
	TotalsByCurrency map[string]float64 `json:"totalsByCurrency"`
	ItemCount        int                `json:"itemCount"`
}

func viewOf(c *cart.Cart) cartView {
	t := c.Totals()
	return cartView{Items: c.Items(), Totals: t.String(), TotalsByCurrency: t.Rounded(), ItemCount: t.Count}
}

// load returns the caller's cart refreshed from the store.
func (h *CartHandler) load(c echo.Context) (*cart.Cart, error) {
	crt := cart.New(h.Carts, model.ID(middleware.UserID(c)))
	if _, err := crt.Refresh(c.Request().Context()); err != nil {
		return nil, err
	}
	return crt, nil
}

func (h *CartHandler) Get(c echo.Context) error {
	crt, err := h.load(c)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, viewOf(crt))
}

// Add puts a service in the cart; repeated adds grow the same line.
func (h *CartHandler) Add(c echo.Context) error {
	var req addReq
	if err := c.Bind(&req); err != nil || req.ServiceID.IsZero() {
		return badBody(c)
	}
	ctx := c.Request().Context()
	svc, err := h.Services.GetByID(ctx, req.ServiceID)
	if err != nil {
		return writeError(c, err)
	}
	crt, err := h.load(c)
	if err != nil {
		return writeError(c, err)
	}
	line, err := crt.Add(ctx, svc, req.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"line": line, "cart": viewOf(crt)})
}

// SetQuantity applies a typed quantity. Non-numeric input is rejected with
// the last stored quantity so the client can revert the box.
func (h *CartHandler) SetQuantity(c echo.Context) error {
	id, _ := pathID(c, "id")
	var req quantityReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	crt, err := h.load(c)
	if err != nil {
		return writeError(c, err)
	}
	qty, err := crt.Edit(c.Request().Context(), id, req.text())
	if errors.Is(err, cart.ErrInvalidQuantity) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error(), "quantity": qty})
	}
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, viewOf(crt))
}

// Step moves a line by delta, +1 when the body is empty.
func (h *CartHandler) Step(c echo.Context) error {
	id, _ := pathID(c, "id")
	req := stepReq{Delta: 1}
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	crt, err := h.load(c)
	if err != nil {
		return writeError(c, err)
	}
	if _, err := crt.Step(c.Request().Context(), id, req.Delta); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, viewOf(crt))
}

func (h *CartHandler) Remove(c echo.Context) error {
	id, _ := pathID(c, "id")
	crt, err := h.load(c)
	if err != nil {
		return writeError(c, err)
	}
	if _, ok := crt.Line(id); !ok {
		return writeError(c, cart.ErrLineNotFound)
	}
	if err := crt.Remove(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, viewOf(crt))
}

// Checkout places an order for the whole cart. When the order is stored
// but some lines could not be removed the response is still 201, with the
// leftover line ids and a warning.
func (h *CartHandler) Checkout(c echo.Context) error {
	user, err := currentUser(c, h.Users)
	if err != nil {
		return writeError(c, err)
	}
	crt, err := h.load(c)
	if err != nil {
		return writeError(c, err)
	}
	receipt, err := h.Orders.Run(c.Request().Context(), crt, user)
	switch {
	case errors.Is(err, cart.ErrCleanupIncomplete):
		return c.JSON(http.StatusCreated, echo.Map{"receipt": receipt, "warning": err.Error(), "cart": viewOf(crt)})
	case err != nil:
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"receipt": receipt, "cart": viewOf(crt)})
}
