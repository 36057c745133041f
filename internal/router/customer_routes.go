package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/lawshop/internal/handler"
	"github.com/iliyamo/lawshop/internal/middleware"
)

// signedInRoles are the roles allowed on every signed-in route.
var signedInRoles = []string{"customer", "administrator"}

// Customer groups the handlers of the signed-in storefront.
type Customer struct {
	Cart      *handler.CartHandler
	Favorites *handler.FavoritesHandler
	Feedback  *handler.FeedbackHandler
}

// RegisterCustomer registers cart, favorites and review endpoints under
// /v1. All routes require a valid JWT; cart and favorites are scoped to
// its subject.
func RegisterCustomer(e *echo.Echo, h Customer, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(signedInRoles...),
	)

	g.GET("/cart", h.Cart.Get)
	g.POST("/cart", h.Cart.Add)
	g.POST("/cart/checkout", h.Cart.Checkout)
	g.PATCH("/cart/:id", h.Cart.SetQuantity)
	g.DELETE("/cart/:id", h.Cart.Remove)
	g.POST("/cart/:id/step", h.Cart.Step)

	g.GET("/favorites", h.Favorites.List)
	g.POST("/favorites", h.Favorites.Add)
	g.POST("/favorites/toggle", h.Favorites.Toggle)
	g.DELETE("/favorites/:id", h.Favorites.Remove)
	g.POST("/favorites/:id/cart", h.Favorites.ToCart)

	g.GET("/feedback/eligibility", h.Feedback.Eligibility)
	g.POST("/feedback", h.Feedback.Submit)
}
