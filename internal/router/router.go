package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/lawshop/internal/admin"
	"github.com/iliyamo/lawshop/internal/cart"
	"github.com/iliyamo/lawshop/internal/config"
	"github.com/iliyamo/lawshop/internal/feedback"
	"github.com/iliyamo/lawshop/internal/handler"
	"github.com/iliyamo/lawshop/internal/middleware"
	"github.com/iliyamo/lawshop/internal/repository"
	"github.com/iliyamo/lawshop/internal/store"
)

// Deps is everything the gateway is built from. Redis and Notifier may be
// nil: the cache and rate limiter then pass requests through and orders
// are placed without events.
type Deps struct {
	Cfg       config.Config
	Cache     config.CacheConfig
	RateLimit config.RateLimitConfig
	Store     *store.Client
	Redis     *redis.Client
	Notifier  cart.Notifier
}

// New builds the echo instance with every route registered.
func New(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger())
	e.Use(middleware.NewTokenBucket(d.RateLimit, d.Redis))

	services := repository.NewServiceRepo(d.Store)
	users := repository.NewUserRepo(d.Store)
	carts := repository.NewCartRepo(d.Store)
	favs := repository.NewFavoriteRepo(d.Store)
	orders := repository.NewOrderRepo(d.Store)
	reviews := repository.NewFeedbackRepo(d.Store)
	reviewSvc := feedback.NewService(orders, reviews)

	RegisterRoutes(e)
	RegisterPublic(e, handler.NewCatalogHandler(d.Cfg, services, reviewSvc), middleware.NewRedisCache(d.Cache, d.Redis))
	RegisterAuth(e, handler.NewAuthHandler(d.Cfg, users), d.Cfg.JWTSecret, middleware.NewAuthTokenBucket(d.RateLimit, d.Redis))
	RegisterCustomer(e, Customer{
		Cart:      handler.NewCartHandler(carts, services, users, cart.NewCheckout(orders, d.Notifier)),
		Favorites: handler.NewFavoritesHandler(favs, services, carts),
		Feedback:  handler.NewFeedbackHandler(users, services, reviewSvc),
	}, d.Cfg.JWTSecret)
	RegisterAdmin(e, handler.NewAdminHandler(users, admin.NewConsole(services, users, reviews)), d.Cfg.JWTSecret,
		middleware.InvalidateCache(d.Cache, d.Redis))
	return e
}

// RegisterRoutes registers routes that do not require authentication and
// do not touch the catalog.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterPublic registers the catalog browse endpoints. cache wraps the
// read-only catalog routes.
func RegisterPublic(e *echo.Echo, h *handler.CatalogHandler, cache echo.MiddlewareFunc) {
	g := e.Group("/v1", cache)
	g.GET("/services", h.List)
	g.GET("/services/:id", h.Get)
	g.GET("/services/:id/feedback", h.Feedback)
	g.GET("/catalog/vocabulary", h.Vocabulary)
}

// RegisterAuth registers the registration and sign-in routes under
// /v1/auth behind the auth rate limit, and the profile routes under /v1
// behind a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, limit echo.MiddlewareFunc) {
	g := e.Group("/v1/auth", limit)
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.GET("/check-email", a.CheckEmail)
	g.GET("/check-nickname", a.CheckNickname)
	g.POST("/suggest-nickname", a.SuggestNickname)
	g.POST("/suggest-password", a.SuggestPassword)

	me := e.Group("/v1/me", middleware.JWTAuth(jwtSecret), middleware.RequireRole(signedInRoles...))
	me.GET("", a.Me)
	me.PATCH("", a.UpdateMe)
}
