package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/lawshop/internal/handler"
	"github.com/iliyamo/lawshop/internal/middleware"
)

// RegisterAdmin registers the admin console under /v1/admin. All routes
// require a valid JWT and the administrator role. invalidate runs after
// every write so cached catalog pages do not outlive a change.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, jwtSecret string, invalidate echo.MiddlewareFunc) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("administrator"),
		invalidate,
	)

	g.GET("/dashboard", h.Dashboard)

	// ---- Services ----
	g.POST("/services", h.CreateService)
	g.PUT("/services/:id", h.UpdateService)
	g.DELETE("/services/:id", h.DeleteService)

	// ---- Reviews ----
	g.GET("/reviews", h.ListReviews)
	g.DELETE("/reviews/:id", h.DeleteReview)
}
