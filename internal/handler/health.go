package handler // declare the package name; contains HTTP handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health is a simple health-check endpoint used by load balancers and
// monitoring systems to verify that the gateway is running.  It does not
// touch the document store.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
