package middleware

// identity.go holds the accessors for the identity JWTAuth stores in the
// echo context. Handlers and the rate limiter read it through these.

import (
    "strings"

    "github.com/labstack/echo/v4"
)

const (
    ctxUserID = "user_id"
    ctxRole   = "role"
)

// UserID returns the authenticated user's id, or "" for anonymous requests.
func UserID(c echo.Context) string {
    if s, ok := c.Get(ctxUserID).(string); ok {
        return s
    }
    return ""
}

// Role returns the authenticated user's role, or "".
func Role(c echo.Context) string {
    if s, ok := c.Get(ctxRole).(string); ok {
        return s
    }
    return ""
}

// IsAdmin reports whether the caller holds the administrator role. Stored
// roles are compared case-insensitively.
func IsAdmin(c echo.Context) bool {
    return strings.EqualFold(Role(c), "administrator")
}

func identityOrGuest(c echo.Context) string {
    if id := UserID(c); id != "" {
        return id
    }
    return "guest"
}
