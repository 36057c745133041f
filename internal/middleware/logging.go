package middleware

import (
    "time"

    "github.com/google/uuid"
    "github.com/labstack/echo/v4"
    "go.uber.org/zap"

    "github.com/iliyamo/lawshop/internal/logger"
)

// HeaderRequestID carries the request id in both directions.
const HeaderRequestID = "X-Request-ID"

// RequestLogger assigns a request id (the caller's X-Request-ID or a fresh
// uuid), puts it on the request context for the logger helpers and logs
// one line per request.
func RequestLogger() echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            req := c.Request()
            id := req.Header.Get(HeaderRequestID)
            if id == "" {
                id = uuid.NewString()
            }
            c.Response().Header().Set(HeaderRequestID, id)
            ctx := logger.WithRequestID(req.Context(), id)
            c.SetRequest(req.WithContext(ctx))

            start := time.Now()
            err := next(c)
            if err != nil {
                c.Error(err)
            }

            fields := []zap.Field{
                zap.String("method", req.Method),
                zap.String("path", req.URL.Path),
                zap.String("route", c.Path()),
                zap.Int("status", c.Response().Status),
                zap.Duration("latency", time.Since(start)),
                zap.String("user", identityOrGuest(c)),
            }
            if c.Response().Status >= 500 {
                logger.Error(ctx, "request failed", err, fields...)
            } else {
                logger.Info(ctx, "request", fields...)
            }
            return nil
        }
    }
}
