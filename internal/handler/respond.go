// Package handler exposes the storefront flows as echo handlers. Every
// handler reports failures as {"error": "..."} JSON, with "fields" added
// for validation failures; writeError is the one place errors become
// status codes.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/lawshop/internal/admin"
	"github.com/iliyamo/lawshop/internal/auth"
	"github.com/iliyamo/lawshop/internal/cart"
	"github.com/iliyamo/lawshop/internal/favorites"
	"github.com/iliyamo/lawshop/internal/feedback"
	"github.com/iliyamo/lawshop/internal/logger"
	"github.com/iliyamo/lawshop/internal/model"
	"github.com/iliyamo/lawshop/internal/store"
)

// Messages for failures that have no domain message of their own.
const (
	msgInvalidBody      = "invalid body"
	msgNotFound         = "not found"
	msgStoreUnavailable = "store unavailable, try again later"
	msgInternal         = "internal error"
	msgConfirm          = "confirmation required: repeat the request with confirm=true"
)

// errBadBody lets helpers that bind a request report a malformed body
// through writeError.
var errBadBody = errors.New(msgInvalidBody)

func writeError(c echo.Context, err error) error {
	ctx := c.Request().Context()

	var (
		authErr     *auth.ValidationError
		draftErr    admin.FieldErrors
		feedbackErr *feedback.ValidationError
		statusErr   *store.StatusError
	)
	switch {
	case errors.Is(err, errBadBody):
		return badBody(c)
	case errors.As(err, &authErr):
		status := http.StatusBadRequest
		if uniquenessConflict(authErr) {
			status = http.StatusConflict
		}
		return c.JSON(status, echo.Map{"error": "validation failed", "fields": authErr.Fields})
	case errors.As(err, &draftErr):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": draftErr})
	case errors.As(err, &feedbackErr):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": feedbackErr.Fields})

	case errors.Is(err, auth.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": auth.MsgLoginFailed.Error()})
	case errors.Is(err, admin.ErrAuthRequired), errors.Is(err, feedback.ErrSignInRequired), errors.Is(err, cart.ErrSignInRequired):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": err.Error()})
	case errors.Is(err, admin.ErrAccessRestricted), errors.Is(err, feedback.ErrAdministrator), errors.Is(err, feedback.ErrNoPurchases):
		return c.JSON(http.StatusForbidden, echo.Map{"error": err.Error()})

	case errors.Is(err, admin.ErrNotConfirmed):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msgConfirm})
	case errors.Is(err, cart.ErrEmptyCart), errors.Is(err, cart.ErrInvalidQuantity):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, auth.ErrSubmitInProgress), errors.Is(err, auth.MsgNicknameExhausted):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})

	case errors.Is(err, store.ErrNotFound), errors.Is(err, cart.ErrLineNotFound), errors.Is(err, favorites.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": msgNotFound})

	case errors.Is(err, cart.ErrOrderNotPlaced), errors.Is(err, auth.MsgNicknameUnverified), errors.As(err, &statusErr):
		logger.Error(ctx, "store request failed", err)
		return c.JSON(http.StatusBadGateway, echo.Map{"error": msgStoreUnavailable})
	}

	logger.Error(ctx, "request failed", err)
	return c.JSON(http.StatusBadGateway, echo.Map{"error": msgStoreUnavailable})
}

// uniquenessConflict reports whether the only failures are taken values.
func uniquenessConflict(e *auth.ValidationError) bool {
	if len(e.Fields) == 0 {
		return false
	}
	for _, msg := range e.Fields {
		switch auth.Message(msg) {
		case auth.MsgEmailTaken, auth.MsgNicknameTaken, auth.MsgNicknameExists:
		default:
			return false
		}
	}
	return true
}

func badBody(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": msgInvalidBody})
}

// pathID reads a document id path parameter.
func pathID(c echo.Context, name string) (model.ID, bool) {
	v := c.Param(name)
	if v == "" {
		return "", false
	}
	return model.ID(v), true
}

func confirmed(c echo.Context) admin.Confirm {
	ok, _ := strconv.ParseBool(c.QueryParam("confirm"))
	return func() bool { return ok }
}
