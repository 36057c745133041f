package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/lawshop/internal/admin"
	"github.com/iliyamo/lawshop/internal/model"
	"github.com/iliyamo/lawshop/internal/repository"
)

// AdminHandler exposes the admin console. Routes sit behind
// RequireRole("administrator"); the console checks the stored role again.
type AdminHandler struct {
	Users   *repository.UserRepo
	Console *admin.Console
}

func NewAdminHandler(users *repository.UserRepo, console *admin.Console) *AdminHandler {
	return &AdminHandler{Users: users, Console: console}
}

func reviewFilter(c echo.Context) repository.FeedbackFilter {
	return repository.FeedbackFilter{
		ServiceID: model.ID(c.QueryParam("serviceId")),
		UserID:    model.ID(c.QueryParam("userId")),
	}
}

// Dashboard loads services, users and reviews in one response.
func (h *AdminHandler) Dashboard(c echo.Context) error {
	actor, err := currentUser(c, h.Users)
	if err != nil {
		return writeError(c, err)
	}
	d, err := h.Console.Dashboard(c.Request().Context(), actor, reviewFilter(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, d)
}

func (h *AdminHandler) CreateService(c echo.Context) error {
	actor, err := currentUser(c, h.Users)
	if err != nil {
		return writeError(c, err)
	}
	var d admin.ServiceDraft
	if err := c.Bind(&d); err != nil {
		return badBody(c)
	}
	svc, list, err := h.Console.Create(c.Request().Context(), actor, d)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"service": svc, "services": list})
}

func (h *AdminHandler) UpdateService(c echo.Context) error {
	actor, err := currentUser(c, h.Users)
	if err != nil {
		return writeError(c, err)
	}
	id, _ := pathID(c, "id")
	var d admin.ServiceDraft
	if err := c.Bind(&d); err != nil {
		return badBody(c)
	}
	svc, list, err := h.Console.Update(c.Request().Context(), actor, id, d)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"service": svc, "services": list})
}

// DeleteService needs ?confirm=true.
func (h *AdminHandler) DeleteService(c echo.Context) error {
	actor, err := currentUser(c, h.Users)
	if err != nil {
		return writeError(c, err)
	}
	id, _ := pathID(c, "id")
	list, err := h.Console.Delete(c.Request().Context(), actor, id, confirmed(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"services": list})
}

func (h *AdminHandler) ListReviews(c echo.Context) error {
	actor, err := currentUser(c, h.Users)
	if err != nil {
		return writeError(c, err)
	}
	items, err := h.Console.ListReviews(c.Request().Context(), actor, reviewFilter(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// DeleteReview needs ?confirm=true and returns the list for the same
// serviceId/userId filter.
func (h *AdminHandler) DeleteReview(c echo.Context) error {
	actor, err := currentUser(c, h.Users)
	if err != nil {
		return writeError(c, err)
	}
	id, _ := pathID(c, "id")
	items, err := h.Console.DeleteReview(c.Request().Context(), actor, id, reviewFilter(c), confirmed(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
