package handler

import (
	"net/http"
	"sort"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/lawshop/internal/feedback"
	"github.com/iliyamo/lawshop/internal/model"
	"github.com/iliyamo/lawshop/internal/repository"
)

// FeedbackHandler serves review eligibility and submission.
type FeedbackHandler struct {
	Users    *repository.UserRepo
	Services *repository.ServiceRepo
	Reviews  *feedback.Service
}

func NewFeedbackHandler(users *repository.UserRepo, services *repository.ServiceRepo, reviews *feedback.Service) *FeedbackHandler {
	return &FeedbackHandler{Users: users, Services: services, Reviews: reviews}
}

// Eligibility lists the services the caller may review. Titles come from
// the catalog; a purchased service that has since been deleted is listed
// by id only.
func (h *FeedbackHandler) Eligibility(c echo.Context) error {
	user, err := currentUser(c, h.Users)
	if err != nil {
		return writeError(c, err)
	}
	ctx := c.Request().Context()
	purchased, err := h.Reviews.Eligibility(ctx, user)
	if err != nil {
		return writeError(c, err)
	}

	titles := map[model.ID]string{}
	if all, err := h.Services.All(ctx); err == nil {
		for _, s := range all {
			titles[s.ID] = s.Title
		}
	}
	type option struct {
		ServiceID model.ID `json:"serviceId"`
		Title     string   `json:"title,omitempty"`
	}
	out := make([]option, 0, len(purchased))
	for id := range purchased {
		out = append(out, option{ServiceID: id, Title: titles[id]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ServiceID < out[j].ServiceID })
	return c.JSON(http.StatusOK, echo.Map{"eligible": true, "services": out})
}

// Submit stores a pending review.
func (h *FeedbackHandler) Submit(c echo.Context) error {
	user, err := currentUser(c, h.Users)
	if err != nil {
		return writeError(c, err)
	}
	var in feedback.Input
	if err := c.Bind(&in); err != nil {
		return badBody(c)
	}
	fb, err := h.Reviews.Submit(c.Request().Context(), user, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, fb)
}
