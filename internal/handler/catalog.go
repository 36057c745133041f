package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/lawshop/internal/catalog"
	"github.com/iliyamo/lawshop/internal/config"
	"github.com/iliyamo/lawshop/internal/feedback"
	"github.com/iliyamo/lawshop/internal/repository"
)

// CatalogHandler serves the public catalog.
type CatalogHandler struct {
	Cfg      config.Config
	Engine   *catalog.Engine
	Services *repository.ServiceRepo
	Reviews  *feedback.Service
}

func NewCatalogHandler(cfg config.Config, services *repository.ServiceRepo, reviews *feedback.Service) *CatalogHandler {
	return &CatalogHandler{Cfg: cfg, Engine: catalog.NewEngine(services), Services: services, Reviews: reviews}
}

// FilterStateFromQuery reads catalog filters from query parameters.
// Unknown sort keys and unparsable numbers are ignored.
func FilterStateFromQuery(c echo.Context, pageSize int) catalog.FilterState {
	q := c.QueryParams()
	s := catalog.NewFilterState(pageSize)
	s.Search = strings.TrimSpace(q.Get("search"))
	s.Sort = catalog.ParseSortKey(q.Get("sort"))
	for _, v := range q["category"] {
		for _, cat := range strings.Split(v, ",") {
			s.ToggleCategory(strings.TrimSpace(cat), true)
		}
	}
	s.Price = catalog.Range{Min: catalog.ParseNumber(q.Get("priceMin")), Max: catalog.ParseNumber(q.Get("priceMax"))}
	s.Rating = catalog.Range{Min: catalog.ParseNumber(q.Get("ratingMin")), Max: catalog.ParseNumber(q.Get("ratingMax"))}
	s.Duration = catalog.Range{Min: catalog.ParseNumber(q.Get("durationMin")), Max: catalog.ParseNumber(q.Get("durationMax"))}
	s.Format = strings.TrimSpace(q.Get("format"))
	s.Audience = strings.TrimSpace(q.Get("audience"))
	s.InStockOnly, _ = strconv.ParseBool(q.Get("inStock"))
	if page, err := strconv.Atoi(q.Get("page")); err == nil && page > 0 {
		s.Page = page
	} else {
		s.Page = 1
	}
	return s
}

// List returns one catalog page. A page past the end is moved to the last
// page; the response carries the page actually served.
func (h *CatalogHandler) List(c echo.Context) error {
	state := FilterStateFromQuery(c, h.Cfg.CatalogPageSize)
	res := h.Engine.Load(c.Request().Context(), &state)
	if res.Err != nil {
		// The empty grid and pager still render next to the failure.
		return c.JSON(http.StatusBadGateway, struct {
			catalog.Result
			Error string `json:"error"`
		}{res, catalog.LoadFailedMessage})
	}
	return c.JSON(http.StatusOK, res)
}

func (h *CatalogHandler) Get(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	svc, err := h.Services.GetByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, svc)
}

// Vocabulary lists the categories and formats the filters offer.
func (h *CatalogHandler) Vocabulary(c echo.Context) error {
	v, err := h.Engine.Vocabulary(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, v)
}

// Feedback lists the reviews of one service, newest first.
func (h *CatalogHandler) Feedback(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	items, err := h.Reviews.ForService(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
