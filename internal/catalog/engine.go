// Package catalog turns the visitor's filter choices into store queries,
// loads one page of services at a time and keeps the page number inside
// the result set.
package catalog

import (
	"context"
	"fmt"
	"net/url"

	"go.uber.org/zap"

	"github.com/iliyamo/lawshop/internal/logger"
	"github.com/iliyamo/lawshop/internal/model"
)

// LoadFailedMessage is shown in place of results when the store is unreachable.
const LoadFailedMessage = "Unable to load catalog data."

// Source is the part of the service repository the engine needs.
type Source interface {
	Search(ctx context.Context, q url.Values) ([]model.Service, int, error)
	All(ctx context.Context) ([]model.Service, error)
}

// Result is one rendered catalog page.
type Result struct {
	Items         []model.Service `json:"items"`
	Total         int             `json:"total"`
	Page          int             `json:"page"`
	PageSize      int             `json:"pageSize"`
	TotalPages    int             `json:"totalPages"`
	ActiveFilters int             `json:"activeFilters"`
	Pager         Pager           `json:"pager"`
	Message       string          `json:"message,omitempty"`
	Err           error           `json:"-"`
}

// Status renders the line above the grid.
func (r Result) Status() string {
	if r.Err != nil {
		return LoadFailedMessage
	}
	if r.Total == 0 {
		return "No services found. Try adjusting your filters."
	}
	s := fmt.Sprintf("Showing %d of %d services (page %d of %d)", len(r.Items), r.Total, r.Page, r.TotalPages)
	if r.ActiveFilters > 0 {
		s += fmt.Sprintf(" | active filters: %d", r.ActiveFilters)
	}
	return s
}

// Engine loads catalog pages from a Source.
type Engine struct {
	src Source
}

func NewEngine(src Source) *Engine { return &Engine{src: src} }

// Load fetches the page state points at. When the page has fallen past the
// end of the result set (items removed, filters narrowed) the state is
// moved to the last page and the request is re-issued once. A failed
// request yields an empty result with Err set; the filters are left as they
// were so the visitor can retry.
func (e *Engine) Load(ctx context.Context, state *FilterState) Result {
	if state.Page < 1 {
		state.Page = 1
	}
	if state.PageSize < 1 {
		state.PageSize = DefaultPageSize
	}

	for attempt := 0; ; attempt++ {
		items, total, err := e.src.Search(ctx, BuildQuery(*state))
		if err != nil {
			logger.Error(ctx, "catalog load failed", err, zap.Int("page", state.Page))
			return Result{
				Items:         []model.Service{},
				Page:          state.Page,
				PageSize:      state.PageSize,
				TotalPages:    1,
				ActiveFilters: ActiveFilterCount(*state),
				Pager:         NewPager(state.Page, 0, state.PageSize),
				Message:       LoadFailedMessage,
				Err:           err,
			}
		}

		pages := TotalPages(total, state.PageSize)
		if len(items) == 0 && state.Page > 1 && state.Page > pages && attempt == 0 {
			logger.Debug(ctx, "catalog page past end, reloading last page",
				zap.Int("page", state.Page), zap.Int("totalPages", pages))
			state.Page = pages
			continue
		}

		r := Result{
			Items:         items,
			Total:         total,
			Page:          state.Page,
			PageSize:      state.PageSize,
			TotalPages:    pages,
			ActiveFilters: ActiveFilterCount(*state),
			Pager:         NewPager(state.Page, total, state.PageSize),
		}
		r.Message = r.Status()
		return r
	}
}

// Vocabulary loads the full catalog and derives the filter vocabulary. On
// failure it returns an empty vocabulary alongside the error.
func (e *Engine) Vocabulary(ctx context.Context) (Vocabulary, error) {
	items, err := e.src.All(ctx)
	if err != nil {
		logger.Warn(ctx, "catalog vocabulary unavailable", zap.Error(err))
		return DiscoverVocabulary(nil), err
	}
	return DiscoverVocabulary(items), nil
}
