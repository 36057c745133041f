package catalog

import (
	"math"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

const (
	// DefaultPageSize is the number of cards on one catalog page.
	DefaultPageSize = 8

	TopRatedThreshold     = 4.8
	ShortSessionThreshold = 60
)

// Range is an optional numeric interval; a nil bound is unbounded.
type Range struct {
	Min *float64
	Max *float64
}

// FilterState is everything the visitor has chosen on the catalog page.
// It is plain data: every mutation goes through a method that also resets
// Page to 1, and BuildQuery projects it onto store query parameters.
type FilterState struct {
	Search      string
	Sort        SortKey
	Categories  []string
	Price       Range
	Rating      Range
	Duration    Range
	Format      string
	Audience    string
	InStockOnly bool
	Page        int
	PageSize    int
}

// NewFilterState returns the initial catalog state.
func NewFilterState(pageSize int) FilterState {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return FilterState{Sort: SortNone, Page: 1, PageSize: pageSize}
}

// Advanced holds the fields of the advanced filter form.
type Advanced struct {
	Price    Range
	Rating   Range
	Duration Range
	Format   string
	Audience string
}

func (s *FilterState) SetSearch(q string) {
	s.Search = q
	s.Page = 1
}

func (s *FilterState) SetSort(k SortKey) {
	s.Sort = ParseSortKey(string(k))
	s.Page = 1
}

// ToggleCategory adds or removes one category from the OR-combined set.
func (s *FilterState) ToggleCategory(cat string, on bool) {
	cat = strings.TrimSpace(cat)
	if cat == "" {
		return
	}
	kept := s.Categories[:0:0]
	for _, c := range s.Categories {
		if c != cat {
			kept = append(kept, c)
		}
	}
	if on {
		kept = append(kept, cat)
	}
	s.Categories = kept
	s.Page = 1
}

func (s *FilterState) HasCategory(cat string) bool {
	for _, c := range s.Categories {
		if c == cat {
			return true
		}
	}
	return false
}

// SetAdvanced applies the advanced form in one step.
func (s *FilterState) SetAdvanced(a Advanced) {
	s.Price, s.Rating, s.Duration = a.Price, a.Rating, a.Duration
	s.Format = strings.TrimSpace(a.Format)
	s.Audience = strings.TrimSpace(a.Audience)
	s.Page = 1
}

// ResetAdvanced clears ranges, format and audience but keeps search,
// sort, categories and the stock toggle.
func (s *FilterState) ResetAdvanced() {
	s.SetAdvanced(Advanced{})
}

// Reset returns to the initial state, keeping the page size.
func (s *FilterState) Reset() {
	*s = NewFilterState(s.PageSize)
}

func (s *FilterState) ToggleInStock() {
	s.InStockOnly = !s.InStockOnly
	s.Page = 1
}

func (s *FilterState) TopRated() bool {
	return s.Rating.Min != nil && *s.Rating.Min >= TopRatedThreshold
}

// ToggleTopRated sets the minimum rating to 4.8, or clears it when the
// quick filter is already on.
func (s *FilterState) ToggleTopRated() {
	if s.TopRated() {
		s.Rating.Min = nil
	} else {
		v := TopRatedThreshold
		s.Rating.Min = &v
	}
	s.Page = 1
}

func (s *FilterState) ShortSessions() bool {
	return s.Duration.Max != nil && *s.Duration.Max <= ShortSessionThreshold
}

// ToggleShortSessions caps the duration at 60 minutes, or clears the cap.
func (s *FilterState) ToggleShortSessions() {
	if s.ShortSessions() {
		s.Duration.Max = nil
	} else {
		v := float64(ShortSessionThreshold)
		s.Duration.Max = &v
	}
	s.Page = 1
}

// GoToPage moves to page when it is a different page within range and
// reports whether the state changed.
func (s *FilterState) GoToPage(page, totalPages int) bool {
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 || page == s.Page || page > totalPages {
		return false
	}
	s.Page = page
	return true
}

func (s FilterState) pageSize() int {
	if s.PageSize < 1 {
		return DefaultPageSize
	}
	return s.PageSize
}

func (s FilterState) page() int {
	if s.Page < 1 {
		return 1
	}
	return s.Page
}

// FilterParams projects the filters and sort order onto store query
// parameters. Inactive filters contribute nothing.
func FilterParams(s FilterState) url.Values {
	q := url.Values{}
	if v := strings.TrimSpace(s.Search); v != "" {
		q.Set("q", v)
	}
	if spec, ok := s.Sort.Spec(); ok {
		q.Set("_sort", spec.Field)
		q.Set("_order", spec.Order)
	}
	for _, c := range distinctSorted(s.Categories) {
		q.Add("category", c)
	}
	if s.InStockOnly {
		q.Set("inStock", "true")
	}
	setBound(q, "price_gte", s.Price.Min)
	setBound(q, "price_lte", s.Price.Max)
	setBound(q, "rating_gte", s.Rating.Min)
	setBound(q, "rating_lte", s.Rating.Max)
	setBound(q, "durationMinutes_gte", s.Duration.Min)
	setBound(q, "durationMinutes_lte", s.Duration.Max)
	if v := strings.TrimSpace(s.Format); v != "" {
		q.Set("format", v)
	}
	if v := strings.TrimSpace(s.Audience); v != "" {
		q.Set("audience_like", v)
	}
	return q
}

// BuildQuery is FilterParams plus the page window.
func BuildQuery(s FilterState) url.Values {
	q := FilterParams(s)
	q.Set("_page", strconv.Itoa(s.page()))
	q.Set("_limit", strconv.Itoa(s.pageSize()))
	return q
}

// ActiveFilterCount counts active filters; the category set counts once
// and the sort order is not a filter.
func ActiveFilterCount(s FilterState) int {
	n := 0
	for _, on := range []bool{
		strings.TrimSpace(s.Search) != "",
		len(distinctSorted(s.Categories)) > 0,
		s.InStockOnly,
		s.Price.Min != nil, s.Price.Max != nil,
		s.Rating.Min != nil, s.Rating.Max != nil,
		s.Duration.Min != nil, s.Duration.Max != nil,
		strings.TrimSpace(s.Format) != "",
		strings.TrimSpace(s.Audience) != "",
	} {
		if on {
			n++
		}
	}
	return n
}

// ParseNumber reads a form number, accepting a comma as the decimal
// separator. Blank or non-numeric input yields nil.
func ParseNumber(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(strings.Replace(raw, ",", ".", 1), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func setBound(q url.Values, key string, v *float64) {
	if v != nil {
		q.Set(key, strconv.FormatFloat(*v, 'f', -1, 64))
	}
}

func distinctSorted(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, c := range in {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
