package catalog

// MaxVisiblePages is the width of the page-number window.
const MaxVisiblePages = 5

// Pager describes the pagination bar under the catalog grid.
type Pager struct {
	Visible    bool  `json:"visible"`
	Page       int   `json:"page"`
	TotalPages int   `json:"totalPages"`
	Pages      []int `json:"pages"`
	HasPrev    bool  `json:"hasPrev"`
	HasNext    bool  `json:"hasNext"`
}

// TotalPages is max(1, ceil(total/pageSize)).
func TotalPages(total, pageSize int) int {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if total <= 0 {
		return 1
	}
	return (total + pageSize - 1) / pageSize
}

// NewPager centers a window of up to five page numbers on page. The bar is
// hidden when every result fits on one page.
func NewPager(page, total, pageSize int) Pager {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	pages := TotalPages(total, pageSize)
	if page < 1 {
		page = 1
	}
	p := Pager{
		Visible:    total > pageSize,
		Page:       page,
		TotalPages: pages,
		HasPrev:    page > 1,
		HasNext:    page < pages,
	}
	if !p.Visible {
		return p
	}

	start := max(1, page-MaxVisiblePages/2)
	end := min(pages, start+MaxVisiblePages-1)
	if end-start < MaxVisiblePages-1 {
		start = max(1, end-MaxVisiblePages+1)
	}
	for n := start; n <= end; n++ {
		p.Pages = append(p.Pages, n)
	}
	return p
}
