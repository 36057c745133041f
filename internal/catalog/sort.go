package catalog

// SortKey names one of the catalog orderings offered to visitors.
type SortKey string

const (
	SortNone         SortKey = "none"
	SortPriceAsc     SortKey = "priceAsc"
	SortPriceDesc    SortKey = "priceDesc"
	SortTitleAsc     SortKey = "titleAsc"
	SortTitleDesc    SortKey = "titleDesc"
	SortRatingAsc    SortKey = "ratingAsc"
	SortRatingDesc   SortKey = "ratingDesc"
	SortDurationAsc  SortKey = "durationAsc"
	SortDurationDesc SortKey = "durationDesc"
)

// SortSpec is the store-side field and direction behind a SortKey.
type SortSpec struct {
	Field string
	Order string
}

var sortSpecs = map[SortKey]SortSpec{
	SortPriceAsc:     {"price", "asc"},
	SortPriceDesc:    {"price", "desc"},
	SortTitleAsc:     {"title", "asc"},
	SortTitleDesc:    {"title", "desc"},
	SortRatingAsc:    {"rating", "asc"},
	SortRatingDesc:   {"rating", "desc"},
	SortDurationAsc:  {"durationMinutes", "asc"},
	SortDurationDesc: {"durationMinutes", "desc"},
}

// SortKeys lists every key in menu order.
var SortKeys = []SortKey{
	SortNone, SortPriceAsc, SortPriceDesc, SortTitleAsc, SortTitleDesc,
	SortRatingAsc, SortRatingDesc, SortDurationAsc, SortDurationDesc,
}

// ParseSortKey maps unknown or empty input to SortNone.
func ParseSortKey(s string) SortKey {
	k := SortKey(s)
	if _, ok := sortSpecs[k]; ok {
		return k
	}
	return SortNone
}

// Spec returns the field/order pair; ok is false for SortNone.
func (k SortKey) Spec() (SortSpec, bool) {
	s, ok := sortSpecs[k]
	return s, ok
}
