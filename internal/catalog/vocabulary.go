package catalog

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/iliyamo/lawshop/internal/model"
)

// Vocabulary is the set of values the category and format filters offer.
type Vocabulary struct {
	Categories []string       `json:"categories"`
	Formats    []model.Format `json:"formats"`
}

// DiscoverVocabulary collects the distinct non-empty categories and formats
// of items. Categories are ordered with Russian collation first so Cyrillic
// and Latin names interleave the way visitors expect; ties fall back to
// English collation.
func DiscoverVocabulary(items []model.Service) Vocabulary {
	cats := map[string]struct{}{}
	formats := map[model.Format]struct{}{}
	for _, it := range items {
		if c := strings.TrimSpace(it.Category); c != "" {
			cats[c] = struct{}{}
		}
		if f := model.Format(strings.TrimSpace(string(it.Format))); f != "" {
			formats[f] = struct{}{}
		}
	}

	v := Vocabulary{Categories: make([]string, 0, len(cats)), Formats: make([]model.Format, 0, len(formats))}
	for c := range cats {
		v.Categories = append(v.Categories, c)
	}
	for f := range formats {
		v.Formats = append(v.Formats, f)
	}

	ru := collate.New(language.Russian)
	en := collate.New(language.English)
	sort.SliceStable(v.Categories, func(i, j int) bool {
		a, b := v.Categories[i], v.Categories[j]
		if c := ru.CompareString(a, b); c != 0 {
			return c < 0
		}
		return en.CompareString(a, b) < 0
	})
	sort.Slice(v.Formats, func(i, j int) bool { return v.Formats[i] < v.Formats[j] })
	return v
}
