package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/lawshop/internal/model"
)

func TestDiscoverVocabulary(t *testing.T) {
	items := []model.Service{
		{Category: "Tax", Format: model.FormatOnline},
		{Category: "Family", Format: model.FormatHybrid},
		{Category: "Tax", Format: model.FormatOnline},
		{Category: "  "},
		{Category: "Банкротство", Format: model.FormatInPerson},
	}
	v := DiscoverVocabulary(items)
	assert.ElementsMatch(t, []string{"Tax", "Family", "Банкротство"}, v.Categories)
	assert.Less(t, indexOf(v.Categories, "Family"), indexOf(v.Categories, "Tax"))
	assert.Equal(t, []model.Format{model.FormatHybrid, model.FormatInPerson, model.FormatOnline}, v.Formats)
}

func TestDiscoverVocabularyEmpty(t *testing.T) {
	v := DiscoverVocabulary(nil)
	assert.Empty(t, v.Categories)
	assert.Empty(t, v.Formats)
}

func indexOf(xs []string, s string) int {
	for i, x := range xs {
		if x == s {
			return i
		}
	}
	return -1
}
