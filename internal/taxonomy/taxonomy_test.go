package taxonomy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpand_ParentIncludesAllChildren(t *testing.T) {
	groups := []Group{
		{Parent: "Asian", Children: []string{"East Asian", "South Asian"}},
		{Parent: "Indigenous", Children: []string{"Native American"}},
	}

	result := Expand([]string{"Asian"}, groups)

	// Выход - надмножество входа, каждый ребенок ровно один раз
	assert.Contains(t, result, "Asian")
	assert.Contains(t, result, "East Asian")
	assert.Contains(t, result, "South Asian")
	assert.NotContains(t, result, "Native American")
	assert.Len(t, result, 3)
}

func TestExpand_UnknownParentIgnored(t *testing.T) {
	groups := []Group{
		{Parent: "Asian", Children: []string{"East Asian"}},
	}

	result := Expand([]string{"Martian"}, groups)

	assert.Equal(t, []string{"Martian"}, result)
}

func TestExpand_NoDuplicates(t *testing.T) {
	groups := []Group{
		{Parent: "Asian", Children: []string{"East Asian", "South Asian"}},
	}

	// Ребенок уже выбран явно - не должен дублироваться после раскрытия
	result := Expand([]string{"Asian", "East Asian", "Asian"}, groups)

	counts := make(map[string]int)
	for _, v := range result {
		counts[v]++
	}
	for value, count := range counts {
		assert.Equal(t, 1, count, "value %q duplicated", value)
	}
	assert.Len(t, result, 3)
}

func TestExpand_EmptySelection(t *testing.T) {
	result := Expand(nil, EthnicityGroups)
	assert.Empty(t, result)
}

func TestExpandEthnicities_BuiltinTaxonomy(t *testing.T) {
	result := ExpandEthnicities([]string{"Asian"})

	assert.Contains(t, result, "East Asian (ex. China, Korea, Japan)")
	assert.Contains(t, result, "South Asian (ex. India, Pakistan, Bangladesh)")
}
