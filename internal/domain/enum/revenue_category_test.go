package enum

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRevenueCategories_ClosedSet(t *testing.T) {
	cats := RevenueCategories()
	require.Len(t, cats, CategoryCount)

	seen := map[string]bool{}
	for i, c := range cats {
		assert.Equal(t, RevenueCategory(i), c, "categories are listed in declaration order")
		assert.True(t, c.Valid())
		assert.False(t, seen[c.String()], "duplicate key %s", c)
		seen[c.String()] = true
	}

	assert.False(t, RevenueCategory(CategoryCount).Valid())
	assert.False(t, RevenueCategory(-1).Valid())
}

func TestParseRevenueCategory(t *testing.T) {
	for _, c := range RevenueCategories() {
		parsed, err := ParseRevenueCategory(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, parsed)
	}

	_, err := ParseRevenueCategory("refund")
	assert.Error(t, err)
}

func TestRevenueCategory_JSON(t *testing.T) {
	data, err := json.Marshal(RevenueCategoryWhiteLabelMonthly)
	require.NoError(t, err)
	assert.JSONEq(t, `"white_label_monthly"`, string(data))

	var c RevenueCategory
	require.NoError(t, json.Unmarshal([]byte(`"custom_sync"`), &c))
	assert.Equal(t, RevenueCategoryCustomSync, c)

	assert.Error(t, json.Unmarshal([]byte(`"nope"`), &c))
}
