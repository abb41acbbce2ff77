package search

import (
	"fmt"
	"strings"
	"testing"

	"github.com/kbeauty-tn/kbeauty-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggestQueryTooShort(t *testing.T) {
	products := []models.Product{product("Hydrating Serum", "TORRIDEN", "Serum")}

	out := Suggest("s", products)
	assert.Empty(t, out.Suggestions)
	assert.Empty(t, out.Brands)
	assert.Empty(t, out.Categories)
}

func TestSuggestCollectsNamesBrandsCategories(t *testing.T) {
	products := []models.Product{
		product("Hydrating Serum 30ml", "TORRIDEN", "Serum"),
		product("Vitamin Serum Booster", "PURITO", "Serum"),
		product("Green Tea Foam", "ISNTREE", "Foam Cleanser"),
	}

	out := Suggest("ser", products)

	assert.Contains(t, out.Suggestions, "Hydrating Serum 30ml")
	assert.Contains(t, out.Suggestions, "Vitamin Serum Booster")
	assert.NotContains(t, out.Suggestions, "Green Tea Foam")

	// Brands ride along with name hits.
	assert.Contains(t, out.Brands, "TORRIDEN")
	assert.Contains(t, out.Brands, "PURITO")

	// "ser" sits inside both the serum rows and the "cleanser" alias.
	assert.ElementsMatch(t, []string{"Serum", "Foam Cleanser"}, out.Categories)
}

func TestSuggestBrandOnlyMatch(t *testing.T) {
	products := []models.Product{
		product("Heartleaf Soothing Toner", "ANUA", "Toner"),
	}

	out := Suggest("anu", products)
	assert.Empty(t, out.Suggestions)
	assert.Contains(t, out.Brands, "ANUA")
}

func TestSuggestCapsAndDedup(t *testing.T) {
	products := []models.Product{}
	for i := 0; i < 12; i++ {
		products = append(products, product(fmt.Sprintf("Snail Essence No.%d", i), "COSRX", "Essence"))
	}
	// Duplicate name must appear once.
	products = append(products, product("Snail Essence No.0", "COSRX", "Essence"))

	out := Suggest("snail", products)
	assert.Len(t, out.Suggestions, 8)
	assert.Equal(t, []string{"COSRX"}, out.Brands)
}

func TestSuggestTruncatesLongNames(t *testing.T) {
	longName := "Snail " + strings.Repeat("x", 80)
	out := Suggest("snail", []models.Product{product(longName, "COSRX", "Essence")})

	require.Len(t, out.Suggestions, 1)
	assert.Len(t, []rune(out.Suggestions[0]), 60)
}

func TestDidYouMeanCorrectsAliasTypos(t *testing.T) {
	products := []models.Product{
		product("Hydrating Serum 30ml", "TORRIDEN", "Serum"),
	}

	corrections := DidYouMean("serume", products)
	assert.Contains(t, corrections, "Serum")
	assert.LessOrEqual(t, len(corrections), 5)
}

func TestDidYouMeanCorrectsBrandTypos(t *testing.T) {
	corrections := DidYouMean("cosrxx", nil)
	assert.Contains(t, corrections, "COSRX")
}

func TestDidYouMeanDistantQueryEmpty(t *testing.T) {
	// Nothing in the tables is close to this.
	assert.Empty(t, DidYouMean("zzqqxx", nil))
}

func TestDidYouMeanDedupesCaseInsensitively(t *testing.T) {
	products := []models.Product{
		product("Serum Concentrate", "ANUA", "Serum"),
		product("SERUM Duo Pack", "ANUA", "Serum"),
	}

	corrections := DidYouMean("serume", products)

	seen := map[string]bool{}
	for _, c := range corrections {
		key := strings.ToLower(c)
		assert.False(t, seen[key], "duplicate correction %q", c)
		seen[key] = true
	}
}

func TestDidYouMeanQueryTooShort(t *testing.T) {
	assert.Empty(t, DidYouMean("s", nil))
}
