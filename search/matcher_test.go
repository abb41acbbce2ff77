package search

import (
	"testing"

	"github.com/kbeauty-tn/kbeauty-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(name, brand, category string) models.Product {
	return models.Product{Name: name, Brand: brand, Category: category}
}

func TestMatchProductsEmptyQuery(t *testing.T) {
	products := []models.Product{
		product("Advanced Snail 96 Mucin Power Essence", "COSRX", "Essence"),
		product("Heartleaf 77% Soothing Toner", "ANUA", "Toner"),
	}

	assert.Equal(t, products, MatchProducts("", products))
	assert.Equal(t, products, MatchProducts("   ", products))
}

func TestMatchProductsCategoryAliasShortCircuits(t *testing.T) {
	products := []models.Product{
		product("Hydrating Serum 30ml", "TORRIDEN", "Serum"),
		product("Serum-Infused Sheet Mask", "MEDIHEAL", "Sheet Mask"),
		product("Green Tea Toner", "ISNTREE", "Toner"),
	}

	// Accented French query resolves to the canonical category and
	// excludes the mask whose name merely contains "serum".
	matched := MatchProducts("sérum", products)
	require.Len(t, matched, 1)
	assert.Equal(t, "Serum", matched[0].Category)

	// Plural and misspelled variants hit the same row.
	assert.Len(t, MatchProducts("serums", products), 1)
	assert.Len(t, MatchProducts("seurm", products), 1)
}

func TestMatchProductsBrandAliasShortCircuits(t *testing.T) {
	products := []models.Product{
		product("Advanced Snail 92 All In One Cream", "COSRX", "Moisturizer"),
		product("Hand Cream Nature", "Cosnature", "Moisturizer"),
	}

	matched := MatchProducts("cosrx", products)
	require.Len(t, matched, 1)
	assert.Equal(t, "COSRX", matched[0].Brand)

	// Misspelling mapped in the alias table resolves the same way.
	matched = MatchProducts("cosrc", products)
	require.Len(t, matched, 1)
	assert.Equal(t, "COSRX", matched[0].Brand)
}

func TestMatchProductsNamePrefixRanksFirst(t *testing.T) {
	products := []models.Product{
		product("Advanced Snail Cream", "COSRX", "Moisturizer"),
		product("Snail Mucin Power Essence", "COSRX", "Essence"),
	}

	matched := MatchProducts("snail", products)
	require.Len(t, matched, 2)
	assert.Equal(t, "Snail Mucin Power Essence", matched[0].Name)
	assert.Equal(t, "Advanced Snail Cream", matched[1].Name)
}

func TestMatchProductsNameBeatsBrand(t *testing.T) {
	products := []models.Product{
		product("Relief Sun Rice + Probiotics", "BEAUTY OF JOSEON", "Sunscreen"),
		product("Rice Toner", "IM FROM", "Toner"),
	}

	// "rice" is not an alias; the name substring outranks the brand
	// substring.
	matched := MatchProducts("rice", products)
	require.Len(t, matched, 2)
	assert.Equal(t, "Rice Toner", matched[0].Name)
}

func TestMatchProductsFuzzyNameWord(t *testing.T) {
	products := []models.Product{
		product("Hydrating Serum 30ml", "TORRIDEN", "Serum"),
		product("Green Tea Cleanser", "ISNTREE", "Foam Cleanser"),
	}

	// "serrum" is no alias and no substring, but is close enough to
	// the word "serum".
	matched := MatchProducts("serrum", products)
	require.Len(t, matched, 1)
	assert.Equal(t, "Hydrating Serum 30ml", matched[0].Name)
}

func TestMatchProductsFuzzyFloorExcludes(t *testing.T) {
	products := []models.Product{
		product("Heartleaf Quercetinol Pore Deep Cleansing Foam", "ANUA", "Foam Cleanser"),
	}

	// Below the 0.8 similarity threshold everywhere: excluded.
	assert.Empty(t, MatchProducts("glow", products))
}

func TestMatchProductsShortQueryNoFuzzy(t *testing.T) {
	products := []models.Product{
		product("Hydrating Serum 30ml", "TORRIDEN", "Serum"),
	}

	// Two characters never reach the fuzzy branch, but a substring
	// still matches.
	assert.Empty(t, MatchProducts("xq", products))
	assert.Len(t, MatchProducts("hy", products), 1)
}

func TestMatchProductsStableOrderOnTies(t *testing.T) {
	products := []models.Product{
		product("Snail Repair Cream", "MIZON", "Moisturizer"),
		product("Snail Bee Essence", "BENTON", "Essence"),
		product("Snail Truecica Serum", "SOME BY MI", "Serum"),
	}

	// All three start with the query: same score, original order kept.
	matched := MatchProducts("snail", products)
	require.Len(t, matched, 3)
	assert.Equal(t, "Snail Repair Cream", matched[0].Name)
	assert.Equal(t, "Snail Bee Essence", matched[1].Name)
	assert.Equal(t, "Snail Truecica Serum", matched[2].Name)
}

func TestFuzzyRatioBounds(t *testing.T) {
	assert.Equal(t, 1.0, fuzzyRatio("serum", "Serum"))
	assert.Greater(t, fuzzyRatio("serrum", "serum"), 0.8)
	assert.Less(t, fuzzyRatio("glow", "cleanser"), 0.5)
}
