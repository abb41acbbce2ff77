package search

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/kbeauty-tn/kbeauty-api/models"
	"github.com/pmezard/go-difflib/difflib"
)

// Scoring for the fallback text match. Alias hits bypass scoring
// entirely so a brand or category query is never diluted by
// coincidental substring matches.
const (
	nameMatchScore   = 100
	namePrefixBonus  = 50
	brandMatchScore  = 80
	brandExactBonus  = 40
	nameFuzzyWeight  = 60
	brandFuzzyWeight = 50
	fuzzyThreshold   = 0.8
	minFuzzyQueryLen = 3
)

// fuzzyRatio is the longest-matching-blocks similarity in [0,1],
// computed per character.
func fuzzyRatio(a, b string) float64 {
	m := difflib.NewMatcher(
		strings.Split(strings.ToLower(a), ""),
		strings.Split(strings.ToLower(b), ""),
	)
	return m.Ratio()
}

// MatchProducts filters products down to those relevant to the query,
// most relevant first. Resolution order is strict: a category alias
// hit returns only that category, a brand alias hit only that brand,
// and only then does scored substring/fuzzy matching over name and
// brand run. An empty query returns the input unchanged.
func MatchProducts(query string, products []models.Product) []models.Product {
	queryLower := strings.ToLower(strings.TrimSpace(query))
	if queryLower == "" {
		return products
	}
	queryNorm := Normalize(query)

	if category, ok := CategoryFor(query); ok {
		matched := []models.Product{}
		for _, p := range products {
			if strings.EqualFold(p.Category, category) {
				matched = append(matched, p)
			}
		}
		return matched
	}

	if brand, ok := BrandFor(query); ok {
		matched := []models.Product{}
		for _, p := range products {
			if strings.EqualFold(p.Brand, brand) {
				matched = append(matched, p)
			}
		}
		return matched
	}

	type scoredProduct struct {
		product models.Product
		score   int
	}
	var results []scoredProduct

	for _, p := range products {
		name := strings.ToLower(p.Name)
		brand := strings.ToLower(p.Brand)
		nameNorm := Normalize(p.Name)
		brandNorm := Normalize(p.Brand)

		score := 0
		switch {
		case strings.Contains(name, queryLower) || strings.Contains(nameNorm, queryNorm):
			score = nameMatchScore
			if strings.HasPrefix(name, queryLower) || strings.HasPrefix(nameNorm, queryNorm) {
				score += namePrefixBonus
			}

		case strings.Contains(brand, queryLower) || strings.Contains(brandNorm, queryNorm):
			score = brandMatchScore
			if brand == queryLower || brandNorm == queryNorm {
				score += brandExactBonus
			}

		case utf8.RuneCountInString(queryLower) >= minFuzzyQueryLen:
			for _, word := range strings.Fields(name) {
				if ratio := fuzzyRatio(queryNorm, Normalize(word)); ratio > fuzzyThreshold {
					score = int(ratio * nameFuzzyWeight)
					break
				}
			}
			if score == 0 {
				if ratio := fuzzyRatio(queryNorm, brandNorm); ratio > fuzzyThreshold {
					score = int(ratio * brandFuzzyWeight)
				}
			}
		}

		if score > 0 {
			results = append(results, scoredProduct{product: p, score: score})
		}
	}

	// Stable: equal scores keep their original relative order.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})

	matched := make([]models.Product, len(results))
	for i, r := range results {
		matched[i] = r.product
	}
	return matched
}
