package search

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/kbeauty-tn/kbeauty-api/models"
)

const (
	minSuggestQueryLen = 2
	maxNameSuggestions = 8
	maxBrandHits       = 5
	maxCategoryHits    = 5
	suggestionNameLen  = 60

	// Did-you-mean keeps candidates strictly inside the interval:
	// ratio 1.0 needs no correction, low ratios are too dissimilar.
	aliasCorrectionFloor = 0.5
	wordCorrectionFloor  = 0.6
	minCorrectionWordLen = 4
	maxCorrections       = 5
)

// Suggestions groups the three autocomplete outputs for one query.
type Suggestions struct {
	Suggestions []string `json:"suggestions"`
	Brands      []string `json:"brands"`
	Categories  []string `json:"categories"`
}

// Suggest produces autocomplete suggestions from the alias tables and
// the product corpus. Queries shorter than two characters yield empty
// results.
func Suggest(query string, products []models.Product) Suggestions {
	out := Suggestions{
		Suggestions: []string{},
		Brands:      []string{},
		Categories:  []string{},
	}
	if utf8.RuneCountInString(query) < minSuggestQueryLen {
		return out
	}

	queryLower := strings.ToLower(query)
	queryNorm := Normalize(query)

	seenBrands := map[string]bool{}
	addBrand := func(brand string) {
		if brand != "" && !seenBrands[brand] {
			seenBrands[brand] = true
			out.Brands = append(out.Brands, brand)
		}
	}

	seenCategories := map[string]bool{}
	for term, category := range categoryAliases {
		if strings.Contains(term, queryLower) || strings.Contains(Normalize(term), queryNorm) {
			if !seenCategories[category] {
				seenCategories[category] = true
				out.Categories = append(out.Categories, category)
			}
		}
	}

	for term, brand := range brandAliases {
		if strings.Contains(term, queryLower) || strings.Contains(Normalize(term), queryNorm) {
			addBrand(brand)
		}
	}

	seenNames := map[string]bool{}
	for _, p := range products {
		nameLower := strings.ToLower(p.Name)
		brandLower := strings.ToLower(p.Brand)

		if strings.Contains(nameLower, queryLower) || strings.Contains(Normalize(p.Name), queryNorm) {
			name := truncate(p.Name, suggestionNameLen)
			if !seenNames[name] {
				seenNames[name] = true
				out.Suggestions = append(out.Suggestions, name)
			}
			addBrand(p.Brand)
		} else if strings.Contains(brandLower, queryLower) || strings.Contains(Normalize(p.Brand), queryNorm) {
			addBrand(p.Brand)
		}
	}

	if len(out.Suggestions) > maxNameSuggestions {
		out.Suggestions = out.Suggestions[:maxNameSuggestions]
	}
	if len(out.Brands) > maxBrandHits {
		out.Brands = out.Brands[:maxBrandHits]
	}
	if len(out.Categories) > maxCategoryHits {
		out.Categories = out.Categories[:maxCategoryHits]
	}
	return out
}

// DidYouMean suggests corrections for a likely misspelled query by
// ranking alias-table terms and product-name words by similarity.
func DidYouMean(query string, products []models.Product) []string {
	if utf8.RuneCountInString(query) < minSuggestQueryLen {
		return []string{}
	}

	queryNorm := Normalize(query)

	type candidate struct {
		term  string
		ratio float64
	}
	var candidates []candidate

	for term, category := range categoryAliases {
		ratio := fuzzyRatio(queryNorm, term)
		if ratio > aliasCorrectionFloor && ratio < 1.0 {
			candidates = append(candidates, candidate{term: category, ratio: ratio})
		}
	}

	for term, brand := range brandAliases {
		ratio := fuzzyRatio(queryNorm, term)
		if ratio > aliasCorrectionFloor && ratio < 1.0 {
			candidates = append(candidates, candidate{term: brand, ratio: ratio})
		}
	}

	for _, p := range products {
		for _, word := range strings.Fields(p.Name) {
			if utf8.RuneCountInString(word) < minCorrectionWordLen {
				continue
			}
			ratio := fuzzyRatio(queryNorm, Normalize(word))
			if ratio > wordCorrectionFloor && ratio < 1.0 {
				candidates = append(candidates, candidate{term: word, ratio: ratio})
			}
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].ratio > candidates[j].ratio
	})

	seen := map[string]bool{}
	corrections := []string{}
	for _, c := range candidates {
		key := strings.ToLower(c.term)
		if seen[key] {
			continue
		}
		seen[key] = true
		corrections = append(corrections, c.term)
		if len(corrections) >= maxCorrections {
			break
		}
	}
	return corrections
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
