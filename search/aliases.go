package search

// Alias tables: normalized search term -> canonical name as stored in
// the products collection. Pure configuration; extend by adding rows.

var categoryAliases = map[string]string{
	// Serums
	"serum":  "Serum",
	"serums": "Serum",
	"seurm":  "Serum", // common typo

	// Creams / moisturizers
	"creme":       "Moisturizer",
	"cremes":      "Moisturizer",
	"cream":       "Moisturizer",
	"moisturizer": "Moisturizer",
	"hydratant":   "Moisturizer",

	// Cleansers
	"nettoyant":  "Foam Cleanser",
	"nettoyants": "Foam Cleanser",
	"cleanser":   "Foam Cleanser",
	"foam":       "Foam Cleanser",
	"mousse":     "Foam Cleanser",

	// Masks
	"masque":     "Sheet Mask",
	"masques":    "Sheet Mask",
	"mask":       "Sheet Mask",
	"masks":      "Sheet Mask",
	"sheet mask": "Sheet Mask",

	// Sun care
	"solaire":    "Sunscreen",
	"sunscreen":  "Sunscreen",
	"spf":        "Sunscreen",
	"sun":        "Sunscreen",
	"protection": "Sunscreen",

	// Toners
	"toner":    "Toner",
	"toners":   "Toner",
	"tonique":  "Toner",
	"toniques": "Toner",
	"lotion":   "Toner",

	// Essences
	"essence":  "Essence",
	"essences": "Essence",

	// Ampoules
	"ampoule":  "Ampoule",
	"ampoules": "Ampoule",

	// Eye care
	"eye":       "Eye Cream",
	"yeux":      "Eye Cream",
	"contour":   "Eye Cream",
	"eye cream": "Eye Cream",

	// Cleansing oils
	"huile":         "Cleansing Oil",
	"oil":           "Cleansing Oil",
	"cleansing oil": "Cleansing Oil",

	// Pads
	"pads":       "Toner Pads",
	"pad":        "Toner Pads",
	"toner pads": "Toner Pads",

	// Peeling
	"peeling":   "Peeling Gel",
	"exfoliant": "Peeling Gel",
	"gommage":   "Peeling Gel",
}

var brandAliases = map[string]string{
	"cosrx":  "COSRX",
	"cos rx": "COSRX",
	"cosrc":  "COSRX",

	"anua":  "ANUA",
	"annua": "ANUA",
	"anuua": "ANUA",

	"beauty of joseon": "BEAUTY OF JOSEON",
	"boj":              "BEAUTY OF JOSEON",
	"joseon":           "BEAUTY OF JOSEON",

	"isntree":  "ISNTREE",
	"isn tree": "ISNTREE",

	"mixsoon":  "MIXSOON",
	"mix soon": "MIXSOON",

	"some by mi": "SOME BY MI",
	"somebymi":   "SOME BY MI",

	"tirtir":  "TIRTIR",
	"tir tir": "TIRTIR",

	"skin1004":  "SKIN1004",
	"skin 1004": "SKIN1004",

	"numbuzin":  "NUMBUZIN",
	"numbuzine": "NUMBUZIN",

	"torriden": "TORRIDEN",
	"toridenn": "TORRIDEN",

	"medicube":  "MEDICUBE",
	"medi cube": "MEDICUBE",

	"round lab": "ROUND LAB",
	"roundlab":  "ROUND LAB",

	"heimish":         "HEIMISH",
	"haruharu":        "HARUHARU WONDER",
	"haruharu wonder": "HARUHARU WONDER",
	"klairs":          "DEAR KLAIRS",
	"dear klairs":     "DEAR KLAIRS",
	"purito":          "PURITO",
	"benton":          "BENTON",
	"iunik":           "IUNIK",
	"by wishtrend":    "BY WISHTREND",
	"wishtrend":       "BY WISHTREND",
}

// CategoryFor resolves a search term to a canonical category name.
// Exact match only, after normalization.
func CategoryFor(term string) (string, bool) {
	category, ok := categoryAliases[Normalize(term)]
	return category, ok
}

// BrandFor resolves a search term to a canonical brand name.
func BrandFor(term string) (string, bool) {
	brand, ok := brandAliases[Normalize(term)]
	return brand, ok
}
