package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Sérum", "serum"},
		{"CRÈME", "creme"},
		{"Tonique Apaisant", "tonique apaisant"},
		{"COSRX", "cosrx"},
		{"déjà vu", "deja vu"},
		{"", ""},
		{"no accents here", "no accents here"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Normalize(tt.input))
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"Sérum", "crème hydratante", "MIXSOON", "protection solaire SPF50+", ""}
	for _, s := range inputs {
		once := Normalize(s)
		assert.Equal(t, once, Normalize(once))
	}
}
