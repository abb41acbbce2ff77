package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiscountedPrice(t *testing.T) {
	tests := []struct {
		name     string
		original int
		discount int
		want     int
	}{
		{name: "no discount", original: 89, discount: 0, want: 89},
		{name: "negative discount ignored", original: 89, discount: -10, want: 89},
		{name: "round percentage", original: 100, discount: 25, want: 75},
		{name: "rounds down", original: 89, discount: 15, want: 75}, // 75.65 floored
		{name: "full discount", original: 50, discount: 100, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DiscountedPrice(tt.original, tt.discount))
		})
	}
}

func TestNewProductDerivesPriceFromDiscount(t *testing.T) {
	product := NewProduct(ProductCreate{
		Name:               "Relief Sun Rice + Probiotics",
		Brand:              "BEAUTY OF JOSEON",
		Category:           "Sunscreen",
		PriceTND:           60,
		OriginalPriceTND:   60,
		DiscountPercentage: 20,
	})

	assert.Equal(t, 48, product.PriceTND)
	assert.Equal(t, 60, product.OriginalPriceTND)
	assert.Equal(t, 20, product.DiscountPercentage)
}

func TestNewProductWithoutDiscount(t *testing.T) {
	product := NewProduct(ProductCreate{
		Name:     "Heartleaf Soothing Toner",
		Brand:    "ANUA",
		Category: "Toner",
		PriceTND: 55,
	})

	assert.Equal(t, 55, product.PriceTND)
	// Original price falls back to the sale price.
	assert.Equal(t, 55, product.OriginalPriceTND)
	assert.Equal(t, 0, product.DiscountPercentage)
}

func TestNewProductDefaults(t *testing.T) {
	product := NewProduct(ProductCreate{
		Name:     "Green Tea Foam",
		Brand:    "ISNTREE",
		Category: "Foam Cleanser",
		PriceTND: 30,
	})

	assert.NotEmpty(t, product.ID)
	assert.True(t, product.InStock)
	assert.False(t, product.IsNew)
	assert.False(t, product.IsBestseller)
	assert.False(t, product.CreatedAt.IsZero())
	assert.Equal(t, product.CreatedAt, product.UpdatedAt)
}

func TestNewProductExplicitOutOfStock(t *testing.T) {
	inStock := false
	product := NewProduct(ProductCreate{
		Name:     "Snail Mucin Power Essence",
		Brand:    "COSRX",
		Category: "Essence",
		PriceTND: 65,
		InStock:  &inStock,
	})

	assert.False(t, product.InStock)
}
