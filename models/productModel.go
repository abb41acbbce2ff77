package models

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID                 string    `json:"id" bson:"id"`
	Name               string    `json:"name" bson:"name"`
	Brand              string    `json:"brand" bson:"brand"`
	Category           string    `json:"category" bson:"category"`
	PriceTND           int       `json:"price_tnd" bson:"price_tnd"`
	OriginalPriceTND   int       `json:"original_price_tnd" bson:"original_price_tnd"`
	DiscountPercentage int       `json:"discount_percentage" bson:"discount_percentage"`
	Description        string    `json:"description" bson:"description"`
	ImageURL           string    `json:"image_url" bson:"image_url"`
	Volume             string    `json:"volume" bson:"volume"`
	InStock            bool      `json:"in_stock" bson:"in_stock"`
	IsNew              bool      `json:"is_new" bson:"is_new"`
	IsBestseller       bool      `json:"is_bestseller" bson:"is_bestseller"`
	CreatedAt          time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt          time.Time `json:"updated_at" bson:"updated_at"`
}

type ProductCreate struct {
	Name               string `json:"name" binding:"required"`
	Brand              string `json:"brand" binding:"required"`
	Category           string `json:"category" binding:"required"`
	PriceTND           int    `json:"price_tnd" binding:"required"`
	OriginalPriceTND   int    `json:"original_price_tnd"`
	DiscountPercentage int    `json:"discount_percentage"`
	Description        string `json:"description"`
	ImageURL           string `json:"image_url"`
	Volume             string `json:"volume"`
	InStock            *bool  `json:"in_stock"`
	IsNew              bool   `json:"is_new"`
	IsBestseller       bool   `json:"is_bestseller"`
}

type ProductUpdate struct {
	Name               *string `json:"name"`
	Brand              *string `json:"brand"`
	Category           *string `json:"category"`
	PriceTND           *int    `json:"price_tnd"`
	OriginalPriceTND   *int    `json:"original_price_tnd"`
	DiscountPercentage *int    `json:"discount_percentage"`
	Description        *string `json:"description"`
	ImageURL           *string `json:"image_url"`
	Volume             *string `json:"volume"`
	InStock            *bool   `json:"in_stock"`
	IsNew              *bool   `json:"is_new"`
	IsBestseller       *bool   `json:"is_bestseller"`
}

// DiscountedPrice applies the discount to the original price, rounding
// down. A zero or negative discount leaves the original price as is.
func DiscountedPrice(originalPrice, discountPercentage int) int {
	if discountPercentage <= 0 {
		return originalPrice
	}
	return originalPrice * (100 - discountPercentage) / 100
}

// NewProduct builds a product from admin input, enforcing the pricing
// invariant: price = original price minus discount, rounded down.
func NewProduct(data ProductCreate) Product {
	now := time.Now().UTC()

	originalPrice := data.OriginalPriceTND
	if originalPrice == 0 {
		originalPrice = data.PriceTND
	}

	price := data.PriceTND
	if data.DiscountPercentage > 0 {
		price = DiscountedPrice(originalPrice, data.DiscountPercentage)
	}

	inStock := true
	if data.InStock != nil {
		inStock = *data.InStock
	}

	return Product{
		ID:                 uuid.NewString(),
		Name:               data.Name,
		Brand:              data.Brand,
		Category:           data.Category,
		PriceTND:           price,
		OriginalPriceTND:   originalPrice,
		DiscountPercentage: data.DiscountPercentage,
		Description:        data.Description,
		ImageURL:           data.ImageURL,
		Volume:             data.Volume,
		InStock:            inStock,
		IsNew:              data.IsNew,
		IsBestseller:       data.IsBestseller,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}
