// Package productdto chứa input của các endpoint món ăn và nhóm món.
package productdto

import "github.com/doilonvl/salathai-be-demo/internal/i18n"

// VariantInput một biến thể trong body
type VariantInput struct {
	VariantID string     `json:"variantId" validate:"required,max=120"`
	Label     *i18n.Text `json:"label_i18n"`
	Price     *float64   `json:"price" validate:"required,min=0"`
	Currency  string     `json:"currency" validate:"omitempty,max=10"`
	Note      *i18n.Text `json:"note_i18n"`
	IsDefault bool       `json:"isDefault"`
}

// ProductInput body của POST /products và PUT /products/:id
type ProductInput struct {
	CategoryID  *string    `json:"categoryId" validate:"omitempty,object_id"`
	Slug        *string    `json:"slug" validate:"omitempty,max=160"`
	Name        *i18n.Text `json:"name_i18n" validate:"omitempty,locale_map"`
	Description *i18n.Text `json:"description_i18n"`
	ImageURL    *string    `json:"imageUrl" validate:"omitempty,max=500"`
	ImageAlt    *i18n.Text `json:"imageAlt_i18n"`
	SortOrder   *int       `json:"sortOrder" validate:"omitempty,min=0"`
	IsAvailable *bool      `json:"isAvailable"`

	Variants *[]VariantInput `json:"variants" validate:"omitempty,dive"`

	IsFavourite    *bool     `json:"isFavourite"`
	IsMustTry      *bool     `json:"isMustTry"`
	IsVegetarian   *bool     `json:"isVegetarian"`
	SpicinessLevel *int      `json:"spicinessLevel" validate:"omitempty,min=0,max=3"`
	Tags           *[]string `json:"tags" validate:"omitempty,dive,max=60"`
}

// ProductListQuery query của GET /products
type ProductListQuery struct {
	Page        int64
	Limit       int64
	CategoryID  string
	IsAvailable *bool
	Q           string
}

// CategoryInput body của POST /product-categories và PUT /product-categories/:id
type CategoryInput struct {
	Key         *string    `json:"key" validate:"omitempty,max=120"`
	Name        *i18n.Text `json:"name_i18n" validate:"omitempty,locale_map"`
	Description *i18n.Text `json:"description_i18n"`
	SortOrder   *int       `json:"sortOrder" validate:"omitempty,min=0"`
}
