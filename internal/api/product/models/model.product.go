// Package models định nghĩa món ăn (products) và nhóm món (product_categories).
package models

import (
	"github.com/doilonvl/salathai-be-demo/internal/i18n"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultCurrency đơn vị tiền mặc định của biến thể
const DefaultCurrency = "VND"

// FallbackSlug slug khi tên không sinh được slug
const FallbackSlug = "product"

// Variant một lựa chọn (size, phần) của món
type Variant struct {
	VariantID string     `json:"variantId" bson:"variantId"`
	Label     *i18n.Text `json:"label_i18n,omitempty" bson:"label_i18n,omitempty"`
	Price     float64    `json:"price" bson:"price"`
	Currency  string     `json:"currency" bson:"currency"`
	Note      *i18n.Text `json:"note_i18n,omitempty" bson:"note_i18n,omitempty"`
	IsDefault bool       `json:"isDefault" bson:"isDefault"`
}

// Product món ăn trong thực đơn
type Product struct {
	ID          primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	CategoryID  *primitive.ObjectID `json:"categoryId,omitempty" bson:"categoryId,omitempty" index:"compound:category_sort"`
	Slug        string              `json:"slug" bson:"slug" index:"unique"`
	Name        i18n.Text           `json:"name_i18n" bson:"name_i18n"`
	Description *i18n.Text          `json:"description_i18n,omitempty" bson:"description_i18n,omitempty"`
	ImageURL    string              `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	ImageAlt    *i18n.Text          `json:"imageAlt_i18n,omitempty" bson:"imageAlt_i18n,omitempty"`
	SortOrder   int                 `json:"sortOrder" bson:"sortOrder" index:"compound:category_sort"`
	IsAvailable bool                `json:"isAvailable" bson:"isAvailable"`

	Variants []Variant `json:"variants" bson:"variants"`

	IsFavourite    bool     `json:"isFavourite" bson:"isFavourite"`
	IsMustTry      bool     `json:"isMustTry" bson:"isMustTry"`
	IsVegetarian   bool     `json:"isVegetarian" bson:"isVegetarian"`
	SpicinessLevel *int     `json:"spicinessLevel,omitempty" bson:"spicinessLevel,omitempty"`
	Tags           []string `json:"tags" bson:"tags"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
