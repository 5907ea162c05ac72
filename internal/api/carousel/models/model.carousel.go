// Package models định nghĩa các carousel trang chủ: ảnh menu, ảnh chạy ngang và slide chạy ngang.
package models

import (
	"github.com/doilonvl/salathai-be-demo/internal/i18n"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LandingMenuImage ảnh menu ở trang chủ
type LandingMenuImage struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	ImageURL   string             `json:"imageUrl" bson:"imageUrl"`
	AltText    *i18n.Text         `json:"altText_i18n,omitempty" bson:"altText_i18n,omitempty"`
	OrderIndex int                `json:"orderIndex" bson:"orderIndex"`
	IsActive   bool               `json:"isActive" bson:"isActive" index:"single"`
	CreatedAt  int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt  int64              `json:"updatedAt" bson:"updatedAt"`
}

// MarqueeImage ảnh chạy ngang, tối đa một ảnh được ghim
type MarqueeImage struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	ImageURL   string             `json:"imageUrl" bson:"imageUrl"`
	AltText    *i18n.Text         `json:"altText_i18n,omitempty" bson:"altText_i18n,omitempty"`
	OrderIndex int                `json:"orderIndex" bson:"orderIndex"`
	IsPinned   bool               `json:"isPinned" bson:"isPinned"`
	IsActive   bool               `json:"isActive" bson:"isActive" index:"single"`
	CreatedAt  int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt  int64              `json:"updatedAt" bson:"updatedAt"`
}

// MarqueeSlide slide chữ + ảnh
type MarqueeSlide struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	OrderIndex int                `json:"orderIndex" bson:"orderIndex"`
	Tag        *i18n.Text         `json:"tag_i18n,omitempty" bson:"tag_i18n,omitempty"`
	Text       *i18n.Text         `json:"text_i18n,omitempty" bson:"text_i18n,omitempty"`
	ImageURL   string             `json:"imageUrl" bson:"imageUrl"`
	IsActive   bool               `json:"isActive" bson:"isActive" index:"single"`
	CreatedAt  int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt  int64              `json:"updatedAt" bson:"updatedAt"`
}
