// Package carouseldto chứa input của các endpoint carousel.
package carouseldto

import (
	"strings"

	"github.com/doilonvl/salathai-be-demo/internal/api/carousel/models"
	"github.com/doilonvl/salathai-be-demo/internal/i18n"

	"go.mongodb.org/mongo-driver/bson"
)

// ListQuery query của GET / và GET /admin
type ListQuery struct {
	IncludeInactive bool
	IsActive        *bool
	Page            int64
	Limit           int64
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

func active(b *bool) bool {
	return b == nil || *b
}

// LandingMenuInput body của /landing-menu
type LandingMenuInput struct {
	ImageURL   *string    `json:"imageUrl" validate:"omitempty,max=500"`
	AltText    *i18n.Text `json:"altText_i18n"`
	OrderIndex *int       `json:"orderIndex" validate:"omitempty,min=0"`
	IsActive   *bool      `json:"isActive"`
}

func (in *LandingMenuInput) Order() *int    { return in.OrderIndex }
func (in *LandingMenuInput) Pinned() bool   { return false }
func (in *LandingMenuInput) Complete() bool { return trimmed(in.ImageURL) != "" && in.OrderIndex != nil }

func (in *LandingMenuInput) ToModel() models.LandingMenuImage {
	m := models.LandingMenuImage{ImageURL: trimmed(in.ImageURL), AltText: in.AltText, IsActive: active(in.IsActive)}
	if in.OrderIndex != nil {
		m.OrderIndex = *in.OrderIndex
	}
	return m
}

func (in *LandingMenuInput) Changes() bson.M {
	set := bson.M{}
	if in.ImageURL != nil {
		set["imageUrl"] = trimmed(in.ImageURL)
	}
	if in.AltText != nil {
		set["altText_i18n"] = in.AltText
	}
	if in.OrderIndex != nil {
		set["orderIndex"] = *in.OrderIndex
	}
	if in.IsActive != nil {
		set["isActive"] = *in.IsActive
	}
	return set
}

// MarqueeImageInput body của /marquee-images
type MarqueeImageInput struct {
	ImageURL   *string    `json:"imageUrl" validate:"omitempty,max=500"`
	AltText    *i18n.Text `json:"altText_i18n"`
	OrderIndex *int       `json:"orderIndex" validate:"omitempty,min=0"`
	IsPinned   *bool      `json:"isPinned"`
	IsActive   *bool      `json:"isActive"`
}

func (in *MarqueeImageInput) Order() *int    { return in.OrderIndex }
func (in *MarqueeImageInput) Pinned() bool   { return in.IsPinned != nil && *in.IsPinned }
func (in *MarqueeImageInput) Complete() bool { return trimmed(in.ImageURL) != "" && in.OrderIndex != nil }

func (in *MarqueeImageInput) ToModel() models.MarqueeImage {
	m := models.MarqueeImage{ImageURL: trimmed(in.ImageURL), AltText: in.AltText, IsPinned: in.Pinned(), IsActive: active(in.IsActive)}
	if in.OrderIndex != nil {
		m.OrderIndex = *in.OrderIndex
	}
	return m
}

func (in *MarqueeImageInput) Changes() bson.M {
	set := bson.M{}
	if in.ImageURL != nil {
		set["imageUrl"] = trimmed(in.ImageURL)
	}
	if in.AltText != nil {
		set["altText_i18n"] = in.AltText
	}
	if in.OrderIndex != nil {
		set["orderIndex"] = *in.OrderIndex
	}
	if in.IsPinned != nil {
		set["isPinned"] = *in.IsPinned
	}
	if in.IsActive != nil {
		set["isActive"] = *in.IsActive
	}
	return set
}

// MarqueeSlideInput body của /marquee-slides
type MarqueeSlideInput struct {
	OrderIndex *int       `json:"orderIndex" validate:"omitempty,min=0"`
	Tag        *i18n.Text `json:"tag_i18n"`
	Text       *i18n.Text `json:"text_i18n"`
	ImageURL   *string    `json:"imageUrl" validate:"omitempty,max=500"`
	IsActive   *bool      `json:"isActive"`
}

func (in *MarqueeSlideInput) Order() *int    { return in.OrderIndex }
func (in *MarqueeSlideInput) Pinned() bool   { return false }
func (in *MarqueeSlideInput) Complete() bool { return trimmed(in.ImageURL) != "" && in.OrderIndex != nil }

func (in *MarqueeSlideInput) ToModel() models.MarqueeSlide {
	m := models.MarqueeSlide{ImageURL: trimmed(in.ImageURL), Tag: in.Tag, Text: in.Text, IsActive: active(in.IsActive)}
	if in.OrderIndex != nil {
		m.OrderIndex = *in.OrderIndex
	}
	return m
}

func (in *MarqueeSlideInput) Changes() bson.M {
	set := bson.M{}
	if in.OrderIndex != nil {
		set["orderIndex"] = *in.OrderIndex
	}
	if in.Tag != nil {
		set["tag_i18n"] = in.Tag
	}
	if in.Text != nil {
		set["text_i18n"] = in.Text
	}
	if in.ImageURL != nil {
		set["imageUrl"] = trimmed(in.ImageURL)
	}
	if in.IsActive != nil {
		set["isActive"] = *in.IsActive
	}
	return set
}
