// Package models định nghĩa bài viết blog lưu trong collection blogs.
package models

import (
	"time"

	"github.com/doilonvl/salathai-be-demo/internal/i18n"
	"github.com/doilonvl/salathai-be-demo/internal/richdoc"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Trạng thái bài viết
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusScheduled = "scheduled"
	StatusArchived  = "archived"
)

// Statuses danh sách trạng thái hợp lệ
var Statuses = []string{StatusDraft, StatusPublished, StatusScheduled, StatusArchived}

// ValidStatus kiểm tra status có thuộc enum không
func ValidStatus(s string) bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

// DefaultAuthorName tác giả mặc định
const DefaultAuthorName = "Salathai"

// Image ảnh đại diện
type Image struct {
	URL      string     `json:"url" bson:"url"`
	PublicID string     `json:"publicId,omitempty" bson:"publicId,omitempty"`
	Alt      *i18n.Text `json:"alt_i18n,omitempty" bson:"alt_i18n,omitempty"`
}

// GalleryItem một ảnh trong album
type GalleryItem struct {
	URL      string     `json:"url" bson:"url"`
	PublicID string     `json:"publicId,omitempty" bson:"publicId,omitempty"`
	Alt      *i18n.Text `json:"alt_i18n,omitempty" bson:"alt_i18n,omitempty"`
	Caption  *i18n.Text `json:"caption_i18n,omitempty" bson:"caption_i18n,omitempty"`
}

// Robots chỉ thị cho crawler
type Robots struct {
	Index  bool `json:"index" bson:"index"`
	Follow bool `json:"follow" bson:"follow"`
}

// DefaultRobots index và follow đều bật
func DefaultRobots() Robots {
	return Robots{Index: true, Follow: true}
}

// Content nội dung rich-doc thô theo locale
type Content struct {
	Vi map[string]interface{} `json:"vi" bson:"vi"`
	En map[string]interface{} `json:"en" bson:"en"`
}

// Get nội dung của một locale
func (c *Content) Get(l i18n.Locale) map[string]interface{} {
	if c == nil {
		return nil
	}
	if l == i18n.En {
		return c.En
	}
	return c.Vi
}

// Toc mục lục theo locale
type Toc struct {
	Vi []richdoc.TocEntry `json:"vi" bson:"vi"`
	En []richdoc.TocEntry `json:"en" bson:"en"`
}

// Get mục lục của một locale
func (t Toc) Get(l i18n.Locale) []richdoc.TocEntry {
	if l == i18n.En {
		return t.En
	}
	return t.Vi
}

// Stats thống kê
type Stats struct {
	ViewCount int64 `json:"viewCount" bson:"viewCount"`
}

// Blog bài viết.
// publishedAt, scheduledAt, deletedAt luôn được lưu (null khi chưa có) để filter theo null.
type Blog struct {
	ID       primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Slug     string             `json:"slug" bson:"slug,omitempty" index:"unique,sparse"`
	SlugI18n i18n.Text          `json:"slug_i18n" bson:"slug_i18n"`

	Title   i18n.Text  `json:"title_i18n" bson:"title_i18n"`
	Excerpt *i18n.Text `json:"excerpt_i18n,omitempty" bson:"excerpt_i18n,omitempty"`
	Content *Content   `json:"content_i18n,omitempty" bson:"content_i18n,omitempty"`

	CoverImage *Image        `json:"coverImage,omitempty" bson:"coverImage,omitempty"`
	Gallery    []GalleryItem `json:"gallery" bson:"gallery"`
	Tags       []string      `json:"tags" bson:"tags" index:"single"`

	Status      string     `json:"status" bson:"status" default:"draft" index:"compound:status_published_featured"`
	PublishedAt *time.Time `json:"publishedAt" bson:"publishedAt" index:"compound:status_published_featured,order:-1"`
	ScheduledAt *time.Time `json:"scheduledAt" bson:"scheduledAt"`
	IsFeatured  bool       `json:"isFeatured" bson:"isFeatured" index:"compound:status_published_featured,order:-1"`
	SortOrder   int        `json:"sortOrder" bson:"sortOrder"`

	SeoTitle       *i18n.Text `json:"seoTitle_i18n,omitempty" bson:"seoTitle_i18n,omitempty"`
	SeoDescription *i18n.Text `json:"seoDescription_i18n,omitempty" bson:"seoDescription_i18n,omitempty"`
	CanonicalURL   string     `json:"canonicalUrl,omitempty" bson:"canonicalUrl,omitempty"`
	OgImageURL     string     `json:"ogImageUrl,omitempty" bson:"ogImageUrl,omitempty"`
	Robots         Robots     `json:"robots" bson:"robots"`

	Toc                Toc       `json:"toc_i18n" bson:"toc_i18n"`
	PlainText          i18n.Text `json:"plainText_i18n" bson:"plainText_i18n"`
	ReadingTimeMinutes int       `json:"readingTimeMinutes" bson:"readingTimeMinutes"`
	Stats              Stats     `json:"stats" bson:"stats"`

	AuthorName string              `json:"authorName" bson:"authorName" default:"Salathai"`
	CreatedBy  *primitive.ObjectID `json:"createdBy" bson:"createdBy"`
	UpdatedBy  *primitive.ObjectID `json:"updatedBy" bson:"updatedBy"`
	DeletedAt  *time.Time          `json:"deletedAt" bson:"deletedAt" index:"single"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
