// Package blogdto chứa input của các endpoint blog.
package blogdto

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/doilonvl/salathai-be-demo/internal/api/blog/models"
	"github.com/doilonvl/salathai-be-demo/internal/i18n"
)

// OptionalTime thời điểm có thể vắng mặt, null, chuỗi ngày hoặc số Unix milli.
// Giá trị sai kiểu không làm hỏng cả body mà đánh dấu Invalid để handler trả lỗi đúng field.
type OptionalTime struct {
	Set     bool
	Value   *time.Time
	Invalid bool
}

// Các layout chuỗi ngày được chấp nhận
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// UnmarshalJSON chỉ được gọi khi key có mặt trong body
func (o *OptionalTime) UnmarshalJSON(b []byte) error {
	o.Set = true
	o.Value = nil
	o.Invalid = false

	raw := bytes.TrimSpace(b)
	if bytes.Equal(raw, []byte("null")) {
		return nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		t, ok := ParseTime(s)
		if !ok {
			o.Invalid = true
			return nil
		}
		o.Value = &t
		return nil
	}

	var ms float64
	if err := json.Unmarshal(raw, &ms); err == nil {
		t := time.UnixMilli(int64(ms)).UTC()
		o.Value = &t
		return nil
	}

	o.Invalid = true
	return nil
}

// At tạo OptionalTime đã có giá trị
func At(t time.Time) OptionalTime {
	return OptionalTime{Set: true, Value: &t}
}

// Null tạo OptionalTime có mặt nhưng bằng null
func Null() OptionalTime {
	return OptionalTime{Set: true}
}

// ParseTime đọc chuỗi ngày theo các layout hỗ trợ
func ParseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// ContentInput nội dung thô theo locale, kiểm tra kiểu ở handler
type ContentInput struct {
	Vi json.RawMessage `json:"vi"`
	En json.RawMessage `json:"en"`
}

// BlogInput body của POST /blogs và PUT/PATCH /blogs/:id.
// Con trỏ nil nghĩa là field không gửi lên.
type BlogInput struct {
	Slug     *string    `json:"slug" validate:"omitempty,max=200"`
	SlugI18n *i18n.Text `json:"slug_i18n"`

	Title   *i18n.Text    `json:"title_i18n"`
	Excerpt *i18n.Text    `json:"excerpt_i18n"`
	Content *ContentInput `json:"content_i18n"`

	CoverImage *models.Image         `json:"coverImage"`
	Gallery    *[]models.GalleryItem `json:"gallery"`
	Tags       *[]string             `json:"tags"`

	Status      *string      `json:"status"`
	PublishedAt OptionalTime `json:"publishedAt"`
	ScheduledAt OptionalTime `json:"scheduledAt"`
	IsFeatured  *bool        `json:"isFeatured"`
	SortOrder   *int         `json:"sortOrder"`

	SeoTitle       *i18n.Text     `json:"seoTitle_i18n"`
	SeoDescription *i18n.Text     `json:"seoDescription_i18n"`
	CanonicalURL   *string        `json:"canonicalUrl" validate:"omitempty,max=500"`
	OgImageURL     *string        `json:"ogImageUrl" validate:"omitempty,max=500"`
	Robots         *models.Robots `json:"robots"`
	AuthorName     *string        `json:"authorName" validate:"omitempty,max=120"`
}

// ScheduleInput body của PATCH /blogs/:id/schedule
type ScheduleInput struct {
	ScheduledAt OptionalTime `json:"scheduledAt"`
}

// AdminListQuery query của GET /blogs
type AdminListQuery struct {
	Page      int64
	Limit     int64
	Q         string
	Status    string
	Tag       string
	Sort      string
	WithCount bool
}

// PublicListQuery query của GET /public/blogs
type PublicListQuery struct {
	Page  int64
	Limit int64
	Tag   string
	Sort  string
}
