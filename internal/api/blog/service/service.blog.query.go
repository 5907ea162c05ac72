package blogsvc

import (
	"strings"
	"time"

	blogdto "github.com/doilonvl/salathai-be-demo/internal/api/blog/dto"
	"github.com/doilonvl/salathai-be-demo/internal/api/blog/models"
	"github.com/doilonvl/salathai-be-demo/internal/common"

	"go.mongodb.org/mongo-driver/bson"
)

// Giới hạn phân trang
const (
	DefaultLimit = 20
	MaxLimit     = 50
)

// Sort cho phép
var (
	AdminSortFields  = []string{"updatedAt", "publishedAt", "sortOrder"}
	PublicSortFields = []string{"publishedAt", "sortOrder"}
)

// Sort mặc định
const (
	DefaultAdminSort  = "-updatedAt"
	DefaultPublicSort = "-publishedAt"
)

// ClampLimit 0 thành mặc định, ngoài khoảng thì kẹp lại trong 1..50
func ClampLimit(n int64) int64 {
	switch {
	case n == 0:
		return DefaultLimit
	case n < 1:
		return 1
	case n > MaxLimit:
		return MaxLimit
	}
	return n
}

// ParseSort "-field" giảm dần, "field" tăng dần. Field ngoài whitelist dùng fallback.
func ParseSort(raw string, allowed []string, fallback string) bson.D {
	parse := func(s string) (string, int) {
		if strings.HasPrefix(s, "-") {
			return s[1:], -1
		}
		return s, 1
	}

	field, dir := parse(strings.TrimSpace(raw))
	for _, a := range allowed {
		if a == field {
			return bson.D{{Key: field, Value: dir}}
		}
	}
	field, dir = parse(fallback)
	return bson.D{{Key: field, Value: dir}}
}

// AdminFilter bài chưa xóa, lọc thêm theo status, tag và full-text.
// status rỗng hoặc "all" nghĩa là không lọc.
func AdminFilter(q blogdto.AdminListQuery) (bson.M, error) {
	filter := bson.M{"deletedAt": nil}

	if status := strings.TrimSpace(q.Status); status != "" && status != "all" {
		if !models.ValidStatus(status) {
			return nil, common.ErrInvalidBlogStatus
		}
		filter["status"] = status
	}
	if tag := strings.TrimSpace(q.Tag); tag != "" {
		filter["tags"] = tag
	}
	if text := strings.TrimSpace(q.Q); text != "" {
		filter["$text"] = bson.M{"$search": text}
	}
	return filter, nil
}

// VisibleFilter bài đang hiển thị công khai tại thời điểm now
func VisibleFilter(now time.Time) bson.M {
	return bson.M{
		"status":      models.StatusPublished,
		"deletedAt":   nil,
		"publishedAt": bson.M{"$lte": now},
	}
}

// PublicFilter VisibleFilter kèm tag
func PublicFilter(q blogdto.PublicListQuery, now time.Time) bson.M {
	filter := VisibleFilter(now)
	if tag := strings.TrimSpace(q.Tag); tag != "" {
		filter["tags"] = tag
	}
	return filter
}

// SlugFilter khớp slug chuẩn hoặc slug của locale được yêu cầu
func SlugFilter(slug string, locale string, now time.Time) bson.M {
	filter := VisibleFilter(now)
	filter["$or"] = bson.A{
		bson.M{"slug": slug},
		bson.M{"slug_i18n." + locale: slug},
	}
	return filter
}

// DueFilter bài hẹn giờ đã tới hạn
func DueFilter(now time.Time) bson.M {
	return bson.M{
		"status":      models.StatusScheduled,
		"deletedAt":   nil,
		"scheduledAt": bson.M{"$lte": now},
	}
}

// listProjection danh sách không trả content_i18n
var listProjection = bson.M{"content_i18n": 0}
