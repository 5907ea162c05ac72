// Package i18n xử lý nội dung song ngữ {vi, en}: chọn locale theo request và
// làm phẳng các field <tên>_i18n thành một giá trị duy nhất.
package i18n

import (
	"slices"
	"strings"

	"github.com/gofiber/fiber/v3"
)

// Locale mã ngôn ngữ được hỗ trợ
type Locale string

const (
	Vi Locale = "vi"
	En Locale = "en"

	// Default dùng khi request không chỉ định hoặc không nhận diện được
	Default = Vi
)

// Supported thứ tự cố định các locale
var Supported = []Locale{Vi, En}

// QueryParam tên query override header Accept-Language
const QueryParam = "locale"

// Normalize trả về đúng một locale được hỗ trợ: so khớp tiền tố, không phân biệt hoa thường,
// không xét trọng số q=
func Normalize(raw string) Locale {
	v := strings.ToLower(strings.TrimSpace(raw))
	if v == "" {
		return Default
	}
	for _, l := range Supported {
		if strings.HasPrefix(v, string(l)) {
			return l
		}
	}
	return Default
}

// IsSupported locale có nằm trong danh sách hỗ trợ
func IsSupported(raw string) bool {
	for _, l := range Supported {
		if string(l) == raw {
			return true
		}
	}
	return false
}

// FromRequest query ?locale= ưu tiên hơn Accept-Language
func FromRequest(c fiber.Ctx) Locale {
	if q := c.Query(QueryParam); strings.TrimSpace(q) != "" {
		return Normalize(q)
	}
	return Normalize(c.Get(fiber.HeaderAcceptLanguage))
}

// Requested client có chủ động chọn ngôn ngữ hay không.
// Admin chỉ nhận bản đã làm phẳng khi có yêu cầu.
func Requested(c fiber.Ctx) bool {
	return strings.TrimSpace(c.Query(QueryParam)) != "" ||
		strings.TrimSpace(c.Get(fiber.HeaderAcceptLanguage)) != ""
}

// Chain chuỗi fallback của một field song ngữ: locale yêu cầu rồi locale mặc định
func Chain(requested Locale) []Locale {
	if requested == "" || requested == Default {
		return []Locale{Default}
	}
	return []Locale{requested, Default}
}

// Priority Chain rồi các locale còn lại. Dùng khi không có field gốc để rơi về,
// như meta SEO hay mục lục blog
func Priority(requested Locale) []Locale {
	out := Chain(requested)
	for _, l := range Supported {
		if !slices.Contains(out, l) {
			out = append(out, l)
		}
	}
	return out
}

// SetVary báo cho cache biết response thay đổi theo Accept-Language
func SetVary(c fiber.Ctx) {
	c.Vary(fiber.HeaderAcceptLanguage)
}
