package global

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/doilonvl/salathai-be-demo/internal/i18n"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	phonePattern = regexp.MustCompile(`^[0-9+().\-\s]{6,40}$`)
	timePattern  = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9]$`)
)

// InitValidator khởi tạo và đăng ký các custom validator
func InitValidator() {
	// Khởi tạo validator
	Validate = validator.New()

	// Dùng tên json trong thông báo lỗi để frontend map được về field
	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Đăng ký các custom validator
	_ = Validate.RegisterValidation("no_xss", validateNoXSS)
	_ = Validate.RegisterValidation("locale_map", validateLocaleMap)
	_ = Validate.RegisterValidation("object_id", validateObjectID)
	_ = Validate.RegisterValidation("phone", validatePhone)
	_ = Validate.RegisterValidation("clock", validateClock)
}

// validateNoXSS kiểm tra XSS
func validateNoXSS(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	dangerousPatterns := []string{
		"<script",
		"javascript:",
		"onerror=",
		"onload=",
		"onclick=",
		"onmouseover=",
		"eval(",
		"document.cookie",
		"document.write",
		"innerHTML",
		"fromCharCode",
		"window.location",
		"<iframe",
		"<object",
		"<embed",
	}

	value = strings.ToLower(value)
	for _, pattern := range dangerousPatterns {
		if strings.Contains(value, strings.ToLower(pattern)) {
			return false
		}
	}
	return true
}

// validateLocaleMap yêu cầu map {vi, en} có ít nhất một bản dịch không rỗng.
// Nil pointer được coi là hợp lệ, kết hợp với required nếu bắt buộc.
func validateLocaleMap(fl validator.FieldLevel) bool {
	switch v := fl.Field().Interface().(type) {
	case i18n.Text:
		return !v.Trim().IsEmpty()
	case *i18n.Text:
		return v == nil || !v.Trim().IsEmpty()
	default:
		return false
	}
}

// validateObjectID kiểm tra chuỗi hex 24 ký tự của MongoDB, chuỗi rỗng bỏ qua
func validateObjectID(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return primitive.IsValidObjectID(value)
}

// validatePhone kiểm tra số điện thoại dạng lỏng (số, khoảng trắng, + - . ())
func validatePhone(fl validator.FieldLevel) bool {
	return phonePattern.MatchString(strings.TrimSpace(fl.Field().String()))
}

// validateClock kiểm tra giờ dạng HH:mm
func validateClock(fl validator.FieldLevel) bool {
	return timePattern.MatchString(strings.TrimSpace(fl.Field().String()))
}
