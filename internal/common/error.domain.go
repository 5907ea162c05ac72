package common

import "strconv"

// Mã lỗi nghiệp vụ riêng của blog, frontend dựa vào chuỗi Code để hiển thị
var (
	ErrCodeBlogScheduledAtRequired = ErrorCode{
		Code:        "BLOG_SCHEDULED_AT_REQUIRED",
		Category:    "Blog",
		SubCategory: "Status",
		Description: "Trạng thái scheduled bắt buộc có scheduledAt",
	}

	ErrCodeBlogContentTooLarge = ErrorCode{
		Code:        "BLOG_CONTENT_TOO_LARGE",
		Category:    "Blog",
		SubCategory: "Content",
		Description: "Nội dung vượt quá giới hạn kích thước",
	}
)

// Lỗi theo domain
var (
	ErrScheduledAtRequired   = NewError(ErrCodeBlogScheduledAtRequired, "scheduledAt is required for scheduled status", StatusBadRequest, nil)
	ErrSlugExists            = NewError(ErrCodeDatabaseDuplicate, "Slug already exists", StatusConflict, nil)
	ErrOrderIndexExists      = NewError(ErrCodeBusinessConflict, "orderIndex already exists, choose another", StatusBadRequest, nil)
	ErrPinnedExists          = NewError(ErrCodeBusinessConflict, "There is already a pinned image", StatusBadRequest, nil)
	ErrCategoryKeyExists     = NewError(ErrCodeBusinessConflict, "key already exists", StatusBadRequest, nil)
	ErrInvalidCategoryID     = NewError(ErrCodeValidationInput, "Invalid categoryId", StatusBadRequest, nil)
	ErrVariantRequired       = NewError(ErrCodeValidationInput, "At least one variant is required", StatusBadRequest, nil)
	ErrInvalidBlogStatus     = NewError(ErrCodeValidationInput, "Invalid status", StatusBadRequest, nil)
	ErrNoFileUploaded        = NewError(ErrCodeValidationInput, "No file uploaded", StatusBadRequest, nil)
	ErrUnsupportedFileFormat = NewError(ErrCodeValidationFormat, "Unsupported file format", StatusBadRequest, nil)
	ErrFileTooLarge          = NewError(ErrCodeValidationInput, "File too large", StatusRequestEntityTooLarge, nil)
	ErrTooManyFiles          = NewError(ErrCodeValidationInput, "Too many files", StatusBadRequest, nil)
	ErrStorageNotConfigured  = NewError(ErrCodeInternalServer, "Object storage is not configured", StatusServiceUnavailable, nil)
	ErrMailDelivery          = NewError(ErrCodeInternalServer, "Mail delivery failed", StatusInternalServerError, nil)
)

// NewValidationError tạo lỗi 400 với message cụ thể cho từng trường hợp validate
func NewValidationError(message string) error {
	return NewError(ErrCodeValidationInput, message, StatusBadRequest, nil)
}

// NewContentTooLargeError tạo lỗi 413 cho nội dung rich-doc vượt giới hạn
func NewContentTooLargeError(field string, limit int) error {
	return NewError(ErrCodeBlogContentTooLarge, field+" exceeds "+strconv.Itoa(limit)+" bytes", StatusRequestEntityTooLarge, map[string]interface{}{
		"field": field,
		"limit": limit,
	})
}
