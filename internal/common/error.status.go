package common

import (
	"errors"
	"regexp"

	"go.mongodb.org/mongo-driver/mongo"
)

// HTTP Status Code Constants
const (
	// Success Codes (2xx)
	StatusOK        = 200 // Thành công
	StatusCreated   = 201 // Tạo mới thành công
	StatusAccepted  = 202 // Yêu cầu được chấp nhận
	StatusNoContent = 204 // Thành công nhưng không có nội dung trả về

	// Client Error Codes (4xx)
	StatusBadRequest            = 400 // Yêu cầu không hợp lệ
	StatusUnauthorized          = 401 // Chưa xác thực
	StatusForbidden             = 403 // Không có quyền truy cập
	StatusNotFound              = 404 // Không tìm thấy tài nguyên
	StatusConflict              = 409 // Xung đột dữ liệu
	StatusRequestEntityTooLarge = 413 // Payload vượt giới hạn
	StatusTooManyRequests       = 429 // Quá nhiều yêu cầu

	// Server Error Codes (5xx)
	StatusInternalServerError = 500 // Lỗi server
	StatusServiceUnavailable  = 503 // Dịch vụ không khả dụng
	StatusGatewayTimeout      = 504 // Gateway timeout
)

// Response Messages
const (
	MsgSuccess  = "Thao tác thành công"
	MsgCreated  = "Tạo mới thành công"
	MsgAccepted = "Yêu cầu được chấp nhận"

	MsgBadRequest      = "Yêu cầu không hợp lệ"
	MsgUnauthorized    = "Vui lòng đăng nhập"
	MsgForbidden       = "Không có quyền truy cập"
	MsgNotFound        = "Không tìm thấy tài nguyên"
	MsgTooManyRequests = "Quá nhiều yêu cầu, vui lòng thử lại sau"
	MsgInternalError   = "Lỗi hệ thống"
	MsgRouteNotFound   = "Route not found"

	MsgValidationError = "Dữ liệu không hợp lệ"
	MsgDatabaseError   = "Lỗi tương tác với cơ sở dữ liệu"
	MsgInvalidFormat   = "Định dạng dữ liệu không hợp lệ"
)

// ErrorCode định nghĩa mã lỗi chi tiết
type ErrorCode struct {
	Code        string // Mã lỗi (ví dụ: AUTH_001)
	Category    string // Phân loại lỗi (ví dụ: Authentication)
	SubCategory string // Phân loại con (ví dụ: Token)
	Description string // Mô tả chi tiết
}

// Định nghĩa các mã lỗi theo hệ thống phân cấp
var (
	// System Errors (SYS_xxx)
	ErrCodeInternalServer = ErrorCode{
		Code:        "SYS_001",
		Category:    "System",
		SubCategory: "Internal",
		Description: "Lỗi hệ thống nội bộ",
	}

	// Authentication Errors (AUTH_xxx)
	ErrCodeAuthToken = ErrorCode{
		Code:        "AUTH_001",
		Category:    "Authentication",
		SubCategory: "Token",
		Description: "Lỗi liên quan đến token",
	}

	ErrCodeAuthCredentials = ErrorCode{
		Code:        "AUTH_002",
		Category:    "Authentication",
		SubCategory: "Credentials",
		Description: "Lỗi thông tin đăng nhập",
	}

	ErrCodeAuthAccount = ErrorCode{
		Code:        "AUTH_003",
		Category:    "Authentication",
		SubCategory: "Account",
		Description: "Tài khoản không tồn tại hoặc đã bị khóa",
	}

	ErrCodeAuthRole = ErrorCode{
		Code:        "AUTH_004",
		Category:    "Authentication",
		SubCategory: "Role",
		Description: "Lỗi liên quan đến vai trò người dùng",
	}

	// Validation Errors (VAL_xxx)
	ErrCodeValidationInput = ErrorCode{
		Code:        "VAL_001",
		Category:    "Validation",
		SubCategory: "Input",
		Description: "Lỗi dữ liệu đầu vào",
	}

	ErrCodeValidationFormat = ErrorCode{
		Code:        "VAL_002",
		Category:    "Validation",
		SubCategory: "Format",
		Description: "Lỗi định dạng dữ liệu",
	}

	// Database Errors (DB_xxx)
	ErrCodeDatabase = ErrorCode{
		Code:        "DB",
		Category:    "Database",
		SubCategory: "General",
		Description: "Lỗi cơ sở dữ liệu chung",
	}

	ErrCodeDatabaseConnection = ErrorCode{
		Code:        "DB_001",
		Category:    "Database",
		SubCategory: "Connection",
		Description: "Lỗi kết nối cơ sở dữ liệu",
	}

	ErrCodeDatabaseQuery = ErrorCode{
		Code:        "DB_002",
		Category:    "Database",
		SubCategory: "Query",
		Description: "Lỗi truy vấn dữ liệu",
	}

	ErrCodeDatabaseDuplicate = ErrorCode{
		Code:        "DB_003",
		Category:    "Database",
		SubCategory: "Duplicate",
		Description: "Vi phạm unique index",
	}

	// Business Logic Errors (BIZ_xxx)
	ErrCodeBusinessState = ErrorCode{
		Code:        "BIZ_001",
		Category:    "Business",
		SubCategory: "State",
		Description: "Lỗi trạng thái nghiệp vụ",
	}

	ErrCodeBusinessOperation = ErrorCode{
		Code:        "BIZ_002",
		Category:    "Business",
		SubCategory: "Operation",
		Description: "Lỗi thao tác nghiệp vụ",
	}

	ErrCodeBusinessConflict = ErrorCode{
		Code:        "BIZ_003",
		Category:    "Business",
		SubCategory: "Conflict",
		Description: "Dữ liệu trùng với bản ghi đã có",
	}
)

// Error định nghĩa cấu trúc lỗi chi tiết
type Error struct {
	Code       ErrorCode // Mã lỗi chi tiết
	Message    string    // Thông báo lỗi
	StatusCode int       // HTTP status code
	Details    any       // Thông tin chi tiết thêm về lỗi
}

// Error trả về message của lỗi
func (e *Error) Error() string {
	return e.Message
}

// Is so sánh theo mã lỗi và message để errors.Is hoạt động với các lỗi định nghĩa sẵn
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code.Code == t.Code.Code && e.Message == t.Message
}

// NewError tạo một error mới với đầy đủ thông tin
func NewError(code ErrorCode, message string, statusCode int, details any) error {
	return &Error{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    details,
	}
}

// WithDetails trả về bản sao của lỗi kèm thông tin chi tiết
func WithDetails(err error, details any) error {
	var e *Error
	if !errors.As(err, &e) {
		return err
	}
	cp := *e
	cp.Details = details
	return &cp
}

// Custom errors
var (
	// Authentication Errors
	ErrInvalidCredentials  = NewError(ErrCodeAuthCredentials, "Invalid credentials", StatusUnauthorized, nil)
	ErrCredentialsRequired = NewError(ErrCodeValidationInput, "Email and password are required", StatusBadRequest, nil)
	ErrTokenMissing        = NewError(ErrCodeAuthToken, "Unauthorized", StatusUnauthorized, nil)
	ErrTokenInvalid        = NewError(ErrCodeAuthToken, "Invalid token", StatusUnauthorized, nil)
	ErrRefreshMissing      = NewError(ErrCodeAuthToken, "No refresh token", StatusUnauthorized, nil)
	ErrRefreshInvalid      = NewError(ErrCodeAuthToken, "Invalid refresh token", StatusUnauthorized, nil)
	ErrUserInactive        = NewError(ErrCodeAuthAccount, "User not found or inactive", StatusUnauthorized, nil)
	ErrAccountInactive     = NewError(ErrCodeAuthAccount, "Account is inactive. Please contact admin.", StatusForbidden, nil)
	ErrUserNotFound        = NewError(ErrCodeAuthAccount, "User not found", StatusNotFound, nil)
	ErrForbidden           = NewError(ErrCodeAuthRole, MsgForbidden, StatusForbidden, nil)

	// Validation Errors
	ErrInvalidInput  = NewError(ErrCodeValidationInput, "Dữ liệu đầu vào không hợp lệ", StatusBadRequest, nil)
	ErrInvalidFormat = NewError(ErrCodeValidationFormat, MsgInvalidFormat, StatusBadRequest, nil)
	ErrMissingBody   = NewError(ErrCodeValidationInput, "Missing JSON body", StatusBadRequest, nil)
	ErrInvalidID     = NewError(ErrCodeValidationFormat, "Invalid id", StatusBadRequest, nil)

	// Database Errors
	ErrNotFound   = NewError(ErrCodeDatabaseQuery, "Not found", StatusNotFound, nil)
	ErrDuplicate  = NewError(ErrCodeDatabaseDuplicate, "Dữ liệu đã tồn tại", StatusConflict, nil)
	ErrConnection = NewError(ErrCodeDatabaseConnection, "Lỗi kết nối cơ sở dữ liệu", StatusServiceUnavailable, nil)
	ErrTimeout    = NewError(ErrCodeDatabaseConnection, "Kết nối MongoDB bị timeout", StatusGatewayTimeout, nil)

	// Business Logic Errors
	ErrInvalidState     = NewError(ErrCodeBusinessState, "Trạng thái không hợp lệ", StatusBadRequest, nil)
	ErrInvalidOperation = NewError(ErrCodeBusinessOperation, "Thao tác không hợp lệ", StatusBadRequest, nil)
	ErrInternal         = NewError(ErrCodeInternalServer, "Internal server error", StatusInternalServerError, nil)
	ErrRouteNotFound    = NewError(ErrCodeBusinessOperation, MsgRouteNotFound, StatusNotFound, nil)
	ErrTooManyRequests  = NewError(ErrCodeBusinessOperation, MsgTooManyRequests, StatusTooManyRequests, nil)
)

// ConvertMongoError chuyển đổi lỗi MongoDB sang lỗi hệ thống
func ConvertMongoError(err error) error {
	if err == nil {
		return nil
	}

	// Lỗi đã thuộc hệ thống thì giữ nguyên
	var e *Error
	if errors.As(err, &e) {
		return err
	}

	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		if idx := DuplicateKeyIndex(err); idx != "" {
			return WithDetails(ErrDuplicate, map[string]string{"index": idx})
		}
		return ErrDuplicate
	}
	if mongo.IsTimeout(err) {
		return ErrTimeout
	}
	if mongo.IsNetworkError(err) {
		return ErrConnection
	}

	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		return NewError(ErrCodeDatabaseQuery, MsgDatabaseError, StatusInternalServerError, cmdErr.Message)
	}

	return NewError(ErrCodeDatabase, MsgDatabaseError, StatusInternalServerError, err.Error())
}

var dupIndex = regexp.MustCompile(`index: (\S+) dup key`)

// DuplicateKeyIndex tên index bị vi phạm trong lỗi E11000, đọc được cả lỗi đã qua ConvertMongoError.
// Không xác định được thì trả về ""
func DuplicateKeyIndex(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if d, ok := e.Details.(map[string]string); ok {
			return d["index"]
		}
		return ""
	}

	var msgs []string
	var we mongo.WriteException
	var bwe mongo.BulkWriteException
	var ce mongo.CommandError
	switch {
	case errors.As(err, &we):
		for _, w := range we.WriteErrors {
			msgs = append(msgs, w.Message)
		}
	case errors.As(err, &bwe):
		for _, w := range bwe.WriteErrors {
			msgs = append(msgs, w.Message)
		}
	case errors.As(err, &ce):
		msgs = append(msgs, ce.Message)
	}
	for _, m := range msgs {
		if sub := dupIndex.FindStringSubmatch(m); sub != nil {
			return sub[1]
		}
	}
	return ""
}

// StatusOf trả về HTTP status tương ứng với lỗi, mặc định là 500
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) && e.StatusCode != 0 {
		return e.StatusCode
	}
	return StatusInternalServerError
}
