package middleware

import (
	"context"
	"strings"

	models "github.com/doilonvl/salathai-be-demo/internal/api/auth/models"
	"github.com/doilonvl/salathai-be-demo/internal/common"
	"github.com/doilonvl/salathai-be-demo/internal/logger"

	"github.com/gofiber/fiber/v3"
)

// Tên cookie chứa token
const (
	AccessCookie  = "access_token"
	RefreshCookie = "refresh_token"
)

// LocalUserEmail key Locals chứa email admin
const LocalUserEmail = "user_email"

// Authenticator kiểm tra access token và trả về người dùng tương ứng
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.Principal, error)
}

// BearerOrCookie lấy token từ header "Authorization: Bearer <token>", không có thì đọc cookie access_token
func BearerOrCookie(c fiber.Ctx) string {
	if header := c.Get(fiber.HeaderAuthorization); strings.HasPrefix(header, "Bearer ") {
		if token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer ")); token != "" {
			return token
		}
	}
	return c.Cookies(AccessCookie)
}

// AdminAuth middleware xác thực admin cho Fiber.
// Thành công thì gắn user_id, user_email, user_role vào Locals.
func AdminAuth(auth Authenticator) fiber.Handler {
	return func(c fiber.Ctx) error {
		principal, err := auth.Authenticate(c.Context(), BearerOrCookie(c))
		if err != nil {
			// Chỉ log cảnh báo, không log token
			logger.WithRequest(c).WithField("reason", err.Error()).Warn("❌ [AUTH] Từ chối truy cập")
			return HandleErrorResponse(c, err)
		}

		c.Locals(logger.LocalUserID, principal.ID)
		c.Locals(LocalUserEmail, principal.Email)
		c.Locals(logger.LocalUserRole, principal.Role)
		return c.Next()
	}
}

// RequireRole chỉ cho phép các role được liệt kê, đặt sau AdminAuth
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c fiber.Ctx) error {
		role, _ := c.Locals(logger.LocalUserRole).(string)
		if !allowed[role] {
			return HandleErrorResponse(c, common.ErrForbidden)
		}
		return c.Next()
	}
}
