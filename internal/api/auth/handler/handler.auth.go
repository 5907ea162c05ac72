// Package authhdl xử lý đăng nhập, đăng xuất, refresh token và /auth/me.
package authhdl

import (
	"encoding/json"
	"time"

	"github.com/doilonvl/salathai-be-demo/config"
	authdto "github.com/doilonvl/salathai-be-demo/internal/api/auth/dto"
	authsvc "github.com/doilonvl/salathai-be-demo/internal/api/auth/service"
	basehdl "github.com/doilonvl/salathai-be-demo/internal/api/base/handler"
	"github.com/doilonvl/salathai-be-demo/internal/api/middleware"
	"github.com/doilonvl/salathai-be-demo/internal/common"
	"github.com/doilonvl/salathai-be-demo/internal/logger"

	"github.com/gofiber/fiber/v3"
)

// CookieOptions thuộc tính chung của cookie access_token / refresh_token
type CookieOptions struct {
	Domain     string
	Secure     bool
	Production bool
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// NewCookieOptions đọc cấu hình cookie
func NewCookieOptions(cfg *config.Configuration) CookieOptions {
	return CookieOptions{
		Domain:     cfg.CookieDomain,
		Secure:     cfg.CookieSecure,
		Production: cfg.IsProduction(),
		AccessTTL:  cfg.AccessTTL(),
		RefreshTTL: cfg.RefreshTTL(),
	}
}

// SameSite production chạy khác domain với frontend nên cần None
func (o CookieOptions) SameSite() string {
	if o.Production {
		return fiber.CookieSameSiteNoneMode
	}
	return fiber.CookieSameSiteLaxMode
}

func (o CookieOptions) cookie(name, value string, ttl time.Duration) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   o.Domain,
		MaxAge:   int(ttl / time.Second),
		Secure:   o.Secure,
		HTTPOnly: true,
		SameSite: o.SameSite(),
	}
}

// AuthHandler xử lý các request xác thực
type AuthHandler struct {
	*basehdl.BaseHandler
	auth    *authsvc.AuthService
	cookies CookieOptions
}

// NewAuthHandler tạo instance mới của AuthHandler
func NewAuthHandler(auth *authsvc.AuthService, cookies CookieOptions) *AuthHandler {
	return &AuthHandler{
		BaseHandler: basehdl.NewBaseHandler("auth"),
		auth:        auth,
		cookies:     cookies,
	}
}

func (h *AuthHandler) setAuthCookies(c fiber.Ctx, pair authsvc.TokenPair) {
	c.Cookie(h.cookies.cookie(middleware.AccessCookie, pair.AccessToken, h.cookies.AccessTTL))
	c.Cookie(h.cookies.cookie(middleware.RefreshCookie, pair.RefreshToken, h.cookies.RefreshTTL))
}

func (h *AuthHandler) clearAuthCookies(c fiber.Ctx) {
	for _, name := range []string{middleware.AccessCookie, middleware.RefreshCookie} {
		ck := h.cookies.cookie(name, "", 0)
		ck.Expires = time.Unix(0, 0)
		c.Cookie(ck)
	}
}

// HandleLogin POST /auth/login
func (h *AuthHandler) HandleLogin(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input authdto.LoginInput
		if len(c.Body()) > 0 {
			if err := h.ParseRequestBody(c, &input); err != nil {
				h.HandleResponse(c, nil, err)
				return nil
			}
		}

		result, err := h.auth.Login(c.Context(), input.Email, input.Password)
		if err != nil {
			logger.LogAuth("login_failed", c, map[string]interface{}{"email": input.Email, "reason": err.Error()})
			h.HandleResponse(c, nil, err)
			return nil
		}

		h.setAuthCookies(c, result.Tokens)
		c.Locals(logger.LocalUserID, result.User.ID.Hex())
		logger.LogAuth("login", c, map[string]interface{}{"email": result.User.Email})
		h.HandleResponse(c, result.User.Profile(), nil)
		return nil
	})
}

// HandleMe GET /auth/me (sau AdminAuth)
func (h *AuthHandler) HandleMe(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID := h.UserID(c)
		if userID == "" {
			h.HandleResponse(c, nil, common.ErrTokenMissing)
			return nil
		}
		user, err := h.auth.Me(c.Context(), userID)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		h.HandleResponse(c, user.Profile(), nil)
		return nil
	})
}

// HandleLogout POST /auth/logout, luôn xóa cookie kể cả khi chưa đăng nhập
func (h *AuthHandler) HandleLogout(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		h.auth.Logout(c.Context(), h.refreshToken(c))
		h.clearAuthCookies(c)
		logger.LogAuth("logout", c, nil)
		h.HandleResponseStatus(c, common.StatusOK, "Logged out", nil, nil)
		return nil
	})
}

// HandleRefresh POST /auth/refresh
func (h *AuthHandler) HandleRefresh(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		result, err := h.auth.Refresh(c.Context(), h.refreshToken(c))
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		h.setAuthCookies(c, result.Tokens)
		c.Locals(logger.LocalUserID, result.User.ID.Hex())
		logger.LogAuth("refresh", c, nil)
		h.HandleResponse(c, fiber.Map{"accessToken": result.Tokens.AccessToken}, nil)
		return nil
	})
}

// refreshToken cookie refresh_token, không có thì lấy refreshToken trong body
func (h *AuthHandler) refreshToken(c fiber.Ctx) string {
	if token := c.Cookies(middleware.RefreshCookie); token != "" {
		return token
	}
	var input authdto.RefreshInput
	if len(c.Body()) > 0 {
		_ = json.Unmarshal(c.Body(), &input)
	}
	return input.RefreshToken
}
