// Package router đăng ký các route thuộc domain auth: login, me, logout, refresh.
package router

import (
	"github.com/gofiber/fiber/v3"

	authhdl "github.com/doilonvl/salathai-be-demo/internal/api/auth/handler"
	apirouter "github.com/doilonvl/salathai-be-demo/internal/api/router"
)

// Register trả về hàm đăng ký route auth lên API_BASE
func Register(h *authhdl.AuthHandler) apirouter.RegisterFunc {
	return func(base fiber.Router, r *apirouter.Router) error {
		auth := base.Group("/auth")
		auth.Post("/login", h.HandleLogin)
		auth.Post("/logout", h.HandleLogout)
		auth.Post("/refresh", h.HandleRefresh)
		apirouter.RegisterRouteWithMiddleware(base, "/auth", "GET", "/me", r.AdminAuth(), h.HandleMe)
		return nil
	}
}
