package router

import (
	"strings"

	basehdl "github.com/doilonvl/salathai-be-demo/internal/api/base/handler"
	"github.com/doilonvl/salathai-be-demo/internal/api/middleware"
	"github.com/doilonvl/salathai-be-demo/internal/common"

	"github.com/gofiber/fiber/v3"
)

// ============================================================================
// CÁCH ĐĂNG KÝ MIDDLEWARE THEO ROUTE TRONG FIBER V3
// ============================================================================
//
// Fiber v3 đổi chữ ký: Get(path, handler, middleware...). Handler đứng TRƯỚC,
// middleware đứng SAU nhưng được chạy trước handler.
//
// ❌ SAI: router.Get("/path", authMiddleware, handler)
//    → authMiddleware bị coi là handler, handler thật chạy trước và middleware bị bỏ qua
//
// ❌ SAI: router.Group("/prefix").Use(authMiddleware)
//    → middleware áp dụng cho MỌI route cùng prefix, kể cả route public như GET /products
//
// ✅ ĐÚNG: RegisterRouteWithMiddleware(router, "/products", "POST", "/", []fiber.Handler{auth}, handler)
//
// ============================================================================

// Router quản lý việc định tuyến cho API
type Router struct {
	app       *fiber.App
	adminAuth fiber.Handler
}

// RoutePrefix chứa prefix cơ bản cho API
type RoutePrefix struct {
	Base string // Prefix cho toàn bộ API (/api/v1)
}

// NewRoutePrefix tạo RoutePrefix từ API_BASE, bỏ dấu / ở cuối
func NewRoutePrefix(apiBase string) RoutePrefix {
	base := "/" + strings.Trim(strings.TrimSpace(apiBase), "/")
	if base == "/" {
		base = "/api/v1"
	}
	return RoutePrefix{Base: base}
}

// NewRouter tạo mới một instance của Router
func NewRouter(app *fiber.App, adminAuth fiber.Handler) *Router {
	return &Router{
		app:       app,
		adminAuth: adminAuth,
	}
}

// AdminAuth middleware xác thực admin dùng chung cho mọi domain
func (r *Router) AdminAuth() []fiber.Handler {
	if r.adminAuth == nil {
		return nil
	}
	return []fiber.Handler{r.adminAuth}
}

// RegisterRouteWithMiddleware đăng ký route với middleware riêng cho đúng route đó.
// Dùng từ domain router.
func RegisterRouteWithMiddleware(router fiber.Router, prefix string, method string, path string, middlewares []fiber.Handler, handler fiber.Handler) {
	routeGroup := router.Group(prefix)
	routeGroup.Add([]string{strings.ToUpper(method)}, path, handler, middlewares...)
}

// RegisterFunc là hàm đăng ký route của một domain (do domain/router export)
type RegisterFunc func(base fiber.Router, r *Router) error

// SetupRoutes thiết lập tất cả các route cho ứng dụng.
// Caller truyền lần lượt Register của từng domain để tránh import cycle.
// Route không khớp trả về 404 "Route not found".
func SetupRoutes(app *fiber.App, apiBase string, adminAuth fiber.Handler, regs ...RegisterFunc) error {
	prefix := NewRoutePrefix(apiBase)
	base := app.Group(prefix.Base)
	r := NewRouter(app, adminAuth)
	for _, reg := range regs {
		if err := reg(base, r); err != nil {
			return err
		}
	}

	app.Use(func(c fiber.Ctx) error {
		return middleware.HandleErrorResponse(c, common.ErrRouteNotFound)
	})
	return nil
}

// SystemRoutes /healthz ở gốc và /system/health dưới API_BASE
func SystemRoutes(h *basehdl.SystemHandler) RegisterFunc {
	return func(base fiber.Router, r *Router) error {
		r.app.Get("/healthz", h.HandleHealthz)
		base.Get("/system/health", h.HandleHealth)
		return nil
	}
}
