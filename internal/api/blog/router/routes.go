// Package router đăng ký route blog quản trị (/blogs) và public (/public/blogs).
package router

import (
	"github.com/gofiber/fiber/v3"

	bloghdl "github.com/doilonvl/salathai-be-demo/internal/api/blog/handler"
	apirouter "github.com/doilonvl/salathai-be-demo/internal/api/router"
)

// Register trả về hàm đăng ký route blog lên API_BASE.
// /publish-scheduled phải đăng ký trước /:id.
func Register(h *bloghdl.BlogHandler) apirouter.RegisterFunc {
	return func(base fiber.Router, r *apirouter.Router) error {
		auth := r.AdminAuth()
		const prefix = "/blogs"

		apirouter.RegisterRouteWithMiddleware(base, prefix, "GET", "/", auth, h.HandleList)
		apirouter.RegisterRouteWithMiddleware(base, prefix, "POST", "/", auth, h.HandleCreate)
		apirouter.RegisterRouteWithMiddleware(base, prefix, "POST", "/publish-scheduled", auth, h.HandlePublishScheduled)
		apirouter.RegisterRouteWithMiddleware(base, prefix, "GET", "/:id", auth, h.HandleGet)
		apirouter.RegisterRouteWithMiddleware(base, prefix, "PUT", "/:id", auth, h.HandleUpdate)
		apirouter.RegisterRouteWithMiddleware(base, prefix, "PATCH", "/:id", auth, h.HandleUpdate)
		apirouter.RegisterRouteWithMiddleware(base, prefix, "DELETE", "/:id", auth, h.HandleDelete)
		apirouter.RegisterRouteWithMiddleware(base, prefix, "PATCH", "/:id/publish", auth, h.HandlePublish)
		apirouter.RegisterRouteWithMiddleware(base, prefix, "PATCH", "/:id/archive", auth, h.HandleArchive)
		apirouter.RegisterRouteWithMiddleware(base, prefix, "PATCH", "/:id/schedule", auth, h.HandleSchedule)

		public := base.Group("/public/blogs")
		public.Get("/", h.HandlePublicList)
		public.Get("/:slug", h.HandlePublicDetail)
		public.Post("/:id/view", h.HandleView)
		return nil
	}
}
