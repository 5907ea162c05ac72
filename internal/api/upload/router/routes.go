// Package router đăng ký route /upload.
package router

import (
	"github.com/gofiber/fiber/v3"

	uploadhdl "github.com/doilonvl/salathai-be-demo/internal/api/upload/handler"
	apirouter "github.com/doilonvl/salathai-be-demo/internal/api/router"
)

// Register cả hai route đều cần đăng nhập
func Register(h *uploadhdl.UploadHandler) apirouter.RegisterFunc {
	return func(base fiber.Router, r *apirouter.Router) error {
		auth := r.AdminAuth()
		apirouter.RegisterRouteWithMiddleware(base, "/upload", "POST", "/", auth, h.HandleSingle)
		apirouter.RegisterRouteWithMiddleware(base, "/upload", "POST", "/multiple", auth, h.HandleMultiple)
		return nil
	}
}
