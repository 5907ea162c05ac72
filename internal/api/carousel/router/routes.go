// Package router đăng ký route của ba carousel trang chủ.
package router

import (
	"github.com/gofiber/fiber/v3"

	carouselhdl "github.com/doilonvl/salathai-be-demo/internal/api/carousel/handler"
	apirouter "github.com/doilonvl/salathai-be-demo/internal/api/router"
)

// routes các handler giống nhau giữa ba carousel
type routes interface {
	HandleList(c fiber.Ctx) error
	HandleAdminList(c fiber.Ctx) error
	HandleGet(c fiber.Ctx) error
	HandleCreate(c fiber.Ctx) error
	HandleUpdate(c fiber.Ctx) error
	HandleDelete(c fiber.Ctx) error
}

// mount /admin phải đăng ký trước /:id
func mount(base fiber.Router, auth []fiber.Handler, prefix string, h routes) {
	group := base.Group(prefix)
	group.Get("/", h.HandleList)
	apirouter.RegisterRouteWithMiddleware(base, prefix, "GET", "/admin", auth, h.HandleAdminList)
	group.Get("/:id", h.HandleGet)
	apirouter.RegisterRouteWithMiddleware(base, prefix, "POST", "/", auth, h.HandleCreate)
	apirouter.RegisterRouteWithMiddleware(base, prefix, "PUT", "/:id", auth, h.HandleUpdate)
	apirouter.RegisterRouteWithMiddleware(base, prefix, "DELETE", "/:id", auth, h.HandleDelete)
}

// Register /landing-menu, /marquee-images, /marquee-slides
func Register(landing *carouselhdl.LandingMenuHandler, images *carouselhdl.MarqueeImageHandler, slides *carouselhdl.MarqueeSlideHandler) apirouter.RegisterFunc {
	return func(base fiber.Router, r *apirouter.Router) error {
		auth := r.AdminAuth()
		mount(base, auth, "/landing-menu", landing)
		mount(base, auth, "/marquee-images", images)
		mount(base, auth, "/marquee-slides", slides)
		return nil
	}
}
