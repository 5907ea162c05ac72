// Package router đăng ký route /reservation-requests.
package router

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/doilonvl/salathai-be-demo/internal/api/middleware"
	reservationhdl "github.com/doilonvl/salathai-be-demo/internal/api/reservation/handler"
	apirouter "github.com/doilonvl/salathai-be-demo/internal/api/router"
)

const prefix = "/reservation-requests"

// Register POST công khai có giới hạn theo IP (rateMax <= 0 thì tắt), còn lại cần đăng nhập
func Register(h *reservationhdl.ReservationHandler, rateMax int, rateWindow time.Duration) apirouter.RegisterFunc {
	return func(base fiber.Router, r *apirouter.Router) error {
		var public []fiber.Handler
		if rateMax > 0 {
			public = append(public, middleware.RateLimit(rateMax, rateWindow, nil))
		}
		apirouter.RegisterRouteWithMiddleware(base, prefix, "POST", "/", public, h.HandleCreate)

		auth := r.AdminAuth()
		apirouter.RegisterRouteWithMiddleware(base, prefix, "GET", "/", auth, h.HandleList)
		apirouter.RegisterRouteWithMiddleware(base, prefix, "GET", "/:id", auth, h.HandleGet)
		apirouter.RegisterRouteWithMiddleware(base, prefix, "PATCH", "/:id/status", auth, h.HandleUpdateStatus)
		return nil
	}
}
