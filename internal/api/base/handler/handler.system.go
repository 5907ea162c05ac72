package basehdl

import (
	"context"
	"time"

	"github.com/doilonvl/salathai-be-demo/internal/common"

	"github.com/gofiber/fiber/v3"
)

// Pinger dependency có thể kiểm tra kết nối (MongoDB, Redis)
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingerFunc adapter cho hàm ping
type PingerFunc func(ctx context.Context) error

// Ping gọi f(ctx)
func (f PingerFunc) Ping(ctx context.Context) error { return f(ctx) }

// SystemHandler xử lý các route liên quan đến system operations
type SystemHandler struct {
	*BaseHandler
	checks map[string]Pinger
}

// NewSystemHandler tạo SystemHandler, checks là các dependency cần ping (nil được bỏ qua)
func NewSystemHandler(checks map[string]Pinger) *SystemHandler {
	active := make(map[string]Pinger, len(checks))
	for name, p := range checks {
		if p != nil {
			active[name] = p
		}
	}
	return &SystemHandler{BaseHandler: NewBaseHandler("system"), checks: active}
}

// HandleHealthz liveness đơn giản cho load balancer
func (h *SystemHandler) HandleHealthz(c fiber.Ctx) error {
	return JSONResponse(c, common.StatusOK, fiber.Map{"ok": true})
}

// HandleHealth kiểm tra tình trạng hệ thống và các kết nối
func (h *SystemHandler) HandleHealth(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	services := fiber.Map{"api": "ok"}
	healthData := fiber.Map{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"services":  services,
	}

	healthy := true
	for name, p := range h.checks {
		if err := p.Ping(ctx); err != nil {
			healthy = false
			services[name] = "error"
			h.Log(c).WithError(err).WithField("service", name).Warn("Health check thất bại")
			continue
		}
		services[name] = "ok"
	}

	if !healthy {
		healthData["status"] = "degraded"
		return JSONResponse(c, common.StatusServiceUnavailable, fiber.Map{
			"code":    common.StatusServiceUnavailable,
			"message": "Hệ thống đang gặp sự cố",
			"data":    healthData,
			"status":  "error",
		})
	}

	return JSONResponse(c, common.StatusOK, fiber.Map{
		"code":    common.StatusOK,
		"message": common.MsgSuccess,
		"data":    healthData,
		"status":  "success",
	})
}
