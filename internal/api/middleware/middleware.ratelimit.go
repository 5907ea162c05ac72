package middleware

import (
	"time"

	"github.com/doilonvl/salathai-be-demo/internal/common"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/limiter"
)

// RateLimit giới hạn max request mỗi window theo IP, vượt quá trả 429 dạng envelope.
// skip trả true thì request không bị tính.
func RateLimit(max int, window time.Duration, skip func(c fiber.Ctx) bool) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c fiber.Ctx) error {
			return HandleErrorResponse(c, common.ErrTooManyRequests)
		},
		Next: skip,
	})
}
