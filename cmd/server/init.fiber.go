package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/doilonvl/salathai-be-demo/config"
	"github.com/doilonvl/salathai-be-demo/internal/api/middleware"
	apirouter "github.com/doilonvl/salathai-be-demo/internal/api/router"
	"github.com/doilonvl/salathai-be-demo/internal/common"
	"github.com/doilonvl/salathai-be-demo/internal/global"
	"github.com/doilonvl/salathai-be-demo/internal/logger"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/google/uuid"
)

// isTLSHandshake client gọi https:// vào server HTTP, byte đầu là 0x16 0x03 0x01
func isTLSHandshake(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "unsupported http request method") &&
		(strings.Contains(msg, "\\x16\\x03\\x01") ||
			strings.Contains(msg, "\x16\x03\x01") ||
			strings.Contains(msg, "error when reading request headers"))
}

// corsConfig CORS_ORIGINS="*" kèm credentials thì phản chiếu origin của request
func corsConfig(cfg *config.Configuration) cors.Config {
	c := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "PATCH", "HEAD", "OPTIONS"},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
			"Accept-Language",
			"Authorization",
			"X-Request-ID",
			"X-Requested-With",
		},
		AllowCredentials: cfg.CORS_AllowCredentials,
		ExposeHeaders:    []string{"Content-Length", "Content-Range", "X-Request-ID"},
		MaxAge:           24 * 60 * 60, // Cache preflight 24 giờ
	}

	origins := strings.TrimSpace(cfg.CORS_Origins)
	if origins == "*" || origins == "" {
		if cfg.CORS_AllowCredentials {
			c.AllowOriginsFunc = func(string) bool { return true }
		} else {
			c.AllowOrigins = []string{"*"}
		}
		return c
	}
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			c.AllowOrigins = append(c.AllowOrigins, o)
		}
	}
	return c
}

// InitFiberApp khởi tạo ứng dụng Fiber với các middleware cần thiết
func InitFiberApp(reg *Registry) *fiber.App {
	cfg := global.MongoDB_ServerConfig
	healthPaths := map[string]bool{
		"/healthz": true,
		apirouter.NewRoutePrefix(cfg.APIBase).Base + "/system/health": true,
	}

	app := fiber.New(fiber.Config{
		// =========================================
		// 1. CẤU HÌNH CƠ BẢN
		// =========================================
		AppName:       "Salathai API",
		ServerHeader:  "Salathai API",
		StrictRouting: false, // /products và /products/ là một
		CaseSensitive: true,
		UnescapePath:  true,

		// =========================================
		// 2. CẤU HÌNH PERFORMANCE
		// =========================================
		BodyLimit:       cfg.BodyLimitMB * 1024 * 1024,
		Concurrency:     256 * 1024,
		ReadBufferSize:  8192, // Cookie + Accept-Language dài
		WriteBufferSize: 4096,

		// =========================================
		// 3. CẤU HÌNH TIMEOUT
		// =========================================
		ReadTimeout:  60 * time.Second, // Upload file lớn
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,

		// =========================================
		// 4. CẤU HÌNH ERROR HANDLING
		// =========================================
		ErrorHandler: func(c fiber.Ctx, err error) error {
			if isTLSHandshake(err) {
				return middleware.JSONResponse(c, fiber.StatusBadRequest, fiber.Map{
					"code":    common.ErrCodeValidationInput.Code,
					"message": "Server chỉ hỗ trợ HTTP. Vui lòng sử dụng http:// thay vì https://",
					"status":  "error",
				})
			}
			logger.WithRequest(c).WithError(err).Debug("Request error")
			return middleware.ErrorHandler(c, err)
		},
	})

	// =========================================
	// MIDDLEWARE STACK
	// =========================================

	// 1. Request ID để trace log
	app.Use(requestid.New(requestid.Config{
		Header:    "X-Request-ID",
		Generator: uuid.NewString,
	}))

	// 2. CORS đặt đầu để xử lý preflight trước các middleware khác
	app.Use(cors.New(corsConfig(cfg)))

	// 3. Security headers
	app.Use(func(c fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		if cfg.EnableTLS {
			c.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}
		return c.Next()
	})

	// 4. Rate limit toàn cục, form đặt bàn có limiter riêng chặt hơn
	log := logger.GetAppLogger()
	if cfg.RateLimit_Enabled && cfg.RateLimit_Max > 0 {
		window := time.Duration(cfg.RateLimit_Window) * time.Second
		app.Use(middleware.RateLimit(cfg.RateLimit_Max, window, func(c fiber.Ctx) bool {
			return healthPaths[c.Path()] || c.Method() == fiber.MethodOptions
		}))
		log.Infof("Rate limiting enabled: %d requests per %d seconds", cfg.RateLimit_Max, cfg.RateLimit_Window)
	} else {
		log.Info("Rate limiting disabled")
	}

	// 5. Recover, SafeHandler của từng handler là lớp đầu tiên
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c fiber.Ctx, e interface{}) {
			logger.WithRequest(c).WithField("panic", fmt.Sprintf("%v", e)).Error("Panic recovered")
		},
	}))

	if err := apirouter.SetupRoutes(app, cfg.APIBase, reg.AdminAuth, reg.Routes...); err != nil {
		log.Fatalf("Failed to setup routes: %v", err)
	}
	return app
}
