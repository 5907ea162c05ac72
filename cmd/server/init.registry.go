package main

import (
	"context"
	"time"

	authhdl "github.com/doilonvl/salathai-be-demo/internal/api/auth/handler"
	authrouter "github.com/doilonvl/salathai-be-demo/internal/api/auth/router"
	authsvc "github.com/doilonvl/salathai-be-demo/internal/api/auth/service"
	basehdl "github.com/doilonvl/salathai-be-demo/internal/api/base/handler"
	bloghdl "github.com/doilonvl/salathai-be-demo/internal/api/blog/handler"
	blogrouter "github.com/doilonvl/salathai-be-demo/internal/api/blog/router"
	blogsvc "github.com/doilonvl/salathai-be-demo/internal/api/blog/service"
	carouselhdl "github.com/doilonvl/salathai-be-demo/internal/api/carousel/handler"
	carouselrouter "github.com/doilonvl/salathai-be-demo/internal/api/carousel/router"
	carouselsvc "github.com/doilonvl/salathai-be-demo/internal/api/carousel/service"
	"github.com/doilonvl/salathai-be-demo/internal/api/middleware"
	producthdl "github.com/doilonvl/salathai-be-demo/internal/api/product/handler"
	productrouter "github.com/doilonvl/salathai-be-demo/internal/api/product/router"
	productsvc "github.com/doilonvl/salathai-be-demo/internal/api/product/service"
	reservationhdl "github.com/doilonvl/salathai-be-demo/internal/api/reservation/handler"
	reservationrouter "github.com/doilonvl/salathai-be-demo/internal/api/reservation/router"
	reservationsvc "github.com/doilonvl/salathai-be-demo/internal/api/reservation/service"
	apirouter "github.com/doilonvl/salathai-be-demo/internal/api/router"
	uploadhdl "github.com/doilonvl/salathai-be-demo/internal/api/upload/handler"
	uploadrouter "github.com/doilonvl/salathai-be-demo/internal/api/upload/router"
	uploadsvc "github.com/doilonvl/salathai-be-demo/internal/api/upload/service"
	"github.com/doilonvl/salathai-be-demo/internal/delivery/channels"
	"github.com/doilonvl/salathai-be-demo/internal/global"
	"github.com/doilonvl/salathai-be-demo/internal/session"
	"github.com/doilonvl/salathai-be-demo/internal/storage"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Registry các service đã khởi tạo và hàm đăng ký route của từng domain
type Registry struct {
	Users     *authsvc.UserService
	AdminAuth fiber.Handler
	Routes    []apirouter.RegisterFunc
}

// InitRegistry dựng service, handler theo thứ tự phụ thuộc
func InitRegistry() *Registry {
	cfg := global.MongoDB_ServerConfig
	db := global.MongoDB_Session.Database(cfg.MongoDB_DBName)
	checks := map[string]basehdl.Pinger{
		"mongodb": basehdl.PingerFunc(func(ctx context.Context) error {
			return global.MongoDB_Session.Ping(ctx, readpref.Primary())
		}),
	}

	// Auth
	users := authsvc.NewUserService(db)
	tokens := authsvc.NewTokenIssuer(cfg.JwtAccessSecret, cfg.JwtRefreshSecret, cfg.AccessTTL(), cfg.RefreshTTL())
	var sessions authsvc.SessionStore
	if global.Redis_Client != nil {
		store := session.NewRedisStoreWithClient(global.Redis_Client)
		sessions = store
		checks["redis"] = store
	}
	auth := authsvc.NewAuthService(users, tokens, sessions)

	// Catalog
	categories := productsvc.NewCategoryService(db)
	products := productsvc.NewProductService(db, categories)

	// Carousel
	images := carouselsvc.NewMarqueeImageService(db)

	// Reservation
	mailer := channels.NewEmailSender(channels.SMTPConfigFrom(cfg))
	if !mailer.Configured() {
		logrus.Warn("SMTP_HOST not set, reservation emails will fail and only be logged")
	}
	reservations := reservationsvc.NewReservationService(db, mailer, cfg.EnforceMailDelivery)

	// Upload
	var objects uploadsvc.ObjectStore
	if storageCfg := storage.ConfigFrom(cfg); storageCfg.Configured() {
		store, err := storage.NewMinioStore(storageCfg)
		if err != nil {
			logrus.Fatalf("Failed to init object storage: %v", err)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := store.EnsureBucket(ctx); err != nil {
			logrus.Errorf("Object storage bucket check failed: %v", err)
		}
		cancel()
		objects = store
		checks["storage"] = store
	} else {
		logrus.Warn("STORAGE_ENDPOINT not set, upload endpoints return 503")
	}

	logrus.Info("Initialized registry")
	return &Registry{
		Users:     users,
		AdminAuth: middleware.AdminAuth(auth),
		Routes: []apirouter.RegisterFunc{
			apirouter.SystemRoutes(basehdl.NewSystemHandler(checks)),
			authrouter.Register(authhdl.NewAuthHandler(auth, authhdl.NewCookieOptions(cfg))),
			blogrouter.Register(bloghdl.NewBlogHandler(blogsvc.NewBlogService(db))),
			productrouter.Register(producthdl.NewProductHandler(products), producthdl.NewCategoryHandler(categories)),
			carouselrouter.Register(
				carouselhdl.NewLandingMenuHandler(carouselsvc.NewLandingMenuService(db)),
				carouselhdl.NewMarqueeImageHandler(images, images),
				carouselhdl.NewMarqueeSlideHandler(carouselsvc.NewMarqueeSlideService(db)),
			),
			reservationrouter.Register(
				reservationhdl.NewReservationHandler(reservations),
				cfg.ReservationRateMax,
				time.Duration(cfg.ReservationRateWindow)*time.Second,
			),
			uploadrouter.Register(uploadhdl.NewUploadHandler(uploadsvc.NewUploadService(objects, cfg.StorageRootFolder))),
		},
	}
}
