package main

import (
	"context"
	"time"

	"github.com/doilonvl/salathai-be-demo/config"
	authmodels "github.com/doilonvl/salathai-be-demo/internal/api/auth/models"
	blogmodels "github.com/doilonvl/salathai-be-demo/internal/api/blog/models"
	blogsvc "github.com/doilonvl/salathai-be-demo/internal/api/blog/service"
	carouselmodels "github.com/doilonvl/salathai-be-demo/internal/api/carousel/models"
	carouselsvc "github.com/doilonvl/salathai-be-demo/internal/api/carousel/service"
	productmodels "github.com/doilonvl/salathai-be-demo/internal/api/product/models"
	productsvc "github.com/doilonvl/salathai-be-demo/internal/api/product/service"
	reservationmodels "github.com/doilonvl/salathai-be-demo/internal/api/reservation/models"
	"github.com/doilonvl/salathai-be-demo/internal/database"
	"github.com/doilonvl/salathai-be-demo/internal/global"
	"github.com/doilonvl/salathai-be-demo/internal/logger"
	"github.com/doilonvl/salathai-be-demo/internal/session"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
)

// Hàm khởi tạo các biến toàn cục
func InitGlobal() {
	initConfig()           // Khởi tạo cấu hình server
	initValidator()        // Khởi tạo validator
	initDatabase_MongoDB() // Khởi tạo kết nối database
	initRedis()            // Redis cho refresh session (tùy chọn)
}

// Hàm khởi tạo validator (đăng ký no_xss, locale_map, object_id, phone, clock)
func initValidator() {
	global.InitValidator()
	logrus.Info("Initialized validator")
}

// Hàm khởi tạo cấu hình server
func initConfig() {
	global.MongoDB_ServerConfig = config.NewConfig()
	if global.MongoDB_ServerConfig == nil {
		logrus.Fatalf("Failed to initialize config: config is nil")
	}
	logrus.Info("Initialized server config")
}

// collectionIndex model và index bổ sung của một collection
type collectionIndex struct {
	name  string
	model interface{}
	extra []mongo.IndexModel
}

func collectionIndexes() []collectionIndex {
	names := global.MongoDB_ColNames
	return []collectionIndex{
		{names.Users, authmodels.User{}, nil},
		{names.Blogs, blogmodels.Blog{}, blogsvc.ExtraIndexes()},
		{names.ProductCategories, productmodels.ProductCategory{}, productsvc.CategoryExtraIndexes()},
		{names.Products, productmodels.Product{}, productsvc.ProductExtraIndexes()},
		{names.LandingMenuImages, carouselmodels.LandingMenuImage{}, carouselsvc.LandingMenuIndexes()},
		{names.MarqueeImages, carouselmodels.MarqueeImage{}, carouselsvc.MarqueeImageIndexes()},
		{names.MarqueeSlides, carouselmodels.MarqueeSlide{}, carouselsvc.MarqueeSlideIndexes()},
		{names.ReservationRequests, reservationmodels.ReservationRequest{}, nil},
	}
}

// Hàm khởi tạo kết nối database
func initDatabase_MongoDB() {
	cfg := global.MongoDB_ServerConfig
	var err error
	global.MongoDB_Session, err = database.GetInstance(context.Background(), cfg)
	if err != nil {
		logrus.Fatalf("Failed to get database instance: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db := global.MongoDB_Session.Database(cfg.MongoDB_DBName)
	specs := collectionIndexes()
	names := make([]string, 0, len(specs))
	for _, s := range specs {
		names = append(names, s.name)
	}
	if err := database.EnsureCollections(ctx, db, names...); err != nil {
		logrus.Fatalf("Failed to ensure collections: %v", err)
	}
	logrus.Info("Ensured database and collections")

	// Lỗi index không chặn khởi động, unique index thiếu chỉ làm pre-check mất tác dụng
	for _, s := range specs {
		if err := database.CreateIndexes(ctx, db.Collection(s.name), s.model, s.extra...); err != nil {
			logger.GetAppLogger().WithError(err).WithField("collection", s.name).Error("Không tạo được index")
		}
	}
}

// initRedis REDIS_URL trống thì refresh token chỉ dựa vào chữ ký JWT
func initRedis() {
	url := global.MongoDB_ServerConfig.RedisURL
	if url == "" {
		logrus.Info("REDIS_URL not set, refresh sessions are stateless")
		return
	}
	store, err := session.NewRedisStore(context.Background(), url)
	if err != nil {
		logrus.Fatalf("Failed to connect to Redis: %v", err)
	}
	global.Redis_Client = store.Client()
	logrus.Info("Connected to Redis")
}
