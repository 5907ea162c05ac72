package global

import (
	"github.com/doilonvl/salathai-be-demo/config"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoDB_CollectionName chứa tên các collection trong MongoDB
type MongoDB_CollectionName struct {
	Users               string // Tài khoản quản trị
	Blogs               string // Bài viết
	Products            string // Món ăn / sản phẩm
	ProductCategories   string // Danh mục sản phẩm
	LandingMenuImages   string // Ảnh menu trang chủ
	MarqueeImages       string // Ảnh chạy ngang
	MarqueeSlides       string // Slide chạy ngang
	ReservationRequests string // Yêu cầu đặt bàn
}

// Các biến toàn cục
var (
	// Validate dùng để xác thực dữ liệu đầu vào
	Validate *validator.Validate
	// MongoDB_Session phiên kết nối tới MongoDB
	MongoDB_Session *mongo.Client
	// MongoDB_ServerConfig cấu hình của server
	MongoDB_ServerConfig *config.Configuration
	// MongoDB_ColNames tên các collection
	MongoDB_ColNames = DefaultCollectionNames()
	// Redis_Client nil khi không cấu hình REDIS_URL
	Redis_Client *redis.Client
)

// DefaultCollectionNames trả về tên collection mặc định
func DefaultCollectionNames() MongoDB_CollectionName {
	return MongoDB_CollectionName{
		Users:               "users",
		Blogs:               "blogs",
		Products:            "products",
		ProductCategories:   "product_categories",
		LandingMenuImages:   "landing_menu_images",
		MarqueeImages:       "marquee_images",
		MarqueeSlides:       "marquee_slides",
		ReservationRequests: "reservation_requests",
	}
}
