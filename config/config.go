package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

// Configuration chứa thông tin tĩnh cần thiết để chạy ứng dụng
type Configuration struct {
	Address     string `env:"ADDRESS" envDefault:"8080"`         // Port server
	APIBase     string `env:"API_BASE" envDefault:"/api/v1"`     // Prefix cho toàn bộ API
	NodeEnv     string `env:"NODE_ENV" envDefault:"development"` // development | production
	BodyLimitMB int    `env:"BODY_LIMIT_MB" envDefault:"200"`    // Giới hạn body, upload nhiều file cần lớn

	// MongoDB
	MongoDB_ConnectionURI string `env:"MONGODB_CONNECTION_URI,required"`      // URL kết nối cơ sở dữ liệu
	MongoDB_DBName        string `env:"MONGODB_DBNAME" envDefault:"salathai"` // Tên cơ sở dữ liệu

	// JWT + cookie
	JwtAccessSecret  string `env:"JWT_ACCESS_SECRET" envDefault:"access_secret_dev"`
	JwtRefreshSecret string `env:"JWT_REFRESH_SECRET" envDefault:"refresh_secret_dev"`
	JwtExpires       string `env:"JWT_EXPIRES" envDefault:"15m"`    // Thời hạn access token
	RefreshExpires   string `env:"REFRESH_EXPIRES" envDefault:"7d"` // Thời hạn refresh token
	CookieDomain     string `env:"COOKIE_DOMAIN" envDefault:"localhost"`
	CookieSecure     bool   `env:"COOKIE_SECURE" envDefault:"false"`
	BcryptSaltRounds int    `env:"BCRYPT_SALT_ROUNDS" envDefault:"10"`

	// Seed tài khoản super admin đầu tiên (bỏ qua nếu để trống)
	SeedAdminEmail    string `env:"SEED_ADMIN_EMAIL"`
	SeedAdminPassword string `env:"SEED_ADMIN_PASSWORD"`
	SeedAdminName     string `env:"SEED_ADMIN_NAME" envDefault:"Administrator"`

	// CORS + rate limit
	CORS_Origins          string `env:"CORS_ORIGINS" envDefault:"*"`              // Các origins được phép (phân cách bởi dấu phẩy, * = tất cả)
	CORS_AllowCredentials bool   `env:"CORS_ALLOW_CREDENTIALS" envDefault:"true"` // Cookie auth cần credentials
	RateLimit_Max         int    `env:"RATE_LIMIT_MAX" envDefault:"300"`          // Số request tối đa trong window (0 = disable)
	RateLimit_Window      int    `env:"RATE_LIMIT_WINDOW" envDefault:"60"`        // Thời gian window (giây)
	RateLimit_Enabled     bool   `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	ReservationRateMax    int    `env:"RESERVATION_RATE_MAX" envDefault:"5"`      // Giới hạn form đặt bàn theo IP
	ReservationRateWindow int    `env:"RESERVATION_RATE_WINDOW" envDefault:"600"` // 10 phút

	// SMTP
	SMTPHost            string `env:"SMTP_HOST"`
	SMTPPort            int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser            string `env:"SMTP_USER"`
	SMTPPass            string `env:"SMTP_PASS"`
	SMTPSecure          string `env:"SMTP_SECURE"` // để trống = tự suy ra từ port 465
	MailFromName        string `env:"MAIL_FROM_NAME" envDefault:"Salathai Website"`
	MailFromAddr        string `env:"MAIL_FROM_ADDR"`
	MailToAddr          string `env:"MAIL_TO_ADDR"`
	EnforceMailDelivery bool   `env:"ENFORCE_MAIL_DELIVERY" envDefault:"false"`

	// Object storage (S3 compatible)
	StorageEndpoint   string `env:"STORAGE_ENDPOINT"`
	StorageAccessKey  string `env:"STORAGE_ACCESS_KEY"`
	StorageSecretKey  string `env:"STORAGE_SECRET_KEY"`
	StorageBucket     string `env:"STORAGE_BUCKET" envDefault:"media"`
	StorageUseSSL     bool   `env:"STORAGE_USE_SSL" envDefault:"true"`
	StorageRegion     string `env:"STORAGE_REGION" envDefault:"us-east-1"`
	StorageRootFolder string `env:"STORAGE_ROOT_FOLDER" envDefault:"salathai"`
	MediaPublicURL    string `env:"MEDIA_PUBLIC_URL"` // để trống = suy ra từ endpoint

	// Redis lưu refresh session (tùy chọn)
	RedisURL string `env:"REDIS_URL"`

	// TLS/HTTPS Configuration
	EnableTLS   bool   `env:"ENABLE_TLS" envDefault:"false"` // Bật HTTPS
	TLSCertFile string `env:"TLS_CERT_FILE"`                 // Đường dẫn đến file certificate (.crt hoặc .pem)
	TLSKeyFile  string `env:"TLS_KEY_FILE"`                  // Đường dẫn đến file private key (.key)
}

// IsProduction cookie SameSite=None chỉ bật ở production
func (c *Configuration) IsProduction() bool {
	return strings.EqualFold(c.NodeEnv, "production")
}

// AccessTTL thời hạn access token, mặc định 15 phút
func (c *Configuration) AccessTTL() time.Duration {
	return ParseDuration(c.JwtExpires, 15*time.Minute)
}

// RefreshTTL thời hạn refresh token, mặc định 7 ngày
func (c *Configuration) RefreshTTL() time.Duration {
	return ParseDuration(c.RefreshExpires, 7*24*time.Hour)
}

// SMTPUseSSL SMTP_SECURE rỗng thì dùng SSL khi port là 465
func (c *Configuration) SMTPUseSSL() bool {
	if c.SMTPSecure != "" {
		return c.SMTPSecure == "true"
	}
	return c.SMTPPort == 465
}

var durationPattern = regexp.MustCompile(`^(\d+)([smhd])$`)

// ParseDuration đọc dạng "15m", "7d", "1h", "30s"; sai định dạng thì trả fallback
func ParseDuration(value string, fallback time.Duration) time.Duration {
	m := durationPattern.FindStringSubmatch(strings.TrimSpace(value))
	if m == nil {
		return fallback
	}
	amount, err := strconv.Atoi(m[1])
	if err != nil {
		return fallback
	}
	unit := map[string]time.Duration{
		"s": time.Second,
		"m": time.Minute,
		"h": time.Hour,
		"d": 24 * time.Hour,
	}[m[2]]
	return time.Duration(amount) * unit
}

// getEnvPath trả về đường dẫn đến file env dựa trên môi trường
func getEnvPath() string {
	// Mặc định sử dụng môi trường development
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	currentDir, err := os.Getwd()
	if err != nil {
		// Sử dụng fmt.Printf vì logger có thể chưa được init ở đây
		fmt.Printf("Không thể lấy được thư mục hiện tại: %v\n", err)
		return ""
	}

	// Tìm thư mục config/env
	for {
		envDir := filepath.Join(currentDir, "config", "env")
		if _, err := os.Stat(envDir); err == nil {
			return filepath.Join(envDir, fmt.Sprintf("%s.env", env))
		}

		// Đi lên thư mục cha
		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return ""
		}
		currentDir = parentDir
	}
}

// NewConfig đọc cấu hình từ file env (nếu có) rồi parse biến môi trường.
// Có thể truyền đường dẫn file env cụ thể qua files.
func NewConfig(files ...string) *Configuration {
	if len(files) == 0 {
		if envPath := getEnvPath(); envPath != "" {
			files = []string{envPath}
		}
	}

	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			// Production chạy bằng biến môi trường, thiếu file env không phải lỗi
			fmt.Printf("Không tìm thấy file env %s, dùng biến môi trường hiện có\n", f)
			continue
		}
		if err := godotenv.Load(f); err != nil {
			fmt.Printf("Không thể load file env tại %s: %v\n", f, err)
			return nil
		}
	}

	cfg := Configuration{}
	if err := env.Parse(&cfg); err != nil {
		fmt.Printf("Lỗi khi parse config: %+v\n", err)
		return nil
	}

	return &cfg
}
