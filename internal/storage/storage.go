// Package storage ghi file upload lên object storage tương thích S3 qua minio-go.
package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/doilonvl/salathai-be-demo/config"
	"github.com/doilonvl/salathai-be-demo/internal/logger"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Config thông tin kết nối object storage
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	Region    string
	PublicURL string
}

// LinkExpiry thời hạn của link xem/tải, tối đa của chữ ký V4
const LinkExpiry = 7 * 24 * time.Hour

// ConfigFrom MEDIA_PUBLIC_URL trống thì suy ra từ endpoint
func ConfigFrom(c *config.Configuration) Config {
	cfg := Config{
		Endpoint:  strings.TrimSpace(c.StorageEndpoint),
		AccessKey: c.StorageAccessKey,
		SecretKey: c.StorageSecretKey,
		Bucket:    c.StorageBucket,
		UseSSL:    c.StorageUseSSL,
		Region:    strings.TrimSpace(c.StorageRegion),
		PublicURL: strings.TrimRight(strings.TrimSpace(c.MediaPublicURL), "/"),
	}
	if cfg.PublicURL == "" && cfg.Endpoint != "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		cfg.PublicURL = scheme + "://" + cfg.Endpoint
	}
	return cfg
}

// Configured đã có STORAGE_ENDPOINT chưa
func (c Config) Configured() bool {
	return c.Endpoint != ""
}

// MinioStore lưu object vào một bucket
type MinioStore struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewMinioStore tạo client, chưa gọi mạng. Có Region thì ký URL cũng không cần hỏi vị trí bucket
func NewMinioStore(cfg Config) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("init storage client: %w", err)
	}
	return &MinioStore{client: client, bucket: cfg.Bucket, publicURL: cfg.PublicURL}, nil
}

// EnsureBucket tạo bucket nếu chưa có
func (s *MinioStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", s.bucket, err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("create bucket %s: %w", s.bucket, err)
	}
	logger.WithModule("storage").WithField("bucket", s.bucket).Info("Đã tạo bucket")
	return nil
}

// Ping dùng cho health check
func (s *MinioStore) Ping(ctx context.Context) error {
	_, err := s.client.BucketExists(ctx, s.bucket)
	return err
}

// Put ghi object dưới upload/<key>, trả về URL công khai
func (s *MinioStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, objectName(key), r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	return PublicURL(s.publicURL, s.bucket, key), nil
}

// Links URL đã ký cho cùng object Put đã ghi: xem trực tiếp và tải về với tên filename
func (s *MinioStore) Links(ctx context.Context, key, filename string) (string, string, error) {
	view, err := s.presign(ctx, key, InlineDisposition())
	if err != nil {
		return "", "", err
	}
	download, err := s.presign(ctx, key, AttachmentDisposition(filename))
	if err != nil {
		return "", "", err
	}
	return view, download, nil
}

func (s *MinioStore) presign(ctx context.Context, key, disposition string) (string, error) {
	params := url.Values{}
	params.Set("response-content-disposition", disposition)
	u, err := s.client.PresignedGetObject(ctx, s.bucket, objectName(key), LinkExpiry, params)
	if err != nil {
		return "", fmt.Errorf("presign object %s: %w", key, err)
	}
	return u.String(), nil
}

func objectName(key string) string {
	return uploadSegment + "/" + strings.TrimLeft(key, "/")
}

// PublicURL <base>/<bucket>/upload/<key>
func PublicURL(base, bucket, key string) string {
	return strings.TrimRight(base, "/") + "/" + bucket + "/" + uploadSegment + "/" + strings.TrimLeft(key, "/")
}
