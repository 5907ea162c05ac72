// Package session lưu phiên refresh token trên Redis để có thể thu hồi khi logout hoặc xoay vòng token.
package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrSessionNotFound token đã hết hạn, bị thu hồi hoặc chưa từng được lưu
var ErrSessionNotFound = errors.New("refresh session not found or expired")

// TokenData dữ liệu lưu cho mỗi refresh token
type TokenData struct {
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// RedisStore lưu refresh session theo key refresh:<sha256(token)>
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore kết nối Redis theo URL dạng redis://[:pass@]host:port/db và ping thử
func NewRedisStore(ctx context.Context, redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return NewRedisStoreWithClient(client), nil
}

// NewRedisStoreWithClient tạo store từ client có sẵn
func NewRedisStoreWithClient(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "refresh:",
	}
}

// HashToken sha256 hex của token, Redis không giữ token gốc
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func (s *RedisStore) key(token string) string {
	return s.prefix + HashToken(token)
}

// Client trả về redis client (dùng cho health check)
func (s *RedisStore) Client() *redis.Client {
	return s.client
}

// Save lưu refresh token với thời hạn ttl
func (s *RedisStore) Save(ctx context.Context, token, userID, role string, ttl time.Duration) error {
	data, err := json.Marshal(TokenData{
		UserID:    userID,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal token data: %w", err)
	}

	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	if err := s.client.Set(ctx, s.key(token), data, ttl).Err(); err != nil {
		return fmt.Errorf("save refresh token: %w", err)
	}
	return nil
}

// Lookup đọc dữ liệu của refresh token
func (s *RedisStore) Lookup(ctx context.Context, token string) (*TokenData, error) {
	raw, err := s.client.Get(ctx, s.key(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lookup refresh token: %w", err)
	}

	var data TokenData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("unmarshal token data: %w", err)
	}
	return &data, nil
}

// Revoke xóa refresh token, token không tồn tại không tính là lỗi
func (s *RedisStore) Revoke(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, s.key(token)).Err(); err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	return nil
}

// Ping kiểm tra Redis còn kết nối
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close đóng kết nối Redis
func (s *RedisStore) Close() error {
	return s.client.Close()
}
