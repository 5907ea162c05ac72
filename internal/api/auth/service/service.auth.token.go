// Package authsvc - đăng nhập, cấp/kiểm tra JWT và quản lý tài khoản quản trị.
package authsvc

import (
	"fmt"
	"time"

	models "github.com/doilonvl/salathai-be-demo/internal/api/auth/models"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
)

// TokenIssuer ký và kiểm tra access/refresh token (HS256, hai secret riêng)
type TokenIssuer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

// NewTokenIssuer tạo TokenIssuer
func NewTokenIssuer(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *TokenIssuer {
	return &TokenIssuer{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		now:           time.Now,
	}
}

// AccessTTL thời hạn access token, dùng làm maxAge của cookie
func (t *TokenIssuer) AccessTTL() time.Duration {
	return t.accessTTL
}

// RefreshTTL thời hạn refresh token
func (t *TokenIssuer) RefreshTTL() time.Duration {
	return t.refreshTTL
}

// SignAccess tạo access token cho user
func (t *TokenIssuer) SignAccess(userID, role string) (string, error) {
	return t.sign(t.accessSecret, t.accessTTL, userID, role, "")
}

// SignRefresh tạo refresh token, mỗi token có jti riêng
func (t *TokenIssuer) SignRefresh(userID, role string) (string, error) {
	return t.sign(t.refreshSecret, t.refreshTTL, userID, role, uuid.NewString())
}

// VerifyAccess kiểm tra access token
func (t *TokenIssuer) VerifyAccess(token string) (*models.Claims, error) {
	return t.verify(t.accessSecret, token)
}

// VerifyRefresh kiểm tra refresh token
func (t *TokenIssuer) VerifyRefresh(token string) (*models.Claims, error) {
	return t.verify(t.refreshSecret, token)
}

func (t *TokenIssuer) sign(secret []byte, ttl time.Duration, userID, role, jti string) (string, error) {
	now := t.now()
	claims := models.Claims{
		Role: role,
		StandardClaims: jwt.StandardClaims{
			Subject:   userID,
			Id:        jti,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(ttl).Unix(),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (t *TokenIssuer) verify(secret []byte, token string) (*models.Claims, error) {
	claims := &models.Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", tok.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !parsed.Valid || claims.Subject == "" {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}
