package authsvc

import (
	"context"
	"errors"
	"strings"
	"time"

	models "github.com/doilonvl/salathai-be-demo/internal/api/auth/models"
	basesvc "github.com/doilonvl/salathai-be-demo/internal/api/base/service"
	"github.com/doilonvl/salathai-be-demo/internal/common"
	"github.com/doilonvl/salathai-be-demo/internal/logger"
	"github.com/doilonvl/salathai-be-demo/internal/session"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserStore các thao tác AuthService cần trên collection users
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	TouchLastLogin(ctx context.Context, id primitive.ObjectID, at time.Time) error
}

// SessionStore lưu refresh token để thu hồi được (Redis)
type SessionStore interface {
	Save(ctx context.Context, token, userID, role string, ttl time.Duration) error
	Lookup(ctx context.Context, token string) (*session.TokenData, error)
	Revoke(ctx context.Context, token string) error
}

// TokenPair cặp token trả về sau đăng nhập hoặc refresh
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// LoginResult user và token vừa cấp
type LoginResult struct {
	User   *models.User
	Tokens TokenPair
}

// AuthService xử lý đăng nhập, refresh, đăng xuất và xác thực token
type AuthService struct {
	users    UserStore
	tokens   *TokenIssuer
	sessions SessionStore
	now      func() time.Time
}

// NewAuthService tạo AuthService. sessions có thể nil khi không cấu hình Redis.
func NewAuthService(users UserStore, tokens *TokenIssuer, sessions SessionStore) *AuthService {
	return &AuthService{
		users:    users,
		tokens:   tokens,
		sessions: sessions,
		now:      time.Now,
	}
}

// Tokens trả về TokenIssuer (handler cần TTL để đặt cookie)
func (s *AuthService) Tokens() *TokenIssuer {
	return s.tokens
}

// Login đăng nhập bằng email/mật khẩu
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, common.ErrCredentialsRequired
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if basesvc.IsNotFound(err) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsLocal() || !VerifyPassword(user.PasswordHash, password) {
		return nil, common.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, common.ErrAccountInactive
	}

	pair, err := s.issue(ctx, user)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if err := s.users.TouchLastLogin(ctx, user.ID, now); err != nil {
		return nil, err
	}
	user.LastLoginAt = &now

	return &LoginResult{User: user, Tokens: *pair}, nil
}

// Refresh kiểm tra refresh token, nạp lại user còn hoạt động rồi cấp cặp token mới.
// Khi có session store, token cũ bị thu hồi.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*LoginResult, error) {
	if refreshToken == "" {
		return nil, common.ErrRefreshMissing
	}

	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, common.ErrRefreshInvalid
	}

	if s.sessions != nil {
		if _, err := s.sessions.Lookup(ctx, refreshToken); err != nil {
			if errors.Is(err, session.ErrSessionNotFound) {
				return nil, common.ErrRefreshInvalid
			}
			return nil, err
		}
	}

	user, err := s.users.GetByID(ctx, claims.Subject)
	if err != nil {
		if basesvc.IsNotFound(err) {
			return nil, common.ErrUserInactive
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, common.ErrUserInactive
	}

	if s.sessions != nil {
		if err := s.sessions.Revoke(ctx, refreshToken); err != nil {
			return nil, err
		}
	}

	pair, err := s.issue(ctx, user)
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: user, Tokens: *pair}, nil
}

// Logout thu hồi refresh token nếu có session store, lỗi chỉ được ghi log
func (s *AuthService) Logout(ctx context.Context, refreshToken string) {
	if s.sessions == nil || refreshToken == "" {
		return
	}
	if err := s.sessions.Revoke(ctx, refreshToken); err != nil {
		logger.WithModule("auth").WithError(err).Warn("Không thể thu hồi refresh token")
	}
}

// Me thông tin user đang đăng nhập
func (s *AuthService) Me(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if basesvc.IsNotFound(err) {
			return nil, common.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// Authenticate kiểm tra access token và trạng thái tài khoản
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.Principal, error) {
	if token == "" {
		return nil, common.ErrTokenMissing
	}

	claims, err := s.tokens.VerifyAccess(token)
	if err != nil {
		return nil, common.ErrTokenInvalid
	}

	user, err := s.users.GetByID(ctx, claims.Subject)
	if err != nil {
		if basesvc.IsNotFound(err) {
			return nil, common.ErrUserInactive
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, common.ErrUserInactive
	}

	return &models.Principal{
		ID:    user.ID.Hex(),
		Email: user.Email,
		Role:  user.Role,
	}, nil
}

// issue ký cặp token và lưu refresh session
func (s *AuthService) issue(ctx context.Context, user *models.User) (*TokenPair, error) {
	userID := user.ID.Hex()

	access, err := s.tokens.SignAccess(userID, user.Role)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.SignRefresh(userID, user.Role)
	if err != nil {
		return nil, err
	}

	if s.sessions != nil {
		if err := s.sessions.Save(ctx, refresh, userID, user.Role, s.tokens.RefreshTTL()); err != nil {
			return nil, err
		}
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
