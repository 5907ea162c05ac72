package authsvc

import (
	"context"
	"testing"
	"time"

	models "github.com/doilonvl/salathai-be-demo/internal/api/auth/models"
	"github.com/doilonvl/salathai-be-demo/internal/common"
	"github.com/doilonvl/salathai-be-demo/internal/session"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// memoryUsers UserStore trong bộ nhớ cho test
type memoryUsers struct {
	byID    map[string]*models.User
	touched map[string]time.Time
}

func newMemoryUsers(users ...*models.User) *memoryUsers {
	m := &memoryUsers{byID: map[string]*models.User{}, touched: map[string]time.Time{}}
	for _, u := range users {
		m.byID[u.ID.Hex()] = u
	}
	return m
}

func (m *memoryUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range m.byID {
		if u.Email == NormalizeEmail(email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (m *memoryUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memoryUsers) TouchLastLogin(_ context.Context, id primitive.ObjectID, at time.Time) error {
	m.touched[id.Hex()] = at
	return nil
}

func newUser(t *testing.T, email, password string, active bool) *models.User {
	t.Helper()
	hash, err := HashPassword(password, bcrypt.MinCost)
	require.NoError(t, err)
	return &models.User{
		ID:           primitive.NewObjectID(),
		Name:         "Admin",
		Email:        email,
		PasswordHash: hash,
		Provider:     models.ProviderLocal,
		Role:         models.RoleSuperAdmin,
		IsActive:     active,
	}
}

func newIssuer() *TokenIssuer {
	return NewTokenIssuer("access", "refresh", 15*time.Minute, 7*24*time.Hour)
}

func TestLogin(t *testing.T) {
	admin := newUser(t, "admin@salathai.vn", "secret123", true)
	locked := newUser(t, "locked@salathai.vn", "secret123", false)
	google := newUser(t, "g@salathai.vn", "secret123", true)
	google.Provider = models.ProviderGoogle
	users := newMemoryUsers(admin, locked, google)
	svc := NewAuthService(users, newIssuer(), nil)
	ctx := context.Background()

	t.Run("thành công", func(t *testing.T) {
		res, err := svc.Login(ctx, " Admin@Salathai.vn ", "secret123")
		require.NoError(t, err)
		assert.Equal(t, admin.ID, res.User.ID)
		assert.NotEmpty(t, res.Tokens.AccessToken)
		assert.NotEmpty(t, res.Tokens.RefreshToken)
		assert.Contains(t, users.touched, admin.ID.Hex())
		require.NotNil(t, res.User.LastLoginAt)

		claims, err := svc.Tokens().VerifyAccess(res.Tokens.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, admin.ID.Hex(), claims.Subject)
		assert.Equal(t, models.RoleSuperAdmin, claims.Role)
	})

	cases := []struct {
		name     string
		email    string
		password string
		want     error
	}{
		{"thiếu email", "", "x", common.ErrCredentialsRequired},
		{"thiếu mật khẩu", "admin@salathai.vn", "", common.ErrCredentialsRequired},
		{"không tồn tại", "nobody@salathai.vn", "x", common.ErrInvalidCredentials},
		{"sai mật khẩu", "admin@salathai.vn", "wrong", common.ErrInvalidCredentials},
		{"không phải local", "g@salathai.vn", "secret123", common.ErrInvalidCredentials},
		{"bị khóa", "locked@salathai.vn", "secret123", common.ErrAccountInactive},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Login(ctx, tc.email, tc.password)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestAuthenticate(t *testing.T) {
	admin := newUser(t, "admin@salathai.vn", "secret123", true)
	users := newMemoryUsers(admin)
	issuer := newIssuer()
	svc := NewAuthService(users, issuer, nil)
	ctx := context.Background()

	token, err := issuer.SignAccess(admin.ID.Hex(), admin.Role)
	require.NoError(t, err)

	p, err := svc.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, admin.ID.Hex(), p.ID)
	assert.Equal(t, admin.Email, p.Email)

	_, err = svc.Authenticate(ctx, "")
	assert.ErrorIs(t, err, common.ErrTokenMissing)

	_, err = svc.Authenticate(ctx, "not-a-jwt")
	assert.ErrorIs(t, err, common.ErrTokenInvalid)

	refresh, err := issuer.SignRefresh(admin.ID.Hex(), admin.Role)
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, refresh)
	assert.ErrorIs(t, err, common.ErrTokenInvalid, "refresh token không dùng được như access token")

	users.byID[admin.ID.Hex()].IsActive = false
	_, err = svc.Authenticate(ctx, token)
	assert.ErrorIs(t, err, common.ErrUserInactive)
}

func TestRefreshWithoutSessions(t *testing.T) {
	admin := newUser(t, "admin@salathai.vn", "secret123", true)
	users := newMemoryUsers(admin)
	svc := NewAuthService(users, newIssuer(), nil)
	ctx := context.Background()

	_, err := svc.Refresh(ctx, "")
	assert.ErrorIs(t, err, common.ErrRefreshMissing)

	_, err = svc.Refresh(ctx, "garbage")
	assert.ErrorIs(t, err, common.ErrRefreshInvalid)

	login, err := svc.Login(ctx, "admin@salathai.vn", "secret123")
	require.NoError(t, err)

	res, err := svc.Refresh(ctx, login.Tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, login.Tokens.RefreshToken, res.Tokens.RefreshToken)

	delete(users.byID, admin.ID.Hex())
	_, err = svc.Refresh(ctx, res.Tokens.RefreshToken)
	assert.ErrorIs(t, err, common.ErrUserInactive)
}

func TestRefreshRotatesSession(t *testing.T) {
	mr := miniredis.RunT(t)
	store := session.NewRedisStoreWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	admin := newUser(t, "admin@salathai.vn", "secret123", true)
	svc := NewAuthService(newMemoryUsers(admin), newIssuer(), store)
	ctx := context.Background()

	login, err := svc.Login(ctx, "admin@salathai.vn", "secret123")
	require.NoError(t, err)
	assert.True(t, mr.Exists("refresh:"+session.HashToken(login.Tokens.RefreshToken)))

	res, err := svc.Refresh(ctx, login.Tokens.RefreshToken)
	require.NoError(t, err)
	assert.False(t, mr.Exists("refresh:"+session.HashToken(login.Tokens.RefreshToken)))
	assert.True(t, mr.Exists("refresh:"+session.HashToken(res.Tokens.RefreshToken)))

	// Token cũ đã bị thu hồi
	_, err = svc.Refresh(ctx, login.Tokens.RefreshToken)
	assert.ErrorIs(t, err, common.ErrRefreshInvalid)

	svc.Logout(ctx, res.Tokens.RefreshToken)
	_, err = svc.Refresh(ctx, res.Tokens.RefreshToken)
	assert.ErrorIs(t, err, common.ErrRefreshInvalid)
}

func TestMe(t *testing.T) {
	admin := newUser(t, "admin@salathai.vn", "secret123", true)
	svc := NewAuthService(newMemoryUsers(admin), newIssuer(), nil)

	u, err := svc.Me(context.Background(), admin.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, admin.Email, u.Email)

	_, err = svc.Me(context.Background(), primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, common.ErrUserNotFound)
}
