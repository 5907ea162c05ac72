package authhdl

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	models "github.com/doilonvl/salathai-be-demo/internal/api/auth/models"
	authsvc "github.com/doilonvl/salathai-be-demo/internal/api/auth/service"
	"github.com/doilonvl/salathai-be-demo/internal/api/middleware"
	"github.com/doilonvl/salathai-be-demo/internal/common"
	"github.com/doilonvl/salathai-be-demo/internal/global"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

type fakeUsers struct {
	users map[string]*models.User
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == authsvc.NormalizeEmail(email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, common.ErrNotFound
}

func (f *fakeUsers) TouchLastLogin(context.Context, primitive.ObjectID, time.Time) error {
	return nil
}

type testEnv struct {
	app   *fiber.App
	admin *models.User
}

func setup(t *testing.T, production bool) *testEnv {
	t.Helper()
	global.InitValidator()

	hash, err := authsvc.HashPassword("secret123", bcrypt.MinCost)
	require.NoError(t, err)
	admin := &models.User{
		ID:           primitive.NewObjectID(),
		Name:         "Admin",
		Email:        "admin@salathai.vn",
		PasswordHash: hash,
		Provider:     models.ProviderLocal,
		Role:         models.RoleSuperAdmin,
		IsActive:     true,
	}
	users := &fakeUsers{users: map[string]*models.User{admin.ID.Hex(): admin}}

	issuer := authsvc.NewTokenIssuer("access", "refresh", 15*time.Minute, 7*24*time.Hour)
	svc := authsvc.NewAuthService(users, issuer, nil)
	h := NewAuthHandler(svc, CookieOptions{
		Domain:     "localhost",
		Production: production,
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
	})

	app := fiber.New()
	auth := app.Group("/auth")
	auth.Post("/login", h.HandleLogin)
	auth.Post("/logout", h.HandleLogout)
	auth.Post("/refresh", h.HandleRefresh)
	auth.Get("/me", h.HandleMe, middleware.AdminAuth(svc))
	return &testEnv{app: app, admin: admin}
}

type envelope struct {
	Code    interface{}     `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Status  string          `json:"status"`
}

func send(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, envelope) {
	t.Helper()
	resp, err := app.Test(req)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	return resp, env
}

func jsonRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func cookieByName(resp *http.Response, name string) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestLoginSetsCookies(t *testing.T) {
	env := setup(t, false)

	resp, body := send(t, env.app, jsonRequest("POST", "/auth/login", `{"email":"ADMIN@salathai.vn","password":"secret123"}`))
	require.Equal(t, 200, resp.StatusCode)

	var profile models.Profile
	require.NoError(t, json.Unmarshal(body.Data, &profile))
	assert.Equal(t, env.admin.ID.Hex(), profile.ID)
	assert.Equal(t, "admin@salathai.vn", profile.Email)
	assert.Equal(t, models.RoleSuperAdmin, profile.Role)
	assert.NotContains(t, string(body.Data), "passwordHash")

	access := cookieByName(resp, middleware.AccessCookie)
	require.NotNil(t, access)
	assert.True(t, access.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, access.SameSite)
	assert.Equal(t, 900, access.MaxAge)

	refresh := cookieByName(resp, middleware.RefreshCookie)
	require.NotNil(t, refresh)
	assert.Equal(t, 7*24*3600, refresh.MaxAge)
}

func TestLoginSameSiteNoneInProduction(t *testing.T) {
	env := setup(t, true)
	resp, _ := send(t, env.app, jsonRequest("POST", "/auth/login", `{"email":"admin@salathai.vn","password":"secret123"}`))
	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, http.SameSiteNoneMode, cookieByName(resp, middleware.AccessCookie).SameSite)
}

func TestLoginErrors(t *testing.T) {
	env := setup(t, false)

	resp, body := send(t, env.app, jsonRequest("POST", "/auth/login", ""))
	assert.Equal(t, 400, resp.StatusCode)
	assert.Equal(t, "Email and password are required", body.Message)

	resp, body = send(t, env.app, jsonRequest("POST", "/auth/login", `{"email":"admin@salathai.vn","password":"nope"}`))
	assert.Equal(t, 401, resp.StatusCode)
	assert.Equal(t, "Invalid credentials", body.Message)
	assert.Nil(t, cookieByName(resp, middleware.AccessCookie))
}

func TestMeWithBearerAndCookie(t *testing.T) {
	env := setup(t, false)
	login, _ := send(t, env.app, jsonRequest("POST", "/auth/login", `{"email":"admin@salathai.vn","password":"secret123"}`))
	access := cookieByName(login, middleware.AccessCookie)
	require.NotNil(t, access)

	req := httptest.NewRequest("GET", "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+access.Value)
	resp, body := send(t, env.app, req)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, string(body.Data), env.admin.ID.Hex())

	req = httptest.NewRequest("GET", "/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: middleware.AccessCookie, Value: access.Value})
	resp, _ = send(t, env.app, req)
	assert.Equal(t, 200, resp.StatusCode)

	resp, body = send(t, env.app, httptest.NewRequest("GET", "/auth/me", nil))
	assert.Equal(t, 401, resp.StatusCode)
	assert.Equal(t, "Unauthorized", body.Message)

	req = httptest.NewRequest("GET", "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	resp, body = send(t, env.app, req)
	assert.Equal(t, 401, resp.StatusCode)
	assert.Equal(t, "Invalid token", body.Message)
}

func TestRefreshAndLogout(t *testing.T) {
	env := setup(t, false)
	login, _ := send(t, env.app, jsonRequest("POST", "/auth/login", `{"email":"admin@salathai.vn","password":"secret123"}`))
	refresh := cookieByName(login, middleware.RefreshCookie)
	require.NotNil(t, refresh)

	// refresh token qua body
	resp, body := send(t, env.app, jsonRequest("POST", "/auth/refresh", `{"refreshToken":"`+refresh.Value+`"}`))
	require.Equal(t, 200, resp.StatusCode)
	var out struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &out))
	assert.NotEmpty(t, out.AccessToken)
	assert.NotNil(t, cookieByName(resp, middleware.AccessCookie))

	// refresh token qua cookie
	req := httptest.NewRequest("POST", "/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: middleware.RefreshCookie, Value: refresh.Value})
	resp, _ = send(t, env.app, req)
	assert.Equal(t, 200, resp.StatusCode)

	resp, body = send(t, env.app, httptest.NewRequest("POST", "/auth/refresh", nil))
	assert.Equal(t, 401, resp.StatusCode)
	assert.Equal(t, "No refresh token", body.Message)

	resp, body = send(t, env.app, httptest.NewRequest("POST", "/auth/logout", nil))
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "Logged out", body.Message)
	cleared := cookieByName(resp, middleware.AccessCookie)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
}
