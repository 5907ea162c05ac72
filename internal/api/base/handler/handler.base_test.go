package basehdl

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/doilonvl/salathai-be-demo/internal/common"
	"github.com/doilonvl/salathai-be-demo/internal/global"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Code    interface{}     `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Details json.RawMessage `json:"details"`
	Status  string          `json:"status"`
}

func do(t *testing.T, app *fiber.App, method, path, body string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	return resp.StatusCode, env
}

type loginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func TestHandleResponse(t *testing.T) {
	global.InitValidator()
	h := NewBaseHandler("test")
	app := fiber.New()
	app.Post("/parse", func(c fiber.Ctx) error {
		return h.SafeHandler(c, func() error {
			var in loginInput
			if err := h.ParseRequestBody(c, &in); err != nil {
				h.HandleResponse(c, nil, err)
				return nil
			}
			h.HandleResponseStatus(c, common.StatusCreated, common.MsgCreated, in.Email, nil)
			return nil
		})
	})
	app.Get("/panic", func(c fiber.Ctx) error {
		return h.SafeHandler(c, func() error { panic("boom") })
	})
	app.Get("/plain", func(c fiber.Ctx) error {
		h.HandleResponse(c, nil, errors.New("driver exploded"))
		return nil
	})

	t.Run("thành công", func(t *testing.T) {
		status, env := do(t, app, "POST", "/parse", `{"email":"a@b.vn","password":"x"}`)
		assert.Equal(t, 201, status)
		assert.Equal(t, "success", env.Status)
		assert.JSONEq(t, `"a@b.vn"`, string(env.Data))
	})

	t.Run("body rỗng", func(t *testing.T) {
		status, env := do(t, app, "POST", "/parse", "")
		assert.Equal(t, 400, status)
		assert.Equal(t, "Missing JSON body", env.Message)
	})

	t.Run("validate lỗi kèm field", func(t *testing.T) {
		status, env := do(t, app, "POST", "/parse", `{"email":"nope"}`)
		assert.Equal(t, 400, status)
		assert.Equal(t, common.ErrCodeValidationInput.Code, env.Code)
		assert.Contains(t, string(env.Details), `"field":"email"`)
		assert.Contains(t, string(env.Details), `"field":"password"`)
	})

	t.Run("panic được recover", func(t *testing.T) {
		status, env := do(t, app, "GET", "/panic", "")
		assert.Equal(t, 500, status)
		assert.Equal(t, "error", env.Status)
	})

	t.Run("lỗi lạ không lộ chi tiết", func(t *testing.T) {
		status, env := do(t, app, "GET", "/plain", "")
		assert.Equal(t, 500, status)
		assert.Equal(t, "Internal server error", env.Message)
	})
}

func TestHealth(t *testing.T) {
	app := fiber.New()
	ok := NewSystemHandler(map[string]Pinger{
		"database": PingerFunc(func(context.Context) error { return nil }),
		"redis":    nil,
	})
	bad := NewSystemHandler(map[string]Pinger{
		"database": PingerFunc(func(context.Context) error { return errors.New("down") }),
	})
	app.Get("/ok", ok.HandleHealth)
	app.Get("/bad", bad.HandleHealth)

	status, env := do(t, app, "GET", "/ok", "")
	assert.Equal(t, 200, status)
	assert.Contains(t, string(env.Data), `"database":"ok"`)
	assert.NotContains(t, string(env.Data), "redis")

	status, env = do(t, app, "GET", "/bad", "")
	assert.Equal(t, 503, status)
	assert.Contains(t, string(env.Data), `"degraded"`)
}
