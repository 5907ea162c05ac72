package i18n

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want Locale
	}{
		{"", Vi},
		{"   ", Vi},
		{"en", En},
		{"en-US", En},
		{"EN-gb", En},
		{"VI", Vi},
		{"vi-VN,vi;q=0.9", Vi},
		{"fr", Vi},
		{"de-DE,en;q=0.8", Vi},
		{"english", En},
		{"en-US,en;q=0.9,vi;q=1", En},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Normalize(tc.in), "input %q", tc.in)
		// idempotent
		assert.Equal(t, tc.want, Normalize(string(Normalize(tc.in))), "input %q", tc.in)
	}
}

func TestChain(t *testing.T) {
	assert.Equal(t, []Locale{En, Vi}, Chain(En))
	assert.Equal(t, []Locale{Vi}, Chain(Vi))
	assert.Equal(t, []Locale{Vi}, Chain(""))
}

func TestPriority(t *testing.T) {
	assert.Equal(t, []Locale{En, Vi}, Priority(En))
	assert.Equal(t, []Locale{Vi, En}, Priority(Vi))
	assert.Equal(t, []Locale{Vi, En}, Priority(""))
}

func TestFromRequest(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c fiber.Ctx) error {
		if Requested(c) {
			return c.SendString(string(FromRequest(c)) + ":requested")
		}
		return c.SendString(string(FromRequest(c)))
	})

	call := func(target, header string) string {
		req := httptest.NewRequest(fiber.MethodGet, target, nil)
		if header != "" {
			req.Header.Set(fiber.HeaderAcceptLanguage, header)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return string(body)
	}

	assert.Equal(t, "vi", call("/", ""))
	assert.Equal(t, "en:requested", call("/", "en-US,en;q=0.9"))
	assert.Equal(t, "vi:requested", call("/?locale=vi", "en-US"), "query thắng header")
	assert.Equal(t, "en:requested", call("/?locale=EN", ""))
	assert.Equal(t, "vi:requested", call("/?locale=fr", ""))
}
