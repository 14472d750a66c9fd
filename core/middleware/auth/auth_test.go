package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(cfg Config) *fiber.App {
	app := fiber.New()
	app.Use(New(cfg))
	app.Get("/*", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestAuth(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		path    string
		headers map[string]string
		want    int
	}{
		{"missing key", Config{ApiKey: "secret"}, "/validations/health", nil, fiber.StatusUnauthorized},
		{"wrong key", Config{ApiKey: "secret"}, "/x", map[string]string{HeaderName: "nope"}, fiber.StatusUnauthorized},
		{"header key", Config{ApiKey: "secret"}, "/x", map[string]string{HeaderName: "secret"}, fiber.StatusOK},
		{"bearer key", Config{ApiKey: "secret"}, "/x", map[string]string{"Authorization": "Bearer secret"}, fiber.StatusOK},
		{"skipped path", Config{ApiKey: "secret", Skip: []string{"/swagger"}}, "/swagger/index.html", nil, fiber.StatusOK},
		{"disabled", Config{}, "/x", nil, fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newApp(tt.cfg)
			req := httptest.NewRequest("GET", tt.path, nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}
