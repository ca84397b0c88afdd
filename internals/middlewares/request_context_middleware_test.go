package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestContextMiddlewareSetsDeadline(t *testing.T) {
	app := fiber.New()
	app.Use(RequestContextMiddleware())

	var deadline time.Time
	var hasDeadline bool
	app.Get("/", func(c *fiber.Ctx) error {
		deadline, hasDeadline = c.UserContext().Deadline()
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.True(t, hasDeadline, "user context must carry the request deadline")
	assert.WithinDuration(t, time.Now().Add(requestTimeout), deadline, 2*time.Second)
}

func TestRequestContextMiddlewareRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestContextMiddleware())
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("ok") })

	// generated when absent
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	// echoed when supplied
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "req-abc-123")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "req-abc-123", resp.Header.Get("X-Request-ID"))
}
