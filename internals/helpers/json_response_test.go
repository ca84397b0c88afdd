package helper

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doRequest(t *testing.T, handler fiber.Handler) (int, map[string]any) {
	t.Helper()
	app := fiber.New()
	app.Get("/", handler)

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, sonic.Unmarshal(raw, &body))
	return resp.StatusCode, body
}

func TestJsonError(t *testing.T) {
	status, body := doRequest(t, func(c *fiber.Ctx) error {
		return JsonError(c, fiber.StatusTooManyRequests, "slow down")
	})
	assert.Equal(t, fiber.StatusTooManyRequests, status)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "slow down", body["message"])
	assert.Equal(t, "RATE_LIMITED", body["error_code"])
}

func TestJsonErrorDefaults(t *testing.T) {
	status, body := doRequest(t, func(c *fiber.Ctx) error {
		return JsonError(c, 0, "")
	})
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "INTERNAL_ERROR", body["error_code"])
}

func TestJsonOKEnvelope(t *testing.T) {
	status, body := doRequest(t, func(c *fiber.Ctx) error {
		return JsonOK(c, "", fiber.Map{"x": 1})
	})
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "ok", body["message"])
	assert.NotNil(t, body["data"])
}

func TestJsonListIncludesPagination(t *testing.T) {
	status, body := doRequest(t, func(c *fiber.Ctx) error {
		return JsonList(c, "ok", []string{"a"}, BuildPagination(1, 1, 25, 1))
	})
	assert.Equal(t, fiber.StatusOK, status)
	pg, ok := body["pagination"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(1), pg["total"])
}

func TestJsonValidationError(t *testing.T) {
	status, body := doRequest(t, func(c *fiber.Ctx) error {
		return JsonValidationError(c, map[string][]string{"user_name": {"too short"}})
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Equal(t, "VALIDATION_ERROR", body["error_code"])
	assert.NotNil(t, body["errors"])
}
