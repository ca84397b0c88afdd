package route_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"madrasahku_backend/internals/constants"
	"madrasahku_backend/internals/features/people/route"
)

func stubClaims(accType string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user_id", uuid.NewString())
		c.Locals("acc_type", accType)
		c.Locals("madrasa_id", uuid.NewString())
		return c.Next()
	}
}

func newPersonApp(accType string) *fiber.App {
	app := fiber.New()
	user := app.Group("/api/u", stubClaims(accType))
	admin := app.Group("/api/a", stubClaims(accType))
	route.PersonRoutes(user, admin, nil, nil)
	return app
}

func TestResultUploadRouteIsMounted(t *testing.T) {
	// staff reaches the handler; with storage unconfigured it answers 503,
	// not 404
	path := "/api/a/people/" + uuid.NewString() + "/results"
	resp, err := newPersonApp(constants.AccStaff).Test(httptest.NewRequest(http.MethodPost, path, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestResultRoutesRejectStudents(t *testing.T) {
	id := uuid.NewString()
	cases := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/a/people/" + id + "/results"},
		{http.MethodGet, "/api/a/people/" + id + "/results"},
		{http.MethodDelete, "/api/a/people/results/" + id},
	}
	for _, tc := range cases {
		resp, err := newPersonApp(constants.AccStudent).Test(httptest.NewRequest(tc.method, tc.path, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode, "%s %s", tc.method, tc.path)
	}
}
