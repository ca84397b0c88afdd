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
	"madrasahku_backend/internals/features/tenancy/madrasas/route"
)

// stands in for AuthMiddleware: claims already validated, locals populated
func stubClaims(accType string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user_id", uuid.NewString())
		c.Locals("acc_type", accType)
		c.Locals("madrasa_id", uuid.NewString())
		return c.Next()
	}
}

func newMadrasaApp(accType string) *fiber.App {
	app := fiber.New()
	public := app.Group("/api")
	admin := app.Group("/api/a", stubClaims(accType))
	route.MadrasaRoutes(public, admin, nil, nil)
	return app
}

func TestMadrasaAdminRoutesRejectNonAdmins(t *testing.T) {
	cases := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/a/madrasas"},
		{http.MethodPatch, "/api/a/madrasas"},
		{http.MethodPost, "/api/a/madrasas/logo"},
		{http.MethodPatch, "/api/a/madrasas/" + uuid.NewString() + "/verify"},
	}
	for _, accType := range []string{constants.AccStudent, constants.AccGuest, constants.AccTeacher, constants.AccStaff} {
		for _, tc := range cases {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			resp, err := newMadrasaApp(accType).Test(req)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusForbidden, resp.StatusCode,
				"%s as %s %s", tc.method, accType, tc.path)
		}
	}
}

func TestMadrasaAdminRoutesAdmitAdmin(t *testing.T) {
	// an admin passes the guard and reaches the handler, which rejects the
	// empty body instead of returning 403
	req := httptest.NewRequest(http.MethodPatch, "/api/a/madrasas", nil)
	resp, err := newMadrasaApp(constants.AccAdmin).Test(req)
	require.NoError(t, err)
	assert.NotEqual(t, fiber.StatusForbidden, resp.StatusCode)
}
