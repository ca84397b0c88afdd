package auth

import (
	"github.com/gofiber/fiber/v2"

	"madrasahku_backend/internals/constants"
)

// OnlyAccTypes gates a route group by account type claim. Must run after
// AuthMiddleware.
func OnlyAccTypes(allowed ...string) fiber.Handler {
	allowedSet := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		allowedSet[a] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		accType, _ := c.Locals("acc_type").(string)
		if _, ok := allowedSet[accType]; !ok {
			return fiber.NewError(fiber.StatusForbidden, "This feature is restricted to: "+joinTypes(allowed))
		}
		return c.Next()
	}
}

func AdminOnly() fiber.Handler {
	return OnlyAccTypes(constants.AdminOnly...)
}

func StaffAndAbove() fiber.Handler {
	return OnlyAccTypes(constants.StaffAndAbove...)
}

func joinTypes(types []string) string {
	out := ""
	for i, t := range types {
		if i > 0 {
			out += ", "
		}
		out += t
	}
	return out
}
