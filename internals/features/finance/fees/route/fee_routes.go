package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"madrasahku_backend/internals/features/finance/fees/controller"
	authMw "madrasahku_backend/internals/middlewares/auth"
)

// FeeRoutes mounts fee calculation under the user group and rule management
// under the admin group.
func FeeRoutes(user, admin fiber.Router, db *gorm.DB) {
	ctrl := controller.NewFeeController(db)

	user.Post("/fees/calculate", ctrl.Calculate)

	rules := admin.Group("/fees/rules", authMw.StaffAndAbove())
	rules.Post("/", ctrl.CreateRule)
	rules.Get("/", ctrl.ListRules)
	rules.Patch("/:id", ctrl.UpdateRule)
}
