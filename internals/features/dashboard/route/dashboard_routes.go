package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"madrasahku_backend/internals/features/dashboard/controller"
	authMw "madrasahku_backend/internals/middlewares/auth"
)

func DashboardRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := controller.NewDashboardController(db)
	admin.Get("/dashboard", authMw.StaffAndAbove(), ctrl.Stats)
}
