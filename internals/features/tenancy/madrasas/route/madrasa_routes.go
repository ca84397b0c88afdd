package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"madrasahku_backend/internals/features/tenancy/madrasas/controller"
	ossHelper "madrasahku_backend/internals/helpers/oss"
	authMw "madrasahku_backend/internals/middlewares/auth"
)

// Public: browse + detail. Admin: manage own madrasa and verification.
func MadrasaRoutes(public fiber.Router, admin fiber.Router, db *gorm.DB, oss *ossHelper.OSSService) {
	ctrl := controller.NewMadrasaController(db, oss)

	pub := public.Group("/madrasas")
	pub.Get("/", ctrl.List)
	pub.Get("/:slug", ctrl.GetBySlug)

	adm := admin.Group("/madrasas", authMw.AdminOnly())
	adm.Post("/", ctrl.Create)
	adm.Patch("/", ctrl.Update)
	adm.Post("/logo", ctrl.UploadLogo)
	adm.Patch("/:id/verify", ctrl.SetVerified)
}
