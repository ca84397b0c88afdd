package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"madrasahku_backend/internals/features/people/controller"
	ossHelper "madrasahku_backend/internals/helpers/oss"
	authMw "madrasahku_backend/internals/middlewares/auth"
)

func PersonRoutes(user, admin fiber.Router, db *gorm.DB, oss *ossHelper.OSSService) {
	ctrl := controller.NewPersonController(db, oss)
	resultCtrl := controller.NewResultController(db, oss)

	user.Get("/people/me", ctrl.MyProfile)
	user.Post("/people/me/photo", ctrl.UploadMyPhoto)
	user.Get("/people/me/results", resultCtrl.MyResults)

	adm := admin.Group("/people", authMw.StaffAndAbove())
	adm.Post("/", ctrl.Create)
	adm.Get("/", ctrl.List)
	adm.Delete("/results/:result_id", resultCtrl.Delete)
	adm.Get("/:id", ctrl.GetByID)
	adm.Patch("/:id", ctrl.Update)
	adm.Delete("/:id", ctrl.Delete)
	adm.Post("/:id/results", resultCtrl.Upload)
	adm.Get("/:id/results", resultCtrl.ListForPerson)
}
