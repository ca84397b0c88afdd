package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	galleryCtrl "madrasahku_backend/internals/features/content/gallery/controller"
	noticeCtrl "madrasahku_backend/internals/features/content/notices/controller"
	translationCtrl "madrasahku_backend/internals/features/content/translations/controller"
	ossHelper "madrasahku_backend/internals/helpers/oss"
	authMw "madrasahku_backend/internals/middlewares/auth"
)

// ContentRoutes mounts translations, notices and gallery: read endpoints are
// public, writes live behind the staff guard on the admin group.
func ContentRoutes(public, admin fiber.Router, db *gorm.DB, oss *ossHelper.OSSService) {
	tr := translationCtrl.NewTranslationController(db)
	nt := noticeCtrl.NewNoticeController(db, oss)
	gl := galleryCtrl.NewGalleryController(db, oss)

	public.Get("/translations/:madrasa_id/:key", tr.Lookup)
	public.Get("/translations/:madrasa_id", tr.FullMap)
	public.Get("/notices/:madrasa_id", nt.PublicList)
	public.Get("/gallery/:madrasa_id", gl.PublicList)

	staff := admin.Group("", authMw.StaffAndAbove())
	staff.Put("/translations", tr.Upsert)
	staff.Delete("/translations/:key", tr.Delete)

	staff.Post("/notices", nt.Create)
	staff.Get("/notices", nt.AdminList)
	staff.Patch("/notices/:id", nt.Update)
	staff.Delete("/notices/:id", nt.Delete)
	staff.Post("/notices/:id/attachment", nt.UploadAttachment)

	staff.Post("/gallery", gl.Upload)
	staff.Delete("/gallery/:id", gl.Delete)
}
