package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	contentRoute "madrasahku_backend/internals/features/content/route"
	dashboardRoute "madrasahku_backend/internals/features/dashboard/route"
	feeRoute "madrasahku_backend/internals/features/finance/fees/route"
	paymentRoute "madrasahku_backend/internals/features/finance/payments/route"
	personRoute "madrasahku_backend/internals/features/people/route"
	madrasaRoute "madrasahku_backend/internals/features/tenancy/madrasas/route"
	authRoute "madrasahku_backend/internals/features/users/auth/route"
	vrfRoute "madrasahku_backend/internals/features/users/verification/route"
	vrfService "madrasahku_backend/internals/features/users/verification/service"
	ossHelper "madrasahku_backend/internals/helpers/oss"
	authMw "madrasahku_backend/internals/middlewares/auth"
)

var startTime time.Time

// SetupRoutes mounts everything on three groups: /api (public), /api/u
// (any signed-in user) and /api/a (signed-in, role-guarded per route).
func SetupRoutes(app *fiber.App, db *gorm.DB, vrf *vrfService.VerificationService, oss *ossHelper.OSSService) {
	startTime = time.Now()

	public := app.Group("/api")

	public.Get("/uptime", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"uptime": time.Since(startTime).String()})
	})

	user := app.Group("/api/u", authMw.AuthMiddleware(db))
	admin := app.Group("/api/a", authMw.AuthMiddleware(db))

	log.Println("[INFO] Mounting auth & verification routes...")
	authRoute.AuthRoutes(public, db, vrf)
	vrfRoute.VerificationRoutes(public, vrf)

	log.Println("[INFO] Mounting madrasa routes...")
	madrasaRoute.MadrasaRoutes(public, admin, db, oss)

	log.Println("[INFO] Mounting people routes...")
	personRoute.PersonRoutes(user, admin, db, oss)

	log.Println("[INFO] Mounting finance routes...")
	feeRoute.FeeRoutes(user, admin, db)
	paymentRoute.PaymentRoutes(public, user, admin, db)

	log.Println("[INFO] Mounting content routes...")
	contentRoute.ContentRoutes(public, admin, db, oss)

	log.Println("[INFO] Mounting dashboard routes...")
	dashboardRoute.DashboardRoutes(admin, db)
}
