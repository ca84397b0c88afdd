package route

import (
	"github.com/gofiber/fiber/v2"

	"madrasahku_backend/internals/features/users/verification/controller"
	"madrasahku_backend/internals/features/users/verification/service"
	"madrasahku_backend/internals/middlewares"
)

func VerificationRoutes(public fiber.Router, svc *service.VerificationService) {
	ctrl := controller.NewVerificationController(svc)

	grp := public.Group("/verification")
	grp.Post("/send", middlewares.OTPSendRateLimiter(), ctrl.Send)
	grp.Post("/verify", ctrl.Verify)
}
