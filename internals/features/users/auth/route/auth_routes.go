package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"madrasahku_backend/internals/features/users/auth/controller"
	vrfService "madrasahku_backend/internals/features/users/verification/service"
	"madrasahku_backend/internals/middlewares"
	authMw "madrasahku_backend/internals/middlewares/auth"
)

// AuthRoutes mounts the public auth endpoints plus the authenticated
// session endpoints (logout, change-password).
func AuthRoutes(public fiber.Router, db *gorm.DB, vrf *vrfService.VerificationService) {
	ctrl := controller.NewAuthController(db, vrf)

	grp := public.Group("/auth")
	grp.Post("/register", middlewares.RegisterRateLimiter(), ctrl.Register)
	grp.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)
	grp.Post("/login/google", middlewares.LoginRateLimiter(), ctrl.LoginGoogle)
	grp.Post("/refresh-token", ctrl.RefreshToken)
	grp.Post("/reset-password", middlewares.ForgotPasswordRateLimiter(), ctrl.ResetPassword)

	secured := grp.Group("", authMw.AuthMiddleware(db))
	secured.Post("/logout", ctrl.Logout)
	secured.Post("/change-password", ctrl.ChangePassword)
}
