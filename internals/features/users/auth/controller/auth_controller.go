package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"madrasahku_backend/internals/features/users/auth/service"
	vrfService "madrasahku_backend/internals/features/users/verification/service"
)

type AuthController struct {
	DB  *gorm.DB
	Vrf *vrfService.VerificationService
}

func NewAuthController(db *gorm.DB, vrf *vrfService.VerificationService) *AuthController {
	return &AuthController{DB: db, Vrf: vrf}
}

func (ac *AuthController) Register(c *fiber.Ctx) error {
	return service.Register(ac.DB, ac.Vrf, c)
}

func (ac *AuthController) Login(c *fiber.Ctx) error {
	return service.Login(ac.DB, c)
}

func (ac *AuthController) LoginGoogle(c *fiber.Ctx) error {
	return service.LoginGoogle(ac.DB, c)
}

func (ac *AuthController) RefreshToken(c *fiber.Ctx) error {
	return service.RefreshTokens(ac.DB, c)
}

func (ac *AuthController) Logout(c *fiber.Ctx) error {
	return service.Logout(ac.DB, c)
}

func (ac *AuthController) ResetPassword(c *fiber.Ctx) error {
	return service.ResetPassword(ac.DB, ac.Vrf, c)
}

func (ac *AuthController) ChangePassword(c *fiber.Ctx) error {
	return service.ChangePassword(ac.DB, c)
}
