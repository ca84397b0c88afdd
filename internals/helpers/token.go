package helper

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Locals getters. AuthMiddleware stores string claims; these parse and guard.

func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	raw, _ := c.Locals("user_id").(string)
	if raw == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "user ID missing from token")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "user ID in token is invalid")
	}
	return id, nil
}

func GetMadrasaIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	raw, _ := c.Locals("madrasa_id").(string)
	if raw == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusForbidden, "no madrasa in token")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusForbidden, "madrasa ID in token is invalid")
	}
	return id, nil
}

func GetAccTypeFromToken(c *fiber.Ctx) string {
	t, _ := c.Locals("acc_type").(string)
	return t
}
