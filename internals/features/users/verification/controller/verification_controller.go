package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"madrasahku_backend/internals/features/users/verification/service"
	helper "madrasahku_backend/internals/helpers"
)

type VerificationController struct {
	Service *service.VerificationService
}

func NewVerificationController(svc *service.VerificationService) *VerificationController {
	return &VerificationController{Service: svc}
}

// normalizeContact lowers emails and E.164-normalizes phones so the KeyDB key
// is stable regardless of how the client formats the contact.
func normalizeContact(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errors.New("contact is required")
	}
	if strings.ContainsRune(raw, '@') {
		return strings.ToLower(raw), nil
	}
	return helper.NormalizePhone(raw)
}

// POST /api/verification/send  {contact, purpose}
func (h *VerificationController) Send(c *fiber.Ctx) error {
	var req struct {
		Contact string `json:"contact"`
		Purpose string `json:"purpose"`
	}
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	contact, err := normalizeContact(req.Contact)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if req.Purpose == "" {
		req.Purpose = service.PurposeRegister
	}

	if err := h.Service.Send(c.UserContext(), contact, req.Purpose); err != nil {
		switch {
		case errors.Is(err, service.ErrBadPurpose):
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrCooldown), errors.Is(err, service.ErrQuotaExceeded):
			return helper.JsonError(c, fiber.StatusTooManyRequests, err.Error())
		case errors.Is(err, service.ErrStoreUnavailable):
			return helper.JsonError(c, fiber.StatusServiceUnavailable, "Verification is temporarily unavailable")
		default:
			// provider failure: do not leak detail
			return helper.JsonError(c, fiber.StatusBadGateway, "Failed to deliver the code")
		}
	}
	return helper.JsonOK(c, "Verification code sent", fiber.Map{"contact": contact})
}

// POST /api/verification/verify  {contact, purpose, code}
func (h *VerificationController) Verify(c *fiber.Ctx) error {
	var req struct {
		Contact string `json:"contact"`
		Purpose string `json:"purpose"`
		Code    string `json:"code"`
	}
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	contact, err := normalizeContact(req.Contact)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if req.Purpose == "" {
		req.Purpose = service.PurposeRegister
	}
	if strings.TrimSpace(req.Code) == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "code is required")
	}

	if err := h.Service.Verify(c.UserContext(), contact, req.Purpose, strings.TrimSpace(req.Code)); err != nil {
		switch {
		case errors.Is(err, service.ErrCodeExpired),
			errors.Is(err, service.ErrCodeMismatch),
			errors.Is(err, service.ErrTooManyAttempts),
			errors.Is(err, service.ErrBadPurpose):
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrStoreUnavailable):
			return helper.JsonError(c, fiber.StatusServiceUnavailable, "Verification is temporarily unavailable")
		default:
			return helper.JsonError(c, fiber.StatusInternalServerError, "Verification failed")
		}
	}
	return helper.JsonOK(c, "Contact verified", fiber.Map{"contact": contact, "verified": true})
}
