package service

import (
	"strings"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"madrasahku_backend/internals/configs"
	"madrasahku_backend/internals/constants"
	"madrasahku_backend/internals/features/users/auth/dto"
	authHelper "madrasahku_backend/internals/features/users/auth/helper"
	authRepo "madrasahku_backend/internals/features/users/auth/repository"
	userModel "madrasahku_backend/internals/features/users/user/model"
	personModel "madrasahku_backend/internals/features/people/model"
	madrasaModel "madrasahku_backend/internals/features/tenancy/madrasas/model"
	vrfService "madrasahku_backend/internals/features/users/verification/service"
	helpers "madrasahku_backend/internals/helpers"
	"madrasahku_backend/internals/helpers/secure"
)

/* ==========================
   Register
========================== */

// Register creates a user + person pair inside one madrasa. The contact must
// carry a live verified flag (see verification feature); the flag is consumed
// only after the transaction commits so a failed insert doesn't burn it.
func Register(db *gorm.DB, vrf *vrfService.VerificationService, c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	contact, err := normalizeContact(req.Contact)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	req.Contact = contact

	if err := authHelper.ValidateRegisterInput(req.UserName, req.Contact, req.Password); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if !constants.IsValidAccType(req.AccType) {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Unknown acc_type")
	}
	if req.AccType == constants.AccAdmin {
		return helpers.JsonError(c, fiber.StatusForbidden, "Admin accounts cannot self-register")
	}
	if err := validateAccTypeFields(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	madrasa, err := findMadrasaBySlug(db, req.MadrasaSlug)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusNotFound, "Madrasa not found")
	}

	ok, err := vrf.IsVerified(c.UserContext(), req.Contact, vrfService.PurposeRegister)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusServiceUnavailable, "Verification store unavailable")
	}
	if !ok {
		return helpers.JsonError(c, fiber.StatusForbidden, "Contact is not verified")
	}

	hashed, err := authHelper.HashPassword(req.Password)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	user := userModel.UserModel{
		MadrasaID: madrasa.MadrasaID,
		UserName:  strings.TrimSpace(req.UserName),
		Password:  hashed,
		AccType:   req.AccType,
		IsActive:  true,
	}
	if authHelper.IsValidEmail(req.Contact) {
		email := strings.ToLower(req.Contact)
		user.Email = &email
	} else {
		phone := req.Contact
		user.Phone = &phone
	}

	person, err := buildPerson(&req, madrasa.MadrasaID)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := db.Transaction(func(tx *gorm.DB) error {
		if err := authRepo.CreateUser(tx, &user); err != nil {
			return err
		}
		person.UserID = &user.ID
		return tx.Create(person).Error
	}); err != nil {
		low := strings.ToLower(err.Error())
		if strings.Contains(low, "duplicate") || strings.Contains(low, "unique") {
			return helpers.JsonError(c, fiber.StatusConflict, "This contact is already registered at this madrasa")
		}
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to create account")
	}

	// consume after commit; a reused flag only shortens someone's window
	_, _ = vrf.ConsumeVerified(c.UserContext(), req.Contact, vrfService.PurposeRegister)

	return helpers.JsonCreated(c, "Registration successful", fiber.Map{
		"user_id":   user.ID,
		"person_id": person.PersonID,
		"acc_type":  user.AccType,
	})
}

func validateAccTypeFields(req *dto.RegisterRequest) error {
	switch req.AccType {
	case constants.AccStudent:
		if strings.TrimSpace(req.GuardianName) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "guardian_name is required for students")
		}
		if strings.TrimSpace(req.ClassName) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "class_name is required for students")
		}
		if strings.TrimSpace(req.DateOfBirth) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "date_of_birth is required for students")
		}
	case constants.AccTeacher, constants.AccStaff:
		if strings.TrimSpace(req.Designation) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "designation is required for teachers and staff")
		}
	}
	return nil
}

func buildPerson(req *dto.RegisterRequest, madrasaID uuid.UUID) (*personModel.PersonModel, error) {
	p := &personModel.PersonModel{
		MadrasaID:  madrasaID,
		AccType:    req.AccType,
		FullName:   strings.TrimSpace(req.FullName),
		EnrolledAt: time.Now().UTC(),
	}
	setOpt := func(dst **string, v string) {
		if s := strings.TrimSpace(v); s != "" {
			*dst = &s
		}
	}
	setOpt(&p.GuardianName, req.GuardianName)
	setOpt(&p.ClassName, req.ClassName)
	setOpt(&p.Designation, req.Designation)
	setOpt(&p.Gender, req.Gender)
	setOpt(&p.BloodGroup, req.BloodGroup)
	setOpt(&p.Address, req.Address)

	if s := strings.TrimSpace(req.DateOfBirth); s != "" {
		dob, err := time.Parse("2006-01-02", s)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "date_of_birth must be YYYY-MM-DD")
		}
		p.DateOfBirth = &dob
	}

	if s := strings.TrimSpace(req.GuardianPhone); s != "" {
		normalized, err := helpers.NormalizePhone(s)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "guardian_phone is not a valid phone number")
		}
		enc, err := secure.Encrypt(normalized)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to protect guardian phone")
		}
		p.GuardianPhoneEnc = &enc
	}
	if s := strings.TrimSpace(req.NationalID); s != "" {
		enc, err := secure.Encrypt(s)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to protect national id")
		}
		p.NationalIDEnc = &enc
	}
	return p, nil
}

/* ==========================
   Login
========================== */

func Login(db *gorm.DB, c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := authHelper.ValidateLoginInput(req.Identifier, req.Password); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	madrasa, err := findMadrasaBySlug(db, req.MadrasaSlug)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusNotFound, "Madrasa not found")
	}

	identifier, err := normalizeContact(req.Identifier)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	user, err := authRepo.FindUserByContact(db, madrasa.MadrasaID, identifier)
	if err != nil {
		// identical message for unknown user and wrong password
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Invalid credentials")
	}
	if !user.IsActive {
		return helpers.JsonError(c, fiber.StatusForbidden, "Account is deactivated")
	}
	if err := authHelper.CheckPasswordHash(user.Password, req.Password); err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Invalid credentials")
	}

	return issueTokens(c, db, *user)
}

/* ==========================
   Google sign-in
========================== */

// LoginGoogle verifies a Google ID token and signs the matching user in.
// First sight of a Google account creates a guest user bound to the email.
func LoginGoogle(db *gorm.DB, c *fiber.Ctx) error {
	var req dto.GoogleLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if strings.TrimSpace(req.IDToken) == "" {
		return helpers.JsonError(c, fiber.StatusBadRequest, "id_token is required")
	}

	madrasa, err := findMadrasaBySlug(db, req.MadrasaSlug)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusNotFound, "Madrasa not found")
	}

	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(req.IDToken, []string{configs.GoogleClientID}); err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Google token invalid")
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(req.IDToken)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Google token invalid")
	}

	googleID := claimSet.Sub
	email := strings.ToLower(claimSet.Email)

	user, err := authRepo.FindUserByGoogleID(db, googleID)
	if err != nil {
		// fall back to email match within the tenant, then create
		if email != "" {
			if byEmail, e2 := authRepo.FindUserByContact(db, madrasa.MadrasaID, email); e2 == nil {
				byEmail.GoogleID = &googleID
				_ = db.Model(byEmail).Update("google_id", googleID).Error
				user = byEmail
			}
		}
		if user == nil {
			name := strings.TrimSpace(claimSet.Name)
			if name == "" {
				name = email
			}
			created := userModel.UserModel{
				MadrasaID: madrasa.MadrasaID,
				UserName:  name,
				Email:     &email,
				GoogleID:  &googleID,
				AccType:   constants.AccGuest,
				IsActive:  true,
			}
			if err := authRepo.CreateUser(db, &created); err != nil {
				return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to create account")
			}
			user = &created
		}
	}
	if user.MadrasaID != madrasa.MadrasaID {
		return helpers.JsonError(c, fiber.StatusForbidden, "Account belongs to a different madrasa")
	}
	if !user.IsActive {
		return helpers.JsonError(c, fiber.StatusForbidden, "Account is deactivated")
	}

	return issueTokens(c, db, *user)
}

/* ==========================
   Password reset & change
========================== */

// ResetPassword sets a new password for a contact that holds a verified flag
// with the reset purpose. The flag is single use.
func ResetPassword(db *gorm.DB, vrf *vrfService.VerificationService, c *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if len(req.NewPassword) < 8 {
		return helpers.JsonError(c, fiber.StatusBadRequest, "new_password must be at least 8 characters")
	}

	contact, err := normalizeContact(req.Contact)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	madrasa, err := findMadrasaBySlug(db, req.MadrasaSlug)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusNotFound, "Madrasa not found")
	}

	user, err := authRepo.FindUserByContact(db, madrasa.MadrasaID, contact)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusNotFound, "No account for this contact")
	}

	ok, err := vrf.ConsumeVerified(c.UserContext(), contact, vrfService.PurposeReset)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusServiceUnavailable, "Verification store unavailable")
	}
	if !ok {
		return helpers.JsonError(c, fiber.StatusForbidden, "Contact is not verified for password reset")
	}

	hashed, err := authHelper.HashPassword(req.NewPassword)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to hash password")
	}
	if err := authRepo.UpdateUserPassword(db, user.ID, hashed); err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to update password")
	}

	// every session dies with the old password
	_ = authRepo.DeleteRefreshTokensForUser(db, user.ID)

	return helpers.JsonOK(c, "Password has been reset", nil)
}

func ChangePassword(db *gorm.DB, c *fiber.Ctx) error {
	userID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if len(req.NewPassword) < 8 {
		return helpers.JsonError(c, fiber.StatusBadRequest, "new_password must be at least 8 characters")
	}

	user, err := authRepo.FindUserByID(db, userID)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusNotFound, "User not found")
	}
	if err := authHelper.CheckPasswordHash(user.Password, req.CurrentPassword); err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Current password is incorrect")
	}

	hashed, err := authHelper.HashPassword(req.NewPassword)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to hash password")
	}
	if err := authRepo.UpdateUserPassword(db, user.ID, hashed); err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to update password")
	}
	return helpers.JsonOK(c, "Password changed", nil)
}

/* ==========================
   Shared
========================== */

func findMadrasaBySlug(db *gorm.DB, slug string) (*madrasaModel.MadrasaModel, error) {
	var m madrasaModel.MadrasaModel
	if err := db.
		Where("madrasa_slug = ? AND madrasa_is_active = true", strings.ToLower(strings.TrimSpace(slug))).
		First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// normalizeContact lowercases emails and E.164-normalizes phone numbers so
// the same contact always maps to the same row and cache key.
func normalizeContact(contact string) (string, error) {
	contact = strings.TrimSpace(contact)
	if contact == "" {
		return "", fiber.NewError(fiber.StatusBadRequest, "contact is required")
	}
	if authHelper.IsValidEmail(contact) {
		return strings.ToLower(contact), nil
	}
	normalized, err := helpers.NormalizePhone(contact)
	if err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "contact must be a valid email or phone number")
	}
	return normalized, nil
}
