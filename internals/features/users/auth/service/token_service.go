package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"madrasahku_backend/internals/configs"
	authModel "madrasahku_backend/internals/features/users/auth/model"
	authRepo "madrasahku_backend/internals/features/users/auth/repository"
	userModel "madrasahku_backend/internals/features/users/user/model"
	helpers "madrasahku_backend/internals/helpers"
)

const (
	accessTTLDefault  = 24 * time.Hour
	refreshTTLDefault = 7 * 24 * time.Hour
)

func nowUTC() time.Time { return time.Now().UTC() }

func getJWTSecret() (string, error) {
	secret := strings.TrimSpace(configs.JWTSecret)
	if secret == "" {
		secret = strings.TrimSpace(os.Getenv("JWT_SECRET"))
	}
	if secret == "" {
		return "", fiber.NewError(fiber.StatusInternalServerError, "JWT_SECRET is not set")
	}
	return secret, nil
}

func getRefreshSecret() (string, error) {
	secret := strings.TrimSpace(configs.JWTRefreshSecret)
	if secret == "" {
		secret = strings.TrimSpace(os.Getenv("JWT_REFRESH_SECRET"))
	}
	if secret == "" {
		return "", fiber.NewError(fiber.StatusInternalServerError, "JWT_REFRESH_SECRET is not set")
	}
	return secret, nil
}

// computeRefreshHash: refresh tokens are stored hashed, never plaintext.
func computeRefreshHash(token, secret string) []byte {
	m := hmac.New(sha256.New, []byte(secret))
	_, _ = m.Write([]byte(token))
	return m.Sum(nil)
}

/* ==========================
   Claims builders
========================== */

func buildAccessClaims(user userModel.UserModel, now time.Time) jwt.MapClaims {
	return jwt.MapClaims{
		"typ":        "access",
		"sub":        user.ID.String(),
		"id":         user.ID.String(),
		"user_name":  user.UserName,
		"acc_type":   user.AccType,
		"madrasa_id": user.MadrasaID.String(),
		"iat":        now.Unix(),
		"exp":        now.Add(accessTTLDefault).Unix(),
	}
}

func buildRefreshClaims(userID uuid.UUID, now time.Time) jwt.MapClaims {
	return jwt.MapClaims{
		"typ": "refresh",
		"sub": userID.String(),
		"iat": now.Unix(),
		"exp": now.Add(refreshTTLDefault).Unix(),
	}
}

/* ==========================
   Issue + rotate
========================== */

func issueTokens(c *fiber.Ctx, db *gorm.DB, user userModel.UserModel) error {
	jwtSecret, err := getJWTSecret()
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	refreshSecret, err := getRefreshSecret()
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	now := nowUTC()
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, buildAccessClaims(user, now)).
		SignedString([]byte(jwtSecret))
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to sign access token")
	}
	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, buildRefreshClaims(user.ID, now)).
		SignedString([]byte(refreshSecret))
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to sign refresh token")
	}

	ua := c.Get("User-Agent")
	ip := c.IP()
	rt := authModel.RefreshToken{
		UserID:    user.ID,
		TokenHash: computeRefreshHash(refreshToken, refreshSecret),
		ExpiresAt: now.Add(refreshTTLDefault),
	}
	if ua != "" {
		rt.UserAgent = &ua
	}
	if ip != "" {
		rt.IP = &ip
	}
	if err := authRepo.CreateRefreshToken(db, &rt); err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to store refresh token")
	}

	setAuthCookies(c, accessToken, refreshToken, now)

	return helpers.JsonOK(c, "Login successful", fiber.Map{
		"access_token": accessToken,
		"expires_at":   now.Add(accessTTLDefault),
		"user": fiber.Map{
			"id":         user.ID,
			"user_name":  user.UserName,
			"email":      user.Email,
			"phone":      user.Phone,
			"acc_type":   user.AccType,
			"madrasa_id": user.MadrasaID,
		},
	})
}

func setAuthCookies(c *fiber.Ctx, accessToken, refreshToken string, now time.Time) {
	secure := strings.EqualFold(configs.GetEnv("COOKIE_SECURE", "true"), "true")
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    accessToken,
		Expires:  now.Add(accessTTLDefault),
		HTTPOnly: true,
		Secure:   secure,
		SameSite: "Lax",
		Path:     "/",
	})
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		Expires:  now.Add(refreshTTLDefault),
		HTTPOnly: true,
		Secure:   secure,
		SameSite: "Lax",
		Path:     "/",
	})
}

func clearAuthCookies(c *fiber.Ctx) {
	expired := time.Now().Add(-time.Hour)
	for _, name := range []string{"access_token", "refresh_token"} {
		c.Cookie(&fiber.Cookie{Name: name, Value: "", Expires: expired, HTTPOnly: true, Path: "/"})
	}
}

// RefreshTokens rotates a refresh token: validates the JWT, requires its hash
// in the DB, deletes it and issues a fresh pair.
func RefreshTokens(db *gorm.DB, c *fiber.Ctx) error {
	refreshCookie := strings.TrimSpace(c.Cookies("refresh_token"))
	if refreshCookie == "" {
		var body struct {
			RefreshToken string `json:"refresh_token"`
		}
		_ = c.BodyParser(&body)
		refreshCookie = strings.TrimSpace(body.RefreshToken)
	}
	if refreshCookie == "" {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Refresh token missing")
	}

	refreshSecret, err := getRefreshSecret()
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	tok, err := jwt.Parse(refreshCookie, func(t *jwt.Token) (any, error) {
		return []byte(refreshSecret), nil
	})
	if err != nil || !tok.Valid {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Refresh token invalid")
	}
	claims, _ := tok.Claims.(jwt.MapClaims)
	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Refresh token invalid")
	}

	hash := computeRefreshHash(refreshCookie, refreshSecret)
	exists, err := authRepo.RefreshTokenHashExists(db, hash)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	if !exists {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Refresh token not recognized")
	}

	user, err := authRepo.FindUserByID(db, userID)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "User not found")
	}
	if !user.IsActive {
		return helpers.JsonError(c, fiber.StatusForbidden, "Account is deactivated")
	}

	// rotate
	if err := authRepo.DeleteRefreshTokenByHash(db, hash); err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to rotate refresh token")
	}
	return issueTokens(c, db, *user)
}

// Logout blacklists the current access token and revokes the refresh token.
func Logout(db *gorm.DB, c *fiber.Ctx) error {
	raw, _ := c.Locals("raw_token").(string)
	if raw != "" {
		if err := authRepo.BlacklistToken(db, raw, accessTTLDefault); err != nil {
			// a duplicate blacklist entry is fine
			if !strings.Contains(strings.ToLower(err.Error()), "duplicate") {
				return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to blacklist token")
			}
		}
	}

	if refreshCookie := strings.TrimSpace(c.Cookies("refresh_token")); refreshCookie != "" {
		if refreshSecret, err := getRefreshSecret(); err == nil {
			_ = authRepo.DeleteRefreshTokenByHash(db, computeRefreshHash(refreshCookie, refreshSecret))
		}
	}

	clearAuthCookies(c)
	return helpers.JsonOK(c, "Logged out", nil)
}
