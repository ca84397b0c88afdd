package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"madrasahku_backend/internals/configs"
	authModel "madrasahku_backend/internals/features/users/auth/model"
)

// Public paths that skip auth (payment gateway webhook etc.)
var skipPaths = map[string]struct{}{
	"/api/payments/notification": {},
}

func AuthMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := skipPaths[c.Path()]; ok {
			return c.Next()
		}

		tokenString, err := extractBearerToken(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}

		// Blacklist check once per request
		if c.Locals("token_checked") == nil {
			var existing authModel.TokenBlacklist
			if err := db.Where("token = ? AND deleted_at IS NULL", tokenString).First(&existing).Error; err == nil {
				return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - token is blacklisted")
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
			}
			c.Locals("token_checked", true)
		}

		secretKey := configs.JWTSecret
		if secretKey == "" {
			return fiber.NewError(fiber.StatusInternalServerError, "Missing JWT Secret")
		}

		claims := jwt.MapClaims{}
		parser := jwt.Parser{SkipClaimsValidation: true}
		if _, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(secretKey), nil
		}); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - token parse error")
		}

		if err := validateTokenExpiry(claims, 30*time.Second); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - token expired")
		}

		userID, err := extractUserID(claims)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - invalid or missing user ID")
		}
		c.Locals("user_id", userID.String())
		c.Locals("raw_token", tokenString)

		if err := ensureUserActive(db, userID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - user not found")
			}
			return fiber.NewError(fiber.StatusForbidden, "Your account has been deactivated")
		}

		storeClaimsToLocals(c, claims)
		return c.Next()
	}
}

func extractBearerToken(c *fiber.Ctx) (string, error) {
	authz := strings.TrimSpace(c.Get("Authorization"))
	if authz != "" {
		parts := strings.SplitN(authz, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") && strings.TrimSpace(parts[1]) != "" {
			return strings.TrimSpace(parts[1]), nil
		}
		return "", fmt.Errorf("malformed Authorization header")
	}
	if cookie := strings.TrimSpace(c.Cookies("access_token")); cookie != "" {
		return cookie, nil
	}
	return "", fmt.Errorf("missing Authorization header")
}

func validateTokenExpiry(claims jwt.MapClaims, leeway time.Duration) error {
	expVal, ok := claims["exp"]
	if !ok {
		return fmt.Errorf("exp claim missing")
	}
	expFloat, ok := expVal.(float64)
	if !ok {
		return fmt.Errorf("exp claim malformed")
	}
	exp := time.Unix(int64(expFloat), 0)
	if time.Now().After(exp.Add(leeway)) {
		return fmt.Errorf("token expired at %s", exp)
	}
	return nil
}

func extractUserID(claims jwt.MapClaims) (uuid.UUID, error) {
	sub, _ := claims["sub"].(string)
	if sub == "" {
		// old tokens used "id"
		sub, _ = claims["id"].(string)
	}
	return uuid.Parse(sub)
}

var errUserInactive = errors.New("user inactive")

func ensureUserActive(db *gorm.DB, userID uuid.UUID) error {
	var row struct{ IsActive bool }
	res := db.Raw(`SELECT is_active FROM users WHERE id = ? AND deleted_at IS NULL`, userID).Scan(&row)
	if res.Error != nil {
		return res.Error
	}
	// Scan never yields ErrRecordNotFound; a deleted user shows up as zero rows
	return activeCheck(res.RowsAffected > 0, row.IsActive)
}

func activeCheck(found, active bool) error {
	if !found {
		return gorm.ErrRecordNotFound
	}
	if !active {
		return errUserInactive
	}
	return nil
}

func storeClaimsToLocals(c *fiber.Ctx, claims jwt.MapClaims) {
	if v, ok := claims["acc_type"].(string); ok {
		c.Locals("acc_type", v)
	}
	if v, ok := claims["user_name"].(string); ok {
		c.Locals("user_name", v)
	}
	if v, ok := claims["madrasa_id"].(string); ok {
		c.Locals("madrasa_id", v)
	}
}
