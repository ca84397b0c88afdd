package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	helper "madrasahku_backend/internals/helpers"
)

func ipLimiter(max int, window time.Duration, message string) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return helper.JsonError(c, fiber.StatusTooManyRequests, message)
		},
	})
}

// Global limiter: every ordinary endpoint
func GlobalRateLimiter() fiber.Handler {
	return ipLimiter(100, 1*time.Minute, "Too many requests. Please try again later.")
}

// Stricter limiter for login
func LoginRateLimiter() fiber.Handler {
	return ipLimiter(5, 1*time.Minute, "Too many login attempts. Try again in a minute.")
}

// Limiter for registration
func RegisterRateLimiter() fiber.Handler {
	return ipLimiter(3, 5*time.Minute, "Too many registration attempts. Wait a few minutes.")
}

// Limiter for OTP send endpoints. The per-contact quota lives in KeyDB; this
// only throttles a single IP hammering the route.
func OTPSendRateLimiter() fiber.Handler {
	return ipLimiter(2, 1*time.Minute, "Too many code requests. Wait a minute before resending.")
}

// Limiter for forgot-password
func ForgotPasswordRateLimiter() fiber.Handler {
	return ipLimiter(2, 10*time.Minute, "Too many reset requests. Try again in 10 minutes.")
}
