package serverutils

import (
	"math"

	"mockbot-be/internal/pkg/apperror"
	"mockbot-be/pkg/ratelimit"

	"github.com/gofiber/fiber/v2"
)

// RateLimitMiddleware rejects requests once the caller's IP exhausts the
// limiter's window. The message is what the end user sees.
func RateLimitMiddleware(limiter ratelimit.Limiter, message string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		decision, err := limiter.Allow(ctx.UserContext(), ctx.IP())
		if err != nil {
			// Counter errors fail open.
			return ctx.Next()
		}
		if !decision.Allowed {
			retryAfter := int(math.Ceil(decision.RetryAfter.Seconds()))
			if retryAfter < 1 {
				retryAfter = 1
			}
			return apperror.RateLimited(message, retryAfter)
		}
		return ctx.Next()
	}
}
