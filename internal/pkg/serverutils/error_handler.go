package serverutils

import (
	"fmt"

	"mockbot-be/internal/pkg/apperror"
	"mockbot-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts errors bubbled out of handlers into
// the shared response envelope. Unknown errors are logged and masked.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		if fiberErr, ok := err.(*fiber.Error); ok {
			return ErrorResponse(ctx, fiberErr.Code, fiberErr.Message, "")
		}

		appErr := apperror.From(err)
		status := statusForKind(appErr.Kind)

		if appErr.Kind == apperror.KindRateLimited && appErr.RetryAfterSeconds > 0 {
			ctx.Set("Retry-After", fmt.Sprintf("%d", appErr.RetryAfterSeconds))
		}

		if status >= fiber.StatusInternalServerError {
			log.Error("http", "request failed", map[string]interface{}{
				"path":    ctx.Path(),
				"method":  ctx.Method(),
				"kind":    appErr.Kind.String(),
				"error":   appErr.Error(),
				"details": appErr.Details,
			})
		}

		return ErrorResponse(ctx, status, appErr.Message, appErr.Details)
	}
}

func statusForKind(kind apperror.Kind) int {
	switch kind {
	case apperror.KindValidation, apperror.KindConflict:
		return fiber.StatusBadRequest
	case apperror.KindUnauthorized:
		return fiber.StatusUnauthorized
	case apperror.KindNotFound:
		return fiber.StatusNotFound
	case apperror.KindRateLimited:
		return fiber.StatusTooManyRequests
	default:
		// Upstream AI failures are surfaced as server errors with the
		// user-facing message chosen where the failure was classified.
		return fiber.StatusInternalServerError
	}
}
