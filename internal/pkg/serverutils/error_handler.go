package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"ai-companion-be/internal/apperrors"
	"ai-companion-be/internal/pkg/logger"
)

const fallbackMessage = "Something went wrong, please try again later"

// ErrorHandlerMiddleware maps service errors to HTTP responses. Internal
// detail goes to the log only; callers get the generic envelope.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var validationErr *apperrors.ValidationError
		if errors.As(err, &validationErr) {
			return ctx.Status(fiber.StatusBadRequest).
				JSON(ErrorResponse(fiber.StatusBadRequest, validationErr.Message))
		}

		var modelErr *apperrors.ModelError
		if errors.As(err, &modelErr) {
			log.Error("http", "model call failed", map[string]interface{}{
				"path":  ctx.Path(),
				"error": modelErr.Err.Error(),
			})
			return ctx.Status(fiber.StatusBadGateway).
				JSON(ErrorResponse(fiber.StatusBadGateway, fallbackMessage))
		}

		var storeErr *apperrors.StoreError
		if errors.As(err, &storeErr) {
			log.Error("http", "store operation failed", map[string]interface{}{
				"path":  ctx.Path(),
				"op":    storeErr.Op,
				"error": storeErr.Err.Error(),
			})
			return ctx.Status(fiber.StatusInternalServerError).
				JSON(ErrorResponse(fiber.StatusInternalServerError, fallbackMessage))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).
				JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		log.Error("http", "unhandled error", map[string]interface{}{
			"path":  ctx.Path(),
			"error": err.Error(),
		})
		return ctx.Status(fiber.StatusInternalServerError).
			JSON(ErrorResponse(fiber.StatusInternalServerError, fallbackMessage))
	}
}
