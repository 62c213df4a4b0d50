package serverutils

import (
	"errors"

	"keepwise-be/internal/entity"
	"keepwise-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// storeFailure carries the public message a route reports when its storage
// call fails for an unexpected reason. The underlying error stays attached
// for the log.
type storeFailure struct {
	message string
	err     error
}

func (e *storeFailure) Error() string { return e.err.Error() }
func (e *storeFailure) Unwrap() error { return e.err }

// StoreError tags an unexpected storage failure with a route-specific
// message. Known errors (typed fiber errors, not-found) pass through so their
// own status mapping applies.
func StoreError(err error, message string) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) || errors.Is(err, entity.ErrNoteNotFound) {
		return err
	}
	return &storeFailure{message: message, err: err}
}

// ErrorHandlerMiddleware converts every error escaping a route into the JSON
// error envelope. Nothing propagates as an unhandled fault.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Message))
		}

		if errors.Is(err, entity.ErrNoteNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(ErrorResponse("Note not found"))
		}

		message := "Internal server error"
		var failure *storeFailure
		if errors.As(err, &failure) {
			message = failure.message
		}

		log.Error("HTTP", "Unhandled route error", map[string]interface{}{
			"path":   ctx.Path(),
			"method": ctx.Method(),
			"error":  err.Error(),
		})
		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(message))
	}
}
