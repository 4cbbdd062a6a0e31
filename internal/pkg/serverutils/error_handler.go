// FILE: internal/pkg/serverutils/error_handler.go
package serverutils

import (
	"github.com/gofiber/fiber/v2"

	"sdch/pkg/sdcherr"
)

// AppError is a plain HTTP-status-carrying error for failures that
// originate in the controller/validation layer rather than the engine
// (pkg/sdcherr covers the latter).
type AppError struct {
	Status  int
	Message string
}

func (e *AppError) Error() string { return e.Message }

func NewAppError(status int, message string) *AppError {
	return &AppError{Status: status, Message: message}
}

// ErrorHandlerMiddleware centralizes translation of errors returned by
// controllers into the JSON error envelope. Controllers return the bare
// error from a service call; this is the only place that inspects it.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		if fe, ok := err.(*fiber.Error); ok {
			return ctx.Status(fe.Code).JSON(ErrorResponse(fe.Code, fe.Message))
		}
		if ae, ok := err.(*AppError); ok {
			return ctx.Status(ae.Status).JSON(ErrorResponse(ae.Status, ae.Message))
		}
		if se, ok := sdcherr.As(err); ok {
			return ctx.Status(se.Status).JSON(ErrorResponse(se.Status, se.Message))
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(500, err.Error()))
	}
}
