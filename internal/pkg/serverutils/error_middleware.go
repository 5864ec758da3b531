package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"ai-schemadesign-be/internal/constant"
	"ai-schemadesign-be/pkg/store"
)

// ErrorHandlerMiddleware converts errors escaping the handlers into the
// standard response envelope. Known domain errors keep their status codes,
// everything else becomes a 500 without leaking internals.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		switch {
		case errors.Is(err, store.ErrTurnInProgress):
			return ctx.Status(fiber.StatusConflict).JSON(ErrorResponse(409, err.Error()))
		case errors.Is(err, constant.ErrThreadNotFound):
			return ctx.Status(fiber.StatusNotFound).JSON(ErrorResponse(404, err.Error()))
		case errors.Is(err, constant.ErrCredentialNotFound):
			return ctx.Status(fiber.StatusNotFound).JSON(ErrorResponse(404, err.Error()))
		case errors.Is(err, constant.ErrInvalidCredentials):
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(401, err.Error()))
		case errors.Is(err, constant.ErrUnsupportedDialect):
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse(400, err.Error()))
		case errors.As(err, &fiberErr):
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		default:
			return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(500, "internal server error"))
		}
	}
}
