package middlewares

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler renders every handler error as a JSON {statusCode, message}
// body. Known fiber errors pass through with their status and message; any
// other error is logged with detail and mapped to a generic 500.
func ErrorHandler(ctx *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		message = fiberErr.Message
	} else {
		slog.Error("Unhandled error", "path", ctx.Path(), "error", err)
	}
	return ctx.Status(code).JSON(fiber.Map{
		"statusCode": code,
		"message":    message,
	})
}
