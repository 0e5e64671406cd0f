package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"finbot-be/internal/apperror"
)

// ErrorHandlerMiddleware turns errors bubbled out of controllers into JSON
// error envelopes. Tagged application errors map onto statuses; anything
// unrecognized is a 500 with the detail kept out of the body.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		status := statusFor(err)
		message := err.Error()
		if status == fiber.StatusInternalServerError {
			message = "internal server error"
		}
		return ctx.Status(status).JSON(ErrorResponse(status, message))
	}
}

func statusFor(err error) int {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code
	}

	switch {
	case errors.Is(err, apperror.ErrInvalidInput),
		errors.Is(err, apperror.ErrExtractionFailure),
		errors.Is(err, apperror.ErrNoMeaningfulContent),
		errors.Is(err, apperror.ErrInvalidCredentials),
		errors.Is(err, apperror.ErrNoModelAvailable):
		return fiber.StatusBadRequest
	case errors.Is(err, apperror.ErrSessionNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, apperror.ErrUpstreamTimeout):
		return fiber.StatusGatewayTimeout
	case errors.Is(err, apperror.ErrUpstreamRateLimited):
		return fiber.StatusTooManyRequests
	default:
		return fiber.StatusInternalServerError
	}
}
