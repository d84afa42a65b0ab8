package handlers

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/donor-registry/internal/dto"
	"github.com/ahmetcoskunkizilkaya/donor-registry/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/donor-registry/internal/services"
	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
)

// statusFor maps a service error onto an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidArgument):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, services.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, services.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrAlreadyExists):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func outcomeFor(status int) string {
	switch {
	case status >= 500:
		return metrics.OutcomeError
	case status >= 400:
		return metrics.OutcomeRejected
	default:
		return metrics.OutcomeSuccess
	}
}

// writeError writes the failure envelope. Server-side failures are also sent
// to the request's sentry hub, since the response is written here and the
// app error handler never sees them.
func writeError(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	if status >= fiber.StatusInternalServerError {
		if hub := sentryfiber.GetHubFromContext(c); hub != nil {
			hub.WithScope(func(scope *sentry.Scope) {
				scope.SetTag("path", c.Path())
				scope.SetTag("method", c.Method())
				hub.CaptureException(err)
			})
		}
	}
	return c.Status(status).JSON(dto.Result{Success: false, Error: err.Error()})
}

func writeData(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(dto.Result{Success: true, Data: data})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.Result{Success: false, Error: msg})
}
