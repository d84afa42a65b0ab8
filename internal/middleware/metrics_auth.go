package middleware

import (
	"crypto/subtle"

	"github.com/ahmetcoskunkizilkaya/donor-registry/internal/config"
	"github.com/ahmetcoskunkizilkaya/donor-registry/internal/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/keyauth"
)

// MetricsAuth requires "Authorization: Bearer <METRICS_TOKEN>" on the scrape
// endpoint. With no token configured the endpoint is left open and must only
// be reachable from the internal network.
func MetricsAuth(cfg *config.Config) fiber.Handler {
	want := []byte(cfg.MetricsToken)
	return keyauth.New(keyauth.Config{
		Next: func(*fiber.Ctx) bool { return len(want) == 0 },
		Validator: func(_ *fiber.Ctx, key string) (bool, error) {
			if subtle.ConstantTimeCompare([]byte(key), want) == 1 {
				return true, nil
			}
			return false, keyauth.ErrMissingOrMalformedAPIKey
		},
		ErrorHandler: func(c *fiber.Ctx, _ error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		},
	})
}
