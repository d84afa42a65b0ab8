package middleware

import (
	"github.com/ahmetcoskunkizilkaya/donor-registry/internal/config"
	"github.com/ahmetcoskunkizilkaya/donor-registry/internal/dto"
	"github.com/ahmetcoskunkizilkaya/donor-registry/internal/identity"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
)

// JWTProtected verifies the identity provider's session token. With
// CLERK_JWKS_URL set, keys come from the provider's JWKS; otherwise the
// shared JWT_SECRET (HS256) is used, which is what local runs and tests do.
func JWTProtected(cfg *config.Config) fiber.Handler {
	jwtCfg := jwtware.Config{
		ContextKey: identity.LocalsKey,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Unauthorized: invalid or expired token",
			})
		},
	}
	if cfg.ClerkJWKSURL != "" {
		jwtCfg.JWKSetURLs = []string{cfg.ClerkJWKSURL}
	} else {
		jwtCfg.SigningKey = jwtware.SigningKey{Key: []byte(cfg.JWTSecret)}
	}
	return jwtware.New(jwtCfg)
}
