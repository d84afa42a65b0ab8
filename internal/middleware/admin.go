package middleware

import (
	"github.com/ahmetcoskunkizilkaya/donor-registry/internal/config"
	"github.com/ahmetcoskunkizilkaya/donor-registry/internal/dto"
	"github.com/ahmetcoskunkizilkaya/donor-registry/internal/identity"
	"github.com/ahmetcoskunkizilkaya/donor-registry/internal/services"
	"github.com/gofiber/fiber/v2"
)

// AdminRequired lets through identities listed in ADMIN_USER_IDS and users
// whose synced role is ADMIN or SUPER_ADMIN. Must run after JWTProtected.
func AdminRequired(roles services.RoleQuery, cfg *config.Config) fiber.Handler {
	bootstrap := cfg.AdminIDs()
	return gate(func(c *fiber.Ctx, sub string) bool {
		return contains(bootstrap, sub) || roles.IsAdmin(c.UserContext(), sub)
	}, "Admin access required")
}

// SuperAdminRequired only admits SUPER_ADMIN users. Bootstrap admins are
// not super admins.
func SuperAdminRequired(roles services.RoleQuery) fiber.Handler {
	return gate(func(c *fiber.Ctx, sub string) bool {
		return roles.IsSuperAdmin(c.UserContext(), sub)
	}, "Super admin access required")
}

func gate(allowed func(c *fiber.Ctx, sub string) bool, denied string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sub, err := identity.GetUserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}
		if !allowed(c, sub) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: denied,
			})
		}
		return c.Next()
	}
}

func contains(list []string, val string) bool {
	for _, item := range list {
		if item == val {
			return true
		}
	}
	return false
}
