package handlers

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/donor-registry/internal/dto"
	"github.com/ahmetcoskunkizilkaya/donor-registry/internal/identity"
	"github.com/ahmetcoskunkizilkaya/donor-registry/internal/services"
	"github.com/gofiber/fiber/v2"
)

type MeHandler struct {
	sync     services.UserSync
	roles    services.RoleQuery
	profiles services.ProfileService
}

func NewMeHandler(sync services.UserSync, roles services.RoleQuery, profiles services.ProfileService) *MeHandler {
	return &MeHandler{sync: sync, roles: roles, profiles: profiles}
}

// Me returns the caller's synced user, role and donor profile. A caller
// whose webhook has not arrived yet gets 404.
func (h *MeHandler) Me(c *fiber.Ctx) error {
	ctx := c.UserContext()
	sub, err := identity.GetUserID(c)
	if err != nil {
		return writeError(c, services.ErrUnauthorized)
	}

	user := h.roles.GetUserByIdentity(ctx, sub)
	if user == nil {
		return writeError(c, fmt.Errorf("%w: user has not been synced yet", services.ErrNotFound))
	}

	if err := h.sync.TouchLastLogin(ctx, sub); err != nil {
		slog.Warn("last login update failed", "user_id", sub, "error", err)
	}

	resp := dto.MeResponse{
		User:    user,
		Role:    user.Role,
		IsAdmin: h.roles.IsAdmin(ctx, sub),
	}

	profile, err := h.profiles.GetMine(ctx, sub)
	switch {
	case err == nil:
		resp.DonorProfile = profile
	case !errors.Is(err, services.ErrNotFound):
		return writeError(c, err)
	}

	return writeData(c, fiber.StatusOK, resp)
}
