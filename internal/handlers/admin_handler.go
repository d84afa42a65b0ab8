package handlers

import (
	"github.com/ahmetcoskunkizilkaya/donor-registry/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	profiles  services.ProfileService
	dashboard *services.DashboardService
}

func NewAdminHandler(profiles services.ProfileService, dashboard *services.DashboardService) *AdminHandler {
	return &AdminHandler{profiles: profiles, dashboard: dashboard}
}

func (h *AdminHandler) ListProfiles(c *fiber.Ctx) error {
	profiles, err := h.profiles.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return writeData(c, fiber.StatusOK, profiles)
}

// SearchProfiles filters by exact blood type and a location substring.
func (h *AdminHandler) SearchProfiles(c *fiber.Ctx) error {
	bloodType := c.Query("bloodType")
	if bloodType == "" {
		return badRequest(c, "bloodType query parameter is required")
	}

	profiles, err := h.profiles.Search(c.UserContext(), bloodType, c.Query("location"))
	if err != nil {
		return writeError(c, err)
	}
	return writeData(c, fiber.StatusOK, profiles)
}

func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	stats, err := h.dashboard.Stats(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return writeData(c, fiber.StatusOK, stats)
}
