package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/donor-registry/internal/config"
	"github.com/ahmetcoskunkizilkaya/donor-registry/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/donor-registry/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/donor-registry/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/donor-registry/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/prometheus/client_golang/prometheus"
)

type Handlers struct {
	Health  *handlers.HealthHandler
	Legal   *handlers.LegalHandler
	Webhook *handlers.WebhookHandler
	Me      *handlers.MeHandler
	Donor   *handlers.DonorHandler
	Admin   *handlers.AdminHandler
}

func Setup(app *fiber.App, cfg *config.Config, roles services.RoleQuery, gatherer prometheus.Gatherer, h Handlers) {
	app.Get("/metrics", middleware.MetricsAuth(cfg), adaptor.HTTPHandler(metrics.Handler(gatherer)))

	api := app.Group("/api")

	// Webhooks are signed, and the provider retries in bursts; keep them
	// outside the per-IP limiter.
	api.Post("/webhooks/clerk", h.Webhook.HandleClerk)

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", h.Health.Check)
	api.Get("/legal/privacy", h.Legal.PrivacyPolicy)
	api.Get("/legal/terms", h.Legal.TermsOfService)

	// Protected routes (JWT required) - middleware per route/group so the
	// public routes above stay reachable without a token.
	api.Get("/me", middleware.JWTProtected(cfg), h.Me.Me)

	donors := api.Group("/donor-profiles", middleware.JWTProtected(cfg))
	donors.Post("/", h.Donor.Create)
	donors.Get("/me", h.Donor.GetMine)
	donors.Get("/:id", h.Donor.Get)
	donors.Patch("/:id", h.Donor.Edit)
	donors.Delete("/:id", h.Donor.Delete)
	donors.Post("/:id/donations", h.Donor.RecordDonation)

	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminRequired(roles, cfg))
	admin.Get("/donor-profiles", h.Admin.ListProfiles)
	admin.Get("/donor-profiles/search", h.Admin.SearchProfiles)
	admin.Get("/dashboard", middleware.SuperAdminRequired(roles), h.Admin.Dashboard)
}
