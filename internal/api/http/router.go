package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/lead-service/internal/api/http/handlers"
	"github.com/spec-kit/lead-service/internal/auth"
	"github.com/spec-kit/lead-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Leads          *handlers.LeadsHandler
	PublicIntake   *handlers.PublicIntakeHandler
	Properties     *handlers.PropertiesHandler
	Reports        *handlers.ReportsHandler
	Integrations   *handlers.IntegrationsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics-lite", cfg.Health.MetricsLite)

	// Unauthenticated ingestion surfaces guarded by shared keys.
	app.Post("/public/embed/leads", cfg.PublicIntake.EmbedLead)
	app.Post("/public/chat/messages", cfg.PublicIntake.ChatMessage)
	app.Post("/webhooks/:channel", cfg.PublicIntake.WebhookLead)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)

	authed := app.Group("", cfg.AuthMiddleware.Handle)

	leads := authed.Group("/leads", auth.RequireRole())
	leads.Post("", cfg.Leads.CreateLead)
	leads.Get("", cfg.Leads.ListLeads)
	leads.Get("/:id", cfg.Leads.GetLead)
	leads.Get("/:id/recommendations", cfg.Leads.Recommendations)
	leads.Patch("/:id", auth.RequireRole(domain.UserRoleAdmin, domain.UserRoleManager), cfg.Leads.UpdateLead)

	properties := authed.Group("/properties")
	properties.Get("", auth.RequireRole(), cfg.Properties.ListProperties)
	properties.Get("/:id", auth.RequireRole(), cfg.Properties.GetProperty)
	properties.Post("", auth.RequireRole(domain.UserRoleAdmin, domain.UserRoleManager), cfg.Properties.CreateProperty)
	properties.Put("/:id", auth.RequireRole(domain.UserRoleAdmin, domain.UserRoleManager), cfg.Properties.UpdateProperty)

	managerOnly := auth.RequireRole(domain.UserRoleAdmin, domain.UserRoleManager)
	authed.Get("/analytics/summary", managerOnly, cfg.Reports.AnalyticsSummary)
	authed.Post("/reports/scheduled", managerOnly, cfg.Reports.CreateScheduledReport)
	authed.Get("/reports/scheduled", managerOnly, cfg.Reports.ListScheduledReports)

	adminOnly := auth.RequireRole(domain.UserRoleAdmin)
	authed.Get("/audit", adminOnly, cfg.Reports.ListAudit)
	authed.Put("/integrations", adminOnly, cfg.Integrations.UpsertIntegration)
	authed.Get("/integrations", adminOnly, cfg.Integrations.ListIntegrations)
}
