package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/freight-ops/internal/api/http/handlers"
	"github.com/spec-kit/freight-ops/internal/auth"
	"github.com/spec-kit/freight-ops/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Operators      *handlers.OperatorsHandler
	Shipments      *handlers.ShipmentsHandler
	Commissions    *handlers.CommissionsHandler
	Reports        *handlers.ReportsHandler
	Contacts       *handlers.ContactsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Operators.Login)
	authGroup.Post("/password/reset/request", cfg.Operators.RequestPasswordReset)
	authGroup.Post("/password/reset/confirm", cfg.Operators.ConfirmPasswordReset)

	authProtected := authGroup.Group("", cfg.AuthMiddleware.Handle)
	authProtected.Get("/me", cfg.Operators.Me)
	authProtected.Post("/password/change", cfg.Operators.ChangePassword)
	authProtected.Post("/operators", auth.RequireRole(domain.RoleAdmin), cfg.Operators.Register)

	shipments := app.Group("/shipments", cfg.AuthMiddleware.Handle, auth.RequirePageAccess())
	shipments.Post("", auth.RequireRole(domain.RoleAdmin, domain.RoleSales), cfg.Shipments.Create)
	shipments.Get("", cfg.Shipments.List)
	shipments.Get("/:id", cfg.Shipments.Get)
	shipments.Patch("/:id", cfg.Shipments.Update)
	shipments.Post("/:id/stage", auth.RequireRole(domain.RoleAdmin, domain.RoleSales, domain.RolePricing, domain.RoleOps), cfg.Shipments.Transition)
	shipments.Post("/:id/revert", cfg.Shipments.Revert)
	shipments.Post("/:id/collect", cfg.Shipments.CollectPayment)
	shipments.Post("/:id/agent-paid", cfg.Shipments.PayAgent)
	shipments.Post("/:id/lock", cfg.Shipments.Lock)
	shipments.Delete("/:id/lock", cfg.Shipments.Unlock)

	rules := app.Group("/commission-rules", cfg.AuthMiddleware.Handle, auth.RequirePageAccess())
	rules.Put("", auth.RequireRole(domain.RoleAdmin), cfg.Commissions.UpsertRule)
	rules.Get("", auth.RequireRole(domain.RoleAdmin, domain.RoleFinance), cfg.Commissions.ListRules)
	rules.Post("/breakdown", auth.RequireRole(domain.RoleAdmin, domain.RoleFinance), cfg.Commissions.Breakdown)
	rules.Post("/payouts", auth.RequireRole(domain.RoleAdmin, domain.RoleFinance), cfg.Commissions.Payouts)
	rules.Get("/:salesperson", auth.RequireRole(domain.RoleAdmin, domain.RoleFinance), cfg.Commissions.GetRule)
	rules.Delete("/:salesperson", auth.RequireRole(domain.RoleAdmin), cfg.Commissions.DeactivateRule)

	reports := app.Group("/reports", cfg.AuthMiddleware.Handle, auth.RequirePageAccess())
	reports.Get("/payables", cfg.Reports.Payables)
	reports.Get("/collections", cfg.Reports.Collections)
	reports.Get("/commission-estimates", cfg.Reports.CommissionEstimates)

	contacts := app.Group("/contacts", cfg.AuthMiddleware.Handle, auth.RequirePageAccess())
	contacts.Post("", cfg.Contacts.Create)
	contacts.Get("", cfg.Contacts.List)
	contacts.Get("/:id", cfg.Contacts.Get)
	contacts.Patch("/:id/status", cfg.Contacts.UpdateStatus)
	contacts.Post("/:id/calls", cfg.Contacts.LogCall)
}
