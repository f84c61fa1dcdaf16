package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/inspection-service/internal/api/http/handlers"
	"github.com/spec-kit/inspection-service/internal/auth"
	"github.com/spec-kit/inspection-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Departments    *handlers.DepartmentsHandler
	Locations      *handlers.LocationsHandler
	Inspections    *handlers.InspectionsHandler
	Users          *handlers.UsersHandler
	Admin          *handlers.AdminHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Writes are role-gated here as
// advisory enforcement; the gateway surface re-checks the caller on
// its own.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/signup", cfg.Auth.SignUp)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", cfg.Auth.Logout)
	authGroup.Post("/password/reset/request", cfg.Auth.RequestPasswordReset)
	authGroup.Post("/password/reset/confirm", cfg.Auth.ConfirmPasswordReset)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, cfg.Auth.Me)

	api := app.Group("/api", cfg.AuthMiddleware.Handle, auth.RequireVerified())

	api.Get("/departments", cfg.Departments.List)
	api.Post("/departments", auth.RequireRole(domain.RoleAdmin), cfg.Departments.Create)
	api.Patch("/departments/:id", auth.RequireRole(domain.RoleAdmin), cfg.Departments.Update)
	api.Delete("/departments/:id", auth.RequireRole(domain.RoleAdmin), cfg.Departments.Delete)

	api.Get("/locations", cfg.Locations.List)
	api.Post("/locations", auth.RequireRole(domain.RoleAdmin, domain.RoleAssetOfficer), cfg.Locations.Create)
	api.Patch("/locations/:id", auth.RequireRole(domain.RoleAdmin, domain.RoleAssetOfficer), cfg.Locations.Update)
	api.Delete("/locations/:id", auth.RequireRole(domain.RoleAdmin, domain.RoleAssetOfficer), cfg.Locations.Delete)

	api.Get("/inspections", cfg.Inspections.List)
	api.Patch("/inspections/:id", auth.RequireRole(domain.RoleAdmin, domain.RoleAssetOfficer), cfg.Inspections.Update)
	api.Post("/inspections/:id/assign", auth.RequireRole(domain.RoleAdmin, domain.RoleAuditor), cfg.Inspections.AssignSelf)
	api.Post("/inspections/:id/toggle-status", auth.RequireRole(domain.RoleAdmin, domain.RoleAssetOfficer, domain.RoleAuditor), cfg.Inspections.ToggleStatus)

	api.Patch("/profile", cfg.Users.UpdateProfile)
	api.Get("/users", auth.RequireRole(domain.RoleAdmin), cfg.Users.List)
	api.Post("/users/:uid/verify", auth.RequireRole(domain.RoleAdmin), cfg.Users.Verify)
	api.Patch("/users/:uid", auth.RequireRole(domain.RoleAdmin), cfg.Users.Update)
	api.Put("/users/:uid/roles", auth.RequireRole(domain.RoleAdmin), cfg.Users.SetRoles)

	// Gateway surface resolves its own session and enforces its own
	// response contract; no shared middleware in front of it.
	admin := app.Group("/admin")
	admin.Delete("/users/:uid", cfg.Admin.DeleteUser)
	admin.Post("/users/:uid/set-claims", cfg.Admin.SetClaims)
}
