package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/invenpulse/internal/api/http/handlers"
	"github.com/spec-kit/invenpulse/internal/auth"
	"github.com/spec-kit/invenpulse/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health   *handlers.HealthHandler
	Auth     *handlers.AuthHandler
	Users    *handlers.UsersHandler
	Products *handlers.ProductsHandler
	Sales    *handlers.SalesHandler
	Gate     *auth.Gate
}

// RegisterRoutes wires HTTP routes. Each protected route declares its required
// roles explicitly at the gate; handlers never re-check authorization.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/password/change", cfg.Gate.Require(), cfg.Auth.ChangePassword)

	api.Get("/me", cfg.Gate.Require(), cfg.Auth.Me)

	anyRole := []domain.Role{domain.RoleUser, domain.RoleAdmin}

	products := api.Group("/products")
	products.Get("/", cfg.Gate.Require(anyRole...), cfg.Products.List)
	products.Get("/:id", cfg.Gate.Require(anyRole...), cfg.Products.Get)
	products.Post("/", cfg.Gate.Require(domain.RoleAdmin), cfg.Products.Create)
	products.Put("/:id", cfg.Gate.Require(domain.RoleAdmin), cfg.Products.Update)
	products.Delete("/:id", cfg.Gate.Require(domain.RoleAdmin), cfg.Products.Delete)

	sales := api.Group("/sales")
	sales.Get("/", cfg.Gate.Require(anyRole...), cfg.Sales.List)
	sales.Get("/count", cfg.Gate.Require(anyRole...), cfg.Sales.Count)
	sales.Post("/", cfg.Gate.Require(anyRole...), cfg.Sales.Record)

	users := api.Group("/users")
	users.Get("/", cfg.Gate.Require(domain.RoleAdmin), cfg.Users.List)
	users.Put("/:id/role", cfg.Gate.Require(domain.RoleAdmin), cfg.Users.SetRole)
}
