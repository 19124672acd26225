package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/http/handlers"
	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/config"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Tickets        *handlers.TicketsHandler
	Chat           *handlers.ChatHandler
	Admin          *handlers.AdminHandler
	AuthMiddleware *auth.Middleware
	RateLimiter    *RateLimiter
	RateLimit      config.RateLimitConfig
}

// RegisterRoutes wires the HTTP surface. End-user routes compose the
// authentication gate alone; admin routes compose it with the admin
// gate.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api", cfg.RateLimiter.Limit("api", cfg.RateLimit.MaxRequests))

	authGroup := api.Group("/auth")
	authLimit := cfg.RateLimiter.Limit("auth", cfg.RateLimit.AuthMaxRequests)
	authGroup.Post("/signup", authLimit, cfg.Auth.Signup)
	authGroup.Post("/login", authLimit, cfg.Auth.Login)
	authGroup.Post("/admin/login", authLimit, cfg.Auth.AdminLogin)
	authGroup.Post("/refresh", cfg.AuthMiddleware.Authenticate, cfg.Auth.Refresh)

	user := api.Group("/user", cfg.AuthMiddleware.Authenticate, auth.RequireUser())
	user.Get("/profile", cfg.Users.GetProfile)
	user.Put("/profile", cfg.Users.UpdateProfile)

	tickets := api.Group("/tickets", cfg.AuthMiddleware.Authenticate, auth.RequireUser())
	tickets.Get("/", cfg.Tickets.List)
	tickets.Post("/", cfg.Tickets.Create)
	tickets.Get("/stats", cfg.Tickets.Stats)
	tickets.Get("/:id", cfg.Tickets.Get)
	tickets.Put("/:id", cfg.Tickets.Update)
	tickets.Delete("/:id", cfg.Tickets.Delete)

	chat := api.Group("/chat", cfg.AuthMiddleware.Authenticate, auth.RequireUser())
	chat.Get("/messages", cfg.Chat.List)
	chat.Post("/messages", cfg.Chat.Send)
	chat.Delete("/messages", cfg.Chat.Clear)
	chat.Get("/poll", cfg.Chat.Poll)

	admin := api.Group("/admin", cfg.AuthMiddleware.Authenticate, auth.RequireAdmin())
	admin.Get("/dashboard/stats", cfg.Admin.DashboardStats)
	admin.Get("/tickets", cfg.Admin.ListTickets)
	admin.Get("/tickets/:id", cfg.Admin.GetTicket)
	admin.Put("/tickets/:id/status", cfg.Admin.UpdateTicketStatus)
	admin.Get("/users", cfg.Admin.ListUsers)
	admin.Put("/users/:id/status", cfg.Admin.UpdateUserStatus)
	admin.Get("/chats", cfg.Admin.ListChatThreads)
	admin.Get("/chats/:userId", cfg.Admin.GetChatTranscript)
}
