package routes

import (
	"time"

	"github.com/civicfix/civicfix-backend/internal/config"
	"github.com/civicfix/civicfix-backend/internal/handlers"
	"github.com/civicfix/civicfix-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	complaintHandler *handlers.ComplaintHandler,
	notificationHandler *handlers.NotificationHandler,
	healthHandler *handlers.HealthHandler,
) {
	// Uploaded complaint images are public static assets.
	app.Static("/uploads", cfg.UploadsDir)

	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth — public, with a stricter limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/register-admin", authHandler.RegisterAdmin)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)

	// Users
	users := api.Group("/users", middleware.JWTProtected(cfg))
	users.Get("/profile", userHandler.Profile)
	users.Put("/profile", userHandler.UpdateProfile)
	users.Get("/", middleware.AdminRequired(), userHandler.List)

	// Complaints. /stats must be registered before /:id.
	complaints := api.Group("/complaints", middleware.JWTProtected(cfg))
	complaints.Post("/", complaintHandler.Create)
	complaints.Get("/", complaintHandler.List)
	complaints.Get("/stats", middleware.AdminRequired(), complaintHandler.Stats)
	complaints.Get("/:id", complaintHandler.GetByID)
	complaints.Put("/:id", middleware.AdminRequired(), complaintHandler.UpdateStatus)
	complaints.Delete("/:id", middleware.AdminRequired(), complaintHandler.Delete)

	// Notifications — always scoped to the caller, no admin surface.
	notifications := api.Group("/notifications", middleware.JWTProtected(cfg))
	notifications.Get("/", notificationHandler.List)
	notifications.Get("/unread-count", notificationHandler.UnreadCount)
	notifications.Put("/mark-all-read", notificationHandler.MarkAllRead)
	notifications.Put("/:id/read", notificationHandler.MarkRead)
	notifications.Delete("/:id", notificationHandler.Delete)
}
