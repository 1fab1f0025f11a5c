package routes

import (
	"time"

	"github.com/Cyl94700/P9-Op-Cl/internal/config"
	"github.com/Cyl94700/P9-Op-Cl/internal/handlers"
	"github.com/Cyl94700/P9-Op-Cl/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	feedHandler *handlers.FeedHandler,
	ticketHandler *handlers.TicketHandler,
	reviewHandler *handlers.ReviewHandler,
	followHandler *handlers.FollowHandler,
) {
	// Uploaded images (ticket covers, profile photos)
	app.Static("/static/img", cfg.UploadDir)

	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth — public, with a stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)

	// Everything below requires an authenticated user
	protected := api.Group("", middleware.JWTProtected(cfg))

	protected.Get("/feed", feedHandler.GetFeed)
	protected.Get("/feed/tickets", feedHandler.GetTicketFeed)
	protected.Get("/feed/reviews", feedHandler.GetReviewFeed)

	protected.Post("/tickets", ticketHandler.Create)
	protected.Get("/tickets/:id", ticketHandler.Get)
	protected.Put("/tickets/:id", ticketHandler.Update)
	protected.Delete("/tickets/:id", ticketHandler.Delete)
	protected.Post("/tickets/:id/reviews", reviewHandler.Create)

	protected.Post("/reviews", reviewHandler.CreateWithTicket)
	protected.Get("/reviews/:id", reviewHandler.Get)
	protected.Put("/reviews/:id", reviewHandler.Update)
	protected.Delete("/reviews/:id", reviewHandler.Delete)

	protected.Get("/subscriptions", followHandler.List)
	protected.Post("/subscriptions", followHandler.Follow)
	protected.Delete("/subscriptions/:id", followHandler.Unfollow)

	protected.Post("/users/me/photo", authHandler.UploadProfilePhoto)
}
