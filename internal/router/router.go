package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hireflowhq/hireflow-api/internal/config"
	"github.com/hireflowhq/hireflow-api/internal/handler"
	"github.com/hireflowhq/hireflow-api/internal/middleware"
	"github.com/hireflowhq/hireflow-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	RoundHandler      *handler.RoundHandler
	InterviewHandler  *handler.InterviewHandler
	ApplicantHandler  *handler.ApplicantHandler
	SettingsHandler   *handler.SettingsHandler
	EmailQueueHandler *handler.EmailQueueHandler
	FeedHandler       *handler.FeedHandler
	JWTMiddleware     fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	// Common v1 group for health & headers
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	app.Get("/metrics", observability.MetricsHandler())

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	staffOnly := middleware.RequireRole(middleware.RoleHR, middleware.RoleAdmin)
	panelOrStaff := middleware.RequireRole(middleware.RoleHR, middleware.RoleAdmin, middleware.RoleInterviewer)

	// Interview rounds
	if deps.RoundHandler != nil {
		rounds := app.Group("/api/v1/interview-rounds", jwtMiddleware, staffOnly)
		deps.RoundHandler.Register(rounds)
	}

	// Interviews & feedback
	if deps.InterviewHandler != nil {
		interviews := app.Group("/api/v1/interviews", jwtMiddleware, panelOrStaff)
		deps.InterviewHandler.Register(interviews)
	}

	// Applicants & dashboard summary
	if deps.ApplicantHandler != nil {
		applicants := app.Group("/api/v1/applicants", jwtMiddleware, staffOnly)
		deps.ApplicantHandler.Register(applicants)
	}

	// HR settings singleton
	if deps.SettingsHandler != nil {
		settings := app.Group("/api/v1/settings", jwtMiddleware, middleware.RequireRole(middleware.RoleAdmin))
		deps.SettingsHandler.Register(settings)
	}

	// Outbound mail queue
	if deps.EmailQueueHandler != nil {
		emails := app.Group("/api/v1/email-queue", jwtMiddleware, staffOnly)
		deps.EmailQueueHandler.Register(emails)
	}

	// Live event feed
	if deps.FeedHandler != nil {
		ws := app.Group("/ws")
		deps.FeedHandler.Register(ws)
	}
}
