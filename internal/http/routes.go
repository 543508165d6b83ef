package http

import (
	"time"

	"tasktracker/internal/http/handlers"
	"tasktracker/internal/http/middleware"
	"tasktracker/internal/web"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouteConfig carries everything RegisterRoutes wires together.
type RouteConfig struct {
	Handler  *handlers.Handler
	Health   *handlers.HealthHandler
	Resolver middleware.IdentityResolver
	Limiter  *middleware.RateLimiter

	AuthRateLimit  int
	AuthRateWindow time.Duration
}

func RegisterRoutes(r *gin.Engine, cfg RouteConfig) error {
	tmpl, err := web.Templates()
	if err != nil {
		return err
	}
	r.SetHTMLTemplate(tmpl)
	r.Use(middleware.RequestLog(), middleware.Metrics())

	h := cfg.Handler

	// Health checks and metrics (no session, no rate limiting)
	r.GET("/health", cfg.Health.Health)
	r.GET("/healthz", cfg.Health.Liveness)
	r.GET("/readyz", cfg.Health.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	app := r.Group("/")
	app.Use(middleware.Session(cfg.Resolver, h.Cookie.Name))

	authRL := cfg.Limiter.Limit("auth", cfg.AuthRateLimit, cfg.AuthRateWindow)

	// Auth
	app.GET("/", h.LoginPage)
	app.POST("/login", authRL, h.Login)
	app.POST("/register", authRL, h.Register)
	app.GET("/logout", h.Logout)

	// Pages
	pages := app.Group("/")
	pages.Use(middleware.RequireUser())
	{
		pages.GET("/dashboard", h.Dashboard)
		pages.GET("/schedule", h.Schedule)
		pages.GET("/settings", h.Settings)
		pages.POST("/tasks/add", h.AddTask)
	}

	// Task mutations do not require a session
	app.GET("/tasks/complete/:id", h.CompleteTask)
	app.GET("/tasks/delete/:id", h.DeleteTask)

	// Admin
	app.GET("/admin", h.AdminDashboard)
	app.POST("/admin/verify-password", h.VerifyAdminPassword)
	app.GET("/admin/api/users-with-stats", h.UsersWithStats)
	app.GET("/admin/api/user/:id/tasks", h.UserTasks)

	return nil
}
