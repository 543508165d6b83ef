package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tasktracker/internal/config"
	"tasktracker/internal/db"
	httpServer "tasktracker/internal/http"
	"tasktracker/internal/http/handlers"
	"tasktracker/internal/http/middleware"
	"tasktracker/internal/logger"
	"tasktracker/internal/repository"
	"tasktracker/internal/service"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogJSON)

	dbPool := db.Connect(cfg.DatabaseURL)
	defer dbPool.Close()

	migrateCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := db.Migrate(migrateCtx, dbPool); err != nil {
		cancel()
		logger.Fatal("migrations failed", "error", err)
	}
	cancel()

	passwords, err := service.NewPasswordVerifier(cfg.PasswordMode)
	if err != nil {
		logger.Fatal("password mode", "error", err)
	}

	users := repository.NewUserRepository(dbPool)
	tasks := repository.NewTaskRepository(dbPool)
	audit := repository.NewAuditRepository(dbPool)

	codec := service.NewSessionCodec(cfg.SessionSecret, cfg.SessionTTL)
	cookie := handlers.CookieConfig{Name: cfg.SessionCookie}
	if cfg.SessionSecret != "" {
		cookie.MaxAge = int(cfg.SessionTTL.Seconds())
	}

	h := &handlers.Handler{
		Auth:   service.NewAuthService(users, passwords),
		Tasks:  service.NewTaskService(tasks, cfg.EnforceTaskOwnership),
		Admin:  service.NewAdminService(users, tasks, cfg.AdminEmail, cfg.AdminPassword),
		Audit:  service.NewAuditService(audit),
		Codec:  codec,
		Cookie: cookie,
	}

	limiter := middleware.NewRedisRateLimiter(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer limiter.Close()

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	err = httpServer.RegisterRoutes(r, httpServer.RouteConfig{
		Handler:        h,
		Health:         handlers.NewHealthHandler(dbPool, cfg.AppVersion, limiter.Enabled()),
		Resolver:       service.NewIdentityResolver(users, codec),
		Limiter:        limiter,
		AuthRateLimit:  cfg.AuthRateLimit,
		AuthRateWindow: cfg.AuthRateWindow,
	})
	if err != nil {
		logger.Fatal("failed to register routes", "error", err)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.AppPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Info("server started", "port", cfg.AppPort, "version", cfg.AppVersion,
			"signed_sessions", cfg.SessionSecret != "", "password_mode", cfg.PasswordMode,
			"rate_limiter", limiter.Enabled())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
