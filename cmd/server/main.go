package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"twofactor-vault/internal/config"
	"twofactor-vault/internal/database"
	"twofactor-vault/internal/handlers"
	"twofactor-vault/internal/middleware"
	"twofactor-vault/internal/repositories"
	"twofactor-vault/internal/services"
	"twofactor-vault/pkg/logging"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	logging.Setup()

	cfg := config.Load()

	db, err := database.Initialize(cfg)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}

	// Repositories
	groupRepo := repositories.NewGroupRepository(db)
	accountRepo := repositories.NewOtpAccountRepository(db)
	userRepo := repositories.NewUserRepository(db)
	auditRepo := repositories.NewAuditLogRepository(db)

	// Services
	metrics := services.NewPrometheusMetrics()
	auditService := services.NewAuditService(auditRepo)
	passwordService := services.NewPasswordService(cfg.Security.BCryptCost)
	tokenService := services.NewTokenService(&cfg.JWT)
	policy := services.NewOwnerPolicy()
	groupService := services.NewGroupService(groupRepo, accountRepo, policy, auditService, metrics, slog.Default())
	authService := services.NewAuthService(userRepo, passwordService, tokenService, auditService, metrics, slog.Default())

	// Handlers
	groupHandler := handlers.NewGroupHandler(groupService)
	authHandler := handlers.NewAuthHandler(authService)
	healthHandler := handlers.NewHealthCheckHandler(db)

	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler

	e.Use(middleware.RequestID())
	e.Use(middleware.PanicRecovery())
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.RateLimiterWithConfig(cfg.Security.RateLimitPerSecond, cfg.Security.RateLimitBurst))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.Server.CORSAllowOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "Accept-Language"},
	}))

	// Public routes
	e.GET("/health", healthHandler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.POST("/auth/login", authHandler.Login)

	// Authenticated routes
	api := e.Group("", middleware.RequireAuth(tokenService))
	api.GET("/groups", groupHandler.ListGroups)
	api.POST("/groups", groupHandler.CreateGroup)
	api.GET("/groups/:id", groupHandler.GetGroup)
	api.PUT("/groups/:id", groupHandler.UpdateGroup)
	api.DELETE("/groups/:id", groupHandler.DeleteGroup)
	api.POST("/groups/:id/assign", groupHandler.AssignAccounts)
	api.GET("/groups/:id/accounts", groupHandler.GetGroupAccounts)

	// Start server
	go func() {
		addr := cfg.Server.Host + ":" + cfg.Server.Port
		slog.Info("Server starting", "address", addr, "environment", cfg.Server.Environment)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped")
}
