package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/invenpulse/internal/api/http"
	"github.com/spec-kit/invenpulse/internal/api/http/handlers"
	"github.com/spec-kit/invenpulse/internal/auth"
	"github.com/spec-kit/invenpulse/internal/config"
	"github.com/spec-kit/invenpulse/internal/events"
	"github.com/spec-kit/invenpulse/internal/observability"
	"github.com/spec-kit/invenpulse/internal/persistence"
	"github.com/spec-kit/invenpulse/internal/repository"
	"github.com/spec-kit/invenpulse/internal/service"
	"github.com/spec-kit/invenpulse/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()

	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	if err != nil {
		logger.Fatal("failed to init token manager", zap.Error(err))
	}
	throttle := auth.NewLoginThrottle(redis.Client, logger, cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginWindow())

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	productRepo := repository.NewProductRepository(pool)
	saleRepo := repository.NewSaleRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		UserRepo:   userRepo,
		Tokens:     tokens,
		Throttle:   throttle,
		Dispatcher: dispatcher,
	})
	userService := service.NewUserService(userRepo, dispatcher)
	productService := service.NewProductService(productRepo)
	saleService := service.NewSaleService(saleRepo, productRepo, dispatcher)
	auditService := service.NewAuditService(dispatcher, logger)

	worker.StartAuditWorker(auditService)

	gate := auth.NewGate(tokens, logger, metrics, dispatcher)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:   handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:     handlers.NewAuthHandler(authService),
		Users:    handlers.NewUsersHandler(userService),
		Products: handlers.NewProductsHandler(productService),
		Sales:    handlers.NewSalesHandler(saleService),
		Gate:     gate,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
