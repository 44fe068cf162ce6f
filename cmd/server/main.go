// @title         user-account API
// @version       1.0
// @description   User registration, self-service profile and health check.
// @BasePath      /
// @schemes       http
// @host          localhost:8080
// @securityDefinitions.apikey BasicCredentials
// @in header
// @name Authorization
// @description Literal "email:password" (not base64).
package main

import (
	"context"
	"log"
	"net"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	swagger "github.com/gofiber/swagger"
	"go.uber.org/zap"

	_ "github.com/artem13815/useraccount/docs"

	// internal imports
	"github.com/artem13815/useraccount/api/http"
	"github.com/artem13815/useraccount/api/http/handlers"
	"github.com/artem13815/useraccount/pkg/config"
	"github.com/artem13815/useraccount/pkg/health"
	healthpg "github.com/artem13815/useraccount/pkg/health/checkers"
	"github.com/artem13815/useraccount/pkg/logger"
	pgrepo "github.com/artem13815/useraccount/pkg/repository/postgres"
	"github.com/artem13815/useraccount/pkg/security/basic"
	"github.com/artem13815/useraccount/pkg/security/password"
	"github.com/artem13815/useraccount/pkg/server"
	"github.com/artem13815/useraccount/pkg/storage/postgres"
	"github.com/artem13815/useraccount/pkg/user"
)

func main() {
	// Load configuration from env/.env
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zl, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if err := run(cfg, zl); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Config, zl *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		return err
	}

	// Connect to PostgreSQL and sync the schema
	pool, err := postgres.Connect(ctx, cfg.DSN(), cfg.DBMaxConns)
	if err != nil {
		return err
	}
	defer pool.Close()
	if err := postgres.Migrate(ctx, pool); err != nil {
		return err
	}

	// Wire dependencies
	userRepo := pgrepo.NewUserRepository(pool)
	userUC := user.NewService(userRepo, password.NewBcryptHasher(cfg.BcryptCost))
	userHandler := handlers.NewUserHandler(userUC, loc, zl)

	readiness := health.NewService(healthpg.NewPostgresChecker(pool))
	healthHandler := handlers.NewHealthHandler(readiness, zl)

	authMW := basic.NewAuthMiddleware(userUC, zl)

	app := http.NewApp(zl)
	http.Register(app, userHandler, healthHandler, authMW)
	if cfg.SwaggerEnabled {
		app.Get("/swagger/*", swagger.HandlerDefault)
	}

	var fallback string
	if cfg.FallbackPort != "" {
		fallback = net.JoinHostPort("", cfg.FallbackPort)
	}
	ln, err := server.Listen(net.JoinHostPort("", cfg.Port), fallback)
	if err != nil {
		return err
	}
	zl.Info("HTTP server listening", zap.String("addr", ln.Addr().String()))

	errCh := make(chan error, 1)
	go func() { errCh <- app.Listener(ln) }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zl.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return app.ShutdownWithContext(shutdownCtx)
}
