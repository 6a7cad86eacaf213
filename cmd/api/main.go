package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/CameronXie/mealserve/internal/account"
	"github.com/CameronXie/mealserve/internal/api/rest"
	"github.com/CameronXie/mealserve/internal/api/rest/handlers"
	"github.com/CameronXie/mealserve/internal/api/rest/middlewares"
	"github.com/CameronXie/mealserve/internal/config"
	"github.com/CameronXie/mealserve/internal/infoprovider"
	"github.com/CameronXie/mealserve/internal/keyfetcher"
	"github.com/CameronXie/mealserve/internal/ordering"
	"github.com/CameronXie/mealserve/internal/repository/postgres"
	"github.com/CameronXie/mealserve/internal/telemetry"
	"github.com/CameronXie/mealserve/internal/version"
)

const (
	serviceName = "mealserve"

	ReadTimeout  = 5 * time.Second
	WriteTimeout = 10 * time.Second
	IdleTimeout  = 120 * time.Second
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(
		slog.String("version", version.Version),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	shutdownTracing, err := telemetry.Setup(ctx, cfg.OTLPEndpoint, serviceName, version.Version)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTracing(context.WithoutCancel(ctx)); err != nil {
			logger.Error("failed to shut down tracing", "error", err)
		}
	}()

	pool, err := pgxpool.New(ctx, cfg.Postgres.DSN())
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		return err
	}

	accounts := postgres.NewAccountRepository(pool)
	enforcer, err := newEnforcer(infoprovider.NewAccountInfoProvider(accounts), logger)
	if err != nil {
		return err
	}

	orderingService := ordering.NewService(postgres.NewTransactor(pool), logger)
	accountService := account.NewService(
		accounts,
		logger,
		account.WithInitialPoint(cfg.SignupInitialPoint),
		account.WithBcryptCost(cfg.BcryptCost),
	)

	router := rest.NewRouter(&rest.RouterConfig{
		SignupHandler:            handlers.NewSignupHandler(accountService, logger),
		PlaceOrderHandler:        handlers.NewPlaceOrderHandler(orderingService, logger),
		ListPendingOrdersHandler: handlers.NewListPendingOrdersHandler(orderingService, logger),
		CompleteOrdersHandler:    handlers.NewCompleteOrdersHandler(orderingService, logger),
		RequestLogger:            middlewares.NewRequestLogger(logger),
		AuthorisationMiddleware: middlewares.NewJWTAuthorizationMiddleware(
			enforcer,
			keyfetcher.Cached(publicKeySource(cfg.JWT)),
			cfg.JWT.Issuer,
			cfg.JWT.Audience,
			logger,
		),
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  ReadTimeout,
		WriteTimeout: WriteTimeout,
		IdleTimeout:  IdleTimeout,
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("api_listening", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("api_shutting_down", "timeout", cfg.ShutdownTimeout)

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// publicKeySource prefers the PEM file over the Base64 environment variable.
func publicKeySource(cfg config.JWT) keyfetcher.From {
	if cfg.PublicKeyFile != "" {
		return keyfetcher.FromFile(cfg.PublicKeyFile)
	}

	return keyfetcher.FromBase64Env(cfg.PublicKeyEnv)
}
