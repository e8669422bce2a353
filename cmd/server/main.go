package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	httpAdapter "github.com/ronesego-ui/captop/internal/adapter/http"
	"github.com/ronesego-ui/captop/internal/adapter/http/handler"
	postgresRepo "github.com/ronesego-ui/captop/internal/adapter/repository/postgres"
	redisRepo "github.com/ronesego-ui/captop/internal/adapter/repository/redis"
	"github.com/ronesego-ui/captop/internal/engine"
	"github.com/ronesego-ui/captop/internal/infrastructure/config"
	"github.com/ronesego-ui/captop/internal/infrastructure/logger"
	"github.com/ronesego-ui/captop/internal/infrastructure/metrics"
	"github.com/ronesego-ui/captop/internal/infrastructure/postgres"
	"github.com/ronesego-ui/captop/internal/infrastructure/redis"
	"github.com/ronesego-ui/captop/internal/macro"
	"github.com/ronesego-ui/captop/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	log.Logger = appLogger
	zerolog.DefaultContextLogger = &appLogger

	baseDate, err := time.Parse("2006-01-02", cfg.GameBaseDate)
	if err != nil {
		log.Fatal().Err(err).Str("value", cfg.GameBaseDate).Msg("invalid GAME_BASE_DATE")
	}

	ctx := context.Background()

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, "internal/infrastructure/postgres/migrations"); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Macro index feed: BCCh client with a Redis-backed stale fallback
	bcch := macro.NewBCChClient(cfg.BCChURL, cfg.BCChUser, cfg.BCChPassword, appLogger)
	macroCache := redisRepo.NewMacroCache(redisClient)
	macroBuilder := macro.NewBuilder(bcch, macroCache, cfg.MacroCacheTTL, macro.RateTable{
		VATRate:       decimal.NewFromFloat(cfg.VATRate),
		IncomeTaxRate: decimal.NewFromFloat(cfg.IncomeTaxRate),
	}, baseDate, appLogger)

	// Initialize repositories and use case
	gameRepo := postgresRepo.NewGameRepository(pool)
	idGen := postgresRepo.NewULIDGenerator()
	m := metrics.New()

	simulationUC := usecase.NewSimulationUseCase(
		gameRepo,
		macroBuilder,
		engine.NewComposer(engine.DefaultParams()),
		idGen,
		m,
		appLogger,
	)

	// Initialize handlers
	companyHandler := handler.NewCompanyHandler(simulationUC)
	periodHandler := handler.NewPeriodHandler(simulationUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		CompanyHandler: companyHandler,
		PeriodHandler:  periodHandler,
		HealthHandler:  healthHandler,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
