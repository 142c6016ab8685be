package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	httpAdapter "github.com/mikey2shiesty/ZapSplit-sub002/internal/adapter/http"
	"github.com/mikey2shiesty/ZapSplit-sub002/internal/adapter/http/handler"
	"github.com/mikey2shiesty/ZapSplit-sub002/internal/adapter/http/middleware"
	postgresRepo "github.com/mikey2shiesty/ZapSplit-sub002/internal/adapter/repository/postgres"
	redisRepo "github.com/mikey2shiesty/ZapSplit-sub002/internal/adapter/repository/redis"
	"github.com/mikey2shiesty/ZapSplit-sub002/internal/domain"
	"github.com/mikey2shiesty/ZapSplit-sub002/internal/infrastructure/auth"
	"github.com/mikey2shiesty/ZapSplit-sub002/internal/infrastructure/config"
	"github.com/mikey2shiesty/ZapSplit-sub002/internal/infrastructure/eventpublisher"
	"github.com/mikey2shiesty/ZapSplit-sub002/internal/infrastructure/logger"
	"github.com/mikey2shiesty/ZapSplit-sub002/internal/infrastructure/metrics"
	"github.com/mikey2shiesty/ZapSplit-sub002/internal/infrastructure/postgres"
	"github.com/mikey2shiesty/ZapSplit-sub002/internal/infrastructure/redis"
	"github.com/mikey2shiesty/ZapSplit-sub002/internal/usecase"
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

	schedule, err := feeSchedule(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid fee schedule")
	}

	ctx := context.Background()

	// Connect to PostgreSQL
	connectCtx, cancelConnect := context.WithTimeout(ctx, cfg.DatabaseTimeout)
	defer cancelConnect()

	pool, err := postgres.NewPool(connectCtx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Connect to Redis
	redisClient, err := redis.NewClient(connectCtx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	appMetrics := metrics.New()

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	splitRepo := postgresRepo.NewSplitRepository(pool)
	participantRepo := postgresRepo.NewParticipantRepository(pool)
	paymentRepo := postgresRepo.NewPaymentRepository(pool)
	balanceRepo := postgresRepo.NewBalanceRepository(pool)
	outboxRepo := postgresRepo.NewOutboxRepository(pool)
	retrier := postgresRepo.NewRetrier()
	idGen := postgresRepo.NewULIDGenerator()
	cache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)

	// Initialize use cases
	splitUC := usecase.NewSplitUseCase(txManager, splitRepo, participantRepo, paymentRepo, outboxRepo, idGen).
		WithCache(cache)
	settlementUC := usecase.NewSettlementUseCase(txManager, splitRepo, participantRepo, paymentRepo, outboxRepo, idGen).
		WithCache(cache).
		WithRetrier(retrier)
	balanceUC := usecase.NewBalanceUseCase(balanceRepo, cache, cfg.BalanceCacheTTL)
	feeUC := usecase.NewFeeUseCase(schedule)

	// Initialize handlers
	splitHandler := handler.NewSplitHandler(splitUC)
	paymentHandler := handler.NewPaymentHandler(settlementUC)
	feeHandler := handler.NewFeeHandler(feeUC)
	balanceHandler := handler.NewBalanceHandler(balanceUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	var jwtManager *auth.JWTManager
	if cfg.AuthEnabled && cfg.JWTSecret != "" {
		jwtManager = auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
	}

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		SplitHandler:     splitHandler,
		PaymentHandler:   paymentHandler,
		FeeHandler:       feeHandler,
		BalanceHandler:   balanceHandler,
		HealthHandler:    healthHandler,
		IdempotencyStore: idempotencyStore,
		IdempotencyTTL:   cfg.IdempotencyTTL,
		RateLimiter:      middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		Metrics:          appMetrics,
		Logger:           &appLogger,
		JWTManager:       jwtManager,
	})

	// Start the outbox publisher
	publisherCtx, stopPublisher := context.WithCancel(ctx)
	defer stopPublisher()

	publisher := eventpublisher.NewEventPublisher(eventpublisher.Config{
		OutboxRepo: outboxRepo,
		Publisher:  eventpublisher.NewLogPublisher(nil),
		BatchSize:  cfg.OutboxBatchSize,
		Interval:   cfg.OutboxPollInterval,
	})
	go func() {
		if err := publisher.Start(publisherCtx); err != nil && err != context.Canceled {
			log.Error().Err(err).Msg("event publisher stopped")
		}
	}()

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
	stopPublisher()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

// feeSchedule parses the configured fee schedule.
func feeSchedule(cfg *config.Config) (domain.FeeSchedule, error) {
	rate, err := decimal.NewFromString(cfg.FeeProcessorRate)
	if err != nil {
		return domain.FeeSchedule{}, fmt.Errorf("parse processor rate %q: %w", cfg.FeeProcessorRate, err)
	}

	return domain.FeeSchedule{
		ProcessorRate:  rate,
		ProcessorFixed: cfg.FeeProcessorFixedCents,
		PlatformFee:    cfg.FeePlatformCents,
	}, nil
}
