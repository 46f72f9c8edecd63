package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/utafrali/review-insights/internal/cache"
	"github.com/utafrali/review-insights/internal/config"
	"github.com/utafrali/review-insights/internal/event"
	"github.com/utafrali/review-insights/internal/genai"
	handler "github.com/utafrali/review-insights/internal/handler/http"
	"github.com/utafrali/review-insights/internal/insight"
	"github.com/utafrali/review-insights/internal/repository/postgres"
	"github.com/utafrali/review-insights/internal/service"
	"github.com/utafrali/review-insights/migrations"
	"github.com/utafrali/review-insights/pkg/database"
	"github.com/utafrali/review-insights/pkg/health"
	pkgkafka "github.com/utafrali/review-insights/pkg/kafka"
	"github.com/utafrali/review-insights/pkg/middleware"
	"github.com/utafrali/review-insights/pkg/tracing"
)

// App wires together all dependencies and runs the review insights service.
type App struct {
	cfg             *config.Config
	logger          *slog.Logger
	pool            *pgxpool.Pool
	rdb             *redis.Client
	producer        *pkgkafka.Producer
	httpServer      *http.Server
	tracingShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Initialize tracing.
	tracingShutdown, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:  "review-insights",
		Environment:  cfg.Environment,
		OTLPEndpoint: cfg.OTELEndpoint,
		SampleRate:   cfg.OTELSampleRate,
		Enabled:      cfg.OTELEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}

	// Initialize PostgreSQL pool.
	pool, err := database.NewPostgresPool(ctx, &database.PostgresConfig{
		Host:     cfg.PostgresHost,
		Port:     cfg.PostgresPort,
		User:     cfg.PostgresUser,
		Password: cfg.PostgresPass,
		DBName:   cfg.PostgresDB,
		SSLMode:  cfg.PostgresSSL,
		MaxConns: cfg.DBMaxConns,
		MinConns: cfg.DBMinConns,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	logger.Info("connected to PostgreSQL",
		slog.String("host", cfg.PostgresHost),
		slog.String("database", cfg.PostgresDB),
	)

	// Apply schema migrations before serving traffic.
	if err := database.RunMigrations(ctx, pool, migrations.FS, logger); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	// Initialize Redis client.
	rdb, err := database.NewRedisClient(ctx, database.RedisConfig{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	logger.Info("connected to Redis", slog.String("addr", cfg.RedisAddr))

	// Initialize Kafka producer.
	kafkaCfg := pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers)
	producer := pkgkafka.NewProducer(kafkaCfg, logger)
	logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))

	// Analysis engine. The AI strategy is only wired when a real API key is
	// configured; the rule-based strategy always terminates the chain.
	engineCfg := insight.DefaultConfig()
	engineCfg.GenerateTimeout = cfg.GenAITimeout
	lexicon := insight.DefaultLexicon()

	var strategies []insight.NarrativeStrategy

	genaiCfg := genai.DefaultConfig()
	genaiCfg.APIKey = cfg.GenAIAPIKey
	genaiCfg.Model = cfg.GenAIModel
	genaiCfg.Timeout = cfg.GenAITimeout

	generator, err := genai.New(genaiCfg, logger)
	switch {
	case err == nil:
		strategies = append(strategies, insight.NewAINarrative(generator, engineCfg))
		logger.Info("AI narrative generation enabled", slog.String("model", genaiCfg.Model))
	case errors.Is(err, genai.ErrMissingAPIKey):
		logger.Warn("AI narrative generation disabled, using rule-based narratives only")
	default:
		pool.Close()
		return nil, fmt.Errorf("init genai client: %w", err)
	}
	strategies = append(strategies, insight.NewRuleNarrative(lexicon, engineCfg))

	summarizer := insight.NewSummarizer(engineCfg, lexicon, strategies, logger)

	// Build the dependency graph.
	repo := postgres.NewReviewRepository(pool)
	summaryCache := cache.NewSummaryCache(rdb, cfg.SummaryTTL)
	eventProducer := event.NewProducer(producer, logger)

	reviewService := service.NewReviewService(repo, summaryCache, eventProducer, logger)
	insightService := service.NewInsightService(repo, summaryCache, summarizer, eventProducer, cfg.AnalysisReviewLimit, logger)

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.Register("postgres", func(ctx context.Context) error {
		return pool.Ping(ctx)
	})
	healthHandler.Register("redis", func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	})

	// HTTP router.
	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowedOrigins = cfg.CORSAllowedOrigins

	router := handler.NewRouter(reviewService, insightService, healthHandler, logger, corsConfig)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:             cfg,
		logger:          logger,
		pool:            pool,
		rdb:             rdb,
		producer:        producer,
		httpServer:      httpServer,
		tracingShutdown: tracingShutdown,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	// Graceful HTTP server shutdown with a 10-second deadline.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	// Close Kafka producer.
	if err := a.producer.Close(); err != nil {
		a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
	}

	// Close Redis client.
	if err := a.rdb.Close(); err != nil {
		a.logger.Error("redis close error", slog.String("error", err.Error()))
	}

	// Close PostgreSQL pool.
	a.pool.Close()

	// Flush pending trace spans.
	if err := a.tracingShutdown(shutdownCtx); err != nil {
		a.logger.Error("tracing shutdown error", slog.String("error", err.Error()))
	}

	a.logger.Info("application shutdown complete")
	return nil
}
