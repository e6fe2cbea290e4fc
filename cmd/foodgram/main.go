package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	_ "github.com/tair/foodgram/docs"
	"github.com/tair/foodgram/internal/app"
	"github.com/tair/foodgram/internal/config"
	recipegrpc "github.com/tair/foodgram/internal/recipe/delivery/grpc"
	"github.com/tair/foodgram/kafka"
	"github.com/tair/foodgram/pkg/auth"
	"github.com/tair/foodgram/pkg/database"
	"github.com/tair/foodgram/pkg/logger"
	"github.com/tair/foodgram/pkg/metrics"
	"github.com/tair/foodgram/pkg/tracing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Init("foodgram", true)
		logger.Logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger
	logger.Init(cfg.Service.Name, cfg.IsDevelopment())
	logger.SetLevel(cfg.Service.LogLevel)

	logger.Logger.Info().
		Str("service", cfg.Service.Name).
		Str("version", cfg.Service.Version).
		Str("environment", cfg.Service.Environment).
		Msg("Starting foodgram service")

	// Initialize tracing
	tp, err := tracing.InitTracer(cfg.TracingConfig())
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize tracer")
	}

	// Connect to database
	db, err := database.NewGormConnection(cfg.DatabaseConfig())
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer database.Close(db)

	if err := db.AutoMigrate(app.Entities()...); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}
	logger.Logger.Info().Msg("Database initialized successfully")

	rdb := connectRedis(cfg.Redis)
	if rdb != nil {
		defer rdb.Close()
	}

	m := metrics.New(prometheus.DefaultRegisterer)

	publisher, closePublisher := newPublisher(cfg.Kafka, m)
	defer closePublisher()

	handlers, err := app.InitializeHandlers(cfg, db, rdb, publisher, m)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize handlers")
	}

	httpServer := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      app.NewRouter(handlers, db, prometheus.DefaultGatherer, cfg.HTTP.CORSOrigins),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}
	go func() {
		logger.Logger.Info().
			Str("port", cfg.HTTP.Port).
			Str("metrics_endpoint", "/metrics").
			Str("swagger", "/swagger/index.html").
			Msg("HTTP server started")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	var grpcServer *grpc.Server
	if cfg.GRPC.Enabled {
		grpcServer = startGRPCServer(cfg, handlers.GRPC, m)
	}

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down servers...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Logger.Error().Err(err).Msg("HTTP server shutdown failed")
	}
	if grpcServer != nil {
		grpcServer.GracefulStop()
	}
	if err := tracing.Shutdown(ctx, tp); err != nil {
		logger.Logger.Error().Err(err).Msg("Tracer shutdown failed")
	}
}

// connectRedis returns nil when no address is configured or the server is unreachable
func connectRedis(cfg config.RedisConfig) *redis.Client {
	if cfg.Addr == "" {
		logger.Logger.Info().Msg("Redis disabled, short link cache off")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Logger.Warn().Err(err).Str("addr", cfg.Addr).Msg("Redis unavailable, short link cache off")
		client.Close()
		return nil
	}

	logger.Logger.Info().Str("addr", cfg.Addr).Dur("ttl", cfg.ShortLinkTTL).Msg("Connected to Redis")
	return client
}

// newPublisher wires Kafka behind a circuit breaker, or a no-op publisher without brokers
func newPublisher(cfg config.KafkaConfig, m *metrics.Metrics) (app.Publisher, func()) {
	if len(cfg.Brokers) == 0 {
		logger.Logger.Info().Msg("Kafka disabled, events are not published")
		return kafka.NopPublisher{}, func() {}
	}

	producer, err := kafka.NewPublisher(cfg.Brokers, cfg.Topic)
	if err != nil {
		logger.Logger.Warn().Err(err).Msg("Kafka unavailable, events are not published")
		return kafka.NopPublisher{}, func() {}
	}

	publisher := kafka.NewResilientPublisher(producer, kafka.BreakerConfig{
		FailureThreshold: cfg.BreakerFailures,
		OpenTimeout:      cfg.BreakerOpenDelay,
	}, m)
	return publisher, func() {
		if err := producer.Close(); err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to close Kafka producer")
		}
	}
}

func startGRPCServer(cfg *config.Config, server *recipegrpc.RecipeServer, m *metrics.Metrics) *grpc.Server {
	grpcServer := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(
			recipegrpc.LoggingInterceptor(m),
			recipegrpc.AuthInterceptor(auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)),
		),
	)
	recipegrpc.RegisterRecipeServiceServer(grpcServer, server)

	// Register reflection service (for grpcurl and grpc tools)
	reflection.Register(grpcServer)

	lis, err := net.Listen("tcp", ":"+cfg.GRPC.Port)
	if err != nil {
		logger.Logger.Fatal().Err(err).Str("port", cfg.GRPC.Port).Msg("Failed to listen")
	}

	go func() {
		logger.Logger.Info().Str("port", cfg.GRPC.Port).Msg("gRPC server started")
		if err := grpcServer.Serve(lis); err != nil {
			logger.Logger.Error().Err(err).Msg("gRPC server stopped")
		}
	}()
	return grpcServer
}
