package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/profleet/fleettrack/internal/pkg/circuitbreaker"
	"github.com/profleet/fleettrack/internal/pkg/config"
	"github.com/profleet/fleettrack/internal/pkg/database"
	"github.com/profleet/fleettrack/internal/pkg/health"
	"github.com/profleet/fleettrack/internal/pkg/logger"
	"github.com/profleet/fleettrack/internal/pkg/middleware"
	natspkg "github.com/profleet/fleettrack/internal/pkg/nats"
	nrpkg "github.com/profleet/fleettrack/internal/pkg/newrelic"
	"github.com/profleet/fleettrack/internal/pkg/retry"
	"github.com/profleet/fleettrack/internal/pkg/server"
	"github.com/profleet/fleettrack/services/tracking"
	"github.com/profleet/fleettrack/services/tracking/feed"
	"github.com/profleet/fleettrack/services/tracking/gateway"
	"github.com/profleet/fleettrack/services/tracking/handler"
	"github.com/profleet/fleettrack/services/tracking/repository"
	"github.com/profleet/fleettrack/services/tracking/usecase"
	"go.uber.org/zap"
)

func main() {
	appName := "fleettrack-tracking"
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/tracking.env"
	}
	configs := config.InitConfig(configPath)

	// Initialize New Relic and Zap logger
	nrApp := nrpkg.InitNewRelic(configs)
	if nrApp != nil {
		if err := nrApp.WaitForConnection(10 * time.Second); err != nil {
			log.Printf("Warning: New Relic connection timeout: %v", err)
		}
	}

	zapLogger, err := logger.InitZapLoggerFromConfig(configs, nrApp)
	if err != nil {
		log.Fatalf("Failed to create Zap logger: %v", err)
	}
	defer zapLogger.Close()
	zapLogger.Logger = zapLogger.Logger.With(zap.String("service", appName))
	logger.SetGlobalLogger(zapLogger)

	zapLogger.Info("Starting application",
		zap.String("app", appName),
		zap.String("version", configs.App.Version),
		zap.String("environment", configs.App.Environment),
	)

	// Dependencies may still be starting when the service comes up
	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancelStartup()
	retryCfg := retry.DefaultConfig()

	// Initialize PostgreSQL and bring the schema up to date
	var postgresClient *database.PostgresClient
	err = retry.Do(startupCtx, retryCfg, "postgres connect", func(context.Context) error {
		var err error
		postgresClient, err = database.NewPostgresClient(configs.Database)
		return err
	})
	if err != nil {
		zapLogger.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	if err := database.ApplyMigrations(configs.Database); err != nil {
		zapLogger.Fatal("Failed to apply migrations", zap.Error(err))
	}

	// Initialize Redis client
	var redisClient *database.RedisClient
	err = retry.Do(startupCtx, retryCfg, "redis connect", func(context.Context) error {
		var err error
		redisClient, err = database.NewRedisClient(configs.Redis)
		return err
	})
	if err != nil {
		zapLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}

	healthService := health.NewHealthService()
	healthService.AddChecker("postgres", health.NewPostgresHealthChecker(postgresClient))
	healthService.AddChecker("redis", health.NewRedisHealthChecker(redisClient))

	hub := feed.NewHub(configs.Tracking.SubscriberBuffer)

	// NATS carries live events between instances; without it events stay in this process
	var natsClient *natspkg.Client
	var trackingGW tracking.TrackingGW
	if configs.NATS.URL != "" {
		err = retry.Do(startupCtx, retryCfg, "nats connect", func(context.Context) error {
			var err error
			natsClient, err = natspkg.NewClient(configs.NATS.URL)
			return err
		})
		if err != nil {
			zapLogger.Fatal("Failed to connect to NATS", zap.Error(err))
		}
		trackingGW = gateway.NewNATSTrackingGW(natsClient.GetConn())
		healthService.AddChecker("nats", health.NewNATSHealthChecker(natsClient))
	} else {
		zapLogger.Warn("NATS_URL not set, live feed limited to this instance")
		trackingGW = gateway.NewLocalTrackingGW(hub)
	}

	// Initialize repository
	trackingRepo := repository.NewTrackingRepository(configs, postgresClient.GetDB())
	locationCache := repository.NewGuardedLocationCache(
		repository.NewLocationCache(redisClient),
		circuitbreaker.New(circuitbreaker.DefaultConfig("redis-location-cache")),
	)

	// Initialize UseCase
	trackingUC := usecase.NewTrackingUC(configs, trackingRepo, locationCache, trackingGW)

	// Initialize handlers
	trackingHandler := handler.NewHandler(trackingUC, hub, natsClient, configs)
	if err := trackingHandler.InitNATSConsumers(); err != nil {
		zapLogger.Fatal("Failed to initialize NATS consumers", zap.Error(err))
	}
	if err := trackingHandler.StartScheduler(); err != nil {
		zapLogger.Fatal("Failed to start stale sweep", zap.Error(err))
	}

	// Initialize Echo router
	e := echo.New()
	e.HideBanner = true

	// Add middlewares
	e.Use(middleware.RequestIDMiddleware())
	e.Use(nrpkg.EchoMiddleware(nrApp))
	e.Use(logger.ZapEchoMiddleware(zapLogger))
	e.Use(middleware.PanicRecoveryWithZapMiddleware(zapLogger))

	// Register health endpoints
	health.RegisterHealthEndpoints(e, appName, healthService)

	// Register service routes
	trackingHandler.RegisterRoutes(e)

	srv := server.NewGracefulServer(e, zapLogger, configs.Server.Port,
		time.Duration(configs.Server.ShutdownTimeout)*time.Second)

	// cleanups run in reverse order: handlers stop before their connections close
	srv.OnShutdown(func(context.Context) error { return redisClient.Close() })
	srv.OnShutdown(func(context.Context) error { return postgresClient.Close() })
	if natsClient != nil {
		srv.OnShutdown(func(context.Context) error {
			natsClient.Close()
			return nil
		})
	}
	srv.OnShutdown(trackingHandler.Shutdown)
	if nrApp != nil {
		srv.OnShutdown(func(context.Context) error {
			nrApp.Shutdown(10 * time.Second)
			return nil
		})
	}

	if err := srv.Start(); err != nil {
		zapLogger.Error("Server stopped with error", zap.Error(err))
		os.Exit(1)
	}
}
