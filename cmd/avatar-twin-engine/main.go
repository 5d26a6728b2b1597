package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	httpapi "github.com/dnazarov/avatar-twin-engine/internal/api/http"
	"github.com/dnazarov/avatar-twin-engine/internal/avatar"
	"github.com/dnazarov/avatar-twin-engine/internal/config"
	"github.com/dnazarov/avatar-twin-engine/internal/envdata"
	"github.com/dnazarov/avatar-twin-engine/internal/envdata/providers"
	"github.com/dnazarov/avatar-twin-engine/internal/publish"
	"github.com/dnazarov/avatar-twin-engine/internal/scheduler"
	"github.com/dnazarov/avatar-twin-engine/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: 10 * time.Second,
	}

	// Snapshot store: in-memory by default, Redis when configured.
	var snapStore envdata.Store
	switch cfg.StoreBackend {
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(context.Background()).Err(); err != nil {
			log.Fatalf("failed to connect to redis at %s: %v", cfg.RedisAddr, err)
		}
		snapStore = store.NewRedisStore(client, cfg.StoreMaxHistory, cfg.StoreMaxAge)
	default:
		snapStore = store.NewMemoryStore(cfg.StoreMaxHistory, cfg.StoreMaxAge)
	}

	// Providers with resilience (backoff + circuit breaker).
	air := []envdata.AirQualityProvider{
		providers.NewOpenMeteoAirProvider(httpClient),
	}
	if cfg.WAQIToken != "" {
		air = append(air, providers.NewWAQIProvider(httpClient, cfg.WAQIToken))
	}

	var traffic []envdata.TrafficProvider
	if cfg.TomTomAPIKey != "" {
		traffic = append(traffic, providers.NewTomTomTrafficProvider(httpClient, cfg.TomTomAPIKey))
	}

	// Core service orchestrating providers and store.
	service := envdata.NewService(snapStore, air, traffic)

	// Optional MQTT push of refreshed states for subscribing clients.
	var onRefresh func(envdata.Snapshot)
	if cfg.MQTTBroker != "" {
		publisher, err := publish.NewMQTTPublisher(cfg.MQTTBroker, cfg.MQTTClientID, cfg.MQTTTopicPrefix)
		if err != nil {
			log.Fatalf("failed to connect MQTT publisher: %v", err)
		}
		defer publisher.Close()

		onRefresh = func(snapshot envdata.Snapshot) {
			// Published states carry no personal profile; clients fetch a
			// personalized state over HTTP when they need one.
			state := avatar.BuildState(snapshot, avatar.Profile{})
			if err := publisher.PublishState(snapshot.Location, state); err != nil {
				log.Printf("ERROR: publish avatar state for %s: %v", snapshot.Location.Key(), err)
			}
		}
	}

	// Scheduler that periodically refreshes environmental data.
	sched := scheduler.New(cfg.Locations, cfg.FetchInterval, service, onRefresh)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "avatar-twin-engine",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "avatar-twin-engine",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, service)

	// Start server with graceful shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
