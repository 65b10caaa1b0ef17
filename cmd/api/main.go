package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/portfolio-api/internal/config"
	"github.com/noah-isme/portfolio-api/internal/database"
	"github.com/noah-isme/portfolio-api/internal/handler"
	"github.com/noah-isme/portfolio-api/internal/middleware"
	"github.com/noah-isme/portfolio-api/internal/repository"
	"github.com/noah-isme/portfolio-api/internal/router"
	"github.com/noah-isme/portfolio-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Str("app", cfg.AppName).Logger()

	rootCtx, cancelRoot := context.WithCancel(context.Background())
	defer cancelRoot()

	store := service.NewStoreAvailability()
	connector := service.NewStoreConnector(dialStore(cfg.DatabaseURL), store, cfg.DatabaseConnectTimeout, cfg.DatabaseReconnectInterval, logger)
	connector.Connect(rootCtx)
	go connector.KeepTrying(rootCtx)

	redisClient := connectRedis(rootCtx, cfg, logger)
	natsConn := connectNATS(cfg, logger)

	var delivery service.ContactDelivery = service.NewLogContactDelivery(logger)
	if natsConn != nil {
		delivery = service.NewNATSContactDelivery(natsConn, cfg.NATSSubject, logger)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	contactService := service.NewContactService(store, redisClient, validate, delivery, service.ContactServiceOptions{
		WriteTimeout: cfg.DatabaseWriteTimeout,
		DedupeTTL:    cfg.ContactDedupeTTL,
	}, logger)

	if cfg.AdminJWTSecret == "" {
		logger.Warn().Msg("admin secret not configured, GET /api/contacts is publicly readable")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger, AllowOrigins: cfg.CORSAllowOrigins})
	router.Register(app, cfg, router.Dependencies{
		ContactHandler:      handler.NewContactHandler(contactService, logger),
		AdminContactHandler: handler.NewAdminContactHandler(contactService, logger),
		SiteHandler:         handler.NewSiteHandler(cfg.StaticDir),
		Store:               store,
	})

	go func() {
		logger.Info().Str("address", cfg.HTTPAddress()).Bool("store_available", store.Available()).Msg("server listening")
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
	cancelRoot()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := store.Close(ctx); err != nil {
		logger.Warn().Err(err).Msg("failed to close backing store")
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	if natsConn != nil {
		if err := natsConn.Drain(); err != nil {
			natsConn.Close()
		}
	}
}

func dialStore(url string) service.StoreDialer {
	return func(ctx context.Context) (repository.ContactRepository, func(context.Context) error, error) {
		conn, err := database.OpenStore(ctx, url)
		if err != nil {
			return nil, nil, err
		}

		repo, err := repository.NewContactRepositoryForStore(conn)
		if err != nil {
			_ = conn.Close(ctx)
			return nil, nil, err
		}

		return repo, conn.Close, nil
	}
}

func connectRedis(ctx context.Context, cfg config.Config, logger zerolog.Logger) *redis.Client {
	if cfg.RedisURL == "" {
		return nil
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.DatabaseConnectTimeout)
	defer cancel()

	client, err := database.ConnectRedis(pingCtx, cfg.RedisURL)
	if err != nil {
		logger.Warn().Err(err).Msg("redis unavailable, duplicate suppression disabled")
		return nil
	}
	return client
}

func connectNATS(cfg config.Config, logger zerolog.Logger) *nats.Conn {
	if cfg.NATSURL == "" {
		return nil
	}

	conn, err := database.ConnectNATS(cfg.NATSURL, cfg.AppName, cfg.DatabaseConnectTimeout)
	if err != nil {
		logger.Warn().Err(err).Msg("nats unavailable, contact messages will only be logged")
		return nil
	}
	return conn
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
