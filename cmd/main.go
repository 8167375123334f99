package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/m7real/ex-mobile-server/internal/config"
	"github.com/m7real/ex-mobile-server/internal/db"
	"github.com/m7real/ex-mobile-server/internal/handlers"
	"github.com/m7real/ex-mobile-server/internal/services"
	"github.com/m7real/ex-mobile-server/internal/storage"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		zap.L().Error("application error", zap.Error(err))
		_ = zap.L().Sync()
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(log)
	defer func() { _ = log.Sync() }()
	if !cfg.DotEnv {
		log.Info("no .env file found, using environment variables")
	}

	client, err := db.Connect(ctx, cfg.MongoURI)
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error("mongo disconnect", zap.Error(err))
		}
	}()

	store := db.NewStore(client.Database(cfg.DBName))
	if err := store.EnsureIndexes(ctx); err != nil {
		return err
	}

	var objects services.ObjectStore
	if cfg.StorageEnabled() {
		m, err := storage.NewMinio(ctx, cfg.Minio)
		if err != nil {
			return err
		}
		objects = m
	} else {
		log.Info("MINIO_ENDPOINT not set, product image uploads disabled")
	}

	tokens := services.NewTokenService(cfg.TokenSecret, cfg.TokenTTL)
	access := services.NewAccessService(store)

	app := fiber.New(handlers.AppConfig())
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.CORSOrigins}))

	handlers.Register(app, handlers.Deps{
		Tokens:       tokens,
		Access:       access,
		Users:        services.NewUserService(store, store, tokens),
		Products:     services.NewProductService(store, store, access),
		Bookings:     services.NewBookingService(store),
		Catalog:      services.NewCatalogService(store, store),
		Images:       services.NewImageService(store, objects),
		StoreTimeout: cfg.StoreTimeout,
	})

	errChan := make(chan error, 1)
	go func() {
		log.Info("Ex Mobile running", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		errChan <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		log.Info("shutdown signal received")
	}

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		log.Error("server shutdown", zap.Error(err))
	}
	log.Info("application stopped")
	return nil
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	var zapConfig zap.Config
	if cfg.IsDevelopment() {
		zapConfig = zap.NewDevelopmentConfig()
	} else {
		zapConfig = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	zapConfig.Level = zap.NewAtomicLevelAt(level)
	return zapConfig.Build(zap.AddCaller())
}
