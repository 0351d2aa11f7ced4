package main

import (
	"context"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"google.golang.org/api/option"
	"gorm.io/gorm"

	"github.com/example/merchstore/internal/checkout"
	"github.com/example/merchstore/internal/config"
	"github.com/example/merchstore/internal/database"
	"github.com/example/merchstore/internal/handlers"
	"github.com/example/merchstore/internal/logger"
	"github.com/example/merchstore/internal/routes"
	"github.com/example/merchstore/internal/services"
	"github.com/example/merchstore/internal/storage"
)

func main() {
	cfg, cfgErr := config.Load()

	log, err := logger.New(cfg.AppEnv)
	if err != nil {
		stdlog.Fatalf("failed to build logger: %v", err)
	}
	defer log.Sync()

	if cfgErr != nil {
		log.Fatal("invalid configuration", logger.Error(cfgErr))
	}

	var db *gorm.DB
	var backend storage.Backend
	switch cfg.StorageDriver {
	case config.StorageMemory:
		log.Warn("using in-memory storage, data is lost on restart")
		backend = storage.NewMemoryBackend()
	default:
		db, err = database.Connect(cfg.DatabaseURL, !cfg.IsProduction(), log)
		if err != nil {
			log.Fatal("database unavailable", logger.Error(err))
		}
		backend = storage.NewGormBackend(db)
	}

	webhook := services.NewSheetsWebhook(cfg.SheetsWebhookURL, cfg.RemoteTimeout)
	sinks, closeSinks := buildSinks(cfg, webhook, log)
	defer closeSinks()

	app := fiber.New(fiber.Config{
		AppName:      "Merch Store Backend",
		ErrorHandler: handlers.ErrorHandler(log),
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	routes.Register(app, routes.Dependencies{
		Config:  cfg,
		Backend: backend,
		Logger:  log,
		DB:      db,
		Webhook: webhook,
		Sinks:   sinks,
	})

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error("shutdown", logger.Error(err))
		}
	}()

	log.Info("starting server",
		logger.String("port", cfg.AppPort),
		logger.String("storage", cfg.StorageDriver),
		logger.Any("sinks", sinkNames(sinks)),
	)
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		log.Fatal("fiber.Listen error", logger.Error(err))
	}
}

// buildSinks returns the remote order sinks that are configured and a func
// that releases them.
func buildSinks(cfg *config.Config, webhook *services.SheetsWebhook, log logger.Logger) ([]checkout.Sink, func()) {
	var sinks []checkout.Sink
	closers := []func(){}

	if webhook.Enabled() {
		sinks = append(sinks, webhook)
	}

	if cfg.SheetsAPIEnabled() {
		var opts []option.ClientOption
		if cfg.GoogleCredentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(cfg.GoogleCredentialsFile))
		}
		appender, err := services.NewSheetsAppender(context.Background(), cfg.SheetsSpreadsheetID, cfg.SheetsRange, time.Now, opts...)
		if err != nil {
			log.Error("sheets api sink disabled", logger.Error(err))
		} else {
			sinks = append(sinks, appender)
		}
	}

	telegram := services.NewTelegramService(cfg.TelegramBotToken, cfg.TelegramAdminChat, cfg.RemoteTimeout, log)
	if telegram.Enabled() {
		sinks = append(sinks, telegram)
	}

	if cfg.KafkaEnabled() {
		publisher, err := services.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaOrderTopic, log)
		if err != nil {
			log.Error("kafka sink disabled", logger.Error(err))
		} else {
			sinks = append(sinks, publisher)
			closers = append(closers, publisher.Close)
		}
	}

	return sinks, func() {
		for _, closeFn := range closers {
			closeFn()
		}
	}
}

func sinkNames(sinks []checkout.Sink) []string {
	names := make([]string, 0, len(sinks))
	for _, sink := range sinks {
		names = append(names, sink.Name())
	}
	return names
}
