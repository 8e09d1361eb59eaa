package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"gamemart/collection"
	"gamemart/config"
	"gamemart/database"
	"gamemart/dispatch"
	"gamemart/jobs"
	"gamemart/logger"
	"gamemart/notify"
	"gamemart/routes"
	"gamemart/upstream"
)

func main() {
	// .env is optional; containers inject the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}

	log := logger.New(cfg)

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	log.WithField("driver", cfg.DBDriver).Info("connected to local store")

	api := upstream.New(cfg.UpstreamBaseURL, cfg.UpstreamTimeout, log)
	cache := collection.NewCache(cfg.CacheTTL)

	notifier, err := notify.New(cfg.TelegramToken, cfg.TelegramChatID, log)
	if err != nil {
		log.Fatalf("notify: %v", err)
	}
	if notifier != nil {
		log.Info("telegram notifications enabled")
	}

	dispatcher := dispatch.New(api, cache, db, notifier, log)

	runner := jobs.NewRunner(cfg, db, cache, api, notifier, log)
	scheduler, err := runner.Start()
	if err != nil {
		log.Fatalf("jobs: %v", err)
	}

	app := fiber.New(fiber.Config{
		AppName:               "gamemart admin",
		DisableStartupMessage: true,
	})
	routes.Setup(app, routes.Deps{
		API:        api,
		Cache:      cache,
		Dispatch:   dispatcher,
		DB:         db,
		Secret:     []byte(cfg.SessionSecret),
		SessionTTL: cfg.SessionTTL,
		Log:        log,
	})

	go func() {
		log.WithField("addr", cfg.Addr()).Info("server running")
		if err := app.Listen(cfg.Addr()); err != nil {
			log.Panicf("failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("gracefully shutting down...")
	scheduler.Stop()
	if err := app.Shutdown(); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}
	log.Info("server exited cleanly")
}
