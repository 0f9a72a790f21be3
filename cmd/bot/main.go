package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/florabot/backend/config"
	httpDelivery "github.com/florabot/backend/internal/delivery/http"
	"github.com/florabot/backend/internal/delivery/telegram"
	"github.com/florabot/backend/internal/infrastructure/catalog"
	"github.com/florabot/backend/internal/infrastructure/sheets"
	"github.com/florabot/backend/internal/usecase"
)

func main() {
	// .env is a development convenience; absence is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogging(cfg)

	logrus.WithFields(logrus.Fields{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"catalog_ttl": cfg.Catalog.TTL,
	}).Info("starting FloraBot v1.0.0")

	// Infrastructure
	sheetClient := sheets.NewClient(cfg.Catalog.SheetURL, cfg.Catalog.FetchTimeout)
	store := catalog.NewStore(sheetClient, cfg.Catalog.TTL)

	// Usecase layer
	resolver := usecase.NewResolver(usecase.ResolverConfig{
		FuzzyThreshold: cfg.Matching.FuzzyThreshold,
		FuzzyLimit:     cfg.Matching.FuzzyLimit,
	})
	chatService := usecase.NewChatService(store, resolver, usecase.ChatServiceConfig{
		AmbiguityGap: cfg.Matching.AmbiguityGap,
	})

	// HTTP delivery
	handler := httpDelivery.NewHandler(chatService)
	router := httpDelivery.SetupRouter(cfg, handler)

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logrus.WithField("addr", addr).Info("HTTP server listening")
		if err := router.Run(addr); err != nil {
			logrus.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	// Telegram delivery
	connector, err := telegram.NewConnector(telegram.Config{
		BotToken: cfg.Telegram.BotToken,
		Debug:    cfg.Telegram.Debug,
	}, chatService)
	if err != nil {
		logrus.Fatalf("Failed to create Telegram connector: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if info, err := connector.GetBotInfo(ctx); err != nil {
		logrus.WithError(err).Warn("could not fetch bot account info")
	} else {
		logrus.WithField("username", info.Username).Info("Telegram bot ready")
	}

	connector.Start(ctx)
	logrus.Info("shutting down")
}

// setupLogging configures logrus for the environment: JSON in
// production, verbose text elsewhere.
func setupLogging(cfg *config.Config) {
	if cfg.Server.Environment == "production" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
		logrus.SetLevel(logrus.InfoLevel)
		return
	}
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logrus.SetLevel(logrus.DebugLevel)
}
