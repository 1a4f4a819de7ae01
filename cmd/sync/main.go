package main

import (
	"log"
	"os"
	"time"

	"catsync/internal/catalog"
	"catsync/internal/config"
	"catsync/internal/database"
	"catsync/internal/events"
	"catsync/internal/logger"
	"catsync/internal/services/woocommerce"
	"catsync/internal/syncer"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize logger
	logger := logger.New(cfg.LogLevel)

	if cfg.WooCommerceURL == "" || cfg.WooConsumerKey == "" || cfg.WooConsumerSecret == "" {
		logger.Fatal("WOOCOMMERCE_URL, WOOCOMMERCE_CONSUMER_KEY and WOOCOMMERCE_CONSUMER_SECRET must be set")
	}

	// Initialize database
	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Failed to connect to database: %v", err)
	}

	client := woocommerce.NewClient(
		cfg.WooCommerceURL,
		cfg.WooConsumerKey,
		cfg.WooConsumerSecret,
		time.Duration(cfg.HTTPTimeout)*time.Second,
		logger,
	)
	writer := catalog.NewWriter(db.DB, logger)
	publisher := events.NewPublisher(cfg.KafkaBrokers, logger)

	orchestrator := syncer.NewOrchestrator(client, writer, publisher, logger, cfg.SyncPerPage)

	logger.Info("Starting full catalog sync from %s", cfg.WooCommerceURL)
	runErr := orchestrator.Run()

	// Close connections regardless of outcome.
	publisher.Close()
	if err := db.Close(); err != nil {
		logger.Error("Failed to close database: %v", err)
	}

	if runErr != nil {
		logger.Error("Sync failed: %v", runErr)
		os.Exit(1)
	}
}
