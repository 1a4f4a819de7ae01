package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"catsync/internal/catalog"
	"catsync/internal/config"
	"catsync/internal/database"
	"catsync/internal/logger"
	"catsync/internal/services/woocommerce"
	"catsync/internal/syncer"
)

// Imports a single remote product (WOOCOMMERCE_PRODUCT_ID) without wiping the
// catalog. Intended for verifying credentials and field mapping against a
// known variable product before a full run.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	logger := logger.New(cfg.LogLevel)

	if cfg.WooCommerceURL == "" {
		logger.Fatal("WOOCOMMERCE_URL must be set")
	}
	if cfg.WooProductID == "" {
		logger.Fatal("WOOCOMMERCE_PRODUCT_ID must be set")
	}
	productID, err := strconv.ParseInt(cfg.WooProductID, 10, 64)
	if err != nil {
		logger.Fatal("WOOCOMMERCE_PRODUCT_ID must be numeric: %v", err)
	}

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

	orchestrator := syncer.NewOrchestrator(client, writer, nil, logger, cfg.SyncPerPage)

	logger.Info("Importing product %d from %s", productID, cfg.WooCommerceURL)
	runErr := orchestrator.RunOne(productID)

	if err := db.Close(); err != nil {
		logger.Error("Failed to close database: %v", err)
	}

	if runErr != nil {
		logger.Error("Import failed: %v", runErr)
		os.Exit(1)
	}

	counters := orchestrator.Counters()
	logger.Info("Imported %d product(s) with %d variation(s)", counters.Products, counters.Variations)
}
