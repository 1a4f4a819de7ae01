package handlers

import (
	"net/http"
	"sync"
	"time"

	"catsync/internal/catalog"
	"catsync/internal/config"
	"catsync/internal/events"
	"catsync/internal/logger"
	"catsync/internal/services/woocommerce"
	"catsync/internal/syncer"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SyncHandler struct {
	db        *gorm.DB
	logger    *logger.Logger
	config    *config.Config
	publisher *events.Publisher

	mu      sync.Mutex
	current *syncer.Orchestrator
	running bool
}

func NewSyncHandler(db *gorm.DB, logger *logger.Logger, cfg *config.Config, publisher *events.Publisher) *SyncHandler {
	return &SyncHandler{
		db:        db,
		logger:    logger,
		config:    cfg,
		publisher: publisher,
	}
}

// Start kicks off a full catalog sync in the background. Only one sync may
// run at a time.
func (h *SyncHandler) Start(c *gin.Context) {
	if h.config.WooCommerceURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "WooCommerce store is not configured"})
		return
	}

	h.mu.Lock()
	if h.running {
		h.mu.Unlock()
		c.JSON(http.StatusConflict, gin.H{"error": "Sync already running"})
		return
	}

	client := woocommerce.NewClient(
		h.config.WooCommerceURL,
		h.config.WooConsumerKey,
		h.config.WooConsumerSecret,
		time.Duration(h.config.HTTPTimeout)*time.Second,
		h.logger,
	)
	writer := catalog.NewWriter(h.db, h.logger)
	orchestrator := syncer.NewOrchestrator(client, writer, h.publisher, h.logger, h.config.SyncPerPage)

	h.current = orchestrator
	h.running = true
	h.mu.Unlock()

	go func() {
		defer func() {
			h.mu.Lock()
			h.running = false
			h.mu.Unlock()
		}()
		if err := orchestrator.Run(); err != nil {
			h.logger.Error("Sync failed: %v", err)
		}
	}()

	c.JSON(http.StatusAccepted, gin.H{"message": "Sync started"})
}

// Status reports the state and counters of the latest sync.
func (h *SyncHandler) Status(c *gin.Context) {
	h.mu.Lock()
	orchestrator := h.current
	running := h.running
	h.mu.Unlock()

	if orchestrator == nil {
		c.JSON(http.StatusOK, gin.H{"state": syncer.StateIdle, "running": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"state":    orchestrator.State(),
		"running":  running,
		"counters": orchestrator.Counters(),
	})
}
