package events

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"catsync/internal/logger"

	"github.com/segmentio/kafka-go"
)

const Topic = "catalog-sync-events"

const (
	TypeSyncStarted      = "sync.started"
	TypeCategoryImported = "category.imported"
	TypeProductImported  = "product.imported"
	TypeSyncCompleted    = "sync.completed"
	TypeSyncFailed       = "sync.failed"
)

type Event struct {
	Type      string                 `json:"type"`
	Data      map[string]interface{} `json:"data,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// Publisher emits sync progress events to Kafka. A nil Publisher is a valid
// no-op, so the sync CLI works without brokers configured.
type Publisher struct {
	writer *kafka.Writer
	logger *logger.Logger
}

func NewPublisher(brokers string, logger *logger.Logger) *Publisher {
	if brokers == "" {
		return nil
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(strings.Split(brokers, ",")...),
		Topic:        Topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 100 * time.Millisecond,
	}

	return &Publisher{
		writer: writer,
		logger: logger,
	}
}

// Publish sends one event. Failures are logged and swallowed: progress events
// are observational and must never abort a sync.
func (p *Publisher) Publish(eventType string, data map[string]interface{}) {
	if p == nil {
		return
	}

	event := Event{
		Type:      eventType,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("Failed to marshal event %s: %v", eventType, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, kafka.Message{Value: payload}); err != nil {
		p.logger.Error("Failed to publish event %s: %v", eventType, err)
	}
}

func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	return p.writer.Close()
}
