package worker

import (
	"sync"

	"catsync/internal/events"
	"catsync/internal/logger"
)

// Processor tracks the progress of in-flight syncs from the event stream and
// logs a summary when a run finishes.
type Processor struct {
	logger *logger.Logger

	mu         sync.Mutex
	categories int
	products   int
}

func NewProcessor(logger *logger.Logger) *Processor {
	return &Processor{
		logger: logger,
	}
}

func (p *Processor) Process(event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch event.Type {
	case events.TypeSyncStarted:
		p.categories = 0
		p.products = 0
		p.logger.Info("Sync started at %s", event.Timestamp.Format("15:04:05"))
	case events.TypeCategoryImported:
		p.categories++
	case events.TypeProductImported:
		p.products++
		if p.products%100 == 0 {
			p.logger.Info("Progress: %d products imported", p.products)
		}
	case events.TypeSyncCompleted:
		p.logger.Info("Sync completed: %v", event.Data)
	case events.TypeSyncFailed:
		p.logger.Error("Sync failed: %v", event.Data)
	default:
		p.logger.Debug("Ignoring event type %q", event.Type)
	}

	return nil
}

// Tallies returns the category and product counts seen since the last
// sync.started event.
func (p *Processor) Tallies() (categories, products int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.categories, p.products
}
