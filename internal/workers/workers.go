package workers

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-agro-keeper/internal/config"
	"github.com/MKhiriev/go-agro-keeper/internal/logger"
)

type Workers struct {
	workers []Worker

	wg sync.WaitGroup
}

// NewWorkers creates the background workers of the server.
func NewWorkers(pruner TokenPruner, cfg config.Workers, logger *logger.Logger) *Workers {
	return &Workers{
		workers: []Worker{
			NewExpiredTokenPruner(pruner, cfg.TokenPruneInterval, logger),
		},
	}
}

// Run starts every worker in its own goroutine and returns immediately.
// Workers stop when ctx is cancelled; use Wait to block until they do.
func (w *Workers) Run(ctx context.Context) {
	for _, worker := range w.workers {
		w.wg.Go(func() {
			worker.Run(ctx)
		})
	}
}

// Wait blocks until every started worker has returned.
func (w *Workers) Wait() {
	w.wg.Wait()
}
