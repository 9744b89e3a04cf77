package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-agro-keeper/internal/logger"
)

const defaultPruneInterval = time.Hour

// ExpiredTokenPruner periodically removes access tokens whose expiry passed.
// Expired tokens are already rejected by the authentication gate, so pruning
// only keeps the table small.
type ExpiredTokenPruner struct {
	pruner   TokenPruner
	interval time.Duration

	logger *logger.Logger
}

// NewExpiredTokenPruner returns a pruner running every interval. A zero or
// negative interval defaults to one hour.
func NewExpiredTokenPruner(pruner TokenPruner, interval time.Duration, logger *logger.Logger) *ExpiredTokenPruner {
	if interval <= 0 {
		interval = defaultPruneInterval
	}
	return &ExpiredTokenPruner{
		pruner:   pruner,
		interval: interval,
		logger:   logger,
	}
}

// Run prunes once at start and then on every tick until ctx is cancelled.
func (p *ExpiredTokenPruner) Run(ctx context.Context) {
	p.logger.Info().Dur("interval", p.interval).Msg("expired token pruner started")

	p.prune(ctx)

	t := time.NewTicker(p.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info().Msg("expired token pruner stopped")
			return
		case <-t.C:
			p.prune(ctx)
		}
	}
}

func (p *ExpiredTokenPruner) prune(ctx context.Context) {
	deleted, err := p.pruner.PruneExpiredTokens(ctx)
	if err != nil {
		if ctx.Err() == nil {
			p.logger.Err(err).Str("func", "*ExpiredTokenPruner.prune").Msg("error pruning expired tokens")
		}
		return
	}
	if deleted > 0 {
		p.logger.Info().Int64("deleted", deleted).Msg("expired tokens pruned")
	}
}
