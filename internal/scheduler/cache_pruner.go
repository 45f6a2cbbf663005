package scheduler

import (
	"context"
	"time"

	"github.com/linkdeck/linkdeck/internal/favicon"
	"github.com/linkdeck/linkdeck/internal/logger"
)

// CachePruner periodically drops expired favicon cache entries.
// Load-time pruning already keeps the table correct across restarts;
// the pruner keeps a long-running process from holding week-old
// failures in memory.
type CachePruner struct {
	cache    *favicon.Cache
	logger   logger.Logger
	interval time.Duration
	stopCh   chan struct{}
}

// NewCachePruner creates a pruner over the favicon cache.
func NewCachePruner(cache *favicon.Cache, log logger.Logger, interval time.Duration) *CachePruner {
	return &CachePruner{
		cache:    cache,
		logger:   log,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic prune loop. Runs one sweep immediately.
func (p *CachePruner) Start(ctx context.Context) {
	p.sweep()

	ticker := time.NewTicker(p.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				p.sweep()
			case <-p.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the pruner.
func (p *CachePruner) Stop() {
	close(p.stopCh)
}

func (p *CachePruner) sweep() {
	removed := p.cache.Prune()
	if removed > 0 {
		p.logger.Info("favicon cache pruned",
			logger.Int("removed", removed),
			logger.Int("remaining", p.cache.Len()))
	} else {
		p.logger.Debug("no favicon cache entries to prune")
	}
}
