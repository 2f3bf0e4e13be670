package cache

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Pruner periodically deletes expired cache rows. It only does maintenance:
// no background re-qualification ever runs.
type Pruner struct {
	cron  *cron.Cron
	store Store
	ttl   time.Duration
}

// NewPruner creates a Pruner that removes rows older than twice the TTL,
// keeping the current and previous buckets intact.
func NewPruner(store Store, ttl time.Duration) *Pruner {
	return &Pruner{
		cron:  cron.New(cron.WithSeconds()),
		store: store,
		ttl:   ttl,
	}
}

// Start registers the prune job under the given cron spec and starts the
// scheduler.
func (p *Pruner) Start(spec string) error {
	if _, err := p.cron.AddFunc(spec, p.prune); err != nil {
		return fmt.Errorf("register prune task: %w", err)
	}
	p.cron.Start()
	log.Info().Str("cron", spec).Msg("cache pruner started")
	return nil
}

// Stop stops the scheduler gracefully.
func (p *Pruner) Stop() {
	p.cron.Stop()
	log.Info().Msg("cache pruner stopped")
}

func (p *Pruner) prune() {
	removed, err := p.store.Prune(time.Now().Add(-2 * p.ttl))
	if err != nil {
		log.Error().Err(err).Msg("prune analysis cache")
		return
	}
	if removed > 0 {
		log.Info().Int64("rows", removed).Msg("pruned expired cache entries")
	}
}
