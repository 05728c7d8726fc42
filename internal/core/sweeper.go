package core

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Sweeper periodically drops expired messages from a Store.
type Sweeper struct {
	store    *Store
	limiter  *RateLimiter
	clock    Clock
	expiry   int64
	interval time.Duration
	log      *zerolog.Logger
}

// NewSweeper builds a sweeper. limiter may be nil.
func NewSweeper(store *Store, limiter *RateLimiter, clock Clock, limits Limits, logger *zerolog.Logger) *Sweeper {
	limits = limits.withDefaults()
	if clock == nil {
		clock = SystemClock{}
	}
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Sweeper{
		store:    store,
		limiter:  limiter,
		clock:    clock,
		expiry:   seconds(limits.MessageExpiry),
		interval: limits.SweepInterval,
		log:      logger,
	}
}

// Run ticks until ctx is done.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

// Sweep removes at most one expired message per room. Backlogs drain over
// subsequent ticks.
func (s *Sweeper) Sweep() int {
	removed := s.store.ExpireOne(s.clock.Now(), s.expiry)
	if removed > 0 {
		s.log.Debug().Int("removed", removed).Msg("expired messages wiped")
	}
	if s.limiter != nil {
		if dropped := s.limiter.Compact(); dropped > 0 {
			s.log.Debug().Int("dropped", dropped).Msg("idle room windows dropped")
		}
	}
	return removed
}
