package service

import (
	"context"
	"time"

	"relay_control/internal/logger"
)

// ReleaseTimer drives RelayService.Tick on a fixed interval.
type ReleaseTimer struct {
	relay *RelayService
	log   *logger.Logger
}

// NewReleaseTimer returns a timer for relay. log may be nil.
func NewReleaseTimer(relay *RelayService, log *logger.Logger) *ReleaseTimer {
	return &ReleaseTimer{relay: relay, log: log}
}

// Run ticks at the given interval until ctx is canceled.
func (r *ReleaseTimer) Run(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			if _, err := r.relay.Tick(ctx, now); err != nil && r.log != nil && ctx.Err() == nil {
				r.log.Errorw("relay_tick_failed", "err", err)
			}
		}
	}
}
