package engine

import (
	"context"
	"time"
)

// DefaultTickRate is the target ticks-per-second cap for realtime
// runs. An overrunning tick simply delays the next one; there is no
// catch-up policy.
const DefaultTickRate = 60

// Run drives the engine until ctx is canceled, steps physics ticks
// have completed, or onTick returns false. rate caps ticks per second;
// rate <= 0 runs unthrottled. Paused ticks still invoke onTick but do
// not advance physics. steps <= 0 means run until stopped.
func (e *Engine) Run(ctx context.Context, rate, steps int, onTick func(tick int) bool) error {
	var tick <-chan time.Time
	if rate > 0 {
		ticker := time.NewTicker(time.Second / time.Duration(rate))
		defer ticker.Stop()
		tick = ticker.C
	}

	done := 0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if tick != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-tick:
			}
		}

		if !e.paused {
			e.Step()
			done++
		}
		if onTick != nil && !onTick(done) {
			return nil
		}
		if steps > 0 && done >= steps {
			return nil
		}
	}
}
