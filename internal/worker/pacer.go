package worker

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// Pacer inserts a randomized delay between consecutive operations.
// Discovery queries are paced with a uniform delay drawn from [min, max)
// so the request pattern does not look like a fixed-interval bot and the
// provider is less likely to throttle the run.
type Pacer struct {
	min time.Duration
	max time.Duration
	rng *rand.Rand
	mu  sync.Mutex
}

// NewPacer creates a pacer with the given delay bounds. If max <= min the
// delay is fixed at min.
func NewPacer(min, max time.Duration) *Pacer {
	if min < 0 {
		min = 0
	}
	if max < min {
		max = min
	}

	return &Pacer{
		min: min,
		max: max,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Wait blocks for a randomized delay or until the context is cancelled.
func (p *Pacer) Wait(ctx context.Context) error {
	d := p.delay()
	if d == 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// delay draws a uniform duration from [min, max).
func (p *Pacer) delay() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.max == p.min {
		return p.min
	}
	return p.min + time.Duration(p.rng.Int63n(int64(p.max-p.min)))
}
