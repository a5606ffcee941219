package mockprovider

import (
	"context"
	"math/rand/v2"
	"time"
)

// Chaos supplies the randomness and waiting of the mock providers.
type Chaos struct {
	// Rand returns a value in [0, 1).
	Rand func() float64
	// Sleep waits for d or until ctx is done.
	Sleep func(ctx context.Context, d time.Duration) error
}

// DefaultChaos uses math/rand/v2 and real timers.
func DefaultChaos() Chaos {
	return Chaos{Rand: rand.Float64, Sleep: sleep}
}

func (c Chaos) withDefaults() Chaos {
	d := DefaultChaos()
	if c.Rand == nil {
		c.Rand = d.Rand
	}
	if c.Sleep == nil {
		c.Sleep = d.Sleep
	}
	return c
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
