// Package inject adds artificial latency and induced failures to request
// handling. All randomness comes from an explicit Source so callers can pin
// outcomes in tests.
package inject

import (
	"context"
	"math/rand/v2"
	"time"
)

// Source is the random number generator behind every draw.
type Source interface {
	IntN(n int) int
	Float64() float64
}

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

type Injector struct {
	rnd   Source
	sleep SleepFunc
}

type Option func(*Injector)

// WithSleep replaces the timer-based wait, mostly for tests.
func WithSleep(fn SleepFunc) Option {
	return func(i *Injector) {
		i.sleep = fn
	}
}

// New returns an Injector drawing from rnd. A nil rnd uses the
// goroutine-safe top-level math/rand/v2 generator.
func New(rnd Source, opts ...Option) *Injector {
	if rnd == nil {
		rnd = globalSource{}
	}

	i := &Injector{rnd: rnd, sleep: sleepContext}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Delay suspends the caller for a uniformly random whole number of
// milliseconds in [minMs, maxMs] and returns the drawn duration. It returns
// early with the context error when ctx is cancelled first.
func (i *Injector) Delay(ctx context.Context, minMs, maxMs int) (time.Duration, error) {
	d := i.Draw(minMs, maxMs)
	return d, i.sleep(ctx, d)
}

// Draw picks a delay the way Delay does without waiting.
func (i *Injector) Draw(minMs, maxMs int) time.Duration {
	if maxMs < minMs {
		minMs, maxMs = maxMs, minMs
	}
	if minMs < 0 {
		minMs = 0
	}
	if maxMs < 0 {
		maxMs = 0
	}
	ms := minMs + i.rnd.IntN(maxMs-minMs+1)
	return time.Duration(ms) * time.Millisecond
}

// Chance reports true with probability p.
func (i *Injector) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return i.rnd.Float64() < p
}

// ShouldFail reports whether an induced failure should fire, with probability p.
func (i *Injector) ShouldFail(p float64) bool {
	return i.Chance(p)
}

// Pick returns n distinct indexes from [0, size) in random order.
func (i *Injector) Pick(size, n int) []int {
	if n > size {
		n = size
	}
	idx := make([]int, size)
	for k := range idx {
		idx[k] = k
	}
	for k := 0; k < n; k++ {
		j := k + i.rnd.IntN(size-k)
		idx[k], idx[j] = idx[j], idx[k]
	}
	return idx[:n]
}

// IntN exposes the source for handlers that need plain random values.
func (i *Injector) IntN(n int) int {
	return i.rnd.IntN(n)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

type globalSource struct{}

func (globalSource) IntN(n int) int    { return rand.IntN(n) }
func (globalSource) Float64() float64 { return rand.Float64() }
