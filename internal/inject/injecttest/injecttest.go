// Package injecttest provides deterministic stand-ins for inject.Injector
// dependencies.
package injecttest

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"dash0times/internal/inject"
)

// Sleeper records requested waits instead of sleeping.
type Sleeper struct {
	mu    sync.Mutex
	waits []time.Duration
}

func (s *Sleeper) Sleep(ctx context.Context, d time.Duration) error {
	s.mu.Lock()
	s.waits = append(s.waits, d)
	s.mu.Unlock()
	return ctx.Err()
}

func (s *Sleeper) Waits() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]time.Duration, len(s.waits))
	copy(out, s.waits)
	return out
}

func (s *Sleeper) Reset() {
	s.mu.Lock()
	s.waits = nil
	s.mu.Unlock()
}

// Fixed always returns the same draw: Float64 yields F, IntN yields
// min(I, n-1).
type Fixed struct {
	F float64
	I int
}

func (f Fixed) Float64() float64 { return f.F }

func (f Fixed) IntN(n int) int {
	if f.I >= n {
		return n - 1
	}
	return f.I
}

// Seeded returns a deterministic PCG-backed source.
func Seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// New builds an Injector over src whose waits are captured by the returned Sleeper.
func New(src inject.Source) (*inject.Injector, *Sleeper) {
	s := &Sleeper{}
	return inject.New(src, inject.WithSleep(s.Sleep)), s
}
