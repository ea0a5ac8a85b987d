package loadgen

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

func TestSchedule_RunsUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ticks := make(chan struct{}, 10)
	done := make(chan error, 1)
	go func() {
		done <- Schedule(ctx, "@every 1s", func(context.Context) {
			ticks <- struct{}{}
		})
	}()

	select {
	case <-ticks:
	case <-time.After(5 * time.Second):
		t.Fatal("no tick within 5s")
	}

	cancel()

	select {
	case err := <-done:
		assert.Equal(t, nil, err)
	case <-time.After(5 * time.Second):
		t.Fatal("schedule did not stop after cancel")
	}
}

func TestSchedule_InvalidSpec(t *testing.T) {
	err := Schedule(context.Background(), "not a cron spec", func(context.Context) {})
	assert.NotEqual(t, nil, err)
}
