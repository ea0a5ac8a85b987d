package loadgen

import (
	"context"
	"fmt"

	"dash0times/internal/logging"

	"github.com/robfig/cron/v3"
)

// Schedule calls fn on every tick of the cron spec until ctx is cancelled.
// Ticks that arrive while fn is still running are skipped.
func Schedule(ctx context.Context, spec string, fn func(ctx context.Context)) error {
	logger := logging.New("scheduler")

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(spec, func() { fn(ctx) }); err != nil {
		return fmt.Errorf("add cron job: %w", err)
	}

	c.Start()
	logger.Info("schedule started", "spec", spec)

	<-ctx.Done()
	<-c.Stop().Done()

	logger.Info("schedule stopped", "spec", spec)
	return nil
}
