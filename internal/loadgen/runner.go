package loadgen

import (
	"context"
	"errors"
	"time"

	"dash0times/internal/logging"
	"dash0times/pkg/client"

	"golang.org/x/sync/errgroup"
)

type Config struct {
	Workers  int
	Requests int
	Routes   []Route
}

type Runner struct {
	client *client.Client
	cfg    Config
}

func NewRunner(c *client.Client, cfg Config) (*Runner, error) {
	if cfg.Workers < 1 {
		return nil, errors.New("workers must be at least 1")
	}
	if cfg.Requests < 1 {
		return nil, errors.New("requests must be at least 1")
	}
	if len(cfg.Routes) == 0 {
		cfg.Routes = DefaultRoutes
	}
	return &Runner{client: c, cfg: cfg}, nil
}

// Run sends cfg.Requests requests, cycling through the routes, with at most
// cfg.Workers in flight. Request failures are recorded in the report and do
// not stop the run; cancelling ctx does.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	logger := logging.New("loadgen")
	logger.Info("burst started", "workers", r.cfg.Workers, "requests", r.cfg.Requests, "routes", len(r.cfg.Routes))

	report := NewReport()
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Workers)

	for n := 0; n < r.cfg.Requests; n++ {
		if gctx.Err() != nil {
			break
		}

		route := r.cfg.Routes[n%len(r.cfg.Routes)]
		g.Go(func() error {
			began := time.Now()
			err := route.Call(gctx, r.client, n)
			report.Record(route.Name, time.Since(began), err)
			if err != nil {
				logger.Debug("request failed", "route", route.Name, "category", client.Categorize(err), "error", err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return report, err
	}
	report.Elapsed = time.Since(start)

	logger.Info("burst finished", "requests", report.Total(), "errors", report.Errors(), "elapsed", report.Elapsed)
	return report, ctx.Err()
}
