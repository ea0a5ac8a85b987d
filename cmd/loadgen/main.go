package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"dash0times/internal/loadgen"
	"dash0times/internal/logging"
	"dash0times/pkg/client"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var flags struct {
	baseURL  string
	workers  int
	requests int
	routes   []string
	user     string
	timeout  time.Duration
	schedule string
	format   string
	logLevel string
}

var rootCmd = &cobra.Command{
	Use:   "loadgen",
	Short: "Send synthetic traffic to the Dash0 Times API",
	Long: "loadgen fires a burst of requests across the API routes and prints a\n" +
		"per-route latency and error report. With --schedule it repeats the burst\n" +
		"on a cron schedule until interrupted.",
	SilenceUsage: true,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	RunE: runLoadgen,
}

func init() {
	f := rootCmd.Flags()
	f.StringVar(&flags.baseURL, "base-url", envOr("API_BASE_URL", client.DefaultBaseURL), "API base URL")
	f.IntVar(&flags.workers, "workers", 4, "Concurrent requests")
	f.IntVar(&flags.requests, "requests", 100, "Requests per burst")
	f.StringSliceVar(&flags.routes, "routes", nil, "Comma-separated route names (default all)")
	f.StringVar(&flags.user, "user", "", "Demo user sent as x-demo-user, as id or id:plan")
	f.DurationVar(&flags.timeout, "timeout", client.DefaultTimeout, "Per-request timeout")
	f.StringVar(&flags.schedule, "schedule", "", "Cron spec to repeat the burst, e.g. \"@every 30s\"")
	f.StringVar(&flags.format, "format", "ascii", "Report format: ascii or markdown")
	f.StringVar(&flags.logLevel, "log-level", "warn", "Log level")
}

func main() {

	godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runLoadgen(cmd *cobra.Command, _ []string) error {
	level, err := logging.ParseLevel(flags.logLevel)
	if err != nil {
		return err
	}
	logging.Init(level, "text", cmd.ErrOrStderr())

	mode, err := loadgen.ParseMode(flags.format)
	if err != nil {
		return err
	}

	routes, err := loadgen.SelectRoutes(flags.routes)
	if err != nil {
		return err
	}

	c := client.New(flags.baseURL, client.WithTimeout(flags.timeout))
	if v := parseUser(flags.user); v != nil {
		c.SetDemoUser(v)
	}

	runner, err := loadgen.NewRunner(c, loadgen.Config{
		Workers:  flags.workers,
		Requests: flags.requests,
		Routes:   routes,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	burst := func(ctx context.Context) {
		report, err := runner.Run(ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			fmt.Fprintf(cmd.ErrOrStderr(), "burst failed: %v\n", err)
		}
		if report != nil && report.Total() > 0 {
			fmt.Fprintf(out, "%s  %d requests in %s\n", time.Now().Format(time.RFC3339), report.Total(), report.Elapsed.Round(time.Millisecond))
			fmt.Fprintln(out, report.Render(mode))
		}
	}

	if flags.schedule == "" {
		burst(ctx)
		return nil
	}

	return loadgen.Schedule(ctx, flags.schedule, burst)
}

func parseUser(raw string) *client.Viewer {
	if raw == "" {
		return nil
	}
	id, plan, ok := strings.Cut(raw, ":")
	if !ok || plan == "" {
		plan = "free"
	}
	return &client.Viewer{ID: id, Plan: plan}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
