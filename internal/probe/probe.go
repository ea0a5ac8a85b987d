// Package probe makes best-effort outbound HTTP calls whose only purpose is to
// show up as client spans. The response is read and discarded; failures are
// reported to the caller for logging and never change the caller's outcome.
package probe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

type Prober struct {
	url        string
	httpClient *http.Client
}

// New returns a Prober for url. An empty url yields a disabled Prober.
func New(url string, timeout time.Duration) *Prober {
	return &Prober{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (p *Prober) Enabled() bool {
	return p != nil && p.url != ""
}

// Probe issues a GET against the configured URL and drains the body.
func (p *Prober) Probe(ctx context.Context) error {
	if !p.Enabled() {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return fmt.Errorf("probe request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("probe fetch: %w", err)
	}
	defer resp.Body.Close()

	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		return fmt.Errorf("probe read: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("probe status %d", resp.StatusCode)
	}

	return nil
}
