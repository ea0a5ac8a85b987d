package handler

import (
	"context"
	"encoding/json"
	"math"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"dash0times/internal/inject"
	"dash0times/internal/inject/injecttest"
	"dash0times/internal/model"

	"github.com/gin-gonic/gin"
)

var testNow = time.Date(2026, 3, 14, 15, 9, 26, 535_000_000, time.UTC)

type fakeArticles struct {
	articles []model.Article
}

func (f *fakeArticles) All() []model.Article {
	out := make([]model.Article, len(f.articles))
	copy(out, f.articles)
	return out
}

func (f *fakeArticles) ByID(id string) (model.Article, bool) {
	for _, a := range f.articles {
		if a.ID == id {
			return a, true
		}
	}
	return model.Article{}, false
}

func sampleArticles() *fakeArticles {
	return &fakeArticles{articles: []model.Article{
		{
			ID:          "1",
			Title:       "Getting Started with OpenTelemetry",
			Excerpt:     "Learn the basics of tracing.",
			Body:        "Full body one.",
			Tags:        []string{"opentelemetry", "tracing"},
			PublishedAt: time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC),
			Author:      "Sarah Chen",
		},
		{
			ID:          "2",
			Title:       "Metrics vs Logs",
			Excerpt:     "Understanding the pillars.",
			Body:        "Full body two.",
			Tags:        []string{"metrics", "Kubernetes"},
			PublishedAt: time.Date(2026, 2, 1, 9, 30, 0, 0, time.UTC),
			Author:      "Emily Watson",
		},
		{
			ID:          "3",
			Title:       "Collector Patterns",
			Excerpt:     "Deploying the OpenTelemetry collector.",
			Body:        "Full body three.",
			Tags:        []string{"collector"},
			PublishedAt: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
			Author:      "Robert Chen",
		},
		{
			ID:          "4",
			Title:       "Cost Optimization",
			Excerpt:     "Spend less on telemetry.",
			Body:        "Full body four.",
			PublishedAt: time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC),
			Author:      "Kevin Wu",
		},
	}}
}

type fakeAnalytics struct {
	count   int
	authors []string
	recent  []model.Article
	err     error
}

func (f *fakeAnalytics) CountArticles(ctx context.Context) (int, error) {
	return f.count, f.err
}

func (f *fakeAnalytics) DistinctAuthors(ctx context.Context) ([]string, error) {
	return f.authors, f.err
}

func (f *fakeAnalytics) RecentArticles(ctx context.Context, limit int) ([]model.Article, error) {
	return f.recent, f.err
}

type fakeCache struct {
	mu   sync.Mutex
	sets map[string]string
	err  error
}

func (f *fakeCache) Set(ctx context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sets == nil {
		f.sets = map[string]string{}
	}
	f.sets[key] = value
	return f.err
}

type fakeProber struct {
	calls int
	err   error
}

func (f *fakeProber) Probe(ctx context.Context) error {
	f.calls++
	return f.err
}

var testOrigins = []string{"http://localhost:5173", "http://localhost:3000"}

// newTestRouter builds the full router with a recording sleeper so injected
// delays are captured instead of waited out.
func newTestRouter(deps Deps, src inject.Source) (*gin.Engine, *injecttest.Sleeper) {
	gin.SetMode(gin.TestMode)

	inj, sleeper := injecttest.New(src)
	deps.Injector = inj
	if deps.Articles == nil {
		deps.Articles = sampleArticles()
	}
	if deps.Now == nil {
		deps.Now = func() time.Time { return testNow }
	}

	return NewRouter(deps, testOrigins), sleeper
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decoding response %q: %v", w.Body.String(), err)
	}
}

func assertWaitIn(t *testing.T, got time.Duration, minMs, maxMs int) {
	t.Helper()
	if got < time.Duration(minMs)*time.Millisecond || got > time.Duration(maxMs)*time.Millisecond {
		t.Errorf("wait %v outside [%dms, %dms]", got, minMs, maxMs)
	}
}

// withinSigma reports whether hits out of n is within k standard deviations
// of the expected rate p.
func withinSigma(hits, n int, p, k float64) bool {
	mean := float64(n) * p
	sigma := math.Sqrt(float64(n) * p * (1 - p))
	diff := float64(hits) - mean
	if diff < 0 {
		diff = -diff
	}
	return diff <= k*sigma
}
