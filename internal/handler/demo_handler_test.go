package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"testing"

	"dash0times/db"
	"dash0times/internal/fixture"
	"dash0times/internal/inject/injecttest"
	"dash0times/internal/repository"

	"github.com/go-playground/assert/v2"
)

func TestAnalyze(t *testing.T) {
	r, sleeper := newTestRouter(Deps{}, neverFail)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", "/api/analyze", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var res AnalyzeResponse
	decode(t, w, &res)
	assert.MatchRegex(t, res.Result, regexp.MustCompile(`^-?\d+\.\d{2}$`))
	assert.Equal(t, "2026-03-14T15:09:26.535Z", res.Timestamp)
	assert.Equal(t, int64(0), res.Duration)

	waits := sleeper.Waits()
	assert.Equal(t, 1, len(waits))
	assertWaitIn(t, waits[0], 500, 800)
}

func TestAnalyze_GetNotRouted(t *testing.T) {
	r, _ := newTestRouter(Deps{}, neverFail)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/analyze", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFlakyService_Success(t *testing.T) {
	r, sleeper := newTestRouter(Deps{}, neverFail)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/flaky-service", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var res FlakyResponse
	decode(t, w, &res)
	assert.Equal(t, "success", res.Status)
	assert.Equal(t, "External service data", res.Data)

	waits := sleeper.Waits()
	assert.Equal(t, 1, len(waits))
	assertWaitIn(t, waits[0], 100, 500)
}

func TestFlakyService_InducedFailure(t *testing.T) {
	r, sleeper := newTestRouter(Deps{}, injecttest.Fixed{F: 0.29})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/flaky-service", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, `{"error":"External service temporarily unavailable"}`, w.Body.String())
	assert.Equal(t, 0, len(sleeper.Waits()))
}

func TestFlakyService_FailureRate(t *testing.T) {
	const n = 1000
	r, _ := newTestRouter(Deps{}, injecttest.Seeded(31337))

	failures := 0
	for i := 0; i < n; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("GET", "/api/flaky-service", nil))
		if w.Code == http.StatusServiceUnavailable {
			failures++
		}
	}

	if !withinSigma(failures, n, flakyFailureRate, 4) {
		t.Errorf("flaky service failed %d/%d times, want about %.0f%%", failures, n, flakyFailureRate*100)
	}
}

func TestDatabaseQuery_Fake(t *testing.T) {
	analytics := &fakeAnalytics{
		count:   50,
		authors: []string{"a", "b", "c"},
		recent:  sampleArticles().articles,
	}
	r, sleeper := newTestRouter(Deps{Analytics: analytics}, neverFail)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/database-query", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var res DatabaseQueryResponse
	decode(t, w, &res)
	assert.Equal(t, 50, res.TotalArticles)
	assert.Equal(t, 3, res.TotalAuthors)
	assert.Equal(t, 4, res.RecentArticles)
	assert.Equal(t, testNow.UnixMilli(), res.QueryTime)

	waits := sleeper.Waits()
	assert.Equal(t, 3, len(waits))
	assertWaitIn(t, waits[0], 200, 400)
	assertWaitIn(t, waits[1], 300, 600)
	assertWaitIn(t, waits[2], 100, 200)
}

func TestDatabaseQuery_StoreError(t *testing.T) {
	analytics := &fakeAnalytics{err: repository.ErrNotInitialized}
	r, sleeper := newTestRouter(Deps{Analytics: analytics}, neverFail)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/database-query", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, `{"error":"Database query failed"}`, w.Body.String())
	assert.Equal(t, 0, len(sleeper.Waits()))
}

func TestDatabaseQuery_InMemoryStore(t *testing.T) {
	provider, err := fixture.New(injecttest.Seeded(5))
	assert.Equal(t, nil, err)

	conn, err := db.OpenMemory()
	assert.Equal(t, nil, err)
	store := repository.NewQueryStore(conn)
	t.Cleanup(func() { store.Close() })
	assert.Equal(t, nil, store.Init(context.Background(), provider.All()))

	authors := map[string]bool{}
	for _, a := range provider.All() {
		authors[a.Author] = true
	}

	r, _ := newTestRouter(Deps{
		Articles:  provider,
		Analytics: repository.NewArticleRepository(store),
	}, neverFail)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/database-query", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var res DatabaseQueryResponse
	decode(t, w, &res)
	assert.Equal(t, 50, res.TotalArticles)
	assert.Equal(t, len(authors), res.TotalAuthors)
	assert.Equal(t, 5, res.RecentArticles)
}

func TestExternalWeather(t *testing.T) {
	tests := []struct {
		name     string
		probeErr error
	}{
		{"upstream reachable", nil},
		{"upstream unreachable", errors.New("dial tcp: connection refused")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prober := &fakeProber{err: tt.probeErr}
			r, sleeper := newTestRouter(Deps{Prober: prober}, injecttest.Seeded(11))

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest("GET", "/api/external-weather", nil))

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, 1, prober.calls)

			var res WeatherResponse
			decode(t, w, &res)
			assert.Equal(t, "San Francisco", res.Location)
			if res.Temperature < 10 || res.Temperature > 39 {
				t.Errorf("temperature %d outside [10, 39]", res.Temperature)
			}
			if res.Humidity < 0 || res.Humidity > 99 {
				t.Errorf("humidity %d outside [0, 99]", res.Humidity)
			}
			assert.Equal(t, true, slices.Contains(weatherConditions, res.Condition))

			waits := sleeper.Waits()
			assert.Equal(t, 1, len(waits))
			assertWaitIn(t, waits[0], 300, 700)
		})
	}
}

func TestFileOperations(t *testing.T) {
	dir := t.TempDir()
	r, sleeper := newTestRouter(Deps{TempDir: dir}, neverFail)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", "/api/file-operations", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var res FileOperationsResponse
	decode(t, w, &res)
	assert.Equal(t, "success", res.Operation)
	assert.Equal(t, true, strings.HasPrefix(res.FileName, "temp-"))
	assert.Equal(t, true, strings.HasSuffix(res.FileName, ".txt"))
	assert.NotEqual(t, 0, res.ContentLength)

	entries, err := os.ReadDir(dir)
	assert.Equal(t, nil, err)
	assert.Equal(t, 0, len(entries))

	waits := sleeper.Waits()
	assert.Equal(t, 2, len(waits))
	assertWaitIn(t, waits[0], 100, 200)
	assertWaitIn(t, waits[1], 50, 100)
}

func TestFileOperations_Failure(t *testing.T) {
	// a regular file where the temp directory should be
	blocker := filepath.Join(t.TempDir(), "blocker")
	assert.Equal(t, nil, os.WriteFile(blocker, []byte("x"), 0o644))

	r, _ := newTestRouter(Deps{TempDir: blocker}, neverFail)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", "/api/file-operations", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, `{"error":"File operations failed"}`, w.Body.String())
}

func TestCacheDemo_Hit(t *testing.T) {
	cache := &fakeCache{}
	r, sleeper := newTestRouter(Deps{Cache: cache}, injecttest.Fixed{F: 0.5})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/cache-demo/user-7", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var res CacheDemoResponse
	decode(t, w, &res)
	assert.Equal(t, "cache", res.Source)
	assert.Equal(t, "user-7", res.Key)
	assert.Equal(t, "Cached data for user-7", res.Data)
	assert.Equal(t, 0, len(cache.sets))

	waits := sleeper.Waits()
	assert.Equal(t, 1, len(waits))
	assertWaitIn(t, waits[0], 10, 30)
}

func TestCacheDemo_Miss(t *testing.T) {
	tests := []struct {
		name     string
		cacheErr error
	}{
		{"write ok", nil},
		{"write failed", errors.New("redis: connection refused")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cache := &fakeCache{err: tt.cacheErr}
			r, sleeper := newTestRouter(Deps{Cache: cache}, injecttest.Fixed{F: 0.7})

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest("GET", "/api/cache-demo/user-7", nil))

			assert.Equal(t, http.StatusOK, w.Code)

			var res CacheDemoResponse
			decode(t, w, &res)
			assert.Equal(t, "database", res.Source)
			assert.Equal(t, "Fresh data for user-7", res.Data)
			assert.Equal(t, "Fresh data for user-7", cache.sets["user-7"])

			waits := sleeper.Waits()
			assert.Equal(t, 3, len(waits))
			assertWaitIn(t, waits[0], 10, 30)
			assertWaitIn(t, waits[1], 200, 500)
			assertWaitIn(t, waits[2], 20, 50)
		})
	}
}

func TestCacheDemo_HitRate(t *testing.T) {
	const n = 1000
	r, _ := newTestRouter(Deps{}, injecttest.Seeded(8))

	hits := 0
	for i := 0; i < n; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("GET", "/api/cache-demo/k", nil))

		var res CacheDemoResponse
		decode(t, w, &res)
		if res.Source == "cache" {
			hits++
		}
	}

	if !withinSigma(hits, n, cacheHitRate, 4) {
		t.Errorf("cache hit %d/%d times, want about %.0f%%", hits, n, cacheHitRate*100)
	}
}
