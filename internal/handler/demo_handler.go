package handler

import (
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"dash0times/internal/inject"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	flakyFailureRate   = 0.3
	cacheHitRate       = 0.7
	analysisIterations = 1_000_000
	recentArticleLimit = 5
	weatherLocation    = "San Francisco"
)

var weatherConditions = []string{"sunny", "cloudy", "rainy", "foggy"}

// DemoHandler serves the routes that exist to produce interesting traces:
// CPU work, flaky dependencies, database round trips, outbound calls, disk
// I/O and cache lookups.
type DemoHandler struct {
	inject    *inject.Injector
	analytics AnalyticsStore
	cache     CacheWriter
	prober    Prober
	tempDir   string
	now       func() time.Time
}

func NewDemoHandler(deps Deps) *DemoHandler {
	deps = deps.withDefaults()
	return &DemoHandler{
		inject:    deps.Injector,
		analytics: deps.Analytics,
		cache:     deps.Cache,
		prober:    deps.Prober,
		tempDir:   deps.TempDir,
		now:       deps.Now,
	}
}

func (h *DemoHandler) Analyze(c *gin.Context) {
	start := h.now()

	result := 0.0
	for i := 0; i < analysisIterations; i++ {
		result += math.Sqrt(float64(i)) * math.Sin(float64(i))
	}

	if !pause(c, h.inject, 500, 800) {
		return
	}

	end := h.now()
	c.JSON(http.StatusOK, AnalyzeResponse{
		Result:    fmt.Sprintf("%.2f", result),
		Duration:  end.Sub(start).Milliseconds(),
		Timestamp: isoTime(end),
	})
}

func (h *DemoHandler) FlakyService(c *gin.Context) {
	if h.inject.ShouldFail(flakyFailureRate) {
		slog.Warn("induced external service failure")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "External service temporarily unavailable"})
		return
	}

	if !pause(c, h.inject, 100, 500) {
		return
	}

	c.JSON(http.StatusOK, FlakyResponse{Status: "success", Data: "External service data"})
}

func (h *DemoHandler) DatabaseQuery(c *gin.Context) {
	ctx := c.Request.Context()

	if h.analytics == nil {
		slog.Error("error running database query", "error", "query store not configured")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}

	total, err := h.analytics.CountArticles(ctx)
	if err != nil {
		slog.Error("error counting articles", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}
	if !pause(c, h.inject, 200, 400) {
		return
	}

	authors, err := h.analytics.DistinctAuthors(ctx)
	if err != nil {
		slog.Error("error fetching authors", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}
	if !pause(c, h.inject, 300, 600) {
		return
	}

	recent, err := h.analytics.RecentArticles(ctx, recentArticleLimit)
	if err != nil {
		slog.Error("error fetching recent articles", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}
	if !pause(c, h.inject, 100, 200) {
		return
	}

	c.JSON(http.StatusOK, DatabaseQueryResponse{
		TotalArticles:  total,
		TotalAuthors:   len(authors),
		RecentArticles: len(recent),
		QueryTime:      h.now().UnixMilli(),
	})
}

func (h *DemoHandler) ExternalWeather(c *gin.Context) {
	if h.prober != nil {
		if err := h.prober.Probe(c.Request.Context()); err != nil {
			slog.Info("external API call failed, using mock data", "error", err)
		}
	}

	if !pause(c, h.inject, 300, 700) {
		return
	}

	c.JSON(http.StatusOK, WeatherResponse{
		Location:    weatherLocation,
		Temperature: 10 + h.inject.IntN(30),
		Condition:   weatherConditions[h.inject.IntN(len(weatherConditions))],
		Humidity:    h.inject.IntN(100),
		Timestamp:   isoTime(h.now()),
	})
}

func (h *DemoHandler) FileOperations(c *gin.Context) {
	now := h.now()

	if err := os.MkdirAll(h.tempDir, 0o755); err != nil {
		slog.Error("error creating temp dir", "error", err, "dir", h.tempDir)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "File operations failed"})
		return
	}

	fileName := fmt.Sprintf("temp-%d-%s.txt", now.UnixMilli(), uuid.NewString()[:8])
	path := filepath.Join(h.tempDir, fileName)
	defer func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			slog.Warn("error removing temp file", "error", err, "path", path)
		}
	}()

	content := fmt.Sprintf("Temporary file created at %s\nRandom data: %s", isoTime(now), uuid.NewString())
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		slog.Error("error writing temp file", "error", err, "path", path)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "File operations failed"})
		return
	}
	if !pause(c, h.inject, 100, 200) {
		return
	}

	read, err := os.ReadFile(path)
	if err != nil {
		slog.Error("error reading temp file", "error", err, "path", path)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "File operations failed"})
		return
	}
	if !pause(c, h.inject, 50, 100) {
		return
	}

	if err := os.Remove(path); err != nil {
		slog.Error("error deleting temp file", "error", err, "path", path)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "File operations failed"})
		return
	}

	c.JSON(http.StatusOK, FileOperationsResponse{
		Operation:     "success",
		FileName:      fileName,
		ContentLength: len(read),
		Timestamp:     isoTime(h.now()),
	})
}

func (h *DemoHandler) CacheDemo(c *gin.Context) {
	key := c.Param("key")

	// lookup
	if !pause(c, h.inject, 10, 30) {
		return
	}

	if h.inject.Chance(cacheHitRate) {
		c.JSON(http.StatusOK, CacheDemoResponse{
			Source:    "cache",
			Key:       key,
			Data:      "Cached data for " + key,
			Timestamp: isoTime(h.now()),
		})
		return
	}

	// database fetch, then cache store
	if !pause(c, h.inject, 200, 500) {
		return
	}
	data := "Fresh data for " + key
	if !pause(c, h.inject, 20, 50) {
		return
	}

	if h.cache != nil {
		if err := h.cache.Set(c.Request.Context(), key, data); err != nil {
			slog.Warn("error writing cache entry", "error", err, "key", key)
		}
	}

	c.JSON(http.StatusOK, CacheDemoResponse{
		Source:    "database",
		Key:       key,
		Data:      data,
		Timestamp: isoTime(h.now()),
	})
}
