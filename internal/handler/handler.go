package handler

import (
	"context"
	"log/slog"
	"time"

	"dash0times/internal/inject"
	"dash0times/internal/model"

	"github.com/gin-gonic/gin"
)

type ArticleSource interface {
	All() []model.Article
	ByID(id string) (model.Article, bool)
}

type AnalyticsStore interface {
	CountArticles(ctx context.Context) (int, error)
	DistinctAuthors(ctx context.Context) ([]string, error)
	RecentArticles(ctx context.Context, limit int) ([]model.Article, error)
}

type CacheWriter interface {
	Set(ctx context.Context, key, value string) error
}

type Prober interface {
	Probe(ctx context.Context) error
}

// Deps carries everything the route handlers share. Cache and Prober are
// optional.
type Deps struct {
	Articles  ArticleSource
	Injector  *inject.Injector
	Analytics AnalyticsStore
	Cache     CacheWriter
	Prober    Prober
	TempDir   string
	Now       func() time.Time
}

func (d Deps) withDefaults() Deps {
	if d.Injector == nil {
		d.Injector = inject.New(nil)
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.TempDir == "" {
		d.TempDir = "temp"
	}
	return d
}

// isoMillis matches the millisecond precision UTC timestamps the frontend
// expects in response bodies.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

func isoTime(t time.Time) string {
	return t.UTC().Format(isoMillis)
}

// pause runs an injected delay for the current request. It returns false and
// aborts the chain when the client went away during the wait.
func pause(c *gin.Context, inj *inject.Injector, minMs, maxMs int) bool {
	d, err := inj.Delay(c.Request.Context(), minMs, maxMs)
	if err != nil {
		slog.Info("request cancelled during delay", "path", c.FullPath(), "error", err)
		c.Abort()
		return false
	}

	slog.Debug("injected delay", "path", c.FullPath(), "delay_ms", d.Milliseconds())
	return true
}
