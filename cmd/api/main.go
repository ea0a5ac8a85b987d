package main

import (
	"context"
	"log"
	"log/slog"
	"math/rand/v2"
	"os"

	"dash0times/db"
	"dash0times/internal/config"
	"dash0times/internal/fixture"
	"dash0times/internal/handler"
	"dash0times/internal/inject"
	"dash0times/internal/logging"
	"dash0times/internal/probe"
	"dash0times/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {

	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatalf("error parsing log level: %v", err)
	}
	logging.Init(level, cfg.LogFormat, os.Stdout)
	gin.SetMode(gin.ReleaseMode)

	seed := rand.Uint64()
	if cfg.FixtureSeed != nil {
		seed = *cfg.FixtureSeed
	}
	articles, err := fixture.New(rand.New(rand.NewPCG(seed, seed)))
	if err != nil {
		log.Fatalf("error building article fixtures: %v", err)
	}

	conn, err := db.OpenMemory()
	if err != nil {
		log.Fatalf("error opening query store: %v", err)
	}
	store := repository.NewQueryStore(conn)
	defer store.Close()

	ctx := context.Background()
	if err := store.Init(ctx, articles.All()); err != nil {
		log.Fatalf("error initializing query store: %v", err)
	}
	slog.Info("query store ready", "articles", articles.Len(), "fixture_seed", seed)

	deps := handler.Deps{
		Articles:  articles,
		Injector:  inject.New(nil),
		Analytics: repository.NewArticleRepository(store),
		TempDir:   cfg.TempDir,
	}

	if cfg.RedisURL != "" {
		rdb, err := db.ConnectRedis(ctx, cfg.RedisURL)
		if err != nil {
			slog.Warn("redis unavailable, cache writes disabled", "error", err)
		} else {
			cache := db.NewRedisCache(rdb, cfg.CacheTTL)
			defer cache.Close()
			deps.Cache = cache
		}
	}

	if cfg.ProbeURL != "" {
		deps.Prober = probe.New(cfg.ProbeURL, cfg.ProbeTimeout)
	}

	r := handler.NewRouter(deps, cfg.AllowedOrigins)

	slog.Info("server listening", "addr", cfg.Addr())
	err = r.Run(cfg.Addr())
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
