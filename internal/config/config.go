package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultOrigins are the frontend dev servers allowed by CORS.
var DefaultOrigins = []string{"http://localhost:5173", "http://localhost:3000"}

const (
	DefaultPort         = "3001"
	DefaultProbeURL     = "https://httpbin.org/delay/1"
	DefaultProbeTimeout = 3 * time.Second
	DefaultCacheTTL     = 5 * time.Minute
	DefaultTempDir      = "temp"
	probeDisabled       = "off"
)

type Config struct {
	Port           string
	AllowedOrigins []string
	RedisURL       string
	CacheTTL       time.Duration
	ProbeURL       string
	ProbeTimeout   time.Duration
	TempDir        string
	LogLevel       string
	LogFormat      string

	// FixtureSeed pins generated publishedAt values when set.
	FixtureSeed *uint64
}

// Load reads the server configuration from the environment. Call
// godotenv.Load first to pick up a .env file.
func Load() (*Config, error) {
	cfg := &Config{
		Port:         getenv("PORT", DefaultPort),
		RedisURL:     os.Getenv("REDIS_URL"),
		ProbeURL:     getenv("WEATHER_PROBE_URL", DefaultProbeURL),
		TempDir:      getenv("TEMP_DIR", DefaultTempDir),
		LogLevel:     getenv("LOG_LEVEL", "info"),
		LogFormat:    getenv("LOG_FORMAT", "json"),
		CacheTTL:     DefaultCacheTTL,
		ProbeTimeout: DefaultProbeTimeout,
	}

	cfg.AllowedOrigins = append([]string{}, DefaultOrigins...)
	for _, origin := range strings.Split(os.Getenv("FRONTEND_URL"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
		}
	}

	if strings.EqualFold(cfg.ProbeURL, probeDisabled) {
		cfg.ProbeURL = ""
	}

	var err error
	if cfg.CacheTTL, err = durationEnv("CACHE_TTL", DefaultCacheTTL); err != nil {
		return nil, err
	}
	if cfg.ProbeTimeout, err = durationEnv("WEATHER_PROBE_TIMEOUT", DefaultProbeTimeout); err != nil {
		return nil, err
	}

	if raw := os.Getenv("FIXTURE_SEED"); raw != "" {
		seed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid FIXTURE_SEED %q: %w", raw, err)
		}
		cfg.FixtureSeed = &seed
	}

	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return nil, fmt.Errorf("invalid PORT %q: %w", cfg.Port, err)
	}

	return cfg, nil
}

func (c *Config) Addr() string {
	return ":" + c.Port
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be positive", key, raw)
	}
	return d, nil
}
