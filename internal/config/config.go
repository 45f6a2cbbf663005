package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8765"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	DataPath  string // path to the sqlite file, ":memory:" for ephemeral runs
	RulesFile string // optional path to a custom classifier rules yaml file

	FaviconCacheSize   int           // max number of cached favicon domains
	FaviconCacheExpiry time.Duration // entries older than this are dropped at load
	CachePruneInterval time.Duration // interval between favicon cache sweeps

	DuplicateThreshold float64 // similarity threshold for the duplicate detector
	SearchHistoryLimit int     // max number of remembered search terms
}

func Load() *Config {
	return &Config{
		// Server settings
		ListenPort:      getenv("LINKDECK_LISTEN_PORT", "127.0.0.1:8765"),
		ShutdownTimeout: mustDuration("LINKDECK_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("LINKDECK_LOG_LEVEL", "info"),
		PrettyLog: mustBool("LINKDECK_PRETTY_LOG", true),

		// Storage
		DataPath:  getenv("LINKDECK_DATA_PATH", "linkdeck.db"),
		RulesFile: getenv("LINKDECK_RULES_FILE", ""), // Optional, empty = built-in rules only

		// Favicon cache
		FaviconCacheSize:   getenvInt("LINKDECK_FAVICON_CACHE_SIZE", 200),
		FaviconCacheExpiry: mustDuration("LINKDECK_FAVICON_CACHE_EXPIRY", 7*24*time.Hour),
		CachePruneInterval: mustDuration("LINKDECK_CACHE_PRUNE_INTERVAL", 24*time.Hour),

		// Engines
		DuplicateThreshold: mustFloat("LINKDECK_DUPLICATE_THRESHOLD", 0.8),
		SearchHistoryLimit: getenvInt("LINKDECK_SEARCH_HISTORY_LIMIT", 20),
	}
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
