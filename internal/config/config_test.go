package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.ListenPort != "127.0.0.1:8765" {
		t.Errorf("ListenPort = %q, want 127.0.0.1:8765", cfg.ListenPort)
	}
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 5s", cfg.ShutdownTimeout)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.DataPath != "linkdeck.db" {
		t.Errorf("DataPath = %q, want linkdeck.db", cfg.DataPath)
	}
	if cfg.FaviconCacheSize != 200 {
		t.Errorf("FaviconCacheSize = %d, want 200", cfg.FaviconCacheSize)
	}
	if cfg.FaviconCacheExpiry != 7*24*time.Hour {
		t.Errorf("FaviconCacheExpiry = %v, want 168h", cfg.FaviconCacheExpiry)
	}
	if cfg.DuplicateThreshold != 0.8 {
		t.Errorf("DuplicateThreshold = %v, want 0.8", cfg.DuplicateThreshold)
	}
	if cfg.SearchHistoryLimit != 20 {
		t.Errorf("SearchHistoryLimit = %d, want 20", cfg.SearchHistoryLimit)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("LINKDECK_LISTEN_PORT", ":9000")
	t.Setenv("LINKDECK_LOG_LEVEL", "debug")
	t.Setenv("LINKDECK_DATA_PATH", "/tmp/test.db")
	t.Setenv("LINKDECK_FAVICON_CACHE_SIZE", "50")
	t.Setenv("LINKDECK_FAVICON_CACHE_EXPIRY", "24h")
	t.Setenv("LINKDECK_DUPLICATE_THRESHOLD", "0.9")
	t.Setenv("LINKDECK_PRETTY_LOG", "false")

	cfg := Load()

	if cfg.ListenPort != ":9000" {
		t.Errorf("ListenPort = %q, want :9000", cfg.ListenPort)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.DataPath != "/tmp/test.db" {
		t.Errorf("DataPath = %q, want /tmp/test.db", cfg.DataPath)
	}
	if cfg.FaviconCacheSize != 50 {
		t.Errorf("FaviconCacheSize = %d, want 50", cfg.FaviconCacheSize)
	}
	if cfg.FaviconCacheExpiry != 24*time.Hour {
		t.Errorf("FaviconCacheExpiry = %v, want 24h", cfg.FaviconCacheExpiry)
	}
	if cfg.DuplicateThreshold != 0.9 {
		t.Errorf("DuplicateThreshold = %v, want 0.9", cfg.DuplicateThreshold)
	}
	if cfg.PrettyLog {
		t.Error("PrettyLog = true, want false")
	}
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("LINKDECK_FAVICON_CACHE_SIZE", "not-a-number")
	t.Setenv("LINKDECK_DUPLICATE_THRESHOLD", "high")
	t.Setenv("LINKDECK_SHUTDOWN_TIMEOUT", "soon")

	cfg := Load()

	if cfg.FaviconCacheSize != 200 {
		t.Errorf("FaviconCacheSize = %d, want the default 200", cfg.FaviconCacheSize)
	}
	if cfg.DuplicateThreshold != 0.8 {
		t.Errorf("DuplicateThreshold = %v, want the default 0.8", cfg.DuplicateThreshold)
	}
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Errorf("ShutdownTimeout = %v, want the default 5s", cfg.ShutdownTimeout)
	}
}
