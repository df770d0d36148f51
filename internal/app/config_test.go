package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/yungbote/divergex-backend/internal/platform/logger"
)

func configLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DIVERGEX_CONFIG", "")
	t.Setenv("PORT", "")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := LoadConfig(configLogger(t))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "3001" {
		t.Fatalf("port = %q, want 3001", cfg.Port)
	}
	if cfg.TokenTTL != 7*24*time.Hour {
		t.Fatalf("tokenTTL = %v, want 168h", cfg.TokenTTL)
	}
	if cfg.RateLimitMax != 100 || cfg.RateLimitWindow != 15*time.Minute {
		t.Fatalf("rate limit = %d/%v, want 100/15m", cfg.RateLimitMax, cfg.RateLimitWindow)
	}
}

func TestLoadConfigFileValues(t *testing.T) {
	path := writeConfigFile(t, `
port: "4000"
tokenTtl: 24h
rateLimit:
  max: 10
  window: 1m
redis:
  addr: localhost:6379
`)
	t.Setenv("DIVERGEX_CONFIG", path)
	t.Setenv("PORT", "")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("TOKEN_TTL_SECONDS", "")
	t.Setenv("RATE_LIMIT_MAX", "")
	t.Setenv("REDIS_ADDR", "")

	cfg, err := LoadConfig(configLogger(t))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "4000" || cfg.TokenTTL != 24*time.Hour {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.RateLimitMax != 10 || cfg.RateLimitWindow != time.Minute {
		t.Fatalf("rate limit = %d/%v", cfg.RateLimitMax, cfg.RateLimitWindow)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Fatalf("redisAddr = %q", cfg.RedisAddr)
	}
}

func TestLoadConfigEnvWinsOverFile(t *testing.T) {
	path := writeConfigFile(t, `
port: "4000"
rateLimit:
  max: 10
`)
	t.Setenv("DIVERGEX_CONFIG", path)
	t.Setenv("PORT", "5000")
	t.Setenv("RATE_LIMIT_MAX", "50")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := LoadConfig(configLogger(t))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "5000" {
		t.Fatalf("port = %q, env must win", cfg.Port)
	}
	if cfg.RateLimitMax != 50 {
		t.Fatalf("rateLimitMax = %d, env must win", cfg.RateLimitMax)
	}
}

func TestLoadConfigRejectsBadDuration(t *testing.T) {
	path := writeConfigFile(t, "tokenTtl: yesterday\n")
	t.Setenv("DIVERGEX_CONFIG", path)

	if _, err := LoadConfig(configLogger(t)); err == nil {
		t.Fatalf("invalid tokenTtl should fail")
	}
}
