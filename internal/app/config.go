package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/divergex-backend/internal/platform/envutil"
	"github.com/yungbote/divergex-backend/internal/platform/logger"
)

type Config struct {
	Port            string
	Environment     string
	Version         string
	JWTSecretKey    string
	TokenTTL        time.Duration
	RateLimitMax    int
	RateLimitWindow time.Duration
	RedisAddr       string
	RedisPassword   string
}

// fileConfig is the optional YAML override file named by DIVERGEX_CONFIG.
// Environment variables still win over file values.
type fileConfig struct {
	Port      string `yaml:"port"`
	TokenTTL  string `yaml:"tokenTtl"`
	RateLimit struct {
		Max    int    `yaml:"max"`
		Window string `yaml:"window"`
	} `yaml:"rateLimit"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
	} `yaml:"redis"`
}

func LoadConfig(log *logger.Logger) (Config, error) {
	cfg := Config{
		Port:            "3001",
		Environment:     envutil.GetEnv("APP_ENV", "development"),
		Version:         envutil.GetEnv("APP_VERSION", "dev"),
		TokenTTL:        7 * 24 * time.Hour,
		RateLimitMax:    100,
		RateLimitWindow: 15 * time.Minute,
	}

	if path := strings.TrimSpace(os.Getenv("DIVERGEX_CONFIG")); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file %q: %w", path, err)
		}
		var fc fileConfig
		if err := yaml.Unmarshal(raw, &fc); err != nil {
			return Config{}, fmt.Errorf("parse config file %q: %w", path, err)
		}
		if fc.Port != "" {
			cfg.Port = fc.Port
		}
		if fc.TokenTTL != "" {
			d, err := time.ParseDuration(fc.TokenTTL)
			if err != nil {
				return Config{}, fmt.Errorf("invalid tokenTtl %q: %w", fc.TokenTTL, err)
			}
			cfg.TokenTTL = d
		}
		if fc.RateLimit.Max > 0 {
			cfg.RateLimitMax = fc.RateLimit.Max
		}
		if fc.RateLimit.Window != "" {
			d, err := time.ParseDuration(fc.RateLimit.Window)
			if err != nil {
				return Config{}, fmt.Errorf("invalid rateLimit.window %q: %w", fc.RateLimit.Window, err)
			}
			cfg.RateLimitWindow = d
		}
		if fc.Redis.Addr != "" {
			cfg.RedisAddr = fc.Redis.Addr
		}
		if fc.Redis.Password != "" {
			cfg.RedisPassword = fc.Redis.Password
		}
		log.Info("Loaded config file", "path", path)
	}

	cfg.Port = envutil.GetEnv("PORT", cfg.Port)
	cfg.JWTSecretKey = envutil.GetEnv("JWT_SECRET", "")
	if cfg.JWTSecretKey == "" {
		cfg.JWTSecretKey = "defaultsecret"
		log.Warn("JWT_SECRET not set, using insecure default")
	}
	if v := envutil.GetEnvAsInt("TOKEN_TTL_SECONDS", 0); v > 0 {
		cfg.TokenTTL = time.Duration(v) * time.Second
	}
	if v := envutil.GetEnvAsInt("RATE_LIMIT_MAX", 0); v > 0 {
		cfg.RateLimitMax = v
	}
	if v := envutil.GetEnvAsInt("RATE_LIMIT_WINDOW_SECONDS", 0); v > 0 {
		cfg.RateLimitWindow = time.Duration(v) * time.Second
	}
	if v := envutil.GetEnv("REDIS_ADDR", ""); v != "" {
		cfg.RedisAddr = v
	}
	if v := envutil.GetEnv("REDIS_PASSWORD", ""); v != "" {
		cfg.RedisPassword = v
	}
	return cfg, nil
}
