package app

import (
	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/divergex-backend/internal/http/middleware"
	"github.com/yungbote/divergex-backend/internal/platform/logger"
)

type Middleware struct {
	Auth      *middleware.AuthMiddleware
	RateLimit *middleware.RateLimiter
}

func wireMiddleware(log *logger.Logger, cfg Config, s Services) Middleware {
	var rdb *goredis.Client
	if cfg.RedisAddr != "" {
		rdb = goredis.NewClient(&goredis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
	}
	return Middleware{
		Auth:      middleware.NewAuthMiddleware(log, s.Auth),
		RateLimit: middleware.NewRateLimiter(log, rdb, cfg.RateLimitMax, cfg.RateLimitWindow),
	}
}
