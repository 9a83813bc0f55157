package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-devconnector/internal/interface/middleware"
)

// Limiter builds per-minute rate limits for module routes. A nil Redis
// client disables limiting.
type Limiter struct {
	Redis *redis.Client
	Allow middleware.AllowFunc
}

func (l Limiter) PerIP(scope string, max int) gin.HandlerFunc {
	return middleware.RateLimit(l.Redis, scope, max, time.Minute, middleware.KeyByIP(scope), l.Allow)
}

func (l Limiter) PerUser(scope string, max int) gin.HandlerFunc {
	return middleware.RateLimit(l.Redis, scope, max, time.Minute, middleware.KeyByUserID(scope), l.Allow)
}
