package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	redis "github.com/redis/go-redis/v9"

	"github.com/omnia28/task-manager-api/internal/logger"
)

var redisClient *redis.Client

// InitRedisRateLimiter initializes the shared Redis client used by the
// rate limiter. If addr is empty or the connection fails, redisClient
// stays nil and the limiter falls back to its in-memory counters.
func InitRedisRateLimiter(addr, password string, db int) {
	if addr == "" {
		return
	}
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unavailable, rate limiter using in-memory counters", "error", err)
		return
	}
	redisClient = client
}

type windowCounter struct {
	start time.Time
	count int
}

var (
	rlMu      sync.Mutex
	rlClients = make(map[string]*windowCounter)
)

func allowLocal(ip string, maxRequests int, window time.Duration) bool {
	rlMu.Lock()
	defer rlMu.Unlock()

	now := time.Now()
	wc, ok := rlClients[ip]
	if !ok || now.Sub(wc.start) >= window {
		rlClients[ip] = &windowCounter{start: now, count: 1}
		return true
	}
	wc.count++
	return wc.count <= maxRequests
}

// allowRedis implements a fixed window with INCR/EXPIRE.
// key format: rl:<window_seconds>:<identifier>
func allowRedis(ctx context.Context, ip string, maxRequests int, window time.Duration) (bool, error) {
	key := "rl:" + strconv.FormatInt(int64(window.Seconds()), 10) + ":" + ip
	val, err := redisClient.Incr(ctx, key).Result()
	if err != nil {
		return true, err
	}
	if val == 1 {
		redisClient.Expire(ctx, key, window)
	}
	return val <= int64(maxRequests), nil
}

// RateLimit enforces a fixed-window per-IP request limit. Counters
// live in Redis when InitRedisRateLimiter connected a client, in
// process memory otherwise. Redis errors fail open so the API stays
// available. maxRequests <= 0 disables limiting.
func RateLimit(maxRequests int, window time.Duration) gin.HandlerFunc {
	if maxRequests <= 0 {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		ip := c.ClientIP()
		endpoint := c.FullPath()
		RLRequests.WithLabelValues(endpoint).Inc()

		allowed := true
		if redisClient != nil {
			ok, err := allowRedis(c.Request.Context(), ip, maxRequests, window)
			if err != nil {
				c.Header("X-RateLimit-Error", "redis-error")
			} else {
				allowed = ok
			}
		} else {
			allowed = allowLocal(ip, maxRequests, window)
		}

		if !allowed {
			RLBlocked.WithLabelValues(endpoint).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"detail": "rate limit exceeded"})
			return
		}

		c.Next()
	}
}
