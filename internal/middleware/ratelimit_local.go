package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/s9096309/movie-shelf/internal/config"
)

type localClient struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// localBuckets keeps one rate.Limiter per key in process memory. Idle
// keys are dropped after cfg.TTL.
type localBuckets struct {
	cfg       config.RateLimitConfig
	mu        sync.Mutex
	clients   map[string]*localClient
	lastSweep time.Time
	now       func() time.Time
}

func newLocalBuckets(cfg config.RateLimitConfig) *localBuckets {
	return &localBuckets{cfg: cfg, clients: make(map[string]*localClient), now: time.Now}
}

func (b *localBuckets) get(key string) *rate.Limiter {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	if now.Sub(b.lastSweep) > b.cfg.TTL {
		for k, cl := range b.clients {
			if now.Sub(cl.lastSeen) > b.cfg.TTL {
				delete(b.clients, k)
			}
		}
		b.lastSweep = now
	}

	cl, ok := b.clients[key]
	if !ok {
		every := b.cfg.RefillInterval / time.Duration(b.cfg.RefillTokens)
		cl = &localClient{limiter: rate.NewLimiter(rate.Every(every), b.cfg.Capacity)}
		b.clients[key] = cl
	}
	cl.lastSeen = now
	return cl.limiter
}

// NewLocalLimiter is the in-process variant of NewTokenBucket, used when no
// redis client is configured. Limits are per process, not shared between
// instances.
func NewLocalLimiter(cfg config.RateLimitConfig) echo.MiddlewareFunc {
	buckets := newLocalBuckets(cfg)
	retry := int(math.Ceil((cfg.RefillInterval / time.Duration(cfg.RefillTokens)).Seconds()))

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := buildRateKey(cfg, c)
			lim := buckets.get(key)
			allowed := lim.Allow()

			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(cfg.Capacity))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(int(math.Max(0, math.Floor(lim.Tokens())))))

			if !allowed {
				h.Set("Retry-After", strconv.Itoa(retry))
				if cfg.Debug {
					c.Logger().Infof("[ratelimit] local block key=%s", key)
				}
				return c.String(http.StatusTooManyRequests, "Too many requests. Please slow down.")
			}
			return next(c)
		}
	}
}
