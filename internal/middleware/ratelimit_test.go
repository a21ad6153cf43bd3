package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/s9096309/movie-shelf/internal/config"
)

func newLimitedServer(t *testing.T, cfg config.RateLimitConfig, rdb *redis.Client) *echo.Echo {
	t.Helper()
	e := echo.New()
	e.Use(NewTokenBucket(cfg, rdb))
	e.GET("/users", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	e.GET("/", func(c echo.Context) error { return c.String(http.StatusOK, "home") })
	return e
}

func do(e *echo.Echo, path, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.RemoteAddr = ip + ":1234"
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestTokenBucketBlocksWhenEmpty(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cfg := config.RateLimitConfig{
		Enabled: true, Capacity: 2, RefillTokens: 1, RefillInterval: time.Hour,
		TTL: 2 * time.Hour, KeyStrategy: "ip_route", Prefix: "rl",
	}
	e := newLimitedServer(t, cfg, rdb)

	for i := 0; i < 2; i++ {
		if rec := do(e, "/users", "192.0.2.1"); rec.Code != http.StatusOK {
			t.Fatalf("request %d status = %d, want 200", i+1, rec.Code)
		}
	}

	rec := do(e, "/users", "192.0.2.1")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("third request status = %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("Retry-After header missing")
	}
	if rec.Header().Get("X-RateLimit-Remaining") != "0" {
		t.Errorf("X-RateLimit-Remaining = %q, want 0", rec.Header().Get("X-RateLimit-Remaining"))
	}

	// other buckets are untouched
	if rec := do(e, "/users", "192.0.2.2"); rec.Code != http.StatusOK {
		t.Errorf("other ip status = %d, want 200", rec.Code)
	}
	if rec := do(e, "/", "192.0.2.1"); rec.Code != http.StatusOK {
		t.Errorf("other route status = %d, want 200", rec.Code)
	}

	if !mr.Exists("rl:ip:192.0.2.1:route:GET /users") {
		t.Errorf("bucket key missing; keys = %v", mr.Keys())
	}
}

func TestTokenBucketDisabledPassesThrough(t *testing.T) {
	for _, rdb := range []*redis.Client{nil, redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})} {
		e := newLimitedServer(t, config.RateLimitConfig{Enabled: false, Capacity: 1}, rdb)
		for i := 0; i < 5; i++ {
			if rec := do(e, "/users", "192.0.2.1"); rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}
		}
	}
}

func TestTokenBucketWithoutRedisLimitsLocally(t *testing.T) {
	cfg := config.RateLimitConfig{
		Enabled: true, Capacity: 2, RefillTokens: 1, RefillInterval: time.Hour,
		TTL: 2 * time.Hour, KeyStrategy: "ip", Prefix: "rl",
	}
	e := newLimitedServer(t, cfg, nil)

	for i := 0; i < 2; i++ {
		if rec := do(e, "/users", "192.0.2.1"); rec.Code != http.StatusOK {
			t.Fatalf("request %d status = %d, want 200", i+1, rec.Code)
		}
	}
	rec := do(e, "/", "192.0.2.1")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429 once the ip bucket is empty", rec.Code)
	}
	if rec.Header().Get("Retry-After") != "3600" {
		t.Errorf("Retry-After = %q, want 3600", rec.Header().Get("Retry-After"))
	}
	if rec := do(e, "/", "192.0.2.2"); rec.Code != http.StatusOK {
		t.Errorf("other ip status = %d, want 200", rec.Code)
	}
}

func TestLocalBucketsDropIdleKeys(t *testing.T) {
	b := newLocalBuckets(config.RateLimitConfig{Capacity: 1, RefillTokens: 1, RefillInterval: time.Second, TTL: time.Minute})
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	first := b.get("a")
	b.get("b")
	if b.get("a") != first {
		t.Fatal("limiter not reused for the same key")
	}

	now = now.Add(2 * time.Minute)
	b.get("c")
	if len(b.clients) != 1 {
		t.Errorf("clients = %d, want only the fresh key", len(b.clients))
	}
}

func TestTokenBucketFailsOpenOnRedisError(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cfg := config.RateLimitConfig{Enabled: true, Capacity: 1, RefillTokens: 1, RefillInterval: time.Hour, TTL: time.Hour, Prefix: "rl"}
	e := newLimitedServer(t, cfg, rdb)
	mr.Close()

	for i := 0; i < 3; i++ {
		if rec := do(e, "/users", "192.0.2.1"); rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200 while redis is down", rec.Code)
		}
	}
}

func TestBuildRateKey(t *testing.T) {
	e := echo.New()
	tests := map[string]string{
		"ip":       "rl:ip:192.0.2.9",
		"route":    "rl:route:GET /users/:user_id",
		"ip_route": "rl:ip:192.0.2.9:route:GET /users/:user_id",
		"":         "rl:ip:192.0.2.9:route:GET /users/:user_id",
	}
	for strategy, want := range tests {
		req := httptest.NewRequest(http.MethodGet, "/users/3", nil)
		req.RemoteAddr = "192.0.2.9:5555"
		c := e.NewContext(req, httptest.NewRecorder())
		c.SetPath("/users/:user_id")

		got := buildRateKey(config.RateLimitConfig{Prefix: "rl", KeyStrategy: strategy}, c)
		if got != want {
			t.Errorf("strategy %q: key = %q, want %q", strategy, got, want)
		}
	}
}
