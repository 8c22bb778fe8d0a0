package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

func newRateLimitTest(t *testing.T, maxRequests int, window time.Duration) (*echo.Echo, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	e := echo.New()
	e.POST("/api/auth/login", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}, RateLimit(rdb, maxRequests, window))
	return e, mr
}

func postLogin(e *echo.Echo, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	req.RemoteAddr = ip + ":12345"
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRateLimit_AllowsUnderLimit(t *testing.T) {
	e, _ := newRateLimitTest(t, 3, time.Minute)

	for i := 0; i < 3; i++ {
		if rec := postLogin(e, "198.51.100.1"); rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, rec.Code)
		}
	}
}

func TestRateLimit_BlocksOverLimit(t *testing.T) {
	e, _ := newRateLimitTest(t, 2, time.Minute)

	postLogin(e, "198.51.100.1")
	postLogin(e, "198.51.100.1")
	if rec := postLogin(e, "198.51.100.1"); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 over limit, got %d", rec.Code)
	}
}

func TestRateLimit_PerIPIsolation(t *testing.T) {
	e, _ := newRateLimitTest(t, 1, time.Minute)

	postLogin(e, "198.51.100.1")
	if rec := postLogin(e, "198.51.100.1"); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected first IP to be limited, got %d", rec.Code)
	}
	if rec := postLogin(e, "198.51.100.2"); rec.Code != http.StatusOK {
		t.Fatalf("expected second IP to pass, got %d", rec.Code)
	}
}

func TestRateLimit_WindowResets(t *testing.T) {
	e, mr := newRateLimitTest(t, 1, time.Minute)

	postLogin(e, "198.51.100.1")
	if rec := postLogin(e, "198.51.100.1"); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 before window reset, got %d", rec.Code)
	}

	mr.FastForward(2 * time.Minute)
	if rec := postLogin(e, "198.51.100.1"); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 after window reset, got %d", rec.Code)
	}
}

func TestRateLimit_FailsOpenWhenRedisDown(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	e := echo.New()
	e.POST("/api/auth/login", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}, RateLimit(rdb, 1, time.Minute))

	mr.Close()

	// With Redis gone, requests pass through unlimited.
	for i := 0; i < 3; i++ {
		if rec := postLogin(e, "198.51.100.1"); rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected fail-open 200, got %d", i+1, rec.Code)
		}
	}
}
