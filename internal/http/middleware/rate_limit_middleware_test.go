package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestLocalFixedWindowLimiter(t *testing.T) {
	limiter := NewLocalFixedWindowLimiter()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, _, err := limiter.Allow(ctx, "1.2.3.4", 3, time.Minute)
		if err != nil {
			t.Fatalf("allow %d: %v", i, err)
		}
		if !allowed {
			t.Fatalf("request %d denied inside the limit", i)
		}
	}
	allowed, retryAfter, err := limiter.Allow(ctx, "1.2.3.4", 3, time.Minute)
	if err != nil {
		t.Fatalf("allow: %v", err)
	}
	if allowed {
		t.Fatal("fourth request must be denied")
	}
	if retryAfter <= 0 || retryAfter > time.Minute {
		t.Fatalf("retry after = %v", retryAfter)
	}

	// A different key has its own window.
	if allowed, _, _ := limiter.Allow(ctx, "5.6.7.8", 3, time.Minute); !allowed {
		t.Fatal("separate key must not share the window")
	}
}

func TestLocalFixedWindowExpiry(t *testing.T) {
	limiter := NewLocalFixedWindowLimiter()
	ctx := context.Background()

	window := 50 * time.Millisecond
	for i := 0; i < 2; i++ {
		limiter.Allow(ctx, "1.2.3.4", 2, window)
	}
	if allowed, _, _ := limiter.Allow(ctx, "1.2.3.4", 2, window); allowed {
		t.Fatal("over-limit request must be denied")
	}
	time.Sleep(window + 10*time.Millisecond)
	if allowed, _, _ := limiter.Allow(ctx, "1.2.3.4", 2, window); !allowed {
		t.Fatal("new window must reset the count")
	}
}

func TestRateLimiterMiddleware(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute, "auth")
	handler := rl.Middleware()(okHandler())

	send := func() *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/auth/student/login", nil)
		req.RemoteAddr = "10.0.0.1:54321"
		handler.ServeHTTP(rec, req)
		return rec
	}

	for i := 0; i < 2; i++ {
		if rec := send(); rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d", i, rec.Code)
		}
	}
	rec := send()
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Fatal("429 must carry Retry-After")
	}
}

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string, int, time.Duration) (bool, time.Duration, error) {
	return false, 0, errors.New("backend down")
}

func TestRateLimiterFailureModes(t *testing.T) {
	t.Run("fail open allows", func(t *testing.T) {
		rl := NewDistributedRateLimiter(failingLimiter{}, 1, time.Minute, FailOpen, "api")
		rec := httptest.NewRecorder()
		rl.Middleware()(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
	})

	t.Run("fail closed denies", func(t *testing.T) {
		rl := NewDistributedRateLimiter(failingLimiter{}, 1, time.Minute, FailClosed, "api")
		rec := httptest.NewRecorder()
		rl.Middleware()(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != http.StatusTooManyRequests {
			t.Fatalf("status = %d, want 429", rec.Code)
		}
	})
}

func TestRedisFixedWindowLimiter(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })

	limiter := NewRedisFixedWindowLimiter(client, "test")
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, _, err := limiter.Allow(ctx, "1.2.3.4", 3, time.Minute)
		if err != nil {
			t.Fatalf("allow %d: %v", i, err)
		}
		if !allowed {
			t.Fatalf("request %d denied inside the limit", i)
		}
	}
	allowed, retryAfter, err := limiter.Allow(ctx, "1.2.3.4", 3, time.Minute)
	if err != nil {
		t.Fatalf("allow: %v", err)
	}
	if allowed {
		t.Fatal("fourth request must be denied")
	}
	if retryAfter <= 0 {
		t.Fatalf("retry after = %v", retryAfter)
	}

	t.Run("window expiry resets the count", func(t *testing.T) {
		srv.FastForward(2 * time.Minute)
		allowed, _, err := limiter.Allow(ctx, "1.2.3.4", 3, time.Minute)
		if err != nil {
			t.Fatalf("allow: %v", err)
		}
		if !allowed {
			t.Fatal("expired window must reset")
		}
	})

	t.Run("nil client errors", func(t *testing.T) {
		nilLimiter := NewRedisFixedWindowLimiter(nil, "test")
		if _, _, err := nilLimiter.Allow(ctx, "k", 1, time.Minute); err == nil {
			t.Fatal("expected error for nil client")
		}
	})
}

func TestClientIPKey(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.1.2.3:4567"
	if got := clientIPKey(req); got != "10.1.2.3" {
		t.Fatalf("key = %q", got)
	}
	req.RemoteAddr = "nohostport"
	if got := clientIPKey(req); got != "nohostport" {
		t.Fatalf("key = %q", got)
	}
}
