package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/divergex-backend/internal/platform/logger"
)

func rateLimitedRouter(t *testing.T, limit int, window time.Duration) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	rl := NewRateLimiter(log, nil, limit, window)

	r := gin.New()
	r.Use(rl.Limit())
	r.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	return r
}

func doPing(r *gin.Engine, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = ip + ":12345"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimiterBlocksOverLimit(t *testing.T) {
	r := rateLimitedRouter(t, 3, time.Minute)

	for i := 0; i < 3; i++ {
		if w := doPing(r, "10.0.0.1"); w.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i+1, w.Code)
		}
	}
	w := doPing(r, "10.0.0.1")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("over-limit status = %d, want 429", w.Code)
	}
}

func TestRateLimiterIsPerIP(t *testing.T) {
	r := rateLimitedRouter(t, 1, time.Minute)

	if w := doPing(r, "10.0.0.1"); w.Code != http.StatusOK {
		t.Fatalf("first ip: status = %d", w.Code)
	}
	if w := doPing(r, "10.0.0.1"); w.Code != http.StatusTooManyRequests {
		t.Fatalf("first ip second hit: status = %d, want 429", w.Code)
	}
	if w := doPing(r, "10.0.0.2"); w.Code != http.StatusOK {
		t.Fatalf("second ip must have its own window, status = %d", w.Code)
	}
}

func TestRateLimiterWindowResets(t *testing.T) {
	r := rateLimitedRouter(t, 1, 20*time.Millisecond)

	if w := doPing(r, "10.0.0.1"); w.Code != http.StatusOK {
		t.Fatalf("first hit: status = %d", w.Code)
	}
	if w := doPing(r, "10.0.0.1"); w.Code != http.StatusTooManyRequests {
		t.Fatalf("second hit: status = %d, want 429", w.Code)
	}
	time.Sleep(30 * time.Millisecond)
	if w := doPing(r, "10.0.0.1"); w.Code != http.StatusOK {
		t.Fatalf("after window: status = %d, want 200", w.Code)
	}
}
