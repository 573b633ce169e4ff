package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute, setupTestLogger())
	defer rl.Stop()

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow("1.2.3.4"), "request %d should be allowed", i)
	}
	assert.False(t, rl.Allow("1.2.3.4"), "request over the limit should be denied")

	// Другой ключ со своим бакетом
	assert.True(t, rl.Allow("5.6.7.8"))
}

func TestRateLimiter_ConcurrentFirstRequests(t *testing.T) {
	// Параллельные первые запросы с одного ключа не должны заводить
	// bucket дважды и тем самым удваивать квоту
	const limit = 5

	rl := NewRateLimiter(limit, time.Hour, setupTestLogger())
	defer rl.Stop()

	var allowed atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if rl.Allow("1.2.3.4") {
				allowed.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(limit), allowed.Load())
}

func TestRateLimiter_RefillAfterWindow(t *testing.T) {
	rl := NewRateLimiter(1, 50*time.Millisecond, setupTestLogger())
	defer rl.Stop()

	assert.True(t, rl.Allow("1.2.3.4"))
	assert.False(t, rl.Allow("1.2.3.4"))

	time.Sleep(60 * time.Millisecond)
	assert.True(t, rl.Allow("1.2.3.4"), "tokens should refill after window")
}

func TestRateLimit_Middleware(t *testing.T) {
	handler := RateLimit(1, time.Minute, setupTestLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/users/signin", nil)
	req.RemoteAddr = "1.2.3.4:5678"

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name     string
		headers  map[string]string
		remote   string
		expected string
	}{
		{name: "remote addr", remote: "1.2.3.4:5678", expected: "1.2.3.4:5678"},
		{name: "x-real-ip", headers: map[string]string{"X-Real-IP": "9.9.9.9"}, remote: "1.2.3.4:5678", expected: "9.9.9.9"},
		{name: "x-forwarded-for single", headers: map[string]string{"X-Forwarded-For": "9.9.9.9"}, remote: "1.2.3.4:5678", expected: "9.9.9.9"},
		{name: "x-forwarded-for chain", headers: map[string]string{"X-Forwarded-For": "9.9.9.9, 8.8.8.8"}, remote: "1.2.3.4:5678", expected: "9.9.9.9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.expected, clientIP(req))
		})
	}
}
