package chi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimit_Disabled_PassThrough(t *testing.T) {
	handler := RateLimitMiddleware(0, 0)(okHandler())

	for i := 0; i < 50; i++ {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/funds", http.NoBody))
		if rr.Code != http.StatusOK {
			t.Fatalf("request %d: got %d", i, rr.Code)
		}
	}
}

func TestRateLimit_RejectsBeyondBurst(t *testing.T) {
	handler := RateLimitMiddleware(0.001, 2)(okHandler())

	codes := make([]int, 3)
	var last *httptest.ResponseRecorder
	for i := range codes {
		last = httptest.NewRecorder()
		handler.ServeHTTP(last, httptest.NewRequest(http.MethodGet, "/api/funds", http.NoBody))
		codes[i] = last.Code
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("codes = %v, want [200 200 429]", codes)
	}
	if last.Header().Get("Retry-After") == "" {
		t.Error("missing Retry-After header")
	}

	var body ErrorResponse
	if err := json.NewDecoder(last.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Code != CodeRateLimited {
		t.Errorf("code = %q", body.Code)
	}
}

func TestRateLimit_ExemptPaths(t *testing.T) {
	handler := RateLimitMiddleware(0.001, 1)(okHandler())

	for i := 0; i < 5; i++ {
		for _, path := range []string{"/health", "/metrics"} {
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, http.NoBody))
			if rr.Code != http.StatusOK {
				t.Fatalf("%s request %d: got %d", path, i, rr.Code)
			}
		}
	}
}

func TestRetryAfter(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{10 * time.Millisecond, "1"},
		{time.Second, "1"},
		{1500 * time.Millisecond, "2"},
	}
	for _, tt := range tests {
		if got := retryAfter(tt.d); got != tt.want {
			t.Errorf("retryAfter(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
