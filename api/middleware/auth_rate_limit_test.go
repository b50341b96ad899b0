package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type stubLimiterStore struct {
	counts map[string]int64
	err    error
}

func newStubLimiterStore() *stubLimiterStore {
	return &stubLimiterStore{counts: map[string]int64{}}
}

func (s *stubLimiterStore) IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.counts[key]++
	return s.counts[key], nil
}

func loginRequest(email string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/api/users/login", strings.NewReader(`{"email":"`+email+`","password":"pw"}`))
	r.RemoteAddr = "203.0.113.9:51234"
	return r
}

func TestAuthRateLimitBlocksAfterIPLimit(t *testing.T) {
	store := newStubLimiterStore()
	policy := NewAuthRateLimitPolicy("login", time.Minute, 2, 0)
	handler := AuthRateLimit(policy, store, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, loginRequest("ada@example.com"))
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d", i+1, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, loginRequest("ada@example.com"))
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("third request should be throttled, status = %d", rec.Code)
	}
	if body := decodeError(t, rec); body.Error != "rate limit exceeded" {
		t.Fatalf("error = %q", body.Error)
	}
}

func TestAuthRateLimitHashesEmailKeys(t *testing.T) {
	store := newStubLimiterStore()
	policy := NewAuthRateLimitPolicy("login", time.Minute, 0, 5)
	handler := AuthRateLimit(policy, store, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, loginRequest("Ada@Example.COM"))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	sum := sha256.Sum256([]byte("ada@example.com"))
	wantKey := "rl:email:login:" + hex.EncodeToString(sum[:])
	if store.counts[wantKey] != 1 {
		t.Fatalf("expected one hit on %q, got %v", wantKey, store.counts)
	}
	for key := range store.counts {
		if strings.Contains(key, "@") {
			t.Fatalf("raw email leaked into limiter key %q", key)
		}
	}
}

// The limiter consumes the body to read the email; the downstream handler
// must still see the full payload.
func TestAuthRateLimitBodyStaysReadable(t *testing.T) {
	store := newStubLimiterStore()
	policy := NewAuthRateLimitPolicy("login", time.Minute, 0, 5)

	var seen string
	handler := AuthRateLimit(policy, store, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Fatalf("read body downstream: %v", err)
		}
		seen = string(body)
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, loginRequest("ada@example.com"))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(seen, "ada@example.com") {
		t.Fatalf("downstream body = %q", seen)
	}
}

func TestAuthRateLimitDisabledPolicyPassesThrough(t *testing.T) {
	policy := NewAuthRateLimitPolicy("login", 0, 10, 10)
	handler := AuthRateLimit(policy, newStubLimiterStore(), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, loginRequest("ada@example.com"))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	// A nil store also disables the limiter outright.
	handler = AuthRateLimit(NewAuthRateLimitPolicy("login", time.Minute, 1, 1), nil, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, loginRequest("ada@example.com"))
		if rec.Code != http.StatusOK {
			t.Fatalf("nil store request %d: status = %d", i+1, rec.Code)
		}
	}
}

func TestClientIPPrefersForwardedFor(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.0.0.1:1234"
	r.Header.Set("X-Forwarded-For", " 198.51.100.7 , 10.0.0.1")
	if ip := clientIP(r); ip != "198.51.100.7" {
		t.Fatalf("clientIP = %q", ip)
	}

	r.Header.Del("X-Forwarded-For")
	r.Header.Set("X-Real-IP", "198.51.100.8")
	if ip := clientIP(r); ip != "198.51.100.8" {
		t.Fatalf("clientIP = %q", ip)
	}

	r.Header.Del("X-Real-IP")
	if ip := clientIP(r); ip != "10.0.0.1" {
		t.Fatalf("clientIP = %q", ip)
	}
}
