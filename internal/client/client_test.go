package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

func testRetry() RetryConfig {
	return RetryConfig{MaxAttempts: 3, BaseDelay: 10 * time.Millisecond}
}

func TestDoSuccessFirstAttempt(t *testing.T) {
	var attempts int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("Content-Type = %q", got)
		}
		w.Write([]byte(`{"activityScore": 80}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "test-key", "", testRetry())
	body, err := c.Do(context.Background(), http.MethodGet, "/activity/0xABC", nil)
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1", attempts)
	}
	var decoded struct {
		ActivityScore float64 `json:"activityScore"`
	}
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if decoded.ActivityScore != 80 {
		t.Errorf("activityScore = %v, want 80", decoded.ActivityScore)
	}
}

func TestDoStopsAfterFirstSuccess(t *testing.T) {
	var attempts int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"ok": true}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "k", "", testRetry())
	if _, err := c.Do(context.Background(), http.MethodPost, "/farm", map[string]string{"wallet": "0xABC"}); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if attempts != 2 {
		t.Errorf("attempts = %d, want 2 (no attempt after success)", attempts)
	}
}

func TestDoExhaustsAtMaxAttempts(t *testing.T) {
	var attempts int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(srv.URL, "k", "", testRetry())
	body, err := c.Do(context.Background(), http.MethodGet, "/rewards/peak-times", nil)
	if err == nil {
		t.Fatal("expected error after exhaustion")
	}
	if !IsExhausted(err) {
		t.Errorf("expected ErrExhausted, got %v", err)
	}
	if body != nil {
		t.Errorf("expected nil body on exhaustion, got %s", body)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want exactly 3", attempts)
	}
}

func TestDoRejectsInvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	c := New(srv.URL, "k", "", testRetry())
	if _, err := c.Do(context.Background(), http.MethodGet, "/staking/status/0xABC", nil); err == nil {
		t.Fatal("expected error for undecodable body")
	}
}

func TestBackoffIncreasesWithAttempt(t *testing.T) {
	var mu sync.Mutex
	var stamps []time.Time
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		stamps = append(stamps, time.Now())
		mu.Unlock()
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, "k", "", RetryConfig{MaxAttempts: 3, BaseDelay: 40 * time.Millisecond})
	c.Do(context.Background(), http.MethodGet, "/activity/0xABC", nil)

	mu.Lock()
	defer mu.Unlock()
	if len(stamps) != 3 {
		t.Fatalf("attempts = %d, want 3", len(stamps))
	}
	first := stamps[1].Sub(stamps[0])
	second := stamps[2].Sub(stamps[1])
	if second <= first {
		t.Errorf("backoff did not increase: first gap %v, second gap %v", first, second)
	}
	if first < 40*time.Millisecond {
		t.Errorf("first backoff %v shorter than base delay", first)
	}
	if second < 80*time.Millisecond {
		t.Errorf("second backoff %v shorter than 2× base delay", second)
	}
}

func TestDoHonorsContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := New(srv.URL, "k", "", RetryConfig{MaxAttempts: 3, BaseDelay: time.Second})
	start := time.Now()
	_, err := c.Do(ctx, http.MethodGet, "/activity/0xABC", nil)
	if err == nil {
		t.Fatal("expected error with cancelled context")
	}
	if time.Since(start) > 500*time.Millisecond {
		t.Error("cancelled context should not wait out the backoff")
	}
}
