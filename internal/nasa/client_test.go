package nasa

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/palsulearavapsit/SPACESCOPE/internal/cache"
	"github.com/palsulearavapsit/SPACESCOPE/internal/config"
	"github.com/palsulearavapsit/SPACESCOPE/internal/logger"
)

func testClient(t *testing.T, c cache.Cache) *Client {
	t.Helper()
	cfg := &config.Config{
		NASAAPIKey:   "",
		MaxRetries:   3,
		RetryDelay:   5 * time.Millisecond,
		FetchTimeout: 2 * time.Second,
		CacheTTL:     time.Minute,
	}
	return NewClient(logger.NewNop(), c, cfg)
}

func TestFetchCachesPayload(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte(`{"title":"apod"}`))
	}))
	defer srv.Close()

	c := testClient(t, cache.NewMemory())
	ctx := context.Background()

	first, err := c.Fetch(ctx, SourceAPOD, srv.URL, url.Values{"date": {"2024-01-01"}})
	if err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	second, err := c.Fetch(ctx, SourceAPOD, srv.URL, url.Values{"date": {"2024-01-01"}})
	if err != nil {
		t.Fatalf("second fetch: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("cached payload differs: %q vs %q", first, second)
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("expected 1 upstream call, got %d", n)
	}
}

func TestFetchDistinctParamsMissCache(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte(r.URL.RawQuery))
	}))
	defer srv.Close()

	c := testClient(t, cache.NewMemory())
	ctx := context.Background()

	if _, err := c.Fetch(ctx, SourceNeoWs, srv.URL, url.Values{"start_date": {"2024-01-01"}}); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if _, err := c.Fetch(ctx, SourceNeoWs, srv.URL, url.Values{"start_date": {"2024-01-02"}}); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Fatalf("expected 2 upstream calls, got %d", n)
	}
}

func TestFetchRetriesRateLimit(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := testClient(t, cache.NewMemory())
	_, err := c.Fetch(context.Background(), SourceDONKI, srv.URL, nil)
	if !errors.Is(err, ErrRetriesExhausted) {
		t.Fatalf("expected ErrRetriesExhausted, got %v", err)
	}
	if n := atomic.LoadInt32(&calls); n != 3 {
		t.Fatalf("expected 3 attempts, got %d", n)
	}
}

func TestFetchRateLimitThenSuccess(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`ok`))
	}))
	defer srv.Close()

	c := testClient(t, cache.NewMemory())
	payload, err := c.Fetch(context.Background(), SourceEONET, srv.URL, nil)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if string(payload) != "ok" {
		t.Fatalf("unexpected payload %q", payload)
	}
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Fatalf("expected 2 attempts, got %d", n)
	}
}

func TestFetchHardErrorNoRetry(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := testClient(t, cache.NewMemory())
	_, err := c.Fetch(context.Background(), SourceEPIC, srv.URL, nil)
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if se.Status != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", se.Status)
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("expected 1 attempt, got %d", n)
	}
	if !IsNonRetryable(err) {
		t.Fatalf("status errors should be non-retryable")
	}
}

func TestFetchFailuresNotCached(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`recovered`))
	}))
	defer srv.Close()

	c := testClient(t, cache.NewMemory())
	ctx := context.Background()
	if _, err := c.Fetch(ctx, SourceTLE, srv.URL, nil); err == nil {
		t.Fatalf("expected error on first fetch")
	}
	payload, err := c.Fetch(ctx, SourceTLE, srv.URL, nil)
	if err != nil {
		t.Fatalf("second fetch: %v", err)
	}
	if string(payload) != "recovered" {
		t.Fatalf("stale failure served from cache: %q", payload)
	}
}

func TestFetchNilCache(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`ok`))
	}))
	defer srv.Close()

	c := testClient(t, nil)
	if _, err := c.Fetch(context.Background(), SourceTrek, srv.URL, nil); err != nil {
		t.Fatalf("fetch without cache: %v", err)
	}
}
