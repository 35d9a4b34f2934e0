package integrations

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/lockgemfile/pkg/httputil"
	"github.com/matzehuels/lockgemfile/pkg/observability"
)

func testCache(t *testing.T) *httputil.Cache {
	t.Helper()
	c, err := httputil.NewCache(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestNewClient(t *testing.T) {
	c := testCache(t)
	headers := map[string]string{"User-Agent": "test"}
	client := NewClient(c, headers)

	if client.http == nil {
		t.Error("NewClient() http client is nil")
	}
	if client.http.Timeout != httpTimeout {
		t.Errorf("timeout = %v, want %v", client.http.Timeout, httpTimeout)
	}
	if client.cache != c {
		t.Error("NewClient() cache not set correctly")
	}
	if client.headers["User-Agent"] != "test" {
		t.Error("NewClient() headers not set correctly")
	}
}

func TestClientGet(t *testing.T) {
	type response struct {
		Message string `json:"message"`
	}

	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		gotUA = r.Header.Get("User-Agent")
		json.NewEncoder(w).Encode(response{Message: "hello"})
	}))
	defer server.Close()

	client := NewClient(nil, map[string]string{"User-Agent": UserAgent()})
	client.http = server.Client()

	var resp response
	if err := client.Get(context.Background(), server.URL, &resp); err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if resp.Message != "hello" {
		t.Errorf("Get() message = %q, want %q", resp.Message, "hello")
	}
	if gotUA != UserAgent() {
		t.Errorf("User-Agent = %q, want %q", gotUA, UserAgent())
	}
}

func TestClientGetWithHeadersOverridesDefaults(t *testing.T) {
	var received string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received = r.Header.Get("X-Override")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer server.Close()

	client := NewClient(nil, map[string]string{"X-Override": "default"})
	client.http = server.Client()

	var resp map[string]string
	err := client.GetWithHeaders(context.Background(), server.URL, map[string]string{"X-Override": "overridden"}, &resp)
	if err != nil {
		t.Fatalf("GetWithHeaders() error: %v", err)
	}
	if received != "overridden" {
		t.Errorf("header = %q, want %q", received, "overridden")
	}
}

func TestClientGetDecodeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>"))
	}))
	defer server.Close()

	client := NewClient(nil, nil)
	client.http = server.Client()

	var v []string
	if err := client.Get(context.Background(), server.URL, &v); err == nil {
		t.Error("Get() should fail on a non-JSON body")
	}
}

func TestClientGetStatus(t *testing.T) {
	tests := []struct {
		name      string
		code      int
		wantErr   error
		retryable bool
	}{
		{"not found", http.StatusNotFound, ErrNotFound, false},
		{"server error", http.StatusInternalServerError, ErrNetwork, true},
		{"rate limited", http.StatusTooManyRequests, ErrNetwork, true},
		{"forbidden", http.StatusForbidden, ErrNetwork, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.code)
			}))
			defer server.Close()

			client := NewClient(nil, nil)
			client.http = server.Client()

			var resp map[string]string
			err := client.Get(context.Background(), server.URL, &resp)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Get() error = %v, want %v", err, tt.wantErr)
			}
			var retryErr *httputil.RetryableError
			if got := errors.As(err, &retryErr); got != tt.retryable {
				t.Errorf("retryable = %v, want %v", got, tt.retryable)
			}
		})
	}
}

func TestClientGetNetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := NewClient(nil, nil)
	var v any
	err := client.Get(context.Background(), url, &v)
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("Get() error = %v, want ErrNetwork", err)
	}
}

func TestClientCached(t *testing.T) {
	client := NewClient(testCache(t), nil)
	ctx := context.Background()

	fetches := 0
	fetch := func(v *string) func() error {
		return func() error {
			fetches++
			*v = "fetched"
			return nil
		}
	}

	var first string
	if err := client.Cached(ctx, "key", false, &first, fetch(&first)); err != nil {
		t.Fatalf("Cached() error: %v", err)
	}
	var second string
	if err := client.Cached(ctx, "key", false, &second, fetch(&second)); err != nil {
		t.Fatalf("Cached() error: %v", err)
	}
	if fetches != 1 {
		t.Errorf("fetch count = %d, want 1", fetches)
	}
	if second != "fetched" {
		t.Errorf("cached value = %q, want %q", second, "fetched")
	}

	var third string
	if err := client.Cached(ctx, "key", true, &third, fetch(&third)); err != nil {
		t.Fatalf("Cached() error: %v", err)
	}
	if fetches != 2 {
		t.Errorf("refresh should bypass cache, fetch count = %d", fetches)
	}
}

func TestClientCachedNilCache(t *testing.T) {
	client := NewClient(nil, nil)
	fetches := 0
	var v string
	for range 2 {
		err := client.Cached(context.Background(), "key", false, &v, func() error {
			fetches++
			return nil
		})
		if err != nil {
			t.Fatal(err)
		}
	}
	if fetches != 2 {
		t.Errorf("fetch count = %d, want 2 without a cache", fetches)
	}
}

func TestClientCachedFetchError(t *testing.T) {
	client := NewClient(testCache(t), nil)

	fetches := 0
	var v string
	err := client.Cached(context.Background(), "missing", false, &v, func() error {
		fetches++
		return ErrNotFound
	})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Cached() error = %v, want ErrNotFound", err)
	}
	if fetches != 1 {
		t.Errorf("non-retryable error fetched %d times, want 1", fetches)
	}
}

func TestClientCachedDropsUnreadableEntry(t *testing.T) {
	cache := testCache(t)
	if err := cache.Set("key", map[string]int{"not": 1}); err != nil {
		t.Fatal(err)
	}
	client := NewClient(cache, nil)

	var v []string
	err := client.Cached(context.Background(), "key", false, &v, func() error {
		return ErrNotFound
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Cached() error = %v, want ErrNotFound", err)
	}

	var entry map[string]int
	if ok, err := cache.Get("key", &entry); ok || err != nil {
		t.Errorf("unreadable entry should be removed, Get() = %v, %v", ok, err)
	}
}

type countingCacheHooks struct {
	mu                sync.Mutex
	hits, misses, set int
}

func (h *countingCacheHooks) OnCacheHit(context.Context, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hits++
}

func (h *countingCacheHooks) OnCacheMiss(context.Context, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.misses++
}

func (h *countingCacheHooks) OnCacheSet(context.Context, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.set++
}

func TestClientCachedHooks(t *testing.T) {
	hooks := &countingCacheHooks{}
	observability.SetCacheHooks(hooks)
	t.Cleanup(observability.Reset)

	client := NewClient(testCache(t), nil)
	var v string
	fetch := func() error { v = "x"; return nil }
	for range 2 {
		if err := client.Cached(context.Background(), "k", false, &v, fetch); err != nil {
			t.Fatal(err)
		}
	}
	if hooks.misses != 1 || hooks.set != 1 || hooks.hits != 1 {
		t.Errorf("hooks = %d misses, %d sets, %d hits; want 1 each", hooks.misses, hooks.set, hooks.hits)
	}
}

func TestCheckStatus(t *testing.T) {
	tests := []struct {
		code      int
		wantErr   error
		retryable bool
	}{
		{200, nil, false},
		{404, ErrNotFound, false},
		{429, ErrNetwork, true},
		{500, ErrNetwork, true},
		{502, ErrNetwork, true},
		{503, ErrNetwork, true},
		{400, ErrNetwork, false},
		{403, ErrNetwork, false},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.code), func(t *testing.T) {
			err := checkStatus(tt.code)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("checkStatus(%d) unexpected error: %v", tt.code, err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("checkStatus(%d) = %v, want %v", tt.code, err, tt.wantErr)
			}
			var retryErr *httputil.RetryableError
			if got := errors.As(err, &retryErr); got != tt.retryable {
				t.Errorf("checkStatus(%d) retryable = %v, want %v", tt.code, got, tt.retryable)
			}
		})
	}
}
