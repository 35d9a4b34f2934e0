package rubygems

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"slices"
	"sync/atomic"
	"testing"
	"time"

	pkgerrors "github.com/matzehuels/lockgemfile/pkg/errors"
	"github.com/matzehuels/lockgemfile/pkg/httputil"
	"github.com/matzehuels/lockgemfile/pkg/integrations"
)

func versionsServer(t *testing.T, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			hits.Add(1)
		}
		switch r.URL.Path {
		case "/versions/rails.json":
			json.NewEncoder(w).Encode([]Version{
				{Number: "7.1.0", Platform: "ruby"},
				{Number: "7.1.0.rc1", Platform: "ruby", Prerelease: true},
				{Number: "7.0.8", Platform: "ruby"},
			})
		case "/versions/nokogiri.json":
			json.NewEncoder(w).Encode([]Version{
				{Number: "1.15.4", Platform: "ruby"},
				{Number: "1.15.4", Platform: "x86_64-linux"},
			})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func testClient(t *testing.T, serverURL string, cache *httputil.Cache) *Client {
	t.Helper()
	return NewClientWithURL(cache, serverURL+"/")
}

func TestClient_FetchVersions(t *testing.T) {
	server := versionsServer(t, nil)
	c := testClient(t, server.URL, nil)

	tests := []struct {
		gem  string
		want []string
	}{
		{"rails", []string{"7.1.0", "7.1.0.rc1", "7.0.8"}},
		{"nokogiri", []string{"1.15.4", "1.15.4"}},
	}
	for _, tt := range tests {
		t.Run(tt.gem, func(t *testing.T) {
			versions, err := c.FetchVersions(context.Background(), tt.gem, false)
			if err != nil {
				t.Fatalf("FetchVersions() error = %v", err)
			}
			if got := Numbers(versions); !slices.Equal(got, tt.want) {
				t.Errorf("Numbers() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClient_FetchVersions_NotFound(t *testing.T) {
	server := versionsServer(t, nil)
	c := testClient(t, server.URL, nil)

	_, err := c.FetchVersions(context.Background(), "missing-gem", true)
	if !errors.Is(err, integrations.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if code := pkgerrors.GetCode(err); code != pkgerrors.ErrCodePackageNotFound {
		t.Errorf("error code = %q, want %q", code, pkgerrors.ErrCodePackageNotFound)
	}
}

func TestClient_FetchVersions_InvalidName(t *testing.T) {
	var hits atomic.Int32
	server := versionsServer(t, &hits)
	c := testClient(t, server.URL, nil)

	for _, name := range []string{"", "../etc/passwd", "rails?x=1"} {
		_, err := c.FetchVersions(context.Background(), name, true)
		if pkgerrors.GetCode(err) != pkgerrors.ErrCodeInvalidPackage && pkgerrors.GetCode(err) != pkgerrors.ErrCodeInvalidInput {
			t.Errorf("FetchVersions(%q) error = %v, want a validation error", name, err)
		}
	}
	if hits.Load() != 0 {
		t.Errorf("invalid names reached the server %d times", hits.Load())
	}
}

func TestClient_FetchVersions_Cached(t *testing.T) {
	var hits atomic.Int32
	server := versionsServer(t, &hits)
	cache, err := httputil.NewCache(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	c := testClient(t, server.URL, cache)
	ctx := context.Background()

	for range 3 {
		if _, err := c.FetchVersions(ctx, "rails", false); err != nil {
			t.Fatal(err)
		}
	}
	if hits.Load() != 1 {
		t.Errorf("server hit %d times, want 1", hits.Load())
	}

	if _, err := c.FetchVersions(ctx, "rails", true); err != nil {
		t.Fatal(err)
	}
	if hits.Load() != 2 {
		t.Errorf("refresh did not reach the server, hits = %d", hits.Load())
	}

	var cached []Version
	if ok, _ := cache.Namespace("rubygems:").Get("versions:rails", &cached); !ok || len(cached) != 3 {
		t.Errorf("cache entry = %v, %v", ok, cached)
	}
}

func TestNewClient(t *testing.T) {
	c := NewClient(nil)
	if c.BaseURL() != DefaultBaseURL {
		t.Errorf("BaseURL() = %q, want %q", c.BaseURL(), DefaultBaseURL)
	}
	if got := NewClientWithURL(nil, "https://gems.example.com/api/v1/").BaseURL(); got != "https://gems.example.com/api/v1" {
		t.Errorf("BaseURL() = %q, trailing slash not trimmed", got)
	}
}
