package integrations

import (
	"errors"
	"net/http"
	"time"

	"github.com/matzehuels/lockgemfile/pkg/buildinfo"
	"github.com/matzehuels/lockgemfile/pkg/httputil"
)

const httpTimeout = 10 * time.Second

var (
	// ErrNotFound is returned when a resource doesn't exist in the registry.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for timeouts, connection errors and unexpected
	// status codes.
	ErrNetwork = errors.New("network error")
)

// UserAgent identifies this tool to registries.
func UserAgent() string { return "lockgemfile/" + buildinfo.Version }

// NewHTTPClient creates an HTTP client with the standard registry timeout.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}

// NewCache creates a response cache with the given TTL in the default cache
// directory. See [httputil.NewCache].
func NewCache(ttl time.Duration) (*httputil.Cache, error) {
	return httputil.NewCache("", ttl)
}
