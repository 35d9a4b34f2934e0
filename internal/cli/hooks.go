package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/lockgemfile/pkg/observability"
)

// DebugHooks logs rewrite, cache and HTTP events at debug level.
type DebugHooks struct {
	Logger *log.Logger
}

var (
	_ observability.RewriteHooks = DebugHooks{}
	_ observability.CacheHooks   = DebugHooks{}
	_ observability.HTTPHooks    = DebugHooks{}
)

// RegisterDebugHooks installs [DebugHooks] for every event category.
func RegisterDebugHooks(l *log.Logger) {
	h := DebugHooks{Logger: l}
	observability.SetRewriteHooks(h)
	observability.SetCacheHooks(h)
	observability.SetHTTPHooks(h)
}

func (h DebugHooks) OnRewriteStart(_ context.Context, size int) {
	h.Logger.Debug("rewrite started", "bytes", size)
}

func (h DebugHooks) OnRewriteComplete(_ context.Context, pinned int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("rewrite failed", "duration", d.Round(time.Microsecond), "error", err)
		return
	}
	h.Logger.Debug("rewrite finished", "pinned", pinned, "duration", d.Round(time.Microsecond))
}

func (h DebugHooks) OnCacheHit(_ context.Context, key string) {
	h.Logger.Debug("cache hit", "key", key)
}

func (h DebugHooks) OnCacheMiss(_ context.Context, key string) {
	h.Logger.Debug("cache miss", "key", key)
}

func (h DebugHooks) OnCacheSet(_ context.Context, key string) {
	h.Logger.Debug("cache set", "key", key)
}

func (h DebugHooks) OnRequest(_ context.Context, method, host, path string) {
	h.Logger.Debug("request", "method", method, "host", host, "path", path)
}

func (h DebugHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.Logger.Debug("response", "method", method, "host", host, "path", path, "status", status, "duration", d.Round(time.Millisecond))
}

func (h DebugHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.Logger.Debug("request failed", "method", method, "host", host, "path", path, "error", err)
}
