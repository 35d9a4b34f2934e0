package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/lockgemfile/pkg/observability"
	"github.com/matzehuels/lockgemfile/pkg/rewrite"
	"github.com/matzehuels/lockgemfile/pkg/syntax"
)

func TestDebugHooks(t *testing.T) {
	var buf bytes.Buffer
	RegisterDebugHooks(newLogger(&buf, log.DebugLevel))
	t.Cleanup(observability.Reset)

	ctx := context.Background()
	if _, err := rewrite.Rewrite(ctx, syntax.NewRubyParser(), []byte("gem 'rails'\n"), map[string]string{"rails": "6.1.4"}, rewrite.Pessimistic); err != nil {
		t.Fatal(err)
	}
	observability.Cache().OnCacheHit(ctx, "versions:rails")
	observability.HTTP().OnResponse(ctx, "GET", "rubygems.org", "/api/v1/versions/rails.json", 200, time.Millisecond)

	out := buf.String()
	for _, want := range []string{"rewrite started", "rewrite finished", "pinned=1", "cache hit", "status=200"} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q:\n%s", want, out)
		}
	}
}

func TestDebugHooksSilentAtInfo(t *testing.T) {
	var buf bytes.Buffer
	h := DebugHooks{Logger: newLogger(&buf, log.InfoLevel)}
	h.OnRequest(context.Background(), "GET", "rubygems.org", "/")
	if buf.Len() != 0 {
		t.Errorf("debug hooks should be silent at info level, got %q", buf.String())
	}
}
