package rewrite

import (
	"context"
	"time"

	"github.com/matzehuels/lockgemfile/pkg/errors"
	"github.com/matzehuels/lockgemfile/pkg/lockfile"
	"github.com/matzehuels/lockgemfile/pkg/observability"
	"github.com/matzehuels/lockgemfile/pkg/patch"
	"github.com/matzehuels/lockgemfile/pkg/syntax"
)

// Result is the outcome of [Rewrite].
type Result struct {
	Source []byte // patched source; equal to the input when no pins apply
	Pins   []Pin  // applied pins in source order
}

// Changed reports whether any pin was applied.
func (r *Result) Changed() bool { return len(r.Pins) > 0 }

// Rewrite parses src with p, plans pins against specs and applies them.
// Parse failures are returned unchanged; nothing is rewritten in that case.
func Rewrite(ctx context.Context, p syntax.Parser, src []byte, specs lockfile.Specs, mode Mode) (_ *Result, err error) {
	hooks := observability.Rewrite()
	hooks.OnRewriteStart(ctx, len(src))
	start := time.Now()
	var pinned int
	defer func() {
		hooks.OnRewriteComplete(ctx, pinned, time.Since(start), err)
	}()

	tree, err := p.Parse(ctx, src)
	if err != nil {
		return nil, err
	}

	engine := &Engine{Specs: specs, Mode: mode}
	pins := engine.Plan(tree)

	out, err := Apply(src, pins)
	if err != nil {
		return nil, err
	}
	pinned = len(pins)
	return &Result{Source: out, Pins: pins}, nil
}

// Apply inserts the given pins into src. Any subset of a plan can be applied.
func Apply(src []byte, pins []Pin) ([]byte, error) {
	out, err := patch.Apply(src, Edits(pins))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "apply %d pins", len(pins))
	}
	return out, nil
}

// Edits returns the text edits of pins.
func Edits(pins []Pin) []patch.Edit {
	edits := make([]patch.Edit, len(pins))
	for i, p := range pins {
		edits[i] = p.Edit
	}
	return edits
}
