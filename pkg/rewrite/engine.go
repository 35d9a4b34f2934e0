package rewrite

import (
	"bytes"
	"strings"

	"github.com/matzehuels/lockgemfile/pkg/errors"
	"github.com/matzehuels/lockgemfile/pkg/lockfile"
	"github.com/matzehuels/lockgemfile/pkg/patch"
	"github.com/matzehuels/lockgemfile/pkg/syntax"
)

// Keyword is the method name of a dependency declaration.
const Keyword = "gem"

const defaultQuote = '\''

// Mode selects the form of inserted version specifiers.
type Mode int

const (
	// Pessimistic inserts "~> <version>".
	Pessimistic Mode = iota
	// Exact inserts the bare locked version.
	Exact
)

// Prefix returns the text placed before the locked version.
func (m Mode) Prefix() string {
	if m == Pessimistic {
		return "~> "
	}
	return ""
}

func (m Mode) String() string {
	if m == Exact {
		return "exact"
	}
	return "pessimistic"
}

// ParseMode parses "pessimistic" or "exact".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pessimistic", "":
		return Pessimistic, nil
	case "exact":
		return Exact, nil
	}
	return Pessimistic, errors.New(errors.ErrCodeInvalidInput, "unknown rewrite mode %q (available: pessimistic, exact)", s)
}

// Pin is a planned version insertion for one gem declaration.
type Pin struct {
	Gem     string     // gem name as written in the declaration
	Version string     // version recorded in the lockfile
	Line    int        // 1-based line of the declaration's name literal
	Edit    patch.Edit // insertion against the original source
}

// Specifier returns the inserted version specifier without quotes.
func (p Pin) Specifier(m Mode) string {
	return m.Prefix() + p.Version
}

// Engine plans version pins. The zero Mode is [Pessimistic].
type Engine struct {
	Specs lockfile.Specs
	Mode  Mode
}

// Plan returns the pins for tree in source order. It never modifies the
// tree or its source.
func (e *Engine) Plan(tree *syntax.Tree) []Pin {
	if tree == nil {
		return nil
	}
	var pins []Pin
	syntax.Walk(tree.Root, func(n *syntax.Node) bool {
		if pin, ok := e.decide(n); ok {
			pin.Line = lineOf(tree.Source, pin.Edit.Offset)
			pins = append(pins, pin)
		}
		return true
	})
	return pins
}

func (e *Engine) decide(n *syntax.Node) (Pin, bool) {
	if callee, ok := n.Callee(); !ok || callee != Keyword {
		return Pin{}, false
	}

	nameArg, ok := n.Arg(0)
	if !ok {
		return Pin{}, false
	}
	name, ok := nameArg.StringValue()
	if !ok {
		return Pin{}, false
	}

	if second, ok := n.Arg(1); ok {
		if _, pinned := second.StringValue(); pinned {
			return Pin{}, false
		}
	}

	version, ok := e.Specs.Lookup(name)
	if !ok {
		return Pin{}, false
	}

	quote := nameArg.Quote()
	if quote == 0 {
		quote = defaultQuote
	}
	q := string(quote)

	return Pin{
		Gem:     name,
		Version: version,
		Edit: patch.Edit{
			Offset: nameArg.Span.End,
			Text:   ", " + q + e.Mode.Prefix() + version + q,
		},
	}, true
}

func lineOf(src []byte, offset int) int {
	offset = min(max(offset, 0), len(src))
	return bytes.Count(src[:offset], []byte("\n")) + 1
}
