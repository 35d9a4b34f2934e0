// Package gemfile reads the dependency declarations of a Gemfile.
//
// Declarations are found on the syntax tree rather than by line matching, so
// gems inside group, platform or conditional blocks are all seen:
//
//	gf := gemfile.New(nil)
//	deps, err := gf.Parse(ctx, "Gemfile")
//	for _, d := range deps {
//	    req, _ := d.Requirement()
//	    fmt.Println(d.Name, req)
//	}
package gemfile

import (
	"context"
	"os"
	"path/filepath"

	"github.com/matzehuels/lockgemfile/pkg/errors"
	"github.com/matzehuels/lockgemfile/pkg/gemversion"
	"github.com/matzehuels/lockgemfile/pkg/syntax"
)

// Dependency is one `gem` declaration.
type Dependency struct {
	Name         string      // gem name
	Requirements []string    // leading version constraints, as written
	Span         syntax.Span // span of the whole declaration
}

// Requirement parses the declared constraints. A dependency without
// constraints requires ">= 0".
func (d Dependency) Requirement() (gemversion.Requirement, error) {
	req, err := gemversion.ParseRequirement(d.Requirements...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "gem %s", d.Name)
	}
	return req, nil
}

// Gemfile parses Gemfile manifests.
type Gemfile struct {
	parser syntax.Parser
}

// New returns a Gemfile reader using p, or the tree-sitter Ruby parser when
// p is nil.
func New(p syntax.Parser) *Gemfile {
	if p == nil {
		p = syntax.NewRubyParser()
	}
	return &Gemfile{parser: p}
}

func (g *Gemfile) Type() string { return "Gemfile" }

// Supports reports whether name is a Bundler manifest file name.
func (g *Gemfile) Supports(name string) bool { return name == "Gemfile" || name == "gems.rb" }

// Parse reads the manifest at path and returns its declared dependencies.
func (g *Gemfile) Parse(ctx context.Context, path string) ([]Dependency, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "%s not found", filepath.Base(path))
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read %s", path)
	}
	tree, err := g.parser.Parse(ctx, src)
	if err != nil {
		return nil, err
	}
	return Dependencies(tree), nil
}

// Dependencies returns the gems declared in tree in source order. Only the
// first declaration of a name counts; declarations whose name is not a
// string literal are skipped.
func Dependencies(tree *syntax.Tree) []Dependency {
	if tree == nil {
		return nil
	}
	var deps []Dependency
	seen := make(map[string]bool)

	syntax.Walk(tree.Root, func(n *syntax.Node) bool {
		if callee, ok := n.Callee(); !ok || callee != "gem" {
			return true
		}
		args := n.Args()
		if len(args) == 0 {
			return true
		}
		name, ok := args[0].StringValue()
		if !ok || seen[name] {
			return true
		}
		seen[name] = true

		var reqs []string
		for _, a := range args[1:] {
			s, ok := a.StringValue()
			if !ok {
				break
			}
			reqs = append(reqs, s)
		}
		deps = append(deps, Dependency{Name: name, Requirements: reqs, Span: n.Span})
		return true
	})
	return deps
}

// Names returns the dependency names in order.
func Names(deps []Dependency) []string {
	names := make([]string, len(deps))
	for i, d := range deps {
		names[i] = d.Name
	}
	return names
}
