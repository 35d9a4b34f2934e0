// Package pkg provides the libraries behind lock, a tool that pins the gems
// of a Gemfile to the versions resolved in its Gemfile.lock.
//
// # Overview
//
// lock edits a Gemfile by inserting text only. Every gem declared without a
// version requirement gets one, taken from the lockfile:
//
//	gem 'rails'         becomes   gem 'rails', '~> 6.1.4'
//	gem 'pg', '>= 1.1'  is left untouched
//
// Comments, blank lines, options and the order of declarations survive
// byte for byte. The data flow:
//
//	Gemfile.lock ──[lockfile]──→ name → version
//	                                 ↓
//	Gemfile ──[syntax]──→ tree ──[rewrite]──→ pins ──[patch]──→ new Gemfile
//
// # Quick Start
//
//	specs, _ := lockfile.Load("Gemfile.lock")
//	src, _ := os.ReadFile("Gemfile")
//
//	res, err := rewrite.Rewrite(ctx, syntax.NewRubyParser(), src, specs, rewrite.Pessimistic)
//	if err != nil {
//	    return err
//	}
//	for _, p := range res.Pins {
//	    fmt.Printf("%s:%d %s\n", p.Gem, p.Line, p.Specifier(rewrite.Pessimistic))
//	}
//	os.WriteFile("Gemfile", res.Source, 0o644)
//
// # Main Packages
//
// ## Rewriting
//
// [lockfile] - Extracts the name → version mapping from the specs section of
// a Gemfile.lock.
//
// [syntax] - A small syntax tree over Ruby source with byte spans, backed by
// tree-sitter. The rewrite engine depends only on its [syntax.Parser]
// interface.
//
// [rewrite] - Decides which gem calls get a version and where the text goes.
// [rewrite.Rewrite] runs parse → plan → patch.
//
// [patch] - Applies insertion-only edits to a byte buffer.
//
// ## Reporting
//
// [gemfile] - Lists the dependencies declared in a Gemfile together with
// their requirements.
//
// [gemversion] - RubyGems version ordering and requirement matching,
// including the pessimistic operator.
//
// [localgems] - Index of gems installed in the local gem directories.
//
// [report] - Counts matching local and remote versions and renders the
// summary as text, JSON or YAML.
//
// ## Infrastructure
//
// [integrations] - Shared HTTP client for registries, with caching and
// retries; [integrations/rubygems] talks to the RubyGems.org API.
//
// [httputil] - File-based response cache and retry helpers.
//
// [errors] - Structured errors with machine-readable codes.
//
// [observability] - Optional hooks for rewrite, cache and HTTP events.
//
// [buildinfo] - Version metadata injected at build time.
//
// # Testing
//
//	go test ./pkg/...                 # All tests
//	go test ./pkg/rewrite/...         # Specific package
//	go test -run Example ./pkg/...    # Examples only
//
// [lockfile]: https://pkg.go.dev/github.com/matzehuels/lockgemfile/pkg/lockfile
// [syntax]: https://pkg.go.dev/github.com/matzehuels/lockgemfile/pkg/syntax
// [syntax.Parser]: https://pkg.go.dev/github.com/matzehuels/lockgemfile/pkg/syntax#Parser
// [rewrite]: https://pkg.go.dev/github.com/matzehuels/lockgemfile/pkg/rewrite
// [rewrite.Rewrite]: https://pkg.go.dev/github.com/matzehuels/lockgemfile/pkg/rewrite#Rewrite
// [patch]: https://pkg.go.dev/github.com/matzehuels/lockgemfile/pkg/patch
// [gemfile]: https://pkg.go.dev/github.com/matzehuels/lockgemfile/pkg/gemfile
// [gemversion]: https://pkg.go.dev/github.com/matzehuels/lockgemfile/pkg/gemversion
// [localgems]: https://pkg.go.dev/github.com/matzehuels/lockgemfile/pkg/localgems
// [report]: https://pkg.go.dev/github.com/matzehuels/lockgemfile/pkg/report
// [integrations]: https://pkg.go.dev/github.com/matzehuels/lockgemfile/pkg/integrations
// [integrations/rubygems]: https://pkg.go.dev/github.com/matzehuels/lockgemfile/pkg/integrations/rubygems
// [httputil]: https://pkg.go.dev/github.com/matzehuels/lockgemfile/pkg/httputil
// [errors]: https://pkg.go.dev/github.com/matzehuels/lockgemfile/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/lockgemfile/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/lockgemfile/pkg/buildinfo
package pkg
