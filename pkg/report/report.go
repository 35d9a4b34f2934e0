package report

import (
	"context"
	"math"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/lockgemfile/pkg/gemfile"
	"github.com/matzehuels/lockgemfile/pkg/integrations/rubygems"
)

// DefaultConcurrency bounds parallel version lookups.
const DefaultConcurrency = 8

// VersionSource lists the known versions of a gem.
type VersionSource interface {
	Versions(ctx context.Context, name string) ([]string, error)
}

// RemoteSource adapts a RubyGems client to [VersionSource].
type RemoteSource struct {
	Client  *rubygems.Client
	Refresh bool
}

func (r *RemoteSource) Versions(ctx context.Context, name string) ([]string, error) {
	versions, err := r.Client.FetchVersions(ctx, name, r.Refresh)
	if err != nil {
		return nil, err
	}
	return rubygems.Numbers(versions), nil
}

// GemCounts holds the figures for one dependency.
type GemCounts struct {
	Name        string `json:"name" yaml:"name"`
	Requirement string `json:"requirement" yaml:"requirement"`
	Local       int    `json:"local" yaml:"local"`
	Remote      int    `json:"remote" yaml:"remote"`
}

// Report is the outcome of [Generator.Generate].
type Report struct {
	Total  int         `json:"total" yaml:"total"`
	Local  int         `json:"local" yaml:"local"`
	Remote int         `json:"remote" yaml:"remote"`
	Gems   []GemCounts `json:"gems" yaml:"gems"`
}

// LocalExtra is the local surplus as a percentage string.
func (r *Report) LocalExtra() string { return Percent(r.Local-r.Total, r.Total) }

// RemoteExtra is the remote surplus as a percentage string.
func (r *Report) RemoteExtra() string { return Percent(r.Remote-r.Total, r.Total) }

// Generator counts matching versions. Nil sources count as zero.
type Generator struct {
	Local       VersionSource
	Remote      VersionSource
	Concurrency int // DefaultConcurrency when <= 0

	// Logf receives one warning per gem and source that could not be
	// counted. Calls are serialized.
	Logf func(format string, args ...any)

	mu sync.Mutex
}

// Generate counts deps against both sources. Lookups run concurrently;
// only context cancellation aborts the report.
func (g *Generator) Generate(ctx context.Context, deps []gemfile.Dependency) (*Report, error) {
	rep := &Report{Total: len(deps), Gems: make([]GemCounts, len(deps))}

	limit := g.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(limit)

	for i, dep := range deps {
		rep.Gems[i] = GemCounts{Name: dep.Name}
		req, err := dep.Requirement()
		if err != nil {
			g.warn("skipping %s: %v", dep.Name, err)
			continue
		}
		rep.Gems[i].Requirement = req.String()

		count := func(src VersionSource, kind string, dst *int) {
			if src == nil {
				return
			}
			eg.Go(func() error {
				versions, err := src.Versions(ctx, dep.Name)
				if err != nil {
					if ctx.Err() != nil {
						return ctx.Err()
					}
					g.warn("%s versions of %s unavailable: %v", kind, dep.Name, err)
					return nil
				}
				*dst = req.Count(versions)
				return nil
			})
		}
		count(g.Local, "local", &rep.Gems[i].Local)
		count(g.Remote, "remote", &rep.Gems[i].Remote)
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	for _, gc := range rep.Gems {
		rep.Local += gc.Local
		rep.Remote += gc.Remote
	}
	return rep, nil
}

func (g *Generator) warn(format string, args ...any) {
	if g.Logf == nil {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Logf(format, args...)
}

// Percent returns a/b as a percentage rounded to two decimals, formatted the
// way Ruby prints floats ("50.0%", "33.33%", "-100.0%"). b == 0 yields
// "0.0%".
func Percent(a, b int) string {
	if b == 0 {
		return "0.0%"
	}
	v := math.Round(float64(a)/float64(b)*100*100) / 100
	return formatFloat(v) + "%"
}

func formatFloat(v float64) string {
	if abs := math.Abs(v); abs >= 1e16 {
		s := strconv.FormatFloat(v, 'e', -1, 64)
		mant, exp, _ := strings.Cut(s, "e")
		if !strings.Contains(mant, ".") {
			mant += ".0"
		}
		return mant + "e" + exp
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
