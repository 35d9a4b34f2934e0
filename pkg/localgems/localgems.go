// Package localgems indexes the gems installed on this machine.
//
// RubyGems keeps one `<name>-<version>[-<platform>].gemspec` file per
// installed gem under `<gem dir>/specifications`. The index lists those
// directories and derives name and version from the file names; the
// gemspecs themselves are never evaluated.
//
// Gem directories are taken from GEM_HOME and GEM_PATH, then the per-user
// and system locations Ruby installs into:
//
//	~/.gem/ruby/<abi>
//	~/.local/share/gem/ruby/<abi>
//	/usr/local/lib/ruby/gems/<abi>
//	/usr/lib/ruby/gems/<abi>
//	/var/lib/gems/<abi>
package localgems

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/viant/afs"

	"github.com/matzehuels/lockgemfile/pkg/errors"
	"github.com/matzehuels/lockgemfile/pkg/gemversion"
)

const specExt = ".gemspec"

// Spec identifies one installed gem.
type Spec struct {
	Name     string
	Version  string
	Platform string // empty for pure-Ruby gems
}

// Index lists installed gems by name. It is safe for concurrent use; the
// directories are read once, on first lookup.
type Index struct {
	fs       afs.Service
	dirs     []string
	dirsOnce sync.Once

	once  sync.Once
	specs map[string][]Spec
	err   error
}

// New returns an index over the given gem directories. With no directories
// it uses [DefaultDirs].
func New(dirs ...string) *Index {
	return &Index{fs: afs.New(), dirs: dirs}
}

// Dirs returns the gem directories the index reads. Defaults are resolved
// once, on first use.
func (i *Index) Dirs(ctx context.Context) []string {
	i.dirsOnce.Do(func() {
		if len(i.dirs) == 0 {
			i.dirs = DefaultDirs(ctx, i.fs)
		}
	})
	return i.dirs
}

// Versions returns the installed versions of name, one entry per installed
// spec. Unknown gems yield no versions and no error.
func (i *Index) Versions(ctx context.Context, name string) ([]string, error) {
	specs, err := i.Specs(ctx)
	if err != nil {
		return nil, err
	}
	var versions []string
	for _, s := range specs[name] {
		versions = append(versions, s.Version)
	}
	return versions, nil
}

// Specs returns every installed spec keyed by gem name.
func (i *Index) Specs(ctx context.Context) (map[string][]Spec, error) {
	i.once.Do(func() {
		i.specs, i.err = i.load(ctx)
	})
	return i.specs, i.err
}

func (i *Index) load(ctx context.Context) (map[string][]Spec, error) {
	specs := make(map[string][]Spec)
	seen := make(map[string]bool)

	for _, dir := range i.Dirs(ctx) {
		specDir := path.Join(filepath.ToSlash(dir), "specifications")
		ok, err := i.fs.Exists(ctx, specDir)
		if err != nil || !ok {
			continue
		}
		objects, err := i.fs.List(ctx, specDir)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "list %s", specDir)
		}
		for _, obj := range objects {
			if obj.IsDir() || seen[obj.Name()] {
				continue
			}
			spec, ok := ParseSpecFilename(obj.Name())
			if !ok {
				continue
			}
			seen[obj.Name()] = true
			specs[spec.Name] = append(specs[spec.Name], spec)
		}
	}
	return specs, nil
}

// ParseSpecFilename splits a gemspec file name such as
// "nokogiri-1.15.4-x86_64-linux.gemspec" into its parts. The version is the
// first hyphen-separated part after the name that starts with a digit.
func ParseSpecFilename(file string) (Spec, bool) {
	stem, ok := strings.CutSuffix(file, specExt)
	if !ok {
		return Spec{}, false
	}
	parts := strings.Split(stem, "-")
	if parts[0] == "" {
		return Spec{}, false
	}
	for idx := 1; idx < len(parts); idx++ {
		p := parts[idx]
		if p == "" || p[0] < '0' || p[0] > '9' {
			continue
		}
		if _, err := gemversion.Parse(p); err != nil {
			continue
		}
		return Spec{
			Name:     strings.Join(parts[:idx], "-"),
			Version:  p,
			Platform: strings.Join(parts[idx+1:], "-"),
		}, true
	}
	return Spec{}, false
}

// DefaultDirs returns the gem directories of this machine that exist, in
// lookup order and without duplicates.
func DefaultDirs(ctx context.Context, fs afs.Service) []string {
	var candidates []string
	if home := os.Getenv("GEM_HOME"); home != "" {
		candidates = append(candidates, home)
	}
	for _, p := range filepath.SplitList(os.Getenv("GEM_PATH")) {
		if p != "" {
			candidates = append(candidates, p)
		}
	}

	var parents []string
	if home, err := os.UserHomeDir(); err == nil {
		parents = append(parents,
			filepath.Join(home, ".gem", "ruby"),
			filepath.Join(home, ".local", "share", "gem", "ruby"),
		)
	}
	parents = append(parents, "/usr/local/lib/ruby/gems", "/usr/lib/ruby/gems", "/var/lib/gems")
	for _, parent := range parents {
		candidates = append(candidates, subdirs(ctx, fs, parent)...)
	}

	var dirs []string
	seen := make(map[string]bool)
	for _, d := range candidates {
		d = filepath.Clean(d)
		if seen[d] {
			continue
		}
		seen[d] = true
		dirs = append(dirs, d)
	}
	return dirs
}

func subdirs(ctx context.Context, fs afs.Service, parent string) []string {
	if ok, err := fs.Exists(ctx, parent); err != nil || !ok {
		return nil
	}
	objects, err := fs.List(ctx, parent)
	if err != nil {
		return nil
	}
	var dirs []string
	for _, obj := range objects {
		// List includes parent itself.
		if !obj.IsDir() || obj.Name() == filepath.Base(parent) {
			continue
		}
		dirs = append(dirs, filepath.Join(parent, obj.Name()))
	}
	return dirs
}
