package lockfile

import (
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/matzehuels/lockgemfile/pkg/errors"
)

// DependenciesHeader starts the section listing the Gemfile's direct
// requirements. Everything from here on is ignored.
const DependenciesHeader = "DEPENDENCIES"

var specLine = regexp.MustCompile(`^ {4}(\S+) \((.*?)\)`)

// Specs maps gem names to the version recorded in the lockfile.
type Specs map[string]string

// Lookup returns the locked version of name.
func (s Specs) Lookup(name string) (string, bool) {
	v, ok := s[name]
	return v, ok
}

// Names returns the locked gem names in sorted order.
func (s Specs) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Extractor turns lockfile text into a name → version mapping.
type Extractor interface {
	Extract(content string) Specs
}

// LineExtractor is the line-pattern [Extractor].
type LineExtractor struct{}

// Extract implements [Extractor]. A name listed twice keeps the last version.
func (LineExtractor) Extract(content string) Specs {
	specs := make(Specs)
	head, _, _ := strings.Cut(content, DependenciesHeader)
	for _, line := range strings.Split(head, "\n") {
		if m := specLine.FindStringSubmatch(line); m != nil {
			specs[m[1]] = m[2]
		}
	}
	return specs
}

// Parse extracts locked versions from lockfile content with [LineExtractor].
func Parse(content string) Specs {
	return LineExtractor{}.Extract(content)
}

// Load reads and parses the lockfile at path.
func Load(path string) (Specs, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "lockfile %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read lockfile %s", path)
	}
	return Parse(string(data)), nil
}
