// Package gemversion implements RubyGems version and requirement semantics.
//
// Version format: dot-separated segments of digits or letters, for example
// "6.1.0", "1.0.0.rc1" or "2.0.0-beta". A hyphen is read as ".pre.", so
// "2.0.0-beta" and "2.0.0.pre.beta" are the same version. Any segment
// containing letters makes the version a prerelease, which sorts before the
// release it precedes:
//
//	1.0.0.a < 1.0.0.rc1 < 1.0.0 = 1.0 < 1.0.1
//
// Requirements use the RubyGems operators =, !=, >, <, >=, <= and ~>
// (pessimistic). "~> 2.2.1" allows ">= 2.2.1" and "< 2.3".
package gemversion

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/matzehuels/lockgemfile/pkg/errors"
)

var versionPattern = regexp.MustCompile(`^[0-9]+(\.[0-9a-zA-Z]+)*(-[0-9A-Za-z-]+(\.[0-9A-Za-z-]+)*)?$`)

var segmentPattern = regexp.MustCompile(`[0-9]+|[a-zA-Z]+`)

// Segment is one numeric or alphabetic part of a version.
type Segment struct {
	IsNumber bool
	Number   uint64
	Text     string
}

func (s Segment) String() string {
	if s.IsNumber {
		return strconv.FormatUint(s.Number, 10)
	}
	return s.Text
}

func compareSegments(a, b Segment) int {
	switch {
	case a.IsNumber && b.IsNumber:
		switch {
		case a.Number < b.Number:
			return -1
		case a.Number > b.Number:
			return 1
		}
		return 0
	case !a.IsNumber && b.IsNumber:
		return -1
	case a.IsNumber && !b.IsNumber:
		return 1
	}
	return strings.Compare(a.Text, b.Text)
}

var zero = Segment{IsNumber: true}

// Version is a parsed RubyGems version.
type Version struct {
	raw      string
	segments []Segment
}

// Parse parses a RubyGems version string. Surrounding whitespace is ignored.
func Parse(s string) (Version, error) {
	s = strings.TrimSpace(s)
	if !versionPattern.MatchString(s) {
		return Version{}, errors.New(errors.ErrCodeInvalidInput, "malformed version number string %q", s)
	}
	normalized := strings.ReplaceAll(s, "-", ".pre.")

	var segs []Segment
	for _, part := range segmentPattern.FindAllString(normalized, -1) {
		if n, err := strconv.ParseUint(part, 10, 64); err == nil {
			segs = append(segs, Segment{IsNumber: true, Number: n})
			continue
		}
		if part[0] >= '0' && part[0] <= '9' {
			return Version{}, errors.New(errors.ErrCodeInvalidInput, "version segment %q out of range", part)
		}
		segs = append(segs, Segment{Text: part})
	}
	return Version{raw: s, segments: segs}, nil
}

// MustParse is like [Parse] but panics on malformed input.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

func (v Version) String() string { return v.raw }

// Segments returns a copy of the version's segments.
func (v Version) Segments() []Segment {
	return append([]Segment(nil), v.segments...)
}

// Prerelease reports whether any segment contains letters.
func (v Version) Prerelease() bool {
	for _, s := range v.segments {
		if !s.IsNumber {
			return true
		}
	}
	return false
}

// Release returns the version with every segment from the first alphabetic
// one onwards removed. Releases are returned unchanged.
func (v Version) Release() Version {
	for i, s := range v.segments {
		if !s.IsNumber {
			segs := append([]Segment(nil), v.segments[:i]...)
			return Version{raw: join(segs), segments: segs}
		}
	}
	return v
}

// Bump returns the next significant release: prerelease parts and the last
// numeric segment are dropped and the new last segment incremented.
// "5.3.1" bumps to "5.4", "5" to "6".
func (v Version) Bump() Version {
	segs := v.Release().Segments()
	if len(segs) > 1 {
		segs = segs[:len(segs)-1]
	}
	if len(segs) == 0 {
		segs = []Segment{zero}
	}
	segs[len(segs)-1].Number++
	return Version{raw: join(segs), segments: segs}
}

// canonical drops trailing zeros of the numeric run and of the trailing
// prerelease run, so "1.0" equals "1" and "1.0.a" equals "1.a".
func (v Version) canonical() []Segment {
	split := len(v.segments)
	for i, s := range v.segments {
		if !s.IsNumber {
			split = i
			break
		}
	}
	out := trimZeros(append([]Segment(nil), v.segments[:split]...))
	return append(out, trimZeros(append([]Segment(nil), v.segments[split:]...))...)
}

func trimZeros(segs []Segment) []Segment {
	for len(segs) > 0 {
		last := segs[len(segs)-1]
		if !last.IsNumber || last.Number != 0 {
			break
		}
		segs = segs[:len(segs)-1]
	}
	return segs
}

// Compare returns -1, 0 or 1 when v is lower than, equal to or greater
// than other.
func (v Version) Compare(other Version) int {
	a, b := v.canonical(), other.canonical()
	for i := range max(len(a), len(b)) {
		l, r := zero, zero
		if i < len(a) {
			l = a[i]
		}
		if i < len(b) {
			r = b[i]
		}
		if c := compareSegments(l, r); c != 0 {
			return c
		}
	}
	return 0
}

// Equal reports whether v and other compare equal.
func (v Version) Equal(other Version) bool { return v.Compare(other) == 0 }

// Compare parses and compares two version strings. Unparseable input falls
// back to lexicographic order.
func Compare(a, b string) int {
	va, errA := Parse(a)
	vb, errB := Parse(b)
	if errA != nil || errB != nil {
		return strings.Compare(a, b)
	}
	return va.Compare(vb)
}

func join(segs []Segment) string {
	parts := make([]string, len(segs))
	for i, s := range segs {
		parts[i] = s.String()
	}
	return strings.Join(parts, ".")
}
