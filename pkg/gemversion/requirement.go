package gemversion

import (
	"regexp"
	"strings"

	"github.com/matzehuels/lockgemfile/pkg/errors"
)

// Operator is a requirement comparison operator.
type Operator string

const (
	OpEqual          Operator = "="
	OpNotEqual       Operator = "!="
	OpGreater        Operator = ">"
	OpLess           Operator = "<"
	OpGreaterOrEqual Operator = ">="
	OpLessOrEqual    Operator = "<="
	OpPessimistic    Operator = "~>"
)

var constraintPattern = regexp.MustCompile(`^\s*(!=|>=|<=|~>|=|>|<)?\s*(\S+)\s*$`)

// Constraint is a single operator and version pair.
type Constraint struct {
	Op      Operator
	Version Version
}

// ParseConstraint parses a constraint such as "~> 6.1" or "1.0". A missing
// operator means equality.
func ParseConstraint(s string) (Constraint, error) {
	m := constraintPattern.FindStringSubmatch(s)
	if m == nil {
		return Constraint{}, errors.New(errors.ErrCodeInvalidInput, "illformed requirement %q", s)
	}
	v, err := Parse(m[2])
	if err != nil {
		return Constraint{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "illformed requirement %q", s)
	}
	op := Operator(m[1])
	if op == "" {
		op = OpEqual
	}
	return Constraint{Op: op, Version: v}, nil
}

// Allows reports whether v satisfies the constraint.
func (c Constraint) Allows(v Version) bool {
	cmp := v.Compare(c.Version)
	switch c.Op {
	case OpEqual:
		return cmp == 0
	case OpNotEqual:
		return cmp != 0
	case OpGreater:
		return cmp > 0
	case OpLess:
		return cmp < 0
	case OpGreaterOrEqual:
		return cmp >= 0
	case OpLessOrEqual:
		return cmp <= 0
	case OpPessimistic:
		return cmp >= 0 && v.Release().Compare(c.Version.Bump()) < 0
	}
	return false
}

func (c Constraint) String() string { return string(c.Op) + " " + c.Version.String() }

// Requirement is a conjunction of constraints.
type Requirement []Constraint

// Default is the requirement of a dependency declared without constraints.
var Default = Requirement{{Op: OpGreaterOrEqual, Version: MustParse("0")}}

// ParseRequirement parses every constraint; no constraints yields [Default].
func ParseRequirement(constraints ...string) (Requirement, error) {
	if len(constraints) == 0 {
		return Default, nil
	}
	req := make(Requirement, 0, len(constraints))
	for _, s := range constraints {
		c, err := ParseConstraint(s)
		if err != nil {
			return nil, err
		}
		req = append(req, c)
	}
	return req, nil
}

// SatisfiedBy reports whether v satisfies every constraint.
func (r Requirement) SatisfiedBy(v Version) bool {
	for _, c := range r {
		if !c.Allows(v) {
			return false
		}
	}
	return true
}

// Count returns how many of versions satisfy r. Unparseable versions never
// match.
func (r Requirement) Count(versions []string) int {
	n := 0
	for _, s := range versions {
		v, err := Parse(s)
		if err != nil {
			continue
		}
		if r.SatisfiedBy(v) {
			n++
		}
	}
	return n
}

func (r Requirement) String() string {
	parts := make([]string, len(r))
	for i, c := range r {
		parts[i] = c.String()
	}
	return strings.Join(parts, ", ")
}
