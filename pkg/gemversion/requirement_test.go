package gemversion

import (
	"fmt"
	"testing"
)

func TestParseConstraint(t *testing.T) {
	tests := []struct {
		input   string
		wantOp  Operator
		wantVer string
		wantErr bool
	}{
		{"1.0", OpEqual, "1.0", false},
		{"= 1.0", OpEqual, "1.0", false},
		{"!= 1.0", OpNotEqual, "1.0", false},
		{"> 1.0", OpGreater, "1.0", false},
		{"<1.0", OpLess, "1.0", false},
		{">=1.0", OpGreaterOrEqual, "1.0", false},
		{"<= 1.0", OpLessOrEqual, "1.0", false},
		{"~> 6.1.0", OpPessimistic, "6.1.0", false},
		{"  ~>6.1  ", OpPessimistic, "6.1", false},
		{"=> 1.0", "", "", true},
		{"~> ", "", "", true},
		{"github", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			c, err := ParseConstraint(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseConstraint(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if c.Op != tt.wantOp || c.Version.String() != tt.wantVer {
				t.Errorf("ParseConstraint(%q) = %s, want %s %s", tt.input, c, tt.wantOp, tt.wantVer)
			}
		})
	}
}

func TestConstraint_Allows(t *testing.T) {
	tests := []struct {
		constraint string
		version    string
		want       bool
	}{
		{"= 1.0", "1.0.0", true},
		{"= 1.0", "1.0.1", false},
		{"!= 1.0", "1.1", true},
		{"> 1.0", "1.0", false},
		{"> 1.0", "1.0.1", true},
		{"< 1.0", "1.0.0.rc1", true},
		{">= 1.0", "1.1", true},
		{">= 2.0", "1.9", false},
		{"<= 1.0", "1.0", true},
		{"~> 2.2", "2.2", true},
		{"~> 2.2", "2.9.9", true},
		{"~> 2.2", "3.0", false},
		{"~> 2.2.1", "2.2.5", true},
		{"~> 2.2.1", "2.3", false},
		{"~> 2.2.1", "2.2.0", false},
		{"~> 6.1.0", "6.1.7.3", true},
		{"~> 1.0", "1.5.0.rc1", true},
		{"~> 2", "2.9", true},
		{"~> 2", "3", false},
		{">= 0", "0.0.1.alpha", true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%s", tt.constraint, tt.version), func(t *testing.T) {
			c, err := ParseConstraint(tt.constraint)
			if err != nil {
				t.Fatalf("ParseConstraint(%q) error = %v", tt.constraint, err)
			}
			if got := c.Allows(MustParse(tt.version)); got != tt.want {
				t.Errorf("%s allows %s = %v, want %v", tt.constraint, tt.version, got, tt.want)
			}
		})
	}
}

func TestParseRequirement(t *testing.T) {
	req, err := ParseRequirement()
	if err != nil {
		t.Fatalf("ParseRequirement() error = %v", err)
	}
	if req.String() != ">= 0" {
		t.Errorf("default requirement = %q, want %q", req.String(), ">= 0")
	}

	req, err = ParseRequirement(">= 1.0", "< 2")
	if err != nil {
		t.Fatalf("ParseRequirement() error = %v", err)
	}
	if got := req.String(); got != ">= 1.0, < 2" {
		t.Errorf("String() = %q", got)
	}

	if _, err := ParseRequirement(">= 1.0", "nope"); err == nil {
		t.Error("ParseRequirement() expected error for bad constraint")
	}
}

func TestRequirement_Count(t *testing.T) {
	tests := []struct {
		name     string
		req      []string
		versions []string
		want     int
	}{
		{"gem1", []string{">= 1.0"}, []string{"1.1", "1.2"}, 2},
		{"gem2", []string{">= 2.0"}, []string{"1.9", "2.1"}, 1},
		{"default", nil, []string{"0.1", "1.0.0.beta", "9"}, 3},
		{"range", []string{">= 1.0", "< 2"}, []string{"0.9", "1.0", "1.9.9", "2.0"}, 2},
		{"unparseable skipped", []string{"~> 1.0"}, []string{"1.1", "garbage", ""}, 1},
		{"empty", []string{"~> 1.0"}, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := ParseRequirement(tt.req...)
			if err != nil {
				t.Fatalf("ParseRequirement() error = %v", err)
			}
			if got := req.Count(tt.versions); got != tt.want {
				t.Errorf("Count() = %d, want %d", got, tt.want)
			}
		})
	}
}

func ExampleRequirement_SatisfiedBy() {
	req, _ := ParseRequirement("~> 6.1.0")
	for _, v := range []string{"6.0.9", "6.1.0", "6.1.7", "6.2.0"} {
		fmt.Println(v, req.SatisfiedBy(MustParse(v)))
	}
	// Output:
	// 6.0.9 false
	// 6.1.0 true
	// 6.1.7 true
	// 6.2.0 false
}
