package syntax

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/ruby"

	"github.com/matzehuels/lockgemfile/pkg/errors"
)

// callTypes are the grammar node types that represent method calls. Older
// revisions of the Ruby grammar used method_call and command.
var callTypes = map[string]bool{
	"call":         true,
	"method_call":  true,
	"command":      true,
	"command_call": true,
}

// reserved are Ruby keywords. The grammar recovers from some misplaced
// keywords (a stray `do` or `end`) by reading them as identifiers instead of
// reporting an error.
var reserved = map[string]bool{
	"BEGIN": true, "END": true, "alias": true, "and": true, "begin": true,
	"break": true, "case": true, "class": true, "def": true, "defined?": true,
	"do": true, "else": true, "elsif": true, "end": true, "ensure": true,
	"for": true, "if": true, "in": true, "module": true, "next": true,
	"not": true, "or": true, "redo": true, "rescue": true, "retry": true,
	"return": true, "then": true, "undef": true, "unless": true,
	"until": true, "when": true, "while": true, "yield": true,
}

// RubyParser parses Ruby source with the tree-sitter Ruby grammar.
type RubyParser struct{}

// NewRubyParser creates a RubyParser.
func NewRubyParser() *RubyParser {
	return &RubyParser{}
}

// Parse builds a [Tree] from Ruby source. A source containing syntax errors
// returns an INVALID_MANIFEST error with the 1-based position of the first
// error; no partial tree is returned.
func (p *RubyParser) Parse(ctx context.Context, src []byte) (*Tree, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(ruby.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "parse ruby source")
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		pos := firstError(root)
		return nil, errors.New(errors.ErrCodeInvalidManifest,
			"syntax error at line %d, column %d", pos.Row+1, pos.Column+1)
	}
	if kw := strayKeyword(root, src); kw != nil {
		pos := kw.StartPoint()
		return nil, errors.New(errors.ErrCodeInvalidManifest,
			"syntax error at line %d, column %d: unexpected %q", pos.Row+1, pos.Column+1, kw.Content(src))
	}

	return &Tree{Root: convert(root, src), Source: src}, nil
}

func firstError(n *sitter.Node) sitter.Point {
	if n.Type() == "ERROR" || n.IsMissing() {
		return n.StartPoint()
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c != nil && c.HasError() {
			return firstError(c)
		}
	}
	return n.StartPoint()
}

// strayKeyword returns the first identifier spelled like a keyword. Method
// and definition names (`x.then`, `def end`) are legal and skipped.
func strayKeyword(n *sitter.Node, src []byte) *sitter.Node {
	if n.Type() == "identifier" && reserved[n.Content(src)] {
		return n
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		if c == nil || isNameField(n, c) {
			continue
		}
		if kw := strayKeyword(c, src); kw != nil {
			return kw
		}
	}
	return nil
}

func isNameField(parent, child *sitter.Node) bool {
	for _, field := range []string{"method", "name"} {
		f := parent.ChildByFieldName(field)
		if f != nil && f.StartByte() == child.StartByte() && f.EndByte() == child.EndByte() {
			return true
		}
	}
	return false
}

func convert(n *sitter.Node, src []byte) *Node {
	out := &Node{
		Kind: KindOther,
		Type: n.Type(),
		Span: Span{Start: int(n.StartByte()), End: int(n.EndByte())},
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if c := n.NamedChild(i); c != nil {
			out.Children = append(out.Children, convert(c, src))
		}
	}

	switch {
	case callTypes[out.Type]:
		classifyCall(out, n, src)
	case out.Type == "string":
		classifyString(out, src)
	case out.Type == "identifier":
		out.Kind = KindIdentifier
		out.name = n.Content(src)
	}
	return out
}

func classifyCall(out *Node, n *sitter.Node, src []byte) {
	method := n.ChildByFieldName("method")
	if method == nil || method.Type() != "identifier" {
		return
	}
	out.Kind = KindCall
	out.name = method.Content(src)

	arguments := n.ChildByFieldName("arguments")
	if arguments == nil {
		return
	}
	span := Span{Start: int(arguments.StartByte()), End: int(arguments.EndByte())}
	for _, c := range out.Children {
		if c.Type != arguments.Type() || c.Span != span {
			continue
		}
		for _, arg := range c.Children {
			if arg.Type != "comment" {
				out.args = append(out.args, arg)
			}
		}
		return
	}
}

// classifyString marks out as a literal when it has no interpolation.
func classifyString(out *Node, src []byte) {
	var b strings.Builder
	for _, c := range out.Children {
		text := string(src[c.Span.Start:c.Span.End])
		switch c.Type {
		case "string_content":
			b.WriteString(text)
		case "escape_sequence":
			b.WriteString(unescape(text))
		default:
			return
		}
	}

	out.Kind = KindString
	out.value = b.String()
	if out.Span.Len() > 0 {
		if q := src[out.Span.Start]; q == '\'' || q == '"' {
			out.quote = q
		}
	}
}

func unescape(seq string) string {
	if len(seq) == 2 && seq[0] == '\\' {
		switch seq[1] {
		case '\\', '\'', '"':
			return seq[1:]
		}
	}
	return seq
}
