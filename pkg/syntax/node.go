package syntax

import "context"

// Kind discriminates the node shapes that carry typed data.
type Kind int

const (
	KindOther Kind = iota
	KindCall
	KindString
	KindIdentifier
)

func (k Kind) String() string {
	switch k {
	case KindCall:
		return "call"
	case KindString:
		return "string"
	case KindIdentifier:
		return "identifier"
	default:
		return "other"
	}
}

// Span is a half-open byte range [Start, End) into the source buffer.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by s.
func (s Span) Len() int { return s.End - s.Start }

// Node is a syntax tree node.
type Node struct {
	Kind     Kind
	Type     string // grammar node type, e.g. "call", "do_block"
	Span     Span
	Children []*Node

	name  string  // callee of a call, text of an identifier
	args  []*Node // call arguments, in source order; also present in Children
	value string  // decoded content of a string literal
	quote byte    // opening delimiter of a string literal, 0 when not a quote
}

// Callee returns the method name of a call node.
func (n *Node) Callee() (string, bool) {
	if n == nil || n.Kind != KindCall {
		return "", false
	}
	return n.name, true
}

// Args returns the arguments of a call node, or nil for any other node.
func (n *Node) Args() []*Node {
	if n == nil || n.Kind != KindCall {
		return nil
	}
	return n.args
}

// Arg returns the i-th argument of a call node.
func (n *Node) Arg(i int) (*Node, bool) {
	args := n.Args()
	if i < 0 || i >= len(args) {
		return nil, false
	}
	return args[i], true
}

// StringValue returns the content of a string literal node.
func (n *Node) StringValue() (string, bool) {
	if n == nil || n.Kind != KindString {
		return "", false
	}
	return n.value, true
}

// Quote returns the quote character (' or ") that opens a string literal,
// or 0 when the node is not a string or uses another delimiter (%q, heredoc).
func (n *Node) Quote() byte {
	if n == nil || n.Kind != KindString {
		return 0
	}
	return n.quote
}

// Ident returns the name of an identifier node.
func (n *Node) Ident() (string, bool) {
	if n == nil || n.Kind != KindIdentifier {
		return "", false
	}
	return n.name, true
}

// Walk visits n and its descendants in pre-order. If fn returns false the
// children of that node are skipped.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children {
		Walk(c, fn)
	}
}

// Tree is a parsed source buffer.
type Tree struct {
	Root   *Node
	Source []byte
}

// Slice returns the source text covered by s, clamped to the buffer.
func (t *Tree) Slice(s Span) string {
	start := min(max(s.Start, 0), len(t.Source))
	end := min(max(s.End, start), len(t.Source))
	return string(t.Source[start:end])
}

// Parser turns source text into a [Tree].
type Parser interface {
	Parse(ctx context.Context, src []byte) (*Tree, error)
}

// Call builds a call node whose children are its arguments.
func Call(callee string, span Span, args ...*Node) *Node {
	return &Node{
		Kind:     KindCall,
		Type:     "call",
		Span:     span,
		Children: args,
		name:     callee,
		args:     args,
	}
}

// String builds a string literal node.
func String(value string, quote byte, span Span) *Node {
	return &Node{Kind: KindString, Type: "string", Span: span, value: value, quote: quote}
}

// Identifier builds an identifier node.
func Identifier(name string, span Span) *Node {
	return &Node{Kind: KindIdentifier, Type: "identifier", Span: span, name: name}
}

// Other builds an uninterpreted node of the given grammar type.
func Other(typ string, span Span, children ...*Node) *Node {
	return &Node{Kind: KindOther, Type: typ, Span: span, Children: children}
}
