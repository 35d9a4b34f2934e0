// Package syntax provides the syntax trees the rewrite engine works on.
//
// # Overview
//
// A [Node] is a tagged variant: its [Kind] says which typed accessors are
// meaningful. Only three shapes carry structure, everything else is
// [KindOther] and is walked but never interpreted:
//
//   - [KindCall]: a method call with a plain identifier callee, see
//     [Node.Callee] and [Node.Args]
//   - [KindString]: a string literal without interpolation, see
//     [Node.StringValue] and [Node.Quote]
//   - [KindIdentifier]: a bare identifier, see [Node.Ident]
//
// Accessors reject by default: asking a non-call for its callee returns
// ok=false instead of guessing.
//
// Every node carries the byte [Span] it covers in the original source, so
// callers can compute insertion points without re-printing the tree.
//
// # Parsing
//
// [RubyParser] builds trees from Ruby source with tree-sitter:
//
//	tree, err := syntax.NewRubyParser().Parse(ctx, src)
//	syntax.Walk(tree.Root, func(n *syntax.Node) bool {
//	    if name, ok := n.Callee(); ok {
//	        fmt.Println(name, tree.Slice(n.Span))
//	    }
//	    return true
//	})
//
// Sources with syntax errors are rejected; see [RubyParser.Parse].
package syntax
