// Package patch applies positional text insertions to an immutable source
// buffer.
//
// # Overview
//
// An [Edit] names a byte offset into the original buffer and the text to
// insert there. Offsets always refer to the original buffer, never to the
// output, so any number of edits compose without one shifting another:
//
//	src := []byte("gem 'rails'\ngem 'puma'\n")
//	out, err := patch.Apply(src, []patch.Edit{
//	    {Offset: 11, Text: ", '~> 7.1.2'"},
//	    {Offset: 22, Text: ", '~> 6.4.0'"},
//	})
//
// # Guarantees
//
// [Apply] only inserts. Every byte of the original buffer appears in the
// output exactly once and in its original relative order, so
//
//	len(out) == len(src) + sum(len(edit.Text))
//
// Two edits at the same offset, or an offset outside the buffer, are
// rejected with [ErrDuplicateOffset] or [ErrOffsetRange]; on error no output
// is produced.
package patch
