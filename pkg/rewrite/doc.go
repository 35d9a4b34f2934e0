// Package rewrite pins floating gem declarations to locked versions.
//
// # Overview
//
// The [Engine] walks a Gemfile syntax tree and plans one [Pin] per
// `gem 'name'` call that has no version yet and whose name is recorded in
// the lockfile. A pin is a pure description of an insertion; nothing is
// modified until the pins are applied with [Apply]:
//
//	engine := &rewrite.Engine{Specs: specs, Mode: rewrite.Pessimistic}
//	pins := engine.Plan(tree)
//	out, err := rewrite.Apply(tree.Source, pins)
//
// [Rewrite] runs parse, plan and apply in one call.
//
// # Decision Rules
//
// For every call node, in source order:
//
//  1. The callee must be exactly `gem`.
//  2. The first argument must be a string literal (the gem name).
//  3. A second argument that is a string literal means the gem is already
//     pinned. Its content is never inspected or corrected.
//  4. A name missing from the lockfile is left alone.
//
// Anything that does not fit these shapes is ordinary code and is left
// untouched.
//
// # Inserted Text
//
// The specifier is inserted right after the name literal, so it lands before
// any options, comments or blocks:
//
//	gem 'rails'                  → gem 'rails', '~> 6.1.0'
//	gem "pg", require: false     → gem "pg", "~> 1.5.4", require: false
//
// The quote character of the name literal is reused; names written with
// other delimiters (%q) get single quotes. [Exact] mode drops the "~> "
// prefix.
package rewrite
