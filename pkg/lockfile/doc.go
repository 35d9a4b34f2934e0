// Package lockfile extracts locked gem versions from a Gemfile.lock.
//
// # Overview
//
// Only the resolved-specs part of the lockfile is consumed: the text before
// the first DEPENDENCIES header. Inside it, every line indented by exactly
// four spaces and shaped like "name (version)" becomes an entry:
//
//	GEM
//	  remote: https://rubygems.org/
//	  specs:
//	    rails (6.1.0)          <- rails: 6.1.0
//	      actionpack (= 6.1.0) <- ignored (transitive requirement)
//	    puma (5.0.4)           <- puma: 5.0.4
//
// The version text between the parentheses is kept verbatim.
//
// # Usage
//
//	specs, err := lockfile.Load("Gemfile.lock")
//	if v, ok := specs.Lookup("rails"); ok {
//	    fmt.Println(v) // 6.1.0
//	}
//
// [Extractor] isolates the line matcher so a grammar-aware parser can be
// swapped in without touching callers.
package lockfile
