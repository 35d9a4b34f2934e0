// Package report summarizes how many installable versions match a Gemfile.
//
// For every declared dependency the [Generator] counts the versions that
// satisfy its requirement in two places: the local gem index and the remote
// registry. The totals are rendered as
//
//	Total gems: 10
//	Matching gems locally available: 15 (50.0% extra)
//	Matching gems remotely available: 20 (100.0% extra)
//
// where "extra" is the surplus over the number of gems relative to that
// number. A gem whose versions cannot be listed contributes zero and is
// reported through [Generator.Logf].
package report
