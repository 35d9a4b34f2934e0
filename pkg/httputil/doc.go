// Package httputil provides the caching and retry plumbing shared by
// registry clients.
//
// # Caching
//
// [Cache] keeps registry responses on disk, by default under
// $XDG_CACHE_HOME/lockgemfile or ~/.cache/lockgemfile, with a TTL:
//
//	cache, err := httputil.NewCache("", 24*time.Hour)
//	gems := cache.Namespace("rubygems:")
//	ok, err := gems.Get("versions:rails", &versions)
//	if !ok {
//	    versions = fetch()
//	    _ = gems.Set("versions:rails", versions)
//	}
//
// Keys should be namespaced per registry. `lock cache clear` empties the
// directory.
//
// # Retry
//
// [Retry] re-runs an operation whose error is wrapped in [RetryableError],
// doubling the delay between attempts. Errors that are not retryable are
// returned immediately. [RetryWithBackoff] uses 3 attempts starting at one
// second.
package httputil
