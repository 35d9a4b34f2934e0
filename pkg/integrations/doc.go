// Package integrations provides HTTP clients for package registry APIs.
//
// The [Client] type holds the plumbing every registry client shares:
// a 10 second timeout, retries with exponential backoff for network errors,
// 429 and 5xx responses, and a file cache of decoded responses. Registry
// specific clients embed it:
//
//	cache, _ := integrations.NewCache(24 * time.Hour)
//	gems := rubygems.NewClient(cache)
//	versions, err := gems.FetchVersions(ctx, "rails", false)
//
// Errors wrap [ErrNotFound] or [ErrNetwork]; use errors.Is to tell them
// apart.
//
// [rubygems]: github.com/matzehuels/lockgemfile/pkg/integrations/rubygems
package integrations
