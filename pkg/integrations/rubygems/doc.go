// Package rubygems provides an HTTP client for the RubyGems.org API.
//
// Only the versions endpoint is used:
//
//	GET /api/v1/versions/<gem>.json
//
// which lists every published release of a gem, one entry per platform:
//
//	client := rubygems.NewClient(cache)
//	versions, err := client.FetchVersions(ctx, "rails", false)
//	for _, v := range versions {
//	    fmt.Println(v.Number, v.Platform)
//	}
//
// Gem names are validated before any URL is built. Responses are cached
// under the "rubygems:" namespace of the given cache; pass refresh=true to
// bypass it. [NewClientWithURL] targets a mirror or private gem server that
// speaks the same API.
package rubygems
