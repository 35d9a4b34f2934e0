package rubygems

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	pkgerrors "github.com/matzehuels/lockgemfile/pkg/errors"
	"github.com/matzehuels/lockgemfile/pkg/httputil"
	"github.com/matzehuels/lockgemfile/pkg/integrations"
)

// DefaultBaseURL is the RubyGems.org API root.
const DefaultBaseURL = "https://rubygems.org/api/v1"

// Version is one published release of a gem.
type Version struct {
	Number     string `json:"number"`
	Platform   string `json:"platform"`
	Prerelease bool   `json:"prerelease"`
}

// Client fetches gem data from a RubyGems-compatible API.
// It is safe for concurrent use.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a client for RubyGems.org. A nil cache disables
// response caching.
func NewClient(cache *httputil.Cache) *Client {
	return NewClientWithURL(cache, DefaultBaseURL)
}

// NewClientWithURL creates a client for the API rooted at baseURL, such as
// a private gem server or mirror.
func NewClientWithURL(cache *httputil.Cache, baseURL string) *Client {
	if cache != nil {
		cache = cache.Namespace("rubygems:")
	}
	return &Client{
		Client:  integrations.NewClient(cache, map[string]string{"User-Agent": integrations.UserAgent()}),
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// FetchVersions returns every published version of gem, newest first as
// served by the API. One entry exists per platform build, so a number can
// repeat. refresh bypasses the cache.
//
// Unknown gems yield a PACKAGE_NOT_FOUND error wrapping
// [integrations.ErrNotFound]; other errors wrap
// [integrations.ErrNetwork] for transport failures.
func (c *Client) FetchVersions(ctx context.Context, gem string, refresh bool) ([]Version, error) {
	gem = strings.TrimSpace(gem)
	if err := pkgerrors.ValidateGemName(gem); err != nil {
		return nil, err
	}

	var versions []Version
	err := c.Cached(ctx, "versions:"+gem, refresh, &versions, func() error {
		return c.fetchVersions(ctx, gem, &versions)
	})
	if err != nil {
		return nil, err
	}
	return versions, nil
}

func (c *Client) fetchVersions(ctx context.Context, gem string, out *[]Version) error {
	endpoint := fmt.Sprintf("%s/versions/%s.json", c.baseURL, url.PathEscape(gem))
	var data []Version
	if err := c.Get(ctx, endpoint, &data); err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return pkgerrors.Wrap(pkgerrors.ErrCodePackageNotFound, err, "gem %s not found", gem)
		}
		return err
	}
	*out = data
	return nil
}

// Numbers returns the version numbers of versions in order.
func Numbers(versions []Version) []string {
	numbers := make([]string, len(versions))
	for i, v := range versions {
		numbers[i] = v.Number
	}
	return numbers
}
