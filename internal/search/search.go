// Package search builds Google search URLs for a resolved query.
package search

import (
	"net/url"
	"strings"

	"github.com/hyperifyio/google/internal/catalog"
)

// DefaultBaseURL is the search engine root used when no base is configured.
const DefaultBaseURL = "https://google.com"

// Options are the per-invocation search flags.
type Options struct {
	// Site restricts results to one domain (e.g., wikipedia.org).
	Site string
	// Raw prints the URL instead of opening it.
	Raw bool
}

// Builder builds search URLs against BaseURL. The zero value uses
// DefaultBaseURL.
type Builder struct {
	BaseURL string
}

// URL returns the search URL for cmd and query. Commands with a Mode use the
// tbm parameter on /search; all others use the /<name> vertical path. Any
// path prefix and query parameters on the base are kept.
func (b Builder) URL(cmd catalog.Search, query string, opts Options) (*url.URL, error) {
	base := b.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, err
	}
	if opts.Site != "" {
		query += " site:" + opts.Site
	}
	q := u.Query()
	q.Set("q", query)
	root := strings.TrimRight(u.Path, "/")
	if cmd.Mode != "" {
		q.Set("tbm", cmd.Mode)
		u.Path = root + "/search"
	} else {
		u.Path = root + "/" + cmd.Name
	}
	u.RawPath = ""
	u.RawQuery = q.Encode()
	u.Fragment = ""
	return u, nil
}

// BuildURL builds a search URL against DefaultBaseURL.
func BuildURL(cmd catalog.Search, query string, opts Options) (*url.URL, error) {
	return Builder{}.URL(cmd, query, opts)
}
