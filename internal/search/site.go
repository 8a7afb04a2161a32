package search

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/idna"
)

// ErrInvalidSite reports a site filter that does not name a domain.
var ErrInvalidSite = errors.New("invalid site filter")

// ValidateSite checks the host part of a site filter against IDNA lookup
// rules and returns the trimmed filter. A path after the host
// (reddit.com/r/golang) and a leading dot (.gov) are allowed, as Google's
// site: operator accepts both. An empty filter is valid and means no filter.
// The trimmed filter is returned even alongside an error: Google accepts
// more than domains (host:port, "a.com OR site:b.com"), so callers treat the
// error as a warning.
func ValidateSite(site string) (string, error) {
	s := strings.TrimSpace(site)
	if s == "" {
		return "", nil
	}
	host := s
	if i := strings.IndexByte(host, '/'); i >= 0 {
		host = host[:i]
	}
	host = strings.TrimPrefix(host, ".")
	if host == "" {
		return s, fmt.Errorf("%w %q: empty host", ErrInvalidSite, site)
	}
	if _, err := idna.Lookup.ToASCII(host); err != nil {
		return s, fmt.Errorf("%w %q: %v", ErrInvalidSite, site, err)
	}
	return s, nil
}
