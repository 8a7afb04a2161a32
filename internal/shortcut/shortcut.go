// Package shortcut builds URLs for Google Workspace apps.
package shortcut

import (
	"net/url"

	"github.com/hyperifyio/google/internal/catalog"
)

// URL returns https://<name>.new when createNew is set, which starts a new
// document, and https://<host>.google.com otherwise.
func URL(sc catalog.Shortcut, createNew bool) *url.URL {
	if createNew {
		return &url.URL{Scheme: "https", Host: sc.Name + ".new"}
	}
	return &url.URL{Scheme: "https", Host: sc.Host() + ".google.com"}
}
