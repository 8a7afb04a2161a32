// Package catalog holds the fixed tables of commands the CLI exposes.
package catalog

import "slices"

// Search describes a search vertical. When Mode is set the vertical is
// selected with the tbm query parameter on the plain search path; otherwise
// the vertical lives at /<Name>.
//
// Mode values: https://stenevang.wordpress.com/2013/02/22/google-advanced-power-search-url-request-parameters/
type Search struct {
	Name        string
	Mode        string
	Description string
}

// Summary is the one-line help text for the command.
func (s Search) Summary() string {
	if s.Description != "" {
		return s.Description
	}
	return "Search " + s.Name + "."
}

// Shortcut describes a Workspace app reachable at <Subdomain>.google.com and
// creatable at <Name>.new.
type Shortcut struct {
	Name string
	// Subdomain is only set when it differs from Name.
	Subdomain string
}

// Host returns the google.com subdomain label for the app.
func (s Shortcut) Host() string {
	if s.Subdomain != "" {
		return s.Subdomain
	}
	return s.Name
}

// Summary is the one-line help text for the command.
func (s Shortcut) Summary() string { return "Open " + s.Host() + "." }

// DefaultSearch is the descriptor used by the root command.
var DefaultSearch = Search{Name: "search", Description: "Default search."}

var searches = []Search{
	DefaultSearch,
	{Name: "books"},
	{Name: "flights"},
	{Name: "images"},
	{Name: "maps"},
	{Name: "news"},
	{Name: "patents"},
	{Name: "scholar"},
	{Name: "shopping", Mode: "shop"},
	{Name: "videos", Mode: "vid"},
}

var shortcuts = []Shortcut{
	{Name: "cal", Subdomain: "calendar"},
	{Name: "docs"},
	{Name: "sheets"},
	{Name: "slides"},
	{Name: "drive"},
}

// Searches returns a copy of the search command table in display order.
func Searches() []Search { return slices.Clone(searches) }

// Shortcuts returns a copy of the shortcut command table in display order.
func Shortcuts() []Shortcut { return slices.Clone(shortcuts) }

// LookupSearch finds a search command by name.
func LookupSearch(name string) (Search, bool) {
	i := slices.IndexFunc(searches, func(s Search) bool { return s.Name == name })
	if i < 0 {
		return Search{}, false
	}
	return searches[i], true
}

// LookupShortcut finds a shortcut command by name.
func LookupShortcut(name string) (Shortcut, bool) {
	i := slices.IndexFunc(shortcuts, func(s Shortcut) bool { return s.Name == name })
	if i < 0 {
		return Shortcut{}, false
	}
	return shortcuts[i], true
}
