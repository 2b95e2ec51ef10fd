// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for wiki-search.
// See docs/ARCHITECTURE § Data Structures.
package types

import "fmt"

// Result is one search hit as delivered by the MediaWiki search API.
// It lives for a single render pass and is replaced on the next search.
type Result struct {
	// ID is the upstream page id, the key of the entry in query.pages.
	ID string `json:"id" yaml:"id"`

	// Title is the page title.
	Title string `json:"title" yaml:"title"`

	// Extract is the plain-text intro excerpt, truncated upstream to the
	// requested excerpt budget.
	Extract string `json:"extract" yaml:"extract"`

	// Image is the thumbnail source URL, or empty when the page has none.
	Image string `json:"image,omitempty" yaml:"image,omitempty"`
}

// HasImage reports whether the result carries a thumbnail.
func (r Result) HasImage() bool {
	return r.Image != ""
}

// URL returns the link to the page on site (e.g. "en.wikipedia.org").
func (r Result) URL(site string) string {
	return fmt.Sprintf("https://%s/?curid=%s", site, r.ID)
}
