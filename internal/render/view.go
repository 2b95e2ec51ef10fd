// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render materializes search results: as HTML DOM nodes for the
// widget page, as colored terminal text, or as JSON / YAML documents.
// See docs/ARCHITECTURE § Rendering.
package render

import (
	"fmt"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/pdiddy/wiki-search/pkg/types"
)

// Status line texts.
const (
	noResultsStatus = "Sorry, no results."
)

// StatusLine returns the one-line summary for n rendered results.
func StatusLine(n int) string {
	if n == 0 {
		return noResultsStatus
	}
	return fmt.Sprintf("Displaying %d results.", n)
}

// View owns the results container and the status line of the widget page.
// It is not safe for concurrent use; callers serialize access.
type View struct {
	site    string
	results *html.Node
	stats   *html.Node
}

// NewView returns an empty view whose links point at site
// (e.g. "en.wikipedia.org").
func NewView(site string) *View {
	return &View{
		site:    site,
		results: element(atom.Div, attr("id", "searchResults")),
		stats:   element(atom.Div, attr("id", "stats"), class("stats")),
	}
}

// Clear removes every previously rendered result and blanks the status line.
func (v *View) Clear() {
	removeChildren(v.results)
	setText(v.stats, "")
}

// Render appends one result block per record and updates the status line.
func (v *View) Render(results []types.Result) {
	for _, r := range results {
		v.results.AppendChild(v.resultItem(r))
	}
	setText(v.stats, StatusLine(len(results)))
}

// Results returns the results container node.
func (v *View) Results() *html.Node { return v.results }

// Stats returns the status line node.
func (v *View) Stats() *html.Node { return v.stats }

// WriteHTML writes the status line followed by the results container.
func (v *View) WriteHTML(w io.Writer) error {
	if err := html.Render(w, v.stats); err != nil {
		return fmt.Errorf("rendering status line: %w", err)
	}
	if err := html.Render(w, v.results); err != nil {
		return fmt.Errorf("rendering results: %w", err)
	}
	return nil
}

func (v *View) resultItem(r types.Result) *html.Node {
	return appendAll(element(atom.Div, class("resultItem")),
		v.resultTitle(r),
		resultContents(r),
	)
}

func (v *View) resultTitle(r types.Result) *html.Node {
	link := appendAll(
		element(atom.A, attr("href", r.URL(v.site)), attr("target", "_blank"), attr("rel", "noopener")),
		textNode(r.Title),
	)
	return appendAll(element(atom.Div, class("resultTitle")), link)
}

func resultContents(r types.Result) *html.Node {
	contents := element(atom.Div, class("resultContents"))
	if r.HasImage() {
		img := element(atom.Img, attr("src", r.Image), attr("alt", r.Title))
		contents.AppendChild(appendAll(element(atom.Div, class("resultImage")), img))
	}
	description := appendAll(element(atom.P, class("resultDescription")), textNode(r.Extract))
	contents.AppendChild(appendAll(element(atom.Div, class("resultExtract")), description))
	return contents
}
