// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"fmt"
	"io"
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Page describes the widget document around a View.
type Page struct {
	// Title is the document and heading title.
	Title string

	// Query is the text shown in the search input.
	Query string

	// Width seeds the hidden viewport-width field; the inline script
	// replaces it with the browser's real width.
	Width int
}

// ClearVisible reports whether the clear-text control is shown.
func (p Page) ClearVisible() bool {
	return p.Query != ""
}

// pageStyle mirrors the class names the view emits.
const pageStyle = `
body { font-family: sans-serif; margin: 0 auto; max-width: 900px; padding: 1rem; }
.searchEntry { display: flex; gap: .5rem; }
#search { flex: 1; font-size: 1.2rem; padding: .4rem; }
.none { display: none; }
.flex { display: flex; }
.stats { margin: 1rem 0; color: #555; }
.resultItem { margin-bottom: 1.5rem; }
.resultTitle a { font-size: 1.2rem; }
.resultContents { display: flex; gap: 1rem; align-items: flex-start; }
.resultImage img { max-width: 80px; }
`

// pageScript reports the real viewport width on submit and toggles the clear
// control while typing. The page works without it.
const pageScript = `
(() => {
  const search = document.getElementById("search");
  const width = document.getElementById("w");
  const clear = document.getElementById("clear");
  document.getElementById("searchBar").addEventListener("submit", () => {
    width.value = window.innerWidth || document.body.clientWidth;
  });
  search.addEventListener("input", () => {
    clear.classList.toggle("none", !search.value);
    clear.classList.toggle("flex", !!search.value);
  });
  search.focus();
})();
`

// WritePage renders the full widget document with v's current results.
func WritePage(w io.Writer, p Page, v *View) error {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := element(atom.Html, attr("lang", "en"))
	doc.AppendChild(root)

	root.AppendChild(appendAll(element(atom.Head),
		element(atom.Meta, attr("charset", "utf-8")),
		element(atom.Meta, attr("name", "viewport"), attr("content", "width=device-width, initial-scale=1")),
		appendAll(element(atom.Title), textNode(p.Title)),
		appendAll(element(atom.Style), textNode(pageStyle)),
	))

	content := element(atom.Main)
	content.AppendChild(appendAll(element(atom.H1), textNode(p.Title)))
	content.AppendChild(searchForm(p))
	content.AppendChild(clearForm())
	content.AppendChild(v.stats)
	content.AppendChild(v.results)
	defer func() {
		content.RemoveChild(v.stats)
		content.RemoveChild(v.results)
	}()

	root.AppendChild(appendAll(element(atom.Body),
		content,
		appendAll(element(atom.Script), textNode(pageScript)),
	))

	if err := html.Render(w, doc); err != nil {
		return fmt.Errorf("rendering page: %w", err)
	}
	return nil
}

// searchForm builds the query form. The clear control is a button bound to
// a separate empty form so Enter, Space, and click all reset the query.
func searchForm(p Page) *html.Node {
	clearClass := "none"
	if p.ClearVisible() {
		clearClass = "flex"
	}

	return appendAll(
		element(atom.Form, attr("id", "searchBar"), attr("method", "get"), attr("action", "/"), attr("role", "search")),
		appendAll(element(atom.Div, class("searchEntry")),
			element(atom.Input,
				attr("id", "search"), attr("type", "text"), attr("name", "q"),
				attr("value", p.Query), attr("aria-label", "Search Wikipedia"),
				attr("autocomplete", "off"), attr("autofocus", ""),
			),
			appendAll(
				element(atom.Button,
					attr("id", "clear"), attr("type", "submit"), attr("form", "clearForm"),
					class(clearClass), attr("aria-label", "Clear search text"),
				),
				textNode("×"),
			),
			element(atom.Input, attr("id", "w"), attr("type", "hidden"), attr("name", "w"), attr("value", strconv.Itoa(p.Width))),
			appendAll(element(atom.Button, attr("type", "submit")), textNode("Search")),
		),
	)
}

func clearForm() *html.Node {
	return element(atom.Form, attr("id", "clearForm"), attr("method", "get"), attr("action", "/"))
}
