// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package wiki

import (
	"net/url"
	"strconv"
	"strings"
)

// ResultLimit is the number of pages requested per search (gsrlimit).
const ResultLimit = 20

// Excerpt budgets by viewport width.
const (
	narrowWidth = 414
	wideWidth   = 1400

	narrowExcerpt = 65
	mediumExcerpt = 100
	wideExcerpt   = 130
)

// NormalizeQuery collapses runs of whitespace into a single space and trims
// both ends. An empty return value means there is nothing to search for.
func NormalizeQuery(raw string) string {
	return strings.Join(strings.Fields(raw), " ")
}

// ExcerptBudget returns the maximum extract length, in characters, to request
// for a viewport of the given width.
func ExcerptBudget(width int) int {
	switch {
	case width < narrowWidth:
		return narrowExcerpt
	case width < wideWidth:
		return mediumExcerpt
	default:
		return wideExcerpt
	}
}

// BuildSearchURL returns the percent-encoded generator=search request for
// term against endpoint. Everything except the query and the excerpt budget
// is fixed by the MediaWiki API contract.
func BuildSearchURL(endpoint, term string, width int) string {
	params := url.Values{
		"action":      {"query"},
		"generator":   {"search"},
		"gsrsearch":   {term},
		"gsrlimit":    {strconv.Itoa(ResultLimit)},
		"prop":        {"pageimages|extracts"},
		"exchars":     {strconv.Itoa(ExcerptBudget(width))},
		"exintro":     {""},
		"explaintext": {""},
		"exlimit":     {"max"},
		"format":      {"json"},
		"origin":      {"*"},
	}
	return endpoint + "?" + params.Encode()
}
