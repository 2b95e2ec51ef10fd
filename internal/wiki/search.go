// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package wiki turns a user query into Wikipedia search results: it
// normalizes the text, builds the MediaWiki generator=search request,
// fetches it, and maps the keyed page objects into ordered records.
// See docs/ARCHITECTURE § Search Pipeline.
package wiki

import (
	"context"
	"errors"
	"log/slog"

	"github.com/pdiddy/wiki-search/pkg/types"
)

// OutcomeKind classifies how a search ended.
type OutcomeKind int

const (
	// Skipped means the normalized query was empty and no request was sent.
	Skipped OutcomeKind = iota
	// Matches means the API returned at least one page.
	Matches
	// NoMatches means the API answered without pages.
	NoMatches
	// Failed means the request or the response body could not be used.
	Failed
)

func (k OutcomeKind) String() string {
	switch k {
	case Skipped:
		return "skipped"
	case Matches:
		return "matches"
	case NoMatches:
		return "no_matches"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is the immutable result of one search submission.
type Outcome struct {
	Query   string
	Width   int
	Results []types.Result
	Kind    OutcomeKind

	// Err is set when Kind is Failed.
	Err error
}

// Rendered reports whether the outcome should reach the view. Skipped
// searches render nothing at all.
func (o Outcome) Rendered() bool {
	return o.Kind != Skipped
}

// Searcher runs the query pipeline against one API endpoint.
type Searcher struct {
	Fetcher  Fetcher
	Endpoint string
	Logger   *slog.Logger
}

// NewSearcher returns a Searcher for cfg's language edition.
func NewSearcher(cfg types.SearchConfig, logger *slog.Logger) *Searcher {
	return &Searcher{
		Fetcher:  NewClient(cfg.HTTPConfig),
		Endpoint: cfg.Endpoint(),
		Logger:   logger,
	}
}

// Search normalizes raw, fetches the matching pages for a viewport of the
// given width, and maps them into records. Fetch and parse failures are
// logged and reported as a Failed outcome with no results; they are never
// returned as errors.
func (s *Searcher) Search(ctx context.Context, raw string, width int) Outcome {
	term := NormalizeQuery(raw)
	out := Outcome{Query: term, Width: width}
	if term == "" {
		out.Kind = Skipped
		return out
	}

	logger := s.logger().With("query", term)
	reqURL := BuildSearchURL(s.Endpoint, term, width)
	logger.Debug("searching", "url", reqURL)

	body, err := s.Fetcher.Fetch(ctx, reqURL)
	if err != nil {
		return s.fail(ctx, logger, out, err)
	}

	results, err := MapPages(body)
	if err != nil {
		return s.fail(ctx, logger, out, err)
	}

	out.Results = results
	if len(results) == 0 {
		out.Kind = NoMatches
	} else {
		out.Kind = Matches
	}
	logger.Debug("search finished", "kind", out.Kind, "results", len(results))
	return out
}

func (s *Searcher) fail(ctx context.Context, logger *slog.Logger, out Outcome, err error) Outcome {
	out.Kind = Failed
	out.Err = err
	out.Results = []types.Result{}
	if errors.Is(err, context.Canceled) && ctx.Err() != nil {
		logger.Debug("search cancelled")
		return out
	}
	logger.Error("search failed", "error", err)
	return out
}

func (s *Searcher) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
