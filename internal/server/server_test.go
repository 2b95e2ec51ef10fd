// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/wiki-search/internal/render"
	"github.com/pdiddy/wiki-search/internal/wiki"
	"github.com/pdiddy/wiki-search/pkg/types"
)

// stubSearcher maps normalized queries to canned results.
type stubSearcher struct {
	mu      sync.Mutex
	results map[string][]types.Result
	widths  []int
}

func (s *stubSearcher) Search(_ context.Context, raw string, width int) wiki.Outcome {
	term := wiki.NormalizeQuery(raw)
	if term == "" {
		return wiki.Outcome{Kind: wiki.Skipped}
	}
	s.mu.Lock()
	s.widths = append(s.widths, width)
	s.mu.Unlock()

	results, ok := s.results[term]
	if !ok || len(results) == 0 {
		return wiki.Outcome{Query: term, Kind: wiki.NoMatches, Results: []types.Result{}}
	}
	return wiki.Outcome{Query: term, Kind: wiki.Matches, Results: results}
}

func testServer(origins ...string) (*Server, *stubSearcher) {
	stub := &stubSearcher{results: map[string][]types.Result{
		"red panda": {
			{ID: "72139", Title: "Red panda", Extract: "Small mammal.", Image: "https://upload.wikimedia.org/red.jpg"},
			{ID: "1129", Title: "Giant panda", Extract: "Bear."},
		},
	}}
	cfg := types.Config{
		Search: types.SearchConfig{Language: "en", Width: 1000},
		Serve:  types.ServeConfig{AllowedOrigins: origins},
	}
	return New(stub, cfg, nil), stub
}

func get(t *testing.T, h http.Handler, target string, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestPageWithoutQuery(t *testing.T) {
	srv, stub := testServer()
	rec := get(t, srv.Handler(), "/")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")

	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 0, doc.Find(".resultItem").Length())
	assert.Empty(t, doc.Find("#stats").Text())
	assert.True(t, doc.Find("#clear").HasClass("none"))
	assert.Empty(t, stub.widths, "no search without q")
}

func TestPageWithResults(t *testing.T) {
	srv, stub := testServer()
	rec := get(t, srv.Handler(), "/?q=+red+++panda+&w=400")

	require.Equal(t, http.StatusOK, rec.Code)
	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)

	assert.Equal(t, 2, doc.Find(".resultItem").Length())
	assert.Equal(t, "Displaying 2 results.", doc.Find("#stats").Text())
	src, _ := doc.Find(".resultItem").Eq(0).Find(".resultImage img").Attr("src")
	assert.Equal(t, "https://upload.wikimedia.org/red.jpg", src)
	assert.Equal(t, 0, doc.Find(".resultItem").Eq(1).Find(".resultImage").Length())
	assert.True(t, doc.Find("#clear").HasClass("flex"))
	assert.Equal(t, []int{400}, stub.widths)
}

func TestPageNoResults(t *testing.T) {
	srv, _ := testServer()
	rec := get(t, srv.Handler(), "/?q=qwzxqwzx")

	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 0, doc.Find(".resultItem").Length())
	assert.Equal(t, "Sorry, no results.", doc.Find("#stats").Text())
}

func TestPageWhitespaceQueryRendersNothing(t *testing.T) {
	srv, stub := testServer()
	rec := get(t, srv.Handler(), "/?q=+++")

	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 0, doc.Find(".resultItem").Length())
	assert.Empty(t, doc.Find("#stats").Text())
	assert.Empty(t, stub.widths)
}

func TestAPISearch(t *testing.T) {
	srv, stub := testServer()
	rec := get(t, srv.Handler(), "/api/search?q=red+panda&w=bogus")

	require.Equal(t, http.StatusOK, rec.Code)
	var doc render.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "red panda", doc.Query)
	assert.Equal(t, "Displaying 2 results.", doc.Status)
	assert.Len(t, doc.Results, 2)
	assert.Equal(t, []int{1000}, stub.widths, "invalid width falls back to the configured one")
}

func TestAPISearchEmptyQuery(t *testing.T) {
	srv, _ := testServer()
	rec := get(t, srv.Handler(), "/api/search?q=")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPISearchCORS(t *testing.T) {
	srv, _ := testServer("https://allowed.example")
	h := srv.Handler()

	rec := get(t, h, "/api/search?q=red+panda", "Origin", "https://allowed.example")
	assert.Equal(t, "https://allowed.example", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = get(t, h, "/api/search?q=red+panda", "Origin", "https://other.example")
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestHealthz(t *testing.T) {
	srv, _ := testServer()
	rec := get(t, srv.Handler(), "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestRunStopsOnContextCancel(t *testing.T) {
	srv, _ := testServer()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
