// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package widget holds the input side of the search widget: the query text,
// the clear-text control, and submission of searches to a view. Each
// submission carries a generation number; only the newest submission may
// render, and starting a new one cancels the one in flight.
package widget

import (
	"context"
	"errors"
	"sync"

	"github.com/pdiddy/wiki-search/internal/wiki"
	"github.com/pdiddy/wiki-search/pkg/types"
)

// Keys that activate the clear-text control.
const (
	KeyEnter = "Enter"
	KeySpace = " "
)

// Searcher runs one search pipeline.
type Searcher interface {
	Search(ctx context.Context, raw string, width int) wiki.Outcome
}

// View is the side-effecting shell a Controller renders into.
type View interface {
	Clear()
	Render(results []types.Result)
}

// Delivery reports what happened to one submission's outcome.
type Delivery struct {
	Outcome wiki.Outcome

	// Generation is the submission's sequence number.
	Generation uint64

	// Rendered is false when the outcome was skipped or arrived after a
	// newer submission and was discarded.
	Rendered bool
}

// Controller serializes widget events against one View.
type Controller struct {
	searcher Searcher
	view     View

	mu     sync.Mutex
	text   string
	width  int
	gen    uint64
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New returns a Controller rendering into view with the given viewport width.
func New(searcher Searcher, view View, width int) *Controller {
	return &Controller{searcher: searcher, view: view, width: width}
}

// Input replaces the query text, as typing into the search box does.
func (c *Controller) Input(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.text = text
}

// Text returns the current query text.
func (c *Controller) Text() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text
}

// SetWidth records a new viewport width for later submissions.
func (c *Controller) SetWidth(width int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.width = width
}

// ClearVisible reports whether the clear-text control is shown. It is
// shown whenever the query text is non-empty.
func (c *Controller) ClearVisible() bool {
	return c.Text() != ""
}

// Clear empties the query text. Rendered results stay until the next submit.
func (c *Controller) Clear() {
	c.Input("")
}

// Key handles a key press on the clear-text control. Enter and Space clear
// the text like a click does; other keys are ignored. It reports whether the
// key was handled.
func (c *Controller) Key(key string) bool {
	switch key {
	case KeyEnter, KeySpace:
		c.Clear()
		return true
	default:
		return false
	}
}

// Submit starts a search for the current text. Previous results are cleared
// immediately and any search still in flight is cancelled. The returned
// channel receives exactly one Delivery and is then closed.
func (c *Controller) Submit(ctx context.Context) <-chan Delivery {
	ch := make(chan Delivery, 1)

	c.mu.Lock()
	c.gen++
	gen := c.gen
	if c.cancel != nil {
		c.cancel()
	}
	searchCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	text, width := c.text, c.width
	c.view.Clear()
	c.wg.Add(1)
	c.mu.Unlock()

	go func() {
		defer c.wg.Done()
		defer close(ch)
		defer cancel()

		out := c.searcher.Search(searchCtx, text, width)
		abandoned := errors.Is(searchCtx.Err(), context.Canceled)
		ch <- c.deliver(gen, out, abandoned)
	}()
	return ch
}

// Search submits text and waits for its Delivery.
func (c *Controller) Search(ctx context.Context, text string) Delivery {
	c.Input(text)
	return <-c.Submit(ctx)
}

// Wait blocks until every submitted search has delivered.
func (c *Controller) Wait() {
	c.wg.Wait()
}

// Close cancels the search in flight, if any, and waits for it to finish.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	c.mu.Unlock()
	c.wg.Wait()
}

// deliver renders out when gen is still the newest submission. Searches
// cancelled by a newer submission or by Close are dropped.
func (c *Controller) deliver(gen uint64, out wiki.Outcome, abandoned bool) Delivery {
	c.mu.Lock()
	defer c.mu.Unlock()

	d := Delivery{Outcome: out, Generation: gen}
	if abandoned || gen != c.gen || !out.Rendered() {
		return d
	}
	c.view.Render(out.Results)
	d.Rendered = true
	return d
}
