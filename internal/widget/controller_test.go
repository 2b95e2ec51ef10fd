// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package widget

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/wiki-search/internal/wiki"
	"github.com/pdiddy/wiki-search/pkg/types"
)

// --- fakes ---

type recordingView struct {
	mu      sync.Mutex
	clears  int
	renders [][]types.Result
	current []types.Result
}

func (v *recordingView) Clear() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.clears++
	v.current = nil
}

func (v *recordingView) Render(results []types.Result) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.renders = append(v.renders, results)
	v.current = append(v.current, results...)
}

func (v *recordingView) snapshot() (int, int, []types.Result) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.clears, len(v.renders), append([]types.Result(nil), v.current...)
}

// fakeSearcher answers with one result titled after the query. Queries listed
// in block wait until released or cancelled.
type fakeSearcher struct {
	mu      sync.Mutex
	calls   []string
	widths  []int
	block   map[string]chan struct{}
	started chan string
}

func newFakeSearcher() *fakeSearcher {
	return &fakeSearcher{block: map[string]chan struct{}{}, started: make(chan string, 10)}
}

func (f *fakeSearcher) hold(query string) chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan struct{})
	f.block[query] = ch
	return ch
}

func (f *fakeSearcher) Search(ctx context.Context, raw string, width int) wiki.Outcome {
	term := wiki.NormalizeQuery(raw)
	if term == "" {
		return wiki.Outcome{Kind: wiki.Skipped}
	}

	f.mu.Lock()
	f.calls = append(f.calls, term)
	f.widths = append(f.widths, width)
	wait := f.block[term]
	f.mu.Unlock()
	f.started <- term

	if wait != nil {
		select {
		case <-wait:
		case <-ctx.Done():
			return wiki.Outcome{Query: term, Kind: wiki.Failed, Err: ctx.Err(), Results: []types.Result{}}
		}
	}
	return wiki.Outcome{
		Query:   term,
		Width:   width,
		Kind:    wiki.Matches,
		Results: []types.Result{{ID: "1", Title: term}},
	}
}

func (f *fakeSearcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// --- input and clear control ---

func TestClearVisibility(t *testing.T) {
	c := New(newFakeSearcher(), &recordingView{}, 1000)
	assert.False(t, c.ClearVisible())

	c.Input("red panda")
	assert.True(t, c.ClearVisible())

	c.Clear()
	assert.False(t, c.ClearVisible())
	assert.Empty(t, c.Text())
}

func TestKeyOnClearControl(t *testing.T) {
	tests := []struct {
		key         string
		wantHandled bool
		wantText    string
	}{
		{KeyEnter, true, ""},
		{KeySpace, true, ""},
		{"Escape", false, "panda"},
		{"a", false, "panda"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			c := New(newFakeSearcher(), &recordingView{}, 1000)
			c.Input("panda")
			assert.Equal(t, tt.wantHandled, c.Key(tt.key))
			assert.Equal(t, tt.wantText, c.Text())
		})
	}
}

// --- submission ---

func TestSubmitRendersResults(t *testing.T) {
	s := newFakeSearcher()
	v := &recordingView{}
	c := New(s, v, 400)

	d := c.Search(context.Background(), "  red   panda ")

	assert.True(t, d.Rendered)
	assert.Equal(t, uint64(1), d.Generation)
	assert.Equal(t, "red panda", d.Outcome.Query)
	clears, renders, current := v.snapshot()
	assert.Equal(t, 1, clears)
	assert.Equal(t, 1, renders)
	require.Len(t, current, 1)
	assert.Equal(t, []int{400}, s.widths)
}

func TestSubmitEmptyQueryRendersNothing(t *testing.T) {
	s := newFakeSearcher()
	v := &recordingView{}
	c := New(s, v, 1000)

	c.Search(context.Background(), "old")
	d := c.Search(context.Background(), "   ")

	assert.False(t, d.Rendered)
	assert.Equal(t, wiki.Skipped, d.Outcome.Kind)
	assert.Equal(t, 1, s.callCount())
	_, renders, current := v.snapshot()
	assert.Equal(t, 1, renders)
	assert.Empty(t, current, "previous results are cleared on submit")
}

func TestResubmitClearsPreviousResults(t *testing.T) {
	v := &recordingView{}
	c := New(newFakeSearcher(), v, 1000)

	c.Search(context.Background(), "first")
	c.Search(context.Background(), "second")

	clears, renders, current := v.snapshot()
	assert.Equal(t, 2, clears)
	assert.Equal(t, 2, renders)
	require.Len(t, current, 1)
	assert.Equal(t, "second", current[0].Title)
}

func TestStaleSubmissionIsDiscarded(t *testing.T) {
	s := newFakeSearcher()
	v := &recordingView{}
	c := New(s, v, 1000)
	release := s.hold("slow")

	c.Input("slow")
	slow := c.Submit(context.Background())
	require.Equal(t, "slow", <-s.started)

	c.Input("fast")
	fast := c.Submit(context.Background())

	fd := <-fast
	assert.True(t, fd.Rendered)
	assert.Equal(t, uint64(2), fd.Generation)

	close(release)
	sd := <-slow
	assert.False(t, sd.Rendered)
	assert.Equal(t, uint64(1), sd.Generation)

	_, renders, current := v.snapshot()
	assert.Equal(t, 1, renders)
	require.Len(t, current, 1)
	assert.Equal(t, "fast", current[0].Title)
}

func TestNewSubmissionCancelsInFlightSearch(t *testing.T) {
	s := newFakeSearcher()
	v := &recordingView{}
	c := New(s, v, 1000)
	s.hold("slow")

	c.Input("slow")
	slow := c.Submit(context.Background())
	require.Equal(t, "slow", <-s.started)

	c.Input("fast")
	c.Submit(context.Background())

	select {
	case d := <-slow:
		assert.False(t, d.Rendered)
		assert.Equal(t, wiki.Failed, d.Outcome.Kind)
		assert.ErrorIs(t, d.Outcome.Err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("in-flight search was not cancelled")
	}
	c.Wait()
}

func TestCloseCancelsAndWaits(t *testing.T) {
	s := newFakeSearcher()
	v := &recordingView{}
	c := New(s, v, 1000)
	s.hold("slow")

	c.Input("slow")
	ch := c.Submit(context.Background())
	<-s.started

	c.Close()
	d, ok := <-ch
	require.True(t, ok)
	assert.False(t, d.Rendered)
	_, renders, _ := v.snapshot()
	assert.Equal(t, 0, renders)
}

func TestSetWidthAppliesToNextSubmission(t *testing.T) {
	s := newFakeSearcher()
	c := New(s, &recordingView{}, 400)

	c.Search(context.Background(), "panda")
	c.SetWidth(2000)
	c.Search(context.Background(), "panda")

	assert.Equal(t, []int{400, 2000}, s.widths)
}
