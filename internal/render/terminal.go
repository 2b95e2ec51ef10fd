// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/mattn/go-runewidth"

	"github.com/pdiddy/wiki-search/pkg/types"
)

// defaultColumns is used when the output width is unknown.
const defaultColumns = 100

// clearScreen moves the cursor home and erases the display.
const clearScreen = "\x1b[H\x1b[2J"

// Terminal renders results as text. Colors and screen clearing are enabled
// only when the writer is a terminal.
type Terminal struct {
	w       io.Writer
	site    string
	columns int
	tty     bool

	title  *color.Color
	link   *color.Color
	image  *color.Color
	status *color.Color
}

// NewTerminal returns a Terminal writing to w. columns <= 0 selects a default.
func NewTerminal(w io.Writer, site string, columns int) *Terminal {
	if columns <= 0 {
		columns = defaultColumns
	}
	t := &Terminal{
		w:       w,
		site:    site,
		columns: columns,
		tty:     isTTY(w),
		title:   color.New(color.Bold),
		link:    color.New(color.FgBlue, color.Underline),
		image:   color.New(color.Faint),
		status:  color.New(color.FgGreen),
	}
	for _, c := range []*color.Color{t.title, t.link, t.image, t.status} {
		if t.tty {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return t
}

// Clear erases previously printed results on a terminal. On other writers
// earlier output cannot be retracted and Clear does nothing.
func (t *Terminal) Clear() {
	if t.tty {
		fmt.Fprint(t.w, clearScreen)
	}
}

// Render prints one block per record followed by the status line.
func (t *Terminal) Render(results []types.Result) {
	for i, r := range results {
		t.title.Fprintf(t.w, "%2d. %s\n", i+1, runewidth.Truncate(r.Title, t.columns-4, "…"))
		fmt.Fprint(t.w, "    ")
		t.link.Fprintln(t.w, r.URL(t.site))
		if r.HasImage() {
			fmt.Fprint(t.w, "    ")
			t.image.Fprintf(t.w, "[image] %s\n", r.Image)
		}
		for _, line := range wrap(r.Extract, t.columns-4) {
			fmt.Fprintf(t.w, "    %s\n", line)
		}
		fmt.Fprintln(t.w)
	}
	t.status.Fprintln(t.w, StatusLine(len(results)))
}

// wrap breaks s into lines no wider than width display columns.
func wrap(s string, width int) []string {
	if width < 10 {
		width = 10
	}
	var lines []string
	var line strings.Builder
	lineWidth := 0
	for _, word := range strings.Fields(s) {
		ww := runewidth.StringWidth(word)
		if lineWidth > 0 && lineWidth+1+ww > width {
			lines = append(lines, line.String())
			line.Reset()
			lineWidth = 0
		}
		if lineWidth > 0 {
			line.WriteByte(' ')
			lineWidth++
		}
		line.WriteString(word)
		lineWidth += ww
	}
	if lineWidth > 0 {
		lines = append(lines, line.String())
	}
	return lines
}

func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
