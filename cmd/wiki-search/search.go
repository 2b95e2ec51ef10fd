// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/pdiddy/wiki-search/internal/render"
	"github.com/pdiddy/wiki-search/internal/server"
	"github.com/pdiddy/wiki-search/internal/widget"
	"github.com/pdiddy/wiki-search/internal/wiki"
	"github.com/pdiddy/wiki-search/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search [query...]",
	Short: "Search Wikipedia once and print the matching pages",
	Long: `Search sends the query to the Wikipedia search API and prints up to 20
matching pages. The excerpt length follows --width: under 414 columns 65
characters, under 1400 columns 100 characters, otherwise 130.

An empty query prints nothing. Network and parse failures are logged and
reported as "Sorry, no results."`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("format", "text", "output format: text, json, yaml, html")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	searcher := wiki.NewSearcher(cfg.Search, logger)
	return writeSearch(cmd.Context(), os.Stdout, searcher, cfg.Search, strings.Join(args, " "), format)
}

// writeSearch runs one search for query and writes it to w in format.
func writeSearch(ctx context.Context, w io.Writer, searcher widget.Searcher, cfg types.SearchConfig, query, format string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	switch format {
	case "text", "":
		view := render.NewTerminal(w, cfg.Site(), terminalColumns(w))
		widget.New(searcher, view, cfg.Width).Search(ctx, query)
		return nil
	case "html":
		view := render.NewView(cfg.Site())
		ctrl := widget.New(searcher, view, cfg.Width)
		ctrl.Search(ctx, query)
		return render.WritePage(w, render.Page{Title: server.PageTitle, Query: ctrl.Text(), Width: cfg.Width}, view)
	case "json", "yaml":
		out := searcher.Search(ctx, query, cfg.Width)
		if out.Kind == wiki.Skipped {
			return nil
		}
		doc := render.NewDocument(out.Query, out.Results)
		if format == "json" {
			return render.WriteJSON(w, doc)
		}
		return render.WriteYAML(w, doc)
	default:
		return fmt.Errorf("unsupported format %q: use text, json, yaml, or html", format)
	}
}

// terminalColumns returns the width of w when it is a terminal, or 0.
func terminalColumns(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return 0
	}
	cols, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return cols
}
