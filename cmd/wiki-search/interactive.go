// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/wiki-search/internal/render"
	"github.com/pdiddy/wiki-search/internal/widget"
	"github.com/pdiddy/wiki-search/internal/wiki"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Search repeatedly from a prompt",
	Long: `Interactive reads one query per line and searches in the background, so
a new query can be entered while the previous one is still loading. Only the
newest query's results are shown; older searches are cancelled.

Commands:
  (empty line)   search the current text again
  :clear         clear the current text
  :width N       use viewport width N for later searches
  :quit          exit`,
	RunE: runInteractive,
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}

func runInteractive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	view := render.NewTerminal(os.Stdout, cfg.Search.Site(), terminalColumns(os.Stdout))
	ctrl := widget.New(wiki.NewSearcher(cfg.Search, logger), view, cfg.Search.Width)
	defer ctrl.Close()

	return readQueries(ctx, os.Stdin, os.Stderr, ctrl)
}

// readQueries feeds lines from r to ctrl until EOF, :quit, or ctx ends.
// Prompts and command feedback go to prompt.
func readQueries(ctx context.Context, r io.Reader, prompt io.Writer, ctrl *widget.Controller) error {
	lines := make(chan string)
	errCh := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		errCh <- scanner.Err()
		close(lines)
	}()

	for {
		fmt.Fprint(prompt, "search> ")
		select {
		case <-ctx.Done():
			fmt.Fprintln(prompt)
			return nil
		case line, ok := <-lines:
			if !ok {
				ctrl.Wait()
				return <-errCh
			}
			if quit := handleLine(ctx, prompt, ctrl, line); quit {
				return nil
			}
		}
	}
}

// handleLine applies one input line and reports whether to quit.
func handleLine(ctx context.Context, prompt io.Writer, ctrl *widget.Controller, line string) bool {
	trimmed := strings.TrimSpace(line)
	switch {
	case trimmed == ":quit" || trimmed == ":q":
		return true
	case trimmed == ":clear":
		ctrl.Clear()
	case strings.HasPrefix(trimmed, ":width"):
		w, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(trimmed, ":width")))
		if err != nil || w <= 0 {
			fmt.Fprintln(prompt, "usage: :width N (N > 0)")
			return false
		}
		ctrl.SetWidth(w)
		fmt.Fprintf(prompt, "excerpts now up to %d characters\n", wiki.ExcerptBudget(w))
	case trimmed == "":
		ctrl.Submit(ctx)
	default:
		ctrl.Input(line)
		ctrl.Submit(ctx)
	}
	return false
}
