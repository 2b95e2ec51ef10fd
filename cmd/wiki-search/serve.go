// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pdiddy/wiki-search/internal/server"
	"github.com/pdiddy/wiki-search/internal/wiki"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the search widget over HTTP",
	Long: `Serve hosts the search widget page at / and a JSON endpoint at
/api/search?q=...&w=... . Results are rendered on the server; the page's
viewport width is sent with each search to size the excerpts.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "listen address")
	serveCmd.Flags().StringSlice("allowed-origins", nil, "CORS origins allowed to call /api/search (default: any)")
	bindFlag("serve.addr", serveCmd.Flags().Lookup("addr"))
	bindFlag("serve.allowed_origins", serveCmd.Flags().Lookup("allowed-origins"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(wiki.NewSearcher(cfg.Search, logger), cfg, logger)
	return srv.Run(ctx, cfg.Serve.Addr)
}
