// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server serves the search widget over HTTP: the widget page at /,
// a JSON search endpoint at /api/search, and a health check.
// See docs/ARCHITECTURE § Widget Server.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	"github.com/pdiddy/wiki-search/internal/render"
	"github.com/pdiddy/wiki-search/internal/widget"
	"github.com/pdiddy/wiki-search/internal/wiki"
	"github.com/pdiddy/wiki-search/pkg/types"
)

// PageTitle is the widget page heading.
const PageTitle = "Wikipedia Search"

const shutdownTimeout = 10 * time.Second

// Server renders widget pages backed by a Searcher.
type Server struct {
	searcher widget.Searcher
	site     string
	width    int
	origins  []string
	logger   *slog.Logger
}

// New returns a Server. cfg.Search supplies the link site and the default
// viewport width; cfg.Serve the CORS origins.
func New(searcher widget.Searcher, cfg types.Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		searcher: searcher,
		site:     cfg.Search.Site(),
		width:    cfg.Search.Width,
		origins:  cfg.Serve.AllowedOrigins,
		logger:   logger,
	}
}

// Handler returns the HTTP handler with routes and CORS applied.
func (s *Server) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/", s.handlePage)
	r.GET("/api/search", s.handleSearch)
	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	return cors.New(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
	}).Handler(r)
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("widget server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving on %s: %w", addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down widget server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}

// handlePage renders the widget. A request carrying q submits a search
// before rendering; a request without q shows the empty widget.
func (s *Server) handlePage(c *gin.Context) {
	query := c.Query("q")
	width := s.widthParam(c)

	view := render.NewView(s.site)
	ctrl := widget.New(s.searcher, view, width)
	ctrl.Input(query)
	if _, submitted := c.GetQuery("q"); submitted {
		<-ctrl.Submit(c.Request.Context())
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	page := render.Page{Title: PageTitle, Query: ctrl.Text(), Width: width}
	if err := render.WritePage(c.Writer, page, view); err != nil {
		s.logger.Error("writing page", "error", err)
	}
}

// handleSearch returns the search outcome as JSON.
func (s *Server) handleSearch(c *gin.Context) {
	out := s.searcher.Search(c.Request.Context(), c.Query("q"), s.widthParam(c))
	if out.Kind == wiki.Skipped {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is empty"})
		return
	}
	c.JSON(http.StatusOK, render.NewDocument(out.Query, out.Results))
}

// widthParam reads the w parameter, falling back to the configured width.
func (s *Server) widthParam(c *gin.Context) int {
	if w, err := strconv.Atoi(c.Query("w")); err == nil && w > 0 {
		return w
	}
	return s.width
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
