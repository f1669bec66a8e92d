package cmd

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kamusis/postsearch/internal/server"
	"github.com/kamusis/postsearch/internal/widget"
)

var (
	flagServeAddr  string
	flagServeIndex string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the index and search results over HTTP",
	Long: `Serve loads the index once and exposes:

  GET /search.json      the searchable documents
  GET /search?q=...     rendered result fragment (widget template)
  GET /api/search?q=... JSON results
  GET /health           liveness and document count`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagServeAddr, "addr", "", "listen address (default from config serve.addr)")
	serveCmd.Flags().StringVar(&flagServeIndex, "index", "", "index path or URL (default from config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	wc := cfg.Widget
	wcfg := widget.Config{
		Limit:          wc.Limit,
		Fuzzy:          wc.Fuzzy,
		Exclude:        wc.Exclude,
		ResultTemplate: wc.ResultTemplate,
		NoResultsText:  wc.NoResultsText,
		Format:         widget.Format(wc.Format),
	}

	loadCtx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()
	source := firstNonEmpty(flagServeIndex, cfg.IndexSource())
	w, err := widget.Initialize(loadCtx, source, nil, wcfg, widget.WithLogger(logger))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.New(w, logger)
	return srv.Run(ctx, firstNonEmpty(flagServeAddr, cfg.Serve.Addr))
}
