package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kamusis/postsearch/internal/config"
	"github.com/kamusis/postsearch/internal/output"
)

var (
	flagConfig  string
	flagVerbose bool
	flagNoColor bool

	cfg     *config.Config
	logger  *slog.Logger
	printer *output.Printer
)

var rootCmd = &cobra.Command{
	Use:          "postsearch",
	Short:        "postsearch — instant search over a blog's post index",
	SilenceUsage: true, // don't print usage on operational errors
	Long: `postsearch builds the aggregate search index for a markdown blog and
answers queries against it from the terminal or over HTTP.`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return initConfig(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default is ~/.postsearch/postsearch.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colored output")
}

// initConfig loads configuration and sets up the logger and printer.
func initConfig(cmd *cobra.Command) error {
	var err error
	cfg, err = config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("cannot load config: %w", err)
	}
	initOutput(cmd, cfg.Logging.Level)

	logger.Debug("configuration loaded",
		"content_dir", cfg.ContentDir,
		"index", cfg.IndexSource(),
	)
	return nil
}

// initOutput sets up the printer and the default slog logger on cmd's streams.
func initOutput(cmd *cobra.Command, levelName string) {
	printer = output.NewPrinterTo(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.ResolveColors(flagNoColor))

	level := parseLevel(levelName)
	if flagVerbose {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Execute is called by main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
