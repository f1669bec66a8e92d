package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kamusis/postsearch/internal/search/index"
)

var (
	flagBuildContent string
	flagBuildOut     string
	flagBuildBaseURL string
	flagBuildDrafts  bool
	flagBuildForce   bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the aggregate search index from markdown front-matter",
	Args:  cobra.NoArgs,
	RunE:  runBuild,
}

func init() {
	buildCmd.Flags().StringVar(&flagBuildContent, "content", "", "content directory (default from config)")
	buildCmd.Flags().StringVarP(&flagBuildOut, "out", "o", "", "output index file (default from config index_path)")
	buildCmd.Flags().StringVar(&flagBuildBaseURL, "base-url", "", "prefix for generated post URLs")
	buildCmd.Flags().BoolVar(&flagBuildDrafts, "drafts", false, "include drafts in the index")
	buildCmd.Flags().BoolVar(&flagBuildForce, "force", false, "rewrite the index even if nothing changed")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, _ []string) error {
	opts := index.BuildOptions{
		ContentDir:    firstNonEmpty(flagBuildContent, cfg.ContentDir),
		OutPath:       firstNonEmpty(flagBuildOut, cfg.IndexPath),
		BaseURL:       firstNonEmpty(flagBuildBaseURL, cfg.BaseURL),
		IncludeDrafts: flagBuildDrafts,
		Force:         flagBuildForce,
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
	defer cancel()

	printInfo("", fmt.Sprintf("scanning %s", opts.ContentDir))
	res, err := index.Build(ctx, opts)
	if err != nil {
		return fmt.Errorf("index build failed: %w", err)
	}
	logger.Debug("index built", "path", res.Path, "fingerprint", res.Fingerprint)

	if res.Drafts > 0 {
		printSkip("", fmt.Sprintf("%d draft(s) left out", res.Drafts))
	}
	if !res.Changed {
		printOK("", fmt.Sprintf("index unchanged: %s (%d documents)", res.Path, res.Documents))
		return nil
	}
	printOK("", fmt.Sprintf("index written: %s (%d documents)", res.Path, res.Documents))
	return nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
