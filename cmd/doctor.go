package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/kamusis/postsearch/internal/config"
	"github.com/kamusis/postsearch/internal/search"
	"github.com/kamusis/postsearch/internal/search/index"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check configuration, content and the search index",
	Long: `Check that the content directory parses, the index loads, and the index
matches what a fresh build would produce. Run this when search results look wrong.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

var doctorFixCmd = &cobra.Command{
	Use:   "fix",
	Short: "Rebuild the index when it is missing or stale",
	Long: `Fix detected issues with the search index.

Currently fixes:
  - Missing or stale index: rebuilds index_path from content_dir

Run 'postsearch doctor' first to see what will be fixed.`,
	Args: cobra.NoArgs,
	RunE: runDoctorFix,
}

func init() {
	doctorCmd.AddCommand(doctorFixCmd)
	rootCmd.AddCommand(doctorCmd)
}

func runDoctorFix(cmd *cobra.Command, _ []string) error {
	printSection("postsearch doctor fix")

	if cfg.IndexURL != "" {
		printSkip("", fmt.Sprintf("index is read from %s — rebuild and publish it at the source", cfg.IndexURL))
		return nil
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
	defer cancel()

	res, err := index.Build(ctx, index.BuildOptions{
		ContentDir: cfg.ContentDir,
		OutPath:    cfg.IndexPath,
		BaseURL:    cfg.BaseURL,
	})
	if err != nil {
		printErr("", fmt.Sprintf("rebuild failed: %v", err))
		return fmt.Errorf("doctor fix failed")
	}
	if !res.Changed {
		printOK("", "index is up to date — nothing to fix")
		return nil
	}
	printOK("", fmt.Sprintf("index rebuilt: %s (%d documents)", res.Path, res.Documents))
	return nil
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	allOK := true
	failD := func(format string, args ...any) {
		printErr("", fmt.Sprintf(format, args...))
		allOK = false
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
	defer cancel()

	printSection("postsearch doctor")
	fmt.Fprintln(out)

	// ── Check 1: config ──────────────────────────────────────────────────────
	fmt.Fprintln(out, "[ config ]")
	cfgPath := flagConfig
	if cfgPath == "" {
		cfgPath, _ = config.ConfigPath()
	}
	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		printSkip("", fmt.Sprintf("%s not found — using defaults", cfgPath))
	} else {
		printOK("", fmt.Sprintf("loaded %s", cfgPath))
	}
	if cfg.Widget.Limit < 0 {
		failD("widget.limit must not be negative (got %d)", cfg.Widget.Limit)
	}
	if f := cfg.Widget.Format; f != "" && f != "html" && f != "text" {
		failD("unknown widget.format %q — expected html or text", f)
	}
	fmt.Fprintln(out)

	// ── Check 2: content ─────────────────────────────────────────────────────
	fmt.Fprintln(out, "[ content ]")
	var built []search.Document
	contentOK := false
	if info, err := os.Stat(cfg.ContentDir); err != nil || !info.IsDir() {
		printMiss("", fmt.Sprintf("content directory not found: %s", cfg.ContentDir))
	} else {
		docs, drafts, err := index.Collect(ctx, cfg.ContentDir, cfg.BaseURL, false)
		if err != nil {
			failD("cannot collect posts: %v", err)
		} else {
			built = docs
			contentOK = true
			printOK("", fmt.Sprintf("%d publishable document(s) in %s", len(docs), cfg.ContentDir))
			if drafts > 0 {
				printSkip("", fmt.Sprintf("%d draft(s) not published", drafts))
			}
		}
	}
	fmt.Fprintln(out)

	// ── Check 3: index ───────────────────────────────────────────────────────
	fmt.Fprintln(out, "[ index ]")
	source := cfg.IndexSource()
	loaded, loadErr := index.Load(ctx, source)
	if loadErr != nil {
		failD("cannot load index %s: %v", source, loadErr)
		fmt.Fprintln(out, "     Run 'postsearch build' (or 'postsearch doctor fix') to create it.")
	} else {
		printOK("", fmt.Sprintf("%d document(s) in %s", len(loaded.Documents), source))
		if loaded.Skipped > 0 {
			printWarn("", fmt.Sprintf("%d malformed entr(y/ies) will be skipped (missing title or url)", loaded.Skipped))
		}
		if dups := duplicateURLs(loaded.Documents); len(dups) > 0 {
			failD("%d duplicate url(s); only the first entry of each is searchable:", len(dups))
			for _, u := range dups {
				printBullet(u)
			}
		}
	}
	fmt.Fprintln(out)

	// ── Check 4: exclusions ──────────────────────────────────────────────────
	if len(cfg.Widget.Exclude) > 0 {
		fmt.Fprintln(out, "[ exclude ]")
		if loadErr == nil {
			titles := make(map[string]bool, len(loaded.Documents))
			for _, d := range loaded.Documents {
				titles[d.Title] = true
			}
			for _, t := range cfg.Widget.Exclude {
				if titles[t] {
					printOK(t, "excluded from search")
				} else {
					printWarn(t, "no document has this title")
				}
			}
		} else {
			printWarn("", "skipped (index not loaded)")
		}
		fmt.Fprintln(out)
	}

	// ── Check 5: freshness ───────────────────────────────────────────────────
	fmt.Fprintln(out, "[ freshness ]")
	if loadErr == nil && contentOK && cfg.IndexURL == "" {
		want, err := index.Fingerprint(built)
		if err != nil {
			failD("cannot fingerprint content: %v", err)
		} else if got, err := index.Fingerprint(loaded.Documents); err == nil && got == want {
			printOK("", "index matches content")
		} else {
			printWarn("", "index is stale — run 'postsearch build'")
			allOK = false
		}
	} else {
		printSkip("", "skipped (needs a local index and readable content)")
	}
	fmt.Fprintln(out)

	// ── Summary ──────────────────────────────────────────────────────────────
	fmt.Fprintln(out, "===================")
	if allOK {
		fmt.Fprintln(out, "✓  All checks passed. Search is ready to use.")
		return nil
	}
	fmt.Fprintln(cmd.ErrOrStderr(), "✗  One or more checks failed. See details above.")
	return fmt.Errorf("doctor found issues")
}

// duplicateURLs returns every url that appears more than once, in first-seen order.
func duplicateURLs(docs []search.Document) []string {
	count := make(map[string]int, len(docs))
	var order []string
	for _, d := range docs {
		if count[d.URL] == 0 {
			order = append(order, d.URL)
		}
		count[d.URL]++
	}
	var dups []string
	for _, u := range order {
		if count[u] > 1 {
			dups = append(dups, u)
		}
	}
	return dups
}
