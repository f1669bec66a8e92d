package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kamusis/postsearch/internal/config"
)

var (
	flagInitContent string
	flagInitBaseURL string
	flagInitForce   bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter postsearch.yaml and .env",
	Long: `Create ~/.postsearch/postsearch.yaml (or the file named by --config) with the
default widget options, and ~/.postsearch/.env listing the override keys.

Existing files are left alone unless --force is given.`,
	Args: cobra.NoArgs,
	// The config file may not exist yet, so skip loading it.
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		initOutput(cmd, "info")
		return nil
	},
	RunE: runInit,
}

func init() {
	initCmd.Flags().StringVar(&flagInitContent, "content", "", "content directory to record in the config")
	initCmd.Flags().StringVar(&flagInitBaseURL, "base-url", "", "base URL to record in the config")
	initCmd.Flags().BoolVar(&flagInitForce, "force", false, "overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}

func runInit(_ *cobra.Command, _ []string) error {
	// ── 1. Resolve config path ────────────────────────────────────────────────
	cfgPath := flagConfig
	if cfgPath == "" {
		p, err := config.ConfigPath()
		if err != nil {
			return err
		}
		cfgPath = p
	}

	// ── 2. Write postsearch.yaml if missing ───────────────────────────────────
	if _, err := os.Stat(cfgPath); err == nil && !flagInitForce {
		printSkip("", fmt.Sprintf("config already exists: %s (use --force to overwrite)", cfgPath))
	} else {
		c := config.DefaultConfig()
		if flagInitContent != "" {
			c.ContentDir = flagInitContent
		}
		c.BaseURL = flagInitBaseURL
		if err := config.Save(c, cfgPath); err != nil {
			return err
		}
		printOK("", fmt.Sprintf("config written: %s", cfgPath))
	}

	// ── 3. Write .env template ────────────────────────────────────────────────
	if err := config.EnsureDotEnvTemplate(); err != nil {
		return err
	}
	if p, err := config.DotEnvPath(); err == nil {
		printOK("", fmt.Sprintf("env overrides: %s", p))
	}

	printInfo("", "next: run 'postsearch build' then 'postsearch search <query>'")
	return nil
}
