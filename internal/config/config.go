package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// WidgetConfig mirrors the search widget options in postsearch.yaml.
type WidgetConfig struct {
	Limit          int      `yaml:"limit,omitempty"`
	Fuzzy          bool     `yaml:"fuzzy,omitempty"`
	Exclude        []string `yaml:"exclude,omitempty"`
	ResultTemplate string   `yaml:"result_template,omitempty"`
	NoResultsText  string   `yaml:"no_results_text,omitempty"`
	Format         string   `yaml:"format,omitempty"`
}

// ServeConfig configures the HTTP server.
type ServeConfig struct {
	Addr string `yaml:"addr,omitempty"`
}

// LoggingConfig configures the slog handler.
type LoggingConfig struct {
	Level string `yaml:"level,omitempty"`
}

// Config is the in-memory representation of ~/.postsearch/postsearch.yaml.
type Config struct {
	ContentDir string        `yaml:"content_dir"`
	BaseURL    string        `yaml:"base_url,omitempty"`
	IndexPath  string        `yaml:"index_path"`
	IndexURL   string        `yaml:"index_url,omitempty"`
	Widget     WidgetConfig  `yaml:"widget,omitempty"`
	Serve      ServeConfig   `yaml:"serve,omitempty"`
	Logging    LoggingConfig `yaml:"logging,omitempty"`
}

// Env keys consulted by ApplyEnv.
const (
	EnvContentDir = "POSTSEARCH_CONTENT_DIR"
	EnvIndex      = "POSTSEARCH_INDEX"
	EnvBaseURL    = "POSTSEARCH_BASE_URL"
	EnvAddr       = "POSTSEARCH_ADDR"
	EnvLimit      = "POSTSEARCH_LIMIT"
)

// HomeDir returns the absolute path to ~/.postsearch/.
func HomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".postsearch"), nil
}

// ConfigPath returns the absolute path to ~/.postsearch/postsearch.yaml.
func ConfigPath() (string, error) {
	dir, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "postsearch.yaml"), nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(p string) (string, error) {
	if !strings.HasPrefix(p, "~") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand ~: %w", err)
	}
	return filepath.Join(home, p[1:]), nil
}

// DefaultConfig returns the configuration used when no file exists.
// Paths are relative to the working directory, matching a site checkout.
func DefaultConfig() *Config {
	return &Config{
		ContentDir: ".",
		IndexPath:  filepath.Join("_site", "search.json"),
		Widget: WidgetConfig{
			Limit:          10,
			ResultTemplate: `<li><a href="{url}">{title}</a></li>`,
			NoResultsText:  "No results found",
			Format:         "html",
		},
		Serve:   ServeConfig{Addr: ":8080"},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads path (or ~/.postsearch/postsearch.yaml when path is empty) on top
// of DefaultConfig and then applies environment overrides. A missing default
// file is not an error; a missing explicit path is.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := ConfigPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
	default:
		return nil, fmt.Errorf("cannot read config %s: %w", path, err)
	}

	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}

	// Expand ~ in paths at load time.
	if cfg.ContentDir, err = ExpandPath(cfg.ContentDir); err != nil {
		return nil, err
	}
	if cfg.IndexPath, err = ExpandPath(cfg.IndexPath); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides cfg with values from the environment or ~/.postsearch/.env.
func ApplyEnv(cfg *Config) error {
	strs := []struct {
		key string
		dst *string
	}{
		{EnvContentDir, &cfg.ContentDir},
		{EnvBaseURL, &cfg.BaseURL},
		{EnvAddr, &cfg.Serve.Addr},
	}
	for _, s := range strs {
		v, err := GetConfigValue(s.key)
		if err != nil {
			return err
		}
		if v != "" {
			*s.dst = v
		}
	}

	// POSTSEARCH_INDEX replaces whichever source is in effect: an http(s) URL
	// sets index_url, anything else sets index_path and clears index_url.
	v, err := GetConfigValue(EnvIndex)
	if err != nil {
		return err
	}
	if v != "" {
		if isRemoteIndex(v) {
			cfg.IndexURL = v
		} else {
			cfg.IndexPath = v
			cfg.IndexURL = ""
		}
	}

	v, err = GetConfigValue(EnvLimit)
	if err != nil {
		return err
	}
	if v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvLimit, v, err)
		}
		cfg.Widget.Limit = n
	}
	return nil
}

func isRemoteIndex(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// IndexSource returns where searches read the index from: IndexURL when set,
// otherwise IndexPath.
func (c *Config) IndexSource() string {
	if c.IndexURL != "" {
		return c.IndexURL
	}
	return c.IndexPath
}

// Save marshals cfg and writes it to path (or the default config path).
func Save(cfg *Config, path string) error {
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return err
		}
		path = p
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("cannot marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("cannot write config %s: %w", path, err)
	}
	return nil
}
