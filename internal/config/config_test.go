package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWhenMissing(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ".", cfg.ContentDir)
	assert.Equal(t, filepath.Join("_site", "search.json"), cfg.IndexPath)
	assert.Equal(t, 10, cfg.Widget.Limit)
	assert.Equal(t, ":8080", cfg.Serve.Addr)
}

func TestLoad_ExplicitMissingFileFails(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	p := filepath.Join(t.TempDir(), "postsearch.yaml")
	body := "content_dir: ~/blog\nindex_path: out/search.json\nwidget:\n  fuzzy: true\n  exclude: [Welcome]\n"
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "blog"), cfg.ContentDir)
	assert.Equal(t, "out/search.json", cfg.IndexPath)
	assert.True(t, cfg.Widget.Fuzzy)
	assert.Equal(t, []string{"Welcome"}, cfg.Widget.Exclude)
	// untouched nested keys keep their defaults
	assert.Equal(t, 10, cfg.Widget.Limit)
	assert.Equal(t, "No results found", cfg.Widget.NoResultsText)
}

func TestLoad_InvalidYAML(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	p := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(p, []byte("widget: [\n"), 0o644))
	_, err := Load(p)
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(EnvIndex, "https://blog.example.com/search.json")
	t.Setenv(EnvAddr, ":9999")
	t.Setenv(EnvLimit, "3")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "https://blog.example.com/search.json", cfg.IndexSource())
	assert.Equal(t, ":9999", cfg.Serve.Addr)
	assert.Equal(t, 3, cfg.Widget.Limit)

	t.Setenv(EnvLimit, "many")
	_, err = Load("")
	assert.Error(t, err)
}

func TestLoad_EnvIndexReplacesSourceInEffect(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	p := filepath.Join(t.TempDir(), "postsearch.yaml")
	require.NoError(t, os.WriteFile(p, []byte("index_url: https://blog.example.com/search.json\n"), 0o644))

	t.Setenv(EnvIndex, "local/search.json")
	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "local/search.json", cfg.IndexSource())
	assert.Equal(t, "local/search.json", cfg.IndexPath)
	assert.Empty(t, cfg.IndexURL)

	t.Setenv(EnvIndex, "http://mirror.example.com/search.json")
	cfg, err = Load(p)
	require.NoError(t, err)
	assert.Equal(t, "http://mirror.example.com/search.json", cfg.IndexSource())
	assert.Equal(t, filepath.Join("_site", "search.json"), cfg.IndexPath)
}

func TestIndexSource_PrefersURL(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, cfg.IndexPath, cfg.IndexSource())
	cfg.IndexURL = "http://localhost/search.json"
	assert.Equal(t, "http://localhost/search.json", cfg.IndexSource())
}

func TestSave_RoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	p := filepath.Join(t.TempDir(), "nested", "postsearch.yaml")

	cfg := DefaultConfig()
	cfg.BaseURL = "https://blog.example.com"
	cfg.Widget.Exclude = []string{"Welcome"}
	require.NoError(t, Save(cfg, p))

	got, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}
