package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// envKeys lists the overrides written into the .env template, with a hint each.
var envKeys = []struct {
	key  string
	hint string
}{
	{EnvContentDir, "directory holding the markdown posts"},
	{EnvIndex, "path of the aggregate index (search.json)"},
	{EnvBaseURL, "prefix for generated post URLs, e.g. https://blog.example.com"},
	{EnvAddr, "listen address for 'postsearch serve'"},
	{EnvLimit, "maximum number of results per query"},
}

// DotEnvPath returns the absolute path to ~/.postsearch/.env.
func DotEnvPath() (string, error) {
	dir, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ".env"), nil
}

// LoadDotEnv reads ~/.postsearch/.env. A missing file yields an empty map.
func LoadDotEnv() (map[string]string, error) {
	p, err := DotEnvPath()
	if err != nil {
		return nil, err
	}
	f, err := os.Open(p)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("cannot open dotenv file %s: %w", p, err)
	}
	defer f.Close()

	vals, err := ParseDotEnv(f)
	if err != nil {
		return nil, fmt.Errorf("cannot read dotenv file %s: %w", p, err)
	}
	return vals, nil
}

// ParseDotEnv parses KEY=VALUE lines. Blank lines and '#' comments are
// skipped, an "export " prefix is allowed, and a value wrapped in single or
// double quotes is unquoted. Unquoted values lose a trailing " #" comment.
func ParseDotEnv(r io.Reader) (map[string]string, error) {
	out := make(map[string]string)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")
		k, v, ok := strings.Cut(line, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			continue
		}
		out[k] = dotEnvValue(strings.TrimSpace(v))
	}
	return out, scanner.Err()
}

func dotEnvValue(v string) string {
	if len(v) >= 2 {
		if q := v[0]; (q == '"' || q == '\'') && v[len(v)-1] == q {
			return v[1 : len(v)-1]
		}
	}
	if i := strings.Index(v, " #"); i >= 0 {
		v = strings.TrimSpace(v[:i])
	}
	return v
}

// GetConfigValue returns key from the process environment, falling back to
// ~/.postsearch/.env.
func GetConfigValue(key string) (string, error) {
	if v := os.Getenv(key); v != "" {
		return v, nil
	}
	vals, err := LoadDotEnv()
	if err != nil {
		return "", err
	}
	return vals[key], nil
}

// EnsureDotEnvTemplate writes a commented ~/.postsearch/.env listing every
// override key with an empty value. An existing file is left alone.
func EnsureDotEnvTemplate() error {
	p, err := DotEnvPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(p); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("cannot stat dotenv file %s: %w", p, err)
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("cannot create %s: %w", filepath.Dir(p), err)
	}

	var b strings.Builder
	b.WriteString("# postsearch overrides. Process environment variables win over this file.\n")
	for _, k := range envKeys {
		fmt.Fprintf(&b, "\n# %s\n%s=\n", k.hint, k.key)
	}
	if err := os.WriteFile(p, []byte(b.String()), 0o600); err != nil {
		return fmt.Errorf("cannot write dotenv template %s: %w", p, err)
	}
	return nil
}
