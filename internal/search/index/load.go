package index

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/kamusis/postsearch/internal/search"
)

// Loader fetches aggregate indexes from local files or HTTP(S) URLs.
type Loader struct {
	Client    *http.Client
	UserAgent string
}

// DefaultLoader is used by Load.
var DefaultLoader = &Loader{
	Client:    &http.Client{Timeout: 30 * time.Second},
	UserAgent: "postsearch",
}

// Load reads and decodes the aggregate index at source using DefaultLoader.
func Load(ctx context.Context, source string) (*LoadResult, error) {
	return DefaultLoader.Load(ctx, source)
}

// Load reads and decodes the aggregate index at source. source may be a
// filesystem path, a file:// URL or an http(s):// URL.
func (l *Loader) Load(ctx context.Context, source string) (*LoadResult, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, fmt.Errorf("index source is required")
	}

	data, err := l.read(ctx, source)
	if err != nil {
		return nil, err
	}
	docs, skipped, err := search.DecodeDocuments(data)
	if err != nil {
		return nil, fmt.Errorf("cannot decode index %s: %w", source, err)
	}
	return &LoadResult{Source: source, Documents: docs, Skipped: skipped}, nil
}

func (l *Loader) read(ctx context.Context, source string) ([]byte, error) {
	u, err := url.Parse(source)
	if err != nil || u.Scheme == "" || len(u.Scheme) == 1 {
		// Plain paths, including Windows drive letters.
		return readFile(source)
	}
	switch u.Scheme {
	case "file":
		return readFile(u.Path)
	case "http", "https":
		return l.fetch(ctx, source)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedSource, source)
	}
}

func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open index %s: %w", path, err)
	}
	defer f.Close()
	return readCapped(f, path)
}

func (l *Loader) fetch(ctx context.Context, source string) ([]byte, error) {
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if l.UserAgent != "" {
		req.Header.Set("User-Agent", l.UserAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("index request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 8192))
		return nil, fmt.Errorf("index request failed: %s\n%s", resp.Status, strings.TrimSpace(string(body)))
	}
	return readCapped(resp.Body, source)
}

func readCapped(r io.Reader, name string) ([]byte, error) {
	b, err := io.ReadAll(io.LimitReader(r, MaxIndexBytes+1))
	if err != nil {
		return nil, fmt.Errorf("cannot read index %s: %w", name, err)
	}
	if len(b) > MaxIndexBytes {
		return nil, fmt.Errorf("%w: %s", ErrIndexTooLarge, name)
	}
	return b, nil
}
