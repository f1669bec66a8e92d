package index

import (
	"context"
	"fmt"
	"os"

	"github.com/kamusis/postsearch/internal/search"
)

// BuildOptions controls aggregate index building.
type BuildOptions struct {
	ContentDir    string
	OutPath       string
	BaseURL       string
	IncludeDrafts bool
	Force         bool
}

// Build discovers posts under ContentDir and writes the aggregate index to OutPath.
func Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	if opts.ContentDir == "" {
		return nil, fmt.Errorf("content dir is required")
	}
	if opts.OutPath == "" {
		return nil, fmt.Errorf("output path is required")
	}

	docs, drafts, err := Collect(ctx, opts.ContentDir, opts.BaseURL, opts.IncludeDrafts)
	if err != nil {
		return nil, err
	}

	fp, err := Fingerprint(docs)
	if err != nil {
		return nil, err
	}
	changed, err := Write(opts.OutPath, docs, opts.Force)
	if err != nil {
		return nil, err
	}

	return &BuildResult{
		Path:        opts.OutPath,
		Documents:   len(docs),
		Drafts:      drafts,
		Fingerprint: fp,
		Changed:     changed,
	}, nil
}

// Collect discovers posts and flattens them into index documents, returning
// the documents and the number of drafts left out. A missing contentDir is an
// error so a mistyped path never produces an empty index.
func Collect(ctx context.Context, contentDir, baseURL string, includeDrafts bool) ([]search.Document, int, error) {
	info, err := os.Stat(contentDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, 0, fmt.Errorf("%w: %s", ErrContentDirMissing, contentDir)
		}
		return nil, 0, fmt.Errorf("cannot stat content directory %s: %w", contentDir, err)
	}
	if !info.IsDir() {
		return nil, 0, fmt.Errorf("content path is not a directory: %s", contentDir)
	}

	posts, err := search.DiscoverPosts(ctx, contentDir)
	if err != nil {
		return nil, 0, err
	}

	docs := make([]search.Document, 0, len(posts))
	seen := make(map[string]string, len(posts))
	drafts := 0
	for _, p := range posts {
		if p.Draft && !includeDrafts {
			drafts++
			continue
		}
		d := p.Document(baseURL)
		if prev, ok := seen[d.URL]; ok {
			return nil, 0, fmt.Errorf("duplicate url %s (%s and %s)", d.URL, prev, p.Path)
		}
		seen[d.URL] = p.Path
		docs = append(docs, d)
	}
	return docs, drafts, nil
}
