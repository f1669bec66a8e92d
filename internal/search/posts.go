package search

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

var datedName = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})-(.+)$`)

// DiscoverPosts scans contentDir for markdown sources and returns parsed posts.
//
// Dated posts come first, newest first; undated pages follow in path order.
// Drafts are returned with Draft set; callers decide whether to publish them.
func DiscoverPosts(ctx context.Context, contentDir string) ([]Post, error) {
	info, err := os.Stat(contentDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Post{}, nil
		}
		return nil, fmt.Errorf("cannot stat content directory %s: %w", contentDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content path is not a directory: %s", contentDir)
	}

	var paths []string
	walkFn := func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if p != contentDir && isHidden(name) {
				return filepath.SkipDir
			}
			return nil
		}
		if isHidden(name) || !isMarkdown(name) {
			return nil
		}
		paths = append(paths, p)
		return nil
	}
	if err := filepath.WalkDir(contentDir, walkFn); err != nil {
		return nil, fmt.Errorf("cannot scan content: %w", err)
	}

	posts := make([]Post, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rel, err := filepath.Rel(contentDir, p)
			if err != nil {
				return err
			}
			b, err := os.ReadFile(p)
			if err != nil {
				return fmt.Errorf("cannot read %s: %w", p, err)
			}
			post, err := ParsePost(filepath.ToSlash(rel), string(b))
			if err != nil {
				return fmt.Errorf("cannot parse %s: %w", p, err)
			}
			posts[i] = post
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(posts, func(i, j int) bool {
		di, dj := posts[i].Date, posts[j].Date
		switch {
		case !di.IsZero() && !dj.IsZero():
			return di.After(dj)
		case !di.IsZero():
			return true
		case !dj.IsZero():
			return false
		default:
			return posts[i].Path < posts[j].Path
		}
	})
	return posts, nil
}

// ParsePost builds a Post from a markdown file's relative path and content.
// A file without front-matter is still a post; its metadata is inferred from the body.
func ParsePost(rel, content string) (Post, error) {
	fm, body, err := splitFrontmatter(content)
	if err != nil && !errors.Is(err, ErrNoFrontmatter) {
		return Post{}, err
	}

	base := strings.TrimSuffix(path.Base(rel), path.Ext(rel))
	slug := base
	date := fm.Date
	if m := datedName.FindStringSubmatch(base); m != nil {
		slug = m[4]
		if date.IsZero() {
			date, _ = time.Parse("2006-01-02", m[1]+"-"+m[2]+"-"+m[3])
		}
	}

	title := fm.Title
	if title == "" {
		title = inferTitleFromBody(body)
	}
	if title == "" {
		title = slug
	}
	desc := fm.Description
	if desc == "" {
		desc = inferDescriptionFromBody(body)
	}

	return Post{
		Path:        rel,
		Title:       title,
		Description: desc,
		Tags:        fm.Tags,
		Layout:      fm.Layout,
		Permalink:   fm.Permalink,
		Date:        date,
		Draft:       fm.Draft,
	}, nil
}

// URL returns the public path of the post, prefixed with baseURL when set.
func (p Post) URL(baseURL string) string {
	u := p.Permalink
	if u == "" {
		u = derivePath(p.Path)
	}
	if !strings.HasPrefix(u, "/") {
		u = "/" + u
	}
	if baseURL != "" {
		u = strings.TrimRight(baseURL, "/") + u
	}
	return u
}

// Document flattens the post into its index entry.
func (p Post) Document(baseURL string) Document {
	return Document{
		Title:       p.Title,
		URL:         p.URL(baseURL),
		Description: p.Description,
		Tags:        p.Tags,
	}
}

func derivePath(rel string) string {
	dir := path.Dir(rel)
	base := strings.TrimSuffix(path.Base(rel), path.Ext(rel))

	if m := datedName.FindStringSubmatch(base); m != nil {
		return fmt.Sprintf("/%s/%s/%s/%s.html", m[1], m[2], m[3], m[4])
	}

	dir = strings.TrimPrefix(dir, "_posts")
	dir = strings.Trim(dir, "./")
	if base == "index" {
		if dir == "" {
			return "/"
		}
		return "/" + dir + "/"
	}
	if dir == "" {
		return "/" + base + ".html"
	}
	return "/" + dir + "/" + base + ".html"
}

func isHidden(name string) bool {
	if name == "_posts" {
		return false
	}
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}

func isMarkdown(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

func inferTitleFromBody(body string) string {
	for _, ln := range strings.Split(body, "\n") {
		ln = strings.TrimSpace(ln)
		if strings.HasPrefix(ln, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(ln, "# "))
		}
	}
	return ""
}

func inferDescriptionFromBody(body string) string {
	lines := strings.Split(body, "\n")
	for _, ln := range lines {
		ln = strings.TrimSpace(ln)
		if ln == "" {
			continue
		}
		if strings.HasPrefix(ln, "#") {
			continue
		}
		return ln
	}
	return ""
}
