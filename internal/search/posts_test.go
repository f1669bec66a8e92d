package search

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDiscoverPosts_ParsesFrontmatter(t *testing.T) {
	content := t.TempDir()
	writeFile(t, filepath.Join(content, "_posts", "2024-03-01-null-safety.md"),
		"---\ntitle: Kotlin Null Safety\ndescription: Hello world\ntags: [kotlin, jvm]\nlayout: post\n---\n\n# Body\n")
	writeFile(t, filepath.Join(content, "_posts", "2023-01-15-java.md"),
		"---\ntitle: Null Handling in Java\ntags: java, optional\n---\nFirst paragraph.\n")
	writeFile(t, filepath.Join(content, "about.md"), "# About me\n\nI write things.\n")
	writeFile(t, filepath.Join(content, "_drafts", "wip.md"), "---\ntitle: WIP\n---\n")
	writeFile(t, filepath.Join(content, ".git", "x.md"), "---\ntitle: hidden\n---\n")
	writeFile(t, filepath.Join(content, "notes.txt"), "not markdown")

	posts, err := DiscoverPosts(context.Background(), content)
	if err != nil {
		t.Fatalf("DiscoverPosts: %v", err)
	}
	if len(posts) != 3 {
		t.Fatalf("expected 3 posts, got %d: %+v", len(posts), posts)
	}

	if posts[0].Title != "Kotlin Null Safety" {
		t.Fatalf("expected newest post first, got %q", posts[0].Title)
	}
	if posts[0].Description != "Hello world" {
		t.Fatalf("unexpected description: %q", posts[0].Description)
	}
	if len(posts[0].Tags) != 2 || posts[0].Tags[0] != "kotlin" {
		t.Fatalf("unexpected tags: %v", posts[0].Tags)
	}
	if got := posts[0].URL(""); got != "/2024/03/01/null-safety.html" {
		t.Fatalf("unexpected url: %q", got)
	}

	if posts[1].Description != "First paragraph." {
		t.Fatalf("expected inferred description, got %q", posts[1].Description)
	}
	if len(posts[1].Tags) != 2 || posts[1].Tags[1] != "optional" {
		t.Fatalf("unexpected tags: %v", posts[1].Tags)
	}

	if posts[2].Title != "About me" {
		t.Fatalf("expected title from heading, got %q", posts[2].Title)
	}
	if got := posts[2].URL("https://blog.example.com/"); got != "https://blog.example.com/about.html" {
		t.Fatalf("unexpected url: %q", got)
	}
}

func TestDiscoverPosts_MissingDir(t *testing.T) {
	posts, err := DiscoverPosts(context.Background(), filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("DiscoverPosts: %v", err)
	}
	if len(posts) != 0 {
		t.Fatalf("expected no posts, got %d", len(posts))
	}
}

func TestParsePost_DraftsAndPermalink(t *testing.T) {
	p, err := ParsePost("drafty.md", "---\ntitle: Draft\npublished: false\npermalink: /custom/\n---\n")
	if err != nil {
		t.Fatalf("ParsePost: %v", err)
	}
	if !p.Draft {
		t.Fatalf("expected draft")
	}
	if p.URL("") != "/custom/" {
		t.Fatalf("unexpected url: %q", p.URL(""))
	}
}

func TestParsePost_DateFromFrontmatter(t *testing.T) {
	p, err := ParsePost("page.md", "---\ntitle: Dated\ndate: 2022-05-06 10:00:00\n---\n")
	if err != nil {
		t.Fatalf("ParsePost: %v", err)
	}
	if p.Date.IsZero() || p.Date.Year() != 2022 || p.Date.Month() != time.May {
		t.Fatalf("unexpected date: %v", p.Date)
	}
}

func TestParsePost_InvalidYAML(t *testing.T) {
	_, err := ParsePost("bad.md", "---\ntitle: [unterminated\n---\n")
	if err == nil {
		t.Fatalf("expected error")
	}
	if errors.Is(err, ErrNoFrontmatter) {
		t.Fatalf("invalid YAML should not be reported as missing front-matter")
	}
}

func TestSplitFrontmatter(t *testing.T) {
	_, body, err := splitFrontmatter("no header\n")
	if !errors.Is(err, ErrNoFrontmatter) {
		t.Fatalf("expected ErrNoFrontmatter, got %v", err)
	}
	if body != "no header\n" {
		t.Fatalf("unexpected body: %q", body)
	}

	fm, body, err := splitFrontmatter("---\n---\nbody\n")
	if err != nil {
		t.Fatalf("splitFrontmatter: %v", err)
	}
	if fm.Title != "" || body != "body\n" {
		t.Fatalf("unexpected result: %+v %q", fm, body)
	}
}

func TestSplitFrontmatter_FenceMustBeWholeLine(t *testing.T) {
	fm, body, err := splitFrontmatter("---\ntitle: T\n---x: flag\ndescription: D\n---  \nbody\n")
	if err != nil {
		t.Fatalf("splitFrontmatter: %v", err)
	}
	if fm.Title != "T" || fm.Description != "D" {
		t.Fatalf("unexpected front-matter: %+v", fm)
	}
	if body != "body\n" {
		t.Fatalf("unexpected body: %q", body)
	}

	fm, body, err = splitFrontmatter("---\ntitle: T\n---")
	if err != nil {
		t.Fatalf("splitFrontmatter: %v", err)
	}
	if fm.Title != "T" || body != "" {
		t.Fatalf("unexpected result: %+v %q", fm, body)
	}

	if _, _, err := splitFrontmatter("---\ntitle: T\n---x\n"); !errors.Is(err, ErrNoFrontmatter) {
		t.Fatalf("expected ErrNoFrontmatter for unclosed block, got %v", err)
	}
}

func TestDerivePath(t *testing.T) {
	cases := map[string]string{
		"index.md":                   "/",
		"blog/index.md":              "/blog/",
		"about.md":                   "/about.html",
		"docs/setup.markdown":        "/docs/setup.html",
		"_posts/2020-02-03-hello.md": "/2020/02/03/hello.html",
	}
	for in, want := range cases {
		if got := derivePath(in); got != want {
			t.Fatalf("derivePath(%q)=%q want %q", in, got, want)
		}
	}
}
