package index

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kamusis/postsearch/internal/search"
)

const sampleIndex = `[
  {"title": "Null Handling in Java", "url": "/a"},
  {"title": "Kotlin Null Safety", "url": "/b", "tags": ["kotlin"]},
  {"title": "broken"}
]`

func TestLoad_FileHappyPath(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "search.json")
	if err := os.WriteFile(p, []byte(sampleIndex), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, src := range []string{p, "file://" + filepath.ToSlash(p)} {
		res, err := Load(context.Background(), src)
		if err != nil {
			t.Fatalf("Load(%s): %v", src, err)
		}
		if len(res.Documents) != 2 {
			t.Fatalf("documents mismatch: %d", len(res.Documents))
		}
		if res.Skipped != 1 {
			t.Fatalf("skipped mismatch: %d", res.Skipped)
		}
		if res.Documents[0].URL != "/a" || res.Documents[1].URL != "/b" {
			t.Fatalf("order mismatch: %+v", res.Documents)
		}
	}
}

func TestLoad_HTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search.json" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleIndex))
	}))
	defer srv.Close()

	res, err := Load(context.Background(), srv.URL+"/search.json")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(res.Documents) != 2 {
		t.Fatalf("documents mismatch: %d", len(res.Documents))
	}

	if _, err := Load(context.Background(), srv.URL+"/missing.json"); err == nil {
		t.Fatalf("expected error for 404")
	} else if !strings.Contains(err.Error(), "404") {
		t.Fatalf("expected status in error, got %v", err)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(context.Background(), "ftp://example.com/search.json"); !errors.Is(err, ErrUnsupportedSource) {
		t.Fatalf("expected ErrUnsupportedSource, got %v", err)
	}
	if _, err := Load(context.Background(), filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
	if _, err := Load(context.Background(), ""); err == nil {
		t.Fatalf("expected error for empty source")
	}

	p := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(p, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(context.Background(), p); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestLoad_TooLarge(t *testing.T) {
	_, err := readCapped(strings.NewReader(strings.Repeat(" ", MaxIndexBytes+1)), "big")
	if !errors.Is(err, ErrIndexTooLarge) {
		t.Fatalf("expected ErrIndexTooLarge, got %v", err)
	}
}

func TestLoad_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Load(ctx, srv.URL); err == nil {
		t.Fatalf("expected error for canceled context")
	}
}

func TestWrite_RoundTrip(t *testing.T) {
	p := filepath.Join(t.TempDir(), "out", "search.json")
	docs := []search.Document{
		{Title: "A & B", URL: "/a", Description: "<desc>", Tags: []string{"x"}},
		{Title: "C", URL: "/c"},
	}

	changed, err := Write(p, docs, false)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !changed {
		t.Fatalf("expected first write to change the file")
	}

	res, err := Load(context.Background(), p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(res.Documents) != 2 || res.Documents[0].Title != "A & B" || res.Documents[0].Description != "<desc>" {
		t.Fatalf("round trip mismatch: %+v", res.Documents)
	}

	changed, err = Write(p, docs, false)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if changed {
		t.Fatalf("expected identical write to be skipped")
	}
	changed, err = Write(p, docs, true)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !changed {
		t.Fatalf("expected forced write")
	}
}

func TestWrite_LockStaysOutOfSiteDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "_site")
	p := filepath.Join(dir, "search.json")
	if _, err := Write(p, []search.Document{{Title: "A", URL: "/a"}}, false); err != nil {
		t.Fatalf("Write: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "search.json" {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Fatalf("expected only search.json in %s, got %v", dir, names)
	}

	lp, err := lockPath(p)
	if err != nil {
		t.Fatalf("lockPath: %v", err)
	}
	if filepath.Dir(lp) == dir {
		t.Fatalf("lock file %s is inside the site dir", lp)
	}
	other, err := lockPath(filepath.Join(t.TempDir(), "search.json"))
	if err != nil {
		t.Fatalf("lockPath: %v", err)
	}
	if other == lp {
		t.Fatalf("different indexes share lock %s", lp)
	}
}
