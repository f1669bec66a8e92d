package search

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Mode selects how a query is compared against document fields.
type Mode int

const (
	// Exact matches when the query is a contiguous substring of a field.
	Exact Mode = iota
	// Fuzzy matches when the query's characters appear in order within a field.
	Fuzzy
)

// Index is an immutable, ordered collection of documents prepared for matching.
// It is safe for concurrent use.
type Index struct {
	docs   []Document
	folded []foldedDoc
}

type foldedDoc struct {
	title string
	desc  string
	tags  []string
}

// NewIndex prepares docs for matching. Documents whose title appears in exclude
// are dropped here and never considered by Search.
func NewIndex(docs []Document, exclude []string) *Index {
	skip := make(map[string]struct{}, len(exclude))
	for _, t := range exclude {
		skip[t] = struct{}{}
	}

	f := newFolder()
	idx := &Index{
		docs:   make([]Document, 0, len(docs)),
		folded: make([]foldedDoc, 0, len(docs)),
	}
	for _, d := range docs {
		if _, ok := skip[d.Title]; ok {
			continue
		}
		fd := foldedDoc{
			title: f.fold(d.Title),
			desc:  f.fold(d.Description),
			tags:  make([]string, len(d.Tags)),
		}
		for i, t := range d.Tags {
			fd.tags[i] = f.fold(t)
		}
		idx.docs = append(idx.docs, d)
		idx.folded = append(idx.folded, fd)
	}
	return idx
}

// Len returns the number of searchable documents.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.docs)
}

// Documents returns a copy of the indexed documents in index order.
func (idx *Index) Documents() []Document {
	if idx == nil {
		return nil
	}
	out := make([]Document, len(idx.docs))
	copy(out, idx.docs)
	return out
}

// Search returns documents matching query, ordered by the first matching field
// (title, description, tags) and then by index order, deduplicated by URL and
// truncated to limit. An empty query matches nothing. limit <= 0 means unlimited.
func (idx *Index) Search(query string, mode Mode, limit int) []Match {
	if idx == nil || query == "" {
		return nil
	}
	q := newFolder().fold(query)
	if q == "" {
		return nil
	}

	matchFn := strings.Contains
	if mode == Fuzzy {
		matchFn = IsSubsequence
	}

	var out []Match
	for i, fd := range idx.folded {
		field, ok := firstMatch(fd, q, matchFn)
		if !ok {
			continue
		}
		out = append(out, Match{Document: idx.docs[i], Field: field, Position: i})
	}

	SortMatches(out)
	out = dedupeByURL(out)

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func firstMatch(fd foldedDoc, q string, matchFn func(s, q string) bool) (Field, bool) {
	if matchFn(fd.title, q) {
		return FieldTitle, true
	}
	if matchFn(fd.desc, q) {
		return FieldDescription, true
	}
	for _, t := range fd.tags {
		if matchFn(t, q) {
			return FieldTags, true
		}
	}
	return 0, false
}

// IsSubsequence reports whether every rune of q appears in s in the same relative order.
func IsSubsequence(s, q string) bool {
	if q == "" {
		return true
	}
	qr := []rune(q)
	j := 0
	for _, r := range s {
		if r == qr[j] {
			j++
			if j == len(qr) {
				return true
			}
		}
	}
	return false
}

// SortMatches orders matches by field priority, then by index position.
func SortMatches(matches []Match) {
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Field == matches[j].Field {
			return matches[i].Position < matches[j].Position
		}
		return matches[i].Field < matches[j].Field
	})
}

func dedupeByURL(matches []Match) []Match {
	seen := make(map[string]struct{}, len(matches))
	out := matches[:0]
	for _, m := range matches {
		if _, ok := seen[m.Document.URL]; ok {
			continue
		}
		seen[m.Document.URL] = struct{}{}
		out = append(out, m)
	}
	return out
}

// folder normalises text for case-insensitive comparison.
// A cases.Caser carries state, so each goroutine needs its own folder.
type folder struct {
	caser cases.Caser
}

func newFolder() *folder {
	return &folder{caser: cases.Fold()}
}

func (f *folder) fold(s string) string {
	if s == "" {
		return ""
	}
	return f.caser.String(norm.NFC.String(s))
}
