package index

import "github.com/kamusis/postsearch/internal/search"

// MaxIndexBytes caps how much of an index source Load will read.
const MaxIndexBytes = 32 << 20

// LoadResult is a decoded aggregate index.
type LoadResult struct {
	Source    string
	Documents []search.Document
	Skipped   int // malformed entries dropped during decoding
}

// BuildResult summarises one Build run.
type BuildResult struct {
	Path        string
	Documents   int
	Drafts      int
	Fingerprint string
	Changed     bool
}
