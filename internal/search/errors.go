package search

import "errors"

// ErrNoFrontmatter indicates a markdown file has no leading front-matter block.
var ErrNoFrontmatter = errors.New("no front-matter")
