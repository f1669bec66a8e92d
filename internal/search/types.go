package search

import "time"

// Document is one searchable page or post as it appears in the aggregate index.
type Document struct {
	Title       string   `json:"title"`
	URL         string   `json:"url"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// Post represents a parsed markdown source file before it is flattened into a Document.
type Post struct {
	Path        string
	Title       string
	Description string
	Tags        []string
	Layout      string
	Permalink   string
	Date        time.Time
	Draft       bool
}

// Field identifies which part of a document satisfied a query.
// Lower values rank first.
type Field int

const (
	FieldTitle Field = iota
	FieldDescription
	FieldTags
)

func (f Field) String() string {
	switch f {
	case FieldTitle:
		return "title"
	case FieldDescription:
		return "description"
	case FieldTags:
		return "tags"
	default:
		return "unknown"
	}
}

// Match is one document that satisfied a query.
type Match struct {
	Document Document
	Field    Field
	Position int // position of the document in the index
}
