package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDocuments_SkipsMalformedEntries(t *testing.T) {
	data := []byte(`[
		{"title": "Good", "url": "/good", "description": "fine", "tags": ["a", "b"]},
		{"title": "No URL"},
		{"url": "/no-title"},
		{"title": 42, "url": "/numeric-title"},
		"not an object",
		{"title": "String tags", "url": "/st", "tags": "go, testing"}
	]`)

	docs, skipped, err := DecodeDocuments(data)
	require.NoError(t, err)
	assert.Equal(t, 4, skipped)
	require.Len(t, docs, 2)
	assert.Equal(t, Document{Title: "Good", URL: "/good", Description: "fine", Tags: []string{"a", "b"}}, docs[0])
	assert.Equal(t, []string{"go", "testing"}, docs[1].Tags)
}

func TestDecodeDocuments_PreservesOrder(t *testing.T) {
	docs, _, err := DecodeDocuments([]byte(`[{"title":"b","url":"/b"},{"title":"a","url":"/a"}]`))
	require.NoError(t, err)
	assert.Equal(t, "/b", docs[0].URL)
	assert.Equal(t, "/a", docs[1].URL)
}

func TestDecodeDocuments_InvalidJSON(t *testing.T) {
	_, _, err := DecodeDocuments([]byte(`{"title":"x"}`))
	assert.Error(t, err)
}
