package search

import (
	"encoding/json"
	"fmt"
)

// DecodeDocuments parses an aggregate index: a JSON array of objects with at
// least string "title" and "url" keys. Entries that do not satisfy that are
// skipped and counted rather than failing the whole index.
func DecodeDocuments(data []byte) ([]Document, int, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, 0, fmt.Errorf("invalid index JSON: %w", err)
	}

	docs := make([]Document, 0, len(raw))
	skipped := 0
	for _, r := range raw {
		var entry map[string]any
		if err := json.Unmarshal(r, &entry); err != nil {
			skipped++
			continue
		}
		doc, err := extractDocument(entry)
		if err != nil {
			skipped++
			continue
		}
		docs = append(docs, doc)
	}
	return docs, skipped, nil
}

// extractDocument validates one decoded entry.
func extractDocument(entry map[string]any) (Document, error) {
	title, ok := entry["title"].(string)
	if !ok || title == "" {
		return Document{}, fmt.Errorf("missing or invalid title")
	}
	url, ok := entry["url"].(string)
	if !ok || url == "" {
		return Document{}, fmt.Errorf("missing or invalid url")
	}

	doc := Document{Title: title, URL: url}
	if desc, ok := entry["description"].(string); ok {
		doc.Description = desc
	}

	switch tags := entry["tags"].(type) {
	case []any:
		for _, t := range tags {
			if s, ok := t.(string); ok && s != "" {
				doc.Tags = append(doc.Tags, s)
			}
		}
	case string:
		doc.Tags = SplitTags(tags)
	}
	return doc, nil
}
