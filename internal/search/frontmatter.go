package search

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// frontMatter holds the header keys the content pipeline understands.
type frontMatter struct {
	Title       string
	Description string
	Tags        []string
	Layout      string
	Permalink   string
	Date        time.Time
	Draft       bool
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05 -0700",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// splitFrontmatter separates a leading YAML block delimited by "---" lines from the body.
func splitFrontmatter(content string) (frontMatter, string, error) {
	s := strings.TrimPrefix(content, "\ufeff")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	if !strings.HasPrefix(s, "---\n") {
		return frontMatter{}, content, ErrNoFrontmatter
	}

	fmText, body, ok := cutFence(s[len("---\n"):])
	if !ok {
		return frontMatter{}, content, ErrNoFrontmatter
	}

	var raw map[string]any
	if err := yaml.Unmarshal([]byte(fmText), &raw); err != nil {
		return frontMatter{}, body, fmt.Errorf("invalid front-matter YAML: %w", err)
	}

	lower := make(map[string]any, len(raw))
	for k, v := range raw {
		lower[strings.ToLower(k)] = v
	}

	fm := frontMatter{
		Title:       stringValue(lower["title"]),
		Description: stringValue(lower["description"]),
		Layout:      stringValue(lower["layout"]),
		Permalink:   stringValue(lower["permalink"]),
	}
	if fm.Description == "" {
		fm.Description = stringValue(lower["excerpt"])
	}
	fm.Tags = listValue(lower["tags"])
	if len(fm.Tags) == 0 {
		fm.Tags = listValue(lower["keywords"])
	}
	fm.Date = dateValue(lower["date"])

	if b, ok := lower["draft"].(bool); ok && b {
		fm.Draft = true
	}
	if b, ok := lower["published"].(bool); ok && !b {
		fm.Draft = true
	}
	return fm, body, nil
}

// cutFence splits rest at the first line that is exactly "---", ignoring
// trailing spaces and tabs. Lines such as "---x" stay in the header.
func cutFence(rest string) (header, body string, ok bool) {
	for off := 0; off <= len(rest); {
		line := rest[off:]
		next := len(rest)
		if i := strings.IndexByte(line, '\n'); i >= 0 {
			line = line[:i]
			next = off + i + 1
		}
		if strings.TrimRight(line, " \t") == "---" {
			return rest[:off], rest[next:], true
		}
		if next == len(rest) {
			break
		}
		off = next
	}
	return "", "", false
}

func stringValue(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case int, int64, float64, bool:
		return fmt.Sprint(t)
	default:
		return ""
	}
}

// listValue accepts a YAML sequence or a comma/space separated string.
func listValue(v any) []string {
	var out []string
	switch t := v.(type) {
	case []any:
		for _, item := range t {
			if s := stringValue(item); s != "" {
				out = append(out, s)
			}
		}
	case string:
		out = SplitTags(t)
	}
	return out
}

// SplitTags splits a tag string on commas, or on whitespace when there are no commas.
func SplitTags(s string) []string {
	var parts []string
	if strings.Contains(s, ",") {
		parts = strings.Split(s, ",")
	} else {
		parts = strings.Fields(s)
	}
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func dateValue(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		s := strings.TrimSpace(t)
		for _, layout := range dateLayouts {
			if d, err := time.Parse(layout, s); err == nil {
				return d
			}
		}
	}
	return time.Time{}
}
