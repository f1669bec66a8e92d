package widget

import (
	"html"
	"strings"

	"github.com/kamusis/postsearch/internal/search"
)

// renderer fills the result template for one document.
type renderer struct {
	template string
	escape   bool
}

func newRenderer(cfg Config) *renderer {
	return &renderer{template: cfg.ResultTemplate, escape: cfg.Format == FormatHTML}
}

func (r *renderer) render(doc search.Document) string {
	field := func(s string) string {
		if r.escape {
			return html.EscapeString(s)
		}
		return s
	}
	// A single pass keeps substituted values from being re-expanded.
	repl := strings.NewReplacer(
		"{url}", field(doc.URL),
		"{title}", field(doc.Title),
		"{desc}", field(doc.Description),
		"{tags}", field(strings.Join(doc.Tags, ", ")),
	)
	return repl.Replace(r.template)
}

func (r *renderer) renderAll(docs []search.Document) string {
	parts := make([]string, len(docs))
	for i, d := range docs {
		parts[i] = r.render(d)
	}
	return strings.Join(parts, "\n")
}
