package widget

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned by Initialize for unusable configuration.
var ErrInvalidConfig = errors.New("invalid widget config")

// Format selects how result fields are interpolated into the template.
type Format string

const (
	FormatHTML Format = "html"
	FormatText Format = "text"
)

const (
	DefaultLimit         = 10
	DefaultNoResultsText = "No results found"
	DefaultHTMLTemplate  = `<li><a href="{url}">{title}</a></li>`
	DefaultTextTemplate  = "{title}  {url}"
)

// Config holds the immutable widget options.
type Config struct {
	// Limit is the maximum number of results shown. Zero selects DefaultLimit.
	Limit int
	// Fuzzy switches from substring matching to ordered-subsequence matching.
	Fuzzy bool
	// Exclude lists titles removed from the index at load time.
	Exclude []string
	// ResultTemplate is rendered once per result. Placeholders: {url}, {title}, {desc}, {tags}.
	ResultTemplate string
	// NoResultsText replaces the result list when nothing matches.
	NoResultsText string
	// Format controls escaping. Zero selects FormatHTML.
	Format Format
}

// withDefaults validates c and fills zero values.
func (c Config) withDefaults() (Config, error) {
	if c.Limit < 0 {
		return c, fmt.Errorf("%w: limit must not be negative (got %d)", ErrInvalidConfig, c.Limit)
	}
	if c.Limit == 0 {
		c.Limit = DefaultLimit
	}
	switch c.Format {
	case "":
		c.Format = FormatHTML
	case FormatHTML, FormatText:
	default:
		return c, fmt.Errorf("%w: unknown format %q", ErrInvalidConfig, c.Format)
	}
	if c.ResultTemplate == "" {
		if c.Format == FormatText {
			c.ResultTemplate = DefaultTextTemplate
		} else {
			c.ResultTemplate = DefaultHTMLTemplate
		}
	}
	if c.NoResultsText == "" {
		c.NoResultsText = DefaultNoResultsText
	}
	c.Exclude = append([]string(nil), c.Exclude...)
	return c, nil
}
