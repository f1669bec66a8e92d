// Package output provides the CLI's terminal output helpers.
//
// Icon semantics:
//
//	✓  success / healthy
//	✗  error / failure          (written to stderr)
//	⚠  warning
//	○  skipped / not applicable
//	-  not found / missing
//	~  neutral info / state change
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Printer writes icon-prefixed status lines.
type Printer struct {
	out       io.Writer
	err       io.Writer
	useColors bool
}

// NewPrinter returns a Printer on stdout/stderr.
func NewPrinter(useColors bool) *Printer {
	return NewPrinterTo(os.Stdout, os.Stderr, useColors)
}

// NewPrinterTo returns a Printer on the given writers.
func NewPrinterTo(out, err io.Writer, useColors bool) *Printer {
	return &Printer{out: out, err: err, useColors: useColors}
}

// ResolveColors reports whether colored output should be used.
func ResolveColors(noColor bool) bool {
	if noColor {
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return os.Getenv("TERM") != "dumb"
}

// Out returns the standard output writer.
func (p *Printer) Out() io.Writer { return p.out }

// Section prints a top-level section header, e.g. "=== Doctor ===".
func (p *Printer) Section(title string) {
	if p.useColors {
		color.New(color.Bold).Fprintf(p.out, "\n=== %s ===\n", title)
		return
	}
	fmt.Fprintf(p.out, "\n=== %s ===\n", title)
}

// Bullet prints a grouped-section bullet, e.g. "● Index:".
func (p *Printer) Bullet(title string) {
	fmt.Fprintf(p.out, "\n● %s\n", title)
}

func (p *Printer) OK(name, msg string)   { p.line(p.out, "✓", color.FgGreen, name, msg) }
func (p *Printer) Err(name, msg string)  { p.line(p.err, "✗", color.FgRed, name, msg) }
func (p *Printer) Warn(name, msg string) { p.line(p.out, "⚠", color.FgYellow, name, msg) }
func (p *Printer) Skip(name, msg string) { p.line(p.out, "○", color.FgHiBlack, name, msg) }
func (p *Printer) Miss(name, msg string) { p.line(p.out, "-", color.FgHiBlack, name, msg) }
func (p *Printer) Info(name, msg string) { p.line(p.out, "~", color.FgCyan, name, msg) }

// line renders "  <icon>  msg" or "  <icon>  [name] msg".
func (p *Printer) line(w io.Writer, icon string, attr color.Attribute, name, msg string) {
	if p.useColors {
		icon = color.New(attr).Sprint(icon)
	}
	if name == "" {
		fmt.Fprintf(w, "  %s  %s\n", icon, msg)
	} else {
		fmt.Fprintf(w, "  %s  [%s] %s\n", icon, name, msg)
	}
}
