package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrinter_LinesWithoutColor(t *testing.T) {
	var out, errOut bytes.Buffer
	p := NewPrinterTo(&out, &errOut, false)

	p.OK("", "index written")
	p.Warn("index", "2 malformed entries")
	p.Err("config", "cannot parse")
	p.Info("", "building")

	assert.Equal(t, "  ✓  index written\n  ⚠  [index] 2 malformed entries\n  ~  building\n", out.String())
	assert.Equal(t, "  ✗  [config] cannot parse\n", errOut.String())
}

func TestPrinter_Section(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinterTo(&out, &out, false)
	p.Section("Doctor")
	assert.Equal(t, "\n=== Doctor ===\n", out.String())
}

func TestResolveColors(t *testing.T) {
	assert.False(t, ResolveColors(true))
	t.Setenv("NO_COLOR", "1")
	assert.False(t, ResolveColors(false))
}

func TestTable_RendersRows(t *testing.T) {
	var out bytes.Buffer
	tbl := NewTable(&out, []string{"#", "Title", "URL"})
	tbl.AddRow("1", "Kotlin Null Safety", "/b")
	tbl.AddRow("2", "Null Handling in Java", "/a")
	assert.Equal(t, 2, tbl.Len())
	assert.NoError(t, tbl.Render())

	s := out.String()
	assert.True(t, strings.Contains(s, "Kotlin Null Safety"))
	assert.True(t, strings.Contains(s, "/a"))
	assert.Less(t, strings.Index(s, "Kotlin"), strings.Index(s, "Null Handling"))
}
