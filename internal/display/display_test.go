package display

import (
	"strings"
	"testing"
)

func TestWrapDisabled(t *testing.T) {
	SetEnabled(false)
	defer SetEnabled(false)

	if got := Bold("x"); got != "x" {
		t.Errorf("Bold with colors off = %q, want plain", got)
	}
	if got := Accent("x"); got != "x" {
		t.Errorf("Accent with colors off = %q, want plain", got)
	}
}

func TestWrapEnabled(t *testing.T) {
	SetEnabled(true)
	defer SetEnabled(false)

	got := Yellow("warn")
	if !strings.HasPrefix(got, "\033[33m") || !strings.HasSuffix(got, "\033[0m") {
		t.Errorf("Yellow = %q, missing escapes", got)
	}
	if Red("e") == "e" {
		t.Error("Red did not apply escapes when enabled")
	}
}

func TestTableRender(t *testing.T) {
	SetEnabled(false)
	defer SetEnabled(false)

	tbl := NewTable([]string{"Date", "Fajr"})
	tbl.AddRow([]string{"Mon 01 Jan", "05:17"})
	tbl.AddRow([]string{"Tue 02 Jan", "05:18"})
	tbl.SetHighlightRow(1)

	out := tbl.Render()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header + separator + 2 rows, got %d lines:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "Date") || !strings.Contains(lines[0], "Fajr") {
		t.Errorf("header missing: %q", lines[0])
	}
	if !strings.Contains(lines[2], "05:17") {
		t.Errorf("row content missing: %q", lines[2])
	}

	// Columns stay aligned: both data rows place the time at the same
	// offset.
	if strings.Index(lines[2], "05:17") != strings.Index(lines[3], "05:18") {
		t.Errorf("columns misaligned:\n%q\n%q", lines[2], lines[3])
	}
}

func TestTableEmpty(t *testing.T) {
	tbl := NewTable(nil)
	if got := tbl.Render(); got != "" {
		t.Errorf("empty table rendered %q", got)
	}
}

func TestTableShortRow(t *testing.T) {
	SetEnabled(false)
	tbl := NewTable([]string{"A", "B", "C"})
	tbl.AddRow([]string{"only"})

	out := tbl.Render()
	if !strings.Contains(out, "only") {
		t.Errorf("short row dropped: %q", out)
	}
}
