package client

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func tableLines(out string) []string {
	return strings.Split(strings.TrimRight(out, "\n"), "\n")
}

func TestRenderStringTable(t *testing.T) {
	out := RenderStringTable([]string{"Name", "Status"}, [][]string{
		{"web-01", "VM running"},
		{"db-01", "VM stopped"},
	})
	lines := tableLines(out)
	if len(lines) != 4 {
		t.Fatalf("got %d lines:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "Name") || !strings.Contains(lines[2], "web-01") {
		t.Errorf("unexpected table:\n%s", out)
	}
}

func TestFitTable(t *testing.T) {
	headers := []string{"Name", "Status"}
	long := "a-very-long-virtual-machine-name-in-production"
	data := [][]string{
		{long, "VM running"},
		{"db-01", "VM stopped"},
	}

	var full strings.Builder
	FitTable(&full, 0, 0, headers, data)
	if !strings.Contains(full.String(), long) {
		t.Errorf("no width should keep values:\n%s", full.String())
	}

	var fitted strings.Builder
	FitTable(&fitted, 40, 0, headers, data)
	for _, line := range tableLines(fitted.String()) {
		if n := utf8.RuneCountInString(line); n > 40 {
			t.Errorf("line is %d wide, want <= 40: %q", n, line)
		}
	}
	if !strings.Contains(fitted.String(), "…") || !strings.Contains(fitted.String(), "db-01") {
		t.Errorf("long name should be shortened, short one kept:\n%s", fitted.String())
	}
	if data[0][0] != long {
		t.Error("data should not be modified")
	}

	// too narrow: never cut under 5 characters, the table overflows
	var narrow strings.Builder
	FitTable(&narrow, 10, 0, headers, data)
	if !strings.Contains(narrow.String(), long) {
		t.Errorf("values should be kept when they can't fit:\n%s", narrow.String())
	}
}
