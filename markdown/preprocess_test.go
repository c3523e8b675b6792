package markdown

import (
	"strings"
	"testing"
)

func TestStripFencedDivs(t *testing.T) {
	src := strings.Join([]string{
		"before",
		"::: note",
		"inside",
		":::",
		"after",
	}, "\n")

	got := stripFencedDivs(src)
	lines := strings.Split(got, "\n")
	if len(lines) != 5 {
		t.Fatalf("line count = %d, want 5", len(lines))
	}
	if lines[1] != "" || lines[3] != "" {
		t.Errorf("div fence lines = %q, %q, want blanks", lines[1], lines[3])
	}
	if lines[0] != "before" || lines[2] != "inside" || lines[4] != "after" {
		t.Errorf("content lines were altered: %v", lines)
	}
}

func TestStripFencedDivsKeepsCodeFences(t *testing.T) {
	src := strings.Join([]string{
		"```",
		"::: keep",
		"```",
	}, "\n")

	if got := stripFencedDivs(src); got != src {
		t.Errorf("stripFencedDivs() altered fenced code:\n%s", got)
	}
}

func TestStripFencedDivsPageBreak(t *testing.T) {
	src := strings.Join([]string{
		"one",
		"",
		"::: {.page-break}",
		":::",
		"",
		"two",
	}, "\n")

	lines := strings.Split(stripFencedDivs(src), "\n")
	if lines[2] != `\newpage` {
		t.Errorf("page-break div = %q, want a \\newpage directive", lines[2])
	}
	if lines[3] != "" {
		t.Errorf("div closer = %q, want blank", lines[3])
	}
}

func TestIsPageBreakDiv(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"::: {.page-break}", true},
		{":::page-break", true},
		{"::: pagebreak", true},
		{"::: PageBreak", true},
		{"::: note", false},
		{":::", false},
		{"::: {.sidebar}", false},
	}
	for _, tt := range tests {
		if got := isPageBreakDiv(tt.line); got != tt.want {
			t.Errorf("isPageBreakDiv(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}
