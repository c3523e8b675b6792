package markdown

import "strings"

// fenceState tracks backtick and tilde code fences so preprocessing leaves
// fenced content alone.
type fenceState struct {
	open bool
	char byte
	min  int
}

// observe feeds one line to the tracker and reports whether the line is part
// of fenced code, including the fence delimiters themselves.
func (f *fenceState) observe(line string) bool {
	t := strings.TrimLeft(line, " ")
	if f.open {
		n := 0
		for n < len(t) && t[n] == f.char {
			n++
		}
		if n >= f.min && strings.TrimRight(t[n:], " ") == "" {
			f.open = false
		}
		return true
	}
	if len(line)-len(t) > 3 || t == "" {
		return false
	}
	ch := t[0]
	if ch != '`' && ch != '~' {
		return false
	}
	n := 0
	for n < len(t) && t[n] == ch {
		n++
	}
	if n < 3 {
		return false
	}
	if ch == '`' && strings.ContainsRune(t[n:], '`') {
		return false
	}
	f.open = true
	f.char = ch
	f.min = n
	return true
}

// stripFencedDivs removes pandoc-style ::: div fence lines while keeping the
// line count stable, so positions reported by later stages still map to the
// original source. A div opener marked as a page break becomes a \newpage
// directive instead of a blank.
func stripFencedDivs(source string) string {
	lines := strings.Split(source, "\n")

	var fences fenceState
	changed := false
	for i, raw := range lines {
		line := strings.TrimRight(raw, "\r")
		if fences.observe(line) {
			continue
		}
		t := strings.TrimSpace(line)
		if !strings.HasPrefix(t, ":::") {
			continue
		}
		changed = true
		if isPageBreakDiv(t) {
			lines[i] = `\newpage`
		} else {
			lines[i] = ""
		}
	}
	if !changed {
		return source
	}
	return strings.Join(lines, "\n")
}

// isPageBreakDiv recognizes div openers such as "::: {.page-break}" or
// ":::page-break".
func isPageBreakDiv(t string) bool {
	rest := strings.TrimSpace(strings.TrimLeft(t, ":"))
	rest = strings.TrimSpace(strings.Trim(rest, "{}"))
	rest = strings.TrimPrefix(rest, ".")
	return strings.EqualFold(rest, "page-break") || strings.EqualFold(rest, "pagebreak")
}
