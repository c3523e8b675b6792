package typeset

import "strings"

// FormatWarnings renders warnings as a single human-readable string, one
// warning per line.
//
// Example:
//
//	_, warnings, _ := typeset.Open("report.md").HTML()
//	if len(warnings) > 0 {
//	    log.Println(typeset.FormatWarnings(warnings))
//	}
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}
