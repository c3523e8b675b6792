package htmldoc

import (
	"fmt"
	"strings"

	"github.com/tsawler/typeset/style"
)

// pageCSS builds the embedded stylesheet for a page. Every value the
// stylesheet controls is taken from sheet; only layout constants are fixed
// here.
func pageCSS(sheet style.Sheet) string {
	var sb strings.Builder

	fmt.Fprintf(&sb,
		"body { font-family: %q, \"Segoe UI\", \"Arial\", sans-serif; font-size: %dpt; line-height: 1.6; max-width: 800px; margin: 0 auto; padding: 2em; color: #%s; }\n",
		sheet.BaseFontFamily, sheet.BaseFontSize, sheet.TextColor)

	sb.WriteString("table { border-collapse: collapse; width: 100%; margin: 1em 0; }\n")
	fmt.Fprintf(&sb,
		"th, td { border: 1px solid #%s; padding: 8px 12px; text-align: left; }\n",
		sheet.TableBorderColor)
	fmt.Fprintf(&sb,
		"th { background-color: #%s; color: #%s; font-weight: bold; }\n",
		sheet.TableHeaderFill, sheet.TableHeaderText)
	fmt.Fprintf(&sb,
		"tr:nth-child(even) { background-color: #%s; }\n", sheet.TableStripeFill)

	sb.WriteString("pre { background: #f5f5f5; padding: 1em; overflow-x: auto; border-radius: 4px; }\n")
	fmt.Fprintf(&sb, "code { font-family: %q, monospace; }\n", sheet.MonoFontFamily)
	fmt.Fprintf(&sb,
		"blockquote { border-left: 4px solid #%s; margin: 1em 0; padding: 0.5em 1em; background: #f9f9f9; }\n",
		sheet.AccentColor)

	fmt.Fprintf(&sb, "h1, h2, h3 { color: #%s; }\n", sheet.AccentColor)
	for level := 1; level <= 6; level++ {
		fmt.Fprintf(&sb, "h%d { font-size: %dpt; }\n", level, sheet.HeadingSize(level))
	}

	sb.WriteString("hr { border: none; border-top: 2px solid #ccc; margin: 2em 0; }\n")
	return sb.String()
}
