package style

import "github.com/tsawler/typeset/model"

// DefaultFontSize is the body size in points used when the front matter does
// not set one.
const DefaultFontSize = 12

// headingSteps is the size increase in points over the base size for heading
// levels 1 through 6.
var headingSteps = [6]int{7, 4, 2, 1, 0, -1}

// Sheet is a resolved stylesheet. Writers read it; nothing mutates it after
// Resolve.
type Sheet struct {
	// BaseFontFamily is the body font; MonoFontFamily is used for code.
	BaseFontFamily string
	MonoFontFamily string
	// BaseFontSize is the body size in points.
	BaseFontSize int

	// AccentColor decorates headings and table headers; TextColor is the
	// body text color. Colors are RRGGBB hex without the leading #.
	AccentColor string
	TextColor   string

	TableBorderColor string
	TableHeaderFill  string
	TableHeaderText  string
	TableStripeFill  string

	// Highlight names a syntax highlighting style for fenced code in HTML
	// output. Empty disables highlighting.
	Highlight string
}

// Resolve builds the stylesheet for a document's metadata. The fontsize key
// overrides the base size; everything else is fixed decoration.
func Resolve(meta model.Metadata) Sheet {
	size := meta.FontSize
	if size <= 0 {
		size = DefaultFontSize
	}
	return Sheet{
		BaseFontFamily:   "Calibri",
		MonoFontFamily:   "Courier New",
		BaseFontSize:     size,
		AccentColor:      "1F4E79",
		TextColor:        "333333",
		TableBorderColor: "333333",
		TableHeaderFill:  "1F4E79",
		TableHeaderText:  "FFFFFF",
		TableStripeFill:  "EDF2F7",
	}
}

// HeadingSize returns the size in points for a heading level. Sizes step
// down monotonically from level 1 to level 6; out-of-range levels clamp.
func (s Sheet) HeadingSize(level int) int {
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	return s.BaseFontSize + headingSteps[level-1]
}

// TitleSize returns the size in points for the document title; SubtitleSize
// the size for the subtitle line.
func (s Sheet) TitleSize() int    { return 2 * s.BaseFontSize }
func (s Sheet) SubtitleSize() int { return s.BaseFontSize + 4 }

// HalfPoints converts a point size to the half-point units used by
// WordprocessingML.
func HalfPoints(points int) int { return points * 2 }
