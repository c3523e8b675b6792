// Package tables detects and parses ASCII grid tables embedded in plain
// text.
//
// Grid tables draw their structure with border characters:
//
//	+------------+------------+
//	| Column A   | Column B   |
//	+============+============+
//	| value      | value      |
//	+------------+------------+
//
// Corners and junctions are +, row borders are runs of -, the optional
// header separator is a run of =, and cell walls are |.
//
// # Detection
//
// [GridScanner.Scan] walks the source line by line. A line whose first
// non-space character is + opens a candidate region; the region extends
// over every following line that starts with + or | and must end with a
// full dash border. Lines inside fenced code blocks and lines indented four
// or more spaces never open a region, so code samples keep their ASCII art.
//
// The opening border fixes the column boundaries: the byte offset of every
// + becomes a boundary, and all later lines are checked at those exact
// offsets. Each boundary segment also yields a column spec: a width hint
// proportional to the segment length and an alignment taken from colon
// markers (:--- left, ---: right, :--: center).
//
// # Row structure
//
// Dash borders inside the region separate row groups; the lines of one
// group form one logical row, with multi-line cell content joined by
// spaces and blank cell lines starting a new paragraph. A missing | at an
// interior boundary merges adjacent columns into one spanning cell. An
// all-space segment in an inner border leaves the cell above open, turning
// it into a row-spanning cell. A single all-equals border splits head rows
// from body rows; without one, every row belongs to the body.
//
// # Errors and fallback
//
// Structural problems (an unterminated region, ragged column markers, a
// second header separator, mixed border fills) are reported as
// [StructureError] values carrying the 1-based source line. A broken
// region produces no table: its lines stay in the output text unchanged.
//
// # Output
//
// Scan returns the parsed tables together with a residual text in which
// each table region is replaced by a placeholder paragraph padded with
// blank lines, so the residual has exactly the same line count as the
// input and downstream diagnostics keep their line numbers. Cell content
// is returned raw; the caller decides how to parse it. Scanning the
// residual again finds nothing.
package tables
