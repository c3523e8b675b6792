package model

import (
	"fmt"
	"strings"
)

// Alignment represents horizontal cell alignment
type Alignment int

const (
	AlignDefault Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)

func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "default"
	}
}

// ColSpec describes one table column: its alignment and an optional width
// hint as a fraction of the table width. Width 0 means unset.
type ColSpec struct {
	Align Alignment
	Width float64
}

// Cell represents a table cell. ColSpan and RowSpan of 0 are treated as 1.
type Cell struct {
	Blocks  []Block
	ColSpan int
	RowSpan int
}

// Row represents one table row
type Row struct {
	Cells []Cell
}

// Table represents a table with column specs and head/body/foot row groups.
// ColSpecs is fixed when the table is built; writers only read it.
type Table struct {
	Caption  []Inline
	ColSpecs []ColSpec
	Head     []Row
	Body     []Row
	Foot     []Row
}

func (t *Table) Type() BlockType { return BlockTypeTable }
func (t *Table) block()          {}

// ColCount returns the number of columns
func (t *Table) ColCount() int {
	return len(t.ColSpecs)
}

// RowCount returns the total number of rows across head, body, and foot
func (t *Table) RowCount() int {
	return len(t.Head) + len(t.Body) + len(t.Foot)
}

// AllRows returns head, body, and foot rows concatenated in reading order
func (t *Table) AllRows() []Row {
	rows := make([]Row, 0, t.RowCount())
	rows = append(rows, t.Head...)
	rows = append(rows, t.Body...)
	rows = append(rows, t.Foot...)
	return rows
}

// Validate checks that the span bookkeeping is consistent: within each of
// the head, body, and foot sections, every grid row must be exactly covered
// by its cells' column spans plus the columns carried down by row spans from
// earlier rows.
func (t *Table) Validate() error {
	cols := t.ColCount()
	if cols == 0 {
		return fmt.Errorf("table has no column specs")
	}
	for _, section := range []struct {
		name string
		rows []Row
	}{
		{"head", t.Head},
		{"body", t.Body},
		{"foot", t.Foot},
	} {
		if err := validateSection(section.rows, cols); err != nil {
			return fmt.Errorf("%s: %w", section.name, err)
		}
	}
	return nil
}

func validateSection(rows []Row, cols int) error {
	carry := make([]int, cols)
	for i, row := range rows {
		pos := 0
		next := 0
		for pos < cols {
			if carry[pos] > 0 {
				carry[pos]--
				pos++
				continue
			}
			if next >= len(row.Cells) {
				return fmt.Errorf("row %d covers %d of %d columns", i+1, pos, cols)
			}
			cell := row.Cells[next]
			next++
			span := cell.ColSpan
			if span < 1 {
				span = 1
			}
			if pos+span > cols {
				return fmt.Errorf("row %d overflows %d columns", i+1, cols)
			}
			rowSpan := cell.RowSpan
			if rowSpan < 1 {
				rowSpan = 1
			}
			for c := pos; c < pos+span; c++ {
				if carry[c] > 0 {
					return fmt.Errorf("row %d column %d collides with a row span from above", i+1, c+1)
				}
				if rowSpan > 1 {
					carry[c] = rowSpan - 1
				}
			}
			pos += span
		}
		if next < len(row.Cells) {
			return fmt.Errorf("row %d has %d cells beyond the %d columns", i+1, len(row.Cells)-next, cols)
		}
	}
	return nil
}

// PlainText returns the table content as tab-separated rows
func (t *Table) PlainText() string {
	var sb strings.Builder
	for _, row := range t.AllRows() {
		for j, cell := range row.Cells {
			sb.WriteString(strings.ReplaceAll(blocksText(cell.Blocks), "\n", " "))
			if j < len(row.Cells)-1 {
				sb.WriteString("\t")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// ToMarkdown converts the table to a pipe table. Spans are flattened and
// multi-line cell content is joined; the first row group present acts as the
// header row.
func (t *Table) ToMarkdown() string {
	rows := t.AllRows()
	if len(rows) == 0 {
		return ""
	}

	var sb strings.Builder

	writeRow := func(row Row) {
		for _, cell := range row.Cells {
			sb.WriteString("| ")
			sb.WriteString(strings.ReplaceAll(blocksText(cell.Blocks), "\n", " "))
			sb.WriteString(" ")
		}
		sb.WriteString("|\n")
	}

	writeRow(rows[0])
	for j := 0; j < t.ColCount(); j++ {
		switch t.ColSpecs[j].Align {
		case AlignLeft:
			sb.WriteString("|:--")
		case AlignCenter:
			sb.WriteString("|:-:")
		case AlignRight:
			sb.WriteString("|--:")
		default:
			sb.WriteString("|---")
		}
	}
	sb.WriteString("|\n")
	for _, row := range rows[1:] {
		writeRow(row)
	}

	return sb.String()
}

// ToCSV converts the table to CSV format
func (t *Table) ToCSV() string {
	var sb strings.Builder
	for _, row := range t.AllRows() {
		for j, cell := range row.Cells {
			text := strings.ReplaceAll(blocksText(cell.Blocks), "\n", " ")
			if strings.ContainsAny(text, ",\"\n") {
				text = "\"" + strings.ReplaceAll(text, "\"", "\"\"") + "\""
			}
			sb.WriteString(text)
			if j < len(row.Cells)-1 {
				sb.WriteString(",")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
