package docx

import "github.com/tsawler/typeset/model"

// rowKind selects the shading and run styling for a table row group.
type rowKind int

const (
	rowKindHead rowKind = iota
	rowKindBody
	rowKindFoot
)

func (w *writer) table(t *model.Table) {
	cols := len(t.ColSpecs)
	if cols < 1 {
		cols = 1
	}
	widths := columnWidths(t.ColSpecs, cols)

	var rows []*tableRowXML
	rows = append(rows, w.sectionRows(t.Head, widths, rowKindHead)...)
	rows = append(rows, w.sectionRows(t.Body, widths, rowKindBody)...)
	rows = append(rows, w.sectionRows(t.Foot, widths, rowKindFoot)...)
	if len(rows) == 0 {
		rows = append(rows, &tableRowXML{Cells: []*tableCellXML{{
			Props:      &cellPropsXML{Width: &widthXML{W: tableWidth, Type: "dxa"}, Borders: w.tableBorders()},
			Paragraphs: []*paragraphXML{{}},
		}}})
	}

	grid := make([]gridColXML, cols)
	for i, wd := range widths {
		grid[i] = gridColXML{W: wd}
	}

	w.add(&tableXML{
		Props: tblPropsXML{
			Width:   &widthXML{W: tableWidth, Type: "dxa"},
			Borders: w.tableBorders(),
			Layout:  &tblLayoutXML{Type: "fixed"},
		},
		Grid: tblGridXML{Cols: grid},
		Rows: rows,
	})
	// Breathing room between the table and the following block.
	w.add(&paragraphXML{Props: &paraPropsXML{Spacing: &spacingXML{After: 120}}})
}

// columnWidths distributes the table width over the columns, proportional to
// the width hints when any are present and evenly otherwise. The last column
// absorbs rounding leftovers so the grid always sums to the table width.
func columnWidths(specs []model.ColSpec, cols int) []int {
	widths := make([]int, cols)
	total := 0.0
	for _, spec := range specs {
		total += spec.Width
	}
	if total <= 0 {
		each := tableWidth / cols
		for i := range widths {
			widths[i] = each
		}
		widths[cols-1] = tableWidth - each*(cols-1)
		return widths
	}
	used := 0
	for i := range widths {
		var frac float64
		if i < len(specs) {
			frac = specs[i].Width / total
		}
		widths[i] = int(frac*float64(tableWidth) + 0.5)
		used += widths[i]
	}
	widths[cols-1] += tableWidth - used
	return widths
}

// sectionRows lowers one row group. A cell spanning rows emits a vMerge
// restart marker, and the grid positions it covers in later rows receive
// continuation cells, the form Word requires for vertical merges.
func (w *writer) sectionRows(rows []model.Row, widths []int, kind rowKind) []*tableRowXML {
	cols := len(widths)
	carry := make([]int, cols)     // rows still covered per origin column
	carrySpan := make([]int, cols) // column span of the covering cell
	var out []*tableRowXML

	for i, row := range rows {
		fill := w.rowFill(kind, i)
		tr := &tableRowXML{}
		if kind == rowKindHead {
			tr.Props = &rowPropsXML{Header: &flagXML{}}
		}
		pos := 0
		next := 0
		for pos < cols {
			if carry[pos] > 0 {
				span := carrySpan[pos]
				tr.Cells = append(tr.Cells, w.continuationCell(pos, span, widths, fill))
				carry[pos]--
				pos += span
				continue
			}
			if next >= len(row.Cells) {
				break
			}
			cell := row.Cells[next]
			next++
			span := cell.ColSpan
			if span < 1 {
				span = 1
			}
			if pos+span > cols {
				span = cols - pos
			}
			tr.Cells = append(tr.Cells, w.contentCell(cell, pos, span, widths, kind, fill))
			if cell.RowSpan > 1 {
				carry[pos] = cell.RowSpan - 1
				carrySpan[pos] = span
			}
			pos += span
		}
		out = append(out, tr)
	}
	return out
}

func (w *writer) rowFill(kind rowKind, row int) string {
	switch kind {
	case rowKindHead:
		return w.sheet.TableHeaderFill
	case rowKindBody:
		if row%2 == 1 {
			return w.sheet.TableStripeFill
		}
		return "FFFFFF"
	default:
		return ""
	}
}

func (w *writer) contentCell(cell model.Cell, pos, span int, widths []int, kind rowKind, fill string) *tableCellXML {
	rs := runStyle{size: w.baseSize()}
	if kind == rowKindHead {
		rs.bold = true
		rs.color = w.sheet.TableHeaderText
	}
	props := &cellPropsXML{
		Width:   &widthXML{W: spanWidth(widths, pos, span), Type: "dxa"},
		Borders: w.tableBorders(),
	}
	if span > 1 {
		props.GridSpan = &intValXML{Val: span}
	}
	if cell.RowSpan > 1 {
		props.VMerge = &vMergeXML{Val: "restart"}
	}
	if fill != "" {
		props.Shading = &shadingXML{Val: "clear", Color: "auto", Fill: fill}
	}
	return &tableCellXML{
		Props:      props,
		Paragraphs: []*paragraphXML{{Content: []any{w.textRun(blocksText(cell.Blocks), rs)}}},
	}
}

// continuationCell fills a grid position covered by a vertical merge opened
// in an earlier row. Cells must hold at least one paragraph even when empty.
func (w *writer) continuationCell(pos, span int, widths []int, fill string) *tableCellXML {
	props := &cellPropsXML{
		Width:   &widthXML{W: spanWidth(widths, pos, span), Type: "dxa"},
		VMerge:  &vMergeXML{},
		Borders: w.tableBorders(),
	}
	if span > 1 {
		props.GridSpan = &intValXML{Val: span}
	}
	if fill != "" {
		props.Shading = &shadingXML{Val: "clear", Color: "auto", Fill: fill}
	}
	return &tableCellXML{Props: props, Paragraphs: []*paragraphXML{{}}}
}

func spanWidth(widths []int, pos, span int) int {
	total := 0
	for c := pos; c < pos+span && c < len(widths); c++ {
		total += widths[c]
	}
	return total
}

func (w *writer) tableBorders() *tblBordersXML {
	b := borderXML{Val: "single", Size: borderSize, Color: w.sheet.TableBorderColor}
	return &tblBordersXML{Top: b, Left: b, Bottom: b, Right: b, InsideH: b, InsideV: b}
}
