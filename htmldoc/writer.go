// Package htmldoc provides HTML document rendering.
package htmldoc

import (
	"sort"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/tsawler/typeset/model"
	"github.com/tsawler/typeset/style"
)

// Write renders doc as a complete standalone HTML page styled by sheet. The
// document is read, never modified, and the same document and sheet always
// produce identical bytes.
func Write(doc *model.Document, sheet style.Sheet) ([]byte, error) {
	w := &writer{sheet: sheet}
	w.page(doc)
	if w.err != nil {
		return nil, w.err
	}
	return []byte(w.sb.String()), nil
}

// writer accumulates output and remembers the first rendering error.
type writer struct {
	sb    strings.Builder
	sheet style.Sheet
	err   error
}

func (w *writer) fail(err error) {
	if w.err == nil {
		w.err = err
	}
}

// raw appends markup verbatim; text appends content with HTML escaping.
func (w *writer) raw(s string)  { w.sb.WriteString(s) }
func (w *writer) text(s string) { w.sb.WriteString(html.EscapeString(s)) }

func (w *writer) page(doc *model.Document) {
	meta := doc.Meta

	w.raw("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"UTF-8\">\n")
	if meta.Title != "" {
		w.raw("<title>")
		w.text(meta.Title)
		w.raw("</title>\n")
	}
	w.raw("<style>\n")
	w.raw(pageCSS(w.sheet))
	w.raw("</style>\n")
	w.raw("</head>\n<body>\n")

	if doc.HasTitleBlock() {
		w.titleBlock(meta)
	}
	for _, b := range doc.Blocks {
		w.block(b)
	}

	w.raw("</body>\n</html>")
}

// titleBlock writes the metadata header section that precedes the body
// content.
func (w *writer) titleBlock(meta model.Metadata) {
	w.raw("<header>\n")
	if meta.Title != "" {
		w.raw("<h1 class=\"title\">")
		w.text(meta.Title)
		w.raw("</h1>\n")
	}
	if meta.Subtitle != "" {
		w.raw("<p class=\"subtitle\">")
		w.text(meta.Subtitle)
		w.raw("</p>\n")
	}
	if meta.Author != "" {
		w.raw("<p class=\"author\">")
		w.text(meta.Author)
		w.raw("</p>\n")
	}
	if meta.Date != "" {
		w.raw("<p class=\"date\">")
		w.text(meta.Date)
		w.raw("</p>\n")
	}
	w.raw("</header>\n")
}

func (w *writer) blocks(blocks []model.Block) {
	for _, b := range blocks {
		w.block(b)
	}
}

func (w *writer) block(b model.Block) {
	if w.err != nil {
		return
	}
	switch v := b.(type) {
	case *model.Plain:
		w.raw("<p>")
		w.inlines(v.Inlines)
		w.raw("</p>\n")

	case *model.Paragraph:
		w.raw("<p>")
		w.inlines(v.Inlines)
		w.raw("</p>\n")

	case *model.Header:
		w.heading(v)

	case *model.CodeBlock:
		w.codeBlock(v)

	case *model.BlockQuote:
		w.raw("<blockquote>\n")
		w.blocks(v.Blocks)
		w.raw("</blockquote>\n")

	case *model.BulletList:
		w.raw("<ul>\n")
		w.listItems(v.Items)
		w.raw("</ul>\n")

	case *model.OrderedList:
		if v.Start == 1 {
			w.raw("<ol>\n")
		} else {
			w.raw("<ol start=\"" + strconv.Itoa(v.Start) + "\">\n")
		}
		w.listItems(v.Items)
		w.raw("</ol>\n")

	case *model.DefinitionList:
		w.raw("<dl>\n")
		for _, item := range v.Items {
			w.raw("<dt>")
			w.inlines(item.Term)
			w.raw("</dt>\n")
			for _, def := range item.Definitions {
				w.raw("<dd>")
				w.tightBlocks(def)
				w.raw("</dd>\n")
			}
		}
		w.raw("</dl>\n")

	case *model.Table:
		w.table(v)

	case *model.HorizontalRule:
		w.raw("<hr>\n")

	case *model.PageBreak:
		w.raw("<div style=\"page-break-after: always;\"></div>\n")

	case *model.RawBlock:
		if v.Format == "html" {
			w.raw(v.Text)
			if !strings.HasSuffix(v.Text, "\n") {
				w.raw("\n")
			}
		}

	case *model.Div:
		w.raw("<div" + attrString(v.Attr) + ">\n")
		w.blocks(v.Blocks)
		w.raw("</div>\n")

	case *model.LineBlock:
		w.raw("<div class=\"line-block\">\n")
		for _, line := range v.Lines {
			w.inlines(line)
			w.raw("<br>\n")
		}
		w.raw("</div>\n")

	default:
		w.fail(&model.UnsupportedConstructError{Construct: b.Type().String(), Format: "html"})
	}
}

func (w *writer) heading(h *model.Header) {
	level := h.Level
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	tag := "h" + strconv.Itoa(level)

	w.raw("<" + tag)
	if h.ID != "" {
		w.raw(" id=\"")
		w.text(h.ID)
		w.raw("\"")
	}
	w.raw(">")
	w.inlines(h.Inlines)
	w.raw("</" + tag + ">\n")
}

func (w *writer) codeBlock(cb *model.CodeBlock) {
	if w.sheet.Highlight != "" {
		if frag, ok := highlightCode(cb, w.sheet.Highlight); ok {
			w.raw(frag)
			return
		}
	}
	if cb.Language == "" {
		w.raw("<pre><code>")
	} else {
		w.raw("<pre><code class=\"language-")
		w.text(cb.Language)
		w.raw("\">")
	}
	w.text(cb.Text)
	w.raw("</code></pre>\n")
}

// listItems writes the items of a bullet or ordered list.
func (w *writer) listItems(items [][]model.Block) {
	for _, item := range items {
		w.raw("<li>")
		w.tightBlocks(item)
		w.raw("</li>\n")
	}
}

// tightBlocks renders a block sequence inline when it is a single paragraph,
// and as full blocks otherwise. Used for list items, definitions, and table
// cells so simple content stays on one line.
func (w *writer) tightBlocks(blocks []model.Block) {
	if len(blocks) == 1 {
		switch v := blocks[0].(type) {
		case *model.Paragraph:
			w.inlines(v.Inlines)
			return
		case *model.Plain:
			w.inlines(v.Inlines)
			return
		}
	}
	w.blocks(blocks)
}

func (w *writer) table(t *model.Table) {
	w.raw("<table>\n")
	if len(t.Caption) > 0 {
		w.raw("<caption>")
		w.inlines(t.Caption)
		w.raw("</caption>\n")
	}
	w.colgroup(t.ColSpecs)
	if len(t.Head) > 0 {
		w.raw("<thead>\n")
		w.tableRows(t.Head, t.ColSpecs, "th")
		w.raw("</thead>\n")
	}
	if len(t.Body) > 0 {
		w.raw("<tbody>\n")
		w.tableRows(t.Body, t.ColSpecs, "td")
		w.raw("</tbody>\n")
	}
	if len(t.Foot) > 0 {
		w.raw("<tfoot>\n")
		w.tableRows(t.Foot, t.ColSpecs, "td")
		w.raw("</tfoot>\n")
	}
	w.raw("</table>\n")
}

// colgroup emits column width hints as percentages. Nothing is emitted when
// no column carries a hint.
func (w *writer) colgroup(specs []model.ColSpec) {
	hinted := false
	for _, spec := range specs {
		if spec.Width > 0 {
			hinted = true
			break
		}
	}
	if !hinted {
		return
	}
	w.raw("<colgroup>\n")
	for _, spec := range specs {
		if spec.Width > 0 {
			w.raw("<col style=\"width: " + percent(spec.Width) + ";\">\n")
		} else {
			w.raw("<col>\n")
		}
	}
	w.raw("</colgroup>\n")
}

// tableRows writes one row group. Cell alignment comes from the column
// specs, so the walk tracks each cell's starting column and skips columns
// still covered by row spans from earlier rows.
func (w *writer) tableRows(rows []model.Row, specs []model.ColSpec, tag string) {
	carry := make([]int, len(specs))
	for _, row := range rows {
		w.raw("<tr>")
		col := 0
		for _, cell := range row.Cells {
			for col < len(carry) && carry[col] > 0 {
				carry[col]--
				col++
			}
			align := model.AlignDefault
			if col < len(specs) {
				align = specs[col].Align
			}
			w.tableCell(cell, align, tag)

			span := cell.ColSpan
			if span < 1 {
				span = 1
			}
			if cell.RowSpan > 1 {
				for c := col; c < col+span && c < len(carry); c++ {
					carry[c] = cell.RowSpan - 1
				}
			}
			col += span
		}
		for col < len(carry) && carry[col] > 0 {
			carry[col]--
			col++
		}
		w.raw("</tr>\n")
	}
}

func (w *writer) tableCell(cell model.Cell, align model.Alignment, tag string) {
	w.raw("<" + tag)
	w.raw(alignStyle(align))
	if cell.RowSpan > 1 {
		w.raw(" rowspan=\"" + strconv.Itoa(cell.RowSpan) + "\"")
	}
	if cell.ColSpan > 1 {
		w.raw(" colspan=\"" + strconv.Itoa(cell.ColSpan) + "\"")
	}
	w.raw(">")
	w.tightBlocks(cell.Blocks)
	w.raw("</" + tag + ">")
}

func (w *writer) inlines(inlines []model.Inline) {
	for _, in := range inlines {
		w.inline(in)
	}
}

func (w *writer) inline(in model.Inline) {
	if w.err != nil {
		return
	}
	switch v := in.(type) {
	case *model.Str:
		w.text(v.Text)

	case *model.Space:
		w.raw(" ")

	case *model.SoftBreak:
		w.raw("\n")

	case *model.LineBreak:
		w.raw("<br>\n")

	case *model.Emph:
		w.wrap("em", v.Inlines)

	case *model.Strong:
		w.wrap("strong", v.Inlines)

	case *model.Strikeout:
		w.wrap("del", v.Inlines)

	case *model.Superscript:
		w.wrap("sup", v.Inlines)

	case *model.Subscript:
		w.wrap("sub", v.Inlines)

	case *model.SmallCaps:
		w.raw("<span style=\"font-variant: small-caps;\">")
		w.inlines(v.Inlines)
		w.raw("</span>")

	case *model.Quoted:
		left, right := "&#8216;", "&#8217;"
		if v.Quote == model.DoubleQuote {
			left, right = "&#8220;", "&#8221;"
		}
		w.raw(left)
		w.inlines(v.Inlines)
		w.raw(right)

	case *model.Code:
		w.raw("<code>")
		w.text(v.Text)
		w.raw("</code>")

	case *model.Math:
		if v.Display {
			w.raw("\\[")
			w.text(v.Text)
			w.raw("\\]")
		} else {
			w.raw("\\(")
			w.text(v.Text)
			w.raw("\\)")
		}

	case *model.Link:
		w.raw("<a href=\"")
		w.text(v.Target)
		w.raw("\"")
		if v.Title != "" {
			w.raw(" title=\"")
			w.text(v.Title)
			w.raw("\"")
		}
		w.raw(">")
		w.inlines(v.Inlines)
		w.raw("</a>")

	case *model.Image:
		w.raw("<img src=\"")
		w.text(v.Target)
		w.raw("\" alt=\"")
		w.text(model.Text(v.Inlines))
		w.raw("\"")
		if v.Title != "" {
			w.raw(" title=\"")
			w.text(v.Title)
			w.raw("\"")
		}
		w.raw(">")

	case *model.Note:
		w.raw("<span class=\"footnote\">")
		w.blocks(v.Blocks)
		w.raw("</span>")

	case *model.Span:
		w.raw("<span" + attrString(v.Attr) + ">")
		w.inlines(v.Inlines)
		w.raw("</span>")

	case *model.RawInline:
		if v.Format == "html" {
			w.raw(v.Text)
		}

	default:
		w.fail(&model.UnsupportedConstructError{Construct: in.Type().String(), Format: "html"})
	}
}

func (w *writer) wrap(tag string, inlines []model.Inline) {
	w.raw("<" + tag + ">")
	w.inlines(inlines)
	w.raw("</" + tag + ">")
}

// alignStyle returns the inline style for a non-default cell alignment.
func alignStyle(align model.Alignment) string {
	switch align {
	case model.AlignLeft:
		return " style=\"text-align: left;\""
	case model.AlignRight:
		return " style=\"text-align: right;\""
	case model.AlignCenter:
		return " style=\"text-align: center;\""
	default:
		return ""
	}
}

// attrString renders an attribute set as HTML attributes. Key-value pairs
// are written in sorted key order so output stays deterministic.
func attrString(attr model.Attr) string {
	var sb strings.Builder
	if attr.ID != "" {
		sb.WriteString(" id=\"")
		sb.WriteString(html.EscapeString(attr.ID))
		sb.WriteString("\"")
	}
	if len(attr.Classes) > 0 {
		escaped := make([]string, len(attr.Classes))
		for i, c := range attr.Classes {
			escaped[i] = html.EscapeString(c)
		}
		sb.WriteString(" class=\"")
		sb.WriteString(strings.Join(escaped, " "))
		sb.WriteString("\"")
	}
	if len(attr.KeyVals) > 0 {
		keys := make([]string, 0, len(attr.KeyVals))
		for k := range attr.KeyVals {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			sb.WriteString(" ")
			sb.WriteString(html.EscapeString(k))
			sb.WriteString("=\"")
			sb.WriteString(html.EscapeString(attr.KeyVals[k]))
			sb.WriteString("\"")
		}
	}
	return sb.String()
}

// percent formats a width fraction as a CSS percentage with at most two
// decimal places.
func percent(frac float64) string {
	rounded := float64(int(frac*10000+0.5)) / 100
	return strconv.FormatFloat(rounded, 'f', -1, 64) + "%"
}
