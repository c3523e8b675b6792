package markdown

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/tsawler/typeset/model"
)

// converter lowers a goldmark syntax tree into document model blocks
type converter struct {
	source []byte
	ids    *idMaker
	notes  map[int]*east.Footnote
}

func newConverter(source []byte, ids *idMaker) *converter {
	return &converter{
		source: source,
		ids:    ids,
		notes:  make(map[int]*east.Footnote),
	}
}

// convert processes a parsed document root. Footnote bodies live in a
// trailing list node; they are indexed first so links can inline their
// content at the use site.
func (c *converter) convert(root ast.Node) []model.Block {
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		list, ok := n.(*east.FootnoteList)
		if !ok {
			continue
		}
		for fn := list.FirstChild(); fn != nil; fn = fn.NextSibling() {
			if f, ok := fn.(*east.Footnote); ok {
				c.notes[f.Index] = f
			}
		}
	}
	return c.blocks(root)
}

func (c *converter) blocks(parent ast.Node) []model.Block {
	var out []model.Block
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		if b := c.block(n); b != nil {
			out = append(out, b)
		}
	}
	return out
}

func (c *converter) block(n ast.Node) model.Block {
	switch v := n.(type) {
	case *ast.Heading:
		inlines := c.inlines(v)
		return &model.Header{
			Level:   v.Level,
			ID:      c.ids.make(model.Text(inlines)),
			Inlines: inlines,
		}
	case *ast.Paragraph:
		return &model.Paragraph{Inlines: c.inlines(v)}
	case *ast.TextBlock:
		return &model.Plain{Inlines: c.inlines(v)}
	case *ast.Blockquote:
		return &model.BlockQuote{Blocks: c.blocks(v)}
	case *ast.List:
		return c.list(v)
	case *ast.FencedCodeBlock:
		return &model.CodeBlock{
			Language: string(v.Language(c.source)),
			Text:     c.segmentsText(v.Lines()),
		}
	case *ast.CodeBlock:
		return &model.CodeBlock{Text: c.segmentsText(v.Lines())}
	case *ast.ThematicBreak:
		return &model.HorizontalRule{}
	case *ast.HTMLBlock:
		return &model.RawBlock{Format: "html", Text: c.htmlBlockText(v)}
	case *east.Table:
		return c.pipeTable(v)
	case *east.DefinitionList:
		return c.definitionList(v)
	default:
		// The footnote list is consumed through the index; anything else
		// unrecognized is dropped.
		return nil
	}
}

func (c *converter) list(v *ast.List) model.Block {
	items := make([][]model.Block, 0, v.ChildCount())
	for it := v.FirstChild(); it != nil; it = it.NextSibling() {
		items = append(items, c.blocks(it))
	}
	if v.IsOrdered() {
		start := v.Start
		if start == 0 {
			start = 1
		}
		return &model.OrderedList{Start: start, Style: model.Decimal, Items: items}
	}
	return &model.BulletList{Items: items}
}

// pipeTable converts a GFM pipe table. The first row is the header; cells
// never span.
func (c *converter) pipeTable(v *east.Table) model.Block {
	table := &model.Table{}
	for _, a := range v.Alignments {
		table.ColSpecs = append(table.ColSpecs, model.ColSpec{Align: pipeAlignment(a)})
	}
	for n := v.FirstChild(); n != nil; n = n.NextSibling() {
		switch n.(type) {
		case *east.TableHeader:
			table.Head = append(table.Head, c.tableRow(n))
		case *east.TableRow:
			table.Body = append(table.Body, c.tableRow(n))
		}
	}
	return table
}

func (c *converter) tableRow(row ast.Node) model.Row {
	var out model.Row
	for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
		out.Cells = append(out.Cells, model.Cell{
			Blocks:  []model.Block{&model.Plain{Inlines: c.inlines(cell)}},
			ColSpan: 1,
			RowSpan: 1,
		})
	}
	return out
}

func pipeAlignment(a east.Alignment) model.Alignment {
	switch a {
	case east.AlignLeft:
		return model.AlignLeft
	case east.AlignRight:
		return model.AlignRight
	case east.AlignCenter:
		return model.AlignCenter
	default:
		return model.AlignDefault
	}
}

func (c *converter) definitionList(v *east.DefinitionList) model.Block {
	list := &model.DefinitionList{}
	for n := v.FirstChild(); n != nil; n = n.NextSibling() {
		switch d := n.(type) {
		case *east.DefinitionTerm:
			list.Items = append(list.Items, model.Definition{Term: c.inlines(d)})
		case *east.DefinitionDescription:
			if len(list.Items) == 0 {
				list.Items = append(list.Items, model.Definition{})
			}
			last := &list.Items[len(list.Items)-1]
			last.Definitions = append(last.Definitions, c.blocks(d))
		}
	}
	return list
}

func (c *converter) htmlBlockText(v *ast.HTMLBlock) string {
	var sb strings.Builder
	sb.WriteString(c.segmentsText(v.Lines()))
	if v.HasClosure() {
		sb.Write(v.ClosureLine.Value(c.source))
	}
	return sb.String()
}

func (c *converter) segmentsText(lines *text.Segments) string {
	var sb strings.Builder
	for i := 0; i < lines.Len(); i++ {
		sb.Write(lines.At(i).Value(c.source))
	}
	return sb.String()
}

func (c *converter) inlines(parent ast.Node) []model.Inline {
	var out []model.Inline
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		out = append(out, c.inline(n)...)
	}
	return out
}

func (c *converter) inline(n ast.Node) []model.Inline {
	switch v := n.(type) {
	case *ast.Text:
		return c.textNode(v)
	case *ast.String:
		return []model.Inline{&model.Str{Text: string(v.Value)}}
	case *ast.CodeSpan:
		return []model.Inline{&model.Code{Text: c.nodeText(v)}}
	case *ast.Emphasis:
		if v.Level >= 2 {
			return []model.Inline{&model.Strong{Inlines: c.inlines(v)}}
		}
		return []model.Inline{&model.Emph{Inlines: c.inlines(v)}}
	case *east.Strikethrough:
		return []model.Inline{&model.Strikeout{Inlines: c.inlines(v)}}
	case *ast.Link:
		return []model.Inline{&model.Link{
			Inlines: c.inlines(v),
			Target:  string(v.Destination),
			Title:   string(v.Title),
		}}
	case *ast.AutoLink:
		return c.autoLink(v)
	case *ast.Image:
		return []model.Inline{&model.Image{
			Inlines: c.inlines(v),
			Target:  string(v.Destination),
			Title:   string(v.Title),
		}}
	case *ast.RawHTML:
		var sb strings.Builder
		for i := 0; i < v.Segments.Len(); i++ {
			sb.Write(v.Segments.At(i).Value(c.source))
		}
		return []model.Inline{&model.RawInline{Format: "html", Text: sb.String()}}
	case *east.TaskCheckBox:
		if v.IsChecked {
			return []model.Inline{&model.Str{Text: "[x] "}}
		}
		return []model.Inline{&model.Str{Text: "[ ] "}}
	case *east.FootnoteLink:
		return c.footnoteLink(v)
	case *east.FootnoteBacklink:
		return nil
	default:
		return nil
	}
}

func (c *converter) textNode(v *ast.Text) []model.Inline {
	out := make([]model.Inline, 0, 2)
	if s := string(v.Segment.Value(c.source)); s != "" {
		out = append(out, &model.Str{Text: s})
	}
	switch {
	case v.HardLineBreak():
		out = append(out, &model.LineBreak{})
	case v.SoftLineBreak():
		out = append(out, &model.SoftBreak{})
	}
	return out
}

// nodeText concatenates the literal text beneath an inline node
func (c *converter) nodeText(n ast.Node) string {
	var sb strings.Builder
	for ch := n.FirstChild(); ch != nil; ch = ch.NextSibling() {
		if t, ok := ch.(*ast.Text); ok {
			sb.Write(t.Segment.Value(c.source))
		}
	}
	return sb.String()
}

func (c *converter) autoLink(v *ast.AutoLink) []model.Inline {
	label := string(v.Label(c.source))
	url := string(v.URL(c.source))
	if v.AutoLinkType == ast.AutoLinkEmail && !strings.HasPrefix(url, "mailto:") {
		url = "mailto:" + url
	}
	return []model.Inline{&model.Link{
		Inlines: []model.Inline{&model.Str{Text: label}},
		Target:  url,
	}}
}

func (c *converter) footnoteLink(v *east.FootnoteLink) []model.Inline {
	fn, ok := c.notes[v.Index]
	if !ok {
		return nil
	}
	return []model.Inline{&model.Note{Blocks: c.blocks(fn)}}
}
