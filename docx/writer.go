// Package docx renders documents to DOCX, the Office Open XML word
// processing format. The output is a complete OPC container: document part,
// styles, relationships, content types, core properties, and any embedded
// media.
package docx

import (
	"strconv"
	"strings"

	"github.com/tsawler/typeset/model"
	"github.com/tsawler/typeset/style"
)

// Layout constants, in twentieths of a point (dxa) unless noted.
const (
	pageWidth   = 12240
	pageHeight  = 15840
	pageMargin  = 1440
	tableWidth  = 9000
	listIndent  = 720
	quoteIndent = 720
	bodyLine    = 276 // 1.15 line spacing
	borderSize  = 6   // eighths of a point
	ruleDashes  = 40
)

// Write renders doc as a DOCX archive styled by sheet. The document is only
// read, and the same document and sheet always produce identical bytes.
func Write(doc *model.Document, sheet style.Sheet) ([]byte, error) {
	w := newWriter(sheet)
	w.titleBlock(doc.Meta)
	for _, b := range doc.Blocks {
		w.block(b)
	}
	if w.err != nil {
		return nil, w.err
	}
	return w.pack(doc.Meta)
}

// writer lowers the document model to WordprocessingML structures and
// accumulates the package-level state (relationships, media, counters) the
// container needs.
type writer struct {
	sheet style.Sheet
	body  []any

	rels    []relationshipXML // document relationships beyond the styles part
	media   []mediaFile
	nextRel int // next relationship number; rId1 is styles.xml
	marks   int // bookmark id counter
	images  int // drawing id counter

	err error
}

type mediaFile struct {
	name string // file name under word/media/
	ext  string
	data []byte
}

func newWriter(sheet style.Sheet) *writer {
	return &writer{sheet: sheet, nextRel: 2}
}

func (w *writer) fail(err error) {
	if w.err == nil {
		w.err = err
	}
}

func (w *writer) add(item any) {
	w.body = append(w.body, item)
}

func (w *writer) addRelationship(relType, target, mode string) string {
	id := "rId" + strconv.Itoa(w.nextRel)
	w.nextRel++
	w.rels = append(w.rels, relationshipXML{ID: id, Type: relType, Target: target, TargetMode: mode})
	return id
}

// baseSize is the document font size in half-points.
func (w *writer) baseSize() int {
	return style.HalfPoints(w.sheet.BaseFontSize)
}

func (w *writer) titleBlock(meta model.Metadata) {
	center := &valXML{Val: "center"}
	if meta.Title != "" {
		w.add(&paragraphXML{
			Props:   &paraPropsXML{Spacing: &spacingXML{After: 60}, Justify: center},
			Content: []any{w.textRun(meta.Title, runStyle{size: style.HalfPoints(w.sheet.TitleSize()), bold: true})},
		})
	}
	if meta.Subtitle != "" {
		w.add(&paragraphXML{
			Props:   &paraPropsXML{Spacing: &spacingXML{After: 60}, Justify: center},
			Content: []any{w.textRun(meta.Subtitle, runStyle{size: style.HalfPoints(w.sheet.SubtitleSize())})},
		})
	}
	if meta.Author != "" {
		w.add(&paragraphXML{
			Props:   &paraPropsXML{Spacing: &spacingXML{After: 40}, Justify: center},
			Content: []any{w.textRun("Author: "+meta.Author, runStyle{size: w.baseSize()})},
		})
	}
	if meta.Date != "" {
		w.add(&paragraphXML{
			Props:   &paraPropsXML{Spacing: &spacingXML{After: 200}, Justify: center},
			Content: []any{w.textRun(meta.Date, runStyle{size: w.baseSize()})},
		})
	}
}

func (w *writer) block(b model.Block) {
	if w.err != nil {
		return
	}
	switch v := b.(type) {
	case *model.Plain:
		w.paragraph(v.Inlines)
	case *model.Paragraph:
		w.paragraph(v.Inlines)
	case *model.Header:
		w.heading(v)
	case *model.CodeBlock:
		w.codeBlock(v)
	case *model.BlockQuote:
		for _, inner := range v.Blocks {
			w.quoteBlock(inner)
		}
	case *model.BulletList:
		for _, item := range v.Items {
			w.listItem("• " + blocksText(item))
		}
	case *model.OrderedList:
		start := v.Start
		if start < 1 {
			start = 1
		}
		for i, item := range v.Items {
			w.listItem(strconv.Itoa(start+i) + ". " + blocksText(item))
		}
	case *model.DefinitionList:
		w.definitionList(v)
	case *model.Table:
		w.table(v)
	case *model.HorizontalRule:
		w.add(&paragraphXML{
			Props:   &paraPropsXML{Spacing: &spacingXML{Before: 120, After: 120}, Justify: &valXML{Val: "center"}},
			Content: []any{w.textRun(strings.Repeat("—", ruleDashes), runStyle{size: w.baseSize()})},
		})
	case *model.PageBreak:
		w.add(&paragraphXML{Content: []any{&runXML{Break: &breakXML{Type: "page"}}}})
	case *model.RawBlock:
		if v.Format == "openxml" {
			w.add(rawXML{Text: v.Text})
		}
	case *model.Div:
		for _, inner := range v.Blocks {
			w.block(inner)
		}
	case *model.LineBlock:
		for _, line := range v.Lines {
			w.add(&paragraphXML{Content: w.runs(line, runStyle{size: w.baseSize()})})
		}
	default:
		w.fail(&model.UnsupportedConstructError{Construct: b.Type().String(), Format: "docx"})
	}
}

func (w *writer) paragraph(inlines []model.Inline) {
	w.add(&paragraphXML{
		Props:   &paraPropsXML{Spacing: &spacingXML{After: 120, Line: bodyLine, LineRule: "auto"}},
		Content: w.runs(inlines, runStyle{size: w.baseSize()}),
	})
}

func (w *writer) heading(h *model.Header) {
	level := h.Level
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	before := 240
	if level <= 2 {
		before = 360
	}
	size := style.HalfPoints(w.sheet.HeadingSize(level))

	content := w.runs(h.Inlines, runStyle{size: size, bold: true})
	if h.ID != "" {
		w.marks++
		wrapped := make([]any, 0, len(content)+2)
		wrapped = append(wrapped, &bookmarkStartXML{ID: w.marks, Name: h.ID})
		wrapped = append(wrapped, content...)
		wrapped = append(wrapped, &bookmarkEndXML{ID: w.marks})
		content = wrapped
	}
	w.add(&paragraphXML{
		Props:   &paraPropsXML{Spacing: &spacingXML{Before: before, After: 120}},
		Content: content,
	})
}

// codeBlock writes one monospace paragraph per source line. Word has no
// native multi-line code construct.
func (w *writer) codeBlock(cb *model.CodeBlock) {
	lines := strings.Split(strings.TrimSuffix(cb.Text, "\n"), "\n")
	for _, line := range lines {
		w.add(&paragraphXML{Content: []any{w.textRun(line, runStyle{mono: true})}})
	}
}

// quoteBlock writes one block of quoted content. Paragraph content is
// indented; anything else falls back to the normal block mapping.
func (w *writer) quoteBlock(b model.Block) {
	var inlines []model.Inline
	switch v := b.(type) {
	case *model.Paragraph:
		inlines = v.Inlines
	case *model.Plain:
		inlines = v.Inlines
	default:
		w.block(b)
		return
	}
	w.add(&paragraphXML{
		Props: &paraPropsXML{
			Spacing: &spacingXML{After: 80, Line: bodyLine, LineRule: "auto"},
			Indent:  &indentXML{Left: quoteIndent},
		},
		Content: w.runs(inlines, runStyle{size: w.baseSize()}),
	})
}

func (w *writer) listItem(text string) {
	w.add(&paragraphXML{
		Props: &paraPropsXML{
			Spacing: &spacingXML{After: 60, Line: bodyLine, LineRule: "auto"},
			Indent:  &indentXML{Left: listIndent},
		},
		Content: []any{w.textRun(text, runStyle{size: w.baseSize()})},
	})
}

func (w *writer) definitionList(dl *model.DefinitionList) {
	for _, item := range dl.Items {
		w.add(&paragraphXML{
			Props:   &paraPropsXML{Spacing: &spacingXML{Before: 120, After: 40}},
			Content: w.runs(item.Term, runStyle{size: w.baseSize(), bold: true}),
		})
		for _, def := range item.Definitions {
			for _, inner := range def {
				w.quoteBlock(inner)
			}
		}
	}
}

// runStyle carries formatting state while inline content is lowered to runs.
// A zero size inherits the document default.
type runStyle struct {
	size      int // half-points
	bold      bool
	italic    bool
	strike    bool
	underline bool
	smallCaps bool
	vertAlign string
	color     string
	mono      bool
}

func (w *writer) runProps(rs runStyle) *runPropsXML {
	p := &runPropsXML{}
	if rs.mono {
		p.Fonts = w.fonts(w.sheet.MonoFontFamily)
	} else {
		p.Fonts = w.fonts(w.sheet.BaseFontFamily)
	}
	if rs.bold {
		p.Bold = &flagXML{}
	}
	if rs.italic {
		p.Italic = &flagXML{}
	}
	if rs.smallCaps {
		p.SmallCaps = &flagXML{}
	}
	if rs.strike {
		p.Strike = &flagXML{}
	}
	if rs.color != "" {
		p.Color = &valXML{Val: rs.color}
	}
	if rs.size > 0 {
		p.Size = &intValXML{Val: rs.size}
		p.SizeCs = &intValXML{Val: rs.size}
	}
	if rs.underline {
		p.Underline = &valXML{Val: "single"}
	}
	if rs.vertAlign != "" {
		p.VertAlign = &valXML{Val: rs.vertAlign}
	}
	return p
}

func (w *writer) fonts(family string) *fontsXML {
	return &fontsXML{ASCII: family, HAnsi: family, CS: family}
}

func (w *writer) textRun(text string, rs runStyle) *runXML {
	t := &textXML{Value: text}
	if strings.TrimSpace(text) != text {
		t.Space = "preserve"
	}
	return &runXML{Props: w.runProps(rs), Text: t}
}

func (w *writer) runs(inlines []model.Inline, rs runStyle) []any {
	var items []any
	for _, in := range inlines {
		items = append(items, w.inline(in, rs)...)
	}
	return items
}

func (w *writer) inline(in model.Inline, rs runStyle) []any {
	switch v := in.(type) {
	case *model.Str:
		return []any{w.textRun(v.Text, rs)}
	case *model.Space, *model.SoftBreak:
		return []any{w.textRun(" ", rs)}
	case *model.LineBreak:
		return []any{&runXML{Props: w.runProps(rs), Break: &breakXML{Type: "textWrapping"}}}
	case *model.Emph:
		rs.italic = true
		return w.runs(v.Inlines, rs)
	case *model.Strong:
		rs.bold = true
		return w.runs(v.Inlines, rs)
	case *model.Strikeout:
		rs.strike = true
		return w.runs(v.Inlines, rs)
	case *model.Superscript:
		rs.vertAlign = "superscript"
		return w.runs(v.Inlines, rs)
	case *model.Subscript:
		rs.vertAlign = "subscript"
		return w.runs(v.Inlines, rs)
	case *model.SmallCaps:
		rs.smallCaps = true
		return w.runs(v.Inlines, rs)
	case *model.Quoted:
		left, right := "‘", "’"
		if v.Quote == model.DoubleQuote {
			left, right = "“", "”"
		}
		items := []any{w.textRun(left, rs)}
		items = append(items, w.runs(v.Inlines, rs)...)
		return append(items, w.textRun(right, rs))
	case *model.Code:
		rs.mono = true
		return []any{w.textRun(v.Text, rs)}
	case *model.Math:
		rs.mono = true
		return []any{w.textRun(v.Text, rs)}
	case *model.Link:
		return []any{w.hyperlink(v, rs)}
	case *model.Image:
		return []any{w.image(v, rs)}
	case *model.Note:
		return []any{w.textRun(" ("+blocksText(v.Blocks)+")", rs)}
	case *model.Span:
		return w.runs(v.Inlines, rs)
	case *model.RawInline:
		if v.Format == "openxml" {
			return []any{rawXML{Text: v.Text}}
		}
		return nil
	default:
		w.fail(&model.UnsupportedConstructError{Construct: in.Type().String(), Format: "docx"})
		return nil
	}
}

func (w *writer) hyperlink(link *model.Link, rs runStyle) *hyperlinkXML {
	relID := w.addRelationship(relTypeHyperlink, link.Target, "External")
	rs.color = "0000FF"
	rs.underline = true
	content := link.Inlines
	if len(content) == 0 {
		content = []model.Inline{&model.Str{Text: link.Target}}
	}
	h := &hyperlinkXML{RelID: relID}
	for _, item := range w.runs(content, rs) {
		if r, ok := item.(*runXML); ok {
			h.Runs = append(h.Runs, r)
		}
	}
	return h
}

// image embeds the picture when the source is a readable local file and
// falls back to an italic placeholder otherwise.
func (w *writer) image(img *model.Image, rs runStyle) any {
	if run, ok := w.embedImage(img); ok {
		return run
	}
	alt := model.Text(img.Inlines)
	if alt == "" {
		alt = img.Target
	}
	rs.italic = true
	return w.textRun("[Image: "+alt+"]", rs)
}

// blocksText flattens block content to plain text for contexts that cannot
// hold block structure, such as table cells and list items.
func blocksText(blocks []model.Block) string {
	var parts []string
	for _, b := range blocks {
		switch v := b.(type) {
		case *model.Plain:
			parts = append(parts, model.Text(v.Inlines))
		case *model.Paragraph:
			parts = append(parts, model.Text(v.Inlines))
		case *model.Header:
			parts = append(parts, model.Text(v.Inlines))
		case *model.CodeBlock:
			parts = append(parts, strings.TrimRight(v.Text, "\n"))
		case *model.BlockQuote:
			parts = append(parts, blocksText(v.Blocks))
		case *model.Div:
			parts = append(parts, blocksText(v.Blocks))
		case *model.BulletList:
			for _, item := range v.Items {
				parts = append(parts, "• "+blocksText(item))
			}
		case *model.OrderedList:
			start := v.Start
			if start < 1 {
				start = 1
			}
			for i, item := range v.Items {
				parts = append(parts, strconv.Itoa(start+i)+". "+blocksText(item))
			}
		case *model.LineBlock:
			for _, line := range v.Lines {
				parts = append(parts, model.Text(line))
			}
		}
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}
