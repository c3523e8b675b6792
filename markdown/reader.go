package markdown

import (
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gtext "github.com/yuin/goldmark/text"

	"github.com/tsawler/typeset/model"
	"github.com/tsawler/typeset/tables"
)

// Warning is a non-fatal problem found while reading a document. Line is
// 1-based in the original source, 0 when the warning carries no position.
type Warning struct {
	Line    int
	Message string
}

func (w Warning) String() string {
	if w.Line > 0 {
		return fmt.Sprintf("line %d: %s", w.Line, w.Message)
	}
	return w.Message
}

// Reader converts Markdown source into the document model
type Reader struct {
	// StrictTables makes grid-table structure problems fail the read
	// instead of degrading the region to plain text with a warning.
	StrictTables bool
}

// NewReader creates a reader with default settings
func NewReader() *Reader {
	return &Reader{}
}

// newEngine builds the goldmark instance used for body and cell parsing.
// GFM covers pipe tables, strikethrough, task lists, and autolinks.
func newEngine() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.DefinitionList,
			extension.Footnote,
		),
	)
}

// Read parses source into a document. Warnings report recoverable problems
// such as malformed tables or unusable metadata values; the returned
// document is complete apart from the degraded parts.
func (r *Reader) Read(source []byte) (*model.Document, []Warning, error) {
	meta, body, offset, warnings, err := parseFrontMatter(source)
	if err != nil {
		return nil, nil, err
	}

	bp := &bodyParser{reader: r, ids: newIDMaker()}
	blocks, err := bp.parseAt(string(body), offset)
	if err != nil {
		return nil, nil, err
	}

	doc := model.NewDocument()
	doc.Meta = meta
	doc.Blocks = blocks
	return doc, append(warnings, bp.warnings...), nil
}

// ReadString is a convenience wrapper around [Read]
func (r *Reader) ReadString(source string) (*model.Document, []Warning, error) {
	return r.Read([]byte(source))
}

// bodyParser runs the scan-parse-assemble stages for one body of text.
// Cell content goes through the same pipeline again, sharing the identifier
// space so heading anchors stay unique across the whole document.
type bodyParser struct {
	reader   *Reader
	ids      *idMaker
	warnings []Warning
}

// parseAt parses body text whose first line sits offset lines into the
// original source.
func (p *bodyParser) parseAt(body string, offset int) ([]model.Block, error) {
	body = stripFencedDivs(body)

	scan := tables.NewGridScanner().Scan(body)
	for _, serr := range scan.Errors {
		adjusted := &tables.StructureError{Line: serr.Line + offset, Msg: serr.Msg}
		if p.reader.StrictTables {
			return nil, adjusted
		}
		p.warnings = append(p.warnings, Warning{
			Line:    adjusted.Line,
			Message: "grid table kept as plain text: " + serr.Msg,
		})
	}

	models := make([]*model.Table, len(scan.Matches))
	for i, m := range scan.Matches {
		t, err := p.tableModel(m, offset)
		if err != nil {
			return nil, err
		}
		models[i] = t
	}

	residual := []byte(scan.Residual)
	root := newEngine().Parser().Parse(gtext.NewReader(residual))
	blocks := newConverter(residual, p.ids).convert(root)

	asm := &assembler{tables: models}
	return asm.apply(blocks), nil
}

// tableModel turns a scanned grid table into a model table, parsing each
// cell's raw text through the full pipeline. Warnings from cell content are
// reported against the table's opening line.
func (p *bodyParser) tableModel(m tables.GridMatch, offset int) (*model.Table, error) {
	t := &model.Table{ColSpecs: m.Table.ColSpecs}

	cellOffset := m.StartLine + offset - 1
	head, err := p.rowModels(m.Table.Head, cellOffset)
	if err != nil {
		return nil, err
	}
	body, err := p.rowModels(m.Table.Body, cellOffset)
	if err != nil {
		return nil, err
	}
	t.Head, t.Body = head, body
	return t, nil
}

func (p *bodyParser) rowModels(rows []*tables.GridRow, offset int) ([]model.Row, error) {
	out := make([]model.Row, 0, len(rows))
	for _, row := range rows {
		var mr model.Row
		for _, cell := range row.Cells {
			blocks, err := p.parseAt(cell.Text, offset)
			if err != nil {
				return nil, err
			}
			mr.Cells = append(mr.Cells, model.Cell{
				Blocks:  blocks,
				ColSpan: cell.ColSpan,
				RowSpan: cell.RowSpan,
			})
		}
		out = append(out, mr)
	}
	return out, nil
}
