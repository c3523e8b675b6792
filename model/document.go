package model

// Document represents a complete parsed document: front-matter metadata plus
// the ordered top-level blocks. Writers treat a Document as read-only.
type Document struct {
	Meta   Metadata
	Blocks []Block
}

// Metadata contains document-level information from the front matter. Zero
// values mean the key was absent.
type Metadata struct {
	Title    string
	Subtitle string
	Author   string
	Date     string
	// FontSize is the base body size in points. 0 means unset; writers fall
	// back to the stylesheet default.
	FontSize int
	// Extensions holds front-matter keys with no dedicated field.
	Extensions map[string]string
}

// NewDocument creates a new empty document
func NewDocument() *Document {
	return &Document{
		Meta: Metadata{
			Extensions: make(map[string]string),
		},
		Blocks: make([]Block, 0),
	}
}

// HasTitleBlock reports whether any of the title-block metadata fields are
// set, i.e. whether writers should emit a title section.
func (d *Document) HasTitleBlock() bool {
	m := d.Meta
	return m.Title != "" || m.Subtitle != "" || m.Author != "" || m.Date != ""
}

// PlainText returns the document's textual content with blocks separated by
// blank lines. Structure (emphasis, links, table layout) is discarded.
func (d *Document) PlainText() string {
	return blocksText(d.Blocks)
}

// Tables returns all tables in the document, including tables nested inside
// quotes, divs, list items, and other tables, in reading order.
func (d *Document) Tables() []*Table {
	var tables []*Table
	Walk(d.Blocks, func(b Block) bool {
		if t, ok := b.(*Table); ok {
			tables = append(tables, t)
		}
		return true
	})
	return tables
}

// Outline returns the document's headings in order, forming a document
// outline.
func (d *Document) Outline() []OutlineEntry {
	var outline []OutlineEntry
	Walk(d.Blocks, func(b Block) bool {
		if h, ok := b.(*Header); ok {
			outline = append(outline, OutlineEntry{
				Level: h.Level,
				Text:  Text(h.Inlines),
				ID:    h.ID,
			})
		}
		return true
	})
	return outline
}

// OutlineEntry represents one heading in the document outline
type OutlineEntry struct {
	Level int    // Heading level (1-6)
	Text  string // Heading text, flattened
	ID    string // Stable identifier, may be empty
}

// Walk visits every block in blocks depth-first, descending into quotes,
// divs, list items, definition items, notes, and table cells. Return false
// from fn to skip the children of the current block.
func Walk(blocks []Block, fn func(Block) bool) {
	for _, b := range blocks {
		walkBlock(b, fn)
	}
}

func walkBlock(b Block, fn func(Block) bool) {
	if !fn(b) {
		return
	}
	switch v := b.(type) {
	case *BlockQuote:
		Walk(v.Blocks, fn)
	case *Div:
		Walk(v.Blocks, fn)
	case *BulletList:
		for _, item := range v.Items {
			Walk(item, fn)
		}
	case *OrderedList:
		for _, item := range v.Items {
			Walk(item, fn)
		}
	case *DefinitionList:
		for _, item := range v.Items {
			for _, def := range item.Definitions {
				Walk(def, fn)
			}
		}
	case *Table:
		for _, rows := range [][]Row{v.Head, v.Body, v.Foot} {
			for _, row := range rows {
				for _, cell := range row.Cells {
					Walk(cell.Blocks, fn)
				}
			}
		}
	}
}
