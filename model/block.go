package model

// BlockType represents the type of a block element
type BlockType int

const (
	BlockTypeUnknown BlockType = iota
	BlockTypePlain
	BlockTypeParagraph
	BlockTypeHeader
	BlockTypeCodeBlock
	BlockTypeBlockQuote
	BlockTypeBulletList
	BlockTypeOrderedList
	BlockTypeDefinitionList
	BlockTypeTable
	BlockTypeHorizontalRule
	BlockTypePageBreak
	BlockTypeRawBlock
	BlockTypeDiv
	BlockTypeLineBlock
)

func (bt BlockType) String() string {
	switch bt {
	case BlockTypePlain:
		return "Plain"
	case BlockTypeParagraph:
		return "Paragraph"
	case BlockTypeHeader:
		return "Header"
	case BlockTypeCodeBlock:
		return "CodeBlock"
	case BlockTypeBlockQuote:
		return "BlockQuote"
	case BlockTypeBulletList:
		return "BulletList"
	case BlockTypeOrderedList:
		return "OrderedList"
	case BlockTypeDefinitionList:
		return "DefinitionList"
	case BlockTypeTable:
		return "Table"
	case BlockTypeHorizontalRule:
		return "HorizontalRule"
	case BlockTypePageBreak:
		return "PageBreak"
	case BlockTypeRawBlock:
		return "RawBlock"
	case BlockTypeDiv:
		return "Div"
	case BlockTypeLineBlock:
		return "LineBlock"
	default:
		return "Unknown"
	}
}

// Block is the interface for all block-level elements. The set of
// implementations is closed; writers switch over the concrete types and
// treat anything else as an unsupported construct.
type Block interface {
	Type() BlockType
	block()
}

// Plain is a run of inline content without paragraph semantics, produced for
// tight list items.
type Plain struct {
	Inlines []Inline
}

func (p *Plain) Type() BlockType { return BlockTypePlain }
func (p *Plain) block()          {}

// Paragraph represents a paragraph of inline content
type Paragraph struct {
	Inlines []Inline
}

func (p *Paragraph) Type() BlockType { return BlockTypeParagraph }
func (p *Paragraph) block()          {}

// Header represents a heading
type Header struct {
	Level   int // 1-6
	ID      string
	Inlines []Inline
}

func (h *Header) Type() BlockType { return BlockTypeHeader }
func (h *Header) block()          {}

// CodeBlock represents literal code. Language is the info-string language
// tag, empty when none was given.
type CodeBlock struct {
	Language string
	Text     string
}

func (c *CodeBlock) Type() BlockType { return BlockTypeCodeBlock }
func (c *CodeBlock) block()          {}

// BlockQuote represents quoted block content
type BlockQuote struct {
	Blocks []Block
}

func (b *BlockQuote) Type() BlockType { return BlockTypeBlockQuote }
func (b *BlockQuote) block()          {}

// BulletList represents an unordered list; each item is a block sequence
type BulletList struct {
	Items [][]Block
}

func (l *BulletList) Type() BlockType { return BlockTypeBulletList }
func (l *BulletList) block()          {}

// ListNumberStyle represents the numbering style of an ordered list
type ListNumberStyle int

const (
	Decimal ListNumberStyle = iota
	LowerAlpha
	UpperAlpha
	LowerRoman
	UpperRoman
)

// OrderedList represents an ordered list starting at Start
type OrderedList struct {
	Start int
	Style ListNumberStyle
	Items [][]Block
}

func (l *OrderedList) Type() BlockType { return BlockTypeOrderedList }
func (l *OrderedList) block()          {}

// Definition is one term with its definitions in a definition list
type Definition struct {
	Term        []Inline
	Definitions [][]Block
}

// DefinitionList represents a definition list
type DefinitionList struct {
	Items []Definition
}

func (l *DefinitionList) Type() BlockType { return BlockTypeDefinitionList }
func (l *DefinitionList) block()          {}

// HorizontalRule represents a thematic break
type HorizontalRule struct{}

func (h *HorizontalRule) Type() BlockType { return BlockTypeHorizontalRule }
func (h *HorizontalRule) block()          {}

// PageBreak forces a page boundary in paginated output. Writers for
// non-paginated targets render a visual separator instead.
type PageBreak struct{}

func (p *PageBreak) Type() BlockType { return BlockTypePageBreak }
func (p *PageBreak) block()          {}

// RawBlock is verbatim content for a specific target format. Writers emit it
// untouched when Format names their own target and drop it otherwise.
type RawBlock struct {
	Format string
	Text   string
}

func (r *RawBlock) Type() BlockType { return BlockTypeRawBlock }
func (r *RawBlock) block()          {}

// Div is a generic block container carrying attributes
type Div struct {
	Attr   Attr
	Blocks []Block
}

func (d *Div) Type() BlockType { return BlockTypeDiv }
func (d *Div) block()          {}

// LineBlock represents line-oriented content where line breaks are
// significant; each entry is one line of inlines.
type LineBlock struct {
	Lines [][]Inline
}

func (l *LineBlock) Type() BlockType { return BlockTypeLineBlock }
func (l *LineBlock) block()          {}

// Attr carries the identifier, classes, and key-value attributes of spans,
// divs, and similar containers.
type Attr struct {
	ID      string
	Classes []string
	KeyVals map[string]string
}
