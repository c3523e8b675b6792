package model

import "strings"

// InlineType represents the type of an inline element
type InlineType int

const (
	InlineTypeUnknown InlineType = iota
	InlineTypeStr
	InlineTypeSpace
	InlineTypeSoftBreak
	InlineTypeLineBreak
	InlineTypeEmph
	InlineTypeStrong
	InlineTypeStrikeout
	InlineTypeSuperscript
	InlineTypeSubscript
	InlineTypeSmallCaps
	InlineTypeCode
	InlineTypeQuoted
	InlineTypeLink
	InlineTypeImage
	InlineTypeMath
	InlineTypeRawInline
	InlineTypeNote
	InlineTypeSpan
)

func (it InlineType) String() string {
	switch it {
	case InlineTypeStr:
		return "Str"
	case InlineTypeSpace:
		return "Space"
	case InlineTypeSoftBreak:
		return "SoftBreak"
	case InlineTypeLineBreak:
		return "LineBreak"
	case InlineTypeEmph:
		return "Emph"
	case InlineTypeStrong:
		return "Strong"
	case InlineTypeStrikeout:
		return "Strikeout"
	case InlineTypeSuperscript:
		return "Superscript"
	case InlineTypeSubscript:
		return "Subscript"
	case InlineTypeSmallCaps:
		return "SmallCaps"
	case InlineTypeCode:
		return "Code"
	case InlineTypeQuoted:
		return "Quoted"
	case InlineTypeLink:
		return "Link"
	case InlineTypeImage:
		return "Image"
	case InlineTypeMath:
		return "Math"
	case InlineTypeRawInline:
		return "RawInline"
	case InlineTypeNote:
		return "Note"
	case InlineTypeSpan:
		return "Span"
	default:
		return "Unknown"
	}
}

// Inline is the interface for all span-level elements. Like [Block], the set
// of implementations is closed.
type Inline interface {
	Type() InlineType
	inline()
}

// Str is a run of literal text. Runs may contain spaces; the reader does not
// split words.
type Str struct {
	Text string
}

func (s *Str) Type() InlineType { return InlineTypeStr }
func (s *Str) inline()          {}

// Space is an explicit inter-word space
type Space struct{}

func (s *Space) Type() InlineType { return InlineTypeSpace }
func (s *Space) inline()          {}

// SoftBreak is a source line break rendered as breathing space
type SoftBreak struct{}

func (s *SoftBreak) Type() InlineType { return InlineTypeSoftBreak }
func (s *SoftBreak) inline()          {}

// LineBreak is a hard line break within a block
type LineBreak struct{}

func (l *LineBreak) Type() InlineType { return InlineTypeLineBreak }
func (l *LineBreak) inline()          {}

// Emph represents emphasized content
type Emph struct {
	Inlines []Inline
}

func (e *Emph) Type() InlineType { return InlineTypeEmph }
func (e *Emph) inline()          {}

// Strong represents strongly emphasized content
type Strong struct {
	Inlines []Inline
}

func (s *Strong) Type() InlineType { return InlineTypeStrong }
func (s *Strong) inline()          {}

// Strikeout represents struck-out content
type Strikeout struct {
	Inlines []Inline
}

func (s *Strikeout) Type() InlineType { return InlineTypeStrikeout }
func (s *Strikeout) inline()          {}

// Superscript represents superscripted content
type Superscript struct {
	Inlines []Inline
}

func (s *Superscript) Type() InlineType { return InlineTypeSuperscript }
func (s *Superscript) inline()          {}

// Subscript represents subscripted content
type Subscript struct {
	Inlines []Inline
}

func (s *Subscript) Type() InlineType { return InlineTypeSubscript }
func (s *Subscript) inline()          {}

// SmallCaps represents content set in small capitals
type SmallCaps struct {
	Inlines []Inline
}

func (s *SmallCaps) Type() InlineType { return InlineTypeSmallCaps }
func (s *SmallCaps) inline()          {}

// Code is literal inline code
type Code struct {
	Text string
}

func (c *Code) Type() InlineType { return InlineTypeCode }
func (c *Code) inline()          {}

// QuoteType distinguishes single from double quotation
type QuoteType int

const (
	SingleQuote QuoteType = iota
	DoubleQuote
)

// Quoted represents quoted content with typographic quote marks
type Quoted struct {
	Quote   QuoteType
	Inlines []Inline
}

func (q *Quoted) Type() InlineType { return InlineTypeQuoted }
func (q *Quoted) inline()          {}

// Link represents a hyperlink; Inlines is the link text
type Link struct {
	Inlines []Inline
	Target  string
	Title   string
}

func (l *Link) Type() InlineType { return InlineTypeLink }
func (l *Link) inline()          {}

// Image represents an image reference; Inlines is the alt text
type Image struct {
	Inlines []Inline
	Target  string
	Title   string
}

func (i *Image) Type() InlineType { return InlineTypeImage }
func (i *Image) inline()          {}

// Math is TeX math content. Display selects display style over inline style.
type Math struct {
	Display bool
	Text    string
}

func (m *Math) Type() InlineType { return InlineTypeMath }
func (m *Math) inline()          {}

// RawInline is verbatim span content for a specific target format, handled
// like [RawBlock].
type RawInline struct {
	Format string
	Text   string
}

func (r *RawInline) Type() InlineType { return InlineTypeRawInline }
func (r *RawInline) inline()          {}

// Note is a footnote or endnote; Blocks is the note body
type Note struct {
	Blocks []Block
}

func (n *Note) Type() InlineType { return InlineTypeNote }
func (n *Note) inline()          {}

// Span is a generic inline container carrying attributes
type Span struct {
	Attr    Attr
	Inlines []Inline
}

func (s *Span) Type() InlineType { return InlineTypeSpan }
func (s *Span) inline()          {}

// Text flattens inline content to plain text. Formatting is discarded, link
// text and image alt text are kept, notes and raw content contribute
// nothing.
func Text(inlines []Inline) string {
	var sb strings.Builder
	writeText(&sb, inlines)
	return sb.String()
}

func writeText(sb *strings.Builder, inlines []Inline) {
	for _, in := range inlines {
		switch v := in.(type) {
		case *Str:
			sb.WriteString(v.Text)
		case *Space, *SoftBreak:
			sb.WriteString(" ")
		case *LineBreak:
			sb.WriteString("\n")
		case *Emph:
			writeText(sb, v.Inlines)
		case *Strong:
			writeText(sb, v.Inlines)
		case *Strikeout:
			writeText(sb, v.Inlines)
		case *Superscript:
			writeText(sb, v.Inlines)
		case *Subscript:
			writeText(sb, v.Inlines)
		case *SmallCaps:
			writeText(sb, v.Inlines)
		case *Quoted:
			writeText(sb, v.Inlines)
		case *Span:
			writeText(sb, v.Inlines)
		case *Link:
			writeText(sb, v.Inlines)
		case *Image:
			writeText(sb, v.Inlines)
		case *Code:
			sb.WriteString(v.Text)
		case *Math:
			sb.WriteString(v.Text)
		}
	}
}

func blocksText(blocks []Block) string {
	var parts []string
	for _, b := range blocks {
		if s := blockText(b); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n\n")
}

func blockText(b Block) string {
	switch v := b.(type) {
	case *Plain:
		return Text(v.Inlines)
	case *Paragraph:
		return Text(v.Inlines)
	case *Header:
		return Text(v.Inlines)
	case *CodeBlock:
		return v.Text
	case *BlockQuote:
		return blocksText(v.Blocks)
	case *Div:
		return blocksText(v.Blocks)
	case *BulletList:
		return itemsText(v.Items)
	case *OrderedList:
		return itemsText(v.Items)
	case *DefinitionList:
		var parts []string
		for _, item := range v.Items {
			parts = append(parts, Text(item.Term))
			for _, def := range item.Definitions {
				if s := blocksText(def); s != "" {
					parts = append(parts, s)
				}
			}
		}
		return strings.Join(parts, "\n")
	case *Table:
		return v.PlainText()
	case *LineBlock:
		var lines []string
		for _, ln := range v.Lines {
			lines = append(lines, Text(ln))
		}
		return strings.Join(lines, "\n")
	default:
		return ""
	}
}

func itemsText(items [][]Block) string {
	var parts []string
	for _, item := range items {
		if s := blocksText(item); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n")
}
