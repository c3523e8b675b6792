package model

import (
	"strings"
	"testing"
)

// ============================================================================
// Inline Text Tests
// ============================================================================

func TestText(t *testing.T) {
	tests := []struct {
		name    string
		inlines []Inline
		want    string
	}{
		{"empty", nil, ""},
		{"plain run", []Inline{&Str{Text: "hello world"}}, "hello world"},
		{
			"words and spaces",
			[]Inline{&Str{Text: "a"}, &Space{}, &Str{Text: "b"}},
			"a b",
		},
		{
			"soft break becomes space",
			[]Inline{&Str{Text: "a"}, &SoftBreak{}, &Str{Text: "b"}},
			"a b",
		},
		{
			"hard break becomes newline",
			[]Inline{&Str{Text: "a"}, &LineBreak{}, &Str{Text: "b"}},
			"a\nb",
		},
		{
			"nested formatting",
			[]Inline{&Emph{Inlines: []Inline{&Strong{Inlines: []Inline{&Str{Text: "deep"}}}}}},
			"deep",
		},
		{
			"link keeps text",
			[]Inline{&Link{Inlines: []Inline{&Str{Text: "here"}}, Target: "https://example.com"}},
			"here",
		},
		{
			"image keeps alt text",
			[]Inline{&Image{Inlines: []Inline{&Str{Text: "a chart"}}, Target: "chart.png"}},
			"a chart",
		},
		{"code literal", []Inline{&Code{Text: "x := 1"}}, "x := 1"},
		{
			"note contributes nothing",
			[]Inline{&Str{Text: "a"}, &Note{Blocks: []Block{&Paragraph{Inlines: []Inline{&Str{Text: "aside"}}}}}},
			"a",
		},
		{
			"raw contributes nothing",
			[]Inline{&RawInline{Format: "html", Text: "<b>"}, &Str{Text: "x"}},
			"x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Text(tt.inlines)
			if got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}

// ============================================================================
// Type Tests
// ============================================================================

func TestBlockTypes(t *testing.T) {
	tests := []struct {
		block Block
		want  BlockType
		str   string
	}{
		{&Plain{}, BlockTypePlain, "Plain"},
		{&Paragraph{}, BlockTypeParagraph, "Paragraph"},
		{&Header{Level: 1}, BlockTypeHeader, "Header"},
		{&CodeBlock{}, BlockTypeCodeBlock, "CodeBlock"},
		{&BlockQuote{}, BlockTypeBlockQuote, "BlockQuote"},
		{&BulletList{}, BlockTypeBulletList, "BulletList"},
		{&OrderedList{}, BlockTypeOrderedList, "OrderedList"},
		{&DefinitionList{}, BlockTypeDefinitionList, "DefinitionList"},
		{&Table{}, BlockTypeTable, "Table"},
		{&HorizontalRule{}, BlockTypeHorizontalRule, "HorizontalRule"},
		{&PageBreak{}, BlockTypePageBreak, "PageBreak"},
		{&RawBlock{}, BlockTypeRawBlock, "RawBlock"},
		{&Div{}, BlockTypeDiv, "Div"},
		{&LineBlock{}, BlockTypeLineBlock, "LineBlock"},
	}

	for _, tt := range tests {
		t.Run(tt.str, func(t *testing.T) {
			if tt.block.Type() != tt.want {
				t.Errorf("Type() = %v, want %v", tt.block.Type(), tt.want)
			}
			if tt.block.Type().String() != tt.str {
				t.Errorf("String() = %q, want %q", tt.block.Type().String(), tt.str)
			}
		})
	}
}

func TestInlineTypes(t *testing.T) {
	tests := []struct {
		inline Inline
		want   InlineType
		str    string
	}{
		{&Str{}, InlineTypeStr, "Str"},
		{&Space{}, InlineTypeSpace, "Space"},
		{&SoftBreak{}, InlineTypeSoftBreak, "SoftBreak"},
		{&LineBreak{}, InlineTypeLineBreak, "LineBreak"},
		{&Emph{}, InlineTypeEmph, "Emph"},
		{&Strong{}, InlineTypeStrong, "Strong"},
		{&Strikeout{}, InlineTypeStrikeout, "Strikeout"},
		{&Superscript{}, InlineTypeSuperscript, "Superscript"},
		{&Subscript{}, InlineTypeSubscript, "Subscript"},
		{&SmallCaps{}, InlineTypeSmallCaps, "SmallCaps"},
		{&Code{}, InlineTypeCode, "Code"},
		{&Quoted{}, InlineTypeQuoted, "Quoted"},
		{&Link{}, InlineTypeLink, "Link"},
		{&Image{}, InlineTypeImage, "Image"},
		{&Math{}, InlineTypeMath, "Math"},
		{&RawInline{}, InlineTypeRawInline, "RawInline"},
		{&Note{}, InlineTypeNote, "Note"},
		{&Span{}, InlineTypeSpan, "Span"},
	}

	for _, tt := range tests {
		t.Run(tt.str, func(t *testing.T) {
			if tt.inline.Type() != tt.want {
				t.Errorf("Type() = %v, want %v", tt.inline.Type(), tt.want)
			}
			if tt.inline.Type().String() != tt.str {
				t.Errorf("String() = %q, want %q", tt.inline.Type().String(), tt.str)
			}
		})
	}
}

// ============================================================================
// Document Tests
// ============================================================================

func para(text string) *Paragraph {
	return &Paragraph{Inlines: []Inline{&Str{Text: text}}}
}

func TestNewDocument(t *testing.T) {
	doc := NewDocument()
	if doc.Meta.Extensions == nil {
		t.Error("NewDocument() should initialize the extensions map")
	}
	if len(doc.Blocks) != 0 {
		t.Errorf("NewDocument() has %d blocks, want 0", len(doc.Blocks))
	}
	if doc.HasTitleBlock() {
		t.Error("empty document should not have a title block")
	}
}

func TestHasTitleBlock(t *testing.T) {
	tests := []struct {
		name string
		meta Metadata
		want bool
	}{
		{"empty", Metadata{}, false},
		{"title only", Metadata{Title: "T"}, true},
		{"subtitle only", Metadata{Subtitle: "S"}, true},
		{"author only", Metadata{Author: "A"}, true},
		{"date only", Metadata{Date: "2024-01-01"}, true},
		{"fontsize alone is not a title block", Metadata{FontSize: 11}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := &Document{Meta: tt.meta}
			if got := doc.HasTitleBlock(); got != tt.want {
				t.Errorf("HasTitleBlock() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDocumentPlainText(t *testing.T) {
	doc := &Document{
		Blocks: []Block{
			&Header{Level: 1, Inlines: []Inline{&Str{Text: "Title"}}},
			para("First paragraph."),
			&BulletList{Items: [][]Block{
				{&Plain{Inlines: []Inline{&Str{Text: "one"}}}},
				{&Plain{Inlines: []Inline{&Str{Text: "two"}}}},
			}},
		},
	}

	got := doc.PlainText()
	want := "Title\n\nFirst paragraph.\n\none\ntwo"
	if got != want {
		t.Errorf("PlainText() = %q, want %q", got, want)
	}
}

func TestDocumentTablesFindsNested(t *testing.T) {
	inner := &Table{ColSpecs: []ColSpec{{}}}
	outer := &Table{
		ColSpecs: []ColSpec{{}},
		Body: []Row{
			{Cells: []Cell{{Blocks: []Block{inner}}}},
		},
	}
	doc := &Document{
		Blocks: []Block{
			&BlockQuote{Blocks: []Block{outer}},
			para("text"),
		},
	}

	tables := doc.Tables()
	if len(tables) != 2 {
		t.Fatalf("Tables() found %d tables, want 2", len(tables))
	}
	if tables[0] != outer || tables[1] != inner {
		t.Error("Tables() should return tables in reading order, outer first")
	}
}

func TestDocumentOutline(t *testing.T) {
	doc := &Document{
		Blocks: []Block{
			&Header{Level: 1, ID: "intro", Inlines: []Inline{&Str{Text: "Intro"}}},
			para("body"),
			&Header{Level: 2, ID: "details", Inlines: []Inline{&Str{Text: "Details"}}},
		},
	}

	outline := doc.Outline()
	if len(outline) != 2 {
		t.Fatalf("Outline() has %d entries, want 2", len(outline))
	}
	if outline[0].Level != 1 || outline[0].Text != "Intro" || outline[0].ID != "intro" {
		t.Errorf("Outline()[0] = %+v, want level 1 Intro/intro", outline[0])
	}
	if outline[1].Level != 2 || outline[1].Text != "Details" {
		t.Errorf("Outline()[1] = %+v, want level 2 Details", outline[1])
	}
}

// ============================================================================
// Table Tests
// ============================================================================

func cellOf(text string) Cell {
	return Cell{Blocks: []Block{para(text)}}
}

func TestTableCounts(t *testing.T) {
	table := &Table{
		ColSpecs: []ColSpec{{}, {}},
		Head:     []Row{{Cells: []Cell{cellOf("a"), cellOf("b")}}},
		Body: []Row{
			{Cells: []Cell{cellOf("1"), cellOf("2")}},
			{Cells: []Cell{cellOf("3"), cellOf("4")}},
		},
	}

	if table.ColCount() != 2 {
		t.Errorf("ColCount() = %d, want 2", table.ColCount())
	}
	if table.RowCount() != 3 {
		t.Errorf("RowCount() = %d, want 3", table.RowCount())
	}
	if rows := table.AllRows(); len(rows) != 3 {
		t.Errorf("AllRows() returned %d rows, want 3", len(rows))
	}
}

func TestTableValidate(t *testing.T) {
	tests := []struct {
		name    string
		table   *Table
		wantErr bool
	}{
		{
			"simple grid",
			&Table{
				ColSpecs: []ColSpec{{}, {}},
				Body: []Row{
					{Cells: []Cell{cellOf("a"), cellOf("b")}},
				},
			},
			false,
		},
		{
			"col span covers row",
			&Table{
				ColSpecs: []ColSpec{{}, {}, {}},
				Body: []Row{
					{Cells: []Cell{{Blocks: []Block{para("wide")}, ColSpan: 2}, cellOf("c")}},
				},
			},
			false,
		},
		{
			"row span carries down",
			&Table{
				ColSpecs: []ColSpec{{}, {}},
				Body: []Row{
					{Cells: []Cell{{Blocks: []Block{para("tall")}, RowSpan: 2}, cellOf("b")}},
					{Cells: []Cell{cellOf("c")}},
				},
			},
			false,
		},
		{
			"underfilled row",
			&Table{
				ColSpecs: []ColSpec{{}, {}},
				Body: []Row{
					{Cells: []Cell{cellOf("only")}},
				},
			},
			true,
		},
		{
			"overflowing span",
			&Table{
				ColSpecs: []ColSpec{{}, {}},
				Body: []Row{
					{Cells: []Cell{{Blocks: []Block{para("wide")}, ColSpan: 3}}},
				},
			},
			true,
		},
		{
			"extra cells",
			&Table{
				ColSpecs: []ColSpec{{}},
				Body: []Row{
					{Cells: []Cell{cellOf("a"), cellOf("b")}},
				},
			},
			true,
		},
		{
			"no columns",
			&Table{},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.table.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTableToMarkdown(t *testing.T) {
	table := &Table{
		ColSpecs: []ColSpec{{Align: AlignLeft}, {Align: AlignRight}},
		Head:     []Row{{Cells: []Cell{cellOf("Name"), cellOf("Qty")}}},
		Body:     []Row{{Cells: []Cell{cellOf("apples"), cellOf("3")}}},
	}

	got := table.ToMarkdown()
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("ToMarkdown() produced %d lines, want 3:\n%s", len(lines), got)
	}
	if lines[0] != "| Name | Qty |" {
		t.Errorf("header line = %q", lines[0])
	}
	if lines[1] != "|:--|--:|" {
		t.Errorf("separator line = %q", lines[1])
	}
	if lines[2] != "| apples | 3 |" {
		t.Errorf("body line = %q", lines[2])
	}
}

func TestTableToCSV(t *testing.T) {
	table := &Table{
		ColSpecs: []ColSpec{{}, {}},
		Body: []Row{
			{Cells: []Cell{cellOf("plain"), cellOf(`with "quotes", and comma`)}},
		},
	}

	got := table.ToCSV()
	want := "plain,\"with \"\"quotes\"\", and comma\"\n"
	if got != want {
		t.Errorf("ToCSV() = %q, want %q", got, want)
	}
}

func TestTablePlainText(t *testing.T) {
	table := &Table{
		ColSpecs: []ColSpec{{}, {}},
		Head:     []Row{{Cells: []Cell{cellOf("h1"), cellOf("h2")}}},
		Body:     []Row{{Cells: []Cell{cellOf("a"), cellOf("b")}}},
	}

	got := table.PlainText()
	want := "h1\th2\na\tb\n"
	if got != want {
		t.Errorf("PlainText() = %q, want %q", got, want)
	}
}

// ============================================================================
// Error Tests
// ============================================================================

func TestUnsupportedConstructError(t *testing.T) {
	err := &UnsupportedConstructError{Construct: "Math", Format: "docx"}
	if !strings.Contains(err.Error(), "Math") || !strings.Contains(err.Error(), "docx") {
		t.Errorf("Error() = %q, should name the construct and the format", err.Error())
	}
}
