package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/tsawler/typeset/model"
	"github.com/tsawler/typeset/style"
)

// Reading structs for verifying the written parts. Tags are unprefixed; the
// decoder resolves w: and r: prefixes to namespaces and matches local names.

type readDocument struct {
	Body readBody `xml:"body"`
}

type readBody struct {
	Paragraphs []readParagraph `xml:"p"`
	Tables     []readTable     `xml:"tbl"`
}

type readParagraph struct {
	Props     readParaProps  `xml:"pPr"`
	Runs      []readRun      `xml:"r"`
	Links     []readLink     `xml:"hyperlink"`
	Bookmarks []readBookmark `xml:"bookmarkStart"`
}

type readParaProps struct {
	Spacing readSpacing `xml:"spacing"`
	Indent  readIndent  `xml:"ind"`
	Justify readVal     `xml:"jc"`
}

type readSpacing struct {
	Before string `xml:"before,attr"`
	After  string `xml:"after,attr"`
	Line   string `xml:"line,attr"`
}

type readIndent struct {
	Left string `xml:"left,attr"`
}

type readVal struct {
	Val string `xml:"val,attr"`
}

type readRun struct {
	Props    readRunProps  `xml:"rPr"`
	Text     []readText    `xml:"t"`
	Breaks   []readBreak   `xml:"br"`
	Drawings []readDrawing `xml:"drawing"`
}

type readRunProps struct {
	Fonts     readFonts `xml:"rFonts"`
	Bold      *struct{} `xml:"b"`
	Italic    *struct{} `xml:"i"`
	Strike    *struct{} `xml:"strike"`
	SmallCaps *struct{} `xml:"smallCaps"`
	Color     readVal   `xml:"color"`
	Size      readVal   `xml:"sz"`
	Underline readVal   `xml:"u"`
	VertAlign readVal   `xml:"vertAlign"`
}

type readFonts struct {
	ASCII string `xml:"ascii,attr"`
}

type readText struct {
	Value string `xml:",chardata"`
}

type readBreak struct {
	Type string `xml:"type,attr"`
}

type readDrawing struct {
	Extent readExtent `xml:"inline>extent"`
}

type readExtent struct {
	CX string `xml:"cx,attr"`
	CY string `xml:"cy,attr"`
}

type readLink struct {
	ID   string    `xml:"id,attr"`
	Runs []readRun `xml:"r"`
}

type readBookmark struct {
	Name string `xml:"name,attr"`
}

type readTable struct {
	Grid readGrid       `xml:"tblGrid"`
	Rows []readTableRow `xml:"tr"`
}

type readGrid struct {
	Cols []readGridCol `xml:"gridCol"`
}

type readGridCol struct {
	W string `xml:"w,attr"`
}

type readTableRow struct {
	Props readRowProps    `xml:"trPr"`
	Cells []readTableCell `xml:"tc"`
}

type readRowProps struct {
	Header *struct{} `xml:"tblHeader"`
}

type readTableCell struct {
	Props      readCellProps   `xml:"tcPr"`
	Paragraphs []readParagraph `xml:"p"`
}

type readCellProps struct {
	Width    readWidth   `xml:"tcW"`
	GridSpan readVal     `xml:"gridSpan"`
	VMerge   *readVal    `xml:"vMerge"`
	Shading  readShading `xml:"shd"`
}

type readWidth struct {
	W string `xml:"w,attr"`
}

type readShading struct {
	Fill string `xml:"fill,attr"`
}

type readRels struct {
	Items []readRel `xml:"Relationship"`
}

type readRel struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr"`
}

type readStyles struct {
	Defaults readRunProps `xml:"docDefaults>rPrDefault>rPr"`
}

func docWith(blocks ...model.Block) *model.Document {
	return &model.Document{Blocks: blocks}
}

func para(text string) *model.Paragraph {
	return &model.Paragraph{Inlines: []model.Inline{&model.Str{Text: text}}}
}

func cell(text string) model.Cell {
	return model.Cell{Blocks: []model.Block{para(text)}}
}

func buildDocx(t *testing.T, doc *model.Document) *zip.Reader {
	t.Helper()
	out, err := Write(doc, style.Resolve(doc.Meta))
	if err != nil {
		t.Fatalf("Write() failed: %v", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(out), int64(len(out)))
	if err != nil {
		t.Fatalf("output is not a zip archive: %v", err)
	}
	return zr
}

func partData(t *testing.T, zr *zip.Reader, name string) []byte {
	t.Helper()
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("opening part %s: %v", name, err)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("reading part %s: %v", name, err)
		}
		return data
	}
	t.Fatalf("part %s not found in archive", name)
	return nil
}

func readDoc(t *testing.T, zr *zip.Reader) readDocument {
	t.Helper()
	var d readDocument
	if err := xml.Unmarshal(partData(t, zr, partDocument), &d); err != nil {
		t.Fatalf("unmarshaling document part: %v", err)
	}
	return d
}

func readDocRels(t *testing.T, zr *zip.Reader) readRels {
	t.Helper()
	var r readRels
	if err := xml.Unmarshal(partData(t, zr, partDocumentRels), &r); err != nil {
		t.Fatalf("unmarshaling document relationships: %v", err)
	}
	return r
}

func paraText(p readParagraph) string {
	var sb strings.Builder
	for _, r := range p.Runs {
		for _, t := range r.Text {
			sb.WriteString(t.Value)
		}
	}
	return sb.String()
}

func findParagraph(t *testing.T, d readDocument, text string) readParagraph {
	t.Helper()
	for _, p := range d.Body.Paragraphs {
		if paraText(p) == text {
			return p
		}
	}
	t.Fatalf("no paragraph with text %q", text)
	return readParagraph{}
}

func TestWrite_ContainerParts(t *testing.T) {
	zr := buildDocx(t, docWith(para("Hello.")))

	want := []string{
		partContentTypes, partRootRels, partDocument,
		partDocumentRels, partStyles, partCore, partApp,
	}
	have := make(map[string]bool, len(zr.File))
	for _, f := range zr.File {
		have[f.Name] = true
	}
	for _, name := range want {
		if !have[name] {
			t.Errorf("archive is missing part %s", name)
		}
	}

	types := string(partData(t, zr, partContentTypes))
	if !strings.Contains(types, "wordprocessingml.document.main+xml") {
		t.Error("content types do not declare the main document part")
	}
}

func TestWrite_TitleBlock(t *testing.T) {
	doc := docWith(para("Body."))
	doc.Meta = model.Metadata{
		Title:    "Annual Report",
		Subtitle: "Fiscal 2024",
		Author:   "J. Chen",
		Date:     "2024-03-01",
	}
	d := readDoc(t, buildDocx(t, doc))

	if len(d.Body.Paragraphs) < 5 {
		t.Fatalf("got %d paragraphs, want at least 5", len(d.Body.Paragraphs))
	}

	title := d.Body.Paragraphs[0]
	if got := paraText(title); got != "Annual Report" {
		t.Errorf("first paragraph text = %q, want the title", got)
	}
	if title.Props.Justify.Val != "center" {
		t.Errorf("title justification = %q, want center", title.Props.Justify.Val)
	}
	if title.Runs[0].Props.Bold == nil {
		t.Error("title run is not bold")
	}
	if title.Runs[0].Props.Size.Val != "48" {
		t.Errorf("title size = %s half-points, want 48", title.Runs[0].Props.Size.Val)
	}

	if got := paraText(d.Body.Paragraphs[1]); got != "Fiscal 2024" {
		t.Errorf("second paragraph text = %q, want the subtitle", got)
	}
	if got := paraText(d.Body.Paragraphs[2]); got != "Author: J. Chen" {
		t.Errorf("author line = %q", got)
	}

	date := d.Body.Paragraphs[3]
	if got := paraText(date); got != "2024-03-01" {
		t.Errorf("date line = %q", got)
	}
	if date.Props.Spacing.After != "200" {
		t.Errorf("date spacing after = %s, want 200", date.Props.Spacing.After)
	}
}

func TestWrite_HeadingSizesAndBookmarks(t *testing.T) {
	var blocks []model.Block
	for level := 1; level <= 6; level++ {
		blocks = append(blocks, &model.Header{
			Level:   level,
			ID:      "h" + strconv.Itoa(level),
			Inlines: []model.Inline{&model.Str{Text: "Heading " + strconv.Itoa(level)}},
		})
	}
	d := readDoc(t, buildDocx(t, docWith(blocks...)))

	if len(d.Body.Paragraphs) != 6 {
		t.Fatalf("got %d paragraphs, want 6", len(d.Body.Paragraphs))
	}

	// Half-point sizes at the 12pt default.
	want := []string{"38", "32", "28", "26", "24", "22"}
	for i, p := range d.Body.Paragraphs {
		if p.Runs[0].Props.Bold == nil {
			t.Errorf("heading %d run is not bold", i+1)
		}
		if got := p.Runs[0].Props.Size.Val; got != want[i] {
			t.Errorf("heading %d size = %s half-points, want %s", i+1, got, want[i])
		}
		if len(p.Bookmarks) != 1 || p.Bookmarks[0].Name != "h"+strconv.Itoa(i+1) {
			t.Errorf("heading %d bookmark = %+v, want name h%d", i+1, p.Bookmarks, i+1)
		}
	}

	prev := 1 << 30
	for i, p := range d.Body.Paragraphs {
		size, err := strconv.Atoi(p.Runs[0].Props.Size.Val)
		if err != nil {
			t.Fatalf("heading %d size is not numeric: %v", i+1, err)
		}
		if size > prev {
			t.Errorf("heading %d size %d exceeds heading %d size %d", i+1, size, i, prev)
		}
		prev = size
	}
}

func TestWrite_ParagraphFormatting(t *testing.T) {
	doc := docWith(&model.Paragraph{Inlines: []model.Inline{
		&model.Str{Text: "plain "},
		&model.Strong{Inlines: []model.Inline{&model.Str{Text: "bold"}}},
		&model.Space{},
		&model.Emph{Inlines: []model.Inline{&model.Str{Text: "italic"}}},
		&model.Space{},
		&model.Code{Text: "x := 1"},
		&model.Superscript{Inlines: []model.Inline{&model.Str{Text: "2"}}},
	}})
	d := readDoc(t, buildDocx(t, doc))

	p := d.Body.Paragraphs[0]
	if p.Props.Spacing.After != "120" || p.Props.Spacing.Line != "276" {
		t.Errorf("paragraph spacing = %+v, want after 120 line 276", p.Props.Spacing)
	}
	if len(p.Runs) != 7 {
		t.Fatalf("got %d runs, want 7", len(p.Runs))
	}
	if p.Runs[0].Props.Fonts.ASCII != "Calibri" {
		t.Errorf("body run font = %q, want Calibri", p.Runs[0].Props.Fonts.ASCII)
	}
	if p.Runs[0].Props.Size.Val != "24" {
		t.Errorf("body run size = %s half-points, want 24", p.Runs[0].Props.Size.Val)
	}
	if p.Runs[1].Props.Bold == nil {
		t.Error("bold run lost its bold flag")
	}
	if p.Runs[3].Props.Italic == nil {
		t.Error("italic run lost its italic flag")
	}
	if p.Runs[5].Props.Fonts.ASCII != "Courier New" {
		t.Errorf("code run font = %q, want Courier New", p.Runs[5].Props.Fonts.ASCII)
	}
	if p.Runs[6].Props.VertAlign.Val != "superscript" {
		t.Errorf("superscript run vertAlign = %q", p.Runs[6].Props.VertAlign.Val)
	}
}

func TestWrite_CodeBlockLines(t *testing.T) {
	doc := docWith(&model.CodeBlock{Language: "go", Text: "package main\n\nfunc main() {}\n"})
	d := readDoc(t, buildDocx(t, doc))

	if len(d.Body.Paragraphs) != 3 {
		t.Fatalf("got %d paragraphs, want one per source line", len(d.Body.Paragraphs))
	}
	first := d.Body.Paragraphs[0]
	if got := paraText(first); got != "package main" {
		t.Errorf("first line = %q", got)
	}
	if first.Runs[0].Props.Fonts.ASCII != "Courier New" {
		t.Errorf("code line font = %q, want Courier New", first.Runs[0].Props.Fonts.ASCII)
	}
	if got := paraText(d.Body.Paragraphs[1]); got != "" {
		t.Errorf("blank source line = %q, want empty paragraph", got)
	}
}

func TestWrite_Table(t *testing.T) {
	doc := docWith(&model.Table{
		ColSpecs: []model.ColSpec{
			{Align: model.AlignLeft, Width: 0.25},
			{Align: model.AlignRight, Width: 0.75},
		},
		Head: []model.Row{{Cells: []model.Cell{cell("Name"), cell("Value")}}},
		Body: []model.Row{
			{Cells: []model.Cell{cell("A"), cell("1")}},
			{Cells: []model.Cell{cell("B"), cell("2")}},
		},
	})
	d := readDoc(t, buildDocx(t, doc))

	if len(d.Body.Tables) != 1 {
		t.Fatalf("got %d tables, want 1", len(d.Body.Tables))
	}
	tbl := d.Body.Tables[0]

	if len(tbl.Grid.Cols) != 2 {
		t.Fatalf("got %d grid columns, want 2", len(tbl.Grid.Cols))
	}
	if tbl.Grid.Cols[0].W != "2250" || tbl.Grid.Cols[1].W != "6750" {
		t.Errorf("grid widths = %s/%s, want 2250/6750", tbl.Grid.Cols[0].W, tbl.Grid.Cols[1].W)
	}

	if len(tbl.Rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(tbl.Rows))
	}
	head := tbl.Rows[0]
	if head.Props.Header == nil {
		t.Error("head row is not marked as a repeating header")
	}
	if head.Cells[0].Props.Shading.Fill != "1F4E79" {
		t.Errorf("head cell fill = %q, want 1F4E79", head.Cells[0].Props.Shading.Fill)
	}
	headRun := head.Cells[0].Paragraphs[0].Runs[0]
	if headRun.Props.Bold == nil {
		t.Error("head cell run is not bold")
	}
	if headRun.Props.Color.Val != "FFFFFF" {
		t.Errorf("head cell run color = %q, want FFFFFF", headRun.Props.Color.Val)
	}

	if fill := tbl.Rows[1].Cells[0].Props.Shading.Fill; fill != "FFFFFF" {
		t.Errorf("first body row fill = %q, want FFFFFF", fill)
	}
	if fill := tbl.Rows[2].Cells[0].Props.Shading.Fill; fill != "EDF2F7" {
		t.Errorf("second body row fill = %q, want the stripe fill", fill)
	}
}

func TestWrite_TableSpans(t *testing.T) {
	doc := docWith(&model.Table{
		ColSpecs: make([]model.ColSpec, 3),
		Head: []model.Row{{Cells: []model.Cell{
			{Blocks: []model.Block{para("Span")}, ColSpan: 2},
			cell("C"),
		}}},
		Body: []model.Row{
			{Cells: []model.Cell{
				{Blocks: []model.Block{para("A")}, RowSpan: 2},
				cell("B1"), cell("C1"),
			}},
			{Cells: []model.Cell{cell("B2"), cell("C2")}},
		},
	})
	d := readDoc(t, buildDocx(t, doc))
	tbl := d.Body.Tables[0]

	head := tbl.Rows[0]
	if len(head.Cells) != 2 {
		t.Fatalf("head row has %d cells, want 2", len(head.Cells))
	}
	if head.Cells[0].Props.GridSpan.Val != "2" {
		t.Errorf("spanning head cell gridSpan = %q, want 2", head.Cells[0].Props.GridSpan.Val)
	}

	first := tbl.Rows[1]
	if first.Cells[0].Props.VMerge == nil || first.Cells[0].Props.VMerge.Val != "restart" {
		t.Errorf("row-spanning cell vMerge = %+v, want restart", first.Cells[0].Props.VMerge)
	}

	second := tbl.Rows[2]
	if len(second.Cells) != 3 {
		t.Fatalf("continuation row has %d cells, want 3", len(second.Cells))
	}
	cont := second.Cells[0]
	if cont.Props.VMerge == nil || cont.Props.VMerge.Val != "" {
		t.Errorf("continuation cell vMerge = %+v, want a bare marker", cont.Props.VMerge)
	}
	if got := paraText(second.Cells[1].Paragraphs[0]); got != "B2" {
		t.Errorf("cell after the continuation = %q, want B2", got)
	}
}

func TestWrite_EmptyTable(t *testing.T) {
	d := readDoc(t, buildDocx(t, docWith(&model.Table{})))

	if len(d.Body.Tables) != 1 {
		t.Fatalf("got %d tables, want 1", len(d.Body.Tables))
	}
	tbl := d.Body.Tables[0]
	if len(tbl.Rows) != 1 || len(tbl.Rows[0].Cells) != 1 {
		t.Fatalf("empty table lowered to %d rows, want one row with one cell", len(tbl.Rows))
	}
}

func TestWrite_Hyperlink(t *testing.T) {
	target := "https://example.com/report?year=2024&q=3"
	doc := docWith(&model.Paragraph{Inlines: []model.Inline{
		&model.Str{Text: "See "},
		&model.Link{Inlines: []model.Inline{&model.Str{Text: "the report"}}, Target: target},
	}})
	zr := buildDocx(t, doc)
	d := readDoc(t, zr)
	rels := readDocRels(t, zr)

	var linkRel *readRel
	for i, r := range rels.Items {
		if r.Type == relTypeHyperlink {
			linkRel = &rels.Items[i]
		}
	}
	if linkRel == nil {
		t.Fatal("no hyperlink relationship written")
	}
	if linkRel.Target != target {
		t.Errorf("relationship target = %q, want %q", linkRel.Target, target)
	}
	if linkRel.TargetMode != "External" {
		t.Errorf("relationship target mode = %q, want External", linkRel.TargetMode)
	}

	p := d.Body.Paragraphs[0]
	if len(p.Links) != 1 {
		t.Fatalf("got %d hyperlinks, want 1", len(p.Links))
	}
	link := p.Links[0]
	if link.ID != linkRel.ID {
		t.Errorf("hyperlink r:id = %q, relationship id = %q", link.ID, linkRel.ID)
	}
	if len(link.Runs) == 0 {
		t.Fatal("hyperlink has no runs")
	}
	if link.Runs[0].Props.Color.Val != "0000FF" {
		t.Errorf("link run color = %q, want 0000FF", link.Runs[0].Props.Color.Val)
	}
	if link.Runs[0].Props.Underline.Val != "single" {
		t.Errorf("link run underline = %q, want single", link.Runs[0].Props.Underline.Val)
	}
}

func TestWrite_PageBreakAndRule(t *testing.T) {
	doc := docWith(para("before"), &model.PageBreak{}, &model.HorizontalRule{}, para("after"))
	d := readDoc(t, buildDocx(t, doc))

	if len(d.Body.Paragraphs) != 4 {
		t.Fatalf("got %d paragraphs, want 4", len(d.Body.Paragraphs))
	}
	brk := d.Body.Paragraphs[1]
	if len(brk.Runs) != 1 || len(brk.Runs[0].Breaks) != 1 {
		t.Fatalf("page break paragraph runs = %+v", brk.Runs)
	}
	if brk.Runs[0].Breaks[0].Type != "page" {
		t.Errorf("break type = %q, want page", brk.Runs[0].Breaks[0].Type)
	}

	rule := d.Body.Paragraphs[2]
	if got := paraText(rule); got != strings.Repeat("—", 40) {
		t.Errorf("rule text = %q, want 40 em dashes", got)
	}
}

func TestWrite_Lists(t *testing.T) {
	doc := docWith(
		&model.BulletList{Items: [][]model.Block{
			{para("one")},
			{para("two")},
		}},
		&model.OrderedList{Start: 3, Items: [][]model.Block{
			{para("third")},
			{para("fourth")},
		}},
	)
	d := readDoc(t, buildDocx(t, doc))

	bullet := findParagraph(t, d, "• one")
	if bullet.Props.Indent.Left != "720" {
		t.Errorf("bullet indent = %s, want 720", bullet.Props.Indent.Left)
	}
	findParagraph(t, d, "3. third")
	findParagraph(t, d, "4. fourth")
}

func TestWrite_BlockQuoteIndent(t *testing.T) {
	doc := docWith(&model.BlockQuote{Blocks: []model.Block{para("quoted line")}})
	d := readDoc(t, buildDocx(t, doc))

	q := findParagraph(t, d, "quoted line")
	if q.Props.Indent.Left != "720" {
		t.Errorf("quote indent = %s, want 720", q.Props.Indent.Left)
	}
	if q.Props.Spacing.After != "80" {
		t.Errorf("quote spacing after = %s, want 80", q.Props.Spacing.After)
	}
}

func TestWrite_ImagePlaceholder(t *testing.T) {
	doc := docWith(&model.Paragraph{Inlines: []model.Inline{
		&model.Image{Inlines: []model.Inline{&model.Str{Text: "chart"}}, Target: "https://example.com/chart.png"},
	}})
	d := readDoc(t, buildDocx(t, doc))

	p := d.Body.Paragraphs[0]
	if got := paraText(p); got != "[Image: chart]" {
		t.Errorf("remote image rendered as %q, want the placeholder", got)
	}
	if p.Runs[0].Props.Italic == nil {
		t.Error("placeholder run is not italic")
	}
}

func TestWrite_ImageEmbed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dot.png")
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.Black)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating fixture image: %v", err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encoding fixture image: %v", err)
	}
	f.Close()

	doc := docWith(&model.Paragraph{Inlines: []model.Inline{
		&model.Image{Inlines: []model.Inline{&model.Str{Text: "dot"}}, Target: path},
	}})
	zr := buildDocx(t, doc)
	d := readDoc(t, zr)

	media := partData(t, zr, "word/media/image1.png")
	if len(media) == 0 {
		t.Fatal("embedded image part is empty")
	}

	rels := readDocRels(t, zr)
	var imageRel *readRel
	for i, r := range rels.Items {
		if r.Type == relTypeImage {
			imageRel = &rels.Items[i]
		}
	}
	if imageRel == nil {
		t.Fatal("no image relationship written")
	}
	if imageRel.Target != "media/image1.png" {
		t.Errorf("image relationship target = %q", imageRel.Target)
	}

	types := string(partData(t, zr, partContentTypes))
	if !strings.Contains(types, `Extension="png"`) {
		t.Error("content types do not declare the png default")
	}

	p := d.Body.Paragraphs[0]
	if len(p.Runs) != 1 || len(p.Runs[0].Drawings) != 1 {
		t.Fatalf("image paragraph runs = %+v, want one drawing run", p.Runs)
	}
	ext := p.Runs[0].Drawings[0].Extent
	if ext.CX != "19050" || ext.CY != "9525" {
		t.Errorf("drawing extent = %s x %s EMU, want 19050 x 9525", ext.CX, ext.CY)
	}
}

func TestWrite_RawContent(t *testing.T) {
	doc := docWith(
		&model.RawBlock{Format: "openxml", Text: `<w:p><w:r><w:t>spliced</w:t></w:r></w:p>`},
		&model.RawBlock{Format: "html", Text: `<p>dropped</p>`},
	)
	zr := buildDocx(t, doc)

	part := string(partData(t, zr, partDocument))
	if !strings.Contains(part, "<w:t>spliced</w:t>") {
		t.Error("native raw block was not spliced into the document part")
	}
	if strings.Contains(part, "dropped") {
		t.Error("foreign raw block leaked into the document part")
	}
}

func TestWrite_RawMalformed(t *testing.T) {
	doc := docWith(&model.RawBlock{Format: "openxml", Text: `<w:p><w:r>`})
	_, err := Write(doc, style.Resolve(doc.Meta))
	if err == nil {
		t.Fatal("malformed raw fragment did not fail")
	}
	var encErr *EncodingError
	if !errors.As(err, &encErr) {
		t.Errorf("error = %T, want *EncodingError", err)
	}
}

func TestWrite_FontSizeFromMetadata(t *testing.T) {
	doc := docWith(
		&model.Header{Level: 1, Inlines: []model.Inline{&model.Str{Text: "Top"}}},
		para("body"),
	)
	doc.Meta = model.Metadata{FontSize: 11}
	zr := buildDocx(t, doc)

	var styles readStyles
	if err := xml.Unmarshal(partData(t, zr, partStyles), &styles); err != nil {
		t.Fatalf("unmarshaling styles part: %v", err)
	}
	if styles.Defaults.Size.Val != "22" {
		t.Errorf("document default size = %s half-points, want 22", styles.Defaults.Size.Val)
	}

	d := readDoc(t, zr)
	h := findParagraph(t, d, "Top")
	if h.Runs[0].Props.Size.Val != "36" {
		t.Errorf("h1 size at 11pt base = %s half-points, want 36", h.Runs[0].Props.Size.Val)
	}
}

func TestWrite_Deterministic(t *testing.T) {
	doc := docWith(
		&model.Header{Level: 1, ID: "intro", Inlines: []model.Inline{&model.Str{Text: "Intro"}}},
		para("Some body text."),
		&model.Table{
			ColSpecs: make([]model.ColSpec, 2),
			Body:     []model.Row{{Cells: []model.Cell{cell("a"), cell("b")}}},
		},
	)
	doc.Meta = model.Metadata{Title: "Same"}

	first, err := Write(doc, style.Resolve(doc.Meta))
	if err != nil {
		t.Fatalf("first render failed: %v", err)
	}
	second, err := Write(doc, style.Resolve(doc.Meta))
	if err != nil {
		t.Fatalf("second render failed: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("rendering the same document twice produced different archives")
	}
}

func TestWrite_CorePropertiesFromMetadata(t *testing.T) {
	doc := docWith(para("x"))
	doc.Meta = model.Metadata{Title: "T", Author: "A", Subtitle: "S"}
	zr := buildDocx(t, doc)

	core := string(partData(t, zr, partCore))
	for _, want := range []string{"<dc:title>T</dc:title>", "<dc:creator>A</dc:creator>", "<dc:subject>S</dc:subject>"} {
		if !strings.Contains(core, want) {
			t.Errorf("core properties missing %s", want)
		}
	}
}
