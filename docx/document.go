package docx

import (
	"encoding/xml"
	"io"
	"strings"
)

// XML namespaces used by the document parts.
const (
	nsW   = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsR   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsWP  = "http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"
	nsA   = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsPic = "http://schemas.openxmlformats.org/drawingml/2006/picture"
	nsCP  = "http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
	nsDC  = "http://purl.org/dc/elements/1.1/"
)

// Relationship type identifiers.
const (
	relTypeDocument  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	relTypeCore      = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
	relTypeApp       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties"
	relTypeStyles    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles"
	relTypeHyperlink = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink"
	relTypeImage     = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"
)

// The structs below describe word/document.xml and its sibling parts in the
// form the encoder writes them. Element and attribute names carry literal
// prefixes (w:, r:, wp:, a:, pic:) which the encoder emits verbatim; the
// matching xmlns declarations sit on each part's root element. Field order
// within the property structs follows the schema's required child order.

type documentXML struct {
	XMLName  xml.Name `xml:"w:document"`
	XmlnsW   string   `xml:"xmlns:w,attr"`
	XmlnsR   string   `xml:"xmlns:r,attr"`
	XmlnsWP  string   `xml:"xmlns:wp,attr"`
	XmlnsA   string   `xml:"xmlns:a,attr"`
	XmlnsPic string   `xml:"xmlns:pic,attr"`
	Body     bodyXML  `xml:"w:body"`
}

// bodyXML holds the block-level content. Content items are *paragraphXML,
// *tableXML, or rawXML values and marshal under their own element names.
type bodyXML struct {
	Content []any
	SectPr  *sectPrXML `xml:"w:sectPr,omitempty"`
}

type sectPrXML struct {
	PgSz  pgSzXML  `xml:"w:pgSz"`
	PgMar pgMarXML `xml:"w:pgMar"`
}

type pgSzXML struct {
	W int `xml:"w:w,attr"`
	H int `xml:"w:h,attr"`
}

type pgMarXML struct {
	Top    int `xml:"w:top,attr"`
	Right  int `xml:"w:right,attr"`
	Bottom int `xml:"w:bottom,attr"`
	Left   int `xml:"w:left,attr"`
}

// paragraphXML is a <w:p> element. Content holds runs, hyperlinks, bookmark
// markers, and raw fragments in document order.
type paragraphXML struct {
	XMLName xml.Name      `xml:"w:p"`
	Props   *paraPropsXML `xml:"w:pPr,omitempty"`
	Content []any
}

type paraPropsXML struct {
	Spacing *spacingXML `xml:"w:spacing,omitempty"`
	Indent  *indentXML  `xml:"w:ind,omitempty"`
	Justify *valXML     `xml:"w:jc,omitempty"`
}

// spacingXML values are twentieths of a point.
type spacingXML struct {
	Before   int    `xml:"w:before,attr,omitempty"`
	After    int    `xml:"w:after,attr,omitempty"`
	Line     int    `xml:"w:line,attr,omitempty"`
	LineRule string `xml:"w:lineRule,attr,omitempty"`
}

type indentXML struct {
	Left int `xml:"w:left,attr"`
}

type valXML struct {
	Val string `xml:"w:val,attr"`
}

type intValXML struct {
	Val int `xml:"w:val,attr"`
}

// flagXML marshals as an empty element; presence is the value.
type flagXML struct{}

// runXML is a <w:r> element. At most one content field is set per run.
type runXML struct {
	XMLName xml.Name     `xml:"w:r"`
	Props   *runPropsXML `xml:"w:rPr,omitempty"`
	Text    *textXML     `xml:"w:t,omitempty"`
	Break   *breakXML    `xml:"w:br,omitempty"`
	Drawing *drawingXML  `xml:"w:drawing,omitempty"`
}

type runPropsXML struct {
	Fonts     *fontsXML  `xml:"w:rFonts,omitempty"`
	Bold      *flagXML   `xml:"w:b,omitempty"`
	Italic    *flagXML   `xml:"w:i,omitempty"`
	SmallCaps *flagXML   `xml:"w:smallCaps,omitempty"`
	Strike    *flagXML   `xml:"w:strike,omitempty"`
	Color     *valXML    `xml:"w:color,omitempty"`
	Size      *intValXML `xml:"w:sz,omitempty"`
	SizeCs    *intValXML `xml:"w:szCs,omitempty"`
	Underline *valXML    `xml:"w:u,omitempty"`
	VertAlign *valXML    `xml:"w:vertAlign,omitempty"`
}

type fontsXML struct {
	ASCII string `xml:"w:ascii,attr"`
	HAnsi string `xml:"w:hAnsi,attr"`
	CS    string `xml:"w:cs,attr"`
}

type textXML struct {
	Space string `xml:"xml:space,attr,omitempty"`
	Value string `xml:",chardata"`
}

type breakXML struct {
	Type string `xml:"w:type,attr,omitempty"`
}

type hyperlinkXML struct {
	XMLName xml.Name  `xml:"w:hyperlink"`
	RelID   string    `xml:"r:id,attr"`
	Runs    []*runXML `xml:"w:r"`
}

type bookmarkStartXML struct {
	XMLName xml.Name `xml:"w:bookmarkStart"`
	ID      int      `xml:"w:id,attr"`
	Name    string   `xml:"w:name,attr"`
}

type bookmarkEndXML struct {
	XMLName xml.Name `xml:"w:bookmarkEnd"`
	ID      int      `xml:"w:id,attr"`
}

type tableXML struct {
	XMLName xml.Name       `xml:"w:tbl"`
	Props   tblPropsXML    `xml:"w:tblPr"`
	Grid    tblGridXML     `xml:"w:tblGrid"`
	Rows    []*tableRowXML `xml:"w:tr"`
}

type tblPropsXML struct {
	Width   *widthXML      `xml:"w:tblW,omitempty"`
	Borders *tblBordersXML `xml:"w:tblBorders,omitempty"`
	Layout  *tblLayoutXML  `xml:"w:tblLayout,omitempty"`
}

// widthXML measures in the unit named by Type, normally "dxa".
type widthXML struct {
	W    int    `xml:"w:w,attr"`
	Type string `xml:"w:type,attr"`
}

type tblLayoutXML struct {
	Type string `xml:"w:type,attr"`
}

type tblBordersXML struct {
	Top     borderXML `xml:"w:top"`
	Left    borderXML `xml:"w:left"`
	Bottom  borderXML `xml:"w:bottom"`
	Right   borderXML `xml:"w:right"`
	InsideH borderXML `xml:"w:insideH"`
	InsideV borderXML `xml:"w:insideV"`
}

// borderXML size is in eighths of a point.
type borderXML struct {
	Val   string `xml:"w:val,attr"`
	Size  int    `xml:"w:sz,attr"`
	Space int    `xml:"w:space,attr"`
	Color string `xml:"w:color,attr"`
}

type tblGridXML struct {
	Cols []gridColXML `xml:"w:gridCol"`
}

type gridColXML struct {
	W int `xml:"w:w,attr"`
}

type tableRowXML struct {
	XMLName xml.Name        `xml:"w:tr"`
	Props   *rowPropsXML    `xml:"w:trPr,omitempty"`
	Cells   []*tableCellXML `xml:"w:tc"`
}

type rowPropsXML struct {
	Header *flagXML `xml:"w:tblHeader,omitempty"`
}

type tableCellXML struct {
	XMLName    xml.Name        `xml:"w:tc"`
	Props      *cellPropsXML   `xml:"w:tcPr,omitempty"`
	Paragraphs []*paragraphXML `xml:"w:p"`
}

type cellPropsXML struct {
	Width    *widthXML      `xml:"w:tcW,omitempty"`
	GridSpan *intValXML     `xml:"w:gridSpan,omitempty"`
	VMerge   *vMergeXML     `xml:"w:vMerge,omitempty"`
	Borders  *tblBordersXML `xml:"w:tcBorders,omitempty"`
	Shading  *shadingXML    `xml:"w:shd,omitempty"`
}

// vMergeXML with Val "restart" opens a vertical merge; an empty Val marks a
// continuation cell covered by the merge above it.
type vMergeXML struct {
	Val string `xml:"w:val,attr,omitempty"`
}

type shadingXML struct {
	Val   string `xml:"w:val,attr"`
	Color string `xml:"w:color,attr"`
	Fill  string `xml:"w:fill,attr"`
}

// Drawing chain for inline pictures. Extents are in English Metric Units.

type drawingXML struct {
	Inline inlineDrawingXML `xml:"wp:inline"`
}

type inlineDrawingXML struct {
	DistT   int        `xml:"distT,attr"`
	DistB   int        `xml:"distB,attr"`
	DistL   int        `xml:"distL,attr"`
	DistR   int        `xml:"distR,attr"`
	Extent  extentXML  `xml:"wp:extent"`
	DocPr   docPrXML   `xml:"wp:docPr"`
	Graphic graphicXML `xml:"a:graphic"`
}

type extentXML struct {
	CX int64 `xml:"cx,attr"`
	CY int64 `xml:"cy,attr"`
}

type docPrXML struct {
	ID    int    `xml:"id,attr"`
	Name  string `xml:"name,attr"`
	Descr string `xml:"descr,attr,omitempty"`
}

type graphicXML struct {
	Data graphicDataXML `xml:"a:graphicData"`
}

type graphicDataXML struct {
	URI string `xml:"uri,attr"`
	Pic picXML `xml:"pic:pic"`
}

type picXML struct {
	NvPicPr  nvPicPrXML  `xml:"pic:nvPicPr"`
	BlipFill blipFillXML `xml:"pic:blipFill"`
	SpPr     spPrXML     `xml:"pic:spPr"`
}

type nvPicPrXML struct {
	CNvPr    cNvPrXML `xml:"pic:cNvPr"`
	CNvPicPr flagXML  `xml:"pic:cNvPicPr"`
}

type cNvPrXML struct {
	ID   int    `xml:"id,attr"`
	Name string `xml:"name,attr"`
}

type blipFillXML struct {
	Blip    blipXML    `xml:"a:blip"`
	Stretch stretchXML `xml:"a:stretch"`
}

type blipXML struct {
	Embed string `xml:"r:embed,attr"`
}

type stretchXML struct {
	FillRect flagXML `xml:"a:fillRect"`
}

type spPrXML struct {
	Xfrm     xfrmXML     `xml:"a:xfrm"`
	PrstGeom prstGeomXML `xml:"a:prstGeom"`
}

type xfrmXML struct {
	Off offXML `xml:"a:off"`
	Ext extXML `xml:"a:ext"`
}

type offXML struct {
	X int64 `xml:"x,attr"`
	Y int64 `xml:"y,attr"`
}

type extXML struct {
	CX int64 `xml:"cx,attr"`
	CY int64 `xml:"cy,attr"`
}

type prstGeomXML struct {
	Prst  string  `xml:"prst,attr"`
	AvLst flagXML `xml:"a:avLst"`
}

// Styles part.

type stylesXML struct {
	XMLName     xml.Name       `xml:"w:styles"`
	XmlnsW      string         `xml:"xmlns:w,attr"`
	DocDefaults docDefaultsXML `xml:"w:docDefaults"`
	Styles      []styleDefXML  `xml:"w:style"`
}

type docDefaultsXML struct {
	RPrDefault rPrDefaultXML `xml:"w:rPrDefault"`
}

type rPrDefaultXML struct {
	Props runPropsXML `xml:"w:rPr"`
}

type styleDefXML struct {
	Type    string `xml:"w:type,attr"`
	StyleID string `xml:"w:styleId,attr"`
	Default string `xml:"w:default,attr,omitempty"`
	Name    valXML `xml:"w:name"`
}

// Package-level parts.

type relationshipsXML struct {
	XMLName xml.Name          `xml:"Relationships"`
	Xmlns   string            `xml:"xmlns,attr"`
	Items   []relationshipXML `xml:"Relationship"`
}

type relationshipXML struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr,omitempty"`
}

type contentTypesXML struct {
	XMLName   xml.Name          `xml:"Types"`
	Xmlns     string            `xml:"xmlns,attr"`
	Defaults  []defaultTypeXML  `xml:"Default"`
	Overrides []overrideTypeXML `xml:"Override"`
}

type defaultTypeXML struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

type overrideTypeXML struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}

type corePropsXML struct {
	XMLName xml.Name `xml:"cp:coreProperties"`
	XmlnsCP string   `xml:"xmlns:cp,attr"`
	XmlnsDC string   `xml:"xmlns:dc,attr"`
	Title   string   `xml:"dc:title,omitempty"`
	Creator string   `xml:"dc:creator,omitempty"`
	Subject string   `xml:"dc:subject,omitempty"`
}

type appPropsXML struct {
	XMLName     xml.Name `xml:"Properties"`
	Xmlns       string   `xml:"xmlns,attr"`
	Application string   `xml:"Application"`
}

// rawXML splices a pre-built WordprocessingML fragment into the output
// stream. The fragment is re-tokenized so malformed input surfaces as an
// error instead of corrupting the part.
type rawXML struct {
	Text string
}

func (r rawXML) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	d := xml.NewDecoder(strings.NewReader(r.Text))
	for {
		tok, err := d.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := e.EncodeToken(foldPrefix(tok)); err != nil {
			return err
		}
	}
}

// foldPrefix rejoins the prefix the decoder split off an unbound name, so
// w:p in the fragment comes back out as w:p rather than a mangled pair.
func foldPrefix(tok xml.Token) xml.Token {
	switch t := tok.(type) {
	case xml.StartElement:
		t.Name = foldName(t.Name)
		for i, a := range t.Attr {
			if a.Name.Space == "xmlns" {
				t.Attr[i].Name = xml.Name{Local: "xmlns:" + a.Name.Local}
				continue
			}
			t.Attr[i].Name = foldName(a.Name)
		}
		return t
	case xml.EndElement:
		t.Name = foldName(t.Name)
		return t
	default:
		return tok
	}
}

func foldName(n xml.Name) xml.Name {
	if n.Space == "http://www.w3.org/XML/1998/namespace" {
		return xml.Name{Local: "xml:" + n.Local}
	}
	if n.Space == "" || strings.Contains(n.Space, "/") {
		return xml.Name{Local: n.Local}
	}
	return xml.Name{Local: n.Space + ":" + n.Local}
}
