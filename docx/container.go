package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"sort"

	"github.com/tsawler/typeset/model"
)

// EncodingError reports a failure while serializing a part or assembling the
// archive.
type EncodingError struct {
	Err error
}

func (e *EncodingError) Error() string { return "encoding docx container: " + e.Err.Error() }

func (e *EncodingError) Unwrap() error { return e.Err }

// Part names inside the archive.
const (
	partContentTypes = "[Content_Types].xml"
	partRootRels     = "_rels/.rels"
	partDocument     = "word/document.xml"
	partDocumentRels = "word/_rels/document.xml.rels"
	partStyles       = "word/styles.xml"
	partCore         = "docProps/core.xml"
	partApp          = "docProps/app.xml"
)

// pack assembles the OPC container around the accumulated body. Entries are
// written in a fixed order with zero timestamps, so identical content yields
// identical archives.
func (w *writer) pack(meta model.Metadata) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	parts := []struct {
		name string
		v    any
	}{
		{partContentTypes, w.contentTypes()},
		{partRootRels, rootRelationships()},
		{partDocument, w.document()},
		{partDocumentRels, w.documentRelationships()},
		{partStyles, w.styles()},
		{partCore, coreProperties(meta)},
		{partApp, appProperties()},
	}
	for _, p := range parts {
		if err := writeXMLPart(zw, p.name, p.v); err != nil {
			return nil, &EncodingError{Err: err}
		}
	}
	for _, m := range w.media {
		f, err := zw.Create("word/media/" + m.name)
		if err == nil {
			_, err = f.Write(m.data)
		}
		if err != nil {
			return nil, &EncodingError{Err: err}
		}
	}
	if err := zw.Close(); err != nil {
		return nil, &EncodingError{Err: err}
	}
	return buf.Bytes(), nil
}

// writeXMLPart serializes v into a fresh archive entry.
func writeXMLPart(zw *zip.Writer, name string, v any) error {
	f, err := zw.Create(name)
	if err != nil {
		return err
	}
	if _, err := f.Write([]byte(xml.Header)); err != nil {
		return err
	}
	data, err := xml.Marshal(v)
	if err != nil {
		return err
	}
	_, err = f.Write(data)
	return err
}

func (w *writer) document() *documentXML {
	return &documentXML{
		XmlnsW:   nsW,
		XmlnsR:   nsR,
		XmlnsWP:  nsWP,
		XmlnsA:   nsA,
		XmlnsPic: nsPic,
		Body: bodyXML{
			Content: w.body,
			SectPr: &sectPrXML{
				PgSz:  pgSzXML{W: pageWidth, H: pageHeight},
				PgMar: pgMarXML{Top: pageMargin, Right: pageMargin, Bottom: pageMargin, Left: pageMargin},
			},
		},
	}
}

func (w *writer) contentTypes() *contentTypesXML {
	ct := &contentTypesXML{
		Xmlns: "http://schemas.openxmlformats.org/package/2006/content-types",
		Defaults: []defaultTypeXML{
			{Extension: "rels", ContentType: "application/vnd.openxmlformats-package.relationships+xml"},
			{Extension: "xml", ContentType: "application/xml"},
		},
		Overrides: []overrideTypeXML{
			{PartName: "/" + partDocument, ContentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"},
			{PartName: "/" + partStyles, ContentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"},
			{PartName: "/" + partCore, ContentType: "application/vnd.openxmlformats-package.core-properties+xml"},
			{PartName: "/" + partApp, ContentType: "application/vnd.openxmlformats-officedocument.extended-properties+xml"},
		},
	}
	seen := make(map[string]bool)
	var exts []string
	for _, m := range w.media {
		if !seen[m.ext] {
			seen[m.ext] = true
			exts = append(exts, m.ext)
		}
	}
	sort.Strings(exts)
	for _, ext := range exts {
		ct.Defaults = append(ct.Defaults, defaultTypeXML{Extension: ext, ContentType: imageContentTypes[ext]})
	}
	return ct
}

func rootRelationships() *relationshipsXML {
	return &relationshipsXML{
		Xmlns: "http://schemas.openxmlformats.org/package/2006/relationships",
		Items: []relationshipXML{
			{ID: "rId1", Type: relTypeDocument, Target: partDocument},
			{ID: "rId2", Type: relTypeCore, Target: partCore},
			{ID: "rId3", Type: relTypeApp, Target: partApp},
		},
	}
}

func (w *writer) documentRelationships() *relationshipsXML {
	items := []relationshipXML{{ID: "rId1", Type: relTypeStyles, Target: "styles.xml"}}
	return &relationshipsXML{
		Xmlns: "http://schemas.openxmlformats.org/package/2006/relationships",
		Items: append(items, w.rels...),
	}
}

// styles builds the minimal styles part: document defaults carrying the
// sheet's base font, size, and text color, plus a default Normal style.
func (w *writer) styles() *stylesXML {
	props := runPropsXML{
		Fonts:  w.fonts(w.sheet.BaseFontFamily),
		Color:  &valXML{Val: w.sheet.TextColor},
		Size:   &intValXML{Val: w.baseSize()},
		SizeCs: &intValXML{Val: w.baseSize()},
	}
	return &stylesXML{
		XmlnsW:      nsW,
		DocDefaults: docDefaultsXML{RPrDefault: rPrDefaultXML{Props: props}},
		Styles: []styleDefXML{{
			Type:    "paragraph",
			StyleID: "Normal",
			Default: "1",
			Name:    valXML{Val: "Normal"},
		}},
	}
}

// coreProperties fills the package metadata part. Timestamps are omitted so
// rendering the same document twice produces the same bytes.
func coreProperties(meta model.Metadata) *corePropsXML {
	return &corePropsXML{
		XmlnsCP: nsCP,
		XmlnsDC: nsDC,
		Title:   meta.Title,
		Creator: meta.Author,
		Subject: meta.Subtitle,
	}
}

func appProperties() *appPropsXML {
	return &appPropsXML{
		Xmlns:       "http://schemas.openxmlformats.org/officeDocument/2006/extended-properties",
		Application: "typeset",
	}
}
