package typeset

import (
	"fmt"
	"io"
	"os"

	"github.com/tsawler/typeset/docx"
	"github.com/tsawler/typeset/htmldoc"
	"github.com/tsawler/typeset/markdown"
	"github.com/tsawler/typeset/model"
	"github.com/tsawler/typeset/style"
)

// Converter provides a fluent interface for turning Markdown source into
// rendered documents. Each configuration method returns a new Converter
// instance, making it safe for concurrent use and allowing method chaining.
type Converter struct {
	// Source (exactly one is used)
	filename  string
	source    []byte
	hasSource bool
	reader    io.Reader

	// Configuration
	options ConvertOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a copy of the Converter with its own options.
// This ensures immutability - each chain method returns a new instance.
func (c *Converter) clone() *Converter {
	return &Converter{
		filename:  c.filename,
		source:    c.source,
		hasSource: c.hasSource,
		reader:    c.reader,
		options:   c.options.clone(),
		err:       c.err,
	}
}

// ============================================================================
// Configuration Methods (return new Converter instance)
// ============================================================================

// BaseFontSize overrides the document body size in points, taking precedence
// over the front matter fontsize key. Sizes below 1 are ignored.
//
// Example:
//
//	html, _, err := typeset.Open("doc.md").BaseFontSize(11).HTML()
func (c *Converter) BaseFontSize(points int) *Converter {
	newConv := c.clone()
	if points > 0 {
		newConv.options.baseFontSize = points
	}
	return newConv
}

// Highlight enables syntax highlighting for fenced code blocks in HTML
// output, using the named chroma style. Unknown languages fall back to
// plain rendering.
//
// Example:
//
//	html, _, err := typeset.Open("doc.md").Highlight("monokai").HTML()
func (c *Converter) Highlight(styleName string) *Converter {
	newConv := c.clone()
	newConv.options.highlight = styleName
	return newConv
}

// StrictTables makes grid-table structure problems fail the conversion
// instead of degrading the table region to plain text with a warning.
//
// Example:
//
//	doc, _, err := typeset.Open("doc.md").StrictTables().Document()
func (c *Converter) StrictTables() *Converter {
	newConv := c.clone()
	newConv.options.strictTables = true
	return newConv
}

// ============================================================================
// Terminal Operations (execute the conversion and return results)
// ============================================================================

// Document parses the source and returns the document model.
//
// Returns the document, any warnings encountered while reading, and an
// error if parsing failed. Warnings indicate non-fatal issues (e.g., a
// malformed table that degraded to plain text) where conversion succeeded
// but results may be imperfect.
//
// Example:
//
//	doc, warnings, err := typeset.Open("report.md").Document()
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", typeset.FormatWarnings(warnings))
//	}
func (c *Converter) Document() (*model.Document, []Warning, error) {
	if c.err != nil {
		return nil, nil, c.err
	}

	source, err := c.loadSource()
	if err != nil {
		return nil, nil, err
	}

	reader := markdown.NewReader()
	reader.StrictTables = c.options.strictTables

	doc, warnings, err := reader.Read(source)
	if err != nil {
		return nil, nil, err
	}
	return doc, warnings, nil
}

// Stylesheet parses the source and returns the stylesheet its output will
// be rendered with, after applying any converter overrides. Warnings from
// parsing are available through Document.
//
// Example:
//
//	sheet := typeset.Must(typeset.Open("report.md").Stylesheet())
//	fmt.Println("body size:", sheet.BaseFontSize)
func (c *Converter) Stylesheet() (style.Sheet, error) {
	doc, _, err := c.Document()
	if err != nil {
		return style.Sheet{}, err
	}
	return c.resolveSheet(doc), nil
}

// HTML converts the source and returns a complete standalone HTML page.
//
// Example:
//
//	html, warnings, err := typeset.Open("report.md").Highlight("github").HTML()
func (c *Converter) HTML() ([]byte, []Warning, error) {
	doc, warnings, err := c.Document()
	if err != nil {
		return nil, warnings, err
	}

	out, err := htmldoc.Write(doc, c.resolveSheet(doc))
	if err != nil {
		return nil, warnings, err
	}
	return out, warnings, nil
}

// DOCX converts the source and returns a complete DOCX archive.
//
// Example:
//
//	out, warnings, err := typeset.Open("report.md").DOCX()
//	if err == nil {
//	    os.WriteFile("report.docx", out, 0644)
//	}
func (c *Converter) DOCX() ([]byte, []Warning, error) {
	doc, warnings, err := c.Document()
	if err != nil {
		return nil, warnings, err
	}

	out, err := docx.Write(doc, c.resolveSheet(doc))
	if err != nil {
		return nil, warnings, err
	}
	return out, warnings, nil
}

// ============================================================================
// Internal helpers
// ============================================================================

// loadSource fetches the Markdown source from whichever input the Converter
// was built with.
func (c *Converter) loadSource() ([]byte, error) {
	if c.hasSource {
		return c.source, nil
	}
	if c.reader != nil {
		data, err := io.ReadAll(c.reader)
		if err != nil {
			return nil, fmt.Errorf("reading source: %w", err)
		}
		return data, nil
	}
	if c.filename == "" {
		return nil, fmt.Errorf("no source specified")
	}
	data, err := os.ReadFile(c.filename)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", c.filename, err)
	}
	return data, nil
}

// resolveSheet builds the stylesheet for a parsed document and applies the
// converter's overrides on top of the metadata-derived values.
func (c *Converter) resolveSheet(doc *model.Document) style.Sheet {
	sheet := style.Resolve(doc.Meta)
	if c.options.baseFontSize > 0 {
		sheet.BaseFontSize = c.options.baseFontSize
	}
	sheet.Highlight = c.options.highlight
	return sheet
}
