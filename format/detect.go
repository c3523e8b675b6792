// Package format provides document format detection for the typeset library.
package format

import (
	"archive/zip"
	"io"
	"path/filepath"
	"strings"
)

// Format represents a supported document format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// Markdown indicates a Markdown source document.
	Markdown
	// HTML indicates an HTML document.
	HTML
	// DOCX indicates a Microsoft Word (.docx) document.
	DOCX
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case Markdown:
		return "Markdown"
	case HTML:
		return "HTML"
	case DOCX:
		return "DOCX"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case Markdown:
		return ".md"
	case HTML:
		return ".html"
	case DOCX:
		return ".docx"
	default:
		return ""
	}
}

// Detect determines the format from a filename extension.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".md", ".markdown", ".mdown", ".mkd":
		return Markdown
	case ".html", ".htm":
		return HTML
	case ".docx":
		return DOCX
	default:
		return Unknown
	}
}

// DetectFromMagic checks leading bytes to determine the format. Returns
// Unknown when the bytes alone cannot decide; ZIP archives in particular
// need DetectFromReader to inspect their contents.
func DetectFromMagic(data []byte) Format {
	if len(data) < 4 {
		return Unknown
	}

	// ZIP magic (DOCX is a ZIP archive): PK\x03\x04
	if data[0] == 0x50 && data[1] == 0x4B && data[2] == 0x03 && data[3] == 0x04 {
		// Could be DOCX or any other ZIP-based format.
		return Unknown
	}

	if detectHTMLMagic(data) {
		return HTML
	}

	if detectMarkdownMagic(data) {
		return Markdown
	}

	return Unknown
}

// detectHTMLMagic checks if the data looks like HTML content.
func detectHTMLMagic(data []byte) bool {
	data = trimLeadingSpace(data)
	if len(data) == 0 {
		return false
	}

	upper := strings.ToUpper(string(data))
	if strings.HasPrefix(upper, "<!DOCTYPE HTML") {
		return true
	}
	if strings.HasPrefix(upper, "<HTML") {
		return true
	}
	// XML declaration followed by html-like content could be XHTML.
	if strings.HasPrefix(upper, "<?XML") && strings.Contains(upper[:min(500, len(upper))], "<HTML") {
		return true
	}

	return false
}

// detectMarkdownMagic checks for signatures that only Markdown sources
// carry: a YAML front matter fence or an ATX heading on the first line.
func detectMarkdownMagic(data []byte) bool {
	data = trimLeadingSpace(data)
	if len(data) == 0 {
		return false
	}
	text := string(data)
	if strings.HasPrefix(text, "---\n") || strings.HasPrefix(text, "---\r\n") {
		return true
	}
	if strings.HasPrefix(text, "#") {
		rest := strings.TrimLeft(text, "#")
		return strings.HasPrefix(rest, " ") || strings.HasPrefix(rest, "\t")
	}
	return false
}

func trimLeadingSpace(data []byte) []byte {
	start := 0
	for start < len(data) && (data[start] == ' ' || data[start] == '\t' || data[start] == '\n' || data[start] == '\r') {
		start++
	}
	return data[start:]
}

// DetectFromReader inspects content to determine the format. This is more
// reliable than extension-based detection and can tell DOCX apart from
// other ZIP-based formats.
func DetectFromReader(r io.ReaderAt, size int64) (Format, error) {
	magic := make([]byte, 512)
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	magic = magic[:n]

	if len(magic) >= 4 && magic[0] == 0x50 && magic[1] == 0x4B && magic[2] == 0x03 && magic[3] == 0x04 {
		return detectZIPFormat(r, size)
	}

	if detectHTMLMagic(magic) {
		return HTML, nil
	}

	if detectMarkdownMagic(magic) {
		return Markdown, nil
	}

	return Unknown, nil
}

// detectZIPFormat inspects a ZIP archive for Office Open XML markers.
func detectZIPFormat(r io.ReaderAt, size int64) (Format, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return Unknown, err
	}

	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, "word/") {
			return DOCX, nil
		}
	}

	return Unknown, nil
}
