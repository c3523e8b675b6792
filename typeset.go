// Package typeset provides a fluent API for converting Markdown documents
// into styled HTML and DOCX output.
//
// Basic usage:
//
//	html, warnings, err := typeset.Open("report.md").HTML()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", typeset.FormatWarnings(warnings))
//	}
//
// With options:
//
//	docx, _, err := typeset.Open("report.md").
//	    BaseFontSize(11).
//	    Highlight("monokai").
//	    DOCX()
//
// For advanced use cases, the lower-level markdown, htmldoc, and docx
// packages are also available.
package typeset

import (
	"io"

	"github.com/tsawler/typeset/markdown"
)

// Warning reports a non-fatal problem found while converting a document.
type Warning = markdown.Warning

// Open prepares the named Markdown file for conversion and returns a
// Converter for fluent configuration. The file is read when a terminal
// operation runs.
//
// Example:
//
//	html, warnings, err := typeset.Open("report.md").HTML()
func Open(filename string) *Converter {
	return &Converter{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromString prepares in-memory Markdown source for conversion.
//
// Example:
//
//	html, _, err := typeset.FromString("# Title\n\nBody.").HTML()
func FromString(source string) *Converter {
	return &Converter{
		source:    []byte(source),
		hasSource: true,
		options:   defaultOptions(),
	}
}

// FromReader prepares Markdown source from an already-opened reader. The
// reader is drained by the first terminal operation; the caller remains
// responsible for closing it.
//
// Example:
//
//	docx, warnings, err := typeset.FromReader(os.Stdin).DOCX()
func FromReader(r io.Reader) *Converter {
	return &Converter{
		reader:  r,
		options: defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	sheet := typeset.Must(typeset.Open("report.md").Stylesheet())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustConvert is a helper that wraps a terminal operation returning
// (T, []Warning, error) and panics if the error is non-nil. It discards
// warnings and returns just the value.
//
// Example:
//
//	html := typeset.MustConvert(typeset.FromString(src).HTML())
func MustConvert[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
