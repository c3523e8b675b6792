// Package markdown converts Markdown source into the document model.
//
// This package orchestrates front-matter extraction, grid-table scanning,
// and CommonMark parsing into a single read path.
//
// # Reading
//
// Use [NewReader] and [Reader.Read]:
//
//	reader := markdown.NewReader()
//	doc, warnings, err := reader.Read(source)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Read is total for well-formed front matter: structural problems in the
// body degrade to plain text and are reported as [Warning] values rather
// than errors. Set [Reader.StrictTables] to turn malformed grid tables into
// hard errors.
//
// # Pipeline
//
// A document passes through four stages:
//
//  1. YAML front matter is split off and mapped to [model.Metadata].
//  2. Pandoc-style ::: div fences are stripped; page-break divs become
//     \newpage directives.
//  3. Grid tables are extracted by the tables package; each region is
//     replaced by a placeholder line so the Markdown parser never sees
//     raw table art.
//  4. The residual text is parsed as CommonMark with GFM extensions and
//     lowered to model blocks; placeholders are swapped for the parsed
//     tables and directive paragraphs are resolved.
//
// Cell content found by the table scan is fed back through the same
// pipeline, so inline formatting and paragraph breaks work inside cells.
//
// # Supported syntax
//
// The reader understands CommonMark plus tables (pipe and grid),
// strikethrough, autolinks, task lists, definition lists, and footnotes.
// Footnote bodies are inlined into [model.Note] elements at their use
// sites. Headings receive stable identifiers derived from their text.
package markdown
