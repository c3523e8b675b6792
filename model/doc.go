// Package model provides the intermediate representation (IR) for converted
// document content.
//
// This package defines the canonical data structures that sit between the
// Markdown reader and the output writers. The reader produces a [Document];
// every writer consumes one. Writers never mutate a Document, which makes a
// single parsed Document safe to hand to several writers at once.
//
// # Document Structure
//
// The [Document] type holds front-matter metadata and an ordered list of
// top-level blocks:
//
//	doc := model.NewDocument()
//	doc.Meta.Title = "My Document"
//	doc.Blocks = append(doc.Blocks, &model.Paragraph{Inlines: inlines})
//
// # Blocks and Inlines
//
// All structural content implements the [Block] interface and all span-level
// content implements the [Inline] interface. Both are closed sets: the
// interfaces carry unexported marker methods, so the concrete types in this
// package are the complete vocabulary a writer has to handle. The concrete
// block types are:
//
//   - [Plain], [Paragraph] - runs of inline content
//   - [Header] - headings (levels 1-6) with stable identifiers
//   - [CodeBlock] - literal code with an optional language tag
//   - [BlockQuote], [Div] - nested block containers
//   - [BulletList], [OrderedList], [DefinitionList] - list structures
//   - [Table] - tables with column specs, spans, and head/body/foot rows
//   - [HorizontalRule], [PageBreak] - structural breaks
//   - [RawBlock], [LineBlock] - verbatim and line-oriented content
//
// # Tables
//
// The [Table] type provides a complete table representation with:
//
//   - [ColSpec] per column: alignment and an optional width fraction
//   - Head, body, and foot [Row] groups of [Cell] values
//   - Row and column spanning via Cell.RowSpan and Cell.ColSpan
//
// Column specs are fixed when the table is built and are never changed by
// writers. [Table.Validate] checks the span bookkeeping against the column
// count.
//
// # Plain Text
//
// [Text] flattens inline content to plain text, and [Document.PlainText]
// does the same for a whole document. These back heading identifiers,
// bookmark names, and the text-oriented helpers on [Document].
package model
