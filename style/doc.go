// Package style resolves document metadata into a concrete stylesheet.
//
// Every writer renders from the same [Sheet], which is what keeps HTML and
// DOCX output visually consistent: base font, heading size ladder, accent
// color, and table decoration are all fixed here and nowhere else.
//
// # Resolution
//
// [Resolve] is a pure function from metadata to stylesheet:
//
//	sheet := style.Resolve(doc.Meta)
//
// The base size comes from the front-matter fontsize key when present and
// defaults to 12 points. Heading sizes step down from a fixed ladder above
// the base size, so a level never renders smaller than a deeper level.
package style
