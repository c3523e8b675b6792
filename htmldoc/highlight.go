package htmldoc

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"golang.org/x/net/html"

	"github.com/tsawler/typeset/model"
)

// highlightCode renders a fenced code block as token spans colored by the
// named chroma style. It reports false when the language is unknown or
// tokenization fails, and the caller falls back to plain output.
func highlightCode(cb *model.CodeBlock, styleName string) (string, bool) {
	if cb.Language == "" {
		return "", false
	}
	lexer := lexers.Get(cb.Language)
	if lexer == nil {
		return "", false
	}
	lexer = chroma.Coalesce(lexer)

	st := styles.Get(styleName)
	if st == nil {
		st = styles.Fallback
	}

	iterator, err := lexer.Tokenise(nil, cb.Text)
	if err != nil {
		return "", false
	}

	var sb strings.Builder
	sb.WriteString("<pre><code class=\"language-")
	sb.WriteString(html.EscapeString(cb.Language))
	sb.WriteString("\">")
	for _, token := range iterator.Tokens() {
		span := tokenSpan(st.Get(token.Type))
		if span == "" {
			sb.WriteString(html.EscapeString(token.Value))
			continue
		}
		sb.WriteString(span)
		sb.WriteString(html.EscapeString(token.Value))
		sb.WriteString("</span>")
	}
	sb.WriteString("</code></pre>\n")
	return sb.String(), true
}

// tokenSpan builds the opening span tag for a style entry, or "" when the
// entry adds no styling.
func tokenSpan(entry chroma.StyleEntry) string {
	var rules []string
	if entry.Colour.IsSet() {
		rules = append(rules, "color: "+entry.Colour.String())
	}
	if entry.Bold == chroma.Yes {
		rules = append(rules, "font-weight: bold")
	}
	if entry.Italic == chroma.Yes {
		rules = append(rules, "font-style: italic")
	}
	if entry.Underline == chroma.Yes {
		rules = append(rules, "text-decoration: underline")
	}
	if len(rules) == 0 {
		return ""
	}
	return "<span style=\"" + strings.Join(rules, "; ") + ";\">"
}
