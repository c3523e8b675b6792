package markdown

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// idMaker builds heading identifiers: text is stripped of accents, folded
// to lowercase, word separators collapse to hyphens, and repeats get a
// numeric suffix so every identifier in a document is unique.
type idMaker struct {
	used map[string]bool
	fold transform.Transformer
}

func newIDMaker() *idMaker {
	return &idMaker{
		used: make(map[string]bool),
		fold: transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
	}
}

func (m *idMaker) make(text string) string {
	base := m.slug(text)
	if base == "" {
		base = "section"
	}
	id := base
	for n := 1; m.used[id]; n++ {
		id = base + "-" + strconv.Itoa(n)
	}
	m.used[id] = true
	return id
}

func (m *idMaker) slug(text string) string {
	folded, _, err := transform.String(m.fold, text)
	if err != nil {
		folded = text
	}

	var sb strings.Builder
	pending := false
	for _, r := range strings.ToLower(folded) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			if pending && sb.Len() > 0 {
				sb.WriteRune('-')
			}
			pending = false
			sb.WriteRune(r)
		case unicode.IsSpace(r) || r == '-':
			pending = true
		}
	}
	return sb.String()
}
