package markdown

import (
	"strings"

	"github.com/tsawler/typeset/model"
	"github.com/tsawler/typeset/tables"
)

// assembler splices parsed grid tables back into the block stream and
// resolves directive paragraphs left by preprocessing.
type assembler struct {
	tables []*model.Table
}

func (a *assembler) apply(blocks []model.Block) []model.Block {
	out := make([]model.Block, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, a.applyBlock(b)...)
	}
	return out
}

func (a *assembler) applyBlock(b model.Block) []model.Block {
	switch v := b.(type) {
	case *model.Paragraph:
		switch directiveText(v.Inlines) {
		case `\newpage`:
			return []model.Block{&model.PageBreak{}}
		case `\`:
			return nil
		}
		return a.splitInlines(v.Inlines, func(in []model.Inline) model.Block {
			return &model.Paragraph{Inlines: in}
		})
	case *model.Plain:
		return a.splitInlines(v.Inlines, func(in []model.Inline) model.Block {
			return &model.Plain{Inlines: in}
		})
	case *model.BlockQuote:
		v.Blocks = a.apply(v.Blocks)
		return []model.Block{v}
	case *model.Div:
		v.Blocks = a.apply(v.Blocks)
		return []model.Block{v}
	case *model.BulletList:
		for i := range v.Items {
			v.Items[i] = a.apply(v.Items[i])
		}
		return []model.Block{v}
	case *model.OrderedList:
		for i := range v.Items {
			v.Items[i] = a.apply(v.Items[i])
		}
		return []model.Block{v}
	case *model.DefinitionList:
		for i := range v.Items {
			for j := range v.Items[i].Definitions {
				v.Items[i].Definitions[j] = a.apply(v.Items[i].Definitions[j])
			}
		}
		return []model.Block{v}
	default:
		return []model.Block{b}
	}
}

// splitInlines cuts an inline run at placeholder markers, emitting the
// corresponding table between the pieces. Placeholders sit on their own
// source line, so after goldmark's per-line text nodes they always arrive
// as lone Str elements.
func (a *assembler) splitInlines(inlines []model.Inline, wrap func([]model.Inline) model.Block) []model.Block {
	var out []model.Block
	var cur []model.Inline

	flush := func() {
		cur = trimBreaks(cur)
		if len(cur) > 0 {
			out = append(out, wrap(cur))
		}
		cur = nil
	}

	for _, in := range inlines {
		if s, ok := in.(*model.Str); ok {
			if idx, ok := tables.PlaceholderIndex(strings.TrimSpace(s.Text)); ok && idx < len(a.tables) {
				flush()
				out = append(out, a.tables[idx])
				continue
			}
		}
		cur = append(cur, in)
	}
	flush()
	return out
}

// trimBreaks removes the soft breaks left dangling at a split point
func trimBreaks(inlines []model.Inline) []model.Inline {
	for len(inlines) > 0 {
		if _, ok := inlines[0].(*model.SoftBreak); !ok {
			break
		}
		inlines = inlines[1:]
	}
	for len(inlines) > 0 {
		if _, ok := inlines[len(inlines)-1].(*model.SoftBreak); !ok {
			break
		}
		inlines = inlines[:len(inlines)-1]
	}
	return inlines
}

// directiveText returns the trimmed text of an inline run that consists of
// plain text only, or "" when formatted content is present.
func directiveText(inlines []model.Inline) string {
	for _, in := range inlines {
		switch in.(type) {
		case *model.Str, *model.Space, *model.SoftBreak, *model.LineBreak:
		default:
			return ""
		}
	}
	return strings.TrimSpace(model.Text(inlines))
}
