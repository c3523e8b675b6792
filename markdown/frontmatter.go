package markdown

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"

	"github.com/tsawler/typeset/model"
)

// FrontMatterError indicates that the document's front matter could not be
// parsed as YAML.
type FrontMatterError struct {
	Err error
}

func (e *FrontMatterError) Error() string {
	return fmt.Sprintf("invalid front matter: %v", e.Err)
}

func (e *FrontMatterError) Unwrap() error { return e.Err }

// yamlOnly restricts front-matter detection to the --- delimited YAML form
var yamlOnly = frontmatter.NewFormat("---", "---", yaml.Unmarshal)

// rawMeta is the front-matter envelope. Known keys get dedicated fields;
// everything else lands in the inline map.
type rawMeta struct {
	Title    flexScalar           `yaml:"title"`
	Subtitle flexScalar           `yaml:"subtitle"`
	Author   flexScalar           `yaml:"author"`
	Date     flexScalar           `yaml:"date"`
	FontSize flexScalar           `yaml:"fontsize"`
	Rest     map[string]yaml.Node `yaml:",inline"`
}

// flexScalar accepts a YAML value of any scalar type and remembers it as a
// string. Sequences flatten to a comma-separated list so author lists stay
// usable as a single line.
type flexScalar struct {
	value string
	set   bool
}

func (f *flexScalar) UnmarshalYAML(node *yaml.Node) error {
	s, err := scalarString(node)
	if err != nil {
		return err
	}
	f.value = s
	f.set = true
	return nil
}

func scalarString(node *yaml.Node) (string, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		return node.Value, nil
	case yaml.SequenceNode:
		parts := make([]string, 0, len(node.Content))
		for _, c := range node.Content {
			s, err := scalarString(c)
			if err != nil {
				return "", err
			}
			parts = append(parts, s)
		}
		return strings.Join(parts, ", "), nil
	case yaml.AliasNode:
		return scalarString(node.Alias)
	default:
		return "", fmt.Errorf("line %d: expected a scalar value", node.Line)
	}
}

// parseFrontMatter splits YAML front matter from source and maps it onto
// document metadata. The returned offset is the number of consumed source
// lines, so positions reported against the body can be corrected back to
// file coordinates.
func parseFrontMatter(source []byte) (model.Metadata, []byte, int, []Warning, error) {
	meta := model.Metadata{Extensions: map[string]string{}}

	var raw rawMeta
	body, err := frontmatter.Parse(bytes.NewReader(source), &raw, yamlOnly)
	if err != nil {
		return meta, nil, 0, nil, &FrontMatterError{Err: err}
	}

	var warnings []Warning
	meta.Title = raw.Title.value
	meta.Subtitle = raw.Subtitle.value
	meta.Author = raw.Author.value
	meta.Date = raw.Date.value
	if raw.FontSize.set {
		size, err := parseFontSize(raw.FontSize.value)
		if err != nil {
			warnings = append(warnings, Warning{
				Message: fmt.Sprintf("ignoring fontsize %q: %v", raw.FontSize.value, err),
			})
		} else {
			meta.FontSize = size
		}
	}
	for key, node := range raw.Rest {
		n := node
		meta.Extensions[key] = extensionValue(&n)
	}

	offset := countLines(source) - countLines(body)
	return meta, body, offset, warnings, nil
}

// parseFontSize interprets a fontsize value such as "12" or "12pt"
func parseFontSize(s string) (int, error) {
	t := strings.TrimSpace(strings.ToLower(s))
	t = strings.TrimSpace(strings.TrimSuffix(t, "pt"))
	if t == "" {
		return 0, fmt.Errorf("empty value")
	}
	n, err := strconv.Atoi(t)
	if err != nil {
		return 0, fmt.Errorf("not a whole number of points")
	}
	if n <= 0 {
		return 0, fmt.Errorf("size must be positive")
	}
	return n, nil
}

// extensionValue renders an unknown front-matter value as a string. Scalars
// keep their literal form; structured values keep their YAML shape.
func extensionValue(node *yaml.Node) string {
	if node.Kind == yaml.ScalarNode {
		return node.Value
	}
	out, err := yaml.Marshal(node)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

func countLines(b []byte) int {
	return bytes.Count(b, []byte("\n")) + 1
}
