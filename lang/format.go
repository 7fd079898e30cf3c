package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
)

// Style selects the textual form written by [Invocation.Format].
type Style int

const (
	// StyleNative is the canonical invocation form: "A::B::{X | Y}".
	StyleNative Style = iota
	// StyleExpanded spells out the combination of qualified elements:
	// "A::B::X | A::B::Y". The empty list is written "A::B::empty()".
	StyleExpanded
	// StyleGo emits an equivalent Go expression: "A.B.X | A.B.Y".
	// The empty list is written as the zero value conversion "A.B(0)".
	StyleGo
)

var styleName = map[Style]string{
	StyleNative:   "native",
	StyleExpanded: "expanded",
	StyleGo:       "go",
}

// String returns the style name.
func (s Style) String() string {
	if name, ok := styleName[s]; ok {
		return name
	}

	return fmt.Sprintf("Style(%d)", int(s))
}

// ParseStyle returns the style with the given name.
func ParseStyle(name string) (Style, error) {
	for s, n := range styleName {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return s, nil
		}
	}

	return 0, ErrInvalidFormat.Wrapf("unknown style %q", name)
}

// Format writes inv to w in the given style.
func (inv *Invocation) Format(w io.Writer, style Style) error {
	var s string

	switch style {
	case StyleNative:
		s = inv.formatNative()

	case StyleExpanded:
		s = inv.formatCombined(PathSep, "::empty()")

	case StyleGo:
		s = inv.formatCombined(".", "(0)")

	default:
		return ErrInvalidFormat.Wrapf("unknown style %d", int(style))
	}

	_, err := io.WriteString(w, s)

	return err
}

func (inv *Invocation) formatNative() string {
	var sb strings.Builder

	for _, seg := range inv.Path {
		sb.WriteString(seg)
		sb.WriteString(PathSep)
	}

	sb.WriteByte('{')

	for i, it := range inv.Items {
		if i > 0 {
			switch inv.Seps[i-1] {
			case SepComma:
				sb.WriteString(", ")
			default:
				sb.WriteString(" | ")
			}
		}

		sb.WriteString(it.Name)
	}

	sb.WriteByte('}')

	return sb.String()
}

// formatCombined joins the qualified elements with " | ", using sep between
// path segments and writing empty after the type path for an empty list.
func (inv *Invocation) formatCombined(sep, empty string) string {
	typ := strings.Join(inv.Path, sep)

	if len(inv.Items) == 0 {
		return typ + empty
	}

	parts := make([]string, len(inv.Items))
	for i, it := range inv.Items {
		parts[i] = typ + sep + it.Name
	}

	return strings.Join(parts, " | ")
}

// document is the structured representation used for JSON and YAML output.
type document struct {
	Type     string   `json:"type"     yaml:"type"`
	Elements []string `json:"elements" yaml:"elements"`
}

func (inv *Invocation) document() document {
	elems := inv.Elements()

	doc := document{
		Type:     inv.Path.String(),
		Elements: make([]string, len(elems)),
	}

	for i, el := range elems {
		doc.Elements[i] = el.String()
	}

	return doc
}

// MarshalJSON implements json.Marshaler.
func (inv *Invocation) MarshalJSON() ([]byte, error) {
	return json.Marshal(inv.document())
}

// FormatJSON writes inv as a JSON document with its type path and
// qualified elements.
func (inv *Invocation) FormatJSON(w io.Writer, indent int) error {
	enc := json.NewEncoder(w)
	if indent > 0 {
		enc.SetIndent("", strings.Repeat(" ", indent))
	}

	return enc.Encode(inv.document())
}

// FormatYAML writes inv as a YAML document with its type path and
// qualified elements.
func (inv *Invocation) FormatYAML(
	ctx context.Context,
	w io.Writer,
	indent int,
) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent), yaml.IndentSequence(true))
	}

	data, err := yaml.MarshalContext(ctx, inv.document(), opts...)
	if err != nil {
		return err
	}

	_, err = w.Write(data)

	return err
}
