// Package output renders parse results for the kvline command.
package output

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	kverrors "github.com/KimNorgaard/go-kvline/errors"
	"github.com/KimNorgaard/go-kvline/pairs"
	"github.com/fatih/color"
	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Format selects how results are written.
type Format string

const (
	Text Format = "text"
	JSON Format = "json"
	YAML Format = "yaml"
)

// ParseFormat validates s as a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case Text, JSON, YAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", s)
	}
}

var (
	red  = color.New(color.FgRed)
	gray = color.New(color.FgHiBlack)
	bold = color.New(color.Bold)
)

// Write renders m to w in format f, terminated by a newline.
func Write(w io.Writer, f Format, m *pairs.Map) error {
	switch f {
	case JSON:
		b, err := marshalJSON(m)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", b)
		return err
	case YAML:
		return writeYAML(w, m)
	default:
		_, err := fmt.Fprintln(w, m.String())
		return err
	}
}

// marshalJSON encodes m as a JSON object preserving key order.
func marshalJSON(m *pairs.Map) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	i := 0
	for k, v := range m.All() {
		if i > 0 {
			buf.WriteByte(',')
		}
		i++
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// writeYAML writes m as a YAML document. Each call produces one document, so
// consecutive calls are separated with "---".
func writeYAML(w io.Writer, m *pairs.Map) error {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for k, v := range m.All() {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v},
		)
	}
	if len(node.Content) == 0 {
		node.Style = yaml.FlowStyle
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "---\n%s", buf.Bytes())
	return err
}

// ReportError writes a parse failure for line number n to w. Parse errors
// are followed by the input with a caret under the offending character.
func ReportError(w io.Writer, n int, input string, err error) {
	fmt.Fprintf(w, "%s %s %v\n", red.Sprint("✗"), bold.Sprintf("line %d:", n), err)

	var pe *kverrors.ParseError
	if !errors.As(err, &pe) {
		return
	}
	fmt.Fprintf(w, "  %s\n", input)
	fmt.Fprintf(w, "  %s%s\n", caretPadding(input, pe.Position), gray.Sprint("^"))
}

// caretPadding returns the indent that places a caret under the rune at
// index pos. Tabs are copied so the caret lines up however they render.
func caretPadding(input string, pos int) string {
	var b strings.Builder
	i := 0
	for _, r := range input {
		if i == pos {
			break
		}
		if r == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
		i++
	}
	for ; i < pos; i++ {
		b.WriteByte(' ')
	}
	return b.String()
}
