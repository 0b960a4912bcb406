// Package embed finds visualizer tags in host documents.
//
// A host page declares a visualization with a tag such as
//
//	<AlgorithmVisualizer kind="array" algorithm="two-sum"
//	    data="[2, 7, 11, 15]" params="{target: 9}" interactive />
//
// Attribute values are YAML flow values, so JSON works too. Keys may omit the
// space after the colon, as in {target:9}. MDX expressions such as
// data={[2, 7, 11, 15]} or params={{target: 9}} may be left unquoted; they are
// quoted before the document is parsed and their outer braces are removed
// before decoding.
package embed

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/san-kum/algoviz/internal/config"
	"github.com/san-kum/algoviz/internal/step"
	"golang.org/x/net/html"
	"gopkg.in/yaml.v3"
)

// TagName is the element name, compared case-insensitively.
const TagName = "algorithmvisualizer"

// KindArray is the only supported visualization kind.
const KindArray = "array"

var (
	ErrUnsupportedKind = errors.New("embed: unsupported kind")
	ErrIncomplete      = errors.New("embed: tag needs an algorithm or a steps file")
	ErrAttribute       = errors.New("embed: bad attribute")
)

// Spec is one declared visualization.
type Spec struct {
	Kind      string            `json:"kind" yaml:"kind"`
	Algorithm string            `json:"algorithm,omitempty" yaml:"algorithm,omitempty"`
	Data      []step.Value      `json:"data,omitempty" yaml:"data,omitempty"`
	Params    map[string]any    `json:"params,omitempty" yaml:"params,omitempty"`
	Steps     string            `json:"steps,omitempty" yaml:"steps,omitempty"`
	Config    config.Visualizer `json:"config" yaml:"config"`
}

// Parse returns the specs of every visualizer tag in r, in document order.
func Parse(r io.Reader) ([]Spec, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("embed: read document: %w", err)
	}
	doc, err := html.Parse(bytes.NewReader(quoteExpressions(src)))
	if err != nil {
		return nil, fmt.Errorf("embed: parse document: %w", err)
	}

	var specs []Spec
	var walkErr error
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if walkErr != nil {
			return
		}
		if n.Type == html.ElementNode && strings.EqualFold(n.Data, TagName) {
			spec, err := fromAttrs(n.Attr)
			if err != nil {
				walkErr = fmt.Errorf("tag %d: %w", len(specs)+1, err)
				return
			}
			specs = append(specs, spec)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if walkErr != nil {
		return nil, walkErr
	}
	return specs, nil
}

func fromAttrs(attrs []html.Attribute) (Spec, error) {
	spec := Spec{Kind: KindArray, Config: config.DefaultVisualizer()}

	for _, a := range attrs {
		key := strings.ReplaceAll(strings.ToLower(a.Key), "-", "")
		var err error
		switch key {
		case "kind", "type":
			spec.Kind = strings.TrimSpace(a.Val)
		case "algorithm":
			spec.Algorithm = strings.TrimSpace(a.Val)
		case "steps":
			spec.Steps = strings.TrimSpace(a.Val)
		case "data":
			err = decode(a.Val, &spec.Data)
		case "params":
			err = decode(a.Val, &spec.Params)
		case "colors":
			err = decode(a.Val, &spec.Config.Colors)
		case "speed":
			spec.Config.Speed, err = strconv.ParseFloat(unwrap(a.Val), 64)
		case "autoplay":
			spec.Config.AutoPlay, err = flag(a.Val)
		case "interactive":
			spec.Config.Interactive, err = flag(a.Val)
		case "showindices":
			spec.Config.ShowIndices, err = flag(a.Val)
		case "showvalues":
			spec.Config.ShowValues, err = flag(a.Val)
		}
		if err != nil {
			return Spec{}, fmt.Errorf("%w %s: %v", ErrAttribute, a.Key, err)
		}
	}

	if spec.Kind != KindArray {
		return Spec{}, fmt.Errorf("%w: %q", ErrUnsupportedKind, spec.Kind)
	}
	if spec.Algorithm == "" && spec.Steps == "" {
		return Spec{}, ErrIncomplete
	}
	return spec, nil
}

// unwrap strips an MDX expression wrapper.
func unwrap(v string) string {
	v = strings.TrimSpace(v)
	if len(v) >= 2 && v[0] == '{' && v[len(v)-1] == '}' {
		inner := strings.TrimSpace(v[1 : len(v)-1])
		if inner == "" || inner[0] == '{' || inner[0] == '[' || !strings.ContainsAny(inner, ":,") {
			return inner
		}
	}
	return v
}

func decode(raw string, out any) error {
	return yaml.Unmarshal([]byte(spaceColons(unwrap(raw))), out)
}

// spaceColons puts a space after every unquoted colon that lacks one, so
// {target:9} reads as a mapping rather than a single plain scalar.
func spaceColons(v string) string {
	var b strings.Builder
	var quote byte
	for i := 0; i < len(v); i++ {
		c := v[i]
		b.WriteByte(c)
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == ':' && i+1 < len(v) && v[i+1] != ' ' && v[i+1] != '\n':
			b.WriteByte(' ')
		}
	}
	return b.String()
}

// quoteExpressions wraps unquoted attribute values of the form ={...} in
// double quotes so the HTML tokenizer keeps them whole. Braces are balanced
// and quoted strings inside the expression are skipped.
func quoteExpressions(src []byte) []byte {
	var out bytes.Buffer
	out.Grow(len(src))
	inTag := false

	for i := 0; i < len(src); i++ {
		c := src[i]
		if !inTag {
			out.WriteByte(c)
			inTag = c == '<' && i+1 < len(src) && isLetter(src[i+1])
			continue
		}
		switch c {
		case '>':
			inTag = false
			out.WriteByte(c)
		case '"', '\'':
			end := bytes.IndexByte(src[i+1:], c)
			if end < 0 {
				out.Write(src[i:])
				return out.Bytes()
			}
			out.Write(src[i : i+end+2])
			i += end + 1
		case '=':
			out.WriteByte(c)
			j := i + 1
			for j < len(src) && (src[j] == ' ' || src[j] == '\t' || src[j] == '\n' || src[j] == '\r') {
				j++
			}
			if j >= len(src) || src[j] != '{' {
				continue
			}
			end := closingBrace(src, j)
			if end < 0 {
				continue
			}
			out.Write(src[i+1 : j])
			out.WriteByte('"')
			out.WriteString(html.EscapeString(string(src[j : end+1])))
			out.WriteByte('"')
			i = end
		default:
			out.WriteByte(c)
		}
	}
	return out.Bytes()
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// closingBrace returns the index of the brace matching the one at start, or
// -1 when it is never closed.
func closingBrace(src []byte, start int) int {
	depth := 0
	var quote byte
	for i := start; i < len(src); i++ {
		c := src[i]
		if quote != 0 {
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '"', '\'', '`':
			quote = c
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// flag treats a bare attribute as true.
func flag(v string) (bool, error) {
	v = unwrap(v)
	if v == "" {
		return true, nil
	}
	return strconv.ParseBool(v)
}
