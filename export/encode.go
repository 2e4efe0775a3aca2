package export

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/c360studio/candv/constants"
	"gopkg.in/yaml.v3"
)

// Encoder writes primitives in one format.
type Encoder struct {
	format Format
	indent int
}

// NewEncoder creates an encoder. indent is the number of spaces per level;
// zero means compact JSON and the YAML default.
func NewEncoder(format Format, indent int) (*Encoder, error) {
	if _, ok := FormatRegistry[format]; !ok {
		return nil, fmt.Errorf("unknown export format %q", format)
	}
	if indent < 0 {
		return nil, fmt.Errorf("indent must not be negative, got %d", indent)
	}
	return &Encoder{format: format, indent: indent}, nil
}

// Encode writes each primitive as its own document.
func (e *Encoder) Encode(w io.Writer, primitives ...constants.Primitive) error {
	switch e.format {
	case FormatYAML:
		return e.encodeYAML(w, primitives)
	default:
		return e.encodeJSON(w, primitives)
	}
}

func (e *Encoder) encodeJSON(w io.Writer, primitives []constants.Primitive) error {
	enc := json.NewEncoder(w)
	if e.indent > 0 {
		enc.SetIndent("", strings.Repeat(" ", e.indent))
	}
	for _, p := range primitives {
		if err := enc.Encode(p); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
	}
	return nil
}

func (e *Encoder) encodeYAML(w io.Writer, primitives []constants.Primitive) error {
	enc := yaml.NewEncoder(w)
	if e.indent > 0 {
		enc.SetIndent(e.indent)
	}
	for _, p := range primitives {
		node, err := primitiveNode(p)
		if err != nil {
			return err
		}
		if err := enc.Encode(node); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
	}
	return enc.Close()
}

// primitiveNode builds a mapping node with "name" first, "items" last and
// payload fields sorted in between, so YAML output reads like the declaration.
func primitiveNode(p constants.Primitive) (*yaml.Node, error) {
	keys := make([]string, 0, len(p))
	for k := range p {
		if k != "name" && k != "items" {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	if _, ok := p["name"]; ok {
		keys = append([]string{"name"}, keys...)
	}

	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range keys {
		value := &yaml.Node{}
		if err := value.Encode(p[k]); err != nil {
			return nil, fmt.Errorf("encode yaml field %q: %w", k, err)
		}
		node.Content = append(node.Content, keyNode(k), value)
	}

	if _, ok := p["items"]; ok {
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for _, item := range p.Items() {
			child, err := primitiveNode(item)
			if err != nil {
				return nil, err
			}
			seq.Content = append(seq.Content, child)
		}
		node.Content = append(node.Content, keyNode("items"), seq)
	}
	return node, nil
}

func keyNode(k string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}
}

// Marshal encodes a single primitive into a byte slice.
func Marshal(format Format, indent int, p constants.Primitive) ([]byte, error) {
	enc, err := NewEncoder(format, indent)
	if err != nil {
		return nil, err
	}
	var sb strings.Builder
	if err := enc.Encode(&sb, p); err != nil {
		return nil, err
	}
	return []byte(sb.String()), nil
}
