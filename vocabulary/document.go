package vocabulary

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Document errors.
var (
	// ErrInvalidDocument is returned for malformed YAML or missing names.
	ErrInvalidDocument = errors.New("invalid vocabulary document")

	// ErrUnknownKind is returned for a kind or class not listed in Kinds.
	ErrUnknownKind = errors.New("unknown constant kind")

	// ErrDuplicateName is returned when a name repeats within one list.
	ErrDuplicateName = errors.New("duplicate constant name")

	// ErrFieldNotAllowed is returned for payload fields the kind cannot hold.
	ErrFieldNotAllowed = errors.New("field not allowed for kind")
)

// Document declares one root container.
type Document struct {
	// Name is the root container name.
	Name string `yaml:"name"`

	// Class is the kind of constants the container owns (default simple).
	Class string `yaml:"class,omitempty"`

	// Constants lists members in declaration order.
	Constants []Entry `yaml:"constants"`
}

// Entry declares one constant, optionally anchoring a nested group.
type Entry struct {
	Name        string     `yaml:"name"`
	Kind        string     `yaml:"kind,omitempty"`
	Value       *yaml.Node `yaml:"value,omitempty"`
	VerboseName *string    `yaml:"verbose_name,omitempty"`
	HelpText    *string    `yaml:"help_text,omitempty"`
	Group       *Group     `yaml:"group,omitempty"`
}

// Group declares the members of a nested group.
type Group struct {
	Class     string  `yaml:"class,omitempty"`
	Constants []Entry `yaml:"constants"`
}

// Parse decodes every document in r. Unknown fields are rejected.
func Parse(r io.Reader) ([]*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var docs []*Document
	for {
		var doc Document
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
		}
		if doc.Name == "" {
			return nil, fmt.Errorf("%w: document %d has no name", ErrInvalidDocument, len(docs)+1)
		}
		docs = append(docs, &doc)
	}
	return docs, nil
}

// ParseBytes is Parse over an in-memory buffer.
func ParseBytes(data []byte) ([]*Document, error) {
	return Parse(bytes.NewReader(data))
}

// decodeValue returns the entry value, or nil when absent.
func (e *Entry) decodeValue() (any, error) {
	if e.Value == nil {
		return nil, nil
	}
	var v any
	if err := e.Value.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: value of %q: %w", ErrInvalidDocument, e.Name, err)
	}
	return v, nil
}
