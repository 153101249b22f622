package hbm

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"fluentmap/model"
)

// Format selects the serialisation of a document.
type Format int

const (
	FormatXML Format = iota
	FormatYAML
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatXML:
		return "xml"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// Extension is the file extension of documents in this format.
func (f Format) Extension() string {
	return ".hbm." + f.String()
}

// ParseFormat parses "xml", "yaml" or "yml", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "xml":
		return FormatXML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return 0, fmt.Errorf("unknown mapping format %q", s)
	}
}

// Marshal serialises doc in format f.
func Marshal(doc *model.HibernateMapping, f Format) ([]byte, error) {
	switch f {
	case FormatXML:
		return marshalXML(doc)
	case FormatYAML:
		return marshalYAML(doc)
	default:
		return nil, fmt.Errorf("unknown mapping format %d", int(f))
	}
}

func marshalYAML(doc *model.HibernateMapping) ([]byte, error) {
	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encoding yaml: %w", err)
	}

	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding yaml: %w", err)
	}

	return buf.Bytes(), nil
}
