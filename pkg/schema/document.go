package schema

import (
	"errors"
	"path/filepath"
	"strings"
)

// Document wraps a raw booking form document and its origin.
type Document struct {
	source Source
	raw    []byte
}

// NewDocument validates the inputs and copies raw.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("schema: source is required")
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return Document{}, ErrEmptyDocument
	}
	return Document{source: src, raw: append([]byte(nil), raw...)}, nil
}

// Source returns the document origin.
func (d Document) Source() Source {
	return d.source
}

// Raw returns a copy of the payload.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

// Location returns the origin identifier, or "" for a zero Document.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}

// IsSchemaFile reports whether path carries a JSON or YAML extension.
func IsSchemaFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
