package schema

import (
	"fmt"
	"net/url"
	"path/filepath"
)

// Source identifies where a booking form document came from. Loaders use it
// for error messages; it never affects parsing.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind enumerates the document origins.
type SourceKind string

const (
	SourceKindFile     SourceKind = "file"
	SourceKindFS       SourceKind = "fs"
	SourceKindURL      SourceKind = "url"
	SourceKindEmbedded SourceKind = "embedded"
)

type source struct {
	kind     SourceKind
	location string
}

func (s source) Kind() SourceKind { return s.kind }
func (s source) Location() string { return s.location }

// SourceFromFile returns a Source pointing to a file path.
func SourceFromFile(path string) Source {
	return source{kind: SourceKindFile, location: filepath.Clean(path)}
}

// SourceFromFS returns a Source naming an entry inside an fs.FS.
func SourceFromFS(name string) Source {
	return source{kind: SourceKindFS, location: name}
}

// SourceFromURL validates raw and returns a Source for it.
func SourceFromURL(raw string) (Source, error) {
	if raw == "" {
		return nil, fmt.Errorf("schema: empty URL source")
	}
	if _, err := url.ParseRequestURI(raw); err != nil {
		return nil, fmt.Errorf("schema: invalid URL %q: %w", raw, err)
	}
	return source{kind: SourceKindURL, location: raw}, nil
}

func embeddedSource(name string) Source {
	return source{kind: SourceKindEmbedded, location: name}
}
