package schema

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-bookingform/pkg/model"
)

var (
	// ErrEmptyDocument is returned for blank payloads.
	ErrEmptyDocument = errors.New("schema: document is empty")
	// ErrNoFields is returned when a document declares no fields.
	ErrNoFields = errors.New("schema: document declares no fields")
)

// Definition is a parsed booking form document: presentation metadata plus
// the validated field schema.
type Definition struct {
	Name        string
	Title       string
	SubmitLabel string
	Source      string
	Schema      model.FormSchema
}

// DefaultSubmitLabel is used when a document does not set submitLabel.
const DefaultSubmitLabel = "Search"

type documentFile struct {
	Name        string    `yaml:"name"`
	Title       string    `yaml:"title"`
	SubmitLabel string    `yaml:"submitLabel"`
	Fields      yaml.Node `yaml:"fields"`
}

type fieldFile struct {
	Type         model.FieldType     `yaml:"type"`
	Label        string              `yaml:"label"`
	Placeholder  string              `yaml:"placeholder"`
	FocusOnNext  string              `yaml:"focusOnNext"`
	Widget       string              `yaml:"widget"`
	Options      yaml.Node           `yaml:"options"`
	DefaultValue []model.GuestOption `yaml:"defaultValue"`
}

// Load parses a document. Fields are declared as a mapping from field name to
// field definition; mapping order becomes the form order. JSON documents are
// accepted since they are valid YAML.
func Load(doc Document) (Definition, error) {
	location := doc.Location()
	if len(doc.raw) == 0 {
		return Definition{}, fmt.Errorf("%w: %s", ErrEmptyDocument, location)
	}

	var file documentFile
	if err := yaml.Unmarshal(doc.raw, &file); err != nil {
		return Definition{}, fmt.Errorf("schema: parse %s: %w", location, err)
	}

	fields, err := decodeFields(&file.Fields, location)
	if err != nil {
		return Definition{}, err
	}
	if len(fields) == 0 {
		return Definition{}, fmt.Errorf("%w: %s", ErrNoFields, location)
	}

	formSchema, err := model.NewFormSchema(fields...)
	if err != nil {
		return Definition{}, fmt.Errorf("schema: %s: %w", location, err)
	}

	def := Definition{
		Name:        strings.TrimSpace(file.Name),
		Title:       strings.TrimSpace(file.Title),
		SubmitLabel: strings.TrimSpace(file.SubmitLabel),
		Source:      location,
		Schema:      formSchema,
	}
	if def.SubmitLabel == "" {
		def.SubmitLabel = DefaultSubmitLabel
	}
	return def, nil
}

// Parse is a convenience wrapper building the Document from raw bytes.
func Parse(src Source, raw []byte) (Definition, error) {
	doc, err := NewDocument(src, raw)
	if err != nil {
		return Definition{}, err
	}
	return Load(doc)
}

// LoadFile reads and parses the document at path.
func LoadFile(path string) (Definition, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Definition{}, fmt.Errorf("schema: read %s: %w", path, err)
	}
	return Parse(SourceFromFile(path), raw)
}

// LoadFS reads and parses name from fsys.
func LoadFS(fsys fs.FS, name string) (Definition, error) {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return Definition{}, fmt.Errorf("schema: read %s: %w", name, err)
	}
	return Parse(SourceFromFS(name), raw)
}

// LoadURL fetches and parses a remote document. A nil client uses
// http.DefaultClient.
func LoadURL(ctx context.Context, client *http.Client, rawURL string) (Definition, error) {
	src, err := SourceFromURL(rawURL)
	if err != nil {
		return Definition{}, err
	}
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return Definition{}, fmt.Errorf("schema: build request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return Definition{}, fmt.Errorf("schema: fetch %s: %w", rawURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Definition{}, fmt.Errorf("schema: fetch %s: unexpected status %d", rawURL, resp.StatusCode)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Definition{}, fmt.Errorf("schema: read %s: %w", rawURL, err)
	}
	return Parse(src, raw)
}

func decodeFields(node *yaml.Node, location string) ([]model.Field, error) {
	if node.Kind == 0 {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("schema: %s:%d: fields must be a mapping of name to field", location, node.Line)
	}

	fields := make([]model.Field, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		name := strings.TrimSpace(key.Value)

		var raw fieldFile
		if err := value.Decode(&raw); err != nil {
			return nil, fmt.Errorf("schema: %s:%d: field %q: %w", location, key.Line, name, err)
		}
		options, err := decodeOptions(raw.Type, &raw.Options)
		if err != nil {
			return nil, fmt.Errorf("schema: %s:%d: field %q options: %w", location, raw.Options.Line, name, err)
		}

		fields = append(fields, model.Field{
			Name:        name,
			Type:        raw.Type,
			Label:       raw.Label,
			Placeholder: raw.Placeholder,
			FocusOnNext: raw.FocusOnNext,
			Widget:      raw.Widget,
			Options:     options,
			Default:     raw.DefaultValue,
		})
	}
	return fields, nil
}

// decodeOptions picks the options variant from the field type. Unknown types
// leave options nil so schema validation reports the type itself.
func decodeOptions(typ model.FieldType, node *yaml.Node) (model.FieldOptions, error) {
	switch typ {
	case model.FieldTypeLocation:
		var opts model.LocationOptions
		if err := decodeOptional(node, &opts); err != nil {
			return nil, err
		}
		return opts, nil
	case model.FieldTypeDate:
		var opts model.DateOptions
		if err := decodeOptional(node, &opts); err != nil {
			return nil, err
		}
		return opts, nil
	case model.FieldTypePeopleCount:
		if node.Kind == yaml.MappingNode && len(node.Content) > 0 {
			return nil, fmt.Errorf("peopleCount fields take no options")
		}
		return model.PeopleCountOptions{}, nil
	default:
		return nil, nil
	}
}

func decodeOptional(node *yaml.Node, out any) error {
	if node.Kind == 0 {
		return nil
	}
	return node.Decode(out)
}
