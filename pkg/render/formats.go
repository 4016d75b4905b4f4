package render

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"net/url"
	"strconv"

	"github.com/goliatone/go-bookingform/pkg/booking"
	"github.com/goliatone/go-bookingform/pkg/model"
	"github.com/goliatone/go-bookingform/pkg/render/template"
	"github.com/goliatone/go-bookingform/pkg/render/template/gotemplate"
)

// Output format names.
const (
	FormatJSON   = "json"
	FormatForm   = "form"
	FormatPretty = "pretty"
)

// DefaultTitle heads the pretty summary when RenderOptions.Title is empty.
const DefaultTitle = "Your search"

//go:embed templates/*.tpl
var templatesFS embed.FS

// TemplatesFS exposes the bundled templates.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

// NewDefaultRegistry registers the json, form and pretty renderers. The
// pretty renderer uses the bundled summary template unless opts add an
// overlay that shadows it.
func NewDefaultRegistry(opts ...gotemplate.Option) (*Registry, error) {
	engine, err := gotemplate.New(append([]gotemplate.Option{gotemplate.WithFS(TemplatesFS())}, opts...)...)
	if err != nil {
		return nil, err
	}
	reg := NewRegistry()
	if err := reg.Register(JSON{}, FormEncoded{}, NewPretty(engine)); err != nil {
		return nil, err
	}
	return reg, nil
}

// JSON renders the snapshot as an indented object keyed by field name.
type JSON struct{}

func (JSON) Name() string        { return FormatJSON }
func (JSON) ContentType() string { return "application/json" }

func (JSON) Render(ctx context.Context, snap booking.Snapshot, _ RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("render: json: %w", err)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return nil, fmt.Errorf("render: json: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// FormEncoded renders application/x-www-form-urlencoded output. Guest
// counters use "field.option" keys.
type FormEncoded struct{}

func (FormEncoded) Name() string        { return FormatForm }
func (FormEncoded) ContentType() string { return "application/x-www-form-urlencoded" }

func (FormEncoded) Render(ctx context.Context, snap booking.Snapshot, opts RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	values := url.Values{}
	for _, field := range snap.Fields {
		if field.Type == model.FieldTypePeopleCount {
			for _, guest := range field.Guests {
				values.Set(field.Name+"."+guest.Name, strconv.Itoa(guest.Value))
			}
			continue
		}
		values.Set(field.Name, field.Value)
	}
	for _, hidden := range SortedHiddenFields(opts.Hidden) {
		values.Set(hidden.Name, hidden.Value)
	}
	return []byte(values.Encode()), nil
}

// Pretty renders a text summary through a template engine.
type Pretty struct {
	engine   template.TemplateRenderer
	template string
}

// NewPretty builds the summary renderer over engine using the "summary"
// template.
func NewPretty(engine template.TemplateRenderer) *Pretty {
	return &Pretty{engine: engine, template: "summary"}
}

func (*Pretty) Name() string        { return FormatPretty }
func (*Pretty) ContentType() string { return "text/plain" }

type summaryGuest struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

type summaryField struct {
	Name    string         `json:"name"`
	Label   string         `json:"label"`
	Display string         `json:"display"`
	Guests  []summaryGuest `json:"guests"`
}

type summaryData struct {
	Title  string         `json:"title"`
	FormID string         `json:"form_id"`
	Fields []summaryField `json:"fields"`
}

func (p *Pretty) Render(ctx context.Context, snap booking.Snapshot, opts RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p == nil || p.engine == nil {
		return nil, fmt.Errorf("render: pretty renderer has no template engine")
	}

	data := summaryData{Title: opts.Title, FormID: snap.FormID}
	if data.Title == "" {
		data.Title = DefaultTitle
	}
	for _, field := range snap.Fields {
		entry := summaryField{Name: field.Name, Label: field.Label, Display: field.Display}
		for _, guest := range field.Guests {
			label := guest.Label
			if label == "" {
				label = guest.Name
			}
			entry.Guests = append(entry.Guests, summaryGuest{Label: label, Value: guest.Value})
		}
		data.Fields = append(data.Fields, entry)
	}

	out, err := p.engine.RenderTemplate(p.template, data)
	if err != nil {
		return nil, fmt.Errorf("render: pretty: %w", err)
	}
	return []byte(out), nil
}
