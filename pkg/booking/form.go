package booking

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-bookingform/pkg/model"
	"github.com/goliatone/go-bookingform/pkg/search"
)

// Form holds the state of one booking form instance. It is safe for
// concurrent use; location lookups run outside the lock.
type Form struct {
	id            string
	schema        model.FormSchema
	logger        *slog.Logger
	now           func() time.Time
	fallback      search.Searcher
	registry      *search.Registry
	searchTimeout time.Duration

	mu        sync.Mutex
	values    map[string]string
	labels    map[string]string
	guests    map[string][]model.GuestOption
	completed map[string]bool
	focus     string
	searches  map[string]*fieldSearch
}

// New creates a form for schema with every field at its default value and
// focus on the first field.
func New(schema model.FormSchema, options ...Option) (*Form, error) {
	f := &Form{
		id:            uuid.NewString(),
		schema:        schema,
		logger:        slog.New(slog.DiscardHandler),
		now:           time.Now,
		searchTimeout: DefaultSearchTimeout,
		values:        make(map[string]string),
		labels:        make(map[string]string),
		guests:        make(map[string][]model.GuestOption),
		completed:     make(map[string]bool),
		searches:      make(map[string]*fieldSearch),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	f.logger = f.logger.With(slog.String("form_id", f.id))

	for _, field := range schema.Fields() {
		switch field.Type {
		case model.FieldTypePeopleCount:
			f.guests[field.Name] = field.Default
		case model.FieldTypeLocation:
			// Named searchers must resolve up front; unnamed ones may be
			// missing until the field is searched.
			if opts, _ := field.LocationOptions(); opts.Searcher != "" {
				if _, err := f.searcherFor(field); err != nil {
					return nil, fmt.Errorf("booking: field %s: %w", field.Name, err)
				}
			}
		}
	}
	if first, ok := schema.First(); ok {
		f.focus = first.Name
	}

	f.logger.Debug("form_created", slog.Int("fields", schema.Len()), slog.String("focus", f.focus))
	return f, nil
}

// ID returns the form instance id.
func (f *Form) ID() string {
	return f.id
}

// Schema returns the schema the form was built from.
func (f *Form) Schema() model.FormSchema {
	return f.schema
}

// Value returns the stored value of a location or date field.
func (f *Form) Value(name string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	value, ok := f.values[name]
	return value, ok
}

// Clear removes the value of a location or date field and cancels any
// pending lookup for it.
func (f *Form) Clear(name string) error {
	field, err := f.field(name)
	if err != nil {
		return err
	}
	if field.Type == model.FieldTypePeopleCount {
		return fmt.Errorf("%w: clear %s", ErrFieldType, name)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.values, name)
	delete(f.labels, name)
	f.completed[name] = false
	f.invalidateSearchLocked(name)
	return nil
}

func (f *Form) field(name string) (model.Field, error) {
	field, ok := f.schema.Field(name)
	if !ok {
		return model.Field{}, fmt.Errorf("%w: %q", model.ErrUnknownField, name)
	}
	return field, nil
}

func (f *Form) fieldOfType(name string, typ model.FieldType) (model.Field, error) {
	field, err := f.field(name)
	if err != nil {
		return model.Field{}, err
	}
	if field.Type != typ {
		return model.Field{}, fmt.Errorf("%w: %s is %s, want %s", ErrFieldType, name, field.Type, typ)
	}
	return field, nil
}
