package model

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrInvalidSchema is wrapped by every SchemaError.
	ErrInvalidSchema = errors.New("model: invalid form schema")
	// ErrUnknownField is returned when a field name is not part of a schema.
	ErrUnknownField = errors.New("model: unknown field")
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Violation is a single configuration problem detected in a schema.
type Violation struct {
	Field   string
	Message string
}

func (v Violation) String() string {
	if v.Field == "" {
		return v.Message
	}
	return v.Field + ": " + v.Message
}

// SchemaError lists every violation found while building a schema.
type SchemaError struct {
	Violations []Violation
}

func (e *SchemaError) Error() string {
	if e == nil || len(e.Violations) == 0 {
		return ErrInvalidSchema.Error()
	}
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.String())
	}
	return fmt.Sprintf("%s: %s", ErrInvalidSchema.Error(), strings.Join(parts, "; "))
}

func (e *SchemaError) Unwrap() error { return ErrInvalidSchema }

// NewFormSchema normalises the fields (filling option defaults) and validates
// them. The returned schema owns copies of the supplied fields.
func NewFormSchema(fields []Field) (FormSchema, error) {
	schema := FormSchema{
		fields: make([]Field, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}

	var violations []Violation
	for _, field := range fields {
		field = normaliseField(cloneField(field))
		if field.Name != "" {
			if _, exists := schema.index[field.Name]; exists {
				violations = append(violations, Violation{Field: field.Name, Message: "duplicate field name"})
				continue
			}
			schema.index[field.Name] = len(schema.fields)
		}
		schema.fields = append(schema.fields, field)
	}

	for _, field := range schema.fields {
		violations = append(violations, validateField(field, schema)...)
	}
	if len(violations) > 0 {
		return FormSchema{}, &SchemaError{Violations: violations}
	}
	return schema, nil
}

func normaliseField(field Field) Field {
	field.Name = strings.TrimSpace(field.Name)
	field.FocusOnNext = strings.TrimSpace(field.FocusOnNext)

	if field.Options == nil {
		switch field.Type {
		case FieldTypeLocation:
			field.Options = LocationOptions{}
		case FieldTypeDate:
			field.Options = DateOptions{}
		case FieldTypePeopleCount:
			field.Options = PeopleCountOptions{}
		}
	}

	switch opts := field.Options.(type) {
	case LocationOptions:
		if opts.EmptyMessage == "" {
			opts.EmptyMessage = DefaultEmptyMessage
		}
		field.Options = opts
	case DateOptions:
		if opts.DateFormat == "" {
			opts.DateFormat = DefaultDateFormat
		}
		if opts.AltFormat == "" {
			opts.AltFormat = DefaultAltFormat
		}
		opts.MinDateFrom = strings.TrimSpace(opts.MinDateFrom)
		field.Options = opts
	}
	return field
}

func validateField(field Field, schema FormSchema) []Violation {
	name := field.Name
	var out []Violation
	add := func(format string, args ...any) {
		out = append(out, Violation{Field: name, Message: fmt.Sprintf(format, args...)})
	}

	if err := structValidator().Struct(field); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				add("%s failed %q", strings.TrimPrefix(fe.Namespace(), "Field."), fe.Tag())
			}
		} else {
			add("%v", err)
		}
	}

	if field.Options != nil && field.Type.Valid() && field.Options.FieldType() != field.Type {
		add("options of type %q do not match field type %q", field.Options.FieldType(), field.Type)
	}

	if next := field.FocusOnNext; next != "" {
		if next == name {
			add("focusOnNext references the field itself")
		} else if _, ok := schema.index[next]; !ok {
			add("focusOnNext references unknown field %q", next)
		}
	}

	switch field.Type {
	case FieldTypePeopleCount:
		if len(field.Default) == 0 {
			add("peopleCount fields require a default value")
		}
		seen := make(map[string]struct{}, len(field.Default))
		for _, option := range field.Default {
			if _, dup := seen[option.Name]; dup {
				add("duplicate guest option %q", option.Name)
			}
			seen[option.Name] = struct{}{}
		}
	case FieldTypeDate:
		if len(field.Default) > 0 {
			add("defaultValue is only supported on peopleCount fields")
		}
		opts, _ := field.DateOptions()
		if opts.MinDate != "" && opts.MinDate != MinDateToday {
			if _, err := time.Parse(opts.DateFormat, opts.MinDate); err != nil {
				add("minDate %q does not match format %q", opts.MinDate, opts.DateFormat)
			}
		}
		if from := opts.MinDateFrom; from != "" {
			idx, ok := schema.index[from]
			switch {
			case from == name:
				add("minDateFrom references the field itself")
			case !ok:
				add("minDateFrom references unknown field %q", from)
			case schema.fields[idx].Type != FieldTypeDate:
				add("minDateFrom references non-date field %q", from)
			}
		}
	case FieldTypeLocation:
		if len(field.Default) > 0 {
			add("defaultValue is only supported on peopleCount fields")
		}
	}

	return out
}
