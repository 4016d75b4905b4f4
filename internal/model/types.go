package model

// FieldType is the enum of booking field kinds a schema can declare.
type FieldType string

const (
	FieldTypeLocation    FieldType = "location"
	FieldTypeDate        FieldType = "date"
	FieldTypePeopleCount FieldType = "peopleCount"
)

// Valid reports whether t is one of the supported field kinds.
func (t FieldType) Valid() bool {
	switch t {
	case FieldTypeLocation, FieldTypeDate, FieldTypePeopleCount:
		return true
	default:
		return false
	}
}

const (
	// MinDateToday binds a date field's minimum to the current day.
	MinDateToday = "today"
	// DefaultDateFormat is the layout used to store selected dates.
	DefaultDateFormat = "2006-01-02"
	// DefaultAltFormat is the layout used to display selected dates.
	DefaultAltFormat = "Jan 2, 2006"
	// DefaultEmptyMessage is shown when a location lookup yields nothing.
	DefaultEmptyMessage = "Nothing was found :("
)

// LocationOption is a selectable place.
type LocationOption struct {
	Value string `json:"value" yaml:"value" validate:"required"`
	Label string `json:"label" yaml:"label" validate:"required"`
}

// GuestOption is one bounded counter category (adults, children, ...) of a
// peopleCount field. Value always stays within [Min, Max].
type GuestOption struct {
	Name        string `json:"name" yaml:"name" validate:"required"`
	Label       string `json:"label" yaml:"label"`
	Description string `json:"description,omitempty" yaml:"description"`
	Value       int    `json:"value" yaml:"value" validate:"gtefield=Min,ltefield=Max"`
	Min         int    `json:"min" yaml:"min"`
	Max         int    `json:"max" yaml:"max" validate:"gtefield=Min"`
}

// FieldOptions is the per-type configuration attached to a field. The
// concrete variant must match the field's Type.
type FieldOptions interface {
	FieldType() FieldType
	isFieldOptions()
}

// LocationOptions configures a location picker.
type LocationOptions struct {
	// Defaults are shown before the user types a query.
	Defaults []LocationOption `json:"defaults,omitempty" yaml:"defaults" validate:"dive"`
	// Searcher names the lookup registered for this field. Empty selects the
	// form's default searcher.
	Searcher     string `json:"searcher,omitempty" yaml:"searcher"`
	EmptyMessage string `json:"emptyMessage,omitempty" yaml:"emptyMessage"`
}

// DateOptions configures a date picker.
type DateOptions struct {
	// MinDate is either MinDateToday or a date in DateFormat.
	MinDate string `json:"minDate,omitempty" yaml:"minDate"`
	// MinDateFrom names another date field whose value becomes this field's
	// minimum once selected.
	MinDateFrom string `json:"minDateFrom,omitempty" yaml:"minDateFrom"`
	DateFormat  string `json:"dateFormat,omitempty" yaml:"dateFormat"`
	AltFormat   string `json:"altFormat,omitempty" yaml:"altFormat"`
}

// PeopleCountOptions configures a guest stepper. It carries no settings; the
// counters live in the field default value.
type PeopleCountOptions struct{}

func (LocationOptions) FieldType() FieldType    { return FieldTypeLocation }
func (DateOptions) FieldType() FieldType        { return FieldTypeDate }
func (PeopleCountOptions) FieldType() FieldType { return FieldTypePeopleCount }

func (LocationOptions) isFieldOptions()    {}
func (DateOptions) isFieldOptions()        {}
func (PeopleCountOptions) isFieldOptions() {}

// Field describes one entry of a form schema.
type Field struct {
	Name        string    `json:"name" validate:"required"`
	Type        FieldType `json:"type" validate:"required,oneof=location date peopleCount"`
	Label       string    `json:"label,omitempty"`
	Placeholder string    `json:"placeholder,omitempty"`
	// FocusOnNext names the field that receives focus once this one is
	// completed.
	FocusOnNext string `json:"focusOnNext,omitempty"`
	// Widget forces a widget instead of resolving one from the field type.
	Widget  string        `json:"widget,omitempty"`
	Options FieldOptions  `json:"options,omitempty" validate:"-"`
	Default []GuestOption `json:"defaultValue,omitempty" validate:"dive"`
}

// LocationOptions returns the location variant of the field options.
func (f Field) LocationOptions() (LocationOptions, bool) {
	opts, ok := f.Options.(LocationOptions)
	return opts, ok
}

// DateOptions returns the date variant of the field options.
func (f Field) DateOptions() (DateOptions, bool) {
	opts, ok := f.Options.(DateOptions)
	return opts, ok
}

// DisplayLabel returns the label, falling back to the field name.
func (f Field) DisplayLabel() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Name
}

// FormSchema is the ordered, immutable set of fields of a form. Field order
// defines the visual order and the default focus order.
type FormSchema struct {
	fields []Field
	index  map[string]int
}

// Len returns the number of fields.
func (s FormSchema) Len() int {
	return len(s.fields)
}

// Fields returns a copy of the fields in schema order.
func (s FormSchema) Fields() []Field {
	out := make([]Field, len(s.fields))
	for i, field := range s.fields {
		out[i] = cloneField(field)
	}
	return out
}

// Names returns the field names in schema order.
func (s FormSchema) Names() []string {
	out := make([]string, len(s.fields))
	for i, field := range s.fields {
		out[i] = field.Name
	}
	return out
}

// Field looks up a field by name.
func (s FormSchema) Field(name string) (Field, bool) {
	idx, ok := s.index[name]
	if !ok {
		return Field{}, false
	}
	return cloneField(s.fields[idx]), true
}

// First returns the first field in schema order.
func (s FormSchema) First() (Field, bool) {
	if len(s.fields) == 0 {
		return Field{}, false
	}
	return cloneField(s.fields[0]), true
}

// Next returns the focusOnNext target of name, if any.
func (s FormSchema) Next(name string) (string, bool) {
	idx, ok := s.index[name]
	if !ok {
		return "", false
	}
	next := s.fields[idx].FocusOnNext
	return next, next != ""
}

func cloneField(field Field) Field {
	out := field
	if field.Default != nil {
		out.Default = append([]GuestOption(nil), field.Default...)
	}
	if opts, ok := field.Options.(LocationOptions); ok && opts.Defaults != nil {
		opts.Defaults = append([]LocationOption(nil), opts.Defaults...)
		out.Options = opts
	}
	return out
}
