package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-bookingform/pkg/model"
)

// Built-in widget identifiers exposed by the registry.
const (
	WidgetLocationSelect = "location-select"
	WidgetDateInput      = "date-input"
	WidgetDateRangeEnd   = "date-range-end"
	WidgetGuestStepper   = "guest-stepper"
)

// Matcher decides whether a widget should render the supplied field.
type Matcher func(field model.Field) bool

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Registry selects widgets for fields from an explicit Field.Widget or the
// registered matchers. Higher priority wins; ties fall back to registration
// order.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with the built-in matchers registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Register adds a matcher under name. Re-registering a name does not replace
// the earlier rule; priority decides which one resolves first.
func (r *Registry) Register(name string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the widget name for a field.
func (r *Registry) Resolve(field model.Field) (string, bool) {
	if explicit := strings.TrimSpace(field.Widget); explicit != "" {
		return explicit, true
	}
	if r == nil {
		return "", false
	}

	r.mu.RLock()
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()

	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(field) {
			return entry.name, true
		}
	}
	return "", false
}

// Known reports whether a matcher is registered under name.
func (r *Registry) Known(name string) bool {
	if r == nil {
		return false
	}
	name = strings.TrimSpace(name)
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, entry := range r.rules {
		if entry.name == name {
			return true
		}
	}
	return false
}

// Assign resolves every field of schema. Fields without a widget are left
// out of the map.
func (r *Registry) Assign(schema model.FormSchema) map[string]string {
	out := make(map[string]string, schema.Len())
	for _, field := range schema.Fields() {
		if widget, ok := r.Resolve(field); ok {
			out[field.Name] = widget
		}
	}
	return out
}

func (r *Registry) registerBuiltins() {
	r.Register(WidgetDateRangeEnd, 90, func(field model.Field) bool {
		opts, ok := field.DateOptions()
		return ok && opts.MinDateFrom != ""
	})

	r.Register(WidgetDateInput, 80, func(field model.Field) bool {
		return field.Type == model.FieldTypeDate
	})

	r.Register(WidgetLocationSelect, 70, func(field model.Field) bool {
		return field.Type == model.FieldTypeLocation
	})

	r.Register(WidgetGuestStepper, 60, func(field model.Field) bool {
		return field.Type == model.FieldTypePeopleCount
	})
}
