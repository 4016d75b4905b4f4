package booking

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/goliatone/go-bookingform/pkg/model"
)

// MinDate returns the earliest selectable day of a date field. ok is false
// when the field has no minimum (or its source field is still empty).
func (f *Form) MinDate(name string) (day time.Time, ok bool, err error) {
	field, err := f.fieldOfType(name, model.FieldTypeDate)
	if err != nil {
		return time.Time{}, false, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	day, ok = f.minDateLocked(field)
	return day, ok, nil
}

// SelectDate stores day (truncated to the date in the form clock's location)
// as the field value. Days before the field minimum are rejected with
// ErrDateBeforeMinimum and leave the state unchanged. Dependent date fields
// whose value falls below their new minimum are cleared.
func (f *Form) SelectDate(name string, day time.Time) error {
	field, err := f.fieldOfType(name, model.FieldTypeDate)
	if err != nil {
		return err
	}
	opts, _ := field.DateOptions()
	day = f.truncateDay(day)

	f.mu.Lock()
	defer f.mu.Unlock()

	if minDay, ok := f.minDateLocked(field); ok && day.Before(minDay) {
		return fmt.Errorf("%w: %s %s < %s", ErrDateBeforeMinimum, name,
			day.Format(opts.DateFormat), minDay.Format(opts.DateFormat))
	}

	f.values[name] = day.Format(opts.DateFormat)
	f.logger.Debug("date_selected", slog.String("field", name), slog.String("value", f.values[name]))
	f.clearDependentsLocked(name, day)
	f.completeLocked(name)
	return nil
}

// SetDate parses value with the field's date format and selects it.
func (f *Form) SetDate(name, value string) error {
	field, err := f.fieldOfType(name, model.FieldTypeDate)
	if err != nil {
		return err
	}
	day, err := f.parseDate(field, value)
	if err != nil {
		return err
	}
	return f.SelectDate(name, day)
}

// Date returns the selected day of a date field.
func (f *Form) Date(name string) (time.Time, bool, error) {
	field, err := f.fieldOfType(name, model.FieldTypeDate)
	if err != nil {
		return time.Time{}, false, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	day, ok := f.dateLocked(field)
	return day, ok, nil
}

// DisplayDate formats the selected day with the field's alt format. It
// returns "" when nothing is selected.
func (f *Form) DisplayDate(name string) (string, error) {
	field, err := f.fieldOfType(name, model.FieldTypeDate)
	if err != nil {
		return "", err
	}
	day, ok, err := f.Date(name)
	if err != nil || !ok {
		return "", err
	}
	opts, _ := field.DateOptions()
	return day.Format(opts.AltFormat), nil
}

func (f *Form) minDateLocked(field model.Field) (time.Time, bool) {
	opts, _ := field.DateOptions()

	var floor time.Time
	ok := false
	raise := func(t time.Time) {
		if !ok || t.After(floor) {
			floor = t
			ok = true
		}
	}

	switch opts.MinDate {
	case "":
	case model.MinDateToday:
		raise(f.truncateDay(f.now()))
	default:
		if fixed, err := f.parseDate(field, opts.MinDate); err == nil {
			raise(fixed)
		}
	}

	if opts.MinDateFrom != "" {
		if source, exists := f.schema.Field(opts.MinDateFrom); exists {
			if day, set := f.dateLocked(source); set {
				raise(day)
			}
		}
	}
	return floor, ok
}

func (f *Form) dateLocked(field model.Field) (time.Time, bool) {
	value, ok := f.values[field.Name]
	if !ok {
		return time.Time{}, false
	}
	day, err := f.parseDate(field, value)
	if err != nil {
		return time.Time{}, false
	}
	return day, true
}

// clearDependentsLocked drops values of date fields bound to source that are
// now below their minimum. A cleared field no longer bounds its own
// dependents, so their values are left alone.
func (f *Form) clearDependentsLocked(source string, day time.Time) {
	for _, field := range f.schema.Fields() {
		if field.Type != model.FieldTypeDate {
			continue
		}
		opts, _ := field.DateOptions()
		if opts.MinDateFrom != source {
			continue
		}
		current, ok := f.dateLocked(field)
		if !ok || !current.Before(day) {
			continue
		}
		delete(f.values, field.Name)
		f.completed[field.Name] = false
		f.logger.Debug("date_cleared", slog.String("field", field.Name), slog.String("source", source))
	}
}

func (f *Form) parseDate(field model.Field, value string) (time.Time, error) {
	opts, _ := field.DateOptions()
	day, err := time.ParseInLocation(opts.DateFormat, strings.TrimSpace(value), f.location())
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s %q: %v", ErrInvalidDate, field.Name, value, err)
	}
	return f.truncateDay(day), nil
}

func (f *Form) truncateDay(t time.Time) time.Time {
	t = t.In(f.location())
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func (f *Form) location() *time.Location {
	return f.now().Location()
}
