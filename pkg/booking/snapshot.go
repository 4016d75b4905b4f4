package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/goliatone/go-bookingform/pkg/model"
)

// SnapshotField is the captured state of one field. Location and date fields
// carry Value; guest fields carry Guests. Display is the human text shown in
// the collapsed input: the option label, the alt-formatted date or the guest
// total.
type SnapshotField struct {
	Name    string
	Type    model.FieldType
	Label   string
	Value   string
	Display string
	Guests  []model.GuestOption
}

// Set reports whether the field holds a value.
func (f SnapshotField) Set() bool {
	return f.Value != "" || len(f.Guests) > 0
}

func (f SnapshotField) value() any {
	if f.Type == model.FieldTypePeopleCount {
		return f.Guests
	}
	return f.Value
}

// Snapshot is a read-only copy of the form state. Fields follow schema order.
type Snapshot struct {
	FormID  string
	TakenAt time.Time
	Fields  []SnapshotField
}

// Field looks up a captured field by name.
func (s Snapshot) Field(name string) (SnapshotField, bool) {
	for _, field := range s.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return SnapshotField{}, false
}

// Values maps field names to their value (string or []model.GuestOption).
func (s Snapshot) Values() map[string]any {
	out := make(map[string]any, len(s.Fields))
	for _, field := range s.Fields {
		out[field.Name] = field.value()
	}
	return out
}

// MarshalJSON encodes the snapshot as an object keyed by field name, keeping
// schema order.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, field := range s.Fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(field.Name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(field.value())
		if err != nil {
			return nil, fmt.Errorf("booking: encode %s: %w", field.Name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Snapshot captures the current state of every field.
func (f *Form) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	fields := f.schema.Fields()
	snap := Snapshot{
		FormID:  f.id,
		TakenAt: f.now(),
		Fields:  make([]SnapshotField, 0, len(fields)),
	}
	for _, field := range fields {
		entry := SnapshotField{Name: field.Name, Type: field.Type, Label: field.DisplayLabel()}
		switch field.Type {
		case model.FieldTypePeopleCount:
			entry.Guests = append([]model.GuestOption(nil), f.guests[field.Name]...)
			entry.Display = guestsText(entry.Guests)
		case model.FieldTypeDate:
			entry.Value = f.values[field.Name]
			if day, ok := f.dateLocked(field); ok {
				opts, _ := field.DateOptions()
				entry.Display = day.Format(opts.AltFormat)
			}
		default:
			entry.Value = f.values[field.Name]
			entry.Display = f.labels[field.Name]
			if entry.Display == "" {
				entry.Display = entry.Value
			}
		}
		snap.Fields = append(snap.Fields, entry)
	}
	return snap
}

// Submit is the terminal search action. It is always allowed, whatever the
// completion state, and returns the current snapshot.
func (f *Form) Submit(ctx context.Context) (Snapshot, error) {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return Snapshot{}, err
		}
	}
	snap := f.Snapshot()
	f.logger.Info("search_submitted",
		slog.Bool("submit_ready", f.SubmitReady()),
		slog.Int("fields", len(snap.Fields)),
	)
	return snap, nil
}

// Apply replays encoded values (as produced by Snapshot.MarshalJSON) through
// the form operations, so every bound and minimum is enforced. Unknown
// fields return model.ErrUnknownField.
func (f *Form) Apply(values map[string]json.RawMessage) error {
	for name := range values {
		if _, ok := f.schema.Field(name); !ok {
			return fmt.Errorf("%w: %q", model.ErrUnknownField, name)
		}
	}
	for _, field := range f.schema.Fields() {
		raw, ok := values[field.Name]
		if !ok || len(raw) == 0 || string(raw) == "null" {
			continue
		}
		if err := f.applyField(field, raw); err != nil {
			return err
		}
	}
	return nil
}

func (f *Form) applyField(field model.Field, raw json.RawMessage) error {
	switch field.Type {
	case model.FieldTypePeopleCount:
		var guests []model.GuestOption
		if err := json.Unmarshal(raw, &guests); err != nil {
			return fmt.Errorf("booking: decode %s: %w", field.Name, err)
		}
		for _, guest := range guests {
			if err := f.SetGuestCount(field.Name, guest.Name, guest.Value); err != nil {
				return err
			}
		}
		return nil
	default:
		var value string
		if err := json.Unmarshal(raw, &value); err != nil {
			return fmt.Errorf("booking: decode %s: %w", field.Name, err)
		}
		if value == "" {
			return nil
		}
		if field.Type == model.FieldTypeDate {
			return f.SetDate(field.Name, value)
		}
		return f.Select(field.Name, model.LocationOption{Value: value, Label: value})
	}
}
