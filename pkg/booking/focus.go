package booking

import (
	"log/slog"
)

// Focused returns the name of the field holding input focus.
func (f *Form) Focused() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.focus
}

// Focus moves input focus to name. Users may place focus on any field.
func (f *Form) Focus(name string) error {
	if _, err := f.field(name); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.focus = name
	return nil
}

// Complete marks the interaction with name as finished and follows its
// focusOnNext. Location and date fields complete themselves on selection;
// guest fields complete when the renderer closes the stepper.
func (f *Form) Complete(name string) error {
	if _, err := f.field(name); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.completeLocked(name)
	return nil
}

// IsComplete reports whether name has been completed since its last change.
func (f *Form) IsComplete(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.completed[name]
}

// SubmitReady reports whether the focus chain reached its end: the focused
// field has no successor and has been completed. Submit does not require it.
func (f *Form) SubmitReady() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.focus == "" {
		return true
	}
	if _, ok := f.schema.Next(f.focus); ok {
		return false
	}
	return f.completed[f.focus]
}

func (f *Form) completeLocked(name string) {
	f.completed[name] = true
	next, ok := f.schema.Next(name)
	if !ok {
		return
	}
	f.logger.Debug("focus_advanced", slog.String("from", name), slog.String("to", next))
	f.focus = next
}
