package booking

import (
	"fmt"
	"log/slog"

	"github.com/goliatone/go-bookingform/pkg/model"
)

// Direction selects the plus or minus control of a guest option.
type Direction string

const (
	Plus  Direction = "plus"
	Minus Direction = "minus"
)

// IsOptionDisabled reports whether the control in dir is disabled for option:
// plus at max, minus at min.
func IsOptionDisabled(option model.GuestOption, dir Direction) bool {
	switch dir {
	case Plus:
		return option.Value >= option.Max
	case Minus:
		return option.Value <= option.Min
	default:
		return true
	}
}

// IsOptionDisabled is the form-bound variant of the package function so
// renderers can query the affordance through the controller.
func (f *Form) IsOptionDisabled(option model.GuestOption, dir Direction) bool {
	return IsOptionDisabled(option, dir)
}

// Guests returns a copy of the counters of a peopleCount field.
func (f *Form) Guests(name string) ([]model.GuestOption, error) {
	if _, err := f.fieldOfType(name, model.FieldTypePeopleCount); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.GuestOption(nil), f.guests[name]...), nil
}

// GuestOption returns the current state of one counter.
func (f *Form) GuestOption(name, option string) (model.GuestOption, error) {
	guests, err := f.Guests(name)
	if err != nil {
		return model.GuestOption{}, err
	}
	for _, g := range guests {
		if g.Name == option {
			return g, nil
		}
	}
	return model.GuestOption{}, fmt.Errorf("%w: %s.%s", ErrUnknownOption, name, option)
}

// GuestCount sums every counter of a peopleCount field.
func (f *Form) GuestCount(name string) (int, error) {
	guests, err := f.Guests(name)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, g := range guests {
		total += g.Value
	}
	return total, nil
}

// Increment adds one to option unless it is already at max. It reports
// whether the value changed.
func (f *Form) Increment(name, option string) (bool, error) {
	return f.step(name, option, Plus)
}

// Decrement removes one from option unless it is already at min. It reports
// whether the value changed.
func (f *Form) Decrement(name, option string) (bool, error) {
	return f.step(name, option, Minus)
}

// OnPlusClick returns a handler incrementing option on field. Errors and
// disabled clicks are no-ops.
func (f *Form) OnPlusClick(option model.GuestOption, name string) func() {
	return func() {
		if _, err := f.Increment(name, option.Name); err != nil {
			f.logger.Warn("guest_click_failed", slog.String("field", name), slog.String("option", option.Name), slog.String("error", err.Error()))
		}
	}
}

// OnMinusClick returns a handler decrementing option on field. Errors and
// disabled clicks are no-ops.
func (f *Form) OnMinusClick(option model.GuestOption, name string) func() {
	return func() {
		if _, err := f.Decrement(name, option.Name); err != nil {
			f.logger.Warn("guest_click_failed", slog.String("field", name), slog.String("option", option.Name), slog.String("error", err.Error()))
		}
	}
}

// SetGuestCount stores an explicit count. Unlike the stepper it rejects
// values outside the option bounds with ErrOutOfBounds.
func (f *Form) SetGuestCount(name, option string, value int) error {
	if _, err := f.fieldOfType(name, model.FieldTypePeopleCount); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	guests := f.guests[name]
	idx := indexOfGuest(guests, option)
	if idx < 0 {
		return fmt.Errorf("%w: %s.%s", ErrUnknownOption, name, option)
	}
	current := guests[idx]
	if value < current.Min || value > current.Max {
		return fmt.Errorf("%w: %s.%s=%d not in [%d, %d]", ErrOutOfBounds, name, option, value, current.Min, current.Max)
	}
	f.guests[name] = withGuestValue(guests, idx, value)
	return nil
}

func (f *Form) step(name, option string, dir Direction) (bool, error) {
	if _, err := f.fieldOfType(name, model.FieldTypePeopleCount); err != nil {
		return false, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	guests := f.guests[name]
	idx := indexOfGuest(guests, option)
	if idx < 0 {
		return false, fmt.Errorf("%w: %s.%s", ErrUnknownOption, name, option)
	}
	current := guests[idx]
	if IsOptionDisabled(current, dir) {
		f.logger.Debug("guest_step_disabled", slog.String("field", name), slog.String("option", option), slog.String("direction", string(dir)))
		return false, nil
	}

	next := current.Value + 1
	if dir == Minus {
		next = current.Value - 1
	}
	f.guests[name] = withGuestValue(guests, idx, next)
	return true, nil
}

func indexOfGuest(guests []model.GuestOption, name string) int {
	for i, g := range guests {
		if g.Name == name {
			return i
		}
	}
	return -1
}

// withGuestValue copies guests so snapshots handed out earlier never observe
// later changes.
func withGuestValue(guests []model.GuestOption, idx, value int) []model.GuestOption {
	out := append([]model.GuestOption(nil), guests...)
	out[idx].Value = value
	return out
}

// GuestsSummary renders the collapsed text of a guest field, e.g. "3 guests".
func (f *Form) GuestsSummary(name string) (string, error) {
	guests, err := f.Guests(name)
	if err != nil {
		return "", err
	}
	return guestsText(guests), nil
}

func guestsText(guests []model.GuestOption) string {
	total := 0
	for _, g := range guests {
		total += g.Value
	}
	if total == 1 {
		return "1 guest"
	}
	return fmt.Sprintf("%d guests", total)
}
