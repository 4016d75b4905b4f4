package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrUnsupportedWidget is returned when a field resolves to a widget the
	// terminal cannot prompt for.
	ErrUnsupportedWidget = errors.New("tui: unsupported widget")
	// ErrNilForm is returned when Run is called without a form.
	ErrNilForm = errors.New("tui: form is nil")
)
