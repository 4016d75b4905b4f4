package booking

import "errors"

var (
	// ErrFieldType is returned when an operation targets a field of the wrong
	// type (for example Increment on a date field).
	ErrFieldType = errors.New("booking: operation not supported by field type")
	// ErrUnknownOption is returned when a guest option name is not part of
	// the field.
	ErrUnknownOption = errors.New("booking: unknown guest option")
	// ErrOutOfBounds is returned when an explicit guest count falls outside
	// the option's min/max.
	ErrOutOfBounds = errors.New("booking: guest count out of bounds")
	// ErrDateBeforeMinimum is returned when a selected date precedes the
	// field's minimum selectable date.
	ErrDateBeforeMinimum = errors.New("booking: date before minimum")
	// ErrInvalidDate is returned when a date string does not match the
	// field's date format.
	ErrInvalidDate = errors.New("booking: invalid date")
	// ErrEmptySelection is returned when a location option has no value.
	ErrEmptySelection = errors.New("booking: empty location selection")
	// ErrStaleSearch is returned by Search when a newer query or selection
	// for the same field superseded the lookup. Its results were discarded.
	ErrStaleSearch = errors.New("booking: search superseded")
	// ErrNoSearcher is returned when a location field has no searcher.
	ErrNoSearcher = errors.New("booking: no searcher configured")
)
