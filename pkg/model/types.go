package model

import internalmodel "github.com/goliatone/go-bookingform/internal/model"

// FieldType re-exports the internal FieldType enumeration.
type FieldType = internalmodel.FieldType

const (
	FieldTypeLocation    = internalmodel.FieldTypeLocation
	FieldTypeDate        = internalmodel.FieldTypeDate
	FieldTypePeopleCount = internalmodel.FieldTypePeopleCount
)

const (
	MinDateToday        = internalmodel.MinDateToday
	DefaultDateFormat   = internalmodel.DefaultDateFormat
	DefaultAltFormat    = internalmodel.DefaultAltFormat
	DefaultEmptyMessage = internalmodel.DefaultEmptyMessage
)

type Field = internalmodel.Field
type FieldOptions = internalmodel.FieldOptions
type LocationOptions = internalmodel.LocationOptions
type DateOptions = internalmodel.DateOptions
type PeopleCountOptions = internalmodel.PeopleCountOptions
type LocationOption = internalmodel.LocationOption
type GuestOption = internalmodel.GuestOption
type FormSchema = internalmodel.FormSchema
type Violation = internalmodel.Violation
type SchemaError = internalmodel.SchemaError

var (
	ErrInvalidSchema = internalmodel.ErrInvalidSchema
	ErrUnknownField  = internalmodel.ErrUnknownField
)
