package model

import (
	"github.com/goliatone/go-bookingform/internal/model"
)

// NewFormSchema builds an immutable schema from fields given in display
// order. Invalid configurations return a *SchemaError listing every problem.
func NewFormSchema(fields ...Field) (FormSchema, error) {
	return model.NewFormSchema(fields)
}

// MustFormSchema panics when the fields do not form a valid schema. Useful for
// package-level schema literals.
func MustFormSchema(fields ...Field) FormSchema {
	schema, err := NewFormSchema(fields...)
	if err != nil {
		panic(err)
	}
	return schema
}
