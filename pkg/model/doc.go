// Package model defines the booking form schema consumed by the controller and
// renderers. A FormSchema is an ordered list of fields; each field carries a
// type (location, date or peopleCount), an optional focusOnNext link to the
// field that should receive focus once it is completed, and a typed options
// variant matching its type (LocationOptions, DateOptions or
// PeopleCountOptions). peopleCount fields keep their counters in the default
// value as GuestOption entries bounded by min/max.
//
// Schemas are validated on construction: dangling focusOnNext or minDateFrom
// references, mismatched option variants and out-of-bounds guest defaults are
// reported together through *SchemaError.
package model
