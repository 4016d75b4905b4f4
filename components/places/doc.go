// Package places holds the known-places catalog behind the booking form's
// location fields.
//
// A Catalog answers case-insensitive substring lookups in list order; a blank
// query returns the first five places. Searcher wraps a Catalog with a fixed
// delay so it behaves like a remote service, and Handler exposes the same
// lookup as a JSON endpoint ({"data": [{"value", "label"}]}) guarded by an
// optional GuardFunc. The default list is embedded from data/cities.txt.
package places
