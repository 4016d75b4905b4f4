// Package search defines the location lookup capability used by the booking
// form, a named registry of lookups, and an HTTP-backed implementation that
// queries a remote places endpoint.
package search

import (
	"context"

	"github.com/goliatone/go-bookingform/pkg/model"
)

// Searcher resolves a free-text query into location options. Implementations
// must honour ctx cancellation; the booking form cancels lookups that were
// superseded by a newer query for the same field.
type Searcher interface {
	Search(ctx context.Context, query string) ([]model.LocationOption, error)
}

// SearcherFunc adapts a function into a Searcher.
type SearcherFunc func(ctx context.Context, query string) ([]model.LocationOption, error)

// Search calls the underlying function.
func (fn SearcherFunc) Search(ctx context.Context, query string) ([]model.LocationOption, error) {
	return fn(ctx, query)
}
