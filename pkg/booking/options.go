package booking

import (
	"log/slog"
	"strings"
	"time"

	"github.com/goliatone/go-bookingform/pkg/search"
)

// DefaultSearchTimeout bounds every location lookup.
const DefaultSearchTimeout = 5 * time.Second

// Option configures a Form.
type Option func(*Form)

// WithLogger sets the structured logger. Forms log nothing by default.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Form) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithNow overrides the clock used to resolve the "today" minimum.
func WithNow(now func() time.Time) Option {
	return func(f *Form) {
		if now != nil {
			f.now = now
		}
	}
}

// WithSearcher sets the searcher used by location fields that do not name
// one.
func WithSearcher(searcher search.Searcher) Option {
	return func(f *Form) {
		f.fallback = searcher
	}
}

// WithSearchRegistry resolves named searchers referenced by location fields.
func WithSearchRegistry(registry *search.Registry) Option {
	return func(f *Form) {
		f.registry = registry
	}
}

// WithSearchTimeout bounds each lookup. Zero or negative disables the
// timeout.
func WithSearchTimeout(timeout time.Duration) Option {
	return func(f *Form) {
		f.searchTimeout = timeout
	}
}

// WithID overrides the generated form instance id.
func WithID(id string) Option {
	return func(f *Form) {
		if trimmed := strings.TrimSpace(id); trimmed != "" {
			f.id = trimmed
		}
	}
}
