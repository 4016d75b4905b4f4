package places

import (
	"net/http"
	"time"
)

const (
	DefaultRoutePath = "/api/places"
	// DefaultSuggestions is how many leading places an empty query returns.
	DefaultSuggestions = 5
	// DefaultLatency is the delay the in-memory Searcher adds to each lookup.
	DefaultLatency = 600 * time.Millisecond

	defaultLimit    = 50
	defaultMaxLimit = 200
)

// GuardFunc may reject a request before the lookup runs. Errors implementing
// HTTPError choose the response status; anything else maps to 403.
type GuardFunc func(r *http.Request) error

// Options configures the catalog, its HTTP handler and its Searcher.
type Options struct {
	RoutePath   string
	SearchParam string
	LimitParam  string
	// DefaultLimit applies when a request carries no limit.
	DefaultLimit int
	MaxLimit     int
	// Suggestions caps the places returned for a blank query. Negative
	// disables suggestions so blank queries return nothing.
	Suggestions int
	// Latency delays Searcher responses. Negative disables the delay.
	Latency time.Duration
	Guard   GuardFunc
	// Places replaces the embedded list when non-nil.
	Places []string
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath:    DefaultRoutePath,
		SearchParam:  "q",
		LimitParam:   "limit",
		DefaultLimit: defaultLimit,
		MaxLimit:     defaultMaxLimit,
		Suggestions:  DefaultSuggestions,
		Latency:      DefaultLatency,
	}
}

// NewOptions applies fns over the defaults and repairs zero values.
func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn != nil {
			fn(&opts)
		}
	}
	return opts.normalized()
}

func (o Options) normalized() Options {
	def := DefaultOptions()
	if o.RoutePath == "" {
		o.RoutePath = def.RoutePath
	}
	if o.SearchParam == "" {
		o.SearchParam = def.SearchParam
	}
	if o.LimitParam == "" {
		o.LimitParam = def.LimitParam
	}
	if o.DefaultLimit <= 0 {
		o.DefaultLimit = def.DefaultLimit
	}
	if o.MaxLimit <= 0 {
		o.MaxLimit = def.MaxLimit
	}
	if o.Suggestions == 0 {
		o.Suggestions = def.Suggestions
	}
	if o.Places != nil {
		o.Places = append([]string(nil), o.Places...)
	}
	return o
}

// limit resolves a requested limit: 0 means the default, negative means none.
func (o Options) limit(requested int) int {
	switch {
	case requested < 0:
		return 0
	case requested == 0:
		requested = o.DefaultLimit
	}
	return min(requested, o.MaxLimit)
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) { o.RoutePath = path }
}

func WithSearchParam(name string) OptionFn {
	return func(o *Options) { o.SearchParam = name }
}

func WithLimitParam(name string) OptionFn {
	return func(o *Options) { o.LimitParam = name }
}

func WithDefaultLimit(limit int) OptionFn {
	return func(o *Options) { o.DefaultLimit = limit }
}

func WithMaxLimit(limit int) OptionFn {
	return func(o *Options) { o.MaxLimit = limit }
}

// WithSuggestions sets how many places a blank query returns; pass a
// negative value to return none.
func WithSuggestions(n int) OptionFn {
	return func(o *Options) { o.Suggestions = n }
}

func WithLatency(latency time.Duration) OptionFn {
	return func(o *Options) { o.Latency = latency }
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) { o.Guard = guard }
}

func WithPlaces(places []string) OptionFn {
	return func(o *Options) { o.Places = places }
}
