package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/goliatone/go-bookingform/pkg/model"
	"github.com/goliatone/go-bookingform/pkg/search"
)

// defaultsProvider is implemented by searchers that know which options to
// show before any query is typed.
type defaultsProvider interface {
	Defaults() []model.LocationOption
}

// fieldSearch tracks the lookup state of one location field. seq increases
// with every query and every invalidation; only the lookup holding the
// current seq may publish results.
type fieldSearch struct {
	seq      uint64
	query    string
	cancel   context.CancelFunc
	pending  bool
	searched bool
	results  []model.LocationOption
	err      error
}

// LocationState is the view of a location field consumed by renderers.
type LocationState struct {
	Query        string
	Options      []model.LocationOption
	Pending      bool
	Err          error
	EmptyMessage string
}

// Empty reports whether the empty message should be shown.
func (s LocationState) Empty() bool {
	return !s.Pending && len(s.Options) == 0
}

// Search runs the field's searcher for query. A previous lookup for the same
// field is cancelled; if this lookup is itself superseded before it returns,
// its results are dropped and ErrStaleSearch is returned. On failure the
// field's options become empty and the error is returned.
func (f *Form) Search(ctx context.Context, name, query string) ([]model.LocationOption, error) {
	field, err := f.fieldOfType(name, model.FieldTypeLocation)
	if err != nil {
		return nil, err
	}
	searcher, err := f.searcherFor(field)
	if err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	f.mu.Lock()
	st := f.searchState(name)
	if st.cancel != nil {
		st.cancel()
	}
	st.seq++
	seq := st.seq
	st.query = query
	st.pending = true

	var searchCtx context.Context
	var cancel context.CancelFunc
	if f.searchTimeout > 0 {
		searchCtx, cancel = context.WithTimeout(ctx, f.searchTimeout)
	} else {
		searchCtx, cancel = context.WithCancel(ctx)
	}
	st.cancel = cancel
	f.mu.Unlock()

	logger := f.logger.With(slog.String("field", name), slog.Uint64("seq", seq))
	logger.Debug("search_started", slog.String("query", query))

	results, searchErr := searcher.Search(searchCtx, query)

	f.mu.Lock()
	defer f.mu.Unlock()
	cancel()

	if st.seq != seq {
		logger.Debug("search_discarded", slog.Int("results", len(results)))
		return nil, ErrStaleSearch
	}

	st.cancel = nil
	st.pending = false
	st.searched = true
	if searchErr != nil {
		st.results = nil
		st.err = searchErr
		logger.Warn("search_failed", slog.String("query", query), slog.String("error", searchErr.Error()))
		return nil, fmt.Errorf("booking: search %s: %w", name, searchErr)
	}

	st.err = nil
	st.results = cloneOptions(results)
	logger.Debug("search_completed", slog.Int("results", len(results)))
	return cloneOptions(results), nil
}

// SearchAsync runs Search in a new goroutine. done is invoked with the
// results unless the lookup was superseded; stale responses never reach it.
func (f *Form) SearchAsync(ctx context.Context, name, query string, done func([]model.LocationOption, error)) {
	go func() {
		results, err := f.Search(ctx, name, query)
		if errors.Is(err, ErrStaleSearch) {
			return
		}
		if done != nil {
			done(results, err)
		}
	}()
}

// Pending reports whether a lookup for the field is in flight.
func (f *Form) Pending(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	st, ok := f.searches[name]
	return ok && st.pending
}

// LocationOptions returns the options currently visible for a location field:
// the configured defaults (or the searcher's defaults) until a query has been
// answered, the latest results afterwards.
func (f *Form) LocationOptions(name string) ([]model.LocationOption, error) {
	state, err := f.Location(name)
	if err != nil {
		return nil, err
	}
	return state.Options, nil
}

// Location returns the full view of a location field.
func (f *Form) Location(name string) (LocationState, error) {
	field, err := f.fieldOfType(name, model.FieldTypeLocation)
	if err != nil {
		return LocationState{}, err
	}
	opts, _ := field.LocationOptions()

	f.mu.Lock()
	st, ok := f.searches[name]
	var state LocationState
	searched := false
	if ok {
		state = LocationState{
			Query:   st.query,
			Options: cloneOptions(st.results),
			Pending: st.pending,
			Err:     st.err,
		}
		searched = st.searched && strings.TrimSpace(st.query) != ""
	}
	f.mu.Unlock()

	state.EmptyMessage = opts.EmptyMessage
	if !searched && !state.Pending {
		state.Options = f.defaultOptions(field, opts)
	}
	return state, nil
}

// Select stores option as the value of a location field, cancels any pending
// lookup for it and advances focus along the chain.
func (f *Form) Select(name string, option model.LocationOption) error {
	if _, err := f.fieldOfType(name, model.FieldTypeLocation); err != nil {
		return err
	}
	value := strings.TrimSpace(option.Value)
	if value == "" {
		return fmt.Errorf("%w: %s", ErrEmptySelection, name)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidateSearchLocked(name)
	f.values[name] = value
	f.labels[name] = strings.TrimSpace(option.Label)
	f.logger.Debug("location_selected", slog.String("field", name), slog.String("value", value))
	f.completeLocked(name)
	return nil
}

func (f *Form) defaultOptions(field model.Field, opts model.LocationOptions) []model.LocationOption {
	if len(opts.Defaults) > 0 {
		return cloneOptions(opts.Defaults)
	}
	searcher, err := f.searcherFor(field)
	if err != nil {
		return nil
	}
	if provider, ok := searcher.(defaultsProvider); ok {
		return cloneOptions(provider.Defaults())
	}
	return nil
}

// searcherFor resolves the lookup of a location field: a named searcher from
// the registry, else the form fallback, else the registry default.
func (f *Form) searcherFor(field model.Field) (search.Searcher, error) {
	opts, _ := field.LocationOptions()
	if opts.Searcher != "" {
		if f.registry == nil {
			return nil, fmt.Errorf("%w: %q requested without a registry", ErrNoSearcher, opts.Searcher)
		}
		searcher, err := f.registry.Get(opts.Searcher)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNoSearcher, err)
		}
		return searcher, nil
	}
	if f.fallback != nil {
		return f.fallback, nil
	}
	if f.registry != nil {
		if searcher, err := f.registry.Get(search.DefaultName); err == nil {
			return searcher, nil
		}
	}
	return nil, fmt.Errorf("%w: field %s", ErrNoSearcher, field.Name)
}

func (f *Form) searchState(name string) *fieldSearch {
	st, ok := f.searches[name]
	if !ok {
		st = &fieldSearch{}
		f.searches[name] = st
	}
	return st
}

// invalidateSearchLocked cancels the in-flight lookup of name, if any, and
// bumps its sequence so a late response is discarded. Callers hold f.mu.
func (f *Form) invalidateSearchLocked(name string) {
	st, ok := f.searches[name]
	if !ok {
		return
	}
	if st.cancel != nil {
		st.cancel()
		st.cancel = nil
	}
	st.seq++
	st.pending = false
}

func cloneOptions(options []model.LocationOption) []model.LocationOption {
	if options == nil {
		return nil
	}
	return append([]model.LocationOption(nil), options...)
}
