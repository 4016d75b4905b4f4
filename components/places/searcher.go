package places

import (
	"context"
	"time"

	"github.com/goliatone/go-bookingform/pkg/model"
	"github.com/goliatone/go-bookingform/pkg/search"
)

// Searcher answers location lookups from a Catalog after a fixed delay,
// standing in for a network-backed place search.
type Searcher struct {
	catalog *Catalog
	latency time.Duration
}

var _ search.Searcher = (*Searcher)(nil)

func NewSearcher(fns ...OptionFn) (*Searcher, error) {
	catalog, err := NewCatalog(fns...)
	if err != nil {
		return nil, err
	}
	return &Searcher{catalog: catalog, latency: catalog.opts.Latency}, nil
}

// Search waits out the latency, then returns every matching option. A
// cancelled ctx aborts the wait.
func (s *Searcher) Search(ctx context.Context, query string) ([]model.LocationOption, error) {
	if s.latency > 0 {
		timer := time.NewTimer(s.latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.catalog.Match(query), nil
}

// Defaults returns the options shown before anything is typed.
func (s *Searcher) Defaults() []model.LocationOption {
	return s.catalog.Match("")
}
