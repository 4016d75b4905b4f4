package places

import (
	"bufio"
	"embed"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/goliatone/go-bookingform/pkg/model"
)

//go:embed data/cities.txt
var dataFS embed.FS

var loadEmbedded = sync.OnceValues(func() ([]string, error) {
	f, err := dataFS.Open("data/cities.txt")
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadPlaces(f)
})

// DefaultPlaces returns a copy of the embedded list of known places.
func DefaultPlaces() ([]string, error) {
	places, err := loadEmbedded()
	if err != nil {
		return nil, fmt.Errorf("places: load embedded list: %w", err)
	}
	return append([]string(nil), places...), nil
}

// LoadPlaces reads one place per line. Blank lines, "#" comments, markup and
// case-insensitive duplicates are dropped; first-seen order is kept.
func LoadPlaces(r io.Reader) ([]string, error) {
	if r == nil {
		return nil, fmt.Errorf("places: missing reader")
	}

	var places []string
	seen := make(map[string]bool)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := sanitizeText(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if key := strings.ToLower(line); !seen[key] {
			seen[key] = true
			places = append(places, line)
		}
	}
	return places, scanner.Err()
}

// Option maps a place name onto its location option. The value is the
// lowercased name.
func Option(place string) model.LocationOption {
	return model.LocationOption{Value: strings.ToLower(place), Label: place}
}

// Catalog is an immutable, ordered list of places with lookup limits.
type Catalog struct {
	places []string
	lower  []string
	opts   Options
}

// NewCatalog builds a catalog over Options.Places, or the embedded list when
// none are configured.
func NewCatalog(fns ...OptionFn) (*Catalog, error) {
	return newCatalog(NewOptions(fns...))
}

func newCatalog(opts Options) (*Catalog, error) {
	places := opts.Places
	if places == nil {
		loaded, err := DefaultPlaces()
		if err != nil {
			return nil, err
		}
		places = loaded
	}
	lower := make([]string, len(places))
	for i, place := range places {
		lower[i] = strings.ToLower(place)
	}
	return &Catalog{places: places, lower: lower, opts: opts}, nil
}

// Len reports how many places the catalog holds.
func (c *Catalog) Len() int { return len(c.places) }

// noLimit lifts the result cap in names.
const noLimit = -1

// Names returns the places whose name contains query, ignoring case, in
// catalog order and bounded by the resolved limit. A blank query returns the
// leading suggestions.
func (c *Catalog) Names(query string, limit int) []string {
	return c.names(query, c.opts.limit(limit))
}

// Match returns every place whose name contains query, ignoring case, in
// catalog order. The query is matched as typed; markup is not stripped.
func (c *Catalog) Match(query string) []model.LocationOption {
	return options(c.names(query, noLimit))
}

func (c *Catalog) names(query string, limit int) []string {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		n := min(max(c.opts.Suggestions, 0), len(c.places))
		if limit != noLimit {
			n = min(n, limit)
		}
		return append([]string{}, c.places[:n]...)
	}

	matches := []string{}
	for i, name := range c.lower {
		if limit != noLimit && len(matches) == limit {
			break
		}
		if strings.Contains(name, query) {
			matches = append(matches, c.places[i])
		}
	}
	return matches
}

// Lookup is Names mapped onto location options. It never returns nil.
func (c *Catalog) Lookup(query string, limit int) []model.LocationOption {
	return options(c.Names(query, limit))
}

func options(names []string) []model.LocationOption {
	out := make([]model.LocationOption, len(names))
	for i, name := range names {
		out[i] = Option(name)
	}
	return out
}
