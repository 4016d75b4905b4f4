// Package setup wires the pieces shared by the bookingform binaries: the
// form definition, the location searchers and the output renderers.
package setup

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-bookingform/components/places"
	"github.com/goliatone/go-bookingform/components/places/searchwiring"
	"github.com/goliatone/go-bookingform/pkg/render"
	"github.com/goliatone/go-bookingform/pkg/render/template/gotemplate"
	"github.com/goliatone/go-bookingform/pkg/schema"
	"github.com/goliatone/go-bookingform/pkg/search"
)

// RemoteSearcher is the registry name of the HTTP-backed searcher.
const RemoteSearcher = "remote"

// LoadDefinition resolves ref: empty selects the bundled definition,
// http(s) URLs are fetched, anything else is read from disk.
func LoadDefinition(ctx context.Context, client *http.Client, ref string) (schema.Definition, error) {
	ref = strings.TrimSpace(ref)
	switch {
	case ref == "":
		return schema.Default()
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return schema.LoadURL(ctx, client, ref)
	default:
		return schema.LoadFile(ref)
	}
}

// SearchConfig selects the searchers to register.
type SearchConfig struct {
	// Latency of the local places searcher.
	Latency time.Duration
	// PlacesURL is the base URL of a remote places API. When empty the
	// remote name resolves to the local searcher.
	PlacesURL string
	Client    *http.Client
}

// Searchers builds the registry holding the local places searcher under
// search.DefaultName and the remote one under RemoteSearcher. The returned
// searcher is the one forms fall back to: remote when configured.
func Searchers(cfg SearchConfig) (*search.Registry, search.Searcher, error) {
	local, err := places.NewSearcher(places.WithLatency(cfg.Latency))
	if err != nil {
		return nil, nil, fmt.Errorf("setup: places searcher: %w", err)
	}

	var remote search.Searcher = local
	if url := strings.TrimSpace(cfg.PlacesURL); url != "" {
		httpSearcher, err := searchwiring.PlacesHTTPSearcher(cfg.Client, url, "")
		if err != nil {
			return nil, nil, fmt.Errorf("setup: remote searcher: %w", err)
		}
		remote = httpSearcher
	}

	registry := search.NewRegistry()
	if err := registry.Register(search.DefaultName, local); err != nil {
		return nil, nil, err
	}
	if err := registry.Register(RemoteSearcher, remote); err != nil {
		return nil, nil, err
	}
	return registry, remote, nil
}

// Renderers returns the default output renderers. A non-empty templateDir
// holds summary templates that shadow the bundled ones.
func Renderers(templateDir string) (*render.Registry, error) {
	var opts []gotemplate.Option
	if dir := strings.TrimSpace(templateDir); dir != "" {
		opts = append(opts, gotemplate.WithOverlayDir(dir))
	}
	registry, err := render.NewDefaultRegistry(opts...)
	if err != nil {
		return nil, fmt.Errorf("setup: renderers: %w", err)
	}
	return registry, nil
}
