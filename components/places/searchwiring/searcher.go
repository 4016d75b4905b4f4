package searchwiring

import (
	"net/http"
	"strings"

	"github.com/goliatone/go-bookingform/components/places"
	"github.com/goliatone/go-bookingform/pkg/search"
)

// PlacesHTTPConfig describes a places component served at baseURL under
// basePath. Results are read from "data" with value/label mapping and the
// component's default limit is always sent.
func PlacesHTTPConfig(baseURL, basePath string, fns ...places.OptionFn) search.HTTPConfig {
	component := places.New(fns...)
	opts := component.Options()

	return search.HTTPConfig{
		URL:         strings.TrimRight(strings.TrimSpace(baseURL), "/") + component.Path(basePath),
		Method:      http.MethodGet,
		SearchParam: opts.SearchParam,
		LimitParam:  opts.LimitParam,
		Limit:       opts.DefaultLimit,
		ResultsPath: "data",
		ValueField:  "value",
		LabelField:  "label",
	}
}

// PlacesHTTPSearcher builds a remote searcher for a places component served
// at baseURL.
func PlacesHTTPSearcher(client *http.Client, baseURL, basePath string, fns ...places.OptionFn) (*search.HTTPSearcher, error) {
	return search.NewHTTPSearcher(client, PlacesHTTPConfig(baseURL, basePath, fns...))
}
