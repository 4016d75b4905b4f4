package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-bookingform/pkg/model"
)

func TestHTTPSearcher_MapsResults(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"value":"london","label":"London"},{"label":"no value"},{"value":"paris"}]}`))
	}))
	defer srv.Close()

	searcher, err := NewHTTPSearcher(srv.Client(), HTTPConfig{
		URL:         srv.URL + "/api/places",
		LimitParam:  "limit",
		Limit:       5,
		ResultsPath: "data",
	})
	if err != nil {
		t.Fatalf("new searcher: %v", err)
	}

	got, err := searcher.Search(context.Background(), "lon")
	if err != nil {
		t.Fatalf("search: %v", err)
	}

	want := []model.LocationOption{
		{Value: "london", Label: "London"},
		{Value: "paris", Label: "paris"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
	if gotQuery != "limit=5&q=lon" {
		t.Fatalf("unexpected query string %q", gotQuery)
	}
}

func TestHTTPSearcher_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	searcher, err := NewHTTPSearcher(srv.Client(), HTTPConfig{URL: srv.URL})
	if err != nil {
		t.Fatalf("new searcher: %v", err)
	}
	if _, err := searcher.Search(context.Background(), "x"); err == nil {
		t.Fatalf("expected error for 502 response")
	}
}

func TestNewHTTPSearcher_RequiresURL(t *testing.T) {
	if _, err := NewHTTPSearcher(nil, HTTPConfig{}); err == nil {
		t.Fatalf("expected error for missing url")
	}
}
