package setup

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-bookingform/components/places"
	"github.com/goliatone/go-bookingform/pkg/search"
)

func TestLoadDefinition(t *testing.T) {
	def, err := LoadDefinition(context.Background(), nil, "")
	if err != nil {
		t.Fatalf("default: %v", err)
	}
	if def.Title != "Find your stay" {
		t.Fatalf("expected bundled definition, got %q", def.Title)
	}

	def, err = LoadDefinition(context.Background(), nil, "../../pkg/schema/testdata/reversed.json")
	if err != nil {
		t.Fatalf("file: %v", err)
	}
	if diff := cmp.Diff([]string{"guests", "to", "when"}, def.Schema.Names()); diff != "" {
		t.Fatalf("field order (-want +got):\n%s", diff)
	}

	if _, err := LoadDefinition(context.Background(), nil, "missing.yaml"); err == nil {
		t.Fatal("expected missing file error")
	}
}

func TestLoadDefinition_URL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("title: Remote\nfields:\n  when:\n    type: date\n"))
	}))
	defer srv.Close()

	def, err := LoadDefinition(context.Background(), srv.Client(), srv.URL+"/booking.yaml")
	if err != nil {
		t.Fatalf("url: %v", err)
	}
	if def.Title != "Remote" || def.Schema.Len() != 1 {
		t.Fatalf("unexpected definition %+v", def)
	}
}

func TestSearchers_LocalOnly(t *testing.T) {
	registry, fallback, err := Searchers(SearchConfig{})
	if err != nil {
		t.Fatalf("searchers: %v", err)
	}
	if diff := cmp.Diff([]string{search.DefaultName, RemoteSearcher}, registry.List()); diff != "" {
		t.Fatalf("names (-want +got):\n%s", diff)
	}
	if _, ok := fallback.(*places.Searcher); !ok {
		t.Fatalf("expected local fallback, got %T", fallback)
	}
}

func TestSearchers_Remote(t *testing.T) {
	srv := httptest.NewServer(places.Handler())
	defer srv.Close()

	registry, fallback, err := Searchers(SearchConfig{PlacesURL: srv.URL, Client: srv.Client()})
	if err != nil {
		t.Fatalf("searchers: %v", err)
	}
	if _, ok := fallback.(*search.HTTPSearcher); !ok {
		t.Fatalf("expected http fallback, got %T", fallback)
	}
	remote, err := registry.Get(RemoteSearcher)
	if err != nil {
		t.Fatalf("get remote: %v", err)
	}
	results, err := remote.Search(context.Background(), "tokyo")
	if err != nil {
		t.Fatalf("remote search: %v", err)
	}
	if len(results) != 1 || results[0].Label != "Tokyo" {
		t.Fatalf("unexpected results %v", results)
	}
}

func TestRenderers_Overlay(t *testing.T) {
	registry, err := Renderers("")
	if err != nil {
		t.Fatalf("renderers: %v", err)
	}
	if diff := cmp.Diff([]string{"form", "json", "pretty"}, registry.List()); diff != "" {
		t.Fatalf("formats (-want +got):\n%s", diff)
	}

	if _, err := Renderers(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatal("expected error for missing template dir")
	}
}
