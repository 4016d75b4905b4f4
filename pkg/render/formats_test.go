package render_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-bookingform/components/places"
	"github.com/goliatone/go-bookingform/pkg/booking"
	"github.com/goliatone/go-bookingform/pkg/render"
	"github.com/goliatone/go-bookingform/pkg/render/template/gotemplate"
	"github.com/goliatone/go-bookingform/pkg/testsupport"
)

func sampleSnapshot(t *testing.T) booking.Snapshot {
	t.Helper()
	form := testsupport.NewForm(t)
	if err := form.Select("from", places.Option("London")); err != nil {
		t.Fatalf("select: %v", err)
	}
	if err := form.SetDate("checkIn", "2026-03-12"); err != nil {
		t.Fatalf("check in: %v", err)
	}
	for range 2 {
		if _, err := form.Increment("guests", "children"); err != nil {
			t.Fatalf("increment: %v", err)
		}
	}
	return form.Snapshot()
}

func TestDefaultRegistry(t *testing.T) {
	reg, err := render.NewDefaultRegistry()
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	if diff := cmp.Diff([]string{"form", "json", "pretty"}, reg.List()); diff != "" {
		t.Fatalf("renderers mismatch (-want +got):\n%s", diff)
	}
	if _, err := reg.Get("xml"); !errors.Is(err, render.ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
	if r, err := reg.Get(" JSON "); err != nil || r.Name() != render.FormatJSON {
		t.Fatalf("expected case-insensitive lookup, got %v %v", r, err)
	}
	if err := reg.Register(render.JSON{}); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
}

func TestRegistry_Negotiate(t *testing.T) {
	reg, err := render.NewDefaultRegistry()
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	cases := []struct {
		accept string
		want   string
	}{
		{accept: "text/plain", want: render.FormatPretty},
		{accept: "text/html, application/x-www-form-urlencoded;q=0.9", want: render.FormatForm},
		{accept: "application/json; charset=utf-8", want: render.FormatJSON},
	}
	for _, tc := range cases {
		got, ok := reg.Negotiate(tc.accept)
		if !ok || got.Name() != tc.want {
			t.Errorf("Negotiate(%q) = %v, %v; want %s", tc.accept, got, ok, tc.want)
		}
	}
	if _, ok := reg.Negotiate("*/*"); ok {
		t.Fatalf("wildcards must not negotiate")
	}
}

func TestJSON_KeepsSchemaOrder(t *testing.T) {
	out, err := render.JSON{}.Render(context.Background(), sampleSnapshot(t), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	got := string(out)

	last := -1
	for _, key := range []string{`"from": "london"`, `"to": ""`, `"checkIn": "2026-03-12"`, `"checkOut": ""`, `"guests": [`} {
		idx := strings.Index(got, key)
		if idx < 0 {
			t.Fatalf("missing %s in:\n%s", key, got)
		}
		if idx < last {
			t.Fatalf("%s out of order in:\n%s", key, got)
		}
		last = idx
	}
}

func TestFormEncoded_IncludesHiddenFields(t *testing.T) {
	snap := sampleSnapshot(t)
	out, err := render.FormEncoded{}.Render(context.Background(), snap, render.RenderOptions{
		Hidden: render.MergeHiddenFields(nil, render.FormID(snap.FormID)),
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := "checkIn=2026-03-12&checkOut=&form_id=form-test&from=london" +
		"&guests.adults=1&guests.children=2&guests.infants=0&to="
	if diff := cmp.Diff(want, string(out)); diff != "" {
		t.Fatalf("form output mismatch (-want +got):\n%s", diff)
	}
}

func TestPretty_Summary(t *testing.T) {
	reg, err := render.NewDefaultRegistry()
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	pretty := reg.MustGet(render.FormatPretty)
	if pretty.ContentType() != "text/plain" {
		t.Fatalf("unexpected content type %q", pretty.ContentType())
	}

	out, err := pretty.Render(context.Background(), sampleSnapshot(t), render.RenderOptions{Title: "Find your stay"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	golden := filepath.Join("testdata", "summary.golden")
	if testsupport.WriteMaybeGolden(t, golden, out) {
		return
	}
	want := strings.TrimSpace(testsupport.MustReadGoldenString(t, golden))
	if diff := testsupport.CompareGolden(want, strings.TrimSpace(string(out))); diff != "" {
		t.Fatalf("summary mismatch (-want +got):\n%s", diff)
	}
}

func TestPretty_OverlayTemplate(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "summary.tpl"), []byte("{{ title }}: {{ fields|length }} fields"), 0o644); err != nil {
		t.Fatalf("write overlay: %v", err)
	}
	reg, err := render.NewDefaultRegistry(gotemplate.WithOverlayDir(dir))
	if err != nil {
		t.Fatalf("registry: %v", err)
	}

	out, err := reg.MustGet(render.FormatPretty).Render(context.Background(), sampleSnapshot(t), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := string(out); got != render.DefaultTitle+": 5 fields" {
		t.Fatalf("unexpected overlay output %q", got)
	}
}

func TestRender_HonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := (render.JSON{}).Render(ctx, booking.Snapshot{}, render.RenderOptions{}); err == nil {
		t.Fatalf("expected context error")
	}
}
