package testsupport

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-bookingform/components/places"
	"github.com/goliatone/go-bookingform/pkg/booking"
	"github.com/goliatone/go-bookingform/pkg/schema"
)

// FixedNow is the clock shared by fixtures: 10 March 2026, 15:30 UTC.
var FixedNow = time.Date(2026, time.March, 10, 15, 30, 0, 0, time.UTC)

// Clock returns a func reporting FixedNow.
func Clock() func() time.Time {
	return func() time.Time { return FixedNow }
}

// DefaultDefinition returns the bundled booking form definition.
func DefaultDefinition(t *testing.T) schema.Definition {
	t.Helper()
	def, err := schema.Default()
	if err != nil {
		t.Fatalf("default definition: %v", err)
	}
	return def
}

// PlacesSearcher returns the embedded places searcher without latency.
func PlacesSearcher(t *testing.T) *places.Searcher {
	t.Helper()
	searcher, err := places.NewSearcher(places.WithLatency(0))
	if err != nil {
		t.Fatalf("places searcher: %v", err)
	}
	return searcher
}

// NewForm builds a booking form over the bundled definition with FixedNow, an
// instant places searcher and the id "form-test". opts are applied last.
func NewForm(t *testing.T, opts ...booking.Option) *booking.Form {
	t.Helper()
	base := []booking.Option{
		booking.WithNow(Clock()),
		booking.WithSearcher(PlacesSearcher(t)),
		booking.WithID("form-test"),
	}
	form, err := booking.New(DefaultDefinition(t).Schema, append(base, opts...)...)
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	return form
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// CaptureTemplateOutput runs render against a buffer and returns both the
// returned string and what was written.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	return out, buf.String()
}
