package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-bookingform/pkg/renderers/tui"
)

func TestRun_RejectsUnknownOutput(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"-output", "xml"}, &stdout, &stderr)
	if err == nil || !strings.Contains(err.Error(), `"xml"`) {
		t.Fatalf("expected unknown renderer error, got %v", err)
	}
	if stdout.Len() != 0 {
		t.Fatalf("expected no output, got %q", stdout.String())
	}
}

func TestRun_RejectsMissingSchema(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if err := run(context.Background(), []string{"-schema", "does-not-exist.yaml"}, &stdout, &stderr); err == nil {
		t.Fatal("expected schema error")
	}
}

func TestBundledThemeVariants(t *testing.T) {
	ascii := tui.ThemeFromManifest(bundledTheme, "ascii")
	if ascii.InfoPrefix != "> " || ascii.ErrorPrefix != "! " {
		t.Fatalf("unexpected ascii theme %+v", ascii)
	}
	base := tui.ThemeFromManifest(bundledTheme, "")
	if base.ErrorPrefix != "✗ " {
		t.Fatalf("unexpected base theme %+v", base)
	}
}
