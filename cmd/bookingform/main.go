package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-bookingform/internal/config"
	"github.com/goliatone/go-bookingform/internal/logger"
	"github.com/goliatone/go-bookingform/internal/setup"
	"github.com/goliatone/go-bookingform/pkg/booking"
	"github.com/goliatone/go-bookingform/pkg/render"
	"github.com/goliatone/go-bookingform/pkg/renderers/tui"
)

// bundledTheme maps the tui tokens; the ascii variant avoids non-ASCII glyphs.
var bundledTheme = &theme.Manifest{
	Name:    "bookingform",
	Version: "1.0.0",
	Tokens: map[string]string{
		tui.TokenInfoPrefix:  "› ",
		tui.TokenErrorPrefix: "✗ ",
	},
	Variants: map[string]theme.Variant{
		"ascii": {Tokens: map[string]string{
			tui.TokenInfoPrefix:  "> ",
			tui.TokenErrorPrefix: "! ",
		}},
	},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, tui.ErrAborted) {
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "bookingform: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("bookingform", flag.ContinueOnError)
	fs.SetOutput(stderr)
	schemaRef := fs.String("schema", cfg.SchemaPath, "form definition file or URL (bundled when empty)")
	output := fs.String("output", cfg.Output, "snapshot format: json, form or pretty")
	placesURL := fs.String("places-url", cfg.PlacesURL, "base URL of a places API for remote lookups")
	variant := fs.String("theme-variant", cfg.ThemeVariant, "prompt theme variant (ascii)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	log := logger.New(cfg.Env, stderr)

	def, err := setup.LoadDefinition(ctx, nil, *schemaRef)
	if err != nil {
		return err
	}
	registry, fallback, err := setup.Searchers(setup.SearchConfig{
		Latency:   cfg.SearchLatency,
		PlacesURL: *placesURL,
	})
	if err != nil {
		return err
	}
	renderers, err := setup.Renderers(cfg.TemplateDir)
	if err != nil {
		return err
	}
	renderer, err := renderers.Get(*output)
	if err != nil {
		return err
	}

	form, err := booking.New(def.Schema,
		booking.WithLogger(log.Logger),
		booking.WithSearcher(fallback),
		booking.WithSearchRegistry(registry),
		booking.WithSearchTimeout(cfg.SearchTimeout),
	)
	if err != nil {
		return err
	}
	log.WithFormID(form.ID()).Debug("form_ready", "source", def.Source, "output", *output)

	prompts := tui.New(
		tui.WithLogger(log.Logger),
		tui.WithThemeManifest(bundledTheme, *variant),
	)
	snap, err := prompts.Run(ctx, form, def)
	if err != nil {
		return err
	}

	out, err := renderer.Render(ctx, snap, render.RenderOptions{
		Title:  def.Title,
		Hidden: render.MergeHiddenFields(nil, render.FormID(form.ID())),
	})
	if err != nil {
		return err
	}
	_, err = stdout.Write(out)
	return err
}
