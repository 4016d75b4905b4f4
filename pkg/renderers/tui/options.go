package tui

import (
	"fmt"
	"log/slog"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-bookingform/pkg/widgets"
)

// Theme token keys read from a go-theme manifest.
const (
	TokenPromptPrefix = "tui.prompt-prefix"
	TokenInfoPrefix   = "tui.info-prefix"
	TokenErrorPrefix  = "tui.error-prefix"
)

// Theme captures optional formatting hints applied to printed messages.
type Theme struct {
	PromptPrefix string
	InfoPrefix   string
	ErrorPrefix  string
}

// ThemeFromManifest reads the tui tokens of manifest, letting variant tokens
// override the base ones.
func ThemeFromManifest(manifest *theme.Manifest, variant string) Theme {
	if manifest == nil {
		return Theme{}
	}
	tokens := make(map[string]string, len(manifest.Tokens))
	for key, value := range manifest.Tokens {
		tokens[key] = value
	}
	if v, ok := manifest.Variants[variant]; ok {
		for key, value := range v.Tokens {
			tokens[key] = value
		}
	}
	return Theme{
		PromptPrefix: tokens[TokenPromptPrefix],
		InfoPrefix:   tokens[TokenInfoPrefix],
		ErrorPrefix:  tokens[TokenErrorPrefix],
	}
}

// ResolveTheme asks selector for name/variant and converts the selection.
func ResolveTheme(selector theme.ThemeSelector, name, variant string) (Theme, error) {
	if selector == nil {
		return Theme{}, nil
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return Theme{}, fmt.Errorf("tui: select theme %q: %w", name, err)
	}
	if selection == nil {
		return Theme{}, nil
	}
	return ThemeFromManifest(selection.Manifest, selection.Variant), nil
}

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithWidgets swaps the widget registry used to pick a prompt per field.
func WithWidgets(registry *widgets.Registry) Option {
	return func(r *Renderer) {
		if registry != nil {
			r.widgets = registry
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(t Theme) Option {
	return func(r *Renderer) {
		r.theme = t
	}
}

// WithThemeManifest applies the tui tokens of a go-theme manifest.
func WithThemeManifest(manifest *theme.Manifest, variant string) Option {
	return WithTheme(ThemeFromManifest(manifest, variant))
}
