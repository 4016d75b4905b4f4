package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/goliatone/go-bookingform/pkg/booking"
	"github.com/goliatone/go-bookingform/pkg/model"
	"github.com/goliatone/go-bookingform/pkg/schema"
	"github.com/goliatone/go-bookingform/pkg/widgets"
)

const (
	searchAgainOption = "Search again"
	doneOption        = "Done"
)

var dateLayoutHint = strings.NewReplacer("2006", "YYYY", "01", "MM", "02", "DD")

// Renderer walks a booking form in the terminal. Fields are prompted in
// focus order; once the chain ends a review menu lets the user edit any
// field or trigger the search.
type Renderer struct {
	driver  PromptDriver
	logger  *slog.Logger
	widgets *widgets.Registry
	theme   Theme
}

// New constructs a renderer. Without WithPromptDriver it prompts through
// survey on stdin/stdout.
func New(options ...Option) *Renderer {
	r := &Renderer{
		driver:  newSurveyDriver(),
		logger:  slog.New(slog.DiscardHandler),
		widgets: widgets.NewRegistry(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Run prompts for every field of form and returns the snapshot taken when
// the user submits.
func (r *Renderer) Run(ctx context.Context, form *booking.Form, def schema.Definition) (booking.Snapshot, error) {
	if form == nil {
		return booking.Snapshot{}, ErrNilForm
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if def.Title != "" {
		if err := r.info(ctx, def.Title); err != nil {
			return booking.Snapshot{}, err
		}
	}

	visited := make(map[string]bool, form.Schema().Len())
	for {
		name := form.Focused()
		if name == "" || visited[name] {
			break
		}
		visited[name] = true
		if err := r.promptField(ctx, form, name); err != nil {
			return booking.Snapshot{}, err
		}
		if form.Focused() != name {
			continue
		}
		next, ok := form.Schema().Next(name)
		if !ok {
			break
		}
		if err := form.Focus(next); err != nil {
			return booking.Snapshot{}, err
		}
	}
	return r.review(ctx, form, def)
}

func (r *Renderer) review(ctx context.Context, form *booking.Form, def schema.Definition) (booking.Snapshot, error) {
	submitLabel := def.SubmitLabel
	if submitLabel == "" {
		submitLabel = schema.DefaultSubmitLabel
	}
	for {
		snap := form.Snapshot()
		options := make([]string, 0, len(snap.Fields)+1)
		options = append(options, submitLabel)
		for _, field := range snap.Fields {
			display := field.Display
			if display == "" {
				display = "-"
			}
			options = append(options, fmt.Sprintf("Edit %s (%s)", field.Label, display))
		}

		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:  r.prompt("Ready?"),
			Options:  options,
			PageSize: len(options),
		})
		if err != nil {
			return booking.Snapshot{}, err
		}
		if idx <= 0 || idx >= len(options) {
			return form.Submit(ctx)
		}

		name := snap.Fields[idx-1].Name
		if err := form.Focus(name); err != nil {
			return booking.Snapshot{}, err
		}
		if err := r.promptField(ctx, form, name); err != nil {
			return booking.Snapshot{}, err
		}
	}
}

func (r *Renderer) promptField(ctx context.Context, form *booking.Form, name string) error {
	field, ok := form.Schema().Field(name)
	if !ok {
		return fmt.Errorf("%w: %s", model.ErrUnknownField, name)
	}
	widget, _ := r.widgets.Resolve(field)
	r.logger.Debug("prompt_field", slog.String("field", name), slog.String("widget", widget))

	switch widget {
	case widgets.WidgetLocationSelect:
		return r.promptLocation(ctx, form, field)
	case widgets.WidgetDateInput, widgets.WidgetDateRangeEnd:
		return r.promptDate(ctx, form, field)
	case widgets.WidgetGuestStepper:
		return r.promptGuests(ctx, form, field)
	default:
		return fmt.Errorf("%w: %q for field %s", ErrUnsupportedWidget, widget, name)
	}
}

func (r *Renderer) promptLocation(ctx context.Context, form *booking.Form, field model.Field) error {
	state, err := form.Location(field.Name)
	if err != nil {
		return err
	}
	suggest := func(text string) []string {
		results, err := form.Search(ctx, field.Name, text)
		if err != nil {
			return nil
		}
		return optionLabels(results)
	}

	for {
		query, err := r.driver.Input(ctx, InputConfig{
			Message: r.prompt(field.DisplayLabel()),
			Help:    field.Placeholder,
			Suggest: suggest,
		})
		if err != nil {
			return err
		}
		query = strings.TrimSpace(query)

		results, err := form.Search(ctx, field.Name, query)
		if errors.Is(err, booking.ErrStaleSearch) {
			continue
		}
		if err != nil {
			if err := r.fail(ctx, err); err != nil {
				return err
			}
			continue
		}
		if len(results) == 0 {
			if err := r.info(ctx, state.EmptyMessage); err != nil {
				return err
			}
			continue
		}
		if option, ok := exactMatch(results, query); ok {
			return form.Select(field.Name, option)
		}

		options := append(optionLabels(results), searchAgainOption)
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message: r.prompt(field.DisplayLabel()),
			Options: options,
		})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(results) {
			continue
		}
		return form.Select(field.Name, results[idx])
	}
}

func (r *Renderer) promptDate(ctx context.Context, form *booking.Form, field model.Field) error {
	opts, _ := field.DateOptions()
	message := field.DisplayLabel()
	if day, ok, err := form.MinDate(field.Name); err != nil {
		return err
	} else if ok {
		message = fmt.Sprintf("%s (from %s)", message, day.Format(opts.AltFormat))
	}
	current, _ := form.Value(field.Name)

	for {
		value, err := r.driver.Input(ctx, InputConfig{
			Message: r.prompt(message),
			Default: current,
			Help:    fmt.Sprintf("%s, empty to skip", dateLayoutHint.Replace(opts.DateFormat)),
		})
		if err != nil {
			return err
		}
		value = strings.TrimSpace(value)
		if value == "" || value == current {
			return nil
		}
		err = form.SetDate(field.Name, value)
		if err == nil {
			return nil
		}
		if !errors.Is(err, booking.ErrInvalidDate) && !errors.Is(err, booking.ErrDateBeforeMinimum) {
			return err
		}
		if err := r.fail(ctx, err); err != nil {
			return err
		}
	}
}

func (r *Renderer) promptGuests(ctx context.Context, form *booking.Form, field model.Field) error {
	for {
		guests, err := form.Guests(field.Name)
		if err != nil {
			return err
		}
		summary, err := form.GuestsSummary(field.Name)
		if err != nil {
			return err
		}

		var options []string
		var actions []func()
		for _, guest := range guests {
			label := guest.Label
			if label == "" {
				label = guest.Name
			}
			if !form.IsOptionDisabled(guest, booking.Plus) {
				options = append(options, fmt.Sprintf("+ %s (%d)", label, guest.Value))
				actions = append(actions, form.OnPlusClick(guest, field.Name))
			}
			if !form.IsOptionDisabled(guest, booking.Minus) {
				options = append(options, fmt.Sprintf("- %s (%d)", label, guest.Value))
				actions = append(actions, form.OnMinusClick(guest, field.Name))
			}
		}
		options = append(options, doneOption)

		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:  r.prompt(fmt.Sprintf("%s: %s", field.DisplayLabel(), summary)),
			Options:  options,
			PageSize: len(options),
		})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(actions) {
			return form.Complete(field.Name)
		}
		actions[idx]()
	}
}

func (r *Renderer) prompt(msg string) string {
	return r.theme.PromptPrefix + msg
}

func (r *Renderer) info(ctx context.Context, msg string) error {
	return r.driver.Info(ctx, r.theme.InfoPrefix+msg)
}

func (r *Renderer) fail(ctx context.Context, err error) error {
	return r.driver.Info(ctx, r.theme.ErrorPrefix+err.Error())
}

func optionLabels(options []model.LocationOption) []string {
	out := make([]string, len(options))
	for i, option := range options {
		out[i] = option.Label
	}
	return out
}

func exactMatch(options []model.LocationOption, query string) (model.LocationOption, bool) {
	if query == "" {
		return model.LocationOption{}, false
	}
	for _, option := range options {
		if strings.EqualFold(option.Label, query) {
			return option, true
		}
	}
	return model.LocationOption{}, false
}
