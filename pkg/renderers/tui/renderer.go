package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"sort"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-paymentform/pkg/elements"
	"github.com/goliatone/go-paymentform/pkg/model"
	"github.com/goliatone/go-paymentform/pkg/render"
)

// Renderer implements render.Renderer for terminal-driven sessions. It walks
// the element tree, prompting for every interactive field and feeding the
// answers through the field controllers, then serializes the submission
// params.
type Renderer struct {
	driver       PromptDriver
	outputFormat OutputFormat
	theme        Theme
	logger       zerolog.Logger
	strip        *bluemonday.Policy
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) *Renderer {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
		logger:       zerolog.Nop(),
		strip:        bluemonday.StrictPolicy(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	return r
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Render prompts for every field of form and returns the serialized params.
func (r *Renderer) Render(ctx context.Context, form render.Form, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, ErrNoDriver
	}

	for _, message := range opts.FormErrors {
		if err := r.driver.Info(ctx, r.theme.ErrorPrefix+message); err != nil {
			return nil, err
		}
	}

	for _, element := range form.Elements {
		if err := r.promptElement(ctx, element, opts); err != nil {
			return nil, err
		}
	}

	params := render.EncodeParams(form.Values(), opts.HiddenFields)
	return r.serialize(params)
}

func (r *Renderer) promptElement(ctx context.Context, element elements.FormElement, opts render.RenderOptions) error {
	switch e := element.(type) {
	case *elements.StaticTextElement:
		return r.driver.Info(ctx, r.theme.InfoPrefix+r.staticText(e, opts))
	case *elements.SectionElement:
		if !e.AllowsUserInteraction() {
			return nil
		}
		if e.Label != nil {
			if err := r.driver.Info(ctx, r.theme.InfoPrefix+opts.Resolve(*e.Label)); err != nil {
				return err
			}
		}
		for _, field := range e.Fields {
			if err := r.promptField(ctx, field, opts); err != nil {
				return err
			}
		}
		return nil
	case *elements.EmptyFormElement:
		r.logger.Debug().Str("type", e.UnknownType).Msg("tui: skipping unrecognized element")
		return nil
	default:
		return nil
	}
}

func (r *Renderer) promptField(ctx context.Context, field elements.SectionFieldElement, opts render.RenderOptions) error {
	if err := r.printServerErrors(ctx, field.Identifier(), opts); err != nil {
		return err
	}
	switch f := field.(type) {
	case *elements.AddressElement:
		// Children run in order so the country is chosen before the postal
		// code rebinds to it.
		for _, child := range f.Children() {
			if err := r.promptField(ctx, child, opts); err != nil {
				return err
			}
		}
		return nil
	case *elements.TextFieldElement:
		return r.promptText(ctx, f, opts)
	case *elements.CountryElement:
		return r.promptDropdown(ctx, f.Controller, opts)
	case *elements.SimpleDropdownElement:
		return r.promptDropdown(ctx, f.Controller, opts)
	case *elements.CheckboxElement:
		return r.promptCheckbox(ctx, f.Controller, opts)
	default:
		r.logger.Debug().Str("field", field.Identifier().String()).Msg("tui: no prompt for field")
		return nil
	}
}

func (r *Renderer) promptText(ctx context.Context, field *elements.TextFieldElement, opts render.RenderOptions) error {
	controller := field.Controller
	label := opts.Resolve(controller.Label())
	password := controller.Config().Keyboard() == model.KeyboardPassword

	for {
		cfg := InputConfig{Message: label, Default: controller.RawValue()}
		var (
			response string
			err      error
		)
		if password {
			response, err = r.driver.Password(ctx, cfg)
		} else {
			response, err = r.driver.Input(ctx, cfg)
		}
		if err != nil {
			return err
		}

		controller.OnValueChange(response)
		state := controller.State()
		switch {
		case state.IsValid():
			return nil
		case state.IsBlank() && controller.Optional():
			return nil
		case state.IsBlank():
			err = r.driver.Info(ctx, r.theme.ErrorPrefix+fmt.Sprintf("%s is required", label))
		default:
			err = r.driver.Info(ctx, r.theme.ErrorPrefix+fmt.Sprintf("Invalid %s: %s", label, opts.Resolve(state.Error().Message)))
		}
		if err != nil {
			return err
		}
		r.logger.Debug().
			Str("field", field.Identifier().String()).
			Stringer("state", state.Kind).
			Msg("tui: re-prompting field")
	}
}

func (r *Renderer) promptDropdown(ctx context.Context, controller *elements.DropdownFieldController, opts render.RenderOptions) error {
	options := controller.Config().DisplayItems()
	if len(options) == 0 {
		return nil
	}
	index, err := r.driver.Select(ctx, SelectConfig{
		Message:      opts.Resolve(controller.Label()),
		Options:      options,
		DefaultIndex: controller.SelectedIndex(),
	})
	if err != nil {
		return err
	}
	controller.OnValueChange(index)
	return nil
}

func (r *Renderer) promptCheckbox(ctx context.Context, controller *elements.CheckboxController, opts render.RenderOptions) error {
	if !controller.Shown() {
		return nil
	}
	checked, err := r.driver.Confirm(ctx, ConfirmConfig{
		Message: opts.Resolve(controller.Label()),
		Default: controller.Checked(),
	})
	if err != nil {
		return err
	}
	controller.OnValueChange(checked)
	return nil
}

func (r *Renderer) printServerErrors(ctx context.Context, id model.IdentifierSpec, opts render.RenderOptions) error {
	for _, message := range opts.Errors[id] {
		if err := r.driver.Info(ctx, r.theme.ErrorPrefix+message); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) staticText(element *elements.StaticTextElement, opts render.RenderOptions) string {
	text := opts.Resolve(element.Text)
	if !element.HTML {
		return text
	}
	return strings.TrimSpace(html.UnescapeString(r.strip.Sanitize(text)))
}

func (r *Renderer) serialize(params render.Params) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return []byte(params.Encode()), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(params)), nil
	default:
		out, err := json.MarshalIndent(params, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("tui: encode json: %w", err)
		}
		return out, nil
	}
}

func prettyPrint(params render.Params) string {
	values := params.URLValues()
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		fmt.Fprintf(&b, "%s: %s\n", key, strings.Join(values[key], ", "))
	}
	return b.String()
}
