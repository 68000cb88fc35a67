package paymentform

import (
	"context"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-paymentform/pkg/config"
	"github.com/goliatone/go-paymentform/pkg/layout"
	"github.com/goliatone/go-paymentform/pkg/orchestrator"
	"github.com/goliatone/go-paymentform/pkg/render"
)

// Request aliases orchestrator.Request for callers of the top-level package.
type Request = orchestrator.Request

// RenderOptions describes per-request overrides that renderers can use to
// surface server-side validation errors or add hidden fields.
type RenderOptions = render.RenderOptions

// FieldSubset aliases render.FieldSubset for callers rendering only part of a
// payment method form.
type FieldSubset = render.FieldSubset

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateHTML builds the form of a built-in payment method and renders it
// using the named renderer. It is the simplest entry point for callers that
// just want HTML output.
func GenerateHTML(ctx context.Context, paymentMethod, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		PaymentMethod: paymentMethod,
		Renderer:      rendererName,
	})
}

// GenerateHTMLFromDocument renders a form using a pre-loaded layout document,
// bypassing the loader stage while still delegating to the orchestrator.
func GenerateHTMLFromDocument(ctx context.Context, doc layout.Document, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Document: &doc,
		Renderer: rendererName,
	})
}

// WithPreset registers a preset transformer parsed from JSON or YAML bytes.
func WithPreset(data []byte) (orchestrator.Option, error) {
	preset, err := orchestrator.NewPresetTransformer(data)
	if err != nil {
		return nil, err
	}
	return orchestrator.WithTransformer(preset), nil
}

// WithThemeSelector passes a go-theme selector through to the orchestrator so
// theme and variant choices are resolved ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector)
}

// WithThemeManifests registers manifests next to the built-in PaymentSheet
// theme and selects defaultTheme for requests that name none.
func WithThemeManifests(defaultTheme, defaultVariant string, manifests ...*theme.Manifest) (orchestrator.Option, error) {
	all := append([]*theme.Manifest{orchestrator.DefaultThemeManifest()}, manifests...)
	selector, err := orchestrator.NewManifestSelector(defaultTheme, defaultVariant, all...)
	if err != nil {
		return nil, err
	}
	return orchestrator.WithThemeSelector(selector), nil
}

// WithAppearance applies the merchant appearance to rendered forms.
func WithAppearance(appearance config.Appearance) orchestrator.Option {
	return orchestrator.WithAppearance(appearance)
}
