package render

import (
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-paymentform/pkg/model"
)

// RenderOptions describe per-request data that renderers can use to customise
// their output without mutating the element tree.
type RenderOptions struct {
	// Locale selects translations; empty uses the default English copy.
	Locale string
	// Translator resolves translation ids. Nil uses the default copy.
	Translator Translator
	// OnMissing produces copy for ids the translator cannot resolve.
	OnMissing MissingTranslationHandler
	// Action and Method describe where a rendered HTML form submits.
	Action string
	Method string
	// Errors surfaces server-side feedback keyed by field identifier.
	Errors map[model.IdentifierSpec][]string
	// FormErrors are messages not tied to a single field.
	FormErrors []string
	// HiddenFields are submitted alongside the visible inputs.
	HiddenFields map[string]string
	// ShowFieldErrors surfaces the errors fields report for their current
	// input, as when a user has finished editing.
	ShowFieldErrors bool
	// Theme carries the resolved theme: tokens, CSS variables, partial
	// overrides and asset lookup. Nil renders unthemed output.
	Theme *theme.RendererConfig
}

// Resolve translates s with the options' translator and locale.
func (o RenderOptions) Resolve(s model.ResolvableString) string {
	return ResolveString(o.Locale, s, o.Translator, o.OnMissing)
}
