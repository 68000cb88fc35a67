package render

import (
	"strings"

	"github.com/goliatone/go-paymentform/pkg/model"
)

// TemplateI18nConfig configures template-level translation helpers.
type TemplateI18nConfig struct {
	Locale string
	// FuncName customizes the translator helper name (defaults to "translate").
	FuncName string
	// OnMissing controls the string returned when a translation is missing.
	OnMissing MissingTranslationHandler
}

// TemplateI18nFuncs returns helpers for template engines. The main helper
// signature is:
//
//	translate(key, ...args) string
//
// bound to cfg.Locale, plus current_locale() returning it.
func TemplateI18nFuncs(t Translator, cfg TemplateI18nConfig) map[string]any {
	translateName := strings.TrimSpace(cfg.FuncName)
	if translateName == "" {
		translateName = "translate"
	}
	locale := cfg.Locale

	return map[string]any{
		translateName: func(key string, params ...any) string {
			key = strings.TrimSpace(key)
			if key == "" {
				return ""
			}
			return ResolveString(locale, model.Translatable(model.TranslationID(key), params...), t, cfg.OnMissing)
		},
		"current_locale": func() string {
			return locale
		},
	}
}
