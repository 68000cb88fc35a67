package render

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/goliatone/go-paymentform/pkg/model"
)

// ErrMissingTranslator is reported to MissingTranslationHandler when no
// translator is configured.
var ErrMissingTranslator = errors.New("render: translator is not configured")

// ErrMissingTranslation indicates a key without copy for the locale.
var ErrMissingTranslation = errors.New("render: translation not found")

// Translator resolves a translation key for a locale, applying args.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// MissingTranslationHandler returns the copy to show when translation fails.
type MissingTranslationHandler func(locale, key string, args []any, err error) string

// missingTranslationDefault falls back to the built-in English copy, then to
// the key itself.
func missingTranslationDefault(_ string, key string, args []any, _ error) string {
	return model.Translatable(model.TranslationID(key), args...).Default()
}

// MapTranslator is an in-memory Translator keyed by locale then key. Lookups
// fall back from "fr-CA" to "fr".
type MapTranslator struct {
	mu       sync.RWMutex
	catalogs map[string]map[string]string
}

// NewMapTranslator builds a translator from catalogs.
func NewMapTranslator(catalogs map[string]map[string]string) *MapTranslator {
	t := &MapTranslator{catalogs: make(map[string]map[string]string)}
	for locale, entries := range catalogs {
		t.Add(locale, entries)
	}
	return t
}

// Add merges entries into the catalog for locale.
func (t *MapTranslator) Add(locale string, entries map[string]string) {
	locale = normalizeLocale(locale)
	t.mu.Lock()
	defer t.mu.Unlock()
	catalog, ok := t.catalogs[locale]
	if !ok {
		catalog = make(map[string]string, len(entries))
		t.catalogs[locale] = catalog
	}
	for key, value := range entries {
		catalog[strings.TrimSpace(key)] = value
	}
}

// Translate implements Translator.
func (t *MapTranslator) Translate(locale, key string, args ...any) (string, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, candidate := range localeChain(locale) {
		if template, ok := t.catalogs[candidate][key]; ok {
			return model.FormatCopy(template, args...), nil
		}
	}
	return "", fmt.Errorf("%w: %s/%s", ErrMissingTranslation, locale, key)
}

func normalizeLocale(locale string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(locale), "_", "-"))
}

func localeChain(locale string) []string {
	locale = normalizeLocale(locale)
	if locale == "" {
		return nil
	}
	chain := []string{locale}
	if idx := strings.Index(locale, "-"); idx > 0 {
		chain = append(chain, locale[:idx])
	}
	return chain
}

// ResolveString renders s for locale. Literals pass through; ids go through
// t and then onMissing. Arguments that are themselves resolvable strings are
// resolved first.
func ResolveString(locale string, s model.ResolvableString, t Translator, onMissing MissingTranslationHandler) string {
	if s.ID == "" {
		return s.Literal
	}
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}

	args := make([]any, len(s.Args))
	for i, arg := range s.Args {
		if nested, ok := arg.(model.ResolvableString); ok {
			args[i] = ResolveString(locale, nested, t, onMissing)
			continue
		}
		args[i] = arg
	}

	key := string(s.ID)
	if t == nil {
		return onMissing(locale, key, args, ErrMissingTranslator)
	}
	msg, err := t.Translate(locale, key, args...)
	if err != nil || strings.TrimSpace(msg) == "" {
		return onMissing(locale, key, args, err)
	}
	return msg
}
