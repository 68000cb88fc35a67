package orchestrator

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-paymentform/pkg/config"
)

// DefaultThemeName names the built-in theme manifest.
const DefaultThemeName = "paymentsheet"

// DefaultThemeManifest returns the built-in PaymentSheet palette with a dark
// variant.
func DefaultThemeManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    DefaultThemeName,
		Version: "1.0.0",
		Tokens: map[string]string{
			"color-primary":          "#0074D4",
			"color-surface":          "#FFFFFF",
			"color-component":        "#FFFFFF",
			"color-component-border": "#E0E6EB",
			"color-on-component":     "#30313D",
			"color-on-surface":       "#30313D",
			"color-error":            "#DF1B41",
			"corner-radius":          "6px",
			"border-width":           "1px",
			"font-size-scale":        "1",
		},
		Variants: map[string]theme.Variant{
			config.AppearanceDark: {
				Tokens: map[string]string{
					"color-primary":          "#0A84FF",
					"color-surface":          "#1C1C1E",
					"color-component":        "#2C2C2E",
					"color-component-border": "#3A3A3C",
					"color-on-component":     "#FFFFFF",
					"color-on-surface":       "#FFFFFF",
					"color-error":            "#FF453A",
				},
			},
		},
	}
}

// ManifestSelector resolves theme selections from registered manifests. An
// empty name selects the default theme and an empty variant the default
// variant; a variant the manifest does not define selects the base tokens.
type ManifestSelector struct {
	mu             sync.RWMutex
	manifests      map[string]*theme.Manifest
	defaultTheme   string
	defaultVariant string
}

var _ theme.ThemeSelector = (*ManifestSelector)(nil)

// NewManifestSelector registers manifests and records the defaults.
func NewManifestSelector(defaultTheme, defaultVariant string, manifests ...*theme.Manifest) (*ManifestSelector, error) {
	s := &ManifestSelector{
		manifests:      make(map[string]*theme.Manifest),
		defaultTheme:   strings.TrimSpace(defaultTheme),
		defaultVariant: strings.TrimSpace(defaultVariant),
	}
	for _, manifest := range manifests {
		if err := s.Register(manifest); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Register adds manifest. Names are unique.
func (s *ManifestSelector) Register(manifest *theme.Manifest) error {
	if manifest == nil {
		return errors.New("theme selector: manifest is nil")
	}
	name := strings.TrimSpace(manifest.Name)
	if name == "" {
		return errors.New("theme selector: manifest name is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.manifests[name]; exists {
		return fmt.Errorf("theme selector: theme %q already registered", name)
	}
	s.manifests[name] = manifest
	return nil
}

// Themes lists the registered theme names.
func (s *ManifestSelector) Themes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.manifests))
	for name := range s.manifests {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Select implements theme.ThemeSelector.
func (s *ManifestSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = s.defaultTheme
	}
	variant = strings.ToLower(strings.TrimSpace(variant))
	if variant == "" {
		variant = s.defaultVariant
	}

	s.mu.RLock()
	manifest, ok := s.manifests[name]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("theme selector: theme %q not registered (available: %s)", name, strings.Join(s.Themes(), ", "))
	}
	if _, ok := manifest.Variants[variant]; !ok {
		variant = ""
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: manifest}, nil
}

// WithThemeSelector resolves request themes through selector.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
	}
}

// WithAppearance applies the merchant appearance: its theme and variant are
// the defaults for requests that name none, and its tokens override the
// selected theme.
func WithAppearance(appearance config.Appearance) Option {
	return func(o *Orchestrator) {
		o.appearance = appearance
	}
}

func (o *Orchestrator) resolveTheme(req Request) (*theme.RendererConfig, error) {
	if o.themeSelector == nil {
		return nil, nil
	}
	name, variant := req.ThemeName, req.ThemeVariant
	if name == "" {
		name = o.appearance.Theme
	}
	if variant == "" {
		variant = o.appearance.Variant
	}

	selection, err := o.themeSelector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: select theme: %w", err)
	}
	if selection == nil || selection.Manifest == nil {
		return nil, nil
	}

	cfg := rendererThemeConfig(selection)
	overrides := o.appearance.Tokens(selection.Variant)
	if len(overrides) > 0 {
		if cfg.Tokens == nil {
			cfg.Tokens = make(map[string]string, len(overrides))
		}
		for key, value := range overrides {
			cfg.Tokens[key] = value
		}
		cfg.CSSVars = cssVars(cfg.Tokens)
	}
	o.logger.Debug().
		Str("theme", cfg.Theme).
		Str("variant", cfg.Variant).
		Int("tokens", len(cfg.Tokens)).
		Msg("orchestrator: resolved theme")
	return cfg, nil
}

// rendererThemeConfig flattens a selection: variant tokens, templates and
// asset files override the manifest's, and tokens are mirrored as CSS
// custom properties.
func rendererThemeConfig(selection *theme.Selection) *theme.RendererConfig {
	manifest := selection.Manifest
	variant := manifest.Variants[selection.Variant]

	tokens := mergeStrings(manifest.Tokens, variant.Tokens)
	partials := mergeStrings(manifest.Templates, variant.Templates)
	files := mergeStrings(manifest.Assets.Files, variant.Assets.Files)
	prefix := manifest.Assets.Prefix
	if variant.Assets.Prefix != "" {
		prefix = variant.Assets.Prefix
	}

	return &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Partials: partials,
		Tokens:   tokens,
		CSSVars:  cssVars(tokens),
		AssetURL: func(key string) string {
			file, ok := files[key]
			if !ok || file == "" {
				return ""
			}
			if prefix == "" || strings.Contains(file, "://") {
				return file
			}
			return strings.TrimRight(prefix, "/") + "/" + strings.TrimLeft(file, "/")
		},
	}
}

func mergeStrings(base, override map[string]string) map[string]string {
	if len(base) == 0 && len(override) == 0 {
		return nil
	}
	out := make(map[string]string, len(base)+len(override))
	for key, value := range base {
		out[key] = value
	}
	for key, value := range override {
		out[key] = value
	}
	return out
}

func cssVars(tokens map[string]string) map[string]string {
	if len(tokens) == 0 {
		return nil
	}
	out := make(map[string]string, len(tokens))
	for key, value := range tokens {
		out["--"+strings.TrimPrefix(key, "--")] = value
	}
	return out
}
