package orchestrator_test

import (
	"context"
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-paymentform/pkg/config"
	"github.com/goliatone/go-paymentform/pkg/orchestrator"
	"github.com/goliatone/go-paymentform/pkg/render"
)

func captureOrchestrator(capture *captureRenderer, options ...orchestrator.Option) *orchestrator.Orchestrator {
	base := []orchestrator.Option{
		orchestrator.WithRegistry(render.NewRegistry(capture)),
		orchestrator.WithDefaultRenderer("capture"),
	}
	return orchestrator.New(append(base, options...)...)
}

func TestGenerate_DefaultTheme(t *testing.T) {
	capture := &captureRenderer{}
	orch := captureOrchestrator(capture)

	if _, err := orch.Generate(context.Background(), orchestrator.Request{PaymentMethod: "blik"}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	cfg := capture.opts.Theme
	if cfg == nil {
		t.Fatal("expected theme config passed to renderer")
	}
	if cfg.Theme != orchestrator.DefaultThemeName || cfg.Variant != "" {
		t.Fatalf("unexpected selection %q/%q", cfg.Theme, cfg.Variant)
	}
	if got := cfg.Tokens["color-primary"]; got != "#0074D4" {
		t.Fatalf("unexpected primary token %q", got)
	}
	if got := cfg.CSSVars["--color-primary"]; got != "#0074D4" {
		t.Fatalf("css vars not derived from tokens, got %q", got)
	}
}

func TestGenerate_AppearanceOverridesTheme(t *testing.T) {
	capture := &captureRenderer{}
	radius := 0.0
	orch := captureOrchestrator(capture, orchestrator.WithAppearance(config.Appearance{
		Variant:    config.AppearanceDark,
		ColorsDark: config.AppearanceColors{Primary: "#123456"},
		Shapes:     config.AppearanceShapes{CornerRadius: &radius},
	}))

	if _, err := orch.Generate(context.Background(), orchestrator.Request{PaymentMethod: "blik"}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	cfg := capture.opts.Theme
	if cfg == nil || cfg.Variant != config.AppearanceDark {
		t.Fatalf("expected dark variant, got %+v", cfg)
	}
	want := map[string]string{
		"--color-primary": "#123456",
		"--color-surface": "#1C1C1E",
		"--corner-radius": "0px",
	}
	got := map[string]string{}
	for key := range want {
		got[key] = cfg.CSSVars[key]
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("css vars mismatch (-want +got):\n%s", diff)
	}

	// A request variant wins over the appearance; light has no overrides.
	if _, err := orch.Generate(context.Background(), orchestrator.Request{PaymentMethod: "blik", ThemeVariant: "light"}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got := capture.opts.Theme.Tokens["color-primary"]; got != "#0074D4" {
		t.Fatalf("expected base primary for light, got %q", got)
	}
}

func TestGenerate_ThemeSelectorManifest(t *testing.T) {
	manifest := &theme.Manifest{
		Name:      "acme",
		Version:   "1.0.0",
		Tokens:    map[string]string{"color-primary": "#111111"},
		Templates: map[string]string{"preview.field": "acme/field.tpl"},
		Assets: theme.Assets{
			Prefix: "/assets/acme/",
			Files:  map[string]string{"preview.stylesheet": "acme.css"},
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{"color-primary": "#222222"},
				Assets: theme.Assets{Files: map[string]string{"preview.stylesheet": "/acme-dark.css"}},
			},
		},
	}
	selector, err := orchestrator.NewManifestSelector("acme", "", manifest, orchestrator.DefaultThemeManifest())
	if err != nil {
		t.Fatalf("new selector: %v", err)
	}

	capture := &captureRenderer{}
	orch := captureOrchestrator(capture, orchestrator.WithThemeSelector(selector))
	if _, err := orch.Generate(context.Background(), orchestrator.Request{PaymentMethod: "blik", ThemeVariant: "dark"}); err != nil {
		t.Fatalf("generate: %v", err)
	}

	cfg := capture.opts.Theme
	if cfg.Theme != "acme" || cfg.Variant != "dark" {
		t.Fatalf("unexpected selection %q/%q", cfg.Theme, cfg.Variant)
	}
	if got := cfg.Tokens["color-primary"]; got != "#222222" {
		t.Fatalf("variant token not applied, got %q", got)
	}
	if got := cfg.Partials["preview.field"]; got != "acme/field.tpl" {
		t.Fatalf("unexpected partial %q", got)
	}
	if got := cfg.AssetURL("preview.stylesheet"); got != "/assets/acme/acme-dark.css" {
		t.Fatalf("unexpected stylesheet url %q", got)
	}
	if got := cfg.AssetURL("missing"); got != "" {
		t.Fatalf("expected empty url for unknown asset, got %q", got)
	}

	// Undefined variants fall back to the base tokens.
	if _, err := orch.Generate(context.Background(), orchestrator.Request{PaymentMethod: "blik", ThemeVariant: "sepia"}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if cfg := capture.opts.Theme; cfg.Variant != "" || cfg.Tokens["color-primary"] != "#111111" {
		t.Fatalf("expected base theme, got %q %q", cfg.Variant, cfg.Tokens["color-primary"])
	}
}

func TestGenerate_UnknownThemeFails(t *testing.T) {
	orch := captureOrchestrator(&captureRenderer{})
	_, err := orch.Generate(context.Background(), orchestrator.Request{PaymentMethod: "blik", ThemeName: "neon"})
	if err == nil || !strings.Contains(err.Error(), `orchestrator: select theme: theme selector: theme "neon" not registered (available: paymentsheet)`) {
		t.Fatalf("expected unknown theme error, got %v", err)
	}
}

func TestGenerate_RequestThemeIsKept(t *testing.T) {
	capture := &captureRenderer{}
	orch := captureOrchestrator(capture)
	preset := &theme.RendererConfig{Theme: "preset"}

	_, err := orch.Generate(context.Background(), orchestrator.Request{
		PaymentMethod: "blik",
		RenderOptions: render.RenderOptions{Theme: preset},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if capture.opts.Theme != preset {
		t.Fatalf("expected request theme to be passed through, got %+v", capture.opts.Theme)
	}
}

func TestManifestSelector_Register(t *testing.T) {
	selector, err := orchestrator.NewManifestSelector(orchestrator.DefaultThemeName, "")
	if err != nil {
		t.Fatalf("new selector: %v", err)
	}
	if err := selector.Register(nil); err == nil {
		t.Fatal("expected nil manifest to be rejected")
	}
	if err := selector.Register(&theme.Manifest{}); err == nil {
		t.Fatal("expected unnamed manifest to be rejected")
	}
	if err := selector.Register(orchestrator.DefaultThemeManifest()); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := selector.Register(orchestrator.DefaultThemeManifest()); err == nil || !strings.Contains(err.Error(), "already registered") {
		t.Fatalf("expected duplicate error, got %v", err)
	}
	if diff := cmp.Diff([]string{orchestrator.DefaultThemeName}, selector.Themes()); diff != "" {
		t.Fatalf("themes mismatch (-want +got):\n%s", diff)
	}

	sel, err := selector.Select("", " DARK ")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if sel.Theme != orchestrator.DefaultThemeName || sel.Variant != "dark" {
		t.Fatalf("unexpected selection %q/%q", sel.Theme, sel.Variant)
	}
}
