package paymentform

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-paymentform/pkg/config"
	"github.com/goliatone/go-paymentform/pkg/layout"
	"github.com/goliatone/go-paymentform/pkg/spec"
	"github.com/goliatone/go-paymentform/pkg/textfield"
)

func TestDefaultLayoutsFSContainsBuiltIns(t *testing.T) {
	data, err := fs.ReadFile(DefaultLayoutsFS(), "sepa_debit.json")
	if err != nil {
		t.Fatalf("expected sepa_debit layout to be readable: %v", err)
	}
	if !strings.Contains(string(data), `"requires_mandate": true`) {
		t.Fatalf("expected sepa_debit layout to require a mandate")
	}
}

func TestEmbeddedTemplatesContainForm(t *testing.T) {
	if _, err := fs.ReadFile(EmbeddedTemplates(), "form.tpl"); err != nil {
		t.Fatalf("expected form template to be readable: %v", err)
	}
}

func TestGenerateHTML(t *testing.T) {
	out, err := GenerateHTML(context.Background(), "eps", "")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(out), `value="eps"`) {
		t.Fatalf("expected payment method hidden field in output:\n%s", out)
	}
}

func TestGenerateHTMLWithThemeManifests(t *testing.T) {
	acme := &theme.Manifest{
		Name:   "acme",
		Tokens: map[string]string{"color-primary": "#111111"},
	}
	opt, err := WithThemeManifests("acme", "", acme)
	if err != nil {
		t.Fatalf("theme manifests: %v", err)
	}
	out, err := GenerateHTML(context.Background(), "eps", "", opt, WithAppearance(config.Appearance{
		Typography: config.AppearanceTypography{FontFamily: "Inter"},
	}))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	html := string(out)
	for _, want := range []string{`data-theme="acme"`, `--color-primary:#111111;`, `--font-family:Inter;`} {
		if !strings.Contains(html, want) {
			t.Errorf("expected %s in output:\n%s", want, html)
		}
	}

	if _, err := WithThemeManifests("acme", "", acme, &theme.Manifest{Name: "acme"}); err == nil {
		t.Fatal("expected duplicate manifest error")
	}
}

func TestGenerateHTMLFromDocument(t *testing.T) {
	doc := layout.MustNewDocument(layout.SourceFromFS("sofort.json"), []byte(`[{"type":"name"}]`))
	opt, err := WithPreset([]byte(`{"values": {"billing_details[name]": "Jenny Rosen"}}`))
	if err != nil {
		t.Fatalf("preset: %v", err)
	}

	out, err := GenerateHTMLFromDocument(context.Background(), doc, "preview", opt)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(out), `value="Jenny Rosen"`) {
		t.Fatalf("expected preset value in output:\n%s", out)
	}
}

func TestResolveFormItem(t *testing.T) {
	item, err := ResolveFormItem([]byte(`{"type":"iban"}`))
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if _, ok := item.(spec.IbanSpec); !ok {
		t.Fatalf("expected IbanSpec, got %T", item)
	}

	items, err := ParseLayout([]byte(`[{"type":"email"},{"type":"mystery"}]`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
}

func TestClassifyPostalCode(t *testing.T) {
	filtered, state := ClassifyPostalCode("US", "94107")
	if filtered != "94107" || state.Kind != textfield.KindFull {
		t.Fatalf("unexpected classification %q %v", filtered, state.Kind)
	}
	if _, state := ClassifyPostalCode("US", "941"); state.Kind != textfield.KindIncomplete {
		t.Fatalf("expected incomplete, got %v", state.Kind)
	}
}

func TestNewLoaderReadsFileSystem(t *testing.T) {
	loader := NewLoader(layout.WithFileSystem(DefaultLayoutsFS()))
	doc, err := loader.Load(context.Background(), layout.SourceFromFS("blik.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.BaseName() != "blik" {
		t.Fatalf("unexpected base name %q", doc.BaseName())
	}
}
