package layout_test

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-paymentform/pkg/layout"
	"github.com/goliatone/go-paymentform/pkg/spec"
)

func TestDefaultsLoad(t *testing.T) {
	store, err := layout.Defaults()
	if err != nil {
		t.Fatalf("defaults: %v", err)
	}
	want := []string{"affirm", "afterpay_clearpay", "au_becs_debit", "blik", "eps", "ideal", "klarna", "sepa_debit"}
	if diff := cmp.Diff(want, store.PaymentMethods()); diff != "" {
		t.Fatalf("payment methods mismatch (-want +got):\n%s", diff)
	}

	sepa, ok := store.Definition("sepa_debit")
	if !ok || !sepa.RequiresMandate {
		t.Fatalf("expected sepa_debit to require a mandate, got %+v", sepa)
	}
	// The address follows the billing details collection, so it ships as a placeholder.
	if item, ok := sepa.Items[3].(spec.PlaceholderSpec); !ok || item.Field != spec.PlaceholderBillingAddress {
		t.Fatalf("expected sepa_debit address placeholder, got %+v", sepa.Items[3])
	}

	becs, _ := store.Definition("au_becs_debit")
	var types []string
	for _, item := range becs.Items {
		types = append(types, item.Type())
	}
	wantTypes := []string{"name", "email", "au_becs_bsb_number", "au_becs_account_number", "au_becs_mandate"}
	if diff := cmp.Diff(wantTypes, types); diff != "" {
		t.Fatalf("au_becs_debit types mismatch (-want +got):\n%s", diff)
	}
	if name, ok := becs.Items[0].(spec.NameSpec); !ok || name.TranslationID != "upe.labels.name.onAccount" {
		t.Fatalf("unexpected name item %+v", becs.Items[0])
	}
}

func TestLoadFSRejectsDuplicatePaymentMethods(t *testing.T) {
	fsys := fstest.MapFS{
		"a/sofort.json":  {Data: []byte(`[{"type":"name"}]`)},
		"b/sofort.yaml":  {Data: []byte("- type: email\n")},
		"notes/read.txt": {Data: []byte("ignored")},
	}
	_, err := layout.LoadFS(fsys)
	if err == nil || !strings.Contains(err.Error(), `duplicate payment method "sofort"`) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func TestLoadFSNilIsEmpty(t *testing.T) {
	store, err := layout.LoadFS(nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !store.Empty() {
		t.Fatalf("expected empty store")
	}
}

func TestDecodeObjectFormOverridesFileName(t *testing.T) {
	doc := layout.MustNewDocument(layout.SourceFromFS("custom.yaml"), []byte(`
type: bancontact
fields:
  - type: name
  - type: future_field
`))
	def, err := layout.Decode(doc)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if def.PaymentMethod != "bancontact" {
		t.Fatalf("unexpected payment method %q", def.PaymentMethod)
	}
	if _, ok := def.Items[1].(spec.EmptyFormSpec); !ok {
		t.Fatalf("expected unknown item to degrade, got %T", def.Items[1])
	}
}

func TestDecodeErrors(t *testing.T) {
	cases := map[string]string{
		"scalar.json":    `"nope"`,
		"broken.json":    `[{"type":"selector","items":[]}]`,
		"invalid.yaml":   "type: [unterminated",
		"fieldless.json": `{"fields": null}`,
	}
	for name, payload := range cases {
		doc := layout.MustNewDocument(layout.SourceFromFS(name), []byte(payload))
		def, err := layout.Decode(doc)
		if name == "fieldless.json" {
			if err != nil || def.PaymentMethod != "fieldless" || len(def.Items) != 0 {
				t.Errorf("%s: expected empty definition, got %+v, %v", name, def, err)
			}
			continue
		}
		if err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestToJSONConvertsYAML(t *testing.T) {
	out, err := layout.ToJSON([]byte("- type: text\n  show_optional_label: true\n"))
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if got := string(out); got != `[{"show_optional_label":true,"type":"text"}]` {
		t.Fatalf("unexpected JSON %s", got)
	}
}
