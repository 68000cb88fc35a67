package spec_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-paymentform/pkg/model"
	"github.com/goliatone/go-paymentform/pkg/spec"
)

func TestUnmarshalResolvesEveryTag(t *testing.T) {
	cases := []struct {
		payload string
		want    string
	}{
		{`{"type":"billing_address"}`, "spec.AddressSpec"},
		{`{"type":"affirm_header"}`, "spec.AffirmTextSpec"},
		{`{"type":"afterpay_header"}`, "spec.AfterpayClearpayTextSpec"},
		{`{"type":"au_becs_bsb_number"}`, "spec.BsbSpec"},
		{`{"type":"au_becs_account_number"}`, "spec.AuBankAccountNumberSpec"},
		{`{"type":"au_becs_mandate"}`, "spec.AuBecsDebitMandateTextSpec"},
		{`{"type":"country"}`, "spec.CountrySpec"},
		{`{"type":"selector","api_path":{"v1":"ideal[bank]"},"items":[]}`, "spec.DropdownSpec"},
		{`{"type":"email"}`, "spec.EmailSpec"},
		{`{"type":"iban"}`, "spec.IbanSpec"},
		{`{"type":"klarna_country"}`, "spec.CountrySpec"},
		{`{"type":"klarna_header"}`, "spec.KlarnaHeaderStaticTextSpec"},
		{`{"type":"static_text","api_path":{"v1":"notice"},"stringResId":"upe.labels.klarna.header"}`, "spec.StaticTextSpec"},
		{`{"type":"name"}`, "spec.NameSpec"},
		{`{"type":"mandate"}`, "spec.MandateTextSpec"},
		{`{"type":"sepa_mandate"}`, "spec.SepaMandateTextSpec"},
		{`{"type":"text","api_path":{"v1":"blik[code]"},"label":"upe.labels.blik.code"}`, "spec.SimpleTextSpec"},
		{`{"type":"placeholder","for":"name"}`, "spec.PlaceholderSpec"},
	}

	for _, tc := range cases {
		item, err := spec.Unmarshal([]byte(tc.payload))
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.payload, err)
		}
		if got := fmt.Sprintf("%T", item); got != tc.want {
			t.Errorf("%s: resolved %s, want %s", tc.payload, got, tc.want)
		}
	}
}

func TestUnmarshalUnknownTagsDegradeToEmpty(t *testing.T) {
	payloads := []string{
		`{"type":"future_widget","api_path":"x"}`,
		`{"type":""}`,
		`{"type":null}`,
		`{"type":42}`,
		`{"type":{"nested":true}}`,
		`{"api_path":"no_type"}`,
		`{}`,
	}
	for _, payload := range payloads {
		item, err := spec.Unmarshal([]byte(payload))
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", payload, err)
		}
		if _, ok := item.(spec.EmptyFormSpec); !ok {
			t.Fatalf("%s: expected EmptyFormSpec, got %T", payload, item)
		}
		if item.Transform(spec.TransformContext{}) != nil {
			t.Fatalf("%s: empty spec should render nothing", payload)
		}
	}

	item, _ := spec.Unmarshal([]byte(`{"type":"future_widget"}`))
	if got := item.(spec.EmptyFormSpec).UnknownType; got != "future_widget" {
		t.Fatalf("expected unknown type to be recorded, got %q", got)
	}
}

func TestResolveMatchesUnmarshal(t *testing.T) {
	obj := map[string]json.RawMessage{
		"type":     json.RawMessage(`"iban"`),
		"api_path": json.RawMessage(`{"v1":"sepa_debit[iban]"}`),
	}
	item, err := spec.Resolve(obj)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got := item.APIPath(); got != model.IdentifierIban {
		t.Fatalf("unexpected api path %q", got)
	}
	if _, err := spec.Resolve(nil); !errors.Is(err, spec.ErrNotObject) {
		t.Fatalf("expected ErrNotObject for nil map, got %v", err)
	}
}

func TestUnmarshalRejectsNonObjects(t *testing.T) {
	for _, payload := range []string{`null`, `[]`, `"email"`, ``, `42`} {
		if _, err := spec.Unmarshal([]byte(payload)); !errors.Is(err, spec.ErrNotObject) {
			t.Errorf("%q: expected ErrNotObject, got %v", payload, err)
		}
	}
}

func TestUnmarshalReportsMalformedRecognizedItems(t *testing.T) {
	payloads := []string{
		`{"type":"selector","api_path":"ideal[bank]","items":"not-a-list"}`,
		`{"type":"selector","items":[]}`,
		`{"type":"text","label":"upe.labels.blik.code"}`,
		`{"type":"billing_address","allowed_country_codes":"US"}`,
	}
	for _, payload := range payloads {
		if _, err := spec.Unmarshal([]byte(payload)); err == nil {
			t.Errorf("%s: expected error", payload)
		}
	}
}

func TestTagsPreserveDispatchOrder(t *testing.T) {
	want := []string{
		"billing_address", "affirm_header", "afterpay_header", "au_becs_bsb_number",
		"au_becs_account_number", "au_becs_mandate", "country", "selector", "email",
		"iban", "klarna_country", "klarna_header", "static_text", "name", "mandate",
		"sepa_mandate", "text", "placeholder",
	}
	if diff := cmp.Diff(want, spec.Tags()); diff != "" {
		t.Fatalf("tags mismatch (-want +got):\n%s", diff)
	}
}

func TestDefaultAPIPaths(t *testing.T) {
	cases := map[string]model.IdentifierSpec{
		`{"type":"billing_address"}`:        model.IdentifierAddress,
		`{"type":"country"}`:                model.IdentifierCountry,
		`{"type":"email"}`:                  model.IdentifierEmail,
		`{"type":"name"}`:                   model.IdentifierName,
		`{"type":"iban"}`:                   model.IdentifierIban,
		`{"type":"au_becs_bsb_number"}`:     model.IdentifierBsbNumber,
		`{"type":"au_becs_account_number"}`: model.IdentifierAuAccountNumber,
		`{"type":"sepa_mandate"}`:           "sepa_mandate",
		`{"type":"afterpay_header"}`:        "afterpay_text",
		`{"type":"klarna_header"}`:          "klarna_header_text",
		`{"type":"name","api_path":"billing_details[name]"}`: model.IdentifierName,
	}
	for payload, want := range cases {
		item, err := spec.Unmarshal([]byte(payload))
		if err != nil {
			t.Fatalf("%s: %v", payload, err)
		}
		if got := item.APIPath(); got != want {
			t.Errorf("%s: api path %q, want %q", payload, got, want)
		}
	}
}

func TestItemMarshalAddsDiscriminator(t *testing.T) {
	var item spec.Item
	payload := `{"type":"selector","api_path":{"v1":"eps[bank]"},"translation_id":"upe.labels.eps.bank","items":[{"api_value":"bank_austria","display_text":"Bank Austria"}]}`
	if err := json.Unmarshal([]byte(payload), &item); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	data, err := json.Marshal(item)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := map[string]any{
		"type":           "selector",
		"api_path":       "eps[bank]",
		"translation_id": "upe.labels.eps.bank",
		"items": []any{
			map[string]any{"api_value": "bank_austria", "display_text": "Bank Austria"},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("encoded item mismatch (-want +got):\n%s", diff)
	}
}
