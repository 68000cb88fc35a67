package render_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/goliatone/go-paymentform/pkg/model"
	"github.com/goliatone/go-paymentform/pkg/render"
)

func TestMapErrorPayload(t *testing.T) {
	ids := []model.IdentifierSpec{
		model.IdentifierName,
		model.IdentifierEmail,
		model.IdentifierPostalCode,
		model.IdentifierIban,
	}
	payload := map[string][]string{
		"payment_method_data[billing_details][address][postal_code]": {"Your postal code is invalid."},
		"billing_details.email":      {" Invalid email ", "Invalid email"},
		"/sepa_debit/iban":           {"IBAN rejected"},
		"payment_method[unknown]":    {"Falls back to form errors"},
		"non_field_errors":           {"Card declined"},
		"":                           {"Unscoped"},
		"billing_details[name][0]":   {"Name too long"},
		"source_data[billing_details]": {"Parent only"},
	}

	mapped := render.MapErrorPayload(ids, payload)

	wantFields := map[model.IdentifierSpec][]string{
		model.IdentifierPostalCode: {"Your postal code is invalid."},
		model.IdentifierEmail:      {"Invalid email"},
		model.IdentifierIban:       {"IBAN rejected"},
		model.IdentifierName:       {"Name too long"},
	}
	if diff := cmp.Diff(wantFields, mapped.Fields); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}

	got := append([]string(nil), mapped.Form...)
	want := []string{"Card declined", "Falls back to form errors", "Parent only", "Unscoped"}
	if diff := cmp.Diff(want, sorted(got)); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
}

func sorted(in []string) []string {
	for i := 1; i < len(in); i++ {
		for j := i; j > 0 && in[j] < in[j-1]; j-- {
			in[j], in[j-1] = in[j-1], in[j]
		}
	}
	return in
}

func TestEncodeParamsNestsBracketedPaths(t *testing.T) {
	values := map[model.IdentifierSpec]model.FormFieldEntry{
		model.IdentifierName:       {Value: model.StringPtr("Jenny Rosen"), IsComplete: true},
		model.IdentifierPostalCode: {Value: model.StringPtr("94107"), IsComplete: true},
		model.IdentifierCountry:    {Value: model.StringPtr("US"), IsComplete: true},
		"ideal[bank]":              {Value: nil, IsComplete: true},
	}
	session := uuid.MustParse("8f14e45f-ceea-467e-a0f4-7e4b5c1b8f00")
	hidden := render.MergeHiddenFields(nil, render.ClientSessionID(session), render.PaymentMethodType("ideal"))

	params := render.EncodeParams(values, hidden)

	want := render.Params{
		"billing_details": render.Params{
			"name": "Jenny Rosen",
			"address": render.Params{
				"postal_code": "94107",
				"country":     "US",
			},
		},
		"client_attribution_metadata": render.Params{"client_session_id": session.String()},
		"payment_method_data":         render.Params{"type": "ideal"},
	}
	if diff := cmp.Diff(want, params); diff != "" {
		t.Fatalf("params mismatch (-want +got):\n%s", diff)
	}

	encoded := params.Encode()
	for _, fragment := range []string{
		"billing_details%5Baddress%5D%5Bpostal_code%5D=94107",
		"billing_details%5Bname%5D=Jenny+Rosen",
		"payment_method_data%5Btype%5D=ideal",
	} {
		if !strings.Contains(encoded, fragment) {
			t.Errorf("encoded payload %q missing %q", encoded, fragment)
		}
	}
}

func TestEncodeParamsParentWinsOverLeaf(t *testing.T) {
	values := map[model.IdentifierSpec]model.FormFieldEntry{
		"billing_details":       {Value: model.StringPtr("flat")},
		"billing_details[name]": {Value: model.StringPtr("Jenny")},
	}
	params := render.EncodeParams(values, nil)
	want := render.Params{"billing_details": render.Params{"name": "Jenny"}}
	if diff := cmp.Diff(want, params); diff != "" {
		t.Fatalf("params mismatch (-want +got):\n%s", diff)
	}
}

func TestClientSessionIDGeneratesWhenNil(t *testing.T) {
	field := render.ClientSessionID(uuid.Nil)
	if _, err := uuid.Parse(field.Value); err != nil {
		t.Fatalf("expected generated uuid, got %q: %v", field.Value, err)
	}
}

func TestResolveStringWithTranslator(t *testing.T) {
	translator := render.NewMapTranslator(map[string]map[string]string{
		"fr": {
			"address.label.city":  "Ville",
			"form.label.optional": "%s (facultatif)",
		},
	})

	optional := model.Translatable(model.TranslationOptional, model.Translatable(model.TranslationCity))
	if got := render.ResolveString("fr-CA", optional, translator, nil); got != "Ville (facultatif)" {
		t.Fatalf("unexpected translation %q", got)
	}

	missing := model.Translatable(model.TranslationEmail)
	if got := render.ResolveString("fr", missing, translator, nil); got != "Email" {
		t.Fatalf("expected default copy fallback, got %q", got)
	}

	var seen error
	handler := func(locale, key string, args []any, err error) string {
		seen = err
		return "[" + key + "]"
	}
	if got := render.ResolveString("de", missing, nil, handler); got != "[upe.labels.email]" {
		t.Fatalf("unexpected handler output %q", got)
	}
	if !errors.Is(seen, render.ErrMissingTranslator) {
		t.Fatalf("expected ErrMissingTranslator, got %v", seen)
	}

	if got := render.ResolveString("fr", model.Literal("As is"), translator, nil); got != "As is" {
		t.Fatalf("literal should pass through, got %q", got)
	}
}

type stubRenderer struct{ name string }

func (s stubRenderer) Name() string        { return s.name }
func (s stubRenderer) ContentType() string { return "text/plain" }
func (s stubRenderer) Render(context.Context, render.Form, render.RenderOptions) ([]byte, error) {
	return []byte(s.name), nil
}

func TestRegistry(t *testing.T) {
	registry := render.NewRegistry(stubRenderer{name: "html"}, stubRenderer{name: "tui"})
	if err := registry.Register(stubRenderer{name: "html"}); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if diff := cmp.Diff([]string{"html", "tui"}, registry.List()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if _, err := registry.Get("pdf"); err == nil || !strings.Contains(err.Error(), "available: html, tui") {
		t.Fatalf("expected not found error listing names, got %v", err)
	}
}

func TestMergeAndSortHiddenFields(t *testing.T) {
	merged := render.MergeHiddenFields(map[string]string{" existing ": "keep", "": "ignored"},
		render.Hidden("version", 4),
		render.Hidden("  ", "skip"),
	)
	want := []render.HiddenField{
		{Name: "existing", Value: "keep"},
		{Name: "version", Value: "4"},
	}
	if diff := cmp.Diff(want, render.SortedHiddenFields(merged)); diff != "" {
		t.Fatalf("hidden fields mismatch (-want +got):\n%s", diff)
	}
}
