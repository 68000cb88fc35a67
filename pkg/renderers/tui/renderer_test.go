package tui

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-paymentform/pkg/elements"
	"github.com/goliatone/go-paymentform/pkg/model"
	"github.com/goliatone/go-paymentform/pkg/render"
	"github.com/goliatone/go-paymentform/pkg/textfield"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	confirm      []bool
	passwords    []string
	messages     []string
	infoMessages []string
	inputPos     int
	selectPos    int
	confirmPos   int
	passPos      int
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	s.messages = append(s.messages, cfg.Message)
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Password(_ context.Context, cfg InputConfig) (string, error) {
	if s.passPos >= len(s.passwords) {
		return "", errors.New("no password scripted")
	}
	s.messages = append(s.messages, cfg.Message)
	val := s.passwords[s.passPos]
	s.passPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, cfg ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	s.messages = append(s.messages, cfg.Message)
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	s.messages = append(s.messages, cfg.Message)
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func checkoutForm() render.Form {
	billing := model.Translatable(model.TranslationBillingAddress)
	address := elements.NewAddressElement(model.IdentifierAddress, elements.AddressOptions{
		Countries:     []string{"US", "CA"},
		DisplayFields: []string{elements.AddressPostalCode},
	})
	bank := elements.NewDropdownFieldController(
		elements.NewSimpleDropdownConfig(model.Translatable(model.TranslationIdealBank), []model.DropdownItemSpec{
			model.DropdownItem("abn_amro", "ABN AMRO"),
			model.DropdownItem("ing", "ING Bank"),
		}),
		nil,
	)

	return render.Form{
		PaymentMethod: "ideal",
		MerchantName:  "Example, Inc.",
		Elements: []elements.FormElement{
			elements.NewStaticTextElement(model.Generic("header"), elements.StaticHeader, model.Literal("Pay with <b>iDEAL</b> &amp; more"), true),
			elements.Wrap(elements.NewTextFieldElement(model.IdentifierEmail, elements.NewTextFieldController(textfield.NewEmailConfig(model.ResolvableString{}), nil, false)), nil),
			elements.Wrap(address, &billing),
			elements.Wrap(elements.NewSimpleDropdownElement(model.Generic("ideal[bank]"), bank), nil),
			&elements.EmptyFormElement{UnknownType: "mystery"},
			elements.Wrap(elements.NewSaveForFutureUseElement("Example, Inc.", false), nil),
			elements.Wrap(elements.NewSetAsDefaultPaymentMethodElement(false, false), nil),
		},
	}
}

func TestRender_PromptsFieldsAndEncodesForm(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"jenny", "jenny@example.com", "9410", "94107"},
		selectIdx: []int{1, 1},
		confirm:   []bool{true},
	}
	renderer := New(WithPromptDriver(driver), WithOutputFormat(OutputFormatFormURLEncoded))

	opts := render.RenderOptions{
		HiddenFields: render.MergeHiddenFields(nil, render.PaymentMethodType("ideal")),
	}
	out, err := renderer.Render(context.Background(), checkoutForm(), opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	got, err := url.ParseQuery(string(out))
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	want := url.Values{
		"billing_details[email]":                 {"jenny@example.com"},
		"billing_details[address][country]":      {"US"},
		"billing_details[address][postal_code]":  {"94107"},
		"ideal[bank]":                            {"ing"},
		"save_for_future_use":                    {"true"},
		"set_as_default_payment_method":          {"false"},
		"payment_method_data[type]":              {"ideal"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}

	wantInfo := []string{
		"Pay with iDEAL & more",
		"Invalid Email: Your email address is incomplete.",
		"Billing address",
		"Invalid ZIP code: Your ZIP is incomplete.",
	}
	if diff := cmp.Diff(wantInfo, driver.infoMessages); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}

	wantPrompts := []string{
		"Email",
		"Email",
		"Country or region",
		"ZIP code",
		"ZIP code",
		"iDEAL Bank",
		"Save this payment method for future Example, Inc. payments",
	}
	if diff := cmp.Diff(wantPrompts, driver.messages); diff != "" {
		t.Fatalf("prompts mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_OptionalBlankAndPrettyOutput(t *testing.T) {
	address := elements.NewAddressElement(model.IdentifierAddress, elements.AddressOptions{
		Countries:     []string{"FR"},
		DisplayFields: []string{elements.AddressLine2},
		HideCountry:   true,
	})
	form := render.Form{Elements: []elements.FormElement{elements.Wrap(address, nil)}}

	driver := &stubDriver{inputs: []string{""}}
	renderer := New(WithPromptDriver(driver), WithOutputFormat(OutputFormatPrettyText))

	out, err := renderer.Render(context.Background(), form, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if diff := cmp.Diff("billing_details[address][country]: FR\n", string(out)); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Address line 2 (optional)"}, driver.messages); diff != "" {
		t.Fatalf("prompts mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_JSONAndServerErrors(t *testing.T) {
	name := elements.NewTextFieldElement(model.IdentifierName, elements.NewTextFieldController(textfield.NewNameConfig(model.ResolvableString{}), nil, false))
	form := render.Form{Elements: []elements.FormElement{elements.Wrap(name, nil)}}

	driver := &stubDriver{inputs: []string{"", "Jenny Rosen"}}
	renderer := New(WithPromptDriver(driver), WithTheme(Theme{ErrorPrefix: "! "}))

	opts := render.RenderOptions{
		FormErrors: []string{"Card declined"},
		Errors:     map[model.IdentifierSpec][]string{model.IdentifierName: {"Name too long"}},
	}
	out, err := renderer.Render(context.Background(), form, opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if renderer.ContentType() != "application/json" {
		t.Fatalf("unexpected content type %q", renderer.ContentType())
	}

	var got map[string]any
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	want := map[string]any{"billing_details": map[string]any{"name": "Jenny Rosen"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}

	wantInfo := []string{"! Card declined", "! Name too long", "! Full name is required"}
	if diff := cmp.Diff(wantInfo, driver.infoMessages); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_PropagatesDriverErrors(t *testing.T) {
	driver := &stubDriver{}
	renderer := New(WithPromptDriver(driver))

	_, err := renderer.Render(context.Background(), checkoutForm(), render.RenderOptions{})
	if err == nil || err.Error() != "no input scripted" {
		t.Fatalf("expected scripted driver error, got %v", err)
	}
}

func TestParseOutputFormat(t *testing.T) {
	cases := map[string]OutputFormat{"": OutputFormatJSON, "json": OutputFormatJSON, "form": OutputFormatFormURLEncoded, "pretty": OutputFormatPrettyText}
	for input, want := range cases {
		got, ok := ParseOutputFormat(input)
		if !ok || got != want {
			t.Fatalf("ParseOutputFormat(%q) = %q, %v", input, got, ok)
		}
	}
	if _, ok := ParseOutputFormat("xml"); ok {
		t.Fatal("expected xml to be rejected")
	}
}

func TestDefaultTheme(t *testing.T) {
	theme := DefaultTheme()
	if !strings.Contains(theme.ErrorPrefix, "✗") || !strings.HasSuffix(theme.ErrorPrefix, " ") {
		t.Fatalf("unexpected error prefix %q", theme.ErrorPrefix)
	}
	if !strings.Contains(theme.InfoPrefix, "›") {
		t.Fatalf("unexpected info prefix %q", theme.InfoPrefix)
	}
}
