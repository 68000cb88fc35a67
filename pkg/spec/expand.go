package spec

import (
	"github.com/goliatone/go-paymentform/pkg/config"
	"github.com/goliatone/go-paymentform/pkg/model"
)

// ExpandOptions drives placeholder expansion.
type ExpandOptions struct {
	Collection config.BillingDetailsCollectionConfiguration
	// RequiresMandate keeps sepa_mandate placeholders.
	RequiresMandate bool
}

// PhoneSpec is the text item a phone placeholder expands to.
func PhoneSpec() SimpleTextSpec {
	return SimpleTextSpec{
		Path:         model.IdentifierPhone,
		Label:        model.TranslationPhone,
		KeyboardType: model.KeyboardPhone,
	}
}

// ExpandPlaceholders replaces placeholders with concrete items according to
// the collection configuration, then adds the fields the configuration
// always collects. Names, emails and phones marked "always" lead the form;
// an address collected in "full" goes before any mandate copy.
func ExpandPlaceholders(items []FormItemSpec, opts ExpandOptions) []FormItemSpec {
	c := opts.Collection
	out := make([]FormItemSpec, 0, len(items))
	for _, item := range items {
		placeholder, ok := item.(PlaceholderSpec)
		if !ok {
			out = append(out, item)
			continue
		}
		switch placeholder.Field {
		case PlaceholderName:
			if c.CollectsName() {
				out = append(out, NameSpec{})
			}
		case PlaceholderEmail:
			if c.CollectsEmail() {
				out = append(out, EmailSpec{})
			}
		case PlaceholderPhone:
			if c.CollectsPhone() {
				out = append(out, PhoneSpec())
			}
		case PlaceholderBillingAddress:
			if c.CollectsAddress() {
				out = append(out, AddressSpec{})
			}
		case PlaceholderBillingAddressWithoutCountry:
			if c.CollectsAddress() {
				out = append(out, AddressSpec{HideCountry: true})
			}
		case PlaceholderSepaMandate:
			if opts.RequiresMandate {
				out = append(out, SepaMandateTextSpec{})
			}
		}
	}

	var leading []FormItemSpec
	if c.Name == config.CollectionAlways && !contains(out, model.IdentifierName) {
		leading = append(leading, NameSpec{})
	}
	if c.Email == config.CollectionAlways && !contains(out, model.IdentifierEmail) {
		leading = append(leading, EmailSpec{})
	}
	if c.Phone == config.CollectionAlways && !contains(out, model.IdentifierPhone) {
		leading = append(leading, PhoneSpec())
	}
	out = append(leading, out...)

	if c.Address == config.AddressFull && !hasAddress(out) {
		at := len(out)
		for i, item := range out {
			if isMandate(item) {
				at = i
				break
			}
		}
		out = append(out[:at], append([]FormItemSpec{AddressSpec{}}, out[at:]...)...)
	}
	return out
}

func contains(items []FormItemSpec, id model.IdentifierSpec) bool {
	for _, item := range items {
		if item.APIPath() == id {
			return true
		}
	}
	return false
}

func hasAddress(items []FormItemSpec) bool {
	for _, item := range items {
		if _, ok := item.(AddressSpec); ok {
			return true
		}
	}
	return false
}

func isMandate(item FormItemSpec) bool {
	switch item.(type) {
	case MandateTextSpec, SepaMandateTextSpec, AuBecsDebitMandateTextSpec:
		return true
	}
	return false
}
