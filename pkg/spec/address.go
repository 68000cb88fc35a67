package spec

import (
	"github.com/goliatone/go-paymentform/pkg/elements"
	"github.com/goliatone/go-paymentform/pkg/model"
)

// AddressSpec collects a billing address.
type AddressSpec struct {
	Path                model.IdentifierSpec `json:"api_path,omitempty"`
	AllowedCountryCodes []string             `json:"allowed_country_codes,omitempty"`
	DisplayFields       []string             `json:"display_fields,omitempty"`
	ShowLabel           bool                 `json:"show_label,omitempty"`
	HideCountry         bool                 `json:"hide_country,omitempty"`
}

func (s AddressSpec) APIPath() model.IdentifierSpec { return pathOr(s.Path, model.IdentifierAddress) }
func (AddressSpec) Type() string                    { return TypeBillingAddress }
func (AddressSpec) formItemSpec()                   {}

func (s AddressSpec) Transform(ctx TransformContext) elements.FormElement {
	address := elements.NewAddressElement(s.APIPath(), elements.AddressOptions{
		Countries:     s.AllowedCountryCodes,
		DisplayFields: s.DisplayFields,
		HideCountry:   s.HideCountry,
		InitialValues: ctx.InitialValues,
	})
	var label *model.ResolvableString
	if s.ShowLabel {
		billing := model.Translatable(model.TranslationBillingAddress)
		label = &billing
	}
	return elements.Wrap(address, label)
}

// CountrySpec is a country selector. It also resolves from klarna_country.
type CountrySpec struct {
	Path                model.IdentifierSpec `json:"api_path,omitempty"`
	AllowedCountryCodes []string             `json:"allowed_country_codes,omitempty"`
}

func (s CountrySpec) APIPath() model.IdentifierSpec { return pathOr(s.Path, model.IdentifierCountry) }
func (CountrySpec) Type() string                    { return TypeCountry }
func (CountrySpec) formItemSpec()                   {}

func (s CountrySpec) Transform(ctx TransformContext) elements.FormElement {
	id := s.APIPath()
	return elements.Wrap(elements.NewCountryElement(id, s.AllowedCountryCodes, ctx.initial(id)), nil)
}
