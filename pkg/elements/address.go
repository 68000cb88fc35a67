package elements

import (
	"strings"

	"github.com/goliatone/go-paymentform/pkg/model"
	"github.com/goliatone/go-paymentform/pkg/textfield"
)

// Address field names, appended to the address identifier.
const (
	AddressLine1      = "line1"
	AddressLine2      = "line2"
	AddressCity       = "city"
	AddressState      = "state"
	AddressPostalCode = "postal_code"
	AddressCountry    = "country"
)

// AddressOptions tunes the fields an AddressElement collects.
type AddressOptions struct {
	// Countries restricts the country dropdown; empty means SupportedCountries.
	Countries []string
	// DisplayFields limits the collected fields to the named subset. The
	// country is always collected unless HideCountry is set.
	DisplayFields []string
	HideCountry   bool
	InitialValues map[model.IdentifierSpec]*string
}

// AddressElement collects a postal address. The postal code config follows
// the selected country.
type AddressElement struct {
	identifier model.IdentifierSpec
	Country    *CountryElement
	fields     []SectionFieldElement
	postal     *TextFieldElement
	cancel     func()
}

var _ SectionFieldElement = (*AddressElement)(nil)

// NewAddressElement builds the address fields under identifier.
func NewAddressElement(identifier model.IdentifierSpec, opts AddressOptions) *AddressElement {
	if identifier.IsZero() {
		identifier = model.IdentifierAddress
	}
	e := &AddressElement{identifier: identifier}
	child := func(name string) model.IdentifierSpec {
		return model.IdentifierFromSegments(append(identifier.Segments(), name)...)
	}
	initial := func(name string) *string {
		if opts.InitialValues == nil {
			return nil
		}
		return opts.InitialValues[child(name)]
	}
	wanted := func(name string) bool {
		if len(opts.DisplayFields) == 0 {
			return true
		}
		for _, field := range opts.DisplayFields {
			if strings.EqualFold(strings.TrimSpace(field), name) {
				return true
			}
		}
		return false
	}

	e.Country = NewCountryElement(child(AddressCountry), opts.Countries, initial(AddressCountry))

	text := func(name string, cfg textfield.Config, optional bool) {
		if !wanted(name) {
			return
		}
		element := NewTextFieldElement(child(name), NewTextFieldController(cfg, initial(name), optional))
		e.fields = append(e.fields, element)
		if name == AddressPostalCode {
			e.postal = element
		}
	}
	simple := func(id model.TranslationID) textfield.Config {
		return textfield.NewSimpleConfig(model.Translatable(id), model.KeyboardText, model.CapitalizationWords)
	}

	if !opts.HideCountry {
		e.fields = append(e.fields, e.Country)
	}
	text(AddressLine1, simple(model.TranslationLine1), false)
	text(AddressLine2, simple(model.TranslationLine2), true)
	text(AddressCity, simple(model.TranslationCity), false)
	text(AddressState, simple(model.TranslationState), true)
	text(AddressPostalCode, textfield.NewPostalCodeConfig(model.ResolvableString{}, e.Country.Country()), false)

	if e.postal != nil {
		postal := e.postal
		e.cancel = e.Country.Controller.Subscribe(func(int) {
			country := e.Country.Country()
			if current, ok := postal.Controller.Config().(*textfield.PostalCodeConfig); ok && current.Country() == country {
				return
			}
			postal.Controller.SetConfig(textfield.NewPostalCodeConfig(model.ResolvableString{}, country))
		})
	}
	return e
}

// Children returns the collected fields in display order.
func (e *AddressElement) Children() []SectionFieldElement {
	return append([]SectionFieldElement(nil), e.fields...)
}

// PostalCode returns the postal code field, or nil when it is not collected.
func (e *AddressElement) PostalCode() *TextFieldElement { return e.postal }

// Close detaches the country subscription.
func (e *AddressElement) Close() {
	if e.cancel != nil {
		e.cancel()
	}
}

func (e *AddressElement) Identifier() model.IdentifierSpec { return e.identifier }
func (e *AddressElement) AllowsUserInteraction() bool      { return true }

// FormFieldValues reports every field. A hidden country still submits.
func (e *AddressElement) FormFieldValues() []FieldValue {
	var out []FieldValue
	if !e.hasField(e.Country) {
		out = append(out, e.Country.FormFieldValues()...)
	}
	for _, field := range e.fields {
		out = append(out, field.FormFieldValues()...)
	}
	return out
}

// SetRawValue applies the country first so the postal code filters against
// the right config.
func (e *AddressElement) SetRawValue(values map[model.IdentifierSpec]*string) {
	e.Country.SetRawValue(values)
	for _, field := range e.fields {
		if field == SectionFieldElement(e.Country) {
			continue
		}
		field.SetRawValue(values)
	}
}

// Error returns the first field error.
func (e *AddressElement) Error() *textfield.FieldError {
	for _, field := range e.fields {
		if err := field.Error(); err != nil {
			return err
		}
	}
	return nil
}

func (e *AddressElement) hasField(target SectionFieldElement) bool {
	for _, field := range e.fields {
		if field == target {
			return true
		}
	}
	return false
}
