package elements

import (
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/goliatone/go-paymentform/pkg/model"
	"github.com/goliatone/go-paymentform/pkg/textfield"
)

// SupportedCountries lists the billing countries offered when a layout item does not
// restrict them.
var SupportedCountries = []string{
	"AE", "AT", "AU", "BE", "BG", "BR", "CA", "CH", "CY", "CZ", "DE", "DK",
	"EE", "ES", "FI", "FR", "GB", "GI", "GR", "HK", "HR", "HU", "IE", "IN",
	"IT", "JP", "LI", "LT", "LU", "LV", "MT", "MX", "MY", "NL", "NO", "NZ",
	"PL", "PT", "RO", "SE", "SG", "SI", "SK", "TH", "US",
}

// CountryName returns the English display name of an ISO 3166-1 alpha-2
// code, falling back to the code itself.
func CountryName(code string) string {
	region, err := language.ParseRegion(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return code
	}
	if name := display.English.Regions().Name(region); name != "" {
		return name
	}
	return code
}

type country struct {
	code string
	name string
}

// CountryConfig is a DropdownConfig listing countries by display name.
type CountryConfig struct {
	label     model.ResolvableString
	countries []country
}

// NewCountryConfig lists codes, or SupportedCountries when codes is empty,
// sorted by display name. Codes that do not parse as regions are dropped.
func NewCountryConfig(codes []string) *CountryConfig {
	if len(codes) == 0 {
		codes = SupportedCountries
	}
	seen := make(map[string]struct{}, len(codes))
	cfg := &CountryConfig{label: model.Translatable(model.TranslationCountry)}
	for _, code := range codes {
		code = strings.ToUpper(strings.TrimSpace(code))
		if _, dup := seen[code]; dup {
			continue
		}
		if _, err := language.ParseRegion(code); err != nil || len(code) != 2 {
			continue
		}
		seen[code] = struct{}{}
		cfg.countries = append(cfg.countries, country{code: code, name: CountryName(code)})
	}
	sort.SliceStable(cfg.countries, func(i, j int) bool {
		return cfg.countries[i].name < cfg.countries[j].name
	})
	return cfg
}

func (c *CountryConfig) Label() model.ResolvableString { return c.label }

func (c *CountryConfig) DisplayItems() []string {
	out := make([]string, len(c.countries))
	for i, entry := range c.countries {
		out[i] = entry.name
	}
	return out
}

func (c *CountryConfig) RawItems() []*string {
	out := make([]*string, len(c.countries))
	for i, entry := range c.countries {
		out[i] = model.StringPtr(entry.code)
	}
	return out
}

// Codes returns the listed country codes in display order.
func (c *CountryConfig) Codes() []string {
	out := make([]string, len(c.countries))
	for i, entry := range c.countries {
		out[i] = entry.code
	}
	return out
}

// CountryElement is a country dropdown. Unlike other dropdowns it selects
// the first country when no initial value matches.
type CountryElement struct {
	identifier model.IdentifierSpec
	Controller *DropdownFieldController
}

var _ SectionFieldElement = (*CountryElement)(nil)

// NewCountryElement builds a country dropdown over codes.
func NewCountryElement(identifier model.IdentifierSpec, codes []string, initialValue *string) *CountryElement {
	controller := NewDropdownFieldController(NewCountryConfig(codes), initialValue)
	if controller.SelectedIndex() < 0 {
		controller.OnValueChange(0)
	}
	return &CountryElement{identifier: identifier, Controller: controller}
}

// Country returns the selected code.
func (e *CountryElement) Country() string {
	if raw := e.Controller.RawValue(); raw != nil {
		return *raw
	}
	return ""
}

func (e *CountryElement) Identifier() model.IdentifierSpec { return e.identifier }
func (e *CountryElement) AllowsUserInteraction() bool      { return true }
func (e *CountryElement) Error() *textfield.FieldError     { return nil }

func (e *CountryElement) FormFieldValues() []FieldValue {
	return []FieldValue{{Identifier: e.identifier, Entry: e.Controller.FormFieldValue()}}
}

func (e *CountryElement) SetRawValue(values map[model.IdentifierSpec]*string) {
	if value, ok := values[e.identifier]; ok && value != nil {
		e.Controller.OnRawValueChange(strings.ToUpper(*value))
	}
}
