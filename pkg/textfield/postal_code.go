package textfield

import (
	"regexp"
	"strings"

	"github.com/goliatone/go-paymentform/pkg/model"
)

// postalRule holds the per-country filter and matchers. Countries without an
// entry fall back to otherPostalRule.
type postalRule struct {
	maxLength      int
	minLength      int
	allowed        func(rune) bool
	uppercase      bool
	keyboard       model.KeyboardType
	capitalization model.Capitalization
	valid          *regexp.Regexp
	full           *regexp.Regexp
	incomplete     model.TranslationID
	invalid        model.TranslationID
}

var postalRules = map[string]postalRule{
	"US": {
		maxLength:      5,
		minLength:      5,
		allowed:        func(r rune) bool { return r >= '0' && r <= '9' },
		keyboard:       model.KeyboardNumberPassword,
		capitalization: model.CapitalizationNone,
		valid:          regexp.MustCompile(`^[0-9]{5}$`),
		full:           regexp.MustCompile(`^[0-9]{5}$`),
		incomplete:     model.TranslationZipIncomplete,
		invalid:        model.TranslationZipInvalid,
	},
	"CA": {
		maxLength:      7,
		minLength:      6,
		allowed:        isASCIIAlnumOrSpace,
		uppercase:      true,
		keyboard:       model.KeyboardText,
		capitalization: model.CapitalizationCharacters,
		valid:          regexp.MustCompile(`^[A-Z][0-9][A-Z] ?[0-9][A-Z][0-9]$`),
		full:           regexp.MustCompile(`^[A-Z][0-9][A-Z] ?[0-9][A-Z][0-9]$`),
		incomplete:     model.TranslationPostalIncomplete,
		invalid:        model.TranslationPostalInvalid,
	},
	"GB": {
		maxLength:      8,
		minLength:      5,
		allowed:        isASCIIAlnumOrSpace,
		uppercase:      true,
		keyboard:       model.KeyboardText,
		capitalization: model.CapitalizationCharacters,
		valid:          regexp.MustCompile(`^[A-Z]{1,2}[0-9R][0-9A-Z]? ?[0-9][ABD-HJLNP-UW-Z]{2}$`),
		full:           regexp.MustCompile(`^[A-Z]{1,2}[0-9R][0-9A-Z]? [0-9][ABD-HJLNP-UW-Z]{2}$`),
		incomplete:     model.TranslationPostalIncomplete,
		invalid:        model.TranslationPostalInvalid,
	},
}

var otherPostalRule = postalRule{
	keyboard:       model.KeyboardText,
	capitalization: model.CapitalizationCharacters,
	incomplete:     model.TranslationPostalIncomplete,
	invalid:        model.TranslationPostalInvalid,
}

func postalRuleFor(country string) postalRule {
	if rule, ok := postalRules[normalizeCountry(country)]; ok {
		return rule
	}
	return otherPostalRule
}

func normalizeCountry(country string) string {
	return strings.ToUpper(strings.TrimSpace(country))
}

// PostalCodeConfig validates postal codes for a single country.
type PostalCodeConfig struct {
	label   model.ResolvableString
	country string
	rule    postalRule
}

var _ Config = (*PostalCodeConfig)(nil)

// NewPostalCodeConfig builds the config for an ISO 3166-1 alpha-2 country.
// A zero label selects "ZIP code" for the US and "Postal code" elsewhere.
func NewPostalCodeConfig(label model.ResolvableString, country string) *PostalCodeConfig {
	country = normalizeCountry(country)
	if label.IsZero() {
		label = model.Translatable(model.TranslationPostalCode)
		if country == "US" {
			label = model.Translatable(model.TranslationZipCode)
		}
	}
	return &PostalCodeConfig{
		label:   label,
		country: country,
		rule:    postalRuleFor(country),
	}
}

// Country returns the normalised country code.
func (c *PostalCodeConfig) Country() string { return c.country }

// Label implements Config.
func (c *PostalCodeConfig) Label() model.ResolvableString { return c.label }

// Keyboard implements Config.
func (c *PostalCodeConfig) Keyboard() model.KeyboardType { return c.rule.keyboard }

// Capitalization implements Config.
func (c *PostalCodeConfig) Capitalization() model.Capitalization { return c.rule.capitalization }

// Format implements Config.
func (c *PostalCodeConfig) Format(raw string) string { return raw }

// Filter drops disallowed characters, normalises case and enforces the
// country's maximum length. Countries without a rule are left untouched.
func (c *PostalCodeConfig) Filter(input string) string {
	rule := c.rule
	if rule.allowed == nil {
		return input
	}
	out := keepRunes(input, rule.allowed)
	if rule.uppercase {
		out = strings.ToUpper(out)
	}
	return truncate(out, rule.maxLength)
}

// DetermineState classifies a filtered value. Empty input is blank, never an
// error.
func (c *PostalCodeConfig) DetermineState(input string) State {
	if input == "" {
		return Blank()
	}

	rule := c.rule
	if rule.valid == nil {
		if strings.TrimSpace(input) == "" {
			return Invalid(rule.invalid)
		}
		return Limitless()
	}

	switch {
	case rule.full.MatchString(input):
		return Full()
	case rule.valid.MatchString(input):
		return Limitless()
	}

	if len(strings.ReplaceAll(input, " ", "")) < rule.minLength {
		return Incomplete(rule.incomplete)
	}
	return Invalid(rule.invalid)
}

// ClassifyPostalCode filters input for country and classifies the result.
func ClassifyPostalCode(country, input string) (string, State) {
	cfg := NewPostalCodeConfig(model.ResolvableString{}, country)
	filtered := cfg.Filter(input)
	return filtered, cfg.DetermineState(filtered)
}
