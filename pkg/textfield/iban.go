package textfield

import (
	"strings"

	"github.com/goliatone/go-paymentform/pkg/model"
)

const (
	ibanMaxLength = 34
	ibanMinLength = 8
)

// ibanLengths lists the fixed IBAN length of common SEPA countries. Other
// countries only get the checksum test.
var ibanLengths = map[string]int{
	"AT": 20, "BE": 16, "CH": 21, "DE": 22, "DK": 18, "ES": 24, "FI": 18,
	"FR": 27, "GB": 22, "IE": 22, "IT": 27, "LU": 20, "NL": 18, "NO": 15,
	"PL": 28, "PT": 25, "SE": 24,
}

// IbanConfig validates International Bank Account Numbers.
type IbanConfig struct {
	label model.ResolvableString
}

var _ Config = (*IbanConfig)(nil)

// NewIbanConfig uses the "IBAN" copy when label is zero.
func NewIbanConfig(label model.ResolvableString) *IbanConfig {
	if label.IsZero() {
		label = model.Translatable(model.TranslationIban)
	}
	return &IbanConfig{label: label}
}

func (c *IbanConfig) Label() model.ResolvableString        { return c.label }
func (c *IbanConfig) Keyboard() model.KeyboardType          { return model.KeyboardASCII }
func (c *IbanConfig) Capitalization() model.Capitalization { return model.CapitalizationCharacters }

// Filter keeps ASCII letters and digits, uppercased, up to 34 characters.
func (c *IbanConfig) Filter(input string) string {
	return truncate(strings.ToUpper(keepRunes(input, isASCIIAlnum)), ibanMaxLength)
}

// Format groups the value in blocks of four.
func (c *IbanConfig) Format(raw string) string {
	var b strings.Builder
	for idx, r := range raw {
		if idx > 0 && idx%4 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// DetermineState checks the country prefix, the country length when known
// and the mod-97 checksum.
func (c *IbanConfig) DetermineState(input string) State {
	if input == "" {
		return Blank()
	}
	for idx, r := range input {
		if idx > 1 {
			break
		}
		if r < 'A' || r > 'Z' {
			return Invalid(model.TranslationIbanCountryPrefix)
		}
	}
	if len(input) < ibanMinLength {
		return Incomplete(model.TranslationIbanIncomplete)
	}

	valid := IbanChecksumValid(input)
	if expected, ok := ibanLengths[input[:2]]; ok {
		switch {
		case len(input) < expected:
			return Incomplete(model.TranslationIbanIncomplete)
		case len(input) == expected && valid:
			return Full()
		default:
			return Invalid(model.TranslationIbanInvalid)
		}
	}

	switch {
	case valid:
		return Limitless()
	case len(input) == ibanMaxLength:
		return Invalid(model.TranslationIbanInvalid)
	default:
		return Incomplete(model.TranslationIbanIncomplete)
	}
}

// IbanChecksumValid applies the ISO 13616 mod-97 check to an uppercase,
// space-free IBAN.
func IbanChecksumValid(iban string) bool {
	if len(iban) < 5 {
		return false
	}
	rearranged := iban[4:] + iban[:4]
	remainder := 0
	for _, r := range rearranged {
		switch {
		case r >= '0' && r <= '9':
			remainder = (remainder*10 + int(r-'0')) % 97
		case r >= 'A' && r <= 'Z':
			remainder = (remainder*100 + int(r-'A') + 10) % 97
		default:
			return false
		}
	}
	return remainder == 1
}
