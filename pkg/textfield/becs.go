package textfield

import (
	"sort"

	"github.com/goliatone/go-paymentform/pkg/model"
)

const (
	bsbLength              = 6
	auAccountNumberMin     = 5
	auAccountNumberMaxSize = 9
)

// bsbBanks maps BSB prefixes to institutions. Longer prefixes win.
var bsbBanks = map[string]string{
	"00":  "Stripe Test Bank",
	"01":  "ANZ",
	"03":  "Westpac",
	"04":  "Westpac",
	"06":  "Commonwealth Bank",
	"08":  "National Australia Bank",
	"09":  "Reserve Bank of Australia",
	"10":  "BankSA",
	"11":  "St George Bank",
	"12":  "Bank of Queensland",
	"14":  "Rabobank",
	"15":  "Town & Country Bank",
	"18":  "Macquarie Bank",
	"19":  "Bank of Melbourne",
	"21":  "JP Morgan Chase Bank",
	"22":  "BNP Paribas",
	"23":  "Bank of America",
	"24":  "Citibank",
	"25":  "BNP Paribas",
	"29":  "MUFG Bank",
	"30":  "Bankwest",
	"33":  "St George Bank",
	"34":  "HSBC",
	"35":  "Bank of China",
	"40":  "Commonwealth Bank",
	"41":  "Deutsche Bank",
	"42":  "Commonwealth Bank",
	"48":  "Suncorp-Metway",
	"55":  "Bank of Melbourne",
	"57":  "Australian Settlements",
	"61":  "Adelaide Bank",
	"633": "Bendigo Bank",
	"70":  "Indue",
	"73":  "Westpac",
	"76":  "Commonwealth Bank",
	"78":  "National Australia Bank",
	"80":  "Cuscal",
}

var bsbPrefixes = func() []string {
	out := make([]string, 0, len(bsbBanks))
	for prefix := range bsbBanks {
		out = append(out, prefix)
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) > len(out[j])
		}
		return out[i] < out[j]
	})
	return out
}()

// BsbBankName returns the institution for a BSB, matching the longest known
// prefix.
func BsbBankName(bsb string) (string, bool) {
	for _, prefix := range bsbPrefixes {
		if len(bsb) >= len(prefix) && bsb[:len(prefix)] == prefix {
			return bsbBanks[prefix], true
		}
	}
	return "", false
}

// BsbConfig validates Australian bank state branch numbers.
type BsbConfig struct {
	label model.ResolvableString
}

var _ Config = (*BsbConfig)(nil)

// NewBsbConfig uses the "BSB" copy when label is zero.
func NewBsbConfig(label model.ResolvableString) *BsbConfig {
	if label.IsZero() {
		label = model.Translatable(model.TranslationAuBecsBsbNumber)
	}
	return &BsbConfig{label: label}
}

func (c *BsbConfig) Label() model.ResolvableString        { return c.label }
func (c *BsbConfig) Keyboard() model.KeyboardType          { return model.KeyboardNumber }
func (c *BsbConfig) Capitalization() model.Capitalization { return model.CapitalizationNone }

// Filter keeps up to six digits.
func (c *BsbConfig) Filter(input string) string {
	return truncate(digitsOnly(input), bsbLength)
}

// Format renders "000-000".
func (c *BsbConfig) Format(raw string) string {
	if len(raw) <= 3 {
		return raw
	}
	return raw[:3] + "-" + raw[3:]
}

// DetermineState requires six digits with a known bank prefix.
func (c *BsbConfig) DetermineState(input string) State {
	switch {
	case input == "":
		return Blank()
	case len(input) < bsbLength:
		return Incomplete(model.TranslationBsbIncomplete)
	}
	if _, ok := BsbBankName(input); !ok {
		return Invalid(model.TranslationBsbInvalid)
	}
	return Full()
}

// AuBankAccountNumberConfig validates Australian account numbers.
type AuBankAccountNumberConfig struct {
	label model.ResolvableString
}

var _ Config = (*AuBankAccountNumberConfig)(nil)

// NewAuBankAccountNumberConfig uses the "Account number" copy when label is
// zero.
func NewAuBankAccountNumberConfig(label model.ResolvableString) *AuBankAccountNumberConfig {
	if label.IsZero() {
		label = model.Translatable(model.TranslationAuBecsAccount)
	}
	return &AuBankAccountNumberConfig{label: label}
}

func (c *AuBankAccountNumberConfig) Label() model.ResolvableString        { return c.label }
func (c *AuBankAccountNumberConfig) Keyboard() model.KeyboardType          { return model.KeyboardNumber }
func (c *AuBankAccountNumberConfig) Capitalization() model.Capitalization { return model.CapitalizationNone }
func (c *AuBankAccountNumberConfig) Format(raw string) string              { return raw }

// Filter keeps up to nine digits.
func (c *AuBankAccountNumberConfig) Filter(input string) string {
	return truncate(digitsOnly(input), auAccountNumberMaxSize)
}

// DetermineState accepts five to nine digits.
func (c *AuBankAccountNumberConfig) DetermineState(input string) State {
	switch {
	case input == "":
		return Blank()
	case len(input) < auAccountNumberMin:
		return Incomplete(model.TranslationAuAccountShort)
	case len(input) == auAccountNumberMaxSize:
		return Full()
	default:
		return Limitless()
	}
}
