package textfield

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/goliatone/go-paymentform/pkg/model"
)

var (
	emailPattern       = regexp.MustCompile(`^[a-zA-Z0-9+._%\-]{1,256}@[a-zA-Z0-9][a-zA-Z0-9\-]{0,64}(\.[a-zA-Z0-9][a-zA-Z0-9\-]{0,25})+$`)
	emailNameAndDomain = regexp.MustCompile(`^.*@.*\..+$`)
)

// EmailConfig validates email addresses.
type EmailConfig struct {
	label model.ResolvableString
}

var _ Config = (*EmailConfig)(nil)

// NewEmailConfig uses the "Email" copy when label is zero.
func NewEmailConfig(label model.ResolvableString) *EmailConfig {
	if label.IsZero() {
		label = model.Translatable(model.TranslationEmail)
	}
	return &EmailConfig{label: label}
}

func (c *EmailConfig) Label() model.ResolvableString        { return c.label }
func (c *EmailConfig) Keyboard() model.KeyboardType          { return model.KeyboardEmail }
func (c *EmailConfig) Capitalization() model.Capitalization { return model.CapitalizationNone }
func (c *EmailConfig) Format(raw string) string              { return raw }

// Filter strips whitespace.
func (c *EmailConfig) Filter(input string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, input)
}

// DetermineState reports addresses still being typed as incomplete and
// addresses that already have a name and domain but do not match as invalid.
func (c *EmailConfig) DetermineState(input string) State {
	switch {
	case input == "":
		return Blank()
	case emailPattern.MatchString(input):
		return Limitless()
	case strings.Count(input, "@") > 1, emailNameAndDomain.MatchString(input):
		return Invalid(model.TranslationEmailInvalid)
	default:
		return Incomplete(model.TranslationEmailIncomplete)
	}
}
