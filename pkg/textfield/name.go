package textfield

import (
	"strings"
	"unicode"

	"github.com/goliatone/go-paymentform/pkg/model"
)

// NameConfig collects a person's or account holder's name.
type NameConfig struct {
	label model.ResolvableString
}

var _ Config = (*NameConfig)(nil)

// NewNameConfig uses the "Full name" copy when label is zero.
func NewNameConfig(label model.ResolvableString) *NameConfig {
	if label.IsZero() {
		label = model.Translatable(model.TranslationAddressName)
	}
	return &NameConfig{label: label}
}

func (c *NameConfig) Label() model.ResolvableString        { return c.label }
func (c *NameConfig) Keyboard() model.KeyboardType          { return model.KeyboardText }
func (c *NameConfig) Capitalization() model.Capitalization { return model.CapitalizationWords }
func (c *NameConfig) Format(raw string) string              { return raw }

// Filter keeps letters, spaces and the punctuation names commonly carry.
func (c *NameConfig) Filter(input string) string {
	return keepRunes(input, func(r rune) bool {
		return unicode.IsLetter(r) || r == ' ' || r == '-' || r == '\'' || r == '.'
	})
}

// DetermineState requires at least one non-space character.
func (c *NameConfig) DetermineState(input string) State {
	if input == "" {
		return Blank()
	}
	if strings.TrimSpace(input) == "" {
		return Incomplete(model.TranslationAddressName)
	}
	return Limitless()
}
