package textfield

import "github.com/goliatone/go-paymentform/pkg/model"

// SimpleConfig accepts free text. Numeric keyboards restrict input to digits.
type SimpleConfig struct {
	label          model.ResolvableString
	keyboard       model.KeyboardType
	capitalization model.Capitalization
}

var _ Config = (*SimpleConfig)(nil)

// NewSimpleConfig builds a free-text config. Empty hints default to a text
// keyboard without capitalisation.
func NewSimpleConfig(label model.ResolvableString, keyboard model.KeyboardType, capitalization model.Capitalization) *SimpleConfig {
	if keyboard == "" {
		keyboard = model.KeyboardText
	}
	if capitalization == "" {
		capitalization = model.CapitalizationNone
	}
	return &SimpleConfig{label: label, keyboard: keyboard, capitalization: capitalization}
}

func (c *SimpleConfig) Label() model.ResolvableString        { return c.label }
func (c *SimpleConfig) Keyboard() model.KeyboardType          { return c.keyboard }
func (c *SimpleConfig) Capitalization() model.Capitalization { return c.capitalization }
func (c *SimpleConfig) Format(raw string) string              { return raw }

// Filter keeps digits for numeric keyboards and passes other input through.
func (c *SimpleConfig) Filter(input string) string {
	if c.keyboard.IsNumeric() {
		return digitsOnly(input)
	}
	return input
}

// DetermineState treats any non-empty value as valid.
func (c *SimpleConfig) DetermineState(input string) State {
	if input == "" {
		return Blank()
	}
	return Limitless()
}
