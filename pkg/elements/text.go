package elements

import (
	"github.com/goliatone/go-paymentform/pkg/model"
	"github.com/goliatone/go-paymentform/pkg/observable"
	"github.com/goliatone/go-paymentform/pkg/textfield"
)

// TextFieldController binds a textfield.Config to the field's raw value.
type TextFieldController struct {
	config   *observable.Value[textfield.Config]
	value    *observable.Value[string]
	optional bool
}

// NewTextFieldController seeds the controller with the filtered initial value.
func NewTextFieldController(cfg textfield.Config, initialValue *string, optional bool) *TextFieldController {
	c := &TextFieldController{
		config:   observable.New(cfg),
		value:    observable.New(""),
		optional: optional,
	}
	if initialValue != nil {
		c.OnValueChange(*initialValue)
	}
	return c
}

// Config returns the active config.
func (c *TextFieldController) Config() textfield.Config { return c.config.Get() }

// SetConfig swaps the config and re-filters the current value, as happens
// when an address changes country.
func (c *TextFieldController) SetConfig(cfg textfield.Config) {
	if cfg == nil {
		return
	}
	c.config.Set(cfg)
	c.value.Set(cfg.Filter(c.value.Get()))
}

// OnValueChange filters and stores user input.
func (c *TextFieldController) OnValueChange(input string) {
	c.value.Set(c.Config().Filter(input))
}

// RawValue returns the filtered value.
func (c *TextFieldController) RawValue() string { return c.value.Get() }

// DisplayValue returns the value formatted for display.
func (c *TextFieldController) DisplayValue() string {
	return c.Config().Format(c.value.Get())
}

// State classifies the current value.
func (c *TextFieldController) State() textfield.State {
	return c.Config().DetermineState(c.value.Get())
}

// Optional reports whether a blank value is acceptable.
func (c *TextFieldController) Optional() bool { return c.optional }

// Label returns the caption, marked optional when applicable.
func (c *TextFieldController) Label() model.ResolvableString {
	label := c.Config().Label()
	if !c.optional {
		return label
	}
	return model.Translatable(model.TranslationOptional, label)
}

// Error returns the current error, if any.
func (c *TextFieldController) Error() *textfield.FieldError {
	return c.State().Error()
}

// FormFieldValue reports the value; blank values submit nothing.
func (c *TextFieldController) FormFieldValue() model.FormFieldEntry {
	state := c.State()
	entry := model.FormFieldEntry{IsComplete: state.IsValid() || (c.optional && state.IsBlank())}
	if raw := c.value.Get(); raw != "" {
		entry.Value = model.StringPtr(raw)
	}
	return entry
}

// Subscribe observes value changes.
func (c *TextFieldController) Subscribe(fn func(string)) func() {
	return c.value.Subscribe(fn)
}

// TextFieldElement is a single text input.
type TextFieldElement struct {
	identifier model.IdentifierSpec
	Controller *TextFieldController
}

var _ SectionFieldElement = (*TextFieldElement)(nil)

// NewTextFieldElement binds a controller to identifier.
func NewTextFieldElement(identifier model.IdentifierSpec, controller *TextFieldController) *TextFieldElement {
	return &TextFieldElement{identifier: identifier, Controller: controller}
}

func (e *TextFieldElement) Identifier() model.IdentifierSpec { return e.identifier }
func (e *TextFieldElement) AllowsUserInteraction() bool      { return true }
func (e *TextFieldElement) Error() *textfield.FieldError     { return e.Controller.Error() }

// FormFieldValues implements FormElement.
func (e *TextFieldElement) FormFieldValues() []FieldValue {
	return []FieldValue{{Identifier: e.identifier, Entry: e.Controller.FormFieldValue()}}
}

// SetRawValue implements SectionFieldElement.
func (e *TextFieldElement) SetRawValue(values map[model.IdentifierSpec]*string) {
	if value, ok := values[e.identifier]; ok && value != nil {
		e.Controller.OnValueChange(*value)
	}
}
