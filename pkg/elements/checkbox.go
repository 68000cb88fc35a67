package elements

import (
	"strconv"

	"github.com/goliatone/go-paymentform/pkg/model"
	"github.com/goliatone/go-paymentform/pkg/observable"
	"github.com/goliatone/go-paymentform/pkg/textfield"
)

// CheckboxController tracks a checked flag and whether the box is shown.
type CheckboxController struct {
	label   model.ResolvableString
	checked *observable.Value[bool]
	shown   *observable.Value[bool]
}

// NewCheckboxController seeds the controller.
func NewCheckboxController(label model.ResolvableString, checked bool) *CheckboxController {
	return &CheckboxController{
		label:   label,
		checked: observable.New(checked),
		shown:   observable.New(true),
	}
}

func (c *CheckboxController) Label() model.ResolvableString { return c.label }
func (c *CheckboxController) Checked() bool                 { return c.checked.Get() }
func (c *CheckboxController) OnValueChange(checked bool)    { c.checked.Set(checked) }
func (c *CheckboxController) Shown() bool                   { return c.shown.Get() }
func (c *CheckboxController) SetShown(shown bool)           { c.shown.Set(shown) }

// Subscribe observes the checked flag.
func (c *CheckboxController) Subscribe(fn func(bool)) func() {
	return c.checked.Subscribe(fn)
}

// FormFieldValue reports "true" or "false". Hidden boxes report false.
func (c *CheckboxController) FormFieldValue() model.FormFieldEntry {
	checked := c.checked.Get() && c.shown.Get()
	return model.FormFieldEntry{Value: model.StringPtr(strconv.FormatBool(checked)), IsComplete: true}
}

// CheckboxElement is a boolean input such as "save for future use" or
// "set as default payment method".
type CheckboxElement struct {
	identifier model.IdentifierSpec
	Controller *CheckboxController
}

var _ SectionFieldElement = (*CheckboxElement)(nil)

// NewSaveForFutureUseElement builds the save-for-future-use checkbox.
func NewSaveForFutureUseElement(merchantName string, initial bool) *CheckboxElement {
	return &CheckboxElement{
		identifier: model.IdentifierSaveForFutureUse,
		Controller: NewCheckboxController(model.Translatable(model.TranslationSaveForFutureUse, merchantName), initial),
	}
}

// NewSetAsDefaultPaymentMethodElement builds the set-as-default checkbox. It
// starts hidden until shown is toggled on.
func NewSetAsDefaultPaymentMethodElement(initial, shown bool) *CheckboxElement {
	controller := NewCheckboxController(model.Translatable(model.TranslationSetAsDefault), initial)
	controller.SetShown(shown)
	return &CheckboxElement{identifier: model.IdentifierSetAsDefaultPaymentMethod, Controller: controller}
}

func (e *CheckboxElement) Identifier() model.IdentifierSpec { return e.identifier }
func (e *CheckboxElement) AllowsUserInteraction() bool      { return e.Controller.Shown() }
func (e *CheckboxElement) Error() *textfield.FieldError     { return nil }

func (e *CheckboxElement) FormFieldValues() []FieldValue {
	return []FieldValue{{Identifier: e.identifier, Entry: e.Controller.FormFieldValue()}}
}

func (e *CheckboxElement) SetRawValue(values map[model.IdentifierSpec]*string) {
	value, ok := values[e.identifier]
	if !ok || value == nil {
		return
	}
	if checked, err := strconv.ParseBool(*value); err == nil {
		e.Controller.OnValueChange(checked)
	}
}
