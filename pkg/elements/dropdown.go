package elements

import (
	"github.com/goliatone/go-paymentform/pkg/model"
	"github.com/goliatone/go-paymentform/pkg/observable"
	"github.com/goliatone/go-paymentform/pkg/textfield"
)

// DropdownConfig supplies the entries of a dropdown.
type DropdownConfig interface {
	Label() model.ResolvableString
	// DisplayItems are shown to the user, index aligned with RawItems.
	DisplayItems() []string
	// RawItems are submitted; nil entries submit no value.
	RawItems() []*string
}

// SimpleDropdownConfig is a DropdownConfig over a fixed item list.
type SimpleDropdownConfig struct {
	label model.ResolvableString
	items []model.DropdownItemSpec
}

// NewSimpleDropdownConfig wraps items.
func NewSimpleDropdownConfig(label model.ResolvableString, items []model.DropdownItemSpec) *SimpleDropdownConfig {
	return &SimpleDropdownConfig{label: label, items: append([]model.DropdownItemSpec(nil), items...)}
}

func (c *SimpleDropdownConfig) Label() model.ResolvableString { return c.label }

func (c *SimpleDropdownConfig) DisplayItems() []string {
	out := make([]string, len(c.items))
	for i, item := range c.items {
		out[i] = item.DisplayText
	}
	return out
}

func (c *SimpleDropdownConfig) RawItems() []*string {
	out := make([]*string, len(c.items))
	for i, item := range c.items {
		out[i] = item.APIValue
	}
	return out
}

// DropdownFieldController tracks the selected index of a dropdown. A
// selection of -1 means nothing is selected.
type DropdownFieldController struct {
	config   DropdownConfig
	selected *observable.Value[int]
}

// NewDropdownFieldController selects the item whose raw value equals
// initialValue. Without a match nothing is selected.
func NewDropdownFieldController(cfg DropdownConfig, initialValue *string) *DropdownFieldController {
	c := &DropdownFieldController{config: cfg, selected: observable.New(-1)}
	if initialValue != nil {
		c.OnRawValueChange(*initialValue)
	}
	return c
}

// Config returns the dropdown config.
func (c *DropdownFieldController) Config() DropdownConfig { return c.config }

// Label returns the dropdown caption.
func (c *DropdownFieldController) Label() model.ResolvableString { return c.config.Label() }

// SelectedIndex returns the selection or -1.
func (c *DropdownFieldController) SelectedIndex() int { return c.selected.Get() }

// OnValueChange selects index; out of range indexes clear the selection.
func (c *DropdownFieldController) OnValueChange(index int) {
	if index < 0 || index >= len(c.config.RawItems()) {
		index = -1
	}
	c.selected.Set(index)
}

// OnRawValueChange selects the first item submitting raw. Unknown values
// leave the selection unchanged.
func (c *DropdownFieldController) OnRawValueChange(raw string) {
	for i, item := range c.config.RawItems() {
		if item != nil && *item == raw {
			c.selected.Set(i)
			return
		}
	}
}

// RawValue returns the submitted value of the selection.
func (c *DropdownFieldController) RawValue() *string {
	index := c.selected.Get()
	items := c.config.RawItems()
	if index < 0 || index >= len(items) {
		return nil
	}
	return items[index]
}

// DisplayValue returns the text of the selection.
func (c *DropdownFieldController) DisplayValue() string {
	index := c.selected.Get()
	items := c.config.DisplayItems()
	if index < 0 || index >= len(items) {
		return ""
	}
	return items[index]
}

// FormFieldValue reports the selection. A dropdown is always complete.
func (c *DropdownFieldController) FormFieldValue() model.FormFieldEntry {
	return model.FormFieldEntry{Value: c.RawValue(), IsComplete: true}
}

// Subscribe observes selection changes.
func (c *DropdownFieldController) Subscribe(fn func(int)) func() {
	return c.selected.Subscribe(fn)
}

// SimpleDropdownElement is a dropdown bound to an identifier.
type SimpleDropdownElement struct {
	identifier model.IdentifierSpec
	Controller *DropdownFieldController
}

var _ SectionFieldElement = (*SimpleDropdownElement)(nil)

// NewSimpleDropdownElement binds controller to identifier.
func NewSimpleDropdownElement(identifier model.IdentifierSpec, controller *DropdownFieldController) *SimpleDropdownElement {
	return &SimpleDropdownElement{identifier: identifier, Controller: controller}
}

func (e *SimpleDropdownElement) Identifier() model.IdentifierSpec { return e.identifier }
func (e *SimpleDropdownElement) AllowsUserInteraction() bool      { return true }
func (e *SimpleDropdownElement) Error() *textfield.FieldError     { return nil }

func (e *SimpleDropdownElement) FormFieldValues() []FieldValue {
	return []FieldValue{{Identifier: e.identifier, Entry: e.Controller.FormFieldValue()}}
}

func (e *SimpleDropdownElement) SetRawValue(values map[model.IdentifierSpec]*string) {
	if value, ok := values[e.identifier]; ok && value != nil {
		e.Controller.OnRawValueChange(*value)
	}
}
