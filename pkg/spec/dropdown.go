package spec

import (
	"github.com/goliatone/go-paymentform/pkg/elements"
	"github.com/goliatone/go-paymentform/pkg/model"
)

// DropdownSpec is a generic selector over server-provided items.
type DropdownSpec struct {
	Path          model.IdentifierSpec     `json:"api_path"`
	TranslationID model.TranslationID      `json:"translation_id"`
	Items         []model.DropdownItemSpec `json:"items"`
}

func (s DropdownSpec) APIPath() model.IdentifierSpec { return s.Path }
func (DropdownSpec) Type() string                    { return TypeSelector }
func (DropdownSpec) formItemSpec()                   {}

func (s DropdownSpec) validate() error {
	if s.Path.IsZero() {
		return ErrMissingAPIPath
	}
	return nil
}

// Transform wraps a dropdown whose selection starts at the item matching the
// initial value for the api path, or no selection.
func (s DropdownSpec) Transform(ctx TransformContext) elements.FormElement {
	cfg := elements.NewSimpleDropdownConfig(model.Translatable(s.TranslationID), s.Items)
	controller := elements.NewDropdownFieldController(cfg, ctx.initial(s.Path))
	return elements.Wrap(elements.NewSimpleDropdownElement(s.Path, controller), nil)
}
