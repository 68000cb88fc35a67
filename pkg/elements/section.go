package elements

import (
	"github.com/goliatone/go-paymentform/pkg/model"
	"github.com/goliatone/go-paymentform/pkg/textfield"
)

// SectionElement groups one or more fields under an optional label.
type SectionElement struct {
	identifier model.IdentifierSpec
	Fields     []SectionFieldElement
	Label      *model.ResolvableString
}

var _ FormElement = (*SectionElement)(nil)

// Wrap places a single field in its own section, identified by the field's
// identifier with a "_section" suffix.
func Wrap(field SectionFieldElement, label *model.ResolvableString) *SectionElement {
	return WrapAll([]SectionFieldElement{field}, label)
}

// WrapAll places fields in one section identified after the first field.
func WrapAll(fields []SectionFieldElement, label *model.ResolvableString) *SectionElement {
	section := &SectionElement{Label: label}
	for _, field := range fields {
		if field != nil {
			section.Fields = append(section.Fields, field)
		}
	}
	if len(section.Fields) > 0 {
		section.identifier = section.Fields[0].Identifier().Section()
	}
	return section
}

// Identifier implements FormElement.
func (s *SectionElement) Identifier() model.IdentifierSpec { return s.identifier }

// FormFieldValues concatenates the values of every field.
func (s *SectionElement) FormFieldValues() []FieldValue {
	var out []FieldValue
	for _, field := range s.Fields {
		out = append(out, field.FormFieldValues()...)
	}
	return out
}

// AllowsUserInteraction reports whether any field accepts input.
func (s *SectionElement) AllowsUserInteraction() bool {
	for _, field := range s.Fields {
		if field.AllowsUserInteraction() {
			return true
		}
	}
	return false
}

// SetRawValue forwards values to every field.
func (s *SectionElement) SetRawValue(values map[model.IdentifierSpec]*string) {
	for _, field := range s.Fields {
		field.SetRawValue(values)
	}
}

// Error returns the first field error.
func (s *SectionElement) Error() *textfield.FieldError {
	for _, field := range s.Fields {
		if err := field.Error(); err != nil {
			return err
		}
	}
	return nil
}
