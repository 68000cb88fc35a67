package elements

import (
	"github.com/goliatone/go-paymentform/pkg/model"
	"github.com/goliatone/go-paymentform/pkg/textfield"
)

// FieldValue pairs an identifier with the entry it reports.
type FieldValue struct {
	Identifier model.IdentifierSpec
	Entry      model.FormFieldEntry
}

// FormElement is a top-level entry of a rendered form.
type FormElement interface {
	Identifier() model.IdentifierSpec
	FormFieldValues() []FieldValue
	AllowsUserInteraction() bool
}

// SectionFieldElement is an input grouped inside a SectionElement.
type SectionFieldElement interface {
	FormElement
	// SetRawValue seeds the element from previously collected values.
	SetRawValue(values map[model.IdentifierSpec]*string)
	// Error returns the first error the element currently reports.
	Error() *textfield.FieldError
}

// CollectFormValues flattens the values of every element. Later elements win
// on identifier collisions.
func CollectFormValues(elements []FormElement) map[model.IdentifierSpec]model.FormFieldEntry {
	out := make(map[model.IdentifierSpec]model.FormFieldEntry)
	for _, element := range elements {
		if element == nil {
			continue
		}
		for _, value := range element.FormFieldValues() {
			out[value.Identifier] = value.Entry
		}
	}
	return out
}

// IsComplete reports whether every reported entry is complete.
func IsComplete(elements []FormElement) bool {
	for _, entry := range CollectFormValues(elements) {
		if !entry.IsComplete {
			return false
		}
	}
	return true
}

// Walk visits every section field of the supplied elements in order,
// descending into sections and composite fields.
func Walk(elements []FormElement, visit func(parent FormElement, field SectionFieldElement)) {
	for _, element := range elements {
		section, ok := element.(*SectionElement)
		if !ok {
			continue
		}
		for _, field := range section.Fields {
			if composite, ok := field.(interface{ Children() []SectionFieldElement }); ok {
				for _, child := range composite.Children() {
					visit(section, child)
				}
				continue
			}
			visit(section, field)
		}
	}
}
