package render

import (
	"context"

	"github.com/goliatone/go-paymentform/pkg/elements"
	"github.com/goliatone/go-paymentform/pkg/model"
)

// Form is the element tree of one payment method, ready to render.
type Form struct {
	PaymentMethod string
	MerchantName  string
	Elements      []elements.FormElement
}

// Values collects the current submission values of the form.
func (f Form) Values() map[model.IdentifierSpec]model.FormFieldEntry {
	return elements.CollectFormValues(f.Elements)
}

// Identifiers lists the identifiers of every input in the form, descending
// into sections and composite fields.
func (f Form) Identifiers() []model.IdentifierSpec {
	var out []model.IdentifierSpec
	seen := make(map[model.IdentifierSpec]struct{})
	add := func(id model.IdentifierSpec) {
		if id.IsZero() {
			return
		}
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	for _, element := range f.Elements {
		for _, value := range element.FormFieldValues() {
			add(value.Identifier)
		}
	}
	return out
}

// Renderer converts a Form into a byte representation (HTML, terminal output).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form Form, options RenderOptions) ([]byte, error)
}
