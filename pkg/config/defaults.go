package config

import (
	"strings"

	"github.com/goliatone/go-paymentform/pkg/model"
)

// InitialValues maps the default billing details onto form identifiers so
// they can seed the fields of a form. Blank entries are skipped.
func (b *BillingDetails) InitialValues() map[model.IdentifierSpec]*string {
	if b == nil {
		return nil
	}
	out := make(map[model.IdentifierSpec]*string)
	set := func(id model.IdentifierSpec, value string) {
		if strings.TrimSpace(value) != "" {
			out[id] = model.StringPtr(value)
		}
	}
	set(model.IdentifierName, b.Name)
	set(model.IdentifierEmail, b.Email)
	set(model.IdentifierPhone, b.Phone)
	if a := b.Address; a != nil {
		set(model.IdentifierLine1, a.Line1)
		set(model.IdentifierLine2, a.Line2)
		set(model.IdentifierCity, a.City)
		set(model.IdentifierState, a.State)
		set(model.IdentifierPostalCode, a.PostalCode)
		set(model.IdentifierCountry, strings.ToUpper(a.Country))
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
