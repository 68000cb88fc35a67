package spec

import (
	"encoding/json"

	"github.com/goliatone/go-paymentform/pkg/elements"
	"github.com/goliatone/go-paymentform/pkg/model"
)

// PlaceholderField names the billing detail a placeholder stands for.
type PlaceholderField string

const (
	PlaceholderName                         PlaceholderField = "name"
	PlaceholderEmail                        PlaceholderField = "email"
	PlaceholderPhone                        PlaceholderField = "phone"
	PlaceholderBillingAddress               PlaceholderField = "billing_address"
	PlaceholderBillingAddressWithoutCountry PlaceholderField = "billing_address_without_country"
	PlaceholderSepaMandate                  PlaceholderField = "sepa_mandate"
	PlaceholderUnknown                      PlaceholderField = "unknown"
)

// UnmarshalJSON maps unrecognized fields to PlaceholderUnknown.
func (f *PlaceholderField) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch field := PlaceholderField(raw); field {
	case PlaceholderName, PlaceholderEmail, PlaceholderPhone, PlaceholderBillingAddress,
		PlaceholderBillingAddressWithoutCountry, PlaceholderSepaMandate:
		*f = field
	default:
		*f = PlaceholderUnknown
	}
	return nil
}

// PlaceholderSpec marks where a billing detail goes if the collection
// configuration asks for it. It is replaced by ExpandPlaceholders.
type PlaceholderSpec struct {
	Path  model.IdentifierSpec `json:"api_path,omitempty"`
	Field PlaceholderField     `json:"for"`
}

func (s PlaceholderSpec) APIPath() model.IdentifierSpec {
	return pathOr(s.Path, model.Generic("placeholder"))
}
func (PlaceholderSpec) Type() string  { return TypePlaceholder }
func (PlaceholderSpec) formItemSpec() {}

// Transform renders nothing; placeholders are expanded before transforming.
func (PlaceholderSpec) Transform(TransformContext) elements.FormElement { return nil }

// EmptyFormSpec is the no-op variant for unrecognized items.
type EmptyFormSpec struct {
	// UnknownType is the discriminator that was not recognized, if any.
	UnknownType string `json:"-"`
}

func (EmptyFormSpec) APIPath() model.IdentifierSpec { return model.IdentifierEmpty }
func (EmptyFormSpec) Type() string                  { return "" }
func (EmptyFormSpec) formItemSpec()                 {}

// Transform renders nothing.
func (EmptyFormSpec) Transform(TransformContext) elements.FormElement { return nil }
