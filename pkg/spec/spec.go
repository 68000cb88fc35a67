package spec

import (
	"errors"

	"github.com/goliatone/go-paymentform/pkg/elements"
	"github.com/goliatone/go-paymentform/pkg/model"
)

var (
	// ErrNotObject indicates a form item that is not a JSON object.
	ErrNotObject = errors.New("spec: form item is not a JSON object")
	// ErrMissingAPIPath indicates a variant that requires an api_path.
	ErrMissingAPIPath = errors.New("spec: api_path is required")
)

// FormItemSpec is one entry of a server-driven form. The set of variants is
// closed; see the dispatch table in resolver.go.
type FormItemSpec interface {
	// APIPath is the identifier the item submits under.
	APIPath() model.IdentifierSpec
	// Type is the discriminator the item resolves from.
	Type() string
	// Transform builds the element for the item, or nil for items that
	// render nothing.
	Transform(ctx TransformContext) elements.FormElement

	formItemSpec()
}

// TransformContext carries the inputs a spec needs to build its element.
type TransformContext struct {
	// InitialValues seeds fields by identifier.
	InitialValues map[model.IdentifierSpec]*string
	// MerchantName is interpolated into mandate copy.
	MerchantName string
	// Amount is quoted by installment headers.
	Amount *model.Amount
	// Country is the billing country used by installment headers.
	Country string
	// SaveForFutureUse appends the save-for-future-use checkbox when set.
	SaveForFutureUse *bool
	// ShowSetAsDefault appends the set-as-default checkbox when set.
	ShowSetAsDefault *bool
}

func (c TransformContext) initial(id model.IdentifierSpec) *string {
	if c.InitialValues == nil {
		return nil
	}
	return c.InitialValues[id]
}

func pathOr(path, fallback model.IdentifierSpec) model.IdentifierSpec {
	if path.IsZero() {
		return fallback
	}
	return path
}
