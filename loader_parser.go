package paymentform

import (
	internalLoader "github.com/goliatone/go-paymentform/internal/layout/loader"
	"github.com/goliatone/go-paymentform/pkg/layout"
	"github.com/goliatone/go-paymentform/pkg/spec"
	"github.com/goliatone/go-paymentform/pkg/textfield"
)

// NewLoader constructs a loader using the internal implementation while keeping
// the concrete type hidden from consumers.
func NewLoader(options ...layout.LoaderOption) layout.Loader {
	cfg := layout.NewLoaderOptions(options...)
	return internalLoader.New(cfg)
}

// ParseLayout decodes a JSON array of form items.
func ParseLayout(data []byte, options ...spec.ParseOption) (spec.Layout, error) {
	return spec.ParseLayout(data, options...)
}

// ResolveFormItem decodes a single form item object into its concrete spec.
func ResolveFormItem(data []byte) (spec.FormItemSpec, error) {
	return spec.Unmarshal(data)
}

// ClassifyPostalCode filters input for country and reports its validation
// state.
func ClassifyPostalCode(country, input string) (string, textfield.State) {
	return textfield.ClassifyPostalCode(country, input)
}
