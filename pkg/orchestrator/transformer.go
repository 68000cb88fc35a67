package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/goliatone/go-paymentform/pkg/elements"
	"github.com/goliatone/go-paymentform/pkg/layout"
	"github.com/goliatone/go-paymentform/pkg/model"
	"github.com/goliatone/go-paymentform/pkg/render"
)

// Transformer mutates a built form before it is rendered. Implementations can
// seed values, drop elements, or perform arbitrary rewrites.
type Transformer interface {
	Transform(ctx context.Context, form *render.Form) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, form *render.Form) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, form *render.Form) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, form)
}

// PresetTransformer applies declarative overrides loaded from a JSON or YAML
// document:
//
//	{
//	  "values": {"billing_details[address][country]": "FR"},
//	  "fields": [],
//	  "drop": ["billing_details[phone]"]
//	}
//
// Fields and drop filter top-level elements (see render.ApplySubset). Values
// are applied through the elements so dependent fields (such as the
// postal code following the country) stay consistent.
type PresetTransformer struct {
	document presetDocument
}

type presetDocument struct {
	Values map[string]string `json:"values"`
	Fields []string          `json:"fields"`
	Drop   []string          `json:"drop"`
}

// NewPresetTransformer constructs a transformer from raw JSON or YAML bytes.
func NewPresetTransformer(data []byte) (*PresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("preset transformer: document is empty")
	}
	normalized, err := layout.ToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("preset transformer: parse document: %w", err)
	}
	var document presetDocument
	if err := json.Unmarshal(normalized, &document); err != nil {
		return nil, fmt.Errorf("preset transformer: parse document: %w", err)
	}
	return &PresetTransformer{document: document}, nil
}

// NewPresetTransformerFromFS loads a preset document from the provided
// filesystem path.
func NewPresetTransformerFromFS(fsys fs.FS, path string) (*PresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("preset transformer: read %s: %w", path, err)
	}
	return NewPresetTransformer(data)
}

// Transform filters the form elements and seeds the preset values.
func (t *PresetTransformer) Transform(ctx context.Context, form *render.Form) error {
	if form == nil {
		return errors.New("preset transformer: form is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	render.ApplySubset(form, render.FieldSubset{
		Include: t.document.Fields,
		Exclude: t.document.Drop,
	})

	if len(t.document.Values) == 0 {
		return nil
	}
	values := make(map[model.IdentifierSpec]*string, len(t.document.Values))
	for key, value := range t.document.Values {
		values[model.Generic(key)] = model.StringPtr(value)
	}
	known := make(map[model.IdentifierSpec]struct{})
	for _, element := range form.Elements {
		for _, value := range element.FormFieldValues() {
			known[value.Identifier] = struct{}{}
		}
		if field, ok := element.(elements.SectionFieldElement); ok {
			field.SetRawValue(values)
		}
	}
	for id := range values {
		if _, ok := known[id]; !ok {
			return fmt.Errorf("preset transformer: field %q not found", id)
		}
	}
	return nil
}
