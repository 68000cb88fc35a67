package layout

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-paymentform/pkg/spec"
)

// Definition is the decoded layout of one payment method.
type Definition struct {
	PaymentMethod   string
	RequiresMandate bool
	Source          string
	// Raw is the normalized JSON array of form items.
	Raw   json.RawMessage
	Items spec.Layout
}

type definitionFile struct {
	Type            string          `json:"type"`
	RequiresMandate bool            `json:"requires_mandate"`
	Fields          json.RawMessage `json:"fields"`
}

// ToJSON normalizes a JSON or YAML payload to JSON.
func ToJSON(data []byte) ([]byte, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("layout: document is empty")
	}
	if json.Valid(trimmed) {
		return trimmed, nil
	}
	var doc any
	if err := yaml.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("layout: invalid JSON or YAML: %w", err)
	}
	out, err := json.Marshal(normalizeYAML(doc))
	if err != nil {
		return nil, fmt.Errorf("layout: convert YAML: %w", err)
	}
	return out, nil
}

func normalizeYAML(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = normalizeYAML(item)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[fmt.Sprint(key)] = normalizeYAML(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = normalizeYAML(item)
		}
		return out
	default:
		return v
	}
}

// Decode parses a layout document. List-form documents take their payment
// method code from the document's base name.
func Decode(doc Document, opts ...spec.ParseOption) (Definition, error) {
	location := doc.Location()
	data, err := ToJSON(doc.Raw())
	if err != nil {
		return Definition{}, fmt.Errorf("layout: parse %s: %w", location, err)
	}

	def := Definition{Source: location, PaymentMethod: doc.BaseName()}
	switch data[0] {
	case '[':
		def.Raw = data
	case '{':
		var file definitionFile
		if err := json.Unmarshal(data, &file); err != nil {
			return Definition{}, fmt.Errorf("layout: parse %s: %w", location, err)
		}
		if code := strings.TrimSpace(file.Type); code != "" {
			def.PaymentMethod = code
		}
		def.RequiresMandate = file.RequiresMandate
		def.Raw = file.Fields
		if len(bytes.TrimSpace(def.Raw)) == 0 || bytes.Equal(bytes.TrimSpace(def.Raw), []byte("null")) {
			def.Raw = json.RawMessage("[]")
		}
	default:
		return Definition{}, fmt.Errorf("layout: parse %s: expected a list or an object", location)
	}

	if strings.TrimSpace(def.PaymentMethod) == "" {
		return Definition{}, fmt.Errorf("layout: %s does not name a payment method", location)
	}

	items, err := spec.ParseLayout(def.Raw, opts...)
	if err != nil {
		return Definition{}, fmt.Errorf("layout: %s: %w", location, err)
	}
	def.Items = items
	return def, nil
}
