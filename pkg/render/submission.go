package render

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-paymentform/pkg/model"
)

// Well-known hidden field names.
const (
	ClientSessionIDField   = "client_attribution_metadata[client_session_id]"
	PaymentMethodTypeField = "payment_method_data[type]"
)

// HiddenField represents a value submitted alongside the visible inputs.
type HiddenField struct {
	Name  string
	Value string
}

// Hidden returns a HiddenField for an arbitrary name/value pair.
func Hidden(name string, value any) HiddenField {
	return HiddenField{
		Name:  strings.TrimSpace(name),
		Value: fmt.Sprint(value),
	}
}

// ClientSessionID attributes the submission to a client session. A nil id
// generates a random one.
func ClientSessionID(id uuid.UUID) HiddenField {
	if id == uuid.Nil {
		id = uuid.New()
	}
	return Hidden(ClientSessionIDField, id.String())
}

// PaymentMethodType names the payment method being created.
func PaymentMethodType(code string) HiddenField {
	return Hidden(PaymentMethodTypeField, strings.TrimSpace(code))
}

// MergeHiddenFields returns a copy of base with the provided fields applied.
// Empty names are ignored; later fields win on name collisions.
func MergeHiddenFields(base map[string]string, fields ...HiddenField) map[string]string {
	if len(base) == 0 && len(fields) == 0 {
		return nil
	}
	out := make(map[string]string, len(base)+len(fields))
	for key, value := range base {
		if trimmed := strings.TrimSpace(key); trimmed != "" {
			out[trimmed] = value
		}
	}
	for _, field := range fields {
		if name := strings.TrimSpace(field.Name); name != "" {
			out[name] = field.Value
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// SortedHiddenFields sorts hidden fields by name for deterministic output.
func SortedHiddenFields(fields map[string]string) []HiddenField {
	names := make([]string, 0, len(fields))
	for name := range fields {
		if strings.TrimSpace(name) != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil
	}
	sort.Strings(names)
	out := make([]HiddenField, 0, len(names))
	for _, name := range names {
		out = append(out, HiddenField{Name: strings.TrimSpace(name), Value: fields[name]})
	}
	return out
}

// Params is a nested parameter map built from bracketed identifiers, so
// "billing_details[address][city]" lands at
// params["billing_details"]["address"]["city"].
type Params map[string]any

// EncodeParams nests the submitted values and hidden fields. Entries without
// a value are skipped. When a path is both a leaf and a parent, the parent
// wins.
func EncodeParams(values map[model.IdentifierSpec]model.FormFieldEntry, hidden map[string]string) Params {
	flat := make(map[string]string, len(values)+len(hidden))
	for id, entry := range values {
		if entry.Value != nil && !id.IsZero() {
			flat[id.String()] = *entry.Value
		}
	}
	for name, value := range hidden {
		if name = strings.TrimSpace(name); name != "" {
			flat[name] = value
		}
	}

	keys := make([]string, 0, len(flat))
	for key := range flat {
		keys = append(keys, key)
	}
	// Longer paths first so parents are created before conflicting leaves.
	sort.Slice(keys, func(i, j int) bool {
		si, sj := len(model.IdentifierSpec(keys[i]).Segments()), len(model.IdentifierSpec(keys[j]).Segments())
		if si != sj {
			return si > sj
		}
		return keys[i] < keys[j]
	})

	params := Params{}
	for _, key := range keys {
		params.set(model.IdentifierSpec(key).Segments(), flat[key])
	}
	return params
}

func (p Params) set(segments []string, value string) {
	if len(segments) == 0 {
		return
	}
	current := p
	for _, segment := range segments[:len(segments)-1] {
		next, ok := current[segment].(Params)
		if !ok {
			if _, leaf := current[segment]; leaf {
				return
			}
			next = Params{}
			current[segment] = next
		}
		current = next
	}
	last := segments[len(segments)-1]
	if _, exists := current[last]; exists {
		return
	}
	current[last] = value
}

// URLValues flattens the params back into bracketed form keys.
func (p Params) URLValues() url.Values {
	out := url.Values{}
	p.flatten("", out)
	return out
}

// Encode returns the form-urlencoded payload with sorted keys.
func (p Params) Encode() string {
	return p.URLValues().Encode()
}

func (p Params) flatten(prefix string, out url.Values) {
	for key, value := range p {
		name := key
		if prefix != "" {
			name = prefix + "[" + key + "]"
		}
		switch v := value.(type) {
		case Params:
			v.flatten(name, out)
		case string:
			out.Set(name, v)
		}
	}
}
