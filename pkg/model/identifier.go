package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// IdentifierSpec is the stable API path of a form field. It doubles as the key
// of the field's value in the submission payload.
type IdentifierSpec string

// Well-known identifiers used by the built-in specifications.
const (
	IdentifierName       IdentifierSpec = "billing_details[name]"
	IdentifierEmail      IdentifierSpec = "billing_details[email]"
	IdentifierPhone      IdentifierSpec = "billing_details[phone]"
	IdentifierAddress    IdentifierSpec = "billing_details[address]"
	IdentifierLine1      IdentifierSpec = "billing_details[address][line1]"
	IdentifierLine2      IdentifierSpec = "billing_details[address][line2]"
	IdentifierCity       IdentifierSpec = "billing_details[address][city]"
	IdentifierState      IdentifierSpec = "billing_details[address][state]"
	IdentifierPostalCode IdentifierSpec = "billing_details[address][postal_code]"
	IdentifierCountry    IdentifierSpec = "billing_details[address][country]"

	IdentifierIban            IdentifierSpec = "sepa_debit[iban]"
	IdentifierBsbNumber       IdentifierSpec = "au_becs_debit[bsb_number]"
	IdentifierAuAccountNumber IdentifierSpec = "au_becs_debit[account_number]"

	IdentifierSaveForFutureUse          IdentifierSpec = "save_for_future_use"
	IdentifierSetAsDefaultPaymentMethod IdentifierSpec = "set_as_default_payment_method"

	IdentifierEmpty IdentifierSpec = "empty_form"
)

// Generic wraps an arbitrary API path.
func Generic(path string) IdentifierSpec {
	return IdentifierSpec(strings.TrimSpace(path))
}

// String returns the raw API path.
func (id IdentifierSpec) String() string {
	return string(id)
}

// IsZero reports whether the identifier is unset.
func (id IdentifierSpec) IsZero() bool {
	return strings.TrimSpace(string(id)) == ""
}

// Section returns the identifier used for the section wrapping this field.
func (id IdentifierSpec) Section() IdentifierSpec {
	return IdentifierSpec(string(id) + "_section")
}

// Segments splits the bracketed path into its parameter names, so
// "billing_details[address][city]" yields [billing_details address city].
func (id IdentifierSpec) Segments() []string {
	raw := strings.TrimSpace(string(id))
	if raw == "" {
		return nil
	}
	raw = strings.ReplaceAll(raw, "]", "")
	parts := strings.Split(raw, "[")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// IdentifierFromSegments joins parameter names back into bracketed form.
func IdentifierFromSegments(segments ...string) IdentifierSpec {
	var b strings.Builder
	for idx, segment := range segments {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		if idx == 0 || b.Len() == 0 {
			b.WriteString(segment)
			continue
		}
		b.WriteString("[")
		b.WriteString(segment)
		b.WriteString("]")
	}
	return IdentifierSpec(b.String())
}

// UnmarshalJSON accepts both the plain string form and the object form
// {"v1": "billing_details[name]"} served by the remote schema.
func (id *IdentifierSpec) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*id = ""
		return nil
	}

	switch trimmed[0] {
	case '"':
		var raw string
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return err
		}
		*id = Generic(raw)
		return nil
	case '{':
		var obj struct {
			V1 string `json:"v1"`
		}
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return err
		}
		*id = Generic(obj.V1)
		return nil
	default:
		return fmt.Errorf("model: api_path must be a string or an object with v1, got %s", string(trimmed))
	}
}
