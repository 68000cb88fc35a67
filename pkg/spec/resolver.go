package spec

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Discriminators accepted in the "type" field.
const (
	TypeBillingAddress      = "billing_address"
	TypeAffirmHeader        = "affirm_header"
	TypeAfterpayHeader      = "afterpay_header"
	TypeAuBecsBsbNumber     = "au_becs_bsb_number"
	TypeAuBecsAccountNumber = "au_becs_account_number"
	TypeAuBecsMandate       = "au_becs_mandate"
	TypeCountry             = "country"
	TypeSelector            = "selector"
	TypeEmail               = "email"
	TypeIban                = "iban"
	TypeKlarnaCountry       = "klarna_country"
	TypeKlarnaHeader        = "klarna_header"
	TypeStaticText          = "static_text"
	TypeName                = "name"
	TypeMandate             = "mandate"
	TypeSepaMandate         = "sepa_mandate"
	TypeText                = "text"
	TypePlaceholder         = "placeholder"
)

type decoder func(data []byte) (FormItemSpec, error)

type dispatchEntry struct {
	tag    string
	decode decoder
}

// dispatch is matched in order; the first entry whose tag equals the
// discriminator wins.
var dispatch = []dispatchEntry{
	{TypeBillingAddress, decodeAs[AddressSpec]},
	{TypeAffirmHeader, decodeAs[AffirmTextSpec]},
	{TypeAfterpayHeader, decodeAs[AfterpayClearpayTextSpec]},
	{TypeAuBecsBsbNumber, decodeAs[BsbSpec]},
	{TypeAuBecsAccountNumber, decodeAs[AuBankAccountNumberSpec]},
	{TypeAuBecsMandate, decodeAs[AuBecsDebitMandateTextSpec]},
	{TypeCountry, decodeAs[CountrySpec]},
	{TypeSelector, decodeAs[DropdownSpec]},
	{TypeEmail, decodeAs[EmailSpec]},
	{TypeIban, decodeAs[IbanSpec]},
	{TypeKlarnaCountry, decodeAs[CountrySpec]},
	{TypeKlarnaHeader, decodeAs[KlarnaHeaderStaticTextSpec]},
	{TypeStaticText, decodeAs[StaticTextSpec]},
	{TypeName, decodeAs[NameSpec]},
	{TypeMandate, decodeAs[MandateTextSpec]},
	{TypeSepaMandate, decodeAs[SepaMandateTextSpec]},
	{TypeText, decodeAs[SimpleTextSpec]},
	{TypePlaceholder, decodeAs[PlaceholderSpec]},
}

// Tags returns the recognized discriminators in dispatch order.
func Tags() []string {
	out := make([]string, len(dispatch))
	for i, entry := range dispatch {
		out[i] = entry.tag
	}
	return out
}

// validator is implemented by variants with required fields.
type validator interface {
	validate() error
}

func decodeAs[T FormItemSpec](data []byte) (FormItemSpec, error) {
	var item T
	if err := json.Unmarshal(data, &item); err != nil {
		return nil, err
	}
	if v, ok := any(item).(validator); ok {
		if err := v.validate(); err != nil {
			return nil, err
		}
	}
	return item, nil
}

// Unmarshal resolves a single JSON object into its spec variant.
func Unmarshal(data []byte) (FormItemSpec, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, ErrNotObject
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return nil, fmt.Errorf("spec: decode form item: %w", err)
	}
	return resolve(obj, trimmed)
}

// Resolve selects the variant named by obj["type"] and decodes the sibling
// fields into it. A missing, null, non-string, or unknown type resolves to
// EmptyFormSpec without error.
func Resolve(obj map[string]json.RawMessage) (FormItemSpec, error) {
	if obj == nil {
		return nil, ErrNotObject
	}
	data, err := json.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("spec: encode form item: %w", err)
	}
	return resolve(obj, data)
}

func resolve(obj map[string]json.RawMessage, data []byte) (FormItemSpec, error) {
	tag, ok := discriminator(obj)
	if !ok {
		return EmptyFormSpec{}, nil
	}
	for _, entry := range dispatch {
		if entry.tag != tag {
			continue
		}
		item, err := entry.decode(data)
		if err != nil {
			return nil, fmt.Errorf("spec: decode %q: %w", tag, err)
		}
		return item, nil
	}
	return EmptyFormSpec{UnknownType: tag}, nil
}

func discriminator(obj map[string]json.RawMessage) (string, bool) {
	raw, ok := obj["type"]
	if !ok {
		return "", false
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '"' {
		return "", false
	}
	var tag string
	if err := json.Unmarshal(raw, &tag); err != nil {
		return "", false
	}
	return tag, true
}
