// Package layout loads payment method form layouts.
//
// A layout file holds the form items of one payment method, either as a bare
// JSON/YAML list (the payment method code is taken from the file name) or as
// an object:
//
//	{"type": "sepa_debit", "requires_mandate": true, "fields": [...]}
//
// YAML is converted to JSON before resolution so pkg/spec stays the only
// decoding path for form items.
package layout
