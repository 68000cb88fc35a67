// Package spec resolves server-provided form item specifications.
//
// A layout is a JSON array of objects, each carrying a "type" discriminator
// and variant-specific sibling fields:
//
//	[
//	  {"type": "name", "api_path": {"v1": "billing_details[name]"}},
//	  {"type": "selector", "api_path": {"v1": "ideal[bank]"},
//	   "translation_id": "upe.labels.ideal.bank",
//	   "items": [{"api_value": "abn_amro", "display_text": "ABN Amro"}]}
//	]
//
// Resolution is total over discriminators: a missing, null, or unknown type
// yields EmptyFormSpec so newer server schemas never break older clients.
// Every resolved spec transforms into an element tree from pkg/elements.
package spec
