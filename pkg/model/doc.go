// Package model defines the value types shared by the form specification
// resolver, the element layer and the renderers: API path identifiers,
// translation identifiers with their default English copy, dropdown items,
// keyboard hints and the entries a form reports for submission.
//
// Identifiers use the bracketed parameter syntax the payments API expects
// (for example "billing_details[address][postal_code]"), so a collected
// value can be encoded without any further mapping.
package model
