// Package config models the payment form configuration: merchant identity,
// customer access, Google Pay, default billing details and which billing
// details a form collects. Configuration.Validate applies the client secret
// rules and the structural rules declared in struct tags. Load reads the
// same structures from a TOML file with PAYMENTFORM_ environment overrides.
package config
