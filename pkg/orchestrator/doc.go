// Package orchestrator wires the layout loader → form item resolver →
// placeholder expansion → element builder → renderer pipeline behind a single
// entry point.
package orchestrator
