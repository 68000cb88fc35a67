package paymentform

import (
	"io/fs"

	"github.com/goliatone/go-paymentform/pkg/layout"
)

// DefaultLayoutsFS exposes the built-in payment method layouts so callers can
// copy, extend, or serve them.
//
// Typical use:
//
//	store, err := layout.LoadFS(paymentform.DefaultLayoutsFS())
func DefaultLayoutsFS() fs.FS {
	return layout.DefaultFS()
}
