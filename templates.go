package paymentform

import (
	"io/fs"

	"github.com/goliatone/go-paymentform/pkg/renderers/preview"
)

// EmbeddedTemplates exposes the built-in preview renderer templates so callers
// can reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return preview.TemplatesFS()
}
