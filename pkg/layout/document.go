package layout

import (
	"errors"
	"path"
	"strings"
)

// Document wraps a raw layout payload and its origin.
type Document struct {
	source Source
	raw    []byte
}

// NewDocument constructs a Document wrapper while validating the inputs.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("layout: source is required")
	}
	if len(raw) == 0 {
		return Document{}, errors.New("layout: raw document is empty")
	}
	return Document{source: src, raw: append([]byte(nil), raw...)}, nil
}

// MustNewDocument panics if the document cannot be created. Useful for tests.
func MustNewDocument(src Source, raw []byte) Document {
	doc, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

// Source returns the origin metadata for the document.
func (d Document) Source() Source { return d.source }

// Raw returns a copy of the payload.
func (d Document) Raw() []byte { return append([]byte(nil), d.raw...) }

// Location returns the string identifier for the origin.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}

// BaseName returns the location's file name without extension, used as the
// payment method code of list-form layouts.
func (d Document) BaseName() string {
	location := d.Location()
	if location == "" {
		return ""
	}
	if idx := strings.IndexAny(location, "?#"); idx >= 0 {
		location = location[:idx]
	}
	base := path.Base(strings.ReplaceAll(location, "\\", "/"))
	return strings.TrimSuffix(base, path.Ext(base))
}
