package elements

import (
	"github.com/goliatone/go-paymentform/pkg/model"
)

// StaticKind distinguishes the presentational roles of static text.
type StaticKind string

const (
	StaticHeader  StaticKind = "header"
	StaticText    StaticKind = "text"
	StaticMandate StaticKind = "mandate"
)

// StaticTextElement renders copy without collecting input.
type StaticTextElement struct {
	identifier model.IdentifierSpec
	Kind       StaticKind
	Text       model.ResolvableString
	// HTML marks copy that carries markup; renderers sanitize it.
	HTML bool
}

var _ FormElement = (*StaticTextElement)(nil)

// NewStaticTextElement builds a static element.
func NewStaticTextElement(identifier model.IdentifierSpec, kind StaticKind, text model.ResolvableString, html bool) *StaticTextElement {
	return &StaticTextElement{identifier: identifier, Kind: kind, Text: text, HTML: html}
}

func (e *StaticTextElement) Identifier() model.IdentifierSpec { return e.identifier }
func (e *StaticTextElement) AllowsUserInteraction() bool      { return false }
func (e *StaticTextElement) FormFieldValues() []FieldValue    { return nil }

// EmptyFormElement stands in for specs the resolver did not recognize. It
// renders nothing and submits nothing.
type EmptyFormElement struct {
	// UnknownType is the type tag that was not recognized, if any.
	UnknownType string
}

var _ FormElement = (*EmptyFormElement)(nil)

func (e *EmptyFormElement) Identifier() model.IdentifierSpec { return model.IdentifierEmpty }
func (e *EmptyFormElement) AllowsUserInteraction() bool      { return false }
func (e *EmptyFormElement) FormFieldValues() []FieldValue    { return nil }

// NewMandateTextElement builds mandate copy.
func NewMandateTextElement(identifier model.IdentifierSpec, text model.ResolvableString) *StaticTextElement {
	return NewStaticTextElement(identifier, StaticMandate, text, false)
}
