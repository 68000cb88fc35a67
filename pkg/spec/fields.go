package spec

import (
	"github.com/goliatone/go-paymentform/pkg/elements"
	"github.com/goliatone/go-paymentform/pkg/model"
	"github.com/goliatone/go-paymentform/pkg/textfield"
)

func textSection(id model.IdentifierSpec, cfg textfield.Config, ctx TransformContext, optional bool) elements.FormElement {
	controller := elements.NewTextFieldController(cfg, ctx.initial(id), optional)
	return elements.Wrap(elements.NewTextFieldElement(id, controller), nil)
}

// EmailSpec collects an email address.
type EmailSpec struct {
	Path model.IdentifierSpec `json:"api_path,omitempty"`
}

func (s EmailSpec) APIPath() model.IdentifierSpec { return pathOr(s.Path, model.IdentifierEmail) }
func (EmailSpec) Type() string                    { return TypeEmail }
func (EmailSpec) formItemSpec()                   {}

func (s EmailSpec) Transform(ctx TransformContext) elements.FormElement {
	return textSection(s.APIPath(), textfield.NewEmailConfig(model.Translatable(model.TranslationEmail)), ctx, false)
}

// NameSpec collects a full name.
type NameSpec struct {
	Path          model.IdentifierSpec `json:"api_path,omitempty"`
	TranslationID model.TranslationID  `json:"translation_id,omitempty"`
}

func (s NameSpec) APIPath() model.IdentifierSpec { return pathOr(s.Path, model.IdentifierName) }
func (NameSpec) Type() string                    { return TypeName }
func (NameSpec) formItemSpec()                   {}

func (s NameSpec) Transform(ctx TransformContext) elements.FormElement {
	label := s.TranslationID
	if label == "" {
		label = model.TranslationAddressName
	}
	return textSection(s.APIPath(), textfield.NewNameConfig(model.Translatable(label)), ctx, false)
}

// IbanSpec collects a SEPA IBAN.
type IbanSpec struct {
	Path model.IdentifierSpec `json:"api_path,omitempty"`
}

func (s IbanSpec) APIPath() model.IdentifierSpec { return pathOr(s.Path, model.IdentifierIban) }
func (IbanSpec) Type() string                    { return TypeIban }
func (IbanSpec) formItemSpec()                   {}

func (s IbanSpec) Transform(ctx TransformContext) elements.FormElement {
	return textSection(s.APIPath(), textfield.NewIbanConfig(model.Translatable(model.TranslationIban)), ctx, false)
}

// BsbSpec collects an Australian bank-state-branch number.
type BsbSpec struct {
	Path model.IdentifierSpec `json:"api_path,omitempty"`
}

func (s BsbSpec) APIPath() model.IdentifierSpec { return pathOr(s.Path, model.IdentifierBsbNumber) }
func (BsbSpec) Type() string                    { return TypeAuBecsBsbNumber }
func (BsbSpec) formItemSpec()                   {}

func (s BsbSpec) Transform(ctx TransformContext) elements.FormElement {
	return textSection(s.APIPath(), textfield.NewBsbConfig(model.Translatable(model.TranslationAuBecsBsbNumber)), ctx, false)
}

// AuBankAccountNumberSpec collects an Australian bank account number.
type AuBankAccountNumberSpec struct {
	Path model.IdentifierSpec `json:"api_path,omitempty"`
}

func (s AuBankAccountNumberSpec) APIPath() model.IdentifierSpec {
	return pathOr(s.Path, model.IdentifierAuAccountNumber)
}
func (AuBankAccountNumberSpec) Type() string  { return TypeAuBecsAccountNumber }
func (AuBankAccountNumberSpec) formItemSpec() {}

func (s AuBankAccountNumberSpec) Transform(ctx TransformContext) elements.FormElement {
	cfg := textfield.NewAuBankAccountNumberConfig(model.Translatable(model.TranslationAuBecsAccount))
	return textSection(s.APIPath(), cfg, ctx, false)
}

// SimpleTextSpec is a free-form text input with keyboard hints.
type SimpleTextSpec struct {
	Path              model.IdentifierSpec `json:"api_path"`
	Label             model.TranslationID  `json:"label"`
	Capitalization    model.Capitalization `json:"capitalization,omitempty"`
	KeyboardType      model.KeyboardType   `json:"keyboard_type,omitempty"`
	ShowOptionalLabel bool                 `json:"show_optional_label,omitempty"`
}

func (s SimpleTextSpec) APIPath() model.IdentifierSpec { return s.Path }
func (SimpleTextSpec) Type() string                    { return TypeText }
func (SimpleTextSpec) formItemSpec()                   {}

func (s SimpleTextSpec) validate() error {
	if s.Path.IsZero() {
		return ErrMissingAPIPath
	}
	return nil
}

func (s SimpleTextSpec) Transform(ctx TransformContext) elements.FormElement {
	keyboard := s.KeyboardType
	if keyboard == "" {
		keyboard = model.KeyboardText
	}
	capitalization := s.Capitalization
	if capitalization == "" {
		capitalization = model.CapitalizationNone
	}
	cfg := textfield.NewSimpleConfig(model.Translatable(s.Label), keyboard, capitalization)
	return textSection(s.Path, cfg, ctx, s.ShowOptionalLabel)
}
