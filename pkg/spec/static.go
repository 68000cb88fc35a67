package spec

import (
	"strings"

	"github.com/goliatone/go-paymentform/pkg/elements"
	"github.com/goliatone/go-paymentform/pkg/model"
)

// Default identifiers of the static text variants.
const (
	IdentifierAffirmHeader  model.IdentifierSpec = "affirm_header"
	IdentifierAfterpayText  model.IdentifierSpec = "afterpay_text"
	IdentifierKlarnaHeader  model.IdentifierSpec = "klarna_header_text"
	IdentifierAuBecsMandate model.IdentifierSpec = "au_becs_mandate"
	IdentifierSepaMandate   model.IdentifierSpec = "sepa_mandate"
	IdentifierMandate       model.IdentifierSpec = "mandate"
)

// AffirmTextSpec is the Affirm promotional header.
type AffirmTextSpec struct {
	Path model.IdentifierSpec `json:"api_path,omitempty"`
}

func (s AffirmTextSpec) APIPath() model.IdentifierSpec { return pathOr(s.Path, IdentifierAffirmHeader) }
func (AffirmTextSpec) Type() string                    { return TypeAffirmHeader }
func (AffirmTextSpec) formItemSpec()                   {}

func (s AffirmTextSpec) Transform(TransformContext) elements.FormElement {
	return elements.NewStaticTextElement(s.APIPath(), elements.StaticHeader, model.Translatable(model.TranslationAffirmHeader), true)
}

// AfterpayClearpayTextSpec quotes the installment price. GBP amounts are
// branded Clearpay.
type AfterpayClearpayTextSpec struct {
	Path model.IdentifierSpec `json:"api_path,omitempty"`
}

func (s AfterpayClearpayTextSpec) APIPath() model.IdentifierSpec {
	return pathOr(s.Path, IdentifierAfterpayText)
}
func (AfterpayClearpayTextSpec) Type() string  { return TypeAfterpayHeader }
func (AfterpayClearpayTextSpec) formItemSpec() {}

func (s AfterpayClearpayTextSpec) Transform(ctx TransformContext) elements.FormElement {
	var amount model.Amount
	if ctx.Amount != nil {
		amount = *ctx.Amount
	}
	installments := InstallmentCount(amount.Currency, ctx.Country)
	id := model.TranslationAfterpayHeader
	if strings.EqualFold(amount.Currency, "gbp") {
		id = model.TranslationClearpayHeader
	}
	text := model.Translatable(id, installments, amount.Split(installments).Format())
	return elements.NewStaticTextElement(s.APIPath(), elements.StaticHeader, text, false)
}

// InstallmentCount returns the number of Afterpay installments: three for
// euro charges in France, Spain and Italy, four elsewhere.
func InstallmentCount(currency, country string) int {
	if !strings.EqualFold(currency, "eur") {
		return 4
	}
	switch strings.ToUpper(strings.TrimSpace(country)) {
	case "FR", "ES", "IT":
		return 3
	}
	return 4
}

// KlarnaHeaderStaticTextSpec is the Klarna promotional header.
type KlarnaHeaderStaticTextSpec struct {
	Path model.IdentifierSpec `json:"api_path,omitempty"`
}

func (s KlarnaHeaderStaticTextSpec) APIPath() model.IdentifierSpec {
	return pathOr(s.Path, IdentifierKlarnaHeader)
}
func (KlarnaHeaderStaticTextSpec) Type() string  { return TypeKlarnaHeader }
func (KlarnaHeaderStaticTextSpec) formItemSpec() {}

func (s KlarnaHeaderStaticTextSpec) Transform(TransformContext) elements.FormElement {
	return elements.NewStaticTextElement(s.APIPath(), elements.StaticHeader, model.Translatable(model.TranslationKlarnaHeader), false)
}

// StaticTextSpec renders copy by translation id or literal text.
type StaticTextSpec struct {
	Path        model.IdentifierSpec `json:"api_path"`
	StringResID model.TranslationID  `json:"stringResId,omitempty"`
	Text        string               `json:"text,omitempty"`
}

func (s StaticTextSpec) APIPath() model.IdentifierSpec { return s.Path }
func (StaticTextSpec) Type() string                    { return TypeStaticText }
func (StaticTextSpec) formItemSpec()                   {}

func (s StaticTextSpec) validate() error {
	if s.Path.IsZero() {
		return ErrMissingAPIPath
	}
	return nil
}

func (s StaticTextSpec) Transform(TransformContext) elements.FormElement {
	text := model.Literal(s.Text)
	if s.StringResID != "" {
		text = model.Translatable(s.StringResID)
	}
	return elements.NewStaticTextElement(s.Path, elements.StaticText, text, false)
}

// MandateTextSpec is mandate copy naming the merchant.
type MandateTextSpec struct {
	Path        model.IdentifierSpec `json:"api_path,omitempty"`
	StringResID model.TranslationID  `json:"stringResId,omitempty"`
}

func (s MandateTextSpec) APIPath() model.IdentifierSpec { return pathOr(s.Path, IdentifierMandate) }
func (MandateTextSpec) Type() string                    { return TypeMandate }
func (MandateTextSpec) formItemSpec()                   {}

func (s MandateTextSpec) Transform(ctx TransformContext) elements.FormElement {
	id := s.StringResID
	if id == "" {
		id = model.TranslationGenericMandate
	}
	return elements.NewMandateTextElement(s.APIPath(), model.Translatable(id, ctx.MerchantName))
}

// SepaMandateTextSpec is the SEPA debit mandate.
type SepaMandateTextSpec struct {
	Path model.IdentifierSpec `json:"api_path,omitempty"`
}

func (s SepaMandateTextSpec) APIPath() model.IdentifierSpec {
	return pathOr(s.Path, IdentifierSepaMandate)
}
func (SepaMandateTextSpec) Type() string  { return TypeSepaMandate }
func (SepaMandateTextSpec) formItemSpec() {}

func (s SepaMandateTextSpec) Transform(ctx TransformContext) elements.FormElement {
	return elements.NewMandateTextElement(s.APIPath(), model.Translatable(model.TranslationSepaMandate, ctx.MerchantName))
}

// AuBecsDebitMandateTextSpec is the BECS direct debit request.
type AuBecsDebitMandateTextSpec struct {
	Path model.IdentifierSpec `json:"api_path,omitempty"`
}

func (s AuBecsDebitMandateTextSpec) APIPath() model.IdentifierSpec {
	return pathOr(s.Path, IdentifierAuBecsMandate)
}
func (AuBecsDebitMandateTextSpec) Type() string  { return TypeAuBecsMandate }
func (AuBecsDebitMandateTextSpec) formItemSpec() {}

func (s AuBecsDebitMandateTextSpec) Transform(ctx TransformContext) elements.FormElement {
	return elements.NewMandateTextElement(s.APIPath(), model.Translatable(model.TranslationAuBecsMandate, ctx.MerchantName))
}
