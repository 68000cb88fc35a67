package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// TranslationID names a piece of user-facing copy. Remote specifications
// reference labels by these ids; the client ships the English defaults.
type TranslationID string

// Label ids served by the remote schema.
const (
	TranslationIdealBank         TranslationID = "upe.labels.ideal.bank"
	TranslationP24Bank           TranslationID = "upe.labels.p24.bank"
	TranslationEpsBank           TranslationID = "upe.labels.eps.bank"
	TranslationFpxBank           TranslationID = "upe.labels.fpx.bank"
	TranslationAddressName       TranslationID = "address.label.name"
	TranslationNameOnAccount     TranslationID = "upe.labels.name.onAccount"
	TranslationAuBecsBsbNumber   TranslationID = "upe.labels.au_becs.bsb_number"
	TranslationAuBecsAccount     TranslationID = "upe.labels.au_becs.account_number"
	TranslationBlikCode          TranslationID = "upe.labels.blik.code"
	TranslationKonbiniConfirm    TranslationID = "upe.labels.konbini.confirmation_number"
	TranslationIban              TranslationID = "upe.labels.iban"
	TranslationEmail             TranslationID = "upe.labels.email"
	TranslationCountry           TranslationID = "address.label.country_or_region"
	TranslationPostalCode        TranslationID = "address.label.postal_code"
	TranslationZipCode           TranslationID = "address.label.zip_code"
	TranslationLine1             TranslationID = "address.label.address_line1"
	TranslationLine2             TranslationID = "address.label.address_line2"
	TranslationCity              TranslationID = "address.label.city"
	TranslationState             TranslationID = "address.label.state"
	TranslationPhone             TranslationID = "address.label.phone_number"
	TranslationBillingAddress    TranslationID = "address.label.billing_address"
	TranslationOptional          TranslationID = "form.label.optional"
	TranslationSaveForFutureUse  TranslationID = "upe.labels.save_for_future_use"
	TranslationSetAsDefault      TranslationID = "upe.labels.set_as_default_payment_method"
	TranslationAffirmHeader      TranslationID = "upe.labels.affirm.header"
	TranslationAfterpayHeader    TranslationID = "upe.labels.afterpay.header"
	TranslationClearpayHeader    TranslationID = "upe.labels.clearpay.header"
	TranslationKlarnaHeader      TranslationID = "upe.labels.klarna.header"
	TranslationAuBecsMandate     TranslationID = "upe.mandate.au_becs"
	TranslationSepaMandate       TranslationID = "upe.mandate.sepa"
	TranslationGenericMandate    TranslationID = "upe.mandate.generic"
	TranslationPostalIncomplete  TranslationID = "address.error.postal_code.incomplete"
	TranslationPostalInvalid     TranslationID = "address.error.postal_code.invalid"
	TranslationZipIncomplete     TranslationID = "address.error.zip.incomplete"
	TranslationZipInvalid        TranslationID = "address.error.zip.invalid"
	TranslationEmailIncomplete   TranslationID = "error.email.incomplete"
	TranslationEmailInvalid      TranslationID = "error.email.invalid"
	TranslationIbanIncomplete    TranslationID = "error.iban.incomplete"
	TranslationIbanInvalid       TranslationID = "error.iban.invalid"
	TranslationIbanCountryPrefix TranslationID = "error.iban.country_prefix"
	TranslationBsbIncomplete     TranslationID = "error.bsb.incomplete"
	TranslationBsbInvalid        TranslationID = "error.bsb.invalid"
	TranslationAuAccountShort    TranslationID = "error.au_becs.account_number.incomplete"
)

var defaultCopy = map[TranslationID]string{
	TranslationIdealBank:         "iDEAL Bank",
	TranslationP24Bank:           "Przelewy24 Bank",
	TranslationEpsBank:           "EPS Bank",
	TranslationFpxBank:           "FPX Bank",
	TranslationAddressName:       "Full name",
	TranslationNameOnAccount:     "Name on account",
	TranslationAuBecsBsbNumber:   "BSB",
	TranslationAuBecsAccount:     "Account number",
	TranslationBlikCode:          "BLIK code",
	TranslationKonbiniConfirm:    "Confirmation number",
	TranslationIban:              "IBAN",
	TranslationEmail:             "Email",
	TranslationCountry:           "Country or region",
	TranslationPostalCode:        "Postal code",
	TranslationZipCode:           "ZIP code",
	TranslationLine1:             "Address line 1",
	TranslationLine2:             "Address line 2",
	TranslationCity:              "City",
	TranslationState:             "State / Province / Region",
	TranslationPhone:             "Phone number",
	TranslationBillingAddress:    "Billing address",
	TranslationOptional:          "%s (optional)",
	TranslationSaveForFutureUse:  "Save this payment method for future %s payments",
	TranslationSetAsDefault:      "Set as default payment method",
	TranslationAffirmHeader:      `Pay over time with <img src="https://b.stripecdn.com/affirm-logo.png" alt="Affirm"/>`,
	TranslationAfterpayHeader:    "Pay in %d interest-free payments of %s with Afterpay",
	TranslationClearpayHeader:    "Pay in %d interest-free payments of %s with Clearpay",
	TranslationKlarnaHeader:      "Buy now or pay later with Klarna.",
	TranslationAuBecsMandate:     `By providing your bank account details and confirming this payment, you agree to this Direct Debit Request and the Direct Debit Request service agreement, and authorise Stripe Payments Australia Pty Ltd ACN 160 180 343 Direct Debit User ID number 507156 ("Stripe") to debit your account through the Bulk Electronic Clearing System (BECS) on behalf of %s (the "Merchant") for any amounts separately communicated to you by the Merchant.`,
	TranslationSepaMandate:       "By providing your payment information and confirming this payment, you authorise (A) %s and Stripe, our payment service provider, to send instructions to your bank to debit your account and (B) your bank to debit your account in accordance with those instructions.",
	TranslationGenericMandate:    "By continuing, you authorise %s to debit your account for this payment and future payments in accordance with their terms.",
	TranslationPostalIncomplete:  "Your postal code is incomplete.",
	TranslationPostalInvalid:     "Your postal code is invalid.",
	TranslationZipIncomplete:     "Your ZIP is incomplete.",
	TranslationZipInvalid:        "Your ZIP is invalid.",
	TranslationEmailIncomplete:   "Your email address is incomplete.",
	TranslationEmailInvalid:      "Your email address is invalid.",
	TranslationIbanIncomplete:    "The IBAN you entered is incomplete.",
	TranslationIbanInvalid:       "The IBAN you entered is invalid.",
	TranslationIbanCountryPrefix: "Your IBAN should start with a two-letter country code.",
	TranslationBsbIncomplete:     "The BSB you entered is incomplete.",
	TranslationBsbInvalid:        "The BSB you entered is invalid.",
	TranslationAuAccountShort:    "The account number you entered is incomplete.",
}

// DefaultText returns the English copy for id and whether one is registered.
func (id TranslationID) DefaultText() (string, bool) {
	text, ok := defaultCopy[id]
	return text, ok
}

// ResolvableString is user-facing copy that is either a literal or a
// translation id plus format arguments, resolved at render time.
type ResolvableString struct {
	Literal string        `json:"literal,omitempty"`
	ID      TranslationID `json:"id,omitempty"`
	Args    []any         `json:"args,omitempty"`
}

// Literal wraps already-resolved copy.
func Literal(text string) ResolvableString {
	return ResolvableString{Literal: text}
}

// Translatable references copy by id.
func Translatable(id TranslationID, args ...any) ResolvableString {
	return ResolvableString{ID: id, Args: args}
}

// IsZero reports whether no copy is set.
func (r ResolvableString) IsZero() bool {
	return r.Literal == "" && r.ID == ""
}

// Default resolves the string with the built-in English copy. Unknown ids
// resolve to the id itself so the gap is visible rather than blank.
func (r ResolvableString) Default() string {
	if r.Literal != "" || r.ID == "" {
		return r.Literal
	}
	text, ok := r.ID.DefaultText()
	if !ok {
		return string(r.ID)
	}
	return FormatCopy(text, r.Args...)
}

// String implements fmt.Stringer using the default copy.
func (r ResolvableString) String() string {
	return r.Default()
}

// FormatCopy applies args to a copy template. Templates without verbs are
// returned as-is even when args are present.
func FormatCopy(template string, args ...any) string {
	if len(args) == 0 || !strings.Contains(template, "%") {
		return template
	}
	return fmt.Sprintf(template, args...)
}

// MarshalJSON emits the resolved English copy alongside the id so snapshots
// stay readable.
func (r ResolvableString) MarshalJSON() ([]byte, error) {
	type payload struct {
		ID   TranslationID `json:"id,omitempty"`
		Text string        `json:"text"`
	}
	return json.Marshal(payload{ID: r.ID, Text: r.Default()})
}
