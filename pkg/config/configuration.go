package config

import (
	"errors"
	"regexp"
	"strings"
)

// CustomerAccessType selects how the customer is authenticated.
type CustomerAccessType string

const (
	AccessLegacyEphemeralKey CustomerAccessType = "legacy_ephemeral_key"
	AccessCustomerSession    CustomerAccessType = "customer_session"
)

// Messages returned by Validate for customer secrets.
const (
	MsgEphemeralKeyBlank        = "When a CustomerConfiguration is passed to PaymentSheet, the ephemeralKeySecret cannot be an empty string."
	MsgEphemeralKeyFormat       = "`ephemeralKeySecret` format does not match expected client secret formatting"
	MsgCustomerSessionBlank     = "When a CustomerConfiguration is passed to PaymentSheet, the customerSessionClientSecret cannot be an empty string."
	MsgCustomerSessionIsEphKey  = "Argument looks like an Ephemeral Key secret, but expecting a CustomerSession client secret. See CustomerSession API: https://docs.stripe.com/api/customer_sessions/create"
	MsgCustomerSessionMalformed = "Argument does not look like a CustomerSession client secret. See CustomerSession API: https://docs.stripe.com/api/customer_sessions/create"
)

var ephemeralKeyPattern = regexp.MustCompile(`^ek_[^_](.)+$`)

// ErrInvalidConfiguration is wrapped by every ValidationError.
var ErrInvalidConfiguration = errors.New("config: invalid configuration")

// ValidationError reports one rejected configuration value.
type ValidationError struct {
	// Field is the dotted koanf path of the value, when known.
	Field   string
	Rule    string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrInvalidConfiguration }

// Configuration is the merchant facing setup of a payment form.
type Configuration struct {
	MerchantDisplayName      string                                `json:"merchant_display_name" koanf:"merchant_display_name" validate:"required"`
	Customer                 *CustomerConfiguration                `json:"customer,omitempty" koanf:"customer"`
	GooglePay                *GooglePayConfiguration               `json:"google_pay,omitempty" koanf:"google_pay"`
	DefaultBillingDetails    *BillingDetails                       `json:"default_billing_details,omitempty" koanf:"default_billing_details"`
	BillingDetailsCollection BillingDetailsCollectionConfiguration `json:"billing_details_collection" koanf:"billing_details_collection"`
	AllowsDelayedPayments    bool                                  `json:"allows_delayed_payment_methods" koanf:"allows_delayed_payment_methods"`
	PaymentMethodOrder       []string                              `json:"payment_method_order,omitempty" koanf:"payment_method_order" validate:"dive,required"`
	PreferredNetworks        []string                              `json:"preferred_networks,omitempty" koanf:"preferred_networks" validate:"dive,oneof=amex cartes_bancaires discover mastercard visa"`
	PrimaryButtonLabel       string                                `json:"primary_button_label,omitempty" koanf:"primary_button_label"`
	Appearance               Appearance                            `json:"appearance" koanf:"appearance"`
}

// CustomerConfiguration identifies the customer whose payment methods the
// form may save or reuse.
type CustomerConfiguration struct {
	ID                          string             `json:"id" koanf:"id" validate:"required"`
	AccessType                  CustomerAccessType `json:"access_type,omitempty" koanf:"access_type" validate:"omitempty,oneof=legacy_ephemeral_key customer_session"`
	EphemeralKeySecret          string             `json:"ephemeral_key_secret,omitempty" koanf:"ephemeral_key_secret"`
	CustomerSessionClientSecret string             `json:"customer_session_client_secret,omitempty" koanf:"customer_session_client_secret"`
}

// NewCustomer authenticates with an ephemeral key.
func NewCustomer(id, ephemeralKeySecret string) *CustomerConfiguration {
	return &CustomerConfiguration{ID: id, AccessType: AccessLegacyEphemeralKey, EphemeralKeySecret: ephemeralKeySecret}
}

// NewCustomerWithSession authenticates with a CustomerSession client secret.
func NewCustomerWithSession(id, clientSecret string) *CustomerConfiguration {
	return &CustomerConfiguration{ID: id, AccessType: AccessCustomerSession, CustomerSessionClientSecret: clientSecret}
}

// Access resolves the access type. Without an explicit type a customer
// session secret selects session access.
func (c CustomerConfiguration) Access() CustomerAccessType {
	if c.AccessType != "" {
		return c.AccessType
	}
	if c.CustomerSessionClientSecret != "" {
		return AccessCustomerSession
	}
	return AccessLegacyEphemeralKey
}

// GooglePayEnvironment selects the Google Pay backend.
type GooglePayEnvironment string

const (
	GooglePayProduction GooglePayEnvironment = "production"
	GooglePayTest       GooglePayEnvironment = "test"
)

// GooglePayConfiguration enables Google Pay.
type GooglePayConfiguration struct {
	Environment  GooglePayEnvironment `json:"environment" koanf:"environment" validate:"required,oneof=production test"`
	CountryCode  string               `json:"country_code" koanf:"country_code" validate:"required,iso3166_1_alpha2"`
	CurrencyCode string               `json:"currency_code,omitempty" koanf:"currency_code" validate:"omitempty,iso4217"`
	// Amount in the currency's minor unit; used for setup intents only.
	Amount     *int64 `json:"amount,omitempty" koanf:"amount" validate:"omitempty,gte=0"`
	Label      string `json:"label,omitempty" koanf:"label"`
	ButtonType string `json:"button_type,omitempty" koanf:"button_type" validate:"omitempty,oneof=buy book checkout donate order pay plain subscribe"`
}

// BillingDetails pre-fills billing fields.
type BillingDetails struct {
	Name    string   `json:"name,omitempty" koanf:"name"`
	Email   string   `json:"email,omitempty" koanf:"email" validate:"omitempty,email"`
	Phone   string   `json:"phone,omitempty" koanf:"phone"`
	Address *Address `json:"address,omitempty" koanf:"address"`
}

// Address is a postal address.
type Address struct {
	Line1      string `json:"line1,omitempty" koanf:"line1"`
	Line2      string `json:"line2,omitempty" koanf:"line2"`
	City       string `json:"city,omitempty" koanf:"city"`
	State      string `json:"state,omitempty" koanf:"state"`
	PostalCode string `json:"postal_code,omitempty" koanf:"postal_code"`
	Country    string `json:"country,omitempty" koanf:"country" validate:"omitempty,iso3166_1_alpha2"`
}

// Validate checks the customer secrets first, returning the first failure
// as-is, and then the structural rules, joining every failure.
func (c Configuration) Validate() error {
	if c.Customer != nil {
		if err := c.Customer.validateSecrets(); err != nil {
			return err
		}
	}
	return validateStruct(c)
}

func (c CustomerConfiguration) validateSecrets() error {
	switch c.Access() {
	case AccessCustomerSession:
		secret := c.CustomerSessionClientSecret
		switch {
		case strings.TrimSpace(secret) == "":
			return &ValidationError{Field: "customer.customer_session_client_secret", Rule: "required", Message: MsgCustomerSessionBlank}
		case strings.HasPrefix(secret, "ek_"):
			return &ValidationError{Field: "customer.customer_session_client_secret", Rule: "format", Message: MsgCustomerSessionIsEphKey}
		case !strings.HasPrefix(secret, "cuss_"):
			return &ValidationError{Field: "customer.customer_session_client_secret", Rule: "format", Message: MsgCustomerSessionMalformed}
		}
	default:
		secret := c.EphemeralKeySecret
		switch {
		case strings.TrimSpace(secret) == "":
			return &ValidationError{Field: "customer.ephemeral_key_secret", Rule: "required", Message: MsgEphemeralKeyBlank}
		case !ephemeralKeyPattern.MatchString(secret):
			return &ValidationError{Field: "customer.ephemeral_key_secret", Rule: "format", Message: MsgEphemeralKeyFormat}
		}
	}
	return nil
}
