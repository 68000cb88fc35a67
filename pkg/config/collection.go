package config

// CollectionMode controls whether a billing detail is collected.
type CollectionMode string

const (
	CollectionAutomatic CollectionMode = "automatic"
	CollectionNever     CollectionMode = "never"
	CollectionAlways    CollectionMode = "always"
)

// AddressCollectionMode controls billing address collection.
type AddressCollectionMode string

const (
	AddressAutomatic AddressCollectionMode = "automatic"
	AddressNever     AddressCollectionMode = "never"
	AddressFull      AddressCollectionMode = "full"
)

// BillingDetailsCollectionConfiguration describes which billing details a
// form collects beyond what the payment method requires.
type BillingDetailsCollectionConfiguration struct {
	Name    CollectionMode        `json:"name" koanf:"name" validate:"omitempty,oneof=automatic never always"`
	Email   CollectionMode        `json:"email" koanf:"email" validate:"omitempty,oneof=automatic never always"`
	Phone   CollectionMode        `json:"phone" koanf:"phone" validate:"omitempty,oneof=automatic never always"`
	Address AddressCollectionMode `json:"address" koanf:"address" validate:"omitempty,oneof=automatic never full"`
	// AttachDefaultsToPaymentMethod submits default billing details even for
	// fields the form does not show.
	AttachDefaultsToPaymentMethod bool `json:"attach_defaults_to_payment_method" koanf:"attach_defaults_to_payment_method"`
}

// CollectsName reports whether a required name field should be shown.
func (c BillingDetailsCollectionConfiguration) CollectsName() bool {
	return c.Name != CollectionNever
}

// CollectsEmail reports whether a required email field should be shown.
func (c BillingDetailsCollectionConfiguration) CollectsEmail() bool {
	return c.Email != CollectionNever
}

// CollectsPhone reports whether a required phone field should be shown.
func (c BillingDetailsCollectionConfiguration) CollectsPhone() bool {
	return c.Phone != CollectionNever
}

// CollectsAddress reports whether a required billing address should be shown.
func (c BillingDetailsCollectionConfiguration) CollectsAddress() bool {
	return c.Address != AddressNever
}
