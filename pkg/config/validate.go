package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/goliatone/go-paymentform/pkg/textfield"
)

var (
	validatorInstance *validator.Validate
	validatorOnce     sync.Once
)

func getValidator() *validator.Validate {
	validatorOnce.Do(func() {
		validatorInstance = validator.New()

		// Report fields by their koanf keys so messages match the config file.
		validatorInstance.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("koanf"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validatorInstance
}

func validateStruct(cfg Configuration) error {
	var errs []error

	if err := getValidator().Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("config: validate: %w", err)
		}
		for _, fe := range verrs {
			field := fieldPath(fe.Namespace())
			errs = append(errs, &ValidationError{
				Field:   field,
				Rule:    fe.Tag(),
				Message: ruleMessage(field, fe.Tag(), fe.Param()),
			})
		}
	}

	if err := validateDefaultPostalCode(cfg.DefaultBillingDetails); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// validateDefaultPostalCode rejects a default postal code that can never be
// valid for the default country.
func validateDefaultPostalCode(details *BillingDetails) error {
	if details == nil || details.Address == nil {
		return nil
	}
	address := details.Address
	if address.Country == "" || address.PostalCode == "" {
		return nil
	}
	filtered, state := textfield.ClassifyPostalCode(address.Country, address.PostalCode)
	if state.IsValid() && filtered == address.PostalCode {
		return nil
	}
	return &ValidationError{
		Field:   "default_billing_details.address.postal_code",
		Rule:    "postal_code",
		Message: fmt.Sprintf("config: default_billing_details.address.postal_code %q is not a valid postal code for %s", address.PostalCode, strings.ToUpper(address.Country)),
	}
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(namespace string) string {
	if idx := strings.Index(namespace, "."); idx >= 0 {
		return namespace[idx+1:]
	}
	return namespace
}

func ruleMessage(field, tag, param string) string {
	switch tag {
	case "required":
		return fmt.Sprintf("config: %s is required", field)
	case "oneof":
		return fmt.Sprintf("config: %s must be one of [%s]", field, param)
	case "iso3166_1_alpha2":
		return fmt.Sprintf("config: %s must be an ISO 3166-1 alpha-2 country code", field)
	case "iso4217":
		return fmt.Sprintf("config: %s must be an ISO 4217 currency code", field)
	case "email":
		return fmt.Sprintf("config: %s must be an email address", field)
	case "gte":
		return fmt.Sprintf("config: %s must be at least %s", field, param)
	case "gt":
		return fmt.Sprintf("config: %s must be greater than %s", field, param)
	case "hexcolor":
		return fmt.Sprintf("config: %s must be a hex color", field)
	default:
		return fmt.Sprintf("config: %s failed %s validation", field, tag)
	}
}
