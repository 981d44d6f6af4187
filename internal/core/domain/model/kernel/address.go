package kernel

import (
	"errors"
	"fmt"
	"strings"

	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

// ErrShippingAddressIsNotConstructed is returned when a zero-value
// ShippingAddress bypassed the NewShippingAddress constructor.
var ErrShippingAddressIsNotConstructed = errs.NewValueIsRequiredError(
	"shipping address must be created via NewShippingAddress constructor")

// ShippingAddress is an immutable postal address value object.
// All four fields are required. "Changing" an address means constructing a new
// value and handing it to the order, never mutating an existing one.
type ShippingAddress struct { //nolint:recvcheck //using for validation
	street     string
	city       string
	postalCode string
	country    string

	guard guard.ConstructorGuard
}

// NewShippingAddress creates a validated address.
// Every field must be non-empty after trimming whitespace.
func NewShippingAddress(street, city, postalCode, country string) (ShippingAddress, error) {
	address := ShippingAddress{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		address.setField(&address.street, "street", street),
		address.setField(&address.city, "city", city),
		address.setField(&address.postalCode, "postalCode", postalCode),
		address.setField(&address.country, "country", country),
	); err != nil {
		return ShippingAddress{}, err
	}

	return address, nil
}

// Validate ensures the address was created through the constructor.
func (a ShippingAddress) Validate() error {
	return a.guard.Validate(ErrShippingAddressIsNotConstructed)
}

// Street returns the street line.
func (a ShippingAddress) Street() string {
	return a.street
}

// City returns the city name.
func (a ShippingAddress) City() string {
	return a.city
}

// PostalCode returns the postal code.
func (a ShippingAddress) PostalCode() string {
	return a.postalCode
}

// Country returns the country name.
func (a ShippingAddress) Country() string {
	return a.country
}

// IsEqual reports whether two addresses have identical field values.
func (a ShippingAddress) IsEqual(other ShippingAddress) bool {
	return a.street == other.street &&
		a.city == other.city &&
		a.postalCode == other.postalCode &&
		a.country == other.country
}

// String returns a single-line postal form of the address.
func (a ShippingAddress) String() string {
	return fmt.Sprintf("%s, %s %s, %s", a.street, a.postalCode, a.city, a.country)
}

func (a *ShippingAddress) setField(target *string, name, value string) error {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return errs.NewValueIsRequiredError(name)
	}
	*target = trimmed
	return nil
}
