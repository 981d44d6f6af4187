package kernel

import (
	"errors"
	"fmt"
	"strings"

	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// CurrencyCodeLength is the required length of an ISO 4217 currency code.
const CurrencyCodeLength = 3

var (
	// ErrMoneyIsNotConstructed is returned when a zero-value Money bypassed the constructors.
	ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError(
		"money must be created via NewMoney, NewMoneyFromString, or NewZeroMoney constructors")

	// ErrCurrencyMismatch is returned by arithmetic and comparison operations
	// whose operands carry different currencies.
	ErrCurrencyMismatch = errors.New("money operands have different currencies")

	// ErrNegativeAmount is returned when an operation would produce a negative
	// amount. Money never represents a negative quantity.
	ErrNegativeAmount = errors.New("money amount cannot be negative")
)

// Currency is a 3-letter uppercase currency code.
type Currency string

// NewCurrency validates and normalizes a currency code.
// The code must be exactly three letters; it is uppercased before use.
func NewCurrency(code string) (Currency, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if len(normalized) != CurrencyCodeLength {
		return "", errs.NewValueIsInvalidErrorWithCause("currency",
			fmt.Errorf("%q is not a %d-letter code", code, CurrencyCodeLength))
	}
	for _, r := range normalized {
		if r < 'A' || r > 'Z' {
			return "", errs.NewValueIsInvalidErrorWithCause("currency",
				fmt.Errorf("%q contains a non-letter character", code))
		}
	}
	return Currency(normalized), nil
}

// String returns the currency code.
func (c Currency) String() string {
	return string(c)
}

// Money is an immutable value object holding a non-negative decimal amount in
// a single currency. The zero value is invalid and fails Validate - use the
// constructors.
//
// All arithmetic returns new Money values; operations on operands with
// different currencies fail with ErrCurrencyMismatch, and operations that
// would go below zero fail with ErrNegativeAmount.
//
// Example:
//
//	price, err := kernel.NewMoneyFromString("10.00", "USD")
//	if err != nil {
//	    // handle validation error
//	}
//	total, err := price.Multiply(2)
type Money struct { //nolint:recvcheck //using for validation
	amount   decimal.Decimal
	currency Currency

	guard guard.ConstructorGuard
}

// NewMoney creates Money from a decimal amount and a currency code.
// Fails when the amount is negative or the currency code is malformed.
func NewMoney(amount decimal.Decimal, currency Currency) (Money, error) {
	money := Money{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		money.setAmount(amount),
		money.setCurrency(currency),
	); err != nil {
		return Money{}, err
	}

	return money, nil
}

// NewMoneyFromString creates Money from a decimal string such as "25.50".
// Convenient at serialization boundaries where amounts travel as strings.
func NewMoneyFromString(amount string, currency Currency) (Money, error) {
	parsed, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return NewMoney(parsed, currency)
}

// NewZeroMoney creates a zero amount in the given currency.
// Used as the starting point for summations over order items.
func NewZeroMoney(currency Currency) (Money, error) {
	return NewMoney(decimal.Zero, currency)
}

// Validate ensures the Money was created through a constructor.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

// Amount returns the decimal amount.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the currency code.
func (m Money) Currency() Currency {
	return m.currency
}

// Add returns the sum of two amounts in the same currency.
func (m Money) Add(other Money) (Money, error) {
	if err := m.validatePair(other); err != nil {
		return Money{}, err
	}
	return NewMoney(m.amount.Add(other.amount), m.currency)
}

// Subtract returns the difference of two amounts in the same currency.
// Fails with ErrNegativeAmount when the result would be below zero.
func (m Money) Subtract(other Money) (Money, error) {
	if err := m.validatePair(other); err != nil {
		return Money{}, err
	}
	result := m.amount.Sub(other.amount)
	if result.IsNegative() {
		return Money{}, fmt.Errorf("%w: %s - %s", ErrNegativeAmount, m.amount, other.amount)
	}
	return NewMoney(result, m.currency)
}

// Multiply scales the amount by a non-negative integer factor.
func (m Money) Multiply(factor int) (Money, error) {
	if err := m.Validate(); err != nil {
		return Money{}, err
	}
	if factor < 0 {
		return Money{}, fmt.Errorf("%w: factor %d", ErrNegativeAmount, factor)
	}
	return NewMoney(m.amount.Mul(decimal.NewFromInt(int64(factor))), m.currency)
}

// IsEqual reports structural equality: same currency and numerically equal
// amounts ("10" equals "10.00").
func (m Money) IsEqual(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// IsGreaterThan compares two amounts in the same currency.
func (m Money) IsGreaterThan(other Money) (bool, error) {
	if err := m.validatePair(other); err != nil {
		return false, err
	}
	return m.amount.GreaterThan(other.amount), nil
}

// IsLessThan compares two amounts in the same currency.
func (m Money) IsLessThan(other Money) (bool, error) {
	if err := m.validatePair(other); err != nil {
		return false, err
	}
	return m.amount.LessThan(other.amount), nil
}

// String returns a human-readable "amount currency" form, e.g. "25.5 USD".
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.amount, m.currency)
}

func (m Money) validatePair(other Money) error {
	if err := errors.Join(m.Validate(), other.Validate()); err != nil {
		return err
	}
	if m.currency != other.currency {
		return fmt.Errorf("%w: %s vs %s", ErrCurrencyMismatch, m.currency, other.currency)
	}
	return nil
}

func (m *Money) setAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("%w: %s", ErrNegativeAmount, amount)
	}
	m.amount = amount
	return nil
}

func (m *Money) setCurrency(currency Currency) error {
	validated, err := NewCurrency(string(currency))
	if err != nil {
		return err
	}
	m.currency = validated
	return nil
}
