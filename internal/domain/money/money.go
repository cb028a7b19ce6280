package domain_money

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// MinorUnits is the number of fractional digits amounts are presented with.
const MinorUnits = 2

var currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)

type Currency string

// ParseCurrency normalizes and validates an ISO 4217 style code.
func ParseCurrency(code string) (Currency, error) {
	c := strings.ToUpper(strings.TrimSpace(code))
	if !currencyPattern.MatchString(c) {
		return "", fmt.Errorf("%w: %q", ErrInvalidCurrency, code)
	}
	return Currency(c), nil
}

// MustCurrency is ParseCurrency for codes known at compile time.
func MustCurrency(code string) Currency {
	c, err := ParseCurrency(code)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Currency) String() string { return string(c) }

func (c Currency) Valid() bool { return currencyPattern.MatchString(string(c)) }

type Money struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency Currency        `json:"currency"`
}

func New(amount decimal.Decimal, currency Currency) Money {
	return Money{Amount: amount, Currency: currency}
}

func (m Money) IsZero() bool { return m.Amount.IsZero() && m.Currency == "" }

// String renders the amount with minor units, e.g. "425.00 EUR".
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.Amount.StringFixed(MinorUnits), m.Currency)
}

// Round rounds half away from zero to the presentation precision.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(MinorUnits)
}

// ParseAmount parses a decimal string amount. Binary floats are never accepted.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return d, nil
}
