package domain_money

import (
	"time"

	"github.com/shopspring/decimal"
)

// Provider tags set by the rate resolver when the rate did not come straight
// from a provider lookup.
const (
	ProviderDirect   = "direct"
	ProviderInverted = "inverted"
	ProviderDefault  = "default"
)

// RatePrecision is the number of fractional digits kept on calculated rates.
const RatePrecision = 12

// ExchangeRate is the price of one unit of From expressed in To.
type ExchangeRate struct {
	From      Currency        `json:"from"`
	To        Currency        `json:"to"`
	Rate      decimal.Decimal `json:"rate"`
	Timestamp time.Time       `json:"timestamp"`
	Provider  string          `json:"provider"`
}

// Identity is the 1.0 rate used when no conversion takes place.
func Identity(c Currency, at time.Time) ExchangeRate {
	return ExchangeRate{From: c, To: c, Rate: decimal.NewFromInt(1), Timestamp: at, Provider: ProviderDirect}
}

// Invert returns the reverse-direction rate tagged as calculated.
func (r ExchangeRate) Invert() ExchangeRate {
	if !r.Rate.IsPositive() {
		panic("domain_money: cannot invert a non-positive rate")
	}
	return ExchangeRate{
		From:      r.To,
		To:        r.From,
		Rate:      decimal.NewFromInt(1).DivRound(r.Rate, RatePrecision),
		Timestamp: r.Timestamp,
		Provider:  ProviderInverted,
	}
}

// Convert applies the rate to an amount in From and rounds to minor units.
func (r ExchangeRate) Convert(amount decimal.Decimal) decimal.Decimal {
	return Round(amount.Mul(r.Rate))
}

func (r ExchangeRate) IsConversion() bool { return r.From != r.To }
