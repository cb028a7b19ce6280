package impl_fee

import (
	domain_money "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/domain/money"
	"github.com/shopspring/decimal"
)

// Schedule holds the configured fee rates. Rates are fractions of the
// transfer amount; NetworkFlat is charged once per transfer in the source
// currency.
type Schedule struct {
	ServiceRate  decimal.Decimal
	ExchangeRate decimal.Decimal
	NetworkFlat  decimal.Decimal
}

func DefaultSchedule() Schedule {
	return Schedule{
		ServiceRate:  decimal.RequireFromString("0.01"),
		ExchangeRate: decimal.RequireFromString("0.005"),
		NetworkFlat:  decimal.RequireFromString("0.50"),
	}
}

type Calculator struct {
	schedule Schedule
}

func NewCalculator(s Schedule) *Calculator {
	if s.ServiceRate.IsNegative() || s.ExchangeRate.IsNegative() || s.NetworkFlat.IsNegative() {
		panic("impl_fee: fee schedule must not contain negative values")
	}
	return &Calculator{schedule: s}
}

// Compute returns the fee breakdown for an amount typed by the sender. Each
// component is rounded to minor units before summing, so Total always equals
// the sum of the parts shown to the user.
func (c *Calculator) Compute(amount decimal.Decimal, currency domain_money.Currency, hasConversion bool) domain_money.FeeBreakdown {
	if amount.IsNegative() {
		panic("impl_fee: negative amount " + amount.String())
	}

	service := domain_money.Round(amount.Mul(c.schedule.ServiceRate))

	exchange := decimal.Zero
	if hasConversion {
		exchange = domain_money.Round(amount.Mul(c.schedule.ExchangeRate))
	}

	network := domain_money.Round(c.schedule.NetworkFlat)

	return domain_money.NewFeeBreakdown(currency, service, exchange, network)
}
