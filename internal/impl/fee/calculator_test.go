package impl_fee_test

import (
	"testing"

	domain_money "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/domain/money"
	impl_fee "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/impl/fee"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCalculator_Compute(t *testing.T) {
	calc := impl_fee.NewCalculator(impl_fee.DefaultSchedule())

	tests := []struct {
		name          string
		amount        string
		hasConversion bool
		service       string
		exchange      string
		network       string
		total         string
	}{
		{name: "same currency 100", amount: "100", service: "1.00", exchange: "0", network: "0.50", total: "1.50"},
		{name: "conversion 500", amount: "500", hasConversion: true, service: "5.00", exchange: "2.50", network: "0.50", total: "8.00"},
		{name: "rounds each component", amount: "33.33", hasConversion: true, service: "0.33", exchange: "0.17", network: "0.50", total: "1.00"},
		{name: "zero amount pays only network", amount: "0", hasConversion: true, service: "0", exchange: "0", network: "0.50", total: "0.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := calc.Compute(decimal.RequireFromString(tt.amount), "USD", tt.hasConversion)

			assert.Equal(t, domain_money.Currency("USD"), fb.Currency)
			assert.True(t, fb.ServiceFee.Equal(decimal.RequireFromString(tt.service)), "service %s", fb.ServiceFee)
			assert.True(t, fb.ExchangeFee.Equal(decimal.RequireFromString(tt.exchange)), "exchange %s", fb.ExchangeFee)
			assert.True(t, fb.NetworkFee.Equal(decimal.RequireFromString(tt.network)), "network %s", fb.NetworkFee)
			assert.True(t, fb.Total.Equal(decimal.RequireFromString(tt.total)), "total %s", fb.Total)
		})
	}
}

func TestCalculator_TotalIsSumOfNonNegativeParts(t *testing.T) {
	calc := impl_fee.NewCalculator(impl_fee.DefaultSchedule())

	for _, a := range []string{"0.01", "1", "9.99", "123.456", "10000", "49999.995"} {
		for _, conv := range []bool{false, true} {
			fb := calc.Compute(decimal.RequireFromString(a), "EUR", conv)

			sum := fb.ServiceFee.Add(fb.ExchangeFee).Add(fb.NetworkFee)
			assert.True(t, fb.Total.Equal(sum), "amount %s conv %v", a, conv)
			assert.False(t, fb.ServiceFee.IsNegative())
			assert.False(t, fb.ExchangeFee.IsNegative())
			assert.False(t, fb.NetworkFee.IsNegative())
			if !conv {
				assert.True(t, fb.ExchangeFee.IsZero())
			}
		}
	}
}

func TestCalculator_CustomSchedule(t *testing.T) {
	calc := impl_fee.NewCalculator(impl_fee.Schedule{
		ServiceRate:  decimal.RequireFromString("0.02"),
		ExchangeRate: decimal.RequireFromString("0.01"),
		NetworkFlat:  decimal.RequireFromString("1"),
	})

	fb := calc.Compute(decimal.NewFromInt(200), "GBP", true)
	assert.Equal(t, "7.00", fb.Total.StringFixed(2))
}

func TestCalculator_PanicsOnNegativeAmount(t *testing.T) {
	calc := impl_fee.NewCalculator(impl_fee.DefaultSchedule())
	assert.Panics(t, func() { calc.Compute(decimal.NewFromInt(-1), "USD", false) })
}

func TestNewCalculator_PanicsOnNegativeSchedule(t *testing.T) {
	assert.Panics(t, func() {
		impl_fee.NewCalculator(impl_fee.Schedule{ServiceRate: decimal.NewFromInt(-1)})
	})
}
