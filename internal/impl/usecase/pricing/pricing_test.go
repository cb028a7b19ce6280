package impl_pricing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	domain_money "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/domain/money"
	impl_fee "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/impl/fee"
	impl_pricing "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/impl/usecase/pricing"
	gwmocks "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/ports/gateway/mocks"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestPricing_CalculateFees(t *testing.T) {
	ctrl := gomock.NewController(t)
	rates := gwmocks.NewMockRateResolver(ctrl)
	svc := impl_pricing.NewPricingUsecaseImpl(rates, impl_fee.NewCalculator(impl_fee.DefaultSchedule()))

	rates.EXPECT().Resolve(gomock.Any(), domain_money.Currency("USD"), domain_money.Currency("EUR")).
		Return(domain_money.ExchangeRate{From: "USD", To: "EUR", Rate: decimal.RequireFromString("0.85"), Timestamp: time.Now(), Provider: "static"}, nil)

	q, err := svc.CalculateFees(context.Background(), decimal.NewFromInt(500), "usd", "eur")
	require.NoError(t, err)

	assert.True(t, q.ConvertedAmount.Amount.Equal(decimal.RequireFromString("425")))
	assert.Equal(t, domain_money.Currency("EUR"), q.ConvertedAmount.Currency)
	assert.True(t, q.Fees.Total.Equal(decimal.RequireFromString("8.00")), q.Fees.Total.String())
}

func TestPricing_InvalidInputNeverResolves(t *testing.T) {
	ctrl := gomock.NewController(t)
	rates := gwmocks.NewMockRateResolver(ctrl)
	fees := gwmocks.NewMockFeeCalculator(ctrl)
	svc := impl_pricing.NewPricingUsecaseImpl(rates, fees)

	rates.EXPECT().Resolve(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	fees.EXPECT().Compute(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.CalculateFees(context.Background(), decimal.Zero, "USD", "EUR")
	assert.True(t, errors.Is(err, impl_pricing.ErrInvalidInput))

	_, err = svc.GetExchangeRate(context.Background(), "US", "EUR")
	assert.True(t, errors.Is(err, impl_pricing.ErrInvalidInput))
}

func TestPricing_RateErrorPropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	rates := gwmocks.NewMockRateResolver(ctrl)
	fees := gwmocks.NewMockFeeCalculator(ctrl)
	svc := impl_pricing.NewPricingUsecaseImpl(rates, fees)

	boom := errors.New("no rate")
	rates.EXPECT().Resolve(gomock.Any(), gomock.Any(), gomock.Any()).Return(domain_money.ExchangeRate{}, boom)
	fees.EXPECT().Compute(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.CalculateFees(context.Background(), decimal.NewFromInt(10), "USD", "JPY")
	assert.ErrorIs(t, err, boom)
}
