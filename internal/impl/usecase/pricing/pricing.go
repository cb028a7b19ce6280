package impl_pricing

import (
	"context"
	"errors"
	"fmt"

	domain_money "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/domain/money"
	port_service "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/ports/service"
	port_pricing "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/ports/usecase/pricing"
	"github.com/shopspring/decimal"
)

var ErrInvalidInput = errors.New("invalid input data")

// PricingUsecaseImpl answers rate and fee questions without touching
// compliance, the scheme or storage.
type PricingUsecaseImpl struct {
	rates port_service.RateResolver
	fees  port_service.FeeCalculator
}

func NewPricingUsecaseImpl(rates port_service.RateResolver, fees port_service.FeeCalculator) *PricingUsecaseImpl {
	return &PricingUsecaseImpl{rates: rates, fees: fees}
}

func (u *PricingUsecaseImpl) GetExchangeRate(ctx context.Context, from, to string) (domain_money.ExchangeRate, error) {
	src, dst, err := parsePair(from, to)
	if err != nil {
		return domain_money.ExchangeRate{}, err
	}
	return u.rates.Resolve(ctx, src, dst)
}

func (u *PricingUsecaseImpl) CalculateFees(ctx context.Context, amount decimal.Decimal, from, to string) (port_pricing.Quote, error) {
	if !amount.IsPositive() {
		return port_pricing.Quote{}, fmt.Errorf("%w: amount must be > 0", ErrInvalidInput)
	}

	src, dst, err := parsePair(from, to)
	if err != nil {
		return port_pricing.Quote{}, err
	}

	rate, err := u.rates.Resolve(ctx, src, dst)
	if err != nil {
		return port_pricing.Quote{}, err
	}

	return port_pricing.Quote{
		Amount:          domain_money.New(amount, src),
		TargetCurrency:  dst,
		Rate:            rate,
		ConvertedAmount: domain_money.New(domain_money.Round(rate.Convert(amount)), dst),
		Fees:            u.fees.Compute(amount, src, src != dst),
	}, nil
}

func parsePair(from, to string) (domain_money.Currency, domain_money.Currency, error) {
	src, err := domain_money.ParseCurrency(from)
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	dst, err := domain_money.ParseCurrency(to)
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return src, dst, nil
}
