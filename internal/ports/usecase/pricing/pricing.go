package port_pricing

import (
	"context"

	domain_money "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/domain/money"
	"github.com/shopspring/decimal"
)

// Quote is a fee estimate a presentation layer can show before the sender
// commits to a transfer.
type Quote struct {
	Amount          domain_money.Money        `json:"amount"`
	TargetCurrency  domain_money.Currency     `json:"target_currency"`
	Rate            domain_money.ExchangeRate `json:"exchange_rate"`
	ConvertedAmount domain_money.Money        `json:"converted_amount"`
	Fees            domain_money.FeeBreakdown `json:"fees"`
}

// PricingUseCase is side-effect free and safe to expose without running the
// orchestrator.
type PricingUseCase interface {
	GetExchangeRate(ctx context.Context, from, to string) (domain_money.ExchangeRate, error)
	CalculateFees(ctx context.Context, amount decimal.Decimal, from, to string) (Quote, error)
}
