package domain_money

import "github.com/shopspring/decimal"

// FeeBreakdown is expressed in the transfer's source currency.
type FeeBreakdown struct {
	Currency    Currency        `json:"currency"`
	ServiceFee  decimal.Decimal `json:"service_fee"`
	ExchangeFee decimal.Decimal `json:"exchange_fee"`
	NetworkFee  decimal.Decimal `json:"network_fee"`
	Total       decimal.Decimal `json:"total"`
}

func NewFeeBreakdown(currency Currency, service, exchange, network decimal.Decimal) FeeBreakdown {
	return FeeBreakdown{
		Currency:    currency,
		ServiceFee:  service,
		ExchangeFee: exchange,
		NetworkFee:  network,
		Total:       service.Add(exchange).Add(network),
	}
}
