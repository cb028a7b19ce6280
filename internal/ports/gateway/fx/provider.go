package port_fx

import (
	"context"
	"errors"

	domain_money "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/domain/money"
)

// ErrRateNotFound means the provider has no usable rate for the pair. Timeouts
// and malformed payloads are reported the same way.
var ErrRateNotFound = errors.New("fx: rate not found")

type RateProvider interface {
	Name() string
	Rate(ctx context.Context, from, to domain_money.Currency) (domain_money.ExchangeRate, error)
}
