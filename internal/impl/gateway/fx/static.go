package impl_fx

import (
	"context"
	"fmt"
	"strings"

	domain_money "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/domain/money"
	port_fx "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/ports/gateway/fx"
	port_platform "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/ports/gateway/platform"
	"github.com/shopspring/decimal"
)

const StaticProviderName = "static"

// StaticTable serves rates from a fixed table. Only the directions present
// in the table are answered; the resolver handles inversion.
type StaticTable struct {
	rates map[string]decimal.Decimal
	clock port_platform.Clock
}

func NewStaticTable(rates map[[2]domain_money.Currency]decimal.Decimal, clock port_platform.Clock) *StaticTable {
	m := make(map[string]decimal.Decimal, len(rates))
	for pair, r := range rates {
		m[pairKey(pair[0], pair[1])] = r
	}
	return &StaticTable{rates: m, clock: clock}
}

// ParseStaticRates reads "USD:EUR=0.85,EUR:GBP=0.86" into a rate table.
func ParseStaticRates(raw string) (map[[2]domain_money.Currency]decimal.Decimal, error) {
	out := make(map[[2]domain_money.Currency]decimal.Decimal)
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		pair, value, ok := strings.Cut(item, "=")
		if !ok {
			return nil, fmt.Errorf("fx: static rate %q is not FROM:TO=RATE", item)
		}
		fromCode, toCode, ok := strings.Cut(pair, ":")
		if !ok {
			return nil, fmt.Errorf("fx: static rate %q is not FROM:TO=RATE", item)
		}
		from, err := domain_money.ParseCurrency(fromCode)
		if err != nil {
			return nil, err
		}
		to, err := domain_money.ParseCurrency(toCode)
		if err != nil {
			return nil, err
		}
		r, err := decimal.NewFromString(strings.TrimSpace(value))
		if err != nil || !r.IsPositive() {
			return nil, fmt.Errorf("fx: static rate %q must be a positive decimal", item)
		}
		out[[2]domain_money.Currency{from, to}] = r
	}
	return out, nil
}

func (s *StaticTable) Name() string { return StaticProviderName }

func (s *StaticTable) Rate(ctx context.Context, from, to domain_money.Currency) (domain_money.ExchangeRate, error) {
	if err := ctx.Err(); err != nil {
		return domain_money.ExchangeRate{}, err
	}
	r, ok := s.rates[pairKey(from, to)]
	if !ok {
		return domain_money.ExchangeRate{}, fmt.Errorf("%w: %s/%s", port_fx.ErrRateNotFound, from, to)
	}
	return domain_money.ExchangeRate{
		From:      from,
		To:        to,
		Rate:      r,
		Timestamp: s.clock.Now(),
		Provider:  StaticProviderName,
	}, nil
}

func pairKey(from, to domain_money.Currency) string { return string(from) + "/" + string(to) }
