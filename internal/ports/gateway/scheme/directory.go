package port_scheme

import (
	"fmt"
	"sort"

	domain_money "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/domain/money"
)

// Directory maps a target currency to the participant id that serves it. It
// is built once from configuration and never mutated.
type Directory struct {
	source       string
	participants map[domain_money.Currency]string
}

func NewDirectory(source string, participants map[domain_money.Currency]string) Directory {
	m := make(map[domain_money.Currency]string, len(participants))
	for c, id := range participants {
		m[c] = id
	}
	return Directory{source: source, participants: m}
}

// Source is this participant's own id.
func (d Directory) Source() string { return d.source }

func (d Directory) Destination(c domain_money.Currency) (string, error) {
	id, ok := d.participants[c]
	if !ok || id == "" {
		return "", Rejected(CodeUnroutableCurrency, fmt.Sprintf("no participant configured for %s", c))
	}
	return id, nil
}

func (d Directory) Currencies() []domain_money.Currency {
	out := make([]domain_money.Currency, 0, len(d.participants))
	for c := range d.participants {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
